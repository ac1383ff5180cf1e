package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"palipractice/internal/config"
	"palipractice/internal/eligibility"
	"palipractice/internal/grammar"
	"palipractice/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "palipractice",
	Short: "Spaced-repetition practice for Pali inflections",
	Long:  "PaliPractice — practice queue builder for Pali noun declension and verb conjugation drills.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides PALIPRACTICE_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")

	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the YAML config honoring the --config flag.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Load(path)
}

// openStore resolves the database path (--db flag, then config file, then
// PALIPRACTICE_DB / XDG default) and opens the store.
func openStore(cmd *cobra.Command, cfg config.Config) (*store.Store, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		if err := store.EnsureDir(p); err != nil {
			return nil, err
		}
		return store.Open(p)
	}
	if cfg.DBPath != "" {
		if err := store.EnsureDir(cfg.DBPath); err != nil {
			return nil, err
		}
		return store.Open(cfg.DBPath)
	}
	p, err := store.DefaultDBPath()
	if err != nil {
		return nil, err
	}
	return store.Open(p)
}

// buildProvider loads both domains' saved settings and wraps the corpus in
// an eligibility provider.
func buildProvider(ctx context.Context, st *store.Store) (*eligibility.Provider, error) {
	decl, err := eligibility.LoadSettings(ctx, st.Settings(), grammar.Declension)
	if err != nil {
		return nil, err
	}
	conj, err := eligibility.LoadSettings(ctx, st.Settings(), grammar.Conjugation)
	if err != nil {
		return nil, err
	}
	return eligibility.NewProvider(st.Corpus(), decl, conj), nil
}

// parseDomain maps a command argument to a practice domain.
func parseDomain(arg string) (grammar.Domain, error) {
	switch arg {
	case "declension", "nouns":
		return grammar.Declension, nil
	case "conjugation", "verbs":
		return grammar.Conjugation, nil
	}
	return 0, fmt.Errorf("unknown domain %q (want declension or conjugation)", arg)
}
