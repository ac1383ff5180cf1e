package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"palipractice/internal/eligibility"
)

var settingsCmd = &cobra.Command{
	Use:   "settings <declension|conjugation>",
	Short: "Show the saved practice filters for a domain",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		domain, err := parseDomain(args[0])
		if err != nil {
			return err
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		st, err := openStore(cmd, cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		s, err := eligibility.LoadSettings(cmd.Context(), st.Settings(), domain)
		if err != nil {
			return err
		}
		out, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}
