package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"palipractice/internal/grammar"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show due counts, answer totals and the hardest combinations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		st, err := openStore(cmd, cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()
		now := time.Now().UTC()

		for _, domain := range []grammar.Domain{grammar.Declension, grammar.Conjugation} {
			due, err := st.Reviews().DueCount(ctx, domain, now)
			if err != nil {
				return err
			}
			answers, err := st.Events().Stats(ctx, domain)
			if err != nil {
				return err
			}
			fmt.Printf("%s: %d due", domain, due)
			if answers.Total > 0 {
				fmt.Printf(", %d answers (%.0f%% correct) over %d sessions",
					answers.Total, 100*float64(answers.Correct)/float64(answers.Total), answers.Sessions)
			}
			fmt.Println()

			hardest, err := st.Difficulty().Hardest(ctx, domain, 5)
			if err != nil {
				return err
			}
			for _, d := range hardest {
				fmt.Printf("  hard: %-20s difficulty %.2f (%d samples)\n", d.Combo, d.Difficulty, d.Samples)
			}
		}
		return nil
	},
}
