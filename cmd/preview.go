package cmd

import (
	"fmt"
	"math/rand"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"palipractice/internal/practice"
)

var previewCmd = &cobra.Command{
	Use:   "preview <declension|conjugation>",
	Short: "Build and print a practice queue without starting a session",
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

		count, _ := cmd.Flags().GetInt("count")
		if count <= 0 {
			count = cfg.QueueSize
		}

		ctx := cmd.Context()
		provider, err := buildProvider(ctx, st)
		if err != nil {
			return err
		}

		opts := []practice.Option{}
		if seed, _ := cmd.Flags().GetInt64("seed"); seed != 0 {
			opts = append(opts, practice.WithRandSource(rand.NewSource(seed)))
		}
		builder := practice.NewBuilder(provider, st.Reviews(), st.Difficulty(), st.Corpus(), opts...)

		queue, err := builder.BuildQueue(ctx, domain, count)
		if err != nil {
			return err
		}
		if len(queue) == 0 {
			fmt.Println("No eligible material. Adjust settings or load a training database.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "#\tFORM ID\tLEMMA\tCOMBO\tSOURCE\tPRIORITY\tLEVEL")
		for i, it := range queue {
			fmt.Fprintf(w, "%d\t%d\t%d\t%s\t%s\t%.2f\t%d\n",
				i+1, it.FormID, it.LemmaID, it.Combo, it.Source, it.Priority, it.MasteryLevel)
		}
		return w.Flush()
	},
}

func init() {
	previewCmd.Flags().Int("count", 0, "Queue length (defaults to config queue_size)")
	previewCmd.Flags().Int64("seed", 0, "Fixed random seed for a reproducible queue")
}
