package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bibliomine/bibliomine/internal/cli"
)

func insightsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "insights",
		Short: "Generate prioritized insights from the loaded events",
		Long: `Compute device, rating and temporal aggregates over the loaded events,
mine association rules, and score the combination into prioritized
insight records. With no events at all a single explanatory record is
produced; with events but no rules the raw-count fallback set is.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			events, err := loadEvents(ctx, cmd)
			if err != nil {
				return err
			}

			eng, err := newEngine()
			if err != nil {
				return err
			}
			ranked, err := eng.MineRules(ctx, events, miningParams(cmd))
			if err != nil {
				return err
			}
			records := eng.Insights(events, ranked)

			if output, _ := cmd.Flags().GetString("output"); output == "json" {
				return printJSON(records)
			}

			fmt.Println(cli.FormatTitle("Library insights"))
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "PRIORITY\tCATEGORY\tINSIGHT")
			for _, rec := range records {
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s: %s\n",
					cli.FormatPriority(rec.Priority), rec.Category, rec.Title, rec.Message)
			}
			return w.Flush()
		},
	}

	addMiningFlags(cmd)
	return cmd
}
