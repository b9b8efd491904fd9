package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bibliomine/bibliomine/internal/cli"
	"github.com/bibliomine/bibliomine/internal/common"
)

func mineCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mine",
		Short: "Mine co-borrowing association rules",
		Long: `Group borrow events into per-user baskets, mine frequent itemsets, and
derive ranked association rules. Thresholds default to the configured
values and can be overridden per run.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			events, err := loadEvents(ctx, cmd)
			if err != nil {
				return err
			}
			if len(events) == 0 {
				return common.NewUserError("no events loaded; run 'bibliomine import' first", common.ErrNoEvents)
			}

			eng, err := newEngine()
			if err != nil {
				return err
			}
			ranked, err := eng.MineRules(ctx, events, miningParams(cmd))
			if err != nil {
				return err
			}

			if output, _ := cmd.Flags().GetString("output"); output == "json" {
				return printJSON(ranked)
			}

			if len(ranked) == 0 {
				fmt.Println(cli.FormatWarning("No rules met the current thresholds; try lowering --min-support or --min-confidence"))
				return nil
			}

			limit, _ := cmd.Flags().GetInt("limit")
			if limit > 0 && len(ranked) > limit {
				ranked = ranked[:limit]
			}

			fmt.Println(cli.FormatTitle("Co-borrowing rules"))
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "IF BORROWED\tALSO BORROWS\tSUPPORT\tCONFIDENCE\tLIFT\tSTRENGTH")
			for _, rule := range ranked {
				_, _ = fmt.Fprintf(w, "%v\t%v\t%.3f\t%.3f\t%.3f\t%s\n",
					rule.Antecedent, rule.Consequent,
					rule.Support, rule.Confidence, rule.Lift,
					cli.FormatStrength(rule.Strength()))
			}
			return w.Flush()
		},
	}

	addMiningFlags(cmd)
	cmd.Flags().Int("limit", 25, "maximum rules to display (0 for all)")
	return cmd
}
