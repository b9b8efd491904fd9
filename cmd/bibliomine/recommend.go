package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bibliomine/bibliomine/internal/cli"
	"github.com/bibliomine/bibliomine/internal/common"
)

func recommendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recommend <book-id>",
		Short: "Recommend books for readers of a given book",
		Long: `Mine association rules and return the strongest consequents of rules
whose antecedent contains the given book, in ranking order.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			bookID := args[0]

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

			topN, _ := cmd.Flags().GetInt("top")
			recs := eng.RecommendationsFor(bookID, ranked, topN)

			if output, _ := cmd.Flags().GetString("output"); output == "json" {
				return printJSON(recs)
			}

			if len(recs) == 0 {
				fmt.Println(cli.FormatWarning(fmt.Sprintf("No recommendations for %q at the current thresholds", bookID)))
				return nil
			}

			fmt.Println(cli.FormatTitle(fmt.Sprintf("Readers of %s also borrow", bookID)))
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "BOOK\tCONFIDENCE\tLIFT\tSUPPORT")
			for _, rec := range recs {
				_, _ = fmt.Fprintf(w, "%s\t%.3f\t%.3f\t%.3f\n",
					rec.BookID, rec.Confidence, rec.Lift, rec.Support)
			}
			return w.Flush()
		},
	}

	addMiningFlags(cmd)
	cmd.Flags().Int("top", 5, "maximum number of recommendations")
	return cmd
}
