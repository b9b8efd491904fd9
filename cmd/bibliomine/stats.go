package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bibliomine/bibliomine/internal/cli"
)

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show dataset counts from the event database",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, cleanup, err := getStore(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			counts, err := store.Stats(ctx)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatTitle("Dataset"))
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintf(w, "Events\t%d\n", counts.Events)
			_, _ = fmt.Fprintf(w, "Users\t%d\n", counts.Users)
			_, _ = fmt.Fprintf(w, "Books\t%d\n", counts.Books)
			_, _ = fmt.Fprintf(w, "Borrows\t%d\n", counts.Borrows)
			return w.Flush()
		},
	}
}
