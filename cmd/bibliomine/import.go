package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/bibliomine/bibliomine/internal/cli"
	"github.com/bibliomine/bibliomine/internal/importer"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <events.csv>",
		Short: "Import a borrow-events CSV into the event database",
		Long: `Parse and clean a borrow-events CSV export and store the surviving rows
in the event database. Rows missing user_id, book_id or action_type are
dropped, as are rows with out-of-range ratings or negative session
durations.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", args[0], err)
			}
			defer func() { _ = f.Close() }()

			events, report, err := importer.ReadEvents(f, importer.Options{ShowProgress: true})
			if err != nil {
				return err
			}

			store, cleanup, err := getStore(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if replace, _ := cmd.Flags().GetBool("replace"); replace {
				if err := store.Clear(ctx); err != nil {
					return err
				}
			}
			if err := store.SaveEvents(ctx, events); err != nil {
				return err
			}

			slog.Info("Import complete",
				"rows", report.Total,
				"kept", report.Kept,
				"dropped", report.Dropped())
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Imported %d events (%d rows dropped during cleaning)",
				report.Kept, report.Dropped())))
			return nil
		},
	}

	cmd.Flags().Bool("replace", false, "clear existing events before importing")
	return cmd
}
