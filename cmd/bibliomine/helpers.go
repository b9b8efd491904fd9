package main

import (
	"context"
	"fmt"
	"os"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bibliomine/bibliomine/internal/basket"
	"github.com/bibliomine/bibliomine/internal/engine"
	"github.com/bibliomine/bibliomine/internal/importer"
	"github.com/bibliomine/bibliomine/internal/insight"
	"github.com/bibliomine/bibliomine/internal/mining"
	"github.com/bibliomine/bibliomine/internal/model"
	"github.com/bibliomine/bibliomine/internal/storage"
)

// getStore opens the configured event database, migrated to the current
// schema. The returned cleanup closes it.
func getStore(ctx context.Context) (*storage.SQLiteStore, func(), error) {
	store, err := storage.NewSQLiteStore(viper.GetString("database.path"))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open event database: %w", err)
	}
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, func() { _ = store.Close() }, nil
}

// loadEvents reads events either from the --input CSV, when given, or from
// the event database.
func loadEvents(ctx context.Context, cmd *cobra.Command) ([]model.Event, error) {
	if input, _ := cmd.Flags().GetString("input"); input != "" {
		f, err := os.Open(input)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", input, err)
		}
		defer func() { _ = f.Close() }()

		events, _, err := importer.ReadEvents(f, importer.Options{})
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", input, err)
		}
		return events, nil
	}

	store, cleanup, err := getStore(ctx)
	if err != nil {
		return nil, err
	}
	defer cleanup()
	return store.ListEvents(ctx)
}

// newEngine builds the engine from viper configuration.
func newEngine() (*engine.Engine, error) {
	return engine.New(engine.Config{
		Basket: basket.Config{
			GroupBy:  basket.GroupBy(viper.GetString("basket.group_by")),
			MinBooks: viper.GetInt("basket.min_books"),
		},
		Mining: mining.Options{
			MaxItemsetSize: viper.GetInt("mining.max_itemset_size"),
		},
		Thresholds: insight.DefaultThresholds(),
		CacheSize:  viper.GetInt("mining.cache_size"),
	})
}

// miningParams merges viper defaults with command-line flag overrides.
func miningParams(cmd *cobra.Command) engine.Params {
	params := engine.Params{
		Algorithm:     viper.GetString("mining.algorithm"),
		MinSupport:    viper.GetFloat64("mining.min_support"),
		MinConfidence: viper.GetFloat64("mining.min_confidence"),
		MinLift:       viper.GetFloat64("mining.min_lift"),
	}
	if cmd.Flags().Changed("min-support") {
		params.MinSupport, _ = cmd.Flags().GetFloat64("min-support")
	}
	if cmd.Flags().Changed("min-confidence") {
		params.MinConfidence, _ = cmd.Flags().GetFloat64("min-confidence")
	}
	if cmd.Flags().Changed("min-lift") {
		params.MinLift, _ = cmd.Flags().GetFloat64("min-lift")
	}
	if cmd.Flags().Changed("algorithm") {
		params.Algorithm, _ = cmd.Flags().GetString("algorithm")
	}
	return params
}

// addMiningFlags registers the threshold flags shared by mining commands.
func addMiningFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("min-support", 0.05, "minimum itemset support in (0,1]")
	cmd.Flags().Float64("min-confidence", 0.5, "minimum rule confidence in [0,1]")
	cmd.Flags().Float64("min-lift", 1.0, "minimum rule lift")
	cmd.Flags().String("algorithm", "apriori", "mining algorithm (apriori, fpgrowth)")
	cmd.Flags().String("input", "", "read events from a CSV file instead of the database")
	cmd.Flags().String("output", "table", "output format (table, json)")
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}
