// Package engine wires the mining pipeline together: events become baskets,
// baskets become frequent itemsets, itemsets become ranked association rules.
package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/bibliomine/bibliomine/internal/basket"
	"github.com/bibliomine/bibliomine/internal/insight"
	"github.com/bibliomine/bibliomine/internal/mining"
	"github.com/bibliomine/bibliomine/internal/model"
	"github.com/bibliomine/bibliomine/internal/rules"
)

// Params are the thresholds and algorithm choice for one mining run.
type Params struct {
	Algorithm     string
	MinSupport    float64
	MinConfidence float64
	MinLift       float64
}

// DefaultParams returns the standard mining parameters.
func DefaultParams() Params {
	return Params{
		Algorithm:     mining.AlgorithmApriori,
		MinSupport:    0.05,
		MinConfidence: 0.5,
		MinLift:       1.0,
	}
}

// Config holds configuration options for the engine.
type Config struct {
	Basket     basket.Config
	Mining     mining.Options
	Thresholds insight.Thresholds
	CacheSize  int
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() Config {
	return Config{
		Basket:     basket.DefaultConfig(),
		Mining:     mining.DefaultOptions(),
		Thresholds: insight.DefaultThresholds(),
		CacheSize:  16,
	}
}

// Engine runs the full pipeline and memoizes ranked results per
// (dataset, params) pair. One mining run is synchronous and always runs to
// completion; the cache is the only cross-run reuse.
type Engine struct {
	builder *basket.Builder
	scorer  *insight.Scorer
	cache   *resultCache
	mining  mining.Options
}

// New creates an engine with the given configuration.
func New(config Config) (*Engine, error) {
	cache, err := newResultCache(config.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create result cache: %w", err)
	}
	return &Engine{
		builder: basket.NewBuilder(config.Basket),
		scorer:  insight.NewScorer(config.Thresholds),
		cache:   cache,
		mining:  config.Mining,
	}, nil
}

// MineRules mines co-borrowing association rules from the events and returns
// them ranked. Threshold validation fails fast; sparse data (fewer than two
// baskets, or no itemset reaching min support) is not an error and yields an
// empty, successful result that the insight scorer explains.
func (e *Engine) MineRules(ctx context.Context, events []model.Event, params Params) ([]model.AssociationRule, error) {
	if err := mining.ValidateSupport(params.MinSupport); err != nil {
		return nil, err
	}
	if err := rules.ValidateConfidence(params.MinConfidence); err != nil {
		return nil, err
	}
	if err := rules.ValidateLift(params.MinLift); err != nil {
		return nil, err
	}
	miner, err := mining.New(params.Algorithm, e.mining)
	if err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	log := slog.With("run_id", runID, "algorithm", params.Algorithm)

	key := cacheKey(events, params)
	if ranked, ok := e.cache.get(key); ok {
		log.Debug("Mining cache hit", "rules", len(ranked))
		return ranked, nil
	}

	transactions := e.builder.Build(events)
	if len(transactions) < 2 {
		log.Info("Not enough baskets to mine", "baskets", len(transactions))
		return []model.AssociationRule{}, nil
	}

	itemsets, err := miner.Mine(ctx, transactions, params.MinSupport)
	if err != nil {
		return nil, fmt.Errorf("failed to mine itemsets: %w", err)
	}
	if len(itemsets) == 0 {
		log.Info("No itemsets reached min support",
			"baskets", len(transactions),
			"min_support", params.MinSupport)
		return []model.AssociationRule{}, nil
	}

	candidates, err := rules.Generate(itemsets, params.MinConfidence, params.MinLift)
	if err != nil {
		return nil, fmt.Errorf("failed to generate rules: %w", err)
	}

	ranked := rules.Rank(candidates)
	log.Info("Mining run complete",
		"baskets", len(transactions),
		"itemsets", len(itemsets),
		"rules", len(ranked))

	e.cache.put(key, ranked)
	return ranked, nil
}

// Insights scores the events and ranked rules into prioritized findings.
func (e *Engine) Insights(events []model.Event, ranked []model.AssociationRule) []model.InsightRecord {
	return e.scorer.Score(insight.Aggregate(events), ranked)
}

// RecommendationsFor returns up to topN book suggestions for readers of
// bookID, in ranking order.
func (e *Engine) RecommendationsFor(bookID string, ranked []model.AssociationRule, topN int) []rules.Recommendation {
	return rules.RecommendationsFor(bookID, ranked, topN)
}
