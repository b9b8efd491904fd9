package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibliomine/bibliomine/internal/common"
	"github.com/bibliomine/bibliomine/internal/mining"
	"github.com/bibliomine/bibliomine/internal/model"
)

// fixtureEvents spreads the reference baskets {B1,B2}, {B1,B2,B3}, {B1,B2},
// {B3} across four users.
func fixtureEvents() []model.Event {
	at := time.Date(2024, 3, 4, 14, 0, 0, 0, time.UTC)
	baskets := map[string][]string{
		"u1": {"B1", "B2"},
		"u2": {"B1", "B2", "B3"},
		"u3": {"B1", "B2"},
		"u4": {"B3"},
	}
	var events []model.Event
	for _, user := range []string{"u1", "u2", "u3", "u4"} {
		for _, book := range baskets[user] {
			events = append(events, model.Event{
				UserID: user, BookID: book,
				Action: model.ActionBorrow, BorrowedAt: at,
			})
		}
	}
	return events
}

func fixtureParams() Params {
	return Params{
		Algorithm:     mining.AlgorithmApriori,
		MinSupport:    0.5,
		MinConfidence: 0.5,
		MinLift:       1.0,
	}
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	eng, err := New(DefaultConfig())
	require.NoError(t, err)
	return eng
}

func TestEngine_MineRules(t *testing.T) {
	ctx := context.Background()
	eng := newTestEngine(t)

	ranked, err := eng.MineRules(ctx, fixtureEvents(), fixtureParams())
	require.NoError(t, err)
	require.Len(t, ranked, 2)

	for _, rule := range ranked {
		assert.InDelta(t, 0.75, rule.Support, 1e-9)
		assert.InDelta(t, 1.0, rule.Confidence, 1e-9)
		assert.InDelta(t, 4.0/3.0, rule.Lift, 1e-9)
	}
	// Equal lift, confidence and support: lexicographic antecedent tie-break.
	assert.Equal(t, []string{"B1"}, ranked[0].Antecedent)
	assert.Equal(t, []string{"B2"}, ranked[1].Antecedent)
}

func TestEngine_AlgorithmsAgree(t *testing.T) {
	ctx := context.Background()
	eng := newTestEngine(t)

	params := fixtureParams()
	apriori, err := eng.MineRules(ctx, fixtureEvents(), params)
	require.NoError(t, err)

	params.Algorithm = mining.AlgorithmFPGrowth
	fpgrowth, err := eng.MineRules(ctx, fixtureEvents(), params)
	require.NoError(t, err)

	assert.Equal(t, apriori, fpgrowth)
}

func TestEngine_InvalidThresholds(t *testing.T) {
	ctx := context.Background()
	eng := newTestEngine(t)

	tests := []struct {
		mutate func(*Params)
		name   string
	}{
		{name: "zero support", mutate: func(p *Params) { p.MinSupport = 0 }},
		{name: "support above one", mutate: func(p *Params) { p.MinSupport = 1.5 }},
		{name: "negative confidence", mutate: func(p *Params) { p.MinConfidence = -0.5 }},
		{name: "negative lift", mutate: func(p *Params) { p.MinLift = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := fixtureParams()
			tt.mutate(&params)
			_, err := eng.MineRules(ctx, fixtureEvents(), params)
			assert.ErrorIs(t, err, common.ErrInvalidThreshold)
		})
	}

	t.Run("unknown algorithm", func(t *testing.T) {
		params := fixtureParams()
		params.Algorithm = "eclat"
		_, err := eng.MineRules(ctx, fixtureEvents(), params)
		assert.ErrorIs(t, err, common.ErrUnknownAlgorithm)
	})
}

func TestEngine_SparseDataDegrades(t *testing.T) {
	ctx := context.Background()
	eng := newTestEngine(t)

	t.Run("no events", func(t *testing.T) {
		ranked, err := eng.MineRules(ctx, nil, fixtureParams())
		require.NoError(t, err)
		assert.Empty(t, ranked)
	})

	t.Run("single basket", func(t *testing.T) {
		events := []model.Event{
			{UserID: "u1", BookID: "B1", Action: model.ActionBorrow},
			{UserID: "u1", BookID: "B2", Action: model.ActionBorrow},
		}
		ranked, err := eng.MineRules(ctx, events, fixtureParams())
		require.NoError(t, err)
		assert.Empty(t, ranked)
	})

	t.Run("unreachable support", func(t *testing.T) {
		params := fixtureParams()
		params.MinSupport = 1.0
		params.MinConfidence = 1.0
		ranked, err := eng.MineRules(ctx, fixtureEvents(), params)
		require.NoError(t, err)
		assert.Empty(t, ranked)
	})
}

func TestEngine_Insights(t *testing.T) {
	ctx := context.Background()
	eng := newTestEngine(t)

	t.Run("empty input yields the fallback set", func(t *testing.T) {
		records := eng.Insights(nil, nil)
		require.NotEmpty(t, records)
	})

	t.Run("mined rules surface as association insights", func(t *testing.T) {
		events := fixtureEvents()
		ranked, err := eng.MineRules(ctx, events, fixtureParams())
		require.NoError(t, err)

		records := eng.Insights(events, ranked)
		require.NotEmpty(t, records)

		found := false
		for _, rec := range records {
			if rec.Category == model.CategoryAssociation {
				found = true
			}
		}
		assert.True(t, found)
	})
}

func TestEngine_RecommendationsFor(t *testing.T) {
	ctx := context.Background()
	eng := newTestEngine(t)

	ranked, err := eng.MineRules(ctx, fixtureEvents(), fixtureParams())
	require.NoError(t, err)

	recs := eng.RecommendationsFor("B1", ranked, 2)
	require.Len(t, recs, 1)
	assert.Equal(t, "B2", recs[0].BookID)
	assert.InDelta(t, 1.0, recs[0].Confidence, 1e-9)

	assert.Empty(t, eng.RecommendationsFor("B3", ranked, 2))
}

func TestEngine_RankingDeterminism(t *testing.T) {
	ctx := context.Background()

	// Fresh engines so the cache cannot mask a nondeterministic pipeline.
	first, err := New(DefaultConfig())
	require.NoError(t, err)
	second, err := New(DefaultConfig())
	require.NoError(t, err)

	a, err := first.MineRules(ctx, fixtureEvents(), fixtureParams())
	require.NoError(t, err)
	b, err := second.MineRules(ctx, fixtureEvents(), fixtureParams())
	require.NoError(t, err)

	assert.Equal(t, a, b)
}
