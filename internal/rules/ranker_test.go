package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibliomine/bibliomine/internal/model"
)

func rule(ant, con []string, support, confidence, lift float64) model.AssociationRule {
	return model.AssociationRule{
		Antecedent: ant,
		Consequent: con,
		Support:    support,
		Confidence: confidence,
		Lift:       lift,
	}
}

func TestRank(t *testing.T) {
	tests := []struct {
		name  string
		rules []model.AssociationRule
		want  []model.AssociationRule
	}{
		{
			name: "lift descending first",
			rules: []model.AssociationRule{
				rule([]string{"A"}, []string{"B"}, 0.5, 0.9, 1.1),
				rule([]string{"C"}, []string{"D"}, 0.5, 0.5, 2.0),
			},
			want: []model.AssociationRule{
				rule([]string{"C"}, []string{"D"}, 0.5, 0.5, 2.0),
				rule([]string{"A"}, []string{"B"}, 0.5, 0.9, 1.1),
			},
		},
		{
			name: "confidence breaks lift ties",
			rules: []model.AssociationRule{
				rule([]string{"A"}, []string{"B"}, 0.5, 0.6, 1.5),
				rule([]string{"C"}, []string{"D"}, 0.5, 0.8, 1.5),
			},
			want: []model.AssociationRule{
				rule([]string{"C"}, []string{"D"}, 0.5, 0.8, 1.5),
				rule([]string{"A"}, []string{"B"}, 0.5, 0.6, 1.5),
			},
		},
		{
			name: "support breaks confidence ties",
			rules: []model.AssociationRule{
				rule([]string{"A"}, []string{"B"}, 0.3, 0.8, 1.5),
				rule([]string{"C"}, []string{"D"}, 0.6, 0.8, 1.5),
			},
			want: []model.AssociationRule{
				rule([]string{"C"}, []string{"D"}, 0.6, 0.8, 1.5),
				rule([]string{"A"}, []string{"B"}, 0.3, 0.8, 1.5),
			},
		},
		{
			name: "lexicographic final tie-break",
			rules: []model.AssociationRule{
				rule([]string{"Z"}, []string{"A"}, 0.5, 0.8, 1.5),
				rule([]string{"A"}, []string{"Z"}, 0.5, 0.8, 1.5),
				rule([]string{"A"}, []string{"B"}, 0.5, 0.8, 1.5),
			},
			want: []model.AssociationRule{
				rule([]string{"A"}, []string{"B"}, 0.5, 0.8, 1.5),
				rule([]string{"A"}, []string{"Z"}, 0.5, 0.8, 1.5),
				rule([]string{"Z"}, []string{"A"}, 0.5, 0.8, 1.5),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Rank(tt.rules)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRank_DeterministicAndNonMutating(t *testing.T) {
	input := []model.AssociationRule{
		rule([]string{"B"}, []string{"C"}, 0.5, 0.8, 1.5),
		rule([]string{"A"}, []string{"B"}, 0.5, 0.8, 1.5),
		rule([]string{"C"}, []string{"D"}, 0.4, 0.9, 2.0),
	}
	original := make([]model.AssociationRule, len(input))
	copy(original, input)

	first := Rank(input)
	second := Rank(input)
	require.Equal(t, first, second)
	assert.Equal(t, original, input, "Rank must not mutate its input")
}

func TestRecommendationsFor(t *testing.T) {
	ranked := Rank([]model.AssociationRule{
		rule([]string{"B1"}, []string{"B2"}, 0.5, 0.8, 2.0),
		rule([]string{"B1"}, []string{"B3"}, 0.4, 0.7, 1.5),
		rule([]string{"B2"}, []string{"B4"}, 0.3, 0.9, 3.0),
	})

	recs := RecommendationsFor("B1", ranked, 2)
	require.Len(t, recs, 2)
	assert.Equal(t, "B2", recs[0].BookID)
	assert.InDelta(t, 2.0, recs[0].Lift, 1e-9)
	assert.Equal(t, "B3", recs[1].BookID)
	assert.InDelta(t, 1.5, recs[1].Lift, 1e-9)
}

func TestRecommendationsFor_Behavior(t *testing.T) {
	t.Run("no matching rules yields empty list", func(t *testing.T) {
		ranked := []model.AssociationRule{
			rule([]string{"B2"}, []string{"B4"}, 0.3, 0.9, 3.0),
		}
		assert.Empty(t, RecommendationsFor("B1", ranked, 5))
	})

	t.Run("dedupes consequents keeping the strongest rule", func(t *testing.T) {
		ranked := Rank([]model.AssociationRule{
			rule([]string{"B1"}, []string{"B2"}, 0.5, 0.9, 2.5),
			rule([]string{"B1", "B3"}, []string{"B2"}, 0.4, 0.8, 1.8),
		})
		recs := RecommendationsFor("B1", ranked, 5)
		require.Len(t, recs, 1)
		assert.InDelta(t, 2.5, recs[0].Lift, 1e-9)
	})

	t.Run("multi-item consequents contribute each book", func(t *testing.T) {
		ranked := []model.AssociationRule{
			rule([]string{"B1"}, []string{"B2", "B3"}, 0.5, 0.9, 2.5),
		}
		recs := RecommendationsFor("B1", ranked, 5)
		require.Len(t, recs, 2)
		assert.Equal(t, "B2", recs[0].BookID)
		assert.Equal(t, "B3", recs[1].BookID)
	})

	t.Run("non-positive topN falls back to default", func(t *testing.T) {
		ranked := []model.AssociationRule{
			rule([]string{"B1"}, []string{"B2"}, 0.5, 0.9, 2.5),
		}
		assert.Len(t, RecommendationsFor("B1", ranked, 0), 1)
	})
}
