package rules

import (
	"sort"

	"github.com/bibliomine/bibliomine/internal/model"
)

// DefaultTopN bounds recommendation lists when the caller does not say.
const DefaultTopN = 5

// Rank orders rules by lift descending, then confidence, then support, with
// a final lexicographic tie-break on antecedent and consequent so the order
// is a stable total order: identical inputs always rank identically. The
// input slice is not modified.
func Rank(rules []model.AssociationRule) []model.AssociationRule {
	ranked := make([]model.AssociationRule, len(rules))
	copy(ranked, rules)

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Lift != b.Lift {
			return a.Lift > b.Lift
		}
		if a.Confidence != b.Confidence {
			return a.Confidence > b.Confidence
		}
		if a.Support != b.Support {
			return a.Support > b.Support
		}
		ak, bk := model.ItemsetKey(a.Antecedent), model.ItemsetKey(b.Antecedent)
		if ak != bk {
			return ak < bk
		}
		return model.ItemsetKey(a.Consequent) < model.ItemsetKey(b.Consequent)
	})
	return ranked
}

// Recommendation pairs a suggested book with the statistics of the strongest
// rule that proposed it.
type Recommendation struct {
	BookID     string  `json:"book_id"`
	Confidence float64 `json:"confidence"`
	Lift       float64 `json:"lift"`
	Support    float64 `json:"support"`
}

// RecommendationsFor suggests up to topN books for readers of bookID, taken
// from ranked rules whose antecedent contains the book. Each book is
// suggested at most once, keeping the statistics of its highest-ranked rule.
func RecommendationsFor(bookID string, ranked []model.AssociationRule, topN int) []Recommendation {
	if topN <= 0 {
		topN = DefaultTopN
	}

	seen := make(map[string]struct{})
	recs := make([]Recommendation, 0, topN)
	for _, rule := range ranked {
		if !rule.HasAntecedent(bookID) {
			continue
		}
		for _, book := range rule.Consequent {
			if book == bookID {
				continue
			}
			if _, ok := seen[book]; ok {
				continue
			}
			seen[book] = struct{}{}
			recs = append(recs, Recommendation{
				BookID:     book,
				Confidence: rule.Confidence,
				Lift:       rule.Lift,
				Support:    rule.Support,
			})
			if len(recs) == topN {
				return recs
			}
		}
	}
	return recs
}
