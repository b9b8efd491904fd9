package mining

import (
	"context"
	"sort"

	"github.com/bibliomine/bibliomine/internal/model"
)

// Apriori mines frequent itemsets level by level: candidates of size k are
// joined from frequent (k-1)-itemsets and pruned by downward closure before
// their supports are counted against the transaction list.
type Apriori struct {
	opts Options
}

// NewApriori creates a level-wise miner.
func NewApriori(opts Options) *Apriori {
	return &Apriori{opts: opts}
}

// Mine implements Miner.
func (a *Apriori) Mine(_ context.Context, transactions []model.Transaction, minSupport float64) (map[string]model.Itemset, error) {
	if err := ValidateSupport(minSupport); err != nil {
		return nil, err
	}

	result := make(map[string]model.Itemset)
	ds := intern(transactions)
	if ds.total == 0 {
		return result, nil
	}
	need := minCount(minSupport, ds.total)

	// Frequent 1-itemsets.
	var level [][]int
	for id, count := range ds.itemCounts {
		if count < need {
			continue
		}
		set := []int{id}
		level = append(level, set)
		is := ds.itemset(set, count)
		result[is.Key()] = is
	}

	maxSize := a.opts.maxSize()
	for k := 2; k <= maxSize && len(level) > 0; k++ {
		sortLevel(level)
		frequent := make(map[string]struct{}, len(level))
		for _, set := range level {
			frequent[intKey(set)] = struct{}{}
		}

		candidates := joinLevel(level, frequent)
		if len(candidates) == 0 {
			break
		}

		var next [][]int
		for _, cand := range candidates {
			count := 0
			for _, row := range ds.rows {
				if containsSorted(row, cand) {
					count++
				}
			}
			if count < need {
				continue
			}
			next = append(next, cand)
			is := ds.itemset(cand, count)
			result[is.Key()] = is
		}
		level = next
	}
	return result, nil
}

// joinLevel generates size-(k+1) candidates by joining sorted k-itemsets that
// share their first k-1 items, then drops any candidate with an infrequent
// k-subset.
func joinLevel(level [][]int, frequent map[string]struct{}) [][]int {
	var candidates [][]int
	for i := 0; i < len(level); i++ {
		for j := i + 1; j < len(level); j++ {
			a, b := level[i], level[j]
			if !samePrefix(a, b) {
				break
			}
			cand := make([]int, len(a)+1)
			copy(cand, a)
			cand[len(a)] = b[len(b)-1]
			if hasInfrequentSubset(cand, frequent) {
				continue
			}
			candidates = append(candidates, cand)
		}
	}
	return candidates
}

// samePrefix reports whether two equal-length sorted itemsets agree on all
// but their final item. Within a sorted level the join partners for a are
// contiguous, so callers break on the first mismatch.
func samePrefix(a, b []int) bool {
	for i := 0; i < len(a)-1; i++ {
		if a[i] != b[i] {
			return false
		}
	}
	return a[len(a)-1] < b[len(b)-1]
}

// hasInfrequentSubset applies downward closure: every k-subset of a
// (k+1)-candidate must itself be frequent.
func hasInfrequentSubset(cand []int, frequent map[string]struct{}) bool {
	sub := make([]int, 0, len(cand)-1)
	for drop := range cand {
		sub = sub[:0]
		for i, id := range cand {
			if i != drop {
				sub = append(sub, id)
			}
		}
		if _, ok := frequent[intKey(sub)]; !ok {
			return true
		}
	}
	return false
}

func sortLevel(level [][]int) {
	sort.Slice(level, func(i, j int) bool {
		a, b := level[i], level[j]
		for k := range a {
			if a[k] != b[k] {
				return a[k] < b[k]
			}
		}
		return false
	})
}
