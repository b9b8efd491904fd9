// Package rules derives, ranks and serves association rules mined from
// frequent itemsets.
package rules

import (
	"fmt"
	"math"
	"sort"

	"github.com/bibliomine/bibliomine/internal/common"
	"github.com/bibliomine/bibliomine/internal/model"
)

// ValidateConfidence rejects confidence thresholds outside [0, 1].
func ValidateConfidence(minConfidence float64) error {
	if math.IsNaN(minConfidence) || minConfidence < 0 || minConfidence > 1 {
		return fmt.Errorf("%w: min_confidence %v not in [0, 1]", common.ErrInvalidThreshold, minConfidence)
	}
	return nil
}

// ValidateLift rejects negative lift thresholds.
func ValidateLift(minLift float64) error {
	if math.IsNaN(minLift) || minLift < 0 {
		return fmt.Errorf("%w: min_lift %v must be >= 0", common.ErrInvalidThreshold, minLift)
	}
	return nil
}

// Generate derives association rules from the mined itemset map. Every
// itemset of size >= 2 is split into all non-empty antecedent/consequent
// partitions, enumerated antecedent-size ascending then lexicographically by
// antecedent items, so repeated runs emit rules in the same order. A rule
// survives only if its confidence and lift meet both thresholds.
//
// The itemset map must include every frequent subset of its entries (miners
// always include k=1 results); a missing subset support is an internal
// defect, not a data condition.
func Generate(itemsets map[string]model.Itemset, minConfidence, minLift float64) ([]model.AssociationRule, error) {
	if err := ValidateConfidence(minConfidence); err != nil {
		return nil, err
	}
	if err := ValidateLift(minLift); err != nil {
		return nil, err
	}

	// Deterministic itemset order: size ascending, then lexicographic.
	keys := make([]string, 0, len(itemsets))
	for key, is := range itemsets {
		if is.Size() >= 2 {
			keys = append(keys, key)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := itemsets[keys[i]], itemsets[keys[j]]
		if a.Size() != b.Size() {
			return a.Size() < b.Size()
		}
		return keys[i] < keys[j]
	})

	rules := make([]model.AssociationRule, 0, len(keys))
	for _, key := range keys {
		is := itemsets[key]
		emitted, err := partitionRules(is, itemsets, minConfidence, minLift)
		if err != nil {
			return nil, err
		}
		rules = append(rules, emitted...)
	}
	return rules, nil
}

// partitionRules enumerates every antecedent of the itemset by ascending
// size and emits the rules that clear both thresholds.
func partitionRules(is model.Itemset, itemsets map[string]model.Itemset, minConfidence, minLift float64) ([]model.AssociationRule, error) {
	var rules []model.AssociationRule
	items := is.Items

	for size := 1; size < len(items); size++ {
		for _, antecedent := range combinations(items, size) {
			consequent := complement(items, antecedent)

			antSupport, err := lookupSupport(itemsets, antecedent)
			if err != nil {
				return nil, err
			}
			conSupport, err := lookupSupport(itemsets, consequent)
			if err != nil {
				return nil, err
			}
			if antSupport == 0 || conSupport == 0 {
				return nil, fmt.Errorf("%w: zero support for subset of %s", common.ErrMissingSupport, is)
			}

			confidence := is.Support / antSupport
			lift := confidence / conSupport
			if confidence < minConfidence || lift < minLift {
				continue
			}
			rules = append(rules, model.AssociationRule{
				Antecedent: antecedent,
				Consequent: consequent,
				Support:    is.Support,
				Confidence: confidence,
				Lift:       lift,
			})
		}
	}
	return rules, nil
}

func lookupSupport(itemsets map[string]model.Itemset, items []string) (float64, error) {
	is, ok := itemsets[model.ItemsetKey(items)]
	if !ok {
		return 0, fmt.Errorf("%w: %s", common.ErrMissingSupport, model.Itemset{Items: items})
	}
	return is.Support, nil
}

// combinations returns all size-k subsets of the sorted slice items, in
// lexicographic order. Each subset is freshly allocated.
func combinations(items []string, k int) [][]string {
	var out [][]string
	cur := make([]string, 0, k)
	var walk func(start int)
	walk = func(start int) {
		if len(cur) == k {
			subset := make([]string, k)
			copy(subset, cur)
			out = append(out, subset)
			return
		}
		for i := start; i <= len(items)-(k-len(cur)); i++ {
			cur = append(cur, items[i])
			walk(i + 1)
			cur = cur[:len(cur)-1]
		}
	}
	walk(0)
	return out
}

// complement returns the items of full not present in sub. Both slices must
// be sorted; the result preserves order.
func complement(full, sub []string) []string {
	out := make([]string, 0, len(full)-len(sub))
	i := 0
	for _, item := range full {
		if i < len(sub) && item == sub[i] {
			i++
			continue
		}
		out = append(out, item)
	}
	return out
}
