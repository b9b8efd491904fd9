package model

import (
	"sort"
	"strings"
)

// itemsetSep joins itemset keys. The unit separator never appears in book
// identifiers, so keys are collision-free.
const itemsetSep = "\x1f"

// Itemset is a non-empty set of book identifiers together with the number of
// transactions containing all of them and the corresponding support ratio.
// Itemsets are immutable once computed.
type Itemset struct {
	Items   []string
	Count   int
	Support float64
}

// NewItemset builds an itemset over a copy of items, sorted ascending.
func NewItemset(items []string, count, totalTransactions int) Itemset {
	sorted := make([]string, len(items))
	copy(sorted, items)
	sort.Strings(sorted)

	support := 0.0
	if totalTransactions > 0 {
		support = float64(count) / float64(totalTransactions)
	}
	return Itemset{Items: sorted, Count: count, Support: support}
}

// Key returns the canonical map key for the itemset.
func (s Itemset) Key() string {
	return ItemsetKey(s.Items)
}

// Size returns the number of items in the set.
func (s Itemset) Size() int {
	return len(s.Items)
}

// String renders the itemset for logs and tables, e.g. "{B1, B2}".
func (s Itemset) String() string {
	return "{" + strings.Join(s.Items, ", ") + "}"
}

// ItemsetKey returns the canonical key for a sorted item slice.
func ItemsetKey(items []string) string {
	return strings.Join(items, itemsetSep)
}

// ItemsFromKey splits a canonical key back into its items.
func ItemsFromKey(key string) []string {
	if key == "" {
		return nil
	}
	return strings.Split(key, itemsetSep)
}
