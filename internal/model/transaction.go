package model

import (
	"sort"
)

// Transaction is the unit of co-occurrence: the distinct set of books one
// grouping key (usually one user) borrowed. Books are kept sorted and
// duplicate-free so downstream consumers get deterministic iteration order.
type Transaction struct {
	GroupKey string
	Books    []string
}

// NewTransaction builds a transaction from a group key and a raw book list,
// deduplicating and sorting the books.
func NewTransaction(groupKey string, books []string) Transaction {
	seen := make(map[string]struct{}, len(books))
	distinct := make([]string, 0, len(books))
	for _, b := range books {
		if b == "" {
			continue
		}
		if _, ok := seen[b]; ok {
			continue
		}
		seen[b] = struct{}{}
		distinct = append(distinct, b)
	}
	sort.Strings(distinct)
	return Transaction{GroupKey: groupKey, Books: distinct}
}

// Size returns the number of distinct books in the transaction.
func (t Transaction) Size() int {
	return len(t.Books)
}

// Contains reports whether the transaction includes every item in the given
// slice. Both t.Books and items must be sorted ascending.
func (t Transaction) Contains(items []string) bool {
	i := 0
	for _, b := range t.Books {
		if i == len(items) {
			return true
		}
		if b == items[i] {
			i++
		}
	}
	return i == len(items)
}
