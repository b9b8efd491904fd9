// Package basket groups borrow events into per-user transactions for mining.
package basket

import (
	"sort"

	"github.com/bibliomine/bibliomine/internal/model"
)

// GroupBy selects the grouping key used to form transactions.
type GroupBy string

// Grouping keys.
const (
	// GroupByUser puts all of a user's borrows into one basket.
	GroupByUser GroupBy = "user"
	// GroupByUserDay splits a user's borrows into one basket per calendar day.
	GroupByUserDay GroupBy = "user-day"
)

// Config controls transaction construction.
type Config struct {
	GroupBy  GroupBy
	MinBooks int // minimum distinct books per basket; baskets below are dropped
}

// DefaultConfig groups by user and keeps every non-empty basket, so singleton
// baskets still contribute to 1-itemset supports.
func DefaultConfig() Config {
	return Config{GroupBy: GroupByUser, MinBooks: 1}
}

// Builder turns cleaned events into mining transactions.
type Builder struct {
	config Config
}

// NewBuilder creates a builder with the given configuration. Zero-valued
// fields fall back to the defaults.
func NewBuilder(config Config) *Builder {
	if config.GroupBy == "" {
		config.GroupBy = GroupByUser
	}
	if config.MinBooks < 1 {
		config.MinBooks = 1
	}
	return &Builder{config: config}
}

// Build groups borrow events into transactions of distinct book IDs.
// Non-borrow events are ignored. The result is sorted by group key so two
// runs over the same events produce identical output. Empty input yields an
// empty slice; malformed rows are expected to have been filtered upstream.
func (b *Builder) Build(events []model.Event) []model.Transaction {
	if len(events) == 0 {
		return []model.Transaction{}
	}

	groups := make(map[string][]string)
	for _, ev := range events {
		if !ev.IsBorrow() || ev.UserID == "" || ev.BookID == "" {
			continue
		}
		key := b.groupKey(ev)
		groups[key] = append(groups[key], ev.BookID)
	}

	keys := make([]string, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	transactions := make([]model.Transaction, 0, len(keys))
	for _, key := range keys {
		txn := model.NewTransaction(key, groups[key])
		if txn.Size() < b.config.MinBooks {
			continue
		}
		transactions = append(transactions, txn)
	}
	return transactions
}

func (b *Builder) groupKey(ev model.Event) string {
	if b.config.GroupBy == GroupByUserDay {
		return ev.UserID + "@" + ev.BorrowedAt.Format("2006-01-02")
	}
	return ev.UserID
}
