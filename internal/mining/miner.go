// Package mining implements frequent-itemset discovery over borrow
// transactions. Two interchangeable strategies are provided: level-wise
// candidate generation (Apriori) and prefix-tree aggregation (FP-Growth).
// Both produce identical itemset-to-support mappings for the same input.
package mining

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/bibliomine/bibliomine/internal/common"
	"github.com/bibliomine/bibliomine/internal/model"
)

// Algorithm names accepted by New.
const (
	AlgorithmApriori  = "apriori"
	AlgorithmFPGrowth = "fpgrowth"
)

// DefaultMaxItemsetSize caps itemset growth to keep dense transaction sets
// from blowing up combinatorially. Expansion past the cap is truncated, not
// an error.
const DefaultMaxItemsetSize = 5

// Miner discovers every itemset whose support ratio meets minSupport. The
// returned map is keyed by model.Itemset.Key and always includes the
// 1-itemsets, which rule generation depends on. A minSupport no itemset can
// reach yields an empty map, not an error.
type Miner interface {
	Mine(ctx context.Context, transactions []model.Transaction, minSupport float64) (map[string]model.Itemset, error)
}

// Options tunes a miner.
type Options struct {
	MaxItemsetSize int
}

// DefaultOptions returns the standard miner options.
func DefaultOptions() Options {
	return Options{MaxItemsetSize: DefaultMaxItemsetSize}
}

func (o Options) maxSize() int {
	if o.MaxItemsetSize < 1 {
		return DefaultMaxItemsetSize
	}
	return o.MaxItemsetSize
}

// New returns the miner for the named algorithm.
func New(algorithm string, opts Options) (Miner, error) {
	switch strings.ToLower(algorithm) {
	case AlgorithmApriori, "":
		return NewApriori(opts), nil
	case AlgorithmFPGrowth, "fp-growth":
		return NewFPGrowth(opts), nil
	default:
		return nil, fmt.Errorf("%w: %q", common.ErrUnknownAlgorithm, algorithm)
	}
}

// ValidateSupport rejects support thresholds outside (0, 1].
func ValidateSupport(minSupport float64) error {
	if math.IsNaN(minSupport) || minSupport <= 0 || minSupport > 1 {
		return fmt.Errorf("%w: min_support %v not in (0, 1]", common.ErrInvalidThreshold, minSupport)
	}
	return nil
}

// minCount converts a support ratio into the smallest transaction count that
// satisfies it. The epsilon guards against float rounding on exact ratios
// such as 3/4.
func minCount(minSupport float64, total int) int {
	c := int(math.Ceil(minSupport*float64(total) - 1e-9))
	if c < 1 {
		c = 1
	}
	return c
}

// dataset is the interned form of the transaction list: book IDs mapped to
// dense ints so the hot loops compare integers instead of strings.
type dataset struct {
	books      []string // intern id -> book id
	itemCounts []int    // per-item transaction counts
	rows       [][]int  // transactions as sorted intern ids
	total      int
}

func intern(transactions []model.Transaction) *dataset {
	ids := make(map[string]int)
	ds := &dataset{total: len(transactions)}

	for _, txn := range transactions {
		if txn.Size() == 0 {
			ds.total--
			continue
		}
		row := make([]int, 0, txn.Size())
		for _, book := range txn.Books {
			id, ok := ids[book]
			if !ok {
				id = len(ds.books)
				ids[book] = id
				ds.books = append(ds.books, book)
				ds.itemCounts = append(ds.itemCounts, 0)
			}
			ds.itemCounts[id]++
			row = append(row, id)
		}
		sort.Ints(row)
		ds.rows = append(ds.rows, row)
	}
	return ds
}

// itemset converts interned ids back into a model.Itemset.
func (d *dataset) itemset(ids []int, count int) model.Itemset {
	items := make([]string, len(ids))
	for i, id := range ids {
		items[i] = d.books[id]
	}
	return model.NewItemset(items, count, d.total)
}

// intKey builds a map key for a sorted intern-id slice.
func intKey(ids []int) string {
	var b strings.Builder
	for i, id := range ids {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(id))
	}
	return b.String()
}

// containsSorted reports whether sorted slice row includes every id in the
// sorted slice sub.
func containsSorted(row, sub []int) bool {
	i := 0
	for _, v := range row {
		if i == len(sub) {
			return true
		}
		if v == sub[i] {
			i++
		}
	}
	return i == len(sub)
}
