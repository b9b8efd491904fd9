package mining

import (
	"context"
	"sort"

	"github.com/bibliomine/bibliomine/internal/model"
)

// FPGrowth mines frequent itemsets by compressing transactions into a prefix
// tree ordered by descending item frequency, then recursively extracting
// conditional trees per suffix item. No candidate enumeration is needed, so
// it scales better than Apriori on dense datasets while producing the exact
// same itemset-to-support mapping.
type FPGrowth struct {
	opts Options
}

// NewFPGrowth creates a prefix-tree miner.
func NewFPGrowth(opts Options) *FPGrowth {
	return &FPGrowth{opts: opts}
}

// Mine implements Miner.
func (f *FPGrowth) Mine(_ context.Context, transactions []model.Transaction, minSupport float64) (map[string]model.Itemset, error) {
	if err := ValidateSupport(minSupport); err != nil {
		return nil, err
	}

	result := make(map[string]model.Itemset)
	ds := intern(transactions)
	if ds.total == 0 {
		return result, nil
	}
	need := minCount(minSupport, ds.total)

	paths := make([]weightedPath, 0, len(ds.rows))
	for _, row := range ds.rows {
		paths = append(paths, weightedPath{items: row, count: 1})
	}

	f.mineTree(ds, paths, nil, need, result)
	return result, nil
}

// weightedPath is a (partial) transaction with a multiplicity, as produced by
// conditional pattern bases.
type weightedPath struct {
	items []int
	count int
}

type fpNode struct {
	children map[int]*fpNode
	parent   *fpNode
	item     int
	count    int
}

// mineTree builds the prefix tree for the given pattern base and recurses
// per suffix item. Every emitted itemset is suffix plus one frequent item,
// capped at the configured maximum size.
func (f *FPGrowth) mineTree(ds *dataset, paths []weightedPath, suffix []int, need int, result map[string]model.Itemset) {
	// Count items in this conditional base.
	counts := make(map[int]int)
	for _, p := range paths {
		for _, id := range p.items {
			counts[id] += p.count
		}
	}

	frequent := make([]int, 0, len(counts))
	for id, c := range counts {
		if c >= need {
			frequent = append(frequent, id)
		}
	}
	if len(frequent) == 0 {
		return
	}

	// Descending frequency, item id as tie-break, keeps the tree compact and
	// the build deterministic.
	sort.Slice(frequent, func(i, j int) bool {
		a, b := frequent[i], frequent[j]
		if counts[a] != counts[b] {
			return counts[a] > counts[b]
		}
		return a < b
	})
	rank := make(map[int]int, len(frequent))
	for i, id := range frequent {
		rank[id] = i
	}

	root := &fpNode{children: make(map[int]*fpNode)}
	headers := make(map[int][]*fpNode, len(frequent))
	ordered := make([]int, 0, 8)
	for _, p := range paths {
		ordered = ordered[:0]
		for _, id := range p.items {
			if _, ok := rank[id]; ok {
				ordered = append(ordered, id)
			}
		}
		sort.Slice(ordered, func(i, j int) bool { return rank[ordered[i]] < rank[ordered[j]] })

		node := root
		for _, id := range ordered {
			child, ok := node.children[id]
			if !ok {
				child = &fpNode{children: make(map[int]*fpNode), parent: node, item: id}
				node.children[id] = child
				headers[id] = append(headers[id], child)
			}
			child.count += p.count
			node = child
		}
	}

	maxSize := f.opts.maxSize()
	for _, id := range frequent {
		itemset := make([]int, 0, len(suffix)+1)
		itemset = append(itemset, suffix...)
		itemset = append(itemset, id)
		sort.Ints(itemset)

		is := ds.itemset(itemset, counts[id])
		result[is.Key()] = is

		if len(itemset) >= maxSize {
			continue
		}

		// Conditional pattern base: the prefix path above every node that
		// holds this item, weighted by the node's count.
		var base []weightedPath
		for _, node := range headers[id] {
			var prefix []int
			for p := node.parent; p != nil && p.parent != nil; p = p.parent {
				prefix = append(prefix, p.item)
			}
			if len(prefix) == 0 {
				continue
			}
			base = append(base, weightedPath{items: prefix, count: node.count})
		}
		if len(base) == 0 {
			continue
		}
		f.mineTree(ds, base, itemset, need, result)
	}
}
