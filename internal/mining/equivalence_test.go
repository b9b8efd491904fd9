package mining

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/bibliomine/bibliomine/internal/model"
)

// drawTransactions generates a random transaction set over a small book
// universe, dense enough that multi-item itemsets actually occur.
func drawTransactions(t *rapid.T) []model.Transaction {
	universe := make([]string, rapid.IntRange(1, 8).Draw(t, "books"))
	for i := range universe {
		universe[i] = fmt.Sprintf("B%d", i+1)
	}

	count := rapid.IntRange(1, 12).Draw(t, "transactions")
	transactions := make([]model.Transaction, count)
	for i := range transactions {
		books := rapid.SliceOfN(rapid.SampledFrom(universe), 1, len(universe)).Draw(t, "basket")
		transactions[i] = model.NewTransaction(fmt.Sprintf("u%d", i), books)
	}
	return transactions
}

func TestMiners_AlgorithmEquivalence(t *testing.T) {
	ctx := context.Background()
	rapid.Check(t, func(t *rapid.T) {
		transactions := drawTransactions(t)
		minSupport := rapid.Float64Range(0.05, 1).Draw(t, "min_support")

		apriori, err := NewApriori(DefaultOptions()).Mine(ctx, transactions, minSupport)
		require.NoError(t, err)
		fpgrowth, err := NewFPGrowth(DefaultOptions()).Mine(ctx, transactions, minSupport)
		require.NoError(t, err)

		require.Equal(t, apriori, fpgrowth)
	})
}

func TestMiners_DownwardClosure(t *testing.T) {
	ctx := context.Background()
	rapid.Check(t, func(t *rapid.T) {
		transactions := drawTransactions(t)
		minSupport := rapid.Float64Range(0.05, 1).Draw(t, "min_support")

		itemsets, err := NewApriori(DefaultOptions()).Mine(ctx, transactions, minSupport)
		require.NoError(t, err)

		for _, is := range itemsets {
			for drop := range is.Items {
				if is.Size() == 1 {
					continue
				}
				subset := make([]string, 0, is.Size()-1)
				for i, item := range is.Items {
					if i != drop {
						subset = append(subset, item)
					}
				}
				sub, ok := itemsets[model.ItemsetKey(subset)]
				require.True(t, ok, "subset %v of frequent %v missing", subset, is.Items)
				require.GreaterOrEqual(t, sub.Support, is.Support)
			}
		}
	})
}

func TestMiners_SupportMonotonicity(t *testing.T) {
	ctx := context.Background()
	rapid.Check(t, func(t *rapid.T) {
		transactions := drawTransactions(t)
		low := rapid.Float64Range(0.05, 0.5).Draw(t, "low")
		high := rapid.Float64Range(low, 1).Draw(t, "high")

		miner := NewApriori(DefaultOptions())
		atLow, err := miner.Mine(ctx, transactions, low)
		require.NoError(t, err)
		atHigh, err := miner.Mine(ctx, transactions, high)
		require.NoError(t, err)

		require.LessOrEqual(t, len(atHigh), len(atLow))
		for key := range atHigh {
			_, ok := atLow[key]
			require.True(t, ok, "itemset frequent at high support missing at low")
		}
	})
}
