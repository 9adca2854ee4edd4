// Package ledger implements the aggregation engine: pure functions that
// derive per-category totals, time-bucketed trends, and rankings from an
// in-memory transaction list. Nothing in this package mutates the store.
package ledger

import (
	"log/slog"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/smartspend/smartspend/internal/model"
)

// AggregateByCategory filters transactions to the given direction,
// groups by category name, and sums amounts per group.
//
// Categories with no matching transactions are absent from the result,
// not zero-valued: callers merging against the category catalog must
// default-fill with zero. Grouping is exact string equality on the
// category field, with no case or whitespace normalization.
func AggregateByCategory(txns []model.Transaction, isExpense bool) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	for _, txn := range txns {
		if txn.IsExpense != isExpense {
			continue
		}
		totals[txn.Category] = totals[txn.Category].Add(txn.Amount)
	}
	return totals
}

// CategoryTotal is one entry of a category ranking.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
}

// TopCategories groups the expense transactions by category and returns
// at most n entries in descending order of total. Ties keep the order in
// which categories first appear in the input; presentation-side
// reversals (largest bar on top) are a view concern.
func TopCategories(txns []model.Transaction, n int) []CategoryTotal {
	if n <= 0 {
		return nil
	}

	totals := make(map[string]decimal.Decimal)
	var order []string
	for _, txn := range txns {
		if !txn.IsExpense {
			continue
		}
		if _, seen := totals[txn.Category]; !seen {
			order = append(order, txn.Category)
		}
		totals[txn.Category] = totals[txn.Category].Add(txn.Amount)
	}

	ranked := make([]CategoryTotal, 0, len(order))
	for _, name := range order {
		ranked = append(ranked, CategoryTotal{Category: name, Total: totals[name]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Total.GreaterThan(ranked[j].Total)
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// FilterExpenses returns only the expense transactions.
func FilterExpenses(txns []model.Transaction) []model.Transaction {
	var expenses []model.Transaction
	for _, txn := range txns {
		if txn.IsExpense {
			expenses = append(expenses, txn)
		}
	}
	return expenses
}

// SortByDateDesc returns a copy of the transactions ordered newest
// first. Records with unparsable dates take the epoch sentinel and land
// at the end.
func SortByDateDesc(txns []model.Transaction) []model.Transaction {
	type dated struct {
		when time.Time
		txn  model.Transaction
	}

	items := make([]dated, len(txns))
	for i, txn := range txns {
		items[i] = dated{when: parseDate(txn), txn: txn}
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].when.After(items[j].when)
	})

	sorted := make([]model.Transaction, len(items))
	for i, item := range items {
		sorted[i] = item.txn
	}
	return sorted
}

// parseDate applies the epoch-sentinel rule for batch computations: a
// malformed date string is logged as a data-quality event and
// substituted, never allowed to abort the computation.
func parseDate(txn model.Transaction) time.Time {
	parsed, ok := txn.Time()
	if !ok {
		slog.Warn("unparsable transaction date, substituting epoch",
			"date", txn.Date,
			"transaction_id", txn.ID)
	}
	return parsed
}
