package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/smartspend/smartspend/internal/model"
)

// monthLabelLayout renders trend bucket labels, e.g. "Jan 2026".
const monthLabelLayout = "Jan 2006"

// TrendPoint is one calendar-month bucket of the income/expense trend.
type TrendPoint struct {
	Month   string
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// CategoryPoint is one calendar-month bucket of a single-category
// drill-down trend.
type CategoryPoint struct {
	Month string
	Total decimal.Decimal
}

// monthIndex maps a time to a bucket offset relative to start, where
// start is the first day of the oldest bucket's month. Buckets count
// whole calendar months.
func monthIndex(start, when time.Time) int {
	return (when.Year()-start.Year())*12 + int(when.Month()-start.Month())
}

// trendStart returns the first day of the oldest of monthCount months
// ending at the month containing ref.
func trendStart(monthCount int, ref time.Time) time.Time {
	first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
	return first.AddDate(0, -(monthCount - 1), 0)
}

// MonthlyTrend produces exactly monthCount buckets ending at the month
// containing ref, oldest first. Each bucket sums income and expense
// separately over transactions dated in that calendar month. Months with
// no transactions yield zero-valued buckets rather than being omitted,
// so the result length is always monthCount and charts render stably.
func MonthlyTrend(txns []model.Transaction, monthCount int, ref time.Time) []TrendPoint {
	if monthCount <= 0 {
		return nil
	}

	start := trendStart(monthCount, ref)
	points := make([]TrendPoint, monthCount)
	for i := range points {
		points[i] = TrendPoint{
			Month:   start.AddDate(0, i, 0).Format(monthLabelLayout),
			Income:  decimal.Zero,
			Expense: decimal.Zero,
		}
	}

	for _, txn := range txns {
		idx := monthIndex(start, parseDate(txn))
		if idx < 0 || idx >= monthCount {
			continue
		}
		if txn.IsExpense {
			points[idx].Expense = points[idx].Expense.Add(txn.Amount)
		} else {
			points[idx].Income = points[idx].Income.Add(txn.Amount)
		}
	}

	return points
}

// CategoryTrend is MonthlyTrend restricted to the expense transactions
// of a single category; it backs the category drill-down line chart.
func CategoryTrend(txns []model.Transaction, categoryName string, monthCount int, ref time.Time) []CategoryPoint {
	if monthCount <= 0 {
		return nil
	}

	start := trendStart(monthCount, ref)
	points := make([]CategoryPoint, monthCount)
	for i := range points {
		points[i] = CategoryPoint{
			Month: start.AddDate(0, i, 0).Format(monthLabelLayout),
			Total: decimal.Zero,
		}
	}

	for _, txn := range txns {
		if !txn.IsExpense || txn.Category != categoryName {
			continue
		}
		idx := monthIndex(start, parseDate(txn))
		if idx < 0 || idx >= monthCount {
			continue
		}
		points[idx].Total = points[idx].Total.Add(txn.Amount)
	}

	return points
}
