package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/smartspend/smartspend/internal/model"
)

func TestMonthlyTrend(t *testing.T) {
	ref := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)
	txns := []model.Transaction{
		txn("Lunch", "Food", "14 Jan 2026", 45000, true),
		txn("Paycheck", "Salary", "01 Jan 2026", 10000000, false),
		txn("Dinner", "Food", "20 Mar 2026", 60000, true),
		txn("Too old", "Food", "10 Dec 2025", 99999, true),
	}

	points := MonthlyTrend(txns, 3, ref)
	if len(points) != 3 {
		t.Fatalf("Points = %d, want exactly 3", len(points))
	}

	if points[0].Month != "Jan 2026" || points[1].Month != "Feb 2026" || points[2].Month != "Mar 2026" {
		t.Errorf("Labels = [%s, %s, %s], want oldest first Jan/Feb/Mar 2026",
			points[0].Month, points[1].Month, points[2].Month)
	}

	if !points[0].Expense.Equal(decimal.NewFromInt(45000)) {
		t.Errorf("Jan expense = %s, want 45000", points[0].Expense)
	}
	if !points[0].Income.Equal(decimal.NewFromInt(10000000)) {
		t.Errorf("Jan income = %s, want 10000000", points[0].Income)
	}

	// February had no activity but still gets a zero bucket.
	if !points[1].Income.IsZero() || !points[1].Expense.IsZero() {
		t.Errorf("Feb bucket = %+v, want zeros", points[1])
	}

	if !points[2].Expense.Equal(decimal.NewFromInt(60000)) {
		t.Errorf("Mar expense = %s, want 60000", points[2].Expense)
	}
}

func TestMonthlyTrendYearBoundary(t *testing.T) {
	ref := time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC)
	txns := []model.Transaction{
		txn("December spend", "Food", "20 Dec 2025", 1000, true),
		txn("January spend", "Food", "05 Jan 2026", 2000, true),
	}

	points := MonthlyTrend(txns, 2, ref)
	if len(points) != 2 {
		t.Fatalf("Points = %d, want 2", len(points))
	}
	if points[0].Month != "Dec 2025" {
		t.Errorf("Oldest bucket = %s, want Dec 2025", points[0].Month)
	}
	if !points[0].Expense.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("Dec expense = %s, want 1000", points[0].Expense)
	}
	if !points[1].Expense.Equal(decimal.NewFromInt(2000)) {
		t.Errorf("Jan expense = %s, want 2000", points[1].Expense)
	}
}

func TestMonthlyTrendInvalidCount(t *testing.T) {
	if got := MonthlyTrend(nil, 0, time.Now()); got != nil {
		t.Errorf("MonthlyTrend with count 0 = %v, want nil", got)
	}
	if got := MonthlyTrend(nil, -3, time.Now()); got != nil {
		t.Errorf("MonthlyTrend with negative count = %v, want nil", got)
	}
}

func TestCategoryTrend(t *testing.T) {
	ref := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)
	txns := []model.Transaction{
		txn("Lunch", "Food", "14 Jan 2026", 45000, true),
		txn("Bus", "Transport", "14 Jan 2026", 7000, true),
		txn("Groceries", "Food", "03 Feb 2026", 30000, true),
		txn("Food refund", "Food", "03 Feb 2026", 5000, false),
	}

	points := CategoryTrend(txns, "Food", 2, ref)
	if len(points) != 2 {
		t.Fatalf("Points = %d, want 2", len(points))
	}
	if !points[0].Total.Equal(decimal.NewFromInt(45000)) {
		t.Errorf("Jan total = %s, want 45000", points[0].Total)
	}
	// Only expenses count; the income record in Feb is excluded.
	if !points[1].Total.Equal(decimal.NewFromInt(30000)) {
		t.Errorf("Feb total = %s, want 30000", points[1].Total)
	}
}
