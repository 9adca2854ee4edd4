// Package engine orchestrates the tracker: every mutation runs through
// validation, the store, and a budget recompute, so cached category
// totals are never stale after a command returns.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/smartspend/smartspend/internal/budget"
	"github.com/smartspend/smartspend/internal/common"
	"github.com/smartspend/smartspend/internal/ledger"
	"github.com/smartspend/smartspend/internal/lifecycle"
	"github.com/smartspend/smartspend/internal/model"
	"github.com/smartspend/smartspend/internal/service"
)

// Engine ties the store, category lifecycle, and budget reconciler
// together behind the operations the CLI exposes.
type Engine struct {
	store      service.Ledger
	lifecycle  *lifecycle.Manager
	reconciler *budget.Reconciler
}

// New creates an engine.
func New(store service.Ledger, lc *lifecycle.Manager, rec *budget.Reconciler) *Engine {
	return &Engine{
		store:      store,
		lifecycle:  lc,
		reconciler: rec,
	}
}

// Startup brings the database to a usable state: the built-in category
// catalog is seeded and resynced to the active locale, then cached
// totals are recomputed from the transaction log.
func (e *Engine) Startup(ctx context.Context) error {
	if err := e.lifecycle.Startup(ctx); err != nil {
		return err
	}
	if _, err := e.reconciler.Recompute(ctx); err != nil {
		return fmt.Errorf("failed to reconcile budgets: %w", err)
	}
	return nil
}

// AddTransaction validates and stores a transaction, then recomputes
// category totals. The transaction's category must exist.
func (e *Engine) AddTransaction(ctx context.Context, txn model.Transaction) (model.Transaction, error) {
	if err := txn.Validate(); err != nil {
		return model.Transaction{}, common.NewUserError(err.Error(), common.ErrInvalidConfig)
	}
	cat, err := e.store.GetCategoryByName(ctx, txn.Category)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("failed to look up category: %w", err)
	}
	if cat == nil {
		return model.Transaction{}, common.NewUserError(
			fmt.Sprintf("No category named %q", txn.Category), common.ErrNotFound)
	}
	if cat.IsExpense != txn.IsExpense {
		return model.Transaction{}, common.NewUserError(
			fmt.Sprintf("Category %q does not match the transaction direction", txn.Category),
			common.ErrInvalidConfig)
	}

	id, err := e.store.InsertTransaction(ctx, txn)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("failed to insert transaction: %w", err)
	}
	txn.ID = id

	if _, err := e.reconciler.Recompute(ctx); err != nil {
		return model.Transaction{}, fmt.Errorf("failed to reconcile budgets: %w", err)
	}
	return txn, nil
}

// UpdateTransaction replaces a stored transaction and recomputes
// category totals.
func (e *Engine) UpdateTransaction(ctx context.Context, id int64, txn model.Transaction) error {
	if err := txn.Validate(); err != nil {
		return common.NewUserError(err.Error(), common.ErrInvalidConfig)
	}
	cat, err := e.store.GetCategoryByName(ctx, txn.Category)
	if err != nil {
		return fmt.Errorf("failed to look up category: %w", err)
	}
	if cat == nil {
		return common.NewUserError(fmt.Sprintf("No category named %q", txn.Category), common.ErrNotFound)
	}

	if err := e.store.UpdateTransaction(ctx, id, txn); err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	if _, err := e.reconciler.Recompute(ctx); err != nil {
		return fmt.Errorf("failed to reconcile budgets: %w", err)
	}
	return nil
}

// DeleteTransaction removes a transaction and recomputes category
// totals.
func (e *Engine) DeleteTransaction(ctx context.Context, id int64) error {
	if err := e.store.DeleteTransaction(ctx, id); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	if _, err := e.reconciler.Recompute(ctx); err != nil {
		return fmt.Errorf("failed to reconcile budgets: %w", err)
	}
	return nil
}

// CreateCategory adds a user category and refreshes totals.
func (e *Engine) CreateCategory(ctx context.Context, name string, allocated decimal.Decimal, isExpense bool) (model.Category, error) {
	cat, err := e.lifecycle.CreateCategory(ctx, name, allocated, isExpense)
	if err != nil {
		return model.Category{}, err
	}
	if _, err := e.reconciler.Recompute(ctx); err != nil {
		return model.Category{}, fmt.Errorf("failed to reconcile budgets: %w", err)
	}
	return cat, nil
}

// UpdateAllocation changes a category budget and refreshes totals so
// the new allocation is immediately classified.
func (e *Engine) UpdateAllocation(ctx context.Context, name string, allocated decimal.Decimal) error {
	if err := e.lifecycle.UpdateAllocation(ctx, name, allocated); err != nil {
		return err
	}
	if _, err := e.reconciler.Recompute(ctx); err != nil {
		return fmt.Errorf("failed to reconcile budgets: %w", err)
	}
	return nil
}

// DeleteCategory removes a user category, reassigning its transactions
// to the fallback bucket, then refreshes totals.
func (e *Engine) DeleteCategory(ctx context.Context, name string) error {
	if err := e.lifecycle.DeleteCategory(ctx, name); err != nil {
		return err
	}
	if _, err := e.reconciler.Recompute(ctx); err != nil {
		return fmt.Errorf("failed to reconcile budgets: %w", err)
	}
	return nil
}

// Categories returns the stored categories with their cached totals.
func (e *Engine) Categories(ctx context.Context) ([]model.Category, error) {
	return e.store.GetAllCategories(ctx)
}

// RecentTransactions returns up to limit transactions, newest first.
// A limit of zero or less returns everything.
func (e *Engine) RecentTransactions(ctx context.Context, limit int) ([]model.Transaction, error) {
	txns, err := e.store.GetAllTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	txns = ledger.SortByDateDesc(txns)
	if limit > 0 && len(txns) > limit {
		txns = txns[:limit]
	}
	return txns, nil
}

// CategoryReport is one category's slice of a summary.
type CategoryReport struct {
	Name  string
	Total decimal.Decimal
	Count int
}

// Summary is the aggregated view of one time window.
type Summary struct {
	Window       ledger.Window
	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
	NetBalance   decimal.Decimal
	Categories   []CategoryReport
	Top          []ledger.CategoryTotal
}

// Summarize aggregates the window's transactions: income and expense
// totals, net balance, per-category expense breakdown, and the top
// spending categories.
func (e *Engine) Summarize(ctx context.Context, window ledger.Window, ref time.Time, topN int) (Summary, error) {
	txns, err := e.store.GetAllTransactions(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to load transactions: %w", err)
	}
	txns = ledger.FilterByWindow(txns, window, ref)

	income := decimal.Zero
	expense := decimal.Zero
	counts := make(map[string]int)
	for _, txn := range txns {
		if txn.IsExpense {
			expense = expense.Add(txn.Amount)
			counts[txn.Category]++
		} else {
			income = income.Add(txn.Amount)
		}
	}

	top := ledger.TopCategories(txns, topN)

	// Full top list gives the per-category breakdown in descending
	// order without a second grouping pass.
	full := ledger.TopCategories(txns, len(counts))
	reports := make([]CategoryReport, 0, len(full))
	for _, ct := range full {
		reports = append(reports, CategoryReport{
			Name:  ct.Category,
			Total: ct.Total,
			Count: counts[ct.Category],
		})
	}

	return Summary{
		Window:       window,
		TotalIncome:  income,
		TotalExpense: expense,
		NetBalance:   income.Sub(expense),
		Categories:   reports,
		Top:          top,
	}, nil
}

// MonthlyTrend returns income and expense totals for the last
// monthCount calendar months, oldest first.
func (e *Engine) MonthlyTrend(ctx context.Context, monthCount int, ref time.Time) ([]ledger.TrendPoint, error) {
	txns, err := e.store.GetAllTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	return ledger.MonthlyTrend(txns, monthCount, ref), nil
}

// CategoryTrend returns one category's monthly expense totals for the
// last monthCount calendar months, oldest first.
func (e *Engine) CategoryTrend(ctx context.Context, category string, monthCount int, ref time.Time) ([]ledger.CategoryPoint, error) {
	txns, err := e.store.GetAllTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	return ledger.CategoryTrend(txns, category, monthCount, ref), nil
}

// CategoryDetail is the drill-down view of one category.
type CategoryDetail struct {
	Name         string
	Total        decimal.Decimal
	Transactions []model.Transaction
}

// CategoryDetail returns one category's transactions in the window,
// newest first, with their sum.
func (e *Engine) CategoryDetail(ctx context.Context, name string, window ledger.Window, ref time.Time) (CategoryDetail, error) {
	cat, err := e.store.GetCategoryByName(ctx, name)
	if err != nil {
		return CategoryDetail{}, fmt.Errorf("failed to look up category: %w", err)
	}
	if cat == nil {
		return CategoryDetail{}, common.NewUserError(fmt.Sprintf("No category named %q", name), common.ErrNotFound)
	}

	txns, err := e.store.GetAllTransactions(ctx)
	if err != nil {
		return CategoryDetail{}, fmt.Errorf("failed to load transactions: %w", err)
	}
	txns = ledger.FilterByWindow(txns, window, ref)

	matched := make([]model.Transaction, 0)
	total := decimal.Zero
	for _, txn := range txns {
		if txn.Category != name {
			continue
		}
		matched = append(matched, txn)
		total = total.Add(txn.Amount)
	}
	matched = ledger.SortByDateDesc(matched)

	return CategoryDetail{
		Name:         name,
		Total:        total,
		Transactions: matched,
	}, nil
}

// SeedSampleData inserts a handful of demonstration transactions into
// an empty ledger so the report commands have something to show. A
// ledger with any transaction is left alone.
func (e *Engine) SeedSampleData(ctx context.Context, now time.Time) error {
	count, err := e.store.GetTransactionCount(ctx)
	if err != nil {
		return fmt.Errorf("failed to count transactions: %w", err)
	}
	if count > 0 {
		slog.Debug("ledger not empty, skipping sample data", "transactions", count)
		return nil
	}

	samples := []struct {
		title   string
		key     string
		amount  int64
		daysAgo int
		expense bool
	}{
		{"Lunch", "cat_food", 45000, 0, true},
		{"Groceries", "cat_food", 120000, 2, true},
		{"Bus fare", "cat_transport", 7000, 1, true},
		{"Electricity bill", "cat_bills", 350000, 5, true},
		{"Monthly salary", "cat_salary", 10000000, 7, false},
	}
	for _, s := range samples {
		name, ok := e.lifecycle.DefaultName(s.key)
		if !ok {
			return fmt.Errorf("no display name for built-in key %q", s.key)
		}
		txn := model.Transaction{
			Title:     s.title,
			Amount:    decimal.NewFromInt(s.amount),
			Category:  name,
			Date:      now.AddDate(0, 0, -s.daysAgo).Format(model.DateLayout),
			IsExpense: s.expense,
		}
		if _, err := e.store.InsertTransaction(ctx, txn); err != nil {
			return fmt.Errorf("failed to insert sample transaction %q: %w", s.title, err)
		}
	}

	if _, err := e.reconciler.Recompute(ctx); err != nil {
		return fmt.Errorf("failed to reconcile budgets: %w", err)
	}
	slog.Info("seeded sample transactions", "count", len(samples))
	return nil
}
