// Package budget reconciles aggregated spending against category
// allocations and classifies categories into alert tiers.
package budget

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/smartspend/smartspend/internal/ledger"
	"github.com/smartspend/smartspend/internal/model"
	"github.com/smartspend/smartspend/internal/service"
)

// Tier is a budget-usage classification derived from the
// spent-vs-allocated ratio.
type Tier string

// Tiers, from calm to alarming.
const (
	TierNormal   Tier = "normal"
	TierWarning  Tier = "warning"  // >= 80% of allocation used
	TierCritical Tier = "critical" // >= 90%
	TierExceeded Tier = "exceeded" // >= 100%
)

var (
	hundred           = decimal.NewFromInt(100)
	warningThreshold  = decimal.NewFromInt(80)
	criticalThreshold = decimal.NewFromInt(90)
)

// Alert is emitted for every budgeted category sitting above a tier
// threshold after a recompute. Delivery and per-category deduplication
// belong to the notification collaborator; the reconciler only
// classifies.
type Alert struct {
	CategoryName string
	Tier         Tier
	PercentUsed  float64
}

// Notifier delivers alerts to the user. Implementations are expected to
// deduplicate by category identity, since alerts repeat on every
// recompute while a category stays above a threshold.
type Notifier interface {
	Notify(ctx context.Context, alert Alert) error
}

// Classify computes percent-used and the tier for a category.
// Categories without a positive allocation are exempt (income categories
// and unbudgeted expense buckets): they always report TierNormal and a
// zero percentage, and are never evaluated against thresholds.
func Classify(cat model.Category) (Tier, float64) {
	if !cat.IsExpense || !cat.Allocated.IsPositive() {
		return TierNormal, 0
	}

	percent := cat.Spent.Div(cat.Allocated).Mul(hundred)
	used, _ := percent.Float64()

	switch {
	case percent.GreaterThanOrEqual(hundred):
		return TierExceeded, used
	case percent.GreaterThanOrEqual(criticalThreshold):
		return TierCritical, used
	case percent.GreaterThanOrEqual(warningThreshold):
		return TierWarning, used
	default:
		return TierNormal, used
	}
}

// Reconciler refreshes cached category totals from the transaction log
// and emits alerts for categories above a budget threshold.
type Reconciler struct {
	store    service.Ledger
	notifier Notifier
}

// NewReconciler creates a reconciler. The notifier may be nil, in which
// case alerts are computed but not delivered.
func NewReconciler(store service.Ledger, notifier Notifier) *Reconciler {
	return &Reconciler{
		store:    store,
		notifier: notifier,
	}
}

// Recompute rewrites every category's cached spent total from the full
// transaction set in one grouped-sum pass per direction, then classifies
// budgeted categories and emits one alert per category above a
// threshold.
//
// It always operates on the full category set rather than incrementally:
// if a prior write did not fully propagate, the next recompute
// self-heals. Alert delivery failures are logged, not returned; the
// refreshed totals stand regardless.
func (r *Reconciler) Recompute(ctx context.Context) ([]Alert, error) {
	txns, err := r.store.GetAllTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	categories, err := r.store.GetAllCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	spent := ledger.AggregateByCategory(txns, true)
	earned := ledger.AggregateByCategory(txns, false)

	var alerts []Alert
	for _, cat := range categories {
		totals := spent
		if !cat.IsExpense {
			totals = earned
		}
		total, ok := totals[cat.Name]
		if !ok {
			total = decimal.Zero
		}

		if !cat.Spent.Equal(total) {
			cat.Spent = total
			if _, err := r.store.UpdateCategory(ctx, cat); err != nil {
				return nil, fmt.Errorf("failed to update category %q: %w", cat.Name, err)
			}
		}

		tier, used := Classify(cat)
		if tier == TierNormal {
			continue
		}

		alert := Alert{CategoryName: cat.Name, Tier: tier, PercentUsed: used}
		alerts = append(alerts, alert)

		if r.notifier != nil {
			if err := r.notifier.Notify(ctx, alert); err != nil {
				slog.Warn("budget alert delivery failed",
					"category", alert.CategoryName,
					"tier", alert.Tier,
					"error", err)
			}
		}
	}

	slog.Debug("budget reconciliation complete",
		"categories", len(categories),
		"alerts", len(alerts))
	return alerts, nil
}
