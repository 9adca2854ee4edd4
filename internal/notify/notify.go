// Package notify delivers budget alerts to the user.
package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/smartspend/smartspend/internal/budget"
)

// LogNotifier writes budget alerts to the structured log, deduplicating
// per category-and-tier so a category sitting above a threshold does not
// repeat its alert on every recompute. Escalating to a higher tier
// fires again.
//
// No locking: the tracker runs single-threaded, one command at a time.
type LogNotifier struct {
	delivered map[string]budget.Tier
}

// NewLogNotifier creates a LogNotifier with an empty delivery record.
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{
		delivered: make(map[string]budget.Tier),
	}
}

// Notify delivers the alert unless this category already received an
// alert at the same or a higher tier.
func (n *LogNotifier) Notify(_ context.Context, alert budget.Alert) error {
	if prev, ok := n.delivered[alert.CategoryName]; ok && tierRank(prev) >= tierRank(alert.Tier) {
		return nil
	}
	n.delivered[alert.CategoryName] = alert.Tier

	slog.Warn(renderMessage(alert),
		"category", alert.CategoryName,
		"tier", alert.Tier,
		"percent_used", int(alert.PercentUsed))
	return nil
}

// Reset clears the delivery record so every active alert fires again on
// the next recompute.
func (n *LogNotifier) Reset() {
	n.delivered = make(map[string]budget.Tier)
}

func tierRank(t budget.Tier) int {
	switch t {
	case budget.TierExceeded:
		return 3
	case budget.TierCritical:
		return 2
	case budget.TierWarning:
		return 1
	default:
		return 0
	}
}

func renderMessage(alert budget.Alert) string {
	percent := int(alert.PercentUsed)
	switch alert.Tier {
	case budget.TierExceeded:
		return fmt.Sprintf("Alert! %s budget exceeded! You've exceeded your %s budget by %d%%.",
			alert.CategoryName, alert.CategoryName, percent-100)
	case budget.TierCritical:
		return fmt.Sprintf("Warning! %s budget nearing limit. You're at %d%% of your %s budget. Consider slowing down!",
			alert.CategoryName, percent, alert.CategoryName)
	default:
		return fmt.Sprintf("Heads up! %s budget almost full. You've used %d%% of your %s budget. Plan wisely!",
			alert.CategoryName, percent, alert.CategoryName)
	}
}
