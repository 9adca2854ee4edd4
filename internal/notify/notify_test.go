package notify

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartspend/smartspend/internal/budget"
)

func captureLog(t *testing.T) *strings.Builder {
	t.Helper()
	var buf strings.Builder
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestNotifyDeduplicates(t *testing.T) {
	buf := captureLog(t)
	n := NewLogNotifier()
	ctx := context.Background()

	alert := budget.Alert{CategoryName: "Food", Tier: budget.TierWarning, PercentUsed: 85}
	require.NoError(t, n.Notify(ctx, alert))
	require.NoError(t, n.Notify(ctx, alert))

	assert.Equal(t, 1, strings.Count(buf.String(), "Heads up!"),
		"repeated alert at the same tier must only log once")
}

func TestNotifyEscalationFiresAgain(t *testing.T) {
	buf := captureLog(t)
	n := NewLogNotifier()
	ctx := context.Background()

	require.NoError(t, n.Notify(ctx, budget.Alert{CategoryName: "Food", Tier: budget.TierWarning, PercentUsed: 85}))
	require.NoError(t, n.Notify(ctx, budget.Alert{CategoryName: "Food", Tier: budget.TierCritical, PercentUsed: 92}))
	require.NoError(t, n.Notify(ctx, budget.Alert{CategoryName: "Food", Tier: budget.TierExceeded, PercentUsed: 110}))

	out := buf.String()
	assert.Contains(t, out, "Heads up!")
	assert.Contains(t, out, "Warning!")
	assert.Contains(t, out, "budget exceeded!")
}

func TestNotifyDeescalationSuppressed(t *testing.T) {
	buf := captureLog(t)
	n := NewLogNotifier()
	ctx := context.Background()

	require.NoError(t, n.Notify(ctx, budget.Alert{CategoryName: "Food", Tier: budget.TierExceeded, PercentUsed: 110}))
	require.NoError(t, n.Notify(ctx, budget.Alert{CategoryName: "Food", Tier: budget.TierWarning, PercentUsed: 85}))

	assert.NotContains(t, buf.String(), "Heads up!",
		"a lower tier after exceeded must not fire")
}

func TestNotifyResetClearsRecord(t *testing.T) {
	buf := captureLog(t)
	n := NewLogNotifier()
	ctx := context.Background()

	alert := budget.Alert{CategoryName: "Food", Tier: budget.TierWarning, PercentUsed: 85}
	require.NoError(t, n.Notify(ctx, alert))
	n.Reset()
	require.NoError(t, n.Notify(ctx, alert))

	assert.Equal(t, 2, strings.Count(buf.String(), "Heads up!"))
}

func TestRenderMessage(t *testing.T) {
	tests := []struct {
		name  string
		alert budget.Alert
		want  string
	}{
		{
			name:  "exceeded reports overage",
			alert: budget.Alert{CategoryName: "Food", Tier: budget.TierExceeded, PercentUsed: 115},
			want:  "Alert! Food budget exceeded! You've exceeded your Food budget by 15%.",
		},
		{
			name:  "critical reports usage",
			alert: budget.Alert{CategoryName: "Transport", Tier: budget.TierCritical, PercentUsed: 92},
			want:  "Warning! Transport budget nearing limit. You're at 92% of your Transport budget. Consider slowing down!",
		},
		{
			name:  "warning reports usage",
			alert: budget.Alert{CategoryName: "Bills", Tier: budget.TierWarning, PercentUsed: 84},
			want:  "Heads up! Bills budget almost full. You've used 84% of your Bills budget. Plan wisely!",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, renderMessage(tt.alert))
		})
	}
}
