package ledger

import (
	"fmt"
	"time"

	"github.com/smartspend/smartspend/internal/model"
)

// Window selects a calendar period relative to a reference date.
type Window int

// Supported report windows.
const (
	WindowThisMonth Window = iota
	WindowLastMonth
	WindowThisYear
	WindowAllTime
)

// ParseWindow maps a flag value to a Window.
func ParseWindow(s string) (Window, error) {
	switch s {
	case "this-month":
		return WindowThisMonth, nil
	case "last-month":
		return WindowLastMonth, nil
	case "this-year":
		return WindowThisYear, nil
	case "all":
		return WindowAllTime, nil
	default:
		return WindowAllTime, fmt.Errorf("invalid window %q (want this-month, last-month, this-year, or all)", s)
	}
}

func (w Window) String() string {
	switch w {
	case WindowThisMonth:
		return "this-month"
	case WindowLastMonth:
		return "last-month"
	case WindowThisYear:
		return "this-year"
	case WindowAllTime:
		return "all"
	}
	return "unknown"
}

// FilterByWindow returns the transactions whose date falls in the given
// window. Comparisons use calendar month/year equality against the
// reference date; WindowAllTime is an identity filter and returns the
// input slice unchanged.
func FilterByWindow(txns []model.Transaction, w Window, ref time.Time) []model.Transaction {
	if w == WindowAllTime {
		return txns
	}

	match := func(when time.Time) bool { return false }
	switch w {
	case WindowThisMonth:
		match = func(when time.Time) bool {
			return when.Month() == ref.Month() && when.Year() == ref.Year()
		}
	case WindowLastMonth:
		// Step back from the first of the month so a ref of e.g.
		// March 31 does not normalize into March again.
		prev := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
		match = func(when time.Time) bool {
			return when.Month() == prev.Month() && when.Year() == prev.Year()
		}
	case WindowThisYear:
		match = func(when time.Time) bool {
			return when.Year() == ref.Year()
		}
	}

	var filtered []model.Transaction
	for _, txn := range txns {
		if match(parseDate(txn)) {
			filtered = append(filtered, txn)
		}
	}
	return filtered
}
