package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the only accepted textual form for transaction dates,
// e.g. "14 Jan 2026". Month abbreviations are always English regardless
// of the configured display locale, so stored dates stay unambiguous
// across device language changes.
const DateLayout = "02 Jan 2006"

// Epoch is the sentinel date substituted for unparsable date strings so
// malformed records sort to the oldest position instead of aborting a
// batch computation.
var Epoch = time.Unix(0, 0).UTC()

// Transaction represents a single income or expense entry in the ledger.
// Category is a soft reference to Category.Name by value: renaming a
// category does not rewrite transactions, and deletion requires an
// explicit migration step.
type Transaction struct {
	Title     string
	Category  string
	Date      string
	Amount    decimal.Decimal
	ID        int64
	IsExpense bool
}

// ParseDate parses a date string in DateLayout.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// Time returns the transaction date, substituting the epoch sentinel
// when the stored string does not parse. ok is false on substitution.
func (t *Transaction) Time() (parsed time.Time, ok bool) {
	parsed, err := ParseDate(t.Date)
	if err != nil {
		return Epoch, false
	}
	return parsed, true
}

// Validate checks the fields a caller must supply before persisting.
// The date string is deliberately not parsed here: a malformed date is a
// data-quality anomaly handled at aggregation time, not a rejection.
func (t *Transaction) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if t.Amount.IsNegative() {
		return fmt.Errorf("amount cannot be negative, got %s", t.Amount)
	}
	if strings.TrimSpace(t.Category) == "" {
		return fmt.Errorf("category is required")
	}
	if strings.TrimSpace(t.Date) == "" {
		return fmt.Errorf("date is required")
	}
	return nil
}
