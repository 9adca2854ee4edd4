// Package model defines the core domain types for the ledger.
package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Category is a named bucket (expense or income) that transactions are
// classified under, optionally carrying a budget allocation.
//
// Spent is a cache: it must equal the aggregation engine's recomputation
// over current transactions, and is rewritten by the budget reconciler
// after every mutation. It is never authoritative.
type Category struct {
	Name      string
	Key       string
	Allocated decimal.Decimal
	Spent     decimal.Decimal
	ID        int64
	IsExpense bool
}

// IsDefault reports whether the category is a built-in shipped with the
// app. Built-ins carry a stable key, have their display name re-derived
// from the active locale at startup, and cannot be deleted.
func (c *Category) IsDefault() bool {
	return c.Key != ""
}

// Validate checks the fields a caller must supply before persisting.
func (c *Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if c.Allocated.IsNegative() {
		return fmt.Errorf("allocated amount cannot be negative, got %s", c.Allocated)
	}
	if c.Spent.IsNegative() {
		return fmt.Errorf("spent amount cannot be negative, got %s", c.Spent)
	}
	return nil
}
