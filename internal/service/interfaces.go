// Package service defines the contracts between the ledger core and its
// collaborators.
package service

import (
	"context"

	"github.com/smartspend/smartspend/internal/model"
)

// Ledger defines the record-store contract the core consumes. A simple
// relational table per entity is sufficient; callers serialize writes
// (one mutate-then-recompute-then-notify sequence at a time).
type Ledger interface {
	// Transaction operations.
	GetAllTransactions(ctx context.Context) ([]model.Transaction, error)
	GetTransactionByID(ctx context.Context, id int64) (*model.Transaction, error)
	GetTransactionCount(ctx context.Context) (int, error)
	InsertTransaction(ctx context.Context, txn model.Transaction) (int64, error)
	UpdateTransaction(ctx context.Context, id int64, txn model.Transaction) error
	DeleteTransaction(ctx context.Context, id int64) error
	// ReassignTransactionCategory rewrites the category field of every
	// transaction referencing fromCategory. The category-deletion
	// migration runs this before removing the category row.
	ReassignTransactionCategory(ctx context.Context, fromCategory, toCategory string) error

	// Category operations.
	GetAllCategories(ctx context.Context) ([]model.Category, error)
	GetCategoriesByType(ctx context.Context, isExpense bool) ([]model.Category, error)
	GetCategoryByName(ctx context.Context, name string) (*model.Category, error)
	InsertCategory(ctx context.Context, cat model.Category) (int64, error)
	UpdateCategory(ctx context.Context, cat model.Category) (int64, error)
	DeleteCategory(ctx context.Context, name string) error

	// Database management.
	Migrate(ctx context.Context) error
	Close() error
}

// LocaleResolver resolves the display name of a built-in category key
// for the active locale. Only the category lifecycle manager consumes
// it; user-created categories never go through name resolution.
type LocaleResolver interface {
	DisplayName(key string) (name string, ok bool)
}
