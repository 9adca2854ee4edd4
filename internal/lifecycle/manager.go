// Package lifecycle manages the category catalog: seeding the built-in
// set, keeping built-in names in sync with the active locale, and
// enforcing the creation and deletion rules for user categories.
package lifecycle

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/smartspend/smartspend/internal/common"
	"github.com/smartspend/smartspend/internal/model"
	"github.com/smartspend/smartspend/internal/service"
)

// Manager owns category lifecycle rules on top of the store.
type Manager struct {
	store  service.Ledger
	locale service.LocaleResolver
}

// NewManager creates a lifecycle manager.
func NewManager(store service.Ledger, locale service.LocaleResolver) *Manager {
	return &Manager{
		store:  store,
		locale: locale,
	}
}

// Startup prepares the catalog: built-in names are resynced to the
// active locale first, then the built-in set is seeded if this is a
// fresh database. Order matters; syncing first means a locale change
// renames existing built-ins instead of colliding with a fresh seed.
func (m *Manager) Startup(ctx context.Context) error {
	if err := m.syncDefaultNames(ctx); err != nil {
		return fmt.Errorf("failed to sync built-in category names: %w", err)
	}
	if err := m.seedDefaults(ctx); err != nil {
		return fmt.Errorf("failed to seed built-in categories: %w", err)
	}
	return nil
}

// syncDefaultNames renames every stored built-in category whose name no
// longer matches the active locale. User categories are untouched.
func (m *Manager) syncDefaultNames(ctx context.Context) error {
	categories, err := m.store.GetAllCategories(ctx)
	if err != nil {
		return err
	}

	for _, cat := range categories {
		if !cat.IsDefault() {
			continue
		}
		want, ok := m.locale.DisplayName(cat.Key)
		if !ok || cat.Name == want {
			continue
		}
		cat.Name = want
		if _, err := m.store.UpdateCategory(ctx, cat); err != nil {
			return fmt.Errorf("failed to rename category %q: %w", cat.Key, err)
		}
	}
	return nil
}

// seedDefaults inserts the built-in catalog into an empty database. The
// seed is all-or-nothing: if any built-in already exists the whole pass
// is skipped, so a partially renamed catalog is never double-seeded.
func (m *Manager) seedDefaults(ctx context.Context) error {
	categories, err := m.store.GetAllCategories(ctx)
	if err != nil {
		return err
	}
	for _, cat := range categories {
		if cat.IsDefault() {
			return nil
		}
	}

	for _, def := range defaultCatalog {
		name, ok := m.locale.DisplayName(def.Key)
		if !ok {
			return fmt.Errorf("no display name for built-in key %q", def.Key)
		}
		cat := model.Category{
			Name:      name,
			Key:       def.Key,
			Allocated: decimal.Zero,
			Spent:     decimal.Zero,
			IsExpense: def.IsExpense,
		}
		if _, err := m.store.InsertCategory(ctx, cat); err != nil {
			return fmt.Errorf("failed to insert built-in category %q: %w", name, err)
		}
	}
	return nil
}

// CreateCategory validates and stores a user-defined category. Names
// are trimmed; duplicates are rejected; income categories never carry
// an allocation.
func (m *Manager) CreateCategory(ctx context.Context, name string, allocated decimal.Decimal, isExpense bool) (model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Category{}, common.NewUserError("Category name cannot be empty", common.ErrInvalidConfig)
	}
	if allocated.IsNegative() {
		return model.Category{}, common.NewUserError("Budget cannot be negative", common.ErrInvalidConfig)
	}

	existing, err := m.store.GetCategoryByName(ctx, name)
	if err != nil {
		return model.Category{}, fmt.Errorf("failed to check for existing category: %w", err)
	}
	if existing != nil {
		return model.Category{}, common.NewUserError(fmt.Sprintf("A category named %q already exists", name),
			common.ErrDuplicateEntry)
	}

	if !isExpense {
		allocated = decimal.Zero
	}

	cat := model.Category{
		Name:      name,
		Allocated: allocated,
		Spent:     decimal.Zero,
		IsExpense: isExpense,
	}
	id, err := m.store.InsertCategory(ctx, cat)
	if err != nil {
		return model.Category{}, fmt.Errorf("failed to insert category: %w", err)
	}
	cat.ID = id
	return cat, nil
}

// UpdateAllocation changes a category's budget. Income categories are
// rejected since they carry no allocation.
func (m *Manager) UpdateAllocation(ctx context.Context, name string, allocated decimal.Decimal) error {
	if allocated.IsNegative() {
		return common.NewUserError("Budget cannot be negative", common.ErrInvalidConfig)
	}
	cat, err := m.store.GetCategoryByName(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to look up category: %w", err)
	}
	if cat == nil {
		return common.NewUserError(fmt.Sprintf("No category named %q", name), common.ErrNotFound)
	}
	if !cat.IsExpense {
		return common.NewUserError("Income categories do not carry a budget", common.ErrInvalidConfig)
	}

	cat.Allocated = allocated
	if _, err := m.store.UpdateCategory(ctx, *cat); err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	return nil
}

// DeleteCategory removes a user category. Its transactions are
// reassigned to the fallback bucket first, so the ledger never holds a
// transaction pointing at a missing category. Built-ins cannot be
// deleted.
func (m *Manager) DeleteCategory(ctx context.Context, name string) error {
	cat, err := m.store.GetCategoryByName(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to look up category: %w", err)
	}
	if cat == nil {
		return common.NewUserError(fmt.Sprintf("No category named %q", name), common.ErrNotFound)
	}
	if cat.IsDefault() {
		return common.NewUserError(fmt.Sprintf("%q is a built-in category and cannot be deleted", name),
			common.ErrDefaultCategory)
	}

	fallback, err := m.FallbackName()
	if err != nil {
		return err
	}
	if err := m.store.ReassignTransactionCategory(ctx, name, fallback); err != nil {
		return fmt.Errorf("failed to reassign transactions: %w", err)
	}
	if err := m.store.DeleteCategory(ctx, name); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}

// FallbackName reports the localized name of the fallback bucket.
func (m *Manager) FallbackName() (string, error) {
	name, ok := m.locale.DisplayName(fallbackKey)
	if !ok {
		return "", fmt.Errorf("no display name for fallback key %q", fallbackKey)
	}
	return name, nil
}

// DefaultName reports the localized name for a built-in key, or ok=false
// for unknown keys.
func (m *Manager) DefaultName(key string) (string, bool) {
	return m.locale.DisplayName(key)
}
