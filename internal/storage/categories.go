package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/smartspend/smartspend/internal/model"
)

const categoryColumns = `id, name, allocated_amount, spent_amount, is_expense, category_key`

// scanCategory reads one category row.
func scanCategory(row interface{ Scan(...any) error }) (model.Category, error) {
	var cat model.Category
	var allocated, spent string
	if err := row.Scan(&cat.ID, &cat.Name, &allocated, &spent, &cat.IsExpense, &cat.Key); err != nil {
		return model.Category{}, err
	}

	var err error
	if cat.Allocated, err = decimal.NewFromString(allocated); err != nil {
		return model.Category{}, fmt.Errorf("corrupt allocated amount %q for category %q: %w", allocated, cat.Name, err)
	}
	if cat.Spent, err = decimal.NewFromString(spent); err != nil {
		return model.Category{}, fmt.Errorf("corrupt spent amount %q for category %q: %w", spent, cat.Name, err)
	}
	return cat, nil
}

func (s *SQLiteStorage) queryCategories(ctx context.Context, query string, args ...any) ([]model.Category, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		cat, scanErr := scanCategory(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan category: %w", scanErr)
		}
		categories = append(categories, cat)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}
	return categories, nil
}

// GetAllCategories returns all categories ordered by name.
func (s *SQLiteStorage) GetAllCategories(ctx context.Context) ([]model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `SELECT ` + categoryColumns + ` FROM categories ORDER BY name`
	categories, err := s.queryCategories(ctx, query)
	if err != nil {
		return nil, err
	}

	slog.Debug("retrieved categories", "count", len(categories))
	return categories, nil
}

// GetCategoriesByType returns the expense or the income categories,
// ordered by name.
func (s *SQLiteStorage) GetCategoriesByType(ctx context.Context, isExpense bool) ([]model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `SELECT ` + categoryColumns + ` FROM categories WHERE is_expense = ? ORDER BY name`
	return s.queryCategories(ctx, query, isExpense)
}

// GetCategoryByName returns a category by its exact name, or nil when no
// such category exists. Lookup is case-sensitive.
func (s *SQLiteStorage) GetCategoryByName(ctx context.Context, name string) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}

	query := `SELECT ` + categoryColumns + ` FROM categories WHERE name = ?`
	cat, err := scanCategory(s.db.QueryRowContext(ctx, query, name))
	if err == sql.ErrNoRows {
		return nil, nil // Category not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query category: %w", err)
	}

	return &cat, nil
}

// InsertCategory persists a new category and returns its id. The name
// must be unique across all categories.
func (s *SQLiteStorage) InsertCategory(ctx context.Context, cat model.Category) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := cat.Validate(); err != nil {
		return 0, fmt.Errorf("invalid category: %w", err)
	}

	existing, err := s.GetCategoryByName(ctx, cat.Name)
	if err != nil {
		return 0, fmt.Errorf("failed to check existing category: %w", err)
	}
	if existing != nil {
		return 0, fmt.Errorf("%w: %q", ErrDuplicateCategory, cat.Name)
	}

	query := `
		INSERT INTO categories (name, allocated_amount, spent_amount, is_expense, category_key)
		VALUES (?, ?, ?, ?, ?)`

	result, err := s.db.ExecContext(ctx, query,
		cat.Name, cat.Allocated.String(), cat.Spent.String(), cat.IsExpense, cat.Key)
	if err != nil {
		return 0, fmt.Errorf("failed to insert category: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get category ID: %w", err)
	}

	slog.Info("created category", "name", cat.Name, "id", id)
	return id, nil
}

// UpdateCategory rewrites a category row by id and returns the number of
// rows affected. The stable key is never rewritten.
func (s *SQLiteStorage) UpdateCategory(ctx context.Context, cat model.Category) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateID(cat.ID, "cat.ID"); err != nil {
		return 0, err
	}
	if err := cat.Validate(); err != nil {
		return 0, fmt.Errorf("invalid category: %w", err)
	}

	query := `
		UPDATE categories
		SET name = ?, allocated_amount = ?, spent_amount = ?, is_expense = ?
		WHERE id = ?`

	result, err := s.db.ExecContext(ctx, query,
		cat.Name, cat.Allocated.String(), cat.Spent.String(), cat.IsExpense, cat.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to update category: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return affected, nil
}

// DeleteCategory removes a category by name. Callers are responsible for
// migrating referencing transactions first; the store does not cascade.
func (s *SQLiteStorage) DeleteCategory(ctx context.Context, name string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(name, "name"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: category %q", ErrNotFound, name)
	}

	slog.Info("deleted category", "name", name)
	return nil
}
