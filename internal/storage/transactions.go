package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/smartspend/smartspend/internal/model"
)

// scanTransaction reads one transaction row. Amounts are stored as
// decimal strings.
func scanTransaction(row interface{ Scan(...any) error }) (model.Transaction, error) {
	var txn model.Transaction
	var amount string
	if err := row.Scan(&txn.ID, &txn.Title, &amount, &txn.Category, &txn.Date, &txn.IsExpense); err != nil {
		return model.Transaction{}, err
	}
	dec, err := decimal.NewFromString(amount)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("corrupt amount %q for transaction %d: %w", amount, txn.ID, err)
	}
	txn.Amount = dec
	return txn, nil
}

// GetAllTransactions returns every transaction in insertion order.
// Chronological ordering is the aggregation engine's concern because
// dates are stored as fixed-format text.
func (s *SQLiteStorage) GetAllTransactions(ctx context.Context) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, title, amount, category, date, is_expense
		FROM transactions
		ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var transactions []model.Transaction
	for rows.Next() {
		txn, scanErr := scanTransaction(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", scanErr)
		}
		transactions = append(transactions, txn)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	slog.Debug("retrieved transactions", "count", len(transactions))
	return transactions, nil
}

// GetTransactionByID returns a single transaction, or ErrNotFound.
func (s *SQLiteStorage) GetTransactionByID(ctx context.Context, id int64) (*model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateID(id, "id"); err != nil {
		return nil, err
	}

	query := `
		SELECT id, title, amount, category, date, is_expense
		FROM transactions
		WHERE id = ?`

	txn, err := scanTransaction(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: transaction %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction: %w", err)
	}

	return &txn, nil
}

// GetTransactionCount returns the number of transactions in the ledger.
func (s *SQLiteStorage) GetTransactionCount(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return count, nil
}

// InsertTransaction persists a new transaction and returns its id.
func (s *SQLiteStorage) InsertTransaction(ctx context.Context, txn model.Transaction) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := txn.Validate(); err != nil {
		return 0, fmt.Errorf("invalid transaction: %w", err)
	}

	query := `
		INSERT INTO transactions (title, amount, category, date, is_expense)
		VALUES (?, ?, ?, ?, ?)`

	result, err := s.db.ExecContext(ctx, query,
		txn.Title, txn.Amount.String(), txn.Category, txn.Date, txn.IsExpense)
	if err != nil {
		return 0, fmt.Errorf("failed to insert transaction: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get transaction ID: %w", err)
	}

	slog.Debug("inserted transaction", "id", id, "category", txn.Category)
	return id, nil
}

// UpdateTransaction replaces all fields of an existing transaction.
func (s *SQLiteStorage) UpdateTransaction(ctx context.Context, id int64, txn model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(id, "id"); err != nil {
		return err
	}
	if err := txn.Validate(); err != nil {
		return fmt.Errorf("invalid transaction: %w", err)
	}

	query := `
		UPDATE transactions
		SET title = ?, amount = ?, category = ?, date = ?, is_expense = ?
		WHERE id = ?`

	result, err := s.db.ExecContext(ctx, query,
		txn.Title, txn.Amount.String(), txn.Category, txn.Date, txn.IsExpense, id)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: transaction %d", ErrNotFound, id)
	}

	return nil
}

// DeleteTransaction removes a transaction by id.
func (s *SQLiteStorage) DeleteTransaction(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateID(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: transaction %d", ErrNotFound, id)
	}

	return nil
}

// ReassignTransactionCategory rewrites the category field of every
// transaction referencing fromCategory. The target category must exist:
// this operation backs the deletion migration, whose whole point is to
// leave no dangling references.
func (s *SQLiteStorage) ReassignTransactionCategory(ctx context.Context, fromCategory, toCategory string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(fromCategory, "fromCategory"); err != nil {
		return err
	}
	if err := validateString(toCategory, "toCategory"); err != nil {
		return err
	}

	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM categories WHERE name = ?)
	`, toCategory).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check category existence: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: category %q", ErrNotFound, toCategory)
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE transactions SET category = ? WHERE category = ?
	`, toCategory, fromCategory)
	if err != nil {
		return fmt.Errorf("failed to reassign transactions: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}

	slog.Info("reassigned transactions",
		"from", fromCategory,
		"to", toCategory,
		"count", affected)
	return nil
}
