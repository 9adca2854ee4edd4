package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/smartspend/smartspend/internal/model"
)

// Helper function to create test storage.
func createTestStorage(t *testing.T) (*SQLiteStorage, func()) {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		t.Fatalf("Failed to migrate: %v", err)
	}

	return store, func() { _ = store.Close() }
}

func testTransaction(title, category, date string, amount int64, isExpense bool) model.Transaction {
	return model.Transaction{
		Title:     title,
		Amount:    decimal.NewFromInt(amount),
		Category:  category,
		Date:      date,
		IsExpense: isExpense,
	}
}

func mustInsertCategory(t *testing.T, store *SQLiteStorage, name string, isExpense bool) model.Category {
	t.Helper()
	cat := model.Category{
		Name:      name,
		Allocated: decimal.Zero,
		Spent:     decimal.Zero,
		IsExpense: isExpense,
	}
	id, err := store.InsertCategory(context.Background(), cat)
	if err != nil {
		t.Fatalf("Failed to insert category %q: %v", name, err)
	}
	cat.ID = id
	return cat
}

func TestMigrate(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	var version int
	if err := store.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		t.Fatalf("Failed to read schema version: %v", err)
	}
	if version != ExpectedSchemaVersion {
		t.Errorf("Schema version = %d, want %d", version, ExpectedSchemaVersion)
	}

	// Running again must be a no-op.
	if err := store.Migrate(context.Background()); err != nil {
		t.Errorf("Second migrate failed: %v", err)
	}
}

func TestTransactionCRUD(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	txn := testTransaction("Lunch", "Food", "14 Jan 2026", 45000, true)
	id, err := store.InsertTransaction(ctx, txn)
	if err != nil {
		t.Fatalf("Failed to insert transaction: %v", err)
	}
	if id <= 0 {
		t.Errorf("Expected positive ID, got %d", id)
	}

	got, err := store.GetTransactionByID(ctx, id)
	if err != nil {
		t.Fatalf("Failed to get transaction: %v", err)
	}
	if got.Title != "Lunch" || got.Category != "Food" || got.Date != "14 Jan 2026" {
		t.Errorf("Round-trip mismatch: %+v", got)
	}
	if !got.Amount.Equal(decimal.NewFromInt(45000)) {
		t.Errorf("Amount = %s, want 45000", got.Amount)
	}
	if !got.IsExpense {
		t.Error("Expected expense transaction")
	}

	got.Title = "Team lunch"
	got.Amount = decimal.NewFromInt(52000)
	if err := store.UpdateTransaction(ctx, id, *got); err != nil {
		t.Fatalf("Failed to update transaction: %v", err)
	}
	updated, err := store.GetTransactionByID(ctx, id)
	if err != nil {
		t.Fatalf("Failed to re-read transaction: %v", err)
	}
	if updated.Title != "Team lunch" || !updated.Amount.Equal(decimal.NewFromInt(52000)) {
		t.Errorf("Update not persisted: %+v", updated)
	}

	count, err := store.GetTransactionCount(ctx)
	if err != nil {
		t.Fatalf("Failed to count transactions: %v", err)
	}
	if count != 1 {
		t.Errorf("Count = %d, want 1", count)
	}

	if err := store.DeleteTransaction(ctx, id); err != nil {
		t.Fatalf("Failed to delete transaction: %v", err)
	}
	if _, err := store.GetTransactionByID(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}
}

func TestTransactionDecimalPrecision(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	// Fractional amounts must round-trip exactly, not as float64.
	amount, err := decimal.NewFromString("0.30")
	if err != nil {
		t.Fatalf("Failed to parse decimal: %v", err)
	}
	txn := model.Transaction{
		Title:     "Precision check",
		Amount:    amount,
		Category:  "Food",
		Date:      "01 Feb 2026",
		IsExpense: true,
	}
	id, err := store.InsertTransaction(ctx, txn)
	if err != nil {
		t.Fatalf("Failed to insert transaction: %v", err)
	}
	got, err := store.GetTransactionByID(ctx, id)
	if err != nil {
		t.Fatalf("Failed to get transaction: %v", err)
	}
	if got.Amount.String() != "0.3" && got.Amount.String() != "0.30" {
		t.Errorf("Amount round-trip = %s, want 0.30", got.Amount)
	}
	if !got.Amount.Equal(amount) {
		t.Errorf("Amount %s not equal to stored %s", got.Amount, amount)
	}
}

func TestUpdateTransactionNotFound(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	txn := testTransaction("Ghost", "Food", "14 Jan 2026", 100, true)
	err := store.UpdateTransaction(context.Background(), 9999, txn)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestDeleteTransactionNotFound(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	err := store.DeleteTransaction(context.Background(), 9999)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestReassignTransactionCategory(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	mustInsertCategory(t, store, "Shopping", true)
	mustInsertCategory(t, store, "Other", true)

	for i := 0; i < 3; i++ {
		txn := testTransaction("Purchase", "Shopping", "10 Jan 2026", 1000, true)
		if _, err := store.InsertTransaction(ctx, txn); err != nil {
			t.Fatalf("Failed to insert transaction: %v", err)
		}
	}
	keep := testTransaction("Lunch", "Food", "10 Jan 2026", 500, true)
	if _, err := store.InsertTransaction(ctx, keep); err != nil {
		t.Fatalf("Failed to insert transaction: %v", err)
	}

	if err := store.ReassignTransactionCategory(ctx, "Shopping", "Other"); err != nil {
		t.Fatalf("Failed to reassign: %v", err)
	}

	txns, err := store.GetAllTransactions(ctx)
	if err != nil {
		t.Fatalf("Failed to list transactions: %v", err)
	}
	var other, food int
	for _, txn := range txns {
		switch txn.Category {
		case "Other":
			other++
		case "Food":
			food++
		case "Shopping":
			t.Errorf("Transaction %d still references Shopping", txn.ID)
		}
	}
	if other != 3 || food != 1 {
		t.Errorf("After reassign: other=%d food=%d, want 3 and 1", other, food)
	}
}

func TestReassignToMissingCategory(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	err := store.ReassignTransactionCategory(context.Background(), "Shopping", "Nope")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for missing target category, got %v", err)
	}
}

func TestCategoryCRUD(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	cat := model.Category{
		Name:      "Food",
		Key:       "cat_food",
		Allocated: decimal.NewFromInt(1000000),
		Spent:     decimal.Zero,
		IsExpense: true,
	}
	id, err := store.InsertCategory(ctx, cat)
	if err != nil {
		t.Fatalf("Failed to insert category: %v", err)
	}
	cat.ID = id

	got, err := store.GetCategoryByName(ctx, "Food")
	if err != nil {
		t.Fatalf("Failed to get category: %v", err)
	}
	if got == nil {
		t.Fatal("Expected category, got nil")
	}
	if got.Key != "cat_food" || !got.Allocated.Equal(decimal.NewFromInt(1000000)) {
		t.Errorf("Round-trip mismatch: %+v", got)
	}

	got.Spent = decimal.NewFromInt(250000)
	rows, err := store.UpdateCategory(ctx, *got)
	if err != nil {
		t.Fatalf("Failed to update category: %v", err)
	}
	if rows != 1 {
		t.Errorf("UpdateCategory rows = %d, want 1", rows)
	}

	updated, err := store.GetCategoryByName(ctx, "Food")
	if err != nil {
		t.Fatalf("Failed to re-read category: %v", err)
	}
	if !updated.Spent.Equal(decimal.NewFromInt(250000)) {
		t.Errorf("Spent = %s, want 250000", updated.Spent)
	}
	if updated.Key != "cat_food" {
		t.Errorf("Update must not change key, got %q", updated.Key)
	}

	if err := store.DeleteCategory(ctx, "Food"); err != nil {
		t.Fatalf("Failed to delete category: %v", err)
	}
	gone, err := store.GetCategoryByName(ctx, "Food")
	if err != nil {
		t.Fatalf("Lookup after delete failed: %v", err)
	}
	if gone != nil {
		t.Errorf("Expected nil after delete, got %+v", gone)
	}
}

func TestGetCategoryByNameMissing(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	got, err := store.GetCategoryByName(context.Background(), "Nonexistent")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("Expected nil for missing category, got %+v", got)
	}
}

func TestInsertDuplicateCategory(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	mustInsertCategory(t, store, "Food", true)
	_, err := store.InsertCategory(context.Background(), model.Category{
		Name:      "Food",
		Allocated: decimal.Zero,
		Spent:     decimal.Zero,
		IsExpense: true,
	})
	if !errors.Is(err, ErrDuplicateCategory) {
		t.Errorf("Expected ErrDuplicateCategory, got %v", err)
	}
}

func TestGetCategoriesByType(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	mustInsertCategory(t, store, "Food", true)
	mustInsertCategory(t, store, "Transport", true)
	mustInsertCategory(t, store, "Salary", false)

	expenses, err := store.GetCategoriesByType(ctx, true)
	if err != nil {
		t.Fatalf("Failed to get expense categories: %v", err)
	}
	if len(expenses) != 2 {
		t.Errorf("Expense categories = %d, want 2", len(expenses))
	}

	income, err := store.GetCategoriesByType(ctx, false)
	if err != nil {
		t.Fatalf("Failed to get income categories: %v", err)
	}
	if len(income) != 1 || income[0].Name != "Salary" {
		t.Errorf("Income categories = %+v, want just Salary", income)
	}
}

func TestDeleteCategoryNotFound(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	err := store.DeleteCategory(context.Background(), "Nonexistent")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestNilContextRejected(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	//nolint:staticcheck // Deliberately passing nil context.
	_, err := store.GetAllTransactions(nil)
	if !errors.Is(err, ErrNilContext) {
		t.Errorf("Expected ErrNilContext, got %v", err)
	}
}
