package main

import (
	"context"
	"fmt"

	"github.com/spf13/viper"

	"github.com/smartspend/smartspend/internal/budget"
	"github.com/smartspend/smartspend/internal/config"
	"github.com/smartspend/smartspend/internal/engine"
	"github.com/smartspend/smartspend/internal/lifecycle"
	"github.com/smartspend/smartspend/internal/locale"
	"github.com/smartspend/smartspend/internal/notify"
	"github.com/smartspend/smartspend/internal/service"
	"github.com/smartspend/smartspend/internal/storage"
)

// initStorage initializes the storage service with proper path expansion.
func initStorage(ctx context.Context) (service.Ledger, error) {
	// Get database path from config
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/smartspend/smartspend.db"
	}

	// Expand tilde and environment variables
	dbPath = config.ExpandPath(dbPath)

	// Initialize storage
	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	// Run migrations
	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// initEngine wires the full stack: storage, locale resolution, category
// lifecycle, budget reconciliation, and the engine itself. Startup runs
// before it returns, so the caller always sees a seeded catalog and
// fresh totals.
func initEngine(ctx context.Context) (*engine.Engine, service.Ledger, error) {
	store, err := initStorage(ctx)
	if err != nil {
		return nil, nil, err
	}

	resolver := locale.NewResolver(viper.GetString("locale"))
	lc := lifecycle.NewManager(store, resolver)
	rec := budget.NewReconciler(store, notify.NewLogNotifier())
	eng := engine.New(store, lc, rec)

	if err := eng.Startup(ctx); err != nil {
		_ = store.Close()
		return nil, nil, fmt.Errorf("failed to start engine: %w", err)
	}

	return eng, store, nil
}
