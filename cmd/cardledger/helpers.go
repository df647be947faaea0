package main

import (
	"context"
	"fmt"

	"github.com/spf13/viper"

	"github.com/ruvan/cardledger/internal/category"
	"github.com/ruvan/cardledger/internal/config"
	"github.com/ruvan/cardledger/internal/storage"
)

// initStorage opens the ledger database and brings the schema up to date.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = config.DefaultDatabasePath
	}
	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// initEngine builds the categorization engine backed by the stored corpus.
func initEngine(ctx context.Context, store *storage.SQLiteStorage) *category.Engine {
	return category.NewEngine(ctx, store)
}
