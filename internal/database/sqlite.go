// Package database manages the SQLite game store connection.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/yourusername/mlb-trends/internal/config"
	"github.com/yourusername/mlb-trends/internal/models"
)

// DB wraps the sql.DB handle to the game store
type DB struct {
	db   *sql.DB
	path string
}

// Open connects to an existing game store. The store file must already exist;
// a missing store fails fast with models.ErrStoreNotFound and is never retried.
func Open(ctx context.Context, cfg *config.StoreConfig) (*DB, error) {
	if _, err := os.Stat(cfg.Path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w at %s", models.ErrStoreNotFound, cfg.Path)
	}
	return open(ctx, cfg.Path)
}

// OpenOrCreate connects to the game store, creating the file and schema when
// absent. Used by the ingestion CLI; the read path uses Open.
func OpenOrCreate(ctx context.Context, cfg *config.StoreConfig) (*DB, error) {
	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create store directory: %w", err)
		}
	}

	db, err := open(ctx, cfg.Path)
	if err != nil {
		return nil, err
	}

	if err := db.InitSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func open(ctx context.Context, path string) (*DB, error) {
	handle, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open game store: %w", err)
	}

	// SQLite serializes writers; a single connection avoids SQLITE_BUSY churn.
	handle.SetMaxOpenConns(1)
	handle.SetConnMaxIdleTime(time.Minute)

	if err := handle.PingContext(ctx); err != nil {
		handle.Close()
		return nil, fmt.Errorf("failed to ping game store: %w", err)
	}

	return &DB{db: handle, path: path}, nil
}

// Ping verifies store connectivity
func (d *DB) Ping(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

// Close closes the store handle
func (d *DB) Close() error {
	return d.db.Close()
}

// Path returns the location of the store file.
func (d *DB) Path() string {
	return d.path
}

// Handle returns the underlying sql.DB for repository use
func (d *DB) Handle() *sql.DB {
	return d.db
}

// WithTransaction runs fn inside a transaction with automatic rollback on error
func (d *DB) WithTransaction(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			return fmt.Errorf("transaction failed: %w, rollback failed: %v", err, rollbackErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
