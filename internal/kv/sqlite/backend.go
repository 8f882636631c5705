// Package sqlite stores key-value pairs in a SQLite database file.
package sqlite

import (
	"context"
	"fmt"
	"os"

	"github.com/pdxmph/todo-tui/internal/db"
	"github.com/pdxmph/todo-tui/internal/kv"
	"github.com/pdxmph/todo-tui/internal/logger"
)

// Backend implements kv.Backend on top of a SQLite database
type Backend struct {
	db *db.DB
}

// NewBackend opens the database at path, creating it first when it does not exist
func NewBackend(path string) (kv.Backend, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite backend needs a database path")
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		logger.Info("creating database at %s", path)
		if err := db.Initialize(path); err != nil {
			return nil, err
		}
	}

	database, err := db.Open(path)
	if err != nil {
		return nil, err
	}
	return &Backend{db: database}, nil
}

// Name returns the backend identifier
func (b *Backend) Name() string {
	return "sqlite"
}

// Get returns the value stored under key
func (b *Backend) Get(ctx context.Context, key string) (string, bool, error) {
	return b.db.Get(ctx, key)
}

// Set stores value under key
func (b *Backend) Set(ctx context.Context, key, value string) error {
	return b.db.Set(ctx, key, value)
}

// Delete removes key
func (b *Backend) Delete(ctx context.Context, key string) error {
	return b.db.Delete(ctx, key)
}

// Close closes the database
func (b *Backend) Close() error {
	return b.db.Close()
}

// Register the sqlite backend
func init() {
	kv.Register("sqlite", NewBackend)
}
