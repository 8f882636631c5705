// Package file stores each key as a JSON document in a directory.
package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/pdxmph/todo-tui/internal/kv"
)

var validKey = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// Backend implements kv.Backend with one file per key
type Backend struct {
	dir string
}

// NewBackend uses dir for storage, creating it when needed.
// A path ending in .db is treated as a database file and its directory is used instead.
func NewBackend(dir string) (kv.Backend, error) {
	if dir == "" {
		return nil, fmt.Errorf("file backend needs a directory")
	}
	if filepath.Ext(dir) == ".db" {
		dir = filepath.Dir(dir)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}
	return &Backend{dir: dir}, nil
}

// Name returns the backend identifier
func (b *Backend) Name() string {
	return "file"
}

func (b *Backend) keyPath(key string) (string, error) {
	if !validKey.MatchString(key) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid key %q", key)
	}
	return filepath.Join(b.dir, key+".json"), nil
}

// Get returns the value stored under key
func (b *Backend) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	path, err := b.keyPath(key)
	if err != nil {
		return "", false, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading key %s: %w", key, err)
	}
	return string(data), true, nil
}

// Set writes value to a temp file and renames it over the key's file
func (b *Backend) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := b.keyPath(key)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(b.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		return fmt.Errorf("writing key %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing key %s: %w", key, err)
	}
	return nil
}

// Delete removes the key's file
func (b *Backend) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := b.keyPath(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("deleting key %s: %w", key, err)
	}
	return nil
}

// Close is a no-op
func (b *Backend) Close() error {
	return nil
}

// Register the file backend
func init() {
	kv.Register("file", NewBackend)
}
