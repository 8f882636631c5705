// Package kv defines the key-value backends the task list is persisted to.
package kv

import "context"

// Backend is a durable string key-value store
type Backend interface {
	// Name returns the backend identifier (e.g., "sqlite", "file")
	Name() string

	// Get returns the value stored under key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores value under key, overwriting any previous value
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the backend's resources
	Close() error
}

// Factory opens a backend rooted at path. Backends that keep no state on
// disk ignore the path.
type Factory func(path string) (Backend, error)
