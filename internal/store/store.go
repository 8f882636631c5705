// Package store persists the task list as a single JSON value in a key-value backend.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pdxmph/todo-tui/internal/kv"
	"github.com/pdxmph/todo-tui/internal/todo"
)

// DefaultKey is the key the task list is stored under
const DefaultKey = "todoList"

// Adapter loads and saves the complete task list under one key
type Adapter struct {
	backend kv.Backend
	key     string
	timeout time.Duration
}

// Option configures an Adapter
type Option func(*Adapter)

// WithKey overrides the storage key
func WithKey(key string) Option {
	return func(a *Adapter) {
		if key != "" {
			a.key = key
		}
	}
}

// WithTimeout bounds every backend call. Zero means no bound.
func WithTimeout(d time.Duration) Option {
	return func(a *Adapter) {
		a.timeout = d
	}
}

// New creates an adapter over backend
func New(backend kv.Backend, opts ...Option) *Adapter {
	a := &Adapter{
		backend: backend,
		key:     DefaultKey,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Key returns the storage key
func (a *Adapter) Key() string {
	return a.key
}

// Load reads the stored task list. A missing key yields an empty list.
func (a *Adapter) Load(ctx context.Context) ([]todo.Task, error) {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	raw, ok, err := a.backend.Get(ctx, a.key)
	if err != nil {
		return nil, &Error{Op: "load", Kind: ErrUnavailable, Err: err}
	}
	if !ok {
		return []todo.Task{}, nil
	}

	tasks, err := decode(raw)
	if err != nil {
		return nil, &Error{Op: "load", Kind: ErrDeserialization, Err: err}
	}
	return tasks, nil
}

// Save overwrites the stored value with the full list
func (a *Adapter) Save(ctx context.Context, tasks []todo.Task) error {
	raw, err := encode(tasks)
	if err != nil {
		return &Error{Op: "save", Kind: ErrSerialization, Err: err}
	}

	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if err := a.backend.Set(ctx, a.key, raw); err != nil {
		return &Error{Op: "save", Kind: ErrUnavailable, Err: err}
	}
	return nil
}

// Clear removes the stored list
func (a *Adapter) Clear(ctx context.Context) error {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	if err := a.backend.Delete(ctx, a.key); err != nil {
		return &Error{Op: "clear", Kind: ErrUnavailable, Err: err}
	}
	return nil
}

func (a *Adapter) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.timeout)
}

func encode(tasks []todo.Task) (string, error) {
	if tasks == nil {
		tasks = []todo.Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// decode parses a stored list. Titles may be empty, ids may not, and ids must be unique.
func decode(raw string) ([]todo.Task, error) {
	var tasks []todo.Task
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		return nil, fmt.Errorf("parsing task JSON: %w", err)
	}
	if tasks == nil {
		return []todo.Task{}, nil
	}

	seen := make(map[string]bool, len(tasks))
	for i, t := range tasks {
		if t.ID == "" {
			return nil, fmt.Errorf("task %d has no id", i)
		}
		if seen[t.ID] {
			return nil, fmt.Errorf("duplicate task id %q", t.ID)
		}
		seen[t.ID] = true
	}
	return tasks, nil
}
