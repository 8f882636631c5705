package kv

import (
	"fmt"

	"github.com/pdxmph/todo-tui/internal/logger"
)

// Preference is the order backends are tried in when none is configured
var Preference = []string{"sqlite", "file", "memory"}

// Manager handles backend selection
type Manager struct {
	backend Backend
}

// NewManager opens the named backend at path.
// If name is empty, it tries the backends in Preference order and keeps the
// first one that opens.
func NewManager(name, path string) (*Manager, error) {
	return newManager(defaultRegistry, name, path)
}

func newManager(r *Registry, name, path string) (*Manager, error) {
	if name != "" {
		backend, err := r.Open(name, path)
		if err != nil {
			return nil, fmt.Errorf("opening backend %s: %w", name, err)
		}
		return &Manager{backend: backend}, nil
	}

	for _, candidate := range Preference {
		backend, err := r.Open(candidate, path)
		if err != nil {
			logger.Info("backend %s unavailable: %v", candidate, err)
			continue
		}
		return &Manager{backend: backend}, nil
	}

	return nil, fmt.Errorf("no usable backend among %v", Preference)
}

// Backend returns the current backend
func (m *Manager) Backend() Backend {
	return m.backend
}

// Name returns the name of the current backend
func (m *Manager) Name() string {
	return m.backend.Name()
}

// Close closes the current backend
func (m *Manager) Close() error {
	return m.backend.Close()
}
