package kv

import (
	"fmt"
	"sort"
	"sync"
)

// Registry manages available backends
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates a new backend registry
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

// Register adds a new backend factory to the registry
func (r *Registry) Register(name string, factory Factory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("backend %s already registered", name)
	}

	r.factories[name] = factory
	return nil
}

// Open instantiates a backend by name
func (r *Registry) Open(name, path string) (Backend, error) {
	r.mu.RLock()
	factory, exists := r.factories[name]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("backend %s not registered", name)
	}

	return factory(path)
}

// List returns all registered backend names, sorted
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Global registry instance
var defaultRegistry = NewRegistry()

// Register adds a backend to the global registry
func Register(name string, factory Factory) error {
	return defaultRegistry.Register(name, factory)
}

// Open opens a backend from the global registry
func Open(name, path string) (Backend, error) {
	return defaultRegistry.Open(name, path)
}

// Backends returns all registered backend names from the global registry
func Backends() []string {
	return defaultRegistry.List()
}
