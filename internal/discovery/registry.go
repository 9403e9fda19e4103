// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package discovery

import (
	"fmt"
	"sort"
	"sync"
)

// Registry manages discovery sources by name.
type Registry struct {
	mu      sync.RWMutex
	sources map[string]Source
}

// NewRegistry creates an empty source registry.
func NewRegistry() *Registry {
	return &Registry{
		sources: make(map[string]Source),
	}
}

// DefaultRegistry returns a registry holding the Go and Java sources.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.MustRegister(NewGoSource())
	r.MustRegister(NewJavaSource())
	return r
}

// Register adds a source to the registry.
// It returns an error if a source with the same name is already registered.
func (r *Registry) Register(source Source) error {
	if source == nil {
		return fmt.Errorf("cannot register nil source")
	}

	name := source.Name()
	if name == "" {
		return fmt.Errorf("source name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sources[name]; exists {
		return fmt.Errorf("source %q is already registered", name)
	}

	r.sources[name] = source
	return nil
}

// MustRegister adds a source, panicking on error.
func (r *Registry) MustRegister(source Source) {
	if err := r.Register(source); err != nil {
		panic(fmt.Sprintf("failed to register source: %v", err))
	}
}

// Get returns a source by name, or nil if not found.
func (r *Registry) Get(name string) Source {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sources[name]
}

// ForLanguage returns the sources that read the given language, sorted by name.
func (r *Registry) ForLanguage(language string) []Source {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []Source
	for _, s := range r.sources {
		if s.Language() == language {
			matched = append(matched, s)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].Name() < matched[j].Name()
	})
	return matched
}

// List returns a sorted list of registered source names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.sources))
	for name := range r.sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has checks if a source is registered.
func (r *Registry) Has(name string) bool {
	return r.Get(name) != nil
}

// Unregister removes a source.
// Returns an error if the source is not registered.
func (r *Registry) Unregister(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sources[name]; !exists {
		return fmt.Errorf("source %q is not registered", name)
	}

	delete(r.sources, name)
	return nil
}
