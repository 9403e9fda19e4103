// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package schema

import (
	"maps"
	"slices"
	"sort"
	"sync"

	"github.com/api2spec/apidoc/pkg/types"
)

// Registry stores component schemas by name. It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	schemas  map[string]*types.Schema
	embedded map[string][]string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		schemas:  make(map[string]*types.Schema),
		embedded: make(map[string][]string),
	}
}

// Add stores schema under name, replacing any earlier schema.
func (r *Registry) Add(name string, schema *types.Schema) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.schemas[name] = schema
}

// Embed records the types whose properties name inherits.
func (r *Registry) Embed(name string, embedded []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.embedded[name] = slices.Clone(embedded)
}

// Get returns the schema registered under name.
func (r *Registry) Get(name string) (*types.Schema, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	schema, ok := r.schemas[name]
	return schema, ok
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.schemas))
	for name := range r.schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of registered schemas.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.schemas)
}

// Remove deletes name. It reports whether it was registered.
func (r *Registry) Remove(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.schemas[name]; !ok {
		return false
	}
	delete(r.schemas, name)
	delete(r.embedded, name)
	return true
}

// Clear removes every schema.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.schemas = make(map[string]*types.Schema)
	r.embedded = make(map[string][]string)
}

// Merge copies every schema from other, overwriting on name clashes.
func (r *Registry) Merge(other *Registry) {
	if other == nil || other == r {
		return
	}

	other.mu.RLock()
	defer other.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	maps.Copy(r.schemas, other.schemas)
	maps.Copy(r.embedded, other.embedded)
}

// Schemas returns the component schemas with embedded struct properties
// folded in. A struct's own fields win over embedded ones, and embedded
// types that are not registered are ignored. The registry is not modified.
func (r *Registry) Schemas() map[string]*types.Schema {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.schemas) == 0 {
		return nil
	}

	result := make(map[string]*types.Schema, len(r.schemas))
	for name := range r.schemas {
		result[name] = r.resolve(name, map[string]bool{})
	}
	return result
}

func (r *Registry) resolve(name string, visiting map[string]bool) *types.Schema {
	schema := r.schemas[name]
	embedded := r.embedded[name]
	if schema == nil || len(embedded) == 0 || visiting[name] {
		return schema
	}
	visiting[name] = true
	defer delete(visiting, name)

	merged := *schema
	merged.Properties = maps.Clone(schema.Properties)
	if merged.Properties == nil {
		merged.Properties = make(map[string]*types.Schema)
	}
	merged.Required = slices.Clone(schema.Required)

	for _, base := range embedded {
		if _, ok := r.schemas[base]; !ok {
			continue
		}
		parent := r.resolve(base, visiting)
		for prop, ps := range parent.Properties {
			if _, own := merged.Properties[prop]; !own {
				merged.Properties[prop] = ps
			}
		}
		for _, req := range parent.Required {
			if !slices.Contains(merged.Required, req) {
				merged.Required = append(merged.Required, req)
			}
		}
	}
	return &merged
}
