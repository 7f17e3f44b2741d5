// Package registry is the categorized component registry: it maps type names
// to task factories and persists configured tasks as self-describing
// components.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"file-processing-tasks/internal/task"
	pkgErrors "file-processing-tasks/pkg/errors"
)

// Factory returns a task with default settings.
type Factory func() task.Task

type registration struct {
	entry   task.ComponentInfo
	factory Factory
}

// Registry is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	types map[string]registration
}

func New() *Registry {
	return &Registry{types: make(map[string]registration)}
}

// Register adds a task type. The type name and description are read from a
// task built by f.
func (r *Registry) Register(f Factory) error {
	t := f()
	name := t.TypeName()
	if name == "" {
		return pkgErrors.Wrap("REG-001", ErrEmptyTypeName, "unable to register task")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.types[name]; ok {
		return pkgErrors.Tag("REG-002", ErrDuplicateType, "unable to register task").With("type", name)
	}
	r.types[name] = registration{
		entry:   task.ComponentInfo{TypeName: name, Description: t.Description(), Category: task.Category},
		factory: f,
	}
	return nil
}

// MustRegister is Register for wiring code that cannot continue on failure.
func (r *Registry) MustRegister(f Factory) {
	if err := r.Register(f); err != nil {
		panic(err)
	}
}

// List returns every registered type ordered by description.
func (r *Registry) List() []task.ComponentInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entries := make([]task.ComponentInfo, 0, len(r.types))
	for _, reg := range r.types {
		entries = append(entries, reg.entry)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Description < entries[j].Description })
	return entries
}

// New returns a task of typeName with default settings.
func (r *Registry) New(typeName string) (task.Task, error) {
	r.mu.RLock()
	reg, ok := r.types[typeName]
	r.mu.RUnlock()
	if !ok {
		return nil, pkgErrors.Tag("REG-003", task.ErrUnknownType, "unable to create task").With("type", typeName)
	}
	return reg.factory(), nil
}

// Lookup returns the description of typeName.
func (r *Registry) Lookup(typeName string) (task.ComponentInfo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reg, ok := r.types[typeName]
	if !ok {
		return task.ComponentInfo{}, fmt.Errorf("%w: %s", task.ErrUnknownType, typeName)
	}
	return reg.entry, nil
}
