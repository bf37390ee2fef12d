// Package decorator is a registry of named capabilities shared between the
// host server and the components it serves.
//
// A plugin decorates the registry at setup time; handlers holding the
// registry resolve the capability by name and call it directly.
package decorator

import (
	"sort"
	"sync"

	"github.com/pkg/errors"
)

// Sentinel errors for registry operations.
var (
	ErrEmptyName    = errors.New("decorator name is empty")
	ErrDuplicate    = errors.New("decorator already registered")
	ErrNotFound     = errors.New("decorator not found")
	ErrTypeMismatch = errors.New("decorator has a different type")
)

// Registry maps capability names to values.
type Registry struct {
	mu    sync.RWMutex
	items map[string]any
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{items: make(map[string]any)}
}

// Decorate registers v under name. A name can only be registered once.
func (r *Registry) Decorate(name string, v any) error {
	if name == "" {
		return ErrEmptyName
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[name]; exists {
		return errors.Wrapf(ErrDuplicate, "%q", name)
	}
	r.items[name] = v
	return nil
}

// Lookup returns the value registered under name.
func (r *Registry) Lookup(name string) (any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.items[name]
	return v, ok
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.Lookup(name)
	return ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.items))
	for name := range r.items {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve looks up name and asserts it to T.
func Resolve[T any](r *Registry, name string) (T, error) {
	var zero T
	v, ok := r.Lookup(name)
	if !ok {
		return zero, errors.Wrapf(ErrNotFound, "%q", name)
	}
	t, ok := v.(T)
	if !ok {
		return zero, errors.Wrapf(ErrTypeMismatch, "%q is %T", name, v)
	}
	return t, nil
}
