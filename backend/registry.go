package backend

import (
	"fmt"
	"slices"
	"sync"

	"github.com/gogpu/postfx/render"
)

// registry maps backend names to factories.
type registry struct {
	mu        sync.RWMutex
	factories map[string]Factory

	// preferred names are tried first by Default, in order
	preferred []string
}

var defaultRegistry = &registry{
	factories: make(map[string]Factory),
	preferred: []string{NameSoftware},
}

// order returns the names Default tries: preferred ones first, then the
// rest sorted by name. Callers hold r.mu.
func (r *registry) order() []string {
	names := make([]string, 0, len(r.factories))
	for _, name := range r.preferred {
		if _, ok := r.factories[name]; ok {
			names = append(names, name)
		}
	}
	rest := make([]string, 0, len(r.factories))
	for name := range r.factories {
		if !slices.Contains(r.preferred, name) {
			rest = append(rest, name)
		}
	}
	slices.Sort(rest)
	return append(names, rest...)
}

// Register adds a backend factory under name, replacing any previous one.
// Backend packages call it from init.
func Register(name string, factory Factory) {
	defaultRegistry.mu.Lock()
	defer defaultRegistry.mu.Unlock()
	defaultRegistry.factories[name] = factory
}

// Unregister removes a backend. It is mostly useful in tests.
func Unregister(name string) {
	defaultRegistry.mu.Lock()
	defer defaultRegistry.mu.Unlock()
	delete(defaultRegistry.factories, name)
}

// Available returns the names of all registered backends, sorted.
func Available() []string {
	defaultRegistry.mu.RLock()
	defer defaultRegistry.mu.RUnlock()

	names := make([]string, 0, len(defaultRegistry.factories))
	for name := range defaultRegistry.factories {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// IsRegistered reports whether a backend named name exists.
func IsRegistered(name string) bool {
	defaultRegistry.mu.RLock()
	defer defaultRegistry.mu.RUnlock()
	_, ok := defaultRegistry.factories[name]
	return ok
}

// Get creates the named backend with a display of the given size.
func Get(name string, width, height int) (render.Backend, error) {
	defaultRegistry.mu.RLock()
	factory, ok := defaultRegistry.factories[name]
	defaultRegistry.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q (registered: %v)", ErrBackendNotAvailable, name, Available())
	}
	return factory(width, height), nil
}

// Default creates the first backend whose factory succeeds, trying software
// before any other. It returns nil when nothing is registered.
func Default(width, height int) render.Backend {
	defaultRegistry.mu.RLock()
	defer defaultRegistry.mu.RUnlock()

	for _, name := range defaultRegistry.order() {
		if b := defaultRegistry.factories[name](width, height); b != nil {
			return b
		}
	}
	return nil
}

// MustDefault is like Default but panics when no backend is available.
func MustDefault(width, height int) render.Backend {
	b := Default(width, height)
	if b == nil {
		panic("backend: no backend available")
	}
	return b
}
