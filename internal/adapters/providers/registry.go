package providers

import (
	"slices"
	"sync"

	"sportspack/internal/domain"
	"sportspack/internal/ports"
)

// Factory builds a provider from options
type Factory func(opts ...Option) ports.Provider

// Registry maps provider names to factories. Options configured for a
// name are applied every time that provider is looked up.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
	options   map[string][]Option
}

// Ensure Registry implements ProviderLookup
var _ ports.ProviderLookup = (*Registry)(nil)

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
		options:   make(map[string][]Option),
	}
}

// NewDefaultRegistry creates a registry with the built-in providers
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(domain.ProviderStatsPerform, NewStatsPerform)
	r.Register(domain.ProviderHeimspiel, NewHeimspiel)
	return r
}

// Register adds or replaces the factory for name
func (r *Registry) Register(name string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = factory
}

// Configure appends options applied when name is looked up
func (r *Registry) Configure(name string, opts ...Option) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.options[name] = append(r.options[name], opts...)
}

// Lookup instantiates the provider registered under name. It reports
// false for unknown names.
func (r *Registry) Lookup(name string) (ports.Provider, bool) {
	r.mu.RLock()
	factory, ok := r.factories[name]
	opts := slices.Clone(r.options[name])
	r.mu.RUnlock()

	if !ok {
		return nil, false
	}
	return factory(opts...), true
}

// Has reports whether name is registered
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[name]
	return ok
}

// Names returns the registered provider names in sorted order
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
