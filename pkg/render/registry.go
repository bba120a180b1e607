package render

import (
	"fmt"
	"sort"
	"sync"

	"github.com/goliatone/go-cardgen/pkg/builders"
)

// Registry stores builders by template kind, providing discovery and
// duplication safeguards.
type Registry struct {
	mu       sync.RWMutex
	builders map[builders.Kind]builders.Builder
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		builders: make(map[builders.Kind]builders.Builder),
	}
}

// DefaultRegistry returns a registry holding every built-in template.
func DefaultRegistry() *Registry {
	reg := NewRegistry()
	for _, kind := range builders.Kinds() {
		reg.MustRegister(kind, builders.Lookup(kind))
	}
	return reg
}

// Register adds a builder for kind. Duplicate kinds return an error.
func (r *Registry) Register(kind builders.Kind, builder builders.Builder) error {
	if builder == nil {
		return fmt.Errorf("render: builder is required")
	}
	if kind == "" {
		return fmt.Errorf("render: template kind is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.builders[kind]; exists {
		return fmt.Errorf("render: builder %q already registered", kind)
	}

	r.builders[kind] = builder
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(kind builders.Kind, builder builders.Builder) {
	if err := r.Register(kind, builder); err != nil {
		panic(err)
	}
}

// Replace installs builder for kind, overriding any existing entry.
func (r *Registry) Replace(kind builders.Kind, builder builders.Builder) {
	if builder == nil || kind == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.builders[kind] = builder
}

// Get retrieves the builder for kind.
func (r *Registry) Get(kind builders.Kind) (builders.Builder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	builder, ok := r.builders[kind]
	if !ok {
		return nil, fmt.Errorf("render: builder %q not found", kind)
	}
	return builder, nil
}

// List returns the registered kinds sorted by name.
func (r *Registry) List() []builders.Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]builders.Kind, 0, len(r.builders))
	for kind := range r.builders {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Has reports whether a builder is registered for kind.
func (r *Registry) Has(kind builders.Kind) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.builders[kind]
	return ok
}
