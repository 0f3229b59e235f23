package hooks

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/gyaneshwarpardhi/livemaze/internal/event"
)

// Registry maps effect type strings to their implementations.
// It is safe for concurrent reads; Register should only be called at startup.
type Registry struct {
	mu      sync.RWMutex
	effects map[string]Effect
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{effects: make(map[string]Effect)}
}

// Register adds an effect. Panics on duplicate type to surface misconfiguration early.
func (r *Registry) Register(e Effect) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.effects[e.Type()]; exists {
		panic(fmt.Sprintf("effect registry: duplicate type %q", e.Type()))
	}
	r.effects[e.Type()] = e
}

// Get returns the effect for the given type.
func (r *Registry) Get(effectType string) (Effect, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.effects[effectType]
	if !ok {
		return nil, fmt.Errorf("no effect registered for type %q", effectType)
	}
	return e, nil
}

// Types returns all registered effect types, sorted.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.effects))
	for k := range r.effects {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Select resolves the named effects into a Chain, failing on the first unknown type.
func (r *Registry) Select(types []string) (Chain, error) {
	chain := make(Chain, 0, len(types))
	for _, t := range types {
		e, err := r.Get(t)
		if err != nil {
			return nil, err
		}
		chain = append(chain, e)
	}
	return chain, nil
}

// Chain triggers several effects for each transition, in order.
type Chain []Effect

// Trigger runs every effect and joins their errors. A failing effect does not
// stop the ones after it.
func (c Chain) Trigger(ctx context.Context, t event.Transition) error {
	var errs []error
	for _, e := range c {
		if err := e.Trigger(ctx, t); err != nil {
			errs = append(errs, fmt.Errorf("effect %s: %w", e.Type(), err))
		}
	}
	return errors.Join(errs...)
}
