// Package registry maps names to step targets so sequences can be declared by name.
package registry

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/aretw0/baton/internal/naming"
	"github.com/aretw0/baton/pkg/domain"
)

var (
	// ErrNotFound is returned when no target is registered under a name.
	ErrNotFound = errors.New("target not found")
	// ErrDuplicate is returned when a name is already taken.
	ErrDuplicate = errors.New("target already registered")
)

// Registry manages the available targets.
type Registry struct {
	mu      sync.RWMutex
	targets map[string]domain.Target
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		targets: make(map[string]domain.Target),
	}
}

// Register adds targets under the lower-snake form of their names.
// Either every target is added or, when a name is empty or taken, none is.
func (r *Registry) Register(targets ...domain.Target) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	batch := make(map[string]domain.Target, len(targets))
	for _, t := range targets {
		name := naming.Snake(t.Name())
		if name == "" {
			return fmt.Errorf("register %T: empty name", t)
		}
		if _, ok := r.targets[name]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicate, name)
		}
		if _, ok := batch[name]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicate, name)
		}
		batch[name] = t
	}
	maps.Copy(r.targets, batch)
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(targets ...domain.Target) {
	if err := r.Register(targets...); err != nil {
		panic(err)
	}
}

// Lookup returns the target registered under name. Names are matched in lower-snake
// form, so "SayMyName" finds "say_my_name".
func (r *Registry) Lookup(name string) (domain.Target, error) {
	r.mu.RLock()
	t, ok := r.targets[naming.Snake(name)]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return t, nil
}

// Names lists the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.targets))
	for name := range r.targets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
