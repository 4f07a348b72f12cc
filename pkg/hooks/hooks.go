// Package hooks runs ordered before, after and around hooks around a unit of work.
//
// A Chain is assembled once, while a command or sequence is being defined, and frozen
// on first use. Hooks are either inline funcs or methods bound to the receiver passed
// to Run, which lets a hook reach per-invocation state the way a method would.
package hooks

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
)

// ErrFrozen is returned when hooks are registered on a chain that has already run.
var ErrFrozen = errors.New("hook chain is frozen")

// Func is a before or after hook.
type Func[P any] func(ctx context.Context, params P) error

// Next continues an around hook into the rest of the chain.
type Next func(ctx context.Context) error

// AroundFunc wraps the rest of the chain. It must call next to continue;
// returning without calling next stops execution there.
type AroundFunc[P any] func(ctx context.Context, params P, next Next) error

// Body is the unit of work wrapped by the chain.
type Body[P any] func(ctx context.Context, params P) (any, error)

// Hook is a before or after hook entry.
type Hook[P any] struct {
	name string
	bind func(recv any) (Func[P], error)
}

// Name returns the hook name, empty for anonymous inline hooks.
func (h Hook[P]) Name() string { return h.name }

// AroundHook is an around hook entry.
type AroundHook[P any] struct {
	name string
	bind func(recv any) (AroundFunc[P], error)
}

// Name returns the hook name, empty for anonymous inline hooks.
func (h AroundHook[P]) Name() string { return h.name }

// Inline wraps fn as an anonymous hook.
func Inline[P any](fn Func[P]) Hook[P] {
	return Named("", fn)
}

// Named wraps fn as a hook reported under name.
func Named[P any](name string, fn Func[P]) Hook[P] {
	return Hook[P]{name: name, bind: func(any) (Func[P], error) { return fn, nil }}
}

// Method declares a hook resolved against the receiver of each Run.
// m receives the receiver and returns the hook to call, typically a method value.
func Method[P, R any](name string, m func(recv R) Func[P]) Hook[P] {
	return Hook[P]{name: name, bind: func(recv any) (Func[P], error) {
		r, ok := recv.(R)
		if !ok {
			return nil, fmt.Errorf("hook %q: receiver %T does not provide it", name, recv)
		}
		return m(r), nil
	}}
}

// InlineAround wraps fn as an anonymous around hook.
func InlineAround[P any](fn AroundFunc[P]) AroundHook[P] {
	return NamedAround("", fn)
}

// NamedAround wraps fn as an around hook reported under name.
func NamedAround[P any](name string, fn AroundFunc[P]) AroundHook[P] {
	return AroundHook[P]{name: name, bind: func(any) (AroundFunc[P], error) { return fn, nil }}
}

// MethodAround declares an around hook resolved against the receiver of each Run.
func MethodAround[P, R any](name string, m func(recv R) AroundFunc[P]) AroundHook[P] {
	return AroundHook[P]{name: name, bind: func(recv any) (AroundFunc[P], error) {
		r, ok := recv.(R)
		if !ok {
			return nil, fmt.Errorf("around hook %q: receiver %T does not provide it", name, recv)
		}
		return m(r), nil
	}}
}

// Chain holds the ordered hooks of one command or sequence definition.
// The zero value is an empty, usable chain.
type Chain[P any] struct {
	before []Hook[P]
	after  []Hook[P]
	around []AroundHook[P]
	frozen atomic.Bool
}

// Before appends before hooks, in order.
func (c *Chain[P]) Before(hooks ...Hook[P]) error {
	if c.frozen.Load() {
		return ErrFrozen
	}
	c.before = append(c.before, hooks...)
	return nil
}

// After appends after hooks, in order.
func (c *Chain[P]) After(hooks ...Hook[P]) error {
	if c.frozen.Load() {
		return ErrFrozen
	}
	c.after = append(c.after, hooks...)
	return nil
}

// Around appends around hooks. The first registered is the outermost.
func (c *Chain[P]) Around(hooks ...AroundHook[P]) error {
	if c.frozen.Load() {
		return ErrFrozen
	}
	c.around = append(c.around, hooks...)
	return nil
}

// Prepend inserts before hooks ahead of those already registered.
func (c *Chain[P]) Prepend(hooks ...Hook[P]) error {
	if c.frozen.Load() {
		return ErrFrozen
	}
	c.before = append(append([]Hook[P]{}, hooks...), c.before...)
	return nil
}

// Freeze rejects any further registration.
func (c *Chain[P]) Freeze() { c.frozen.Store(true) }

// Frozen reports whether the chain accepts registrations.
func (c *Chain[P]) Frozen() bool { return c.frozen.Load() }

// Names lists the registered hook names per phase; anonymous hooks appear as "".
func (c *Chain[P]) Names() (before, after, around []string) {
	for _, h := range c.before {
		before = append(before, h.name)
	}
	for _, h := range c.after {
		after = append(after, h.name)
	}
	for _, h := range c.around {
		around = append(around, h.name)
	}
	return before, after, around
}

// Run executes body wrapped by the chain: around hooks outermost first, then before
// hooks, the body, and after hooks. The body's value is returned once the around
// chain unwinds. The first error from any hook or the body aborts the run.
func (c *Chain[P]) Run(ctx context.Context, recv any, params P, body Body[P]) (any, error) {
	c.Freeze()

	var result any
	next := Next(func(ctx context.Context) error {
		if err := c.runEach(ctx, recv, c.before, params); err != nil {
			return err
		}
		v, err := body(ctx, params)
		if err != nil {
			return err
		}
		result = v
		return c.runEach(ctx, recv, c.after, params)
	})

	for i := len(c.around) - 1; i >= 0; i-- {
		fn, err := c.around[i].bind(recv)
		if err != nil {
			return nil, err
		}
		inner := next
		next = func(ctx context.Context) error { return fn(ctx, params, inner) }
	}

	if err := next(ctx); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Chain[P]) runEach(ctx context.Context, recv any, hooks []Hook[P], params P) error {
	for _, h := range hooks {
		fn, err := h.bind(recv)
		if err != nil {
			return err
		}
		if err := fn(ctx, params); err != nil {
			return err
		}
	}
	return nil
}
