package sequence

import (
	"context"
	"fmt"
	"slices"

	"github.com/aretw0/baton/pkg/domain"
)

type callable struct {
	name string
	fn   domain.Invoker
}

// Callable wraps fn as a target. Both "run" and "run_strict" invoke fn.
func Callable(name string, fn func(ctx context.Context, args ...any) (any, error)) domain.Target {
	return &callable{name: name, fn: fn}
}

func (c *callable) Name() string { return c.name }

func (c *callable) Entry(method string) (domain.Invoker, error) {
	if method != "" && method != domain.MethodRun && method != domain.MethodRunStrict {
		return nil, fmt.Errorf("%s: %w %q", c.name, domain.ErrUnknownMethod, method)
	}
	return c.fn, nil
}

type methods struct {
	name    string
	entries map[string]domain.Invoker
}

// Methods exposes several named entry points under one target, for steps that select
// one with InvokeWith.
func Methods(name string, entries map[string]domain.Invoker) domain.Target {
	return &methods{name: name, entries: entries}
}

func (m *methods) Name() string { return m.name }

func (m *methods) Entry(method string) (domain.Invoker, error) {
	if method == "" {
		method = domain.MethodRun
	}
	fn, ok := m.entries[method]
	if !ok {
		names := make([]string, 0, len(m.entries))
		for n := range m.entries {
			names = append(names, n)
		}
		slices.Sort(names)
		return nil, fmt.Errorf("%s: %w %q (have %v)", m.name, domain.ErrUnknownMethod, method, names)
	}
	return fn, nil
}
