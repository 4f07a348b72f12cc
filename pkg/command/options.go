package command

import (
	"log/slog"

	"github.com/aretw0/baton/pkg/domain"
	"github.com/aretw0/baton/pkg/hooks"
	"github.com/aretw0/baton/pkg/schema"
)

// Option configures a Command.
type Option func(*settings)

type settings struct {
	logger         *slog.Logger
	lifecycle      domain.LifecycleHooks
	schema         schema.Schema
	skipValidation bool
	// typed holds func(*Command[P]) values for options that depend on the params type.
	typed []any
}

// WithLogger sets the logger. Commands are silent by default.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// WithLifecycleHooks registers callbacks for command start and finish events.
// Repeated use merges the hooks in registration order.
func WithLifecycleHooks(h domain.LifecycleHooks) Option {
	return func(s *settings) {
		s.lifecycle = s.lifecycle.Merge(h)
	}
}

// WithSchema validates map params against s when neither the handler nor the params
// validate themselves.
func WithSchema(sc schema.Schema) Option {
	return func(s *settings) {
		s.schema = sc
	}
}

// WithoutValidation removes the validation gate.
func WithoutValidation() Option {
	return func(s *settings) {
		s.skipValidation = true
	}
}

// WithRequest registers the request-object constructor turning raw params into P.
// Construction errors are reported as validation failures.
func WithRequest[P any](fn func(raw any) (P, error)) Option {
	return typed(func(c *Command[P]) {
		c.request = fn
	})
}

// Before appends before hooks.
func Before[P any](hs ...hooks.Hook[P]) Option {
	return typed(func(c *Command[P]) {
		_ = c.chain.Before(hs...) // a command under construction is never frozen
	})
}

// After appends after hooks.
func After[P any](hs ...hooks.Hook[P]) Option {
	return typed(func(c *Command[P]) {
		_ = c.chain.After(hs...)
	})
}

// Around appends around hooks; the first registered is the outermost.
func Around[P any](hs ...hooks.AroundHook[P]) Option {
	return typed(func(c *Command[P]) {
		_ = c.chain.Around(hs...)
	})
}

func typed[P any](apply func(*Command[P])) Option {
	return func(s *settings) {
		s.typed = append(s.typed, apply)
	}
}
