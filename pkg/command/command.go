package command

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/baton/internal/logging"
	"github.com/aretw0/baton/internal/naming"
	"github.com/aretw0/baton/pkg/domain"
	"github.com/aretw0/baton/pkg/hooks"
	"github.com/aretw0/baton/pkg/schema"
	"github.com/google/uuid"
)

// Handler is the business logic of a command.
// The value it returns becomes the successful Outcome's result, unless it is
// already a domain.Outcome, which is passed through unchanged.
type Handler[P any] interface {
	Call(ctx context.Context, params P) (any, error)
}

// Func adapts a plain function to Handler.
type Func[P any] func(ctx context.Context, params P) (any, error)

// Call implements Handler.
func (f Func[P]) Call(ctx context.Context, params P) (any, error) {
	return f(ctx, params)
}

// Factory builds the handler for one invocation from the construction args passed to
// Run after the params.
type Factory[P any] func(args ...any) (Handler[P], error)

// Rollbacker is implemented by handlers that can compensate for partial work.
type Rollbacker interface {
	Rollback(ctx context.Context) error
}

// Command is an immutable command definition. It is safe for concurrent use once built;
// every invocation gets its own handler instance from the factory.
type Command[P any] struct {
	name      string
	factory   Factory[P]
	request   func(raw any) (P, error)
	schema    schema.Schema
	chain     hooks.Chain[P]
	logger    *slog.Logger
	lifecycle domain.LifecycleHooks
}

// New defines a command that reuses h for every invocation.
// h must keep no per-run state; use Build when each run needs a fresh handler.
func New[P any](name string, h Handler[P], opts ...Option) *Command[P] {
	return Build[P](name, func(...any) (Handler[P], error) { return h, nil }, opts...)
}

// NewFunc defines a command from a plain function.
func NewFunc[P any](name string, fn func(ctx context.Context, params P) (any, error), opts ...Option) *Command[P] {
	return New[P](name, Func[P](fn), opts...)
}

// Build defines a command whose handler is built by factory on each invocation.
// It panics if an option was declared for a different params type.
func Build[P any](name string, factory Factory[P], opts ...Option) *Command[P] {
	s := settings{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(&s)
	}

	c := &Command[P]{
		name:      naming.Snake(name),
		factory:   factory,
		logger:    s.logger,
		lifecycle: s.lifecycle,
		schema:    s.schema,
	}
	for _, apply := range s.typed {
		fn, ok := apply.(func(*Command[P]))
		if !ok {
			panic(fmt.Sprintf("command %s: option declared for other params than %s", c.name, paramsType[P]()))
		}
		fn(c)
	}
	if !s.skipValidation {
		_ = c.chain.Prepend(c.gate())
	}
	return c
}

// Name returns the lower-snake identifier of the command.
func (c *Command[P]) Name() string { return c.name }

// Before appends before hooks. It fails once the command has run.
func (c *Command[P]) Before(hs ...hooks.Hook[P]) error { return c.chain.Before(hs...) }

// After appends after hooks. It fails once the command has run.
func (c *Command[P]) After(hs ...hooks.Hook[P]) error { return c.chain.After(hs...) }

// Around appends around hooks. It fails once the command has run.
func (c *Command[P]) Around(hs ...hooks.AroundHook[P]) error { return c.chain.Around(hs...) }

// HookNames lists the registered hooks per phase, the validation gate included.
func (c *Command[P]) HookNames() (before, after, around []string) {
	return c.chain.Names()
}

// Run executes the command. Expected failures come back as failed outcomes with a nil
// error; only unexpected errors are returned.
func (c *Command[P]) Run(ctx context.Context, params any, args ...any) (domain.Outcome, error) {
	out, err := c.RunStrict(ctx, params, args...)
	if err == nil {
		return out, nil
	}
	if failed, ok := AsOutcome(err); ok {
		return failed, nil
	}
	return domain.Outcome{}, err
}

// RunStrict executes the command and returns every failure as an error: a
// *domain.Failure for expected failures, anything else for unexpected ones.
// On any error or panic the handler is rolled back before the error is returned
// or the panic resumes.
func (c *Command[P]) RunStrict(ctx context.Context, params any, args ...any) (out domain.Outcome, err error) {
	started := c.start(ctx)
	defer func() { c.finish(ctx, started, out, err) }()

	h, err := c.factory(args...)
	if err != nil {
		return domain.Outcome{}, fmt.Errorf("command %s: build: %w", c.name, err)
	}
	if h == nil {
		return domain.Outcome{}, fmt.Errorf("command %s: build returned no handler", c.name)
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("command %s: panic: %v", c.name, r)
			if rbErr := c.rollback(ctx, h); rbErr != nil {
				c.logger.ErrorContext(ctx, "rollback failed", "command", c.name, "error", rbErr)
			}
			panic(r)
		}
	}()

	value, err := c.execute(ctx, h, params)
	if err != nil {
		if rbErr := c.rollback(ctx, h); rbErr != nil {
			err = errors.Join(err, &RollbackError{Command: c.name, Err: rbErr})
		}
		return domain.Outcome{}, err
	}
	if o, ok := value.(domain.Outcome); ok {
		return o, nil
	}
	return domain.Success(value), nil
}

// RunMatch runs the command and dispatches the outcome through the matcher built by define.
func (c *Command[P]) RunMatch(ctx context.Context, params any, define func(m *domain.Match), args ...any) (any, error) {
	out, err := c.Run(ctx, params, args...)
	if err != nil {
		return nil, err
	}
	return out.Handle(define)
}

// Entry exposes the command to sequences: "run" (the default) and "run_strict".
// The first invocation arg is the params, the rest are construction args.
func (c *Command[P]) Entry(method string) (domain.Invoker, error) {
	var run func(context.Context, any, ...any) (domain.Outcome, error)
	switch method {
	case "", domain.MethodRun:
		run = c.Run
	case domain.MethodRunStrict:
		run = c.RunStrict
	default:
		return nil, fmt.Errorf("command %s: %w %q", c.name, domain.ErrUnknownMethod, method)
	}

	return func(ctx context.Context, args ...any) (any, error) {
		var params any
		if len(args) > 0 {
			params, args = args[0], args[1:]
		}
		out, err := run(ctx, params, args...)
		if err != nil {
			return nil, err
		}
		return out, nil
	}, nil
}

func (c *Command[P]) execute(ctx context.Context, h Handler[P], raw any) (any, error) {
	params, err := c.resolve(raw)
	if err != nil {
		return nil, err
	}
	return c.chain.Run(ctx, h, params, h.Call)
}

func (c *Command[P]) rollback(ctx context.Context, h Handler[P]) error {
	r, ok := h.(Rollbacker)
	if !ok {
		return nil
	}
	c.logger.InfoContext(ctx, "rolling back", "command", c.name)
	return r.Rollback(ctx)
}

func (c *Command[P]) start(ctx context.Context) *domain.CommandEvent {
	ev := &domain.CommandEvent{
		EventBase: domain.EventBase{
			Timestamp:    time.Now(),
			Type:         domain.EventCommandStart,
			InvocationID: uuid.NewString(),
		},
		Command: c.name,
	}
	c.logger.DebugContext(ctx, "command started", "command", c.name, "invocation_id", ev.InvocationID)
	if c.lifecycle.OnCommandStart != nil {
		c.lifecycle.OnCommandStart(ctx, ev)
	}
	return ev
}

func (c *Command[P]) finish(ctx context.Context, started *domain.CommandEvent, out domain.Outcome, err error) {
	ev := &domain.CommandEvent{
		EventBase: domain.EventBase{
			Timestamp:    time.Now(),
			Type:         domain.EventCommandFinish,
			InvocationID: started.InvocationID,
		},
		Command:  c.name,
		Err:      err,
		Duration: time.Since(started.Timestamp),
	}

	switch failed, ok := AsOutcome(err); {
	case err == nil:
		ev.Outcome = &out
		c.logger.DebugContext(ctx, "command finished", "command", c.name, "duration", ev.Duration)
	case ok:
		ev.Outcome = &failed
		c.logger.InfoContext(ctx, "command failed", "command", c.name, "tag", failed.Tag(), "errors", failed.Result())
	default:
		c.logger.ErrorContext(ctx, "command error", "command", c.name, "error", err)
	}

	if c.lifecycle.OnCommandFinish != nil {
		c.lifecycle.OnCommandFinish(ctx, ev)
	}
}
