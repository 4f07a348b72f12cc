package sequence

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/baton/internal/logging"
	"github.com/aretw0/baton/internal/naming"
	"github.com/aretw0/baton/pkg/command"
	"github.com/aretw0/baton/pkg/domain"
	"github.com/aretw0/baton/pkg/hooks"
	"github.com/google/uuid"
)

// Strategy selects what a successful sequence returns.
type Strategy string

const (
	// TakeLast returns the outcome of the last step.
	TakeLast Strategy = "take_last"
	// TakeAll returns the Results of every step.
	TakeAll Strategy = "take_all"
	// Reduced returns the value computed by the sequence reducer.
	Reduced Strategy = "reduce"
)

// Reducer computes the result of a successful sequence from its params and the step results.
type Reducer func(params []any, results Results) (any, error)

// Option configures a Sequence.
type Option func(*Sequence)

// WithLogger sets the logger. Sequences are silent by default.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Sequence) {
		s.logger = logger
	}
}

// WithLifecycleHooks registers callbacks for step enter and leave events.
func WithLifecycleHooks(h domain.LifecycleHooks) Option {
	return func(s *Sequence) {
		s.lifecycle = s.lifecycle.Merge(h)
	}
}

// Sequence is an immutable, ordered pipeline of steps. It is itself a domain.Target,
// so sequences nest.
type Sequence struct {
	name      string
	steps     []*Step
	strategy  Strategy
	reducer   Reducer
	chain     *hooks.Chain[[]any]
	logger    *slog.Logger
	lifecycle domain.LifecycleHooks
}

// run tracks one invocation.
type run struct {
	id      string
	entered bool
	ran     bool
	last    any
	halted  *domain.Outcome
	results Results
}

// Name returns the lower-snake identifier of the sequence.
func (s *Sequence) Name() string { return s.name }

// Steps returns the steps in execution order.
func (s *Sequence) Steps() []*Step {
	out := make([]*Step, len(s.steps))
	copy(out, s.steps)
	return out
}

// Strategy returns how the sequence builds its successful outcome.
func (s *Sequence) Strategy() Strategy { return s.strategy }

// HookNames lists the sequence-level hooks per phase.
func (s *Sequence) HookNames() (before, after, around []string) {
	return s.chain.Names()
}

// Run executes the steps in order. The first failed outcome stops the sequence and is
// returned unchanged. A *domain.Failure returned by a hook, a strict step or the reducer
// also ends in a failed outcome; any other error is returned. Callers that want failures
// to propagate as *domain.Failure errors use RunStrict.
func (s *Sequence) Run(ctx context.Context, params ...any) (domain.Outcome, error) {
	r := &run{id: uuid.NewString()}
	s.logger.DebugContext(ctx, "sequence started", "sequence", s.name, "invocation_id", r.id)

	_, err := s.chain.Run(ctx, s, params, func(ctx context.Context, params []any) (any, error) {
		return nil, s.runSteps(ctx, r, params)
	})
	if err != nil {
		return s.failure(ctx, err)
	}

	switch {
	case r.halted != nil:
		return *r.halted, nil
	case !r.entered:
		return domain.Success(nil), nil
	case s.reducer != nil:
		v, err := s.reducer(params, r.results.Clone())
		if err != nil {
			return s.failure(ctx, fmt.Errorf("sequence %s: reduce: %w", s.name, err))
		}
		return domain.Success(v), nil
	case s.strategy == TakeAll:
		return domain.Success(r.results), nil
	case !r.ran:
		return domain.Success(nil), nil
	}
	if o, ok := r.last.(domain.Outcome); ok {
		return o, nil
	}
	return domain.Success(r.last), nil
}

func (s *Sequence) failure(ctx context.Context, err error) (domain.Outcome, error) {
	if out, ok := command.AsOutcome(err); ok {
		s.logger.InfoContext(ctx, "sequence failed", "sequence", s.name, "tag", out.Tag())
		return out, nil
	}
	s.logger.ErrorContext(ctx, "sequence error", "sequence", s.name, "error", err)
	return domain.Outcome{}, err
}

// RunStrict runs the sequence and returns a failed outcome as a *domain.Failure too.
func (s *Sequence) RunStrict(ctx context.Context, params ...any) (domain.Outcome, error) {
	out, err := s.Run(ctx, params...)
	if err != nil {
		return out, err
	}
	if out.Failed() {
		return out, domain.Fail(out.Tag(), out.Result())
	}
	return out, nil
}

// Entry exposes the sequence as a step target: "run" (the default) and "run_strict".
// Invocation args become the sequence params.
func (s *Sequence) Entry(method string) (domain.Invoker, error) {
	var fn func(context.Context, ...any) (domain.Outcome, error)
	switch method {
	case "", domain.MethodRun:
		fn = s.Run
	case domain.MethodRunStrict:
		fn = s.RunStrict
	default:
		return nil, fmt.Errorf("sequence %s: %w %q", s.name, domain.ErrUnknownMethod, method)
	}
	return func(ctx context.Context, args ...any) (any, error) {
		out, err := fn(ctx, args...)
		if err != nil {
			return nil, err
		}
		return out, nil
	}, nil
}

func (s *Sequence) runSteps(ctx context.Context, r *run, params []any) error {
	r.entered = true
	r.results = Results{}

	for i, step := range s.steps {
		s.enter(ctx, r, i, step)
		started := time.Now()

		v, err := step.Run(ctx, params, r.results.Clone())
		s.leave(ctx, r, i, step, v, err, time.Since(started))
		if err != nil {
			return fmt.Errorf("sequence %s: step %s: %w", s.name, step.Name(), err)
		}

		r.ran = true
		r.last = v
		if o, ok := failed(v); ok {
			s.logger.InfoContext(ctx, "sequence halted", "sequence", s.name, "step", step.Name(), "tag", o.Tag())
			r.halted = &o
			return nil
		}
		r.results[step.Name()] = unwrap(v)
	}
	return nil
}

func (s *Sequence) enter(ctx context.Context, r *run, i int, step *Step) {
	s.logger.DebugContext(ctx, "step entered", "sequence", s.name, "step", step.Name(), "index", i)
	if s.lifecycle.OnStepEnter == nil {
		return
	}
	s.lifecycle.OnStepEnter(ctx, &domain.StepEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventStepEnter, InvocationID: r.id},
		Sequence:  s.name,
		Step:      step.Name(),
		Index:     i,
	})
}

func (s *Sequence) leave(ctx context.Context, r *run, i int, step *Step, v any, err error, d time.Duration) {
	s.logger.DebugContext(ctx, "step left", "sequence", s.name, "step", step.Name(), "index", i, "duration", d, "error", err)
	if s.lifecycle.OnStepLeave == nil {
		return
	}
	ev := &domain.StepEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventStepLeave, InvocationID: r.id},
		Sequence:  s.name,
		Step:      step.Name(),
		Index:     i,
		Err:       err,
		Duration:  d,
	}
	if o, ok := v.(domain.Outcome); ok {
		ev.Outcome = &o
	} else if err == nil {
		o := domain.Success(v)
		ev.Outcome = &o
	}
	s.lifecycle.OnStepLeave(ctx, ev)
}

func newSequence(name string, opts []Option) *Sequence {
	s := &Sequence{
		name:     naming.Snake(name),
		strategy: TakeLast,
		chain:    &hooks.Chain[[]any]{},
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
