package sequence

import (
	"context"

	"github.com/aretw0/baton/internal/naming"
	"github.com/aretw0/baton/pkg/domain"
)

// Mutator builds the single argument a step passes to its target.
type Mutator func(params []any, prior Results) any

// SplatMutator builds the argument list a step spreads into its target.
type SplatMutator func(params []any, prior Results) []any

// Step is one stage of a sequence.
// Without a mutator the sequence params are spread into the target unchanged.
type Step struct {
	target domain.Target
	name   string
	method string
	single Mutator
	splat  SplatMutator
	retry  *RetryPolicy
}

// NewStep creates a step invoking target with "run".
func NewStep(target domain.Target) *Step {
	return &Step{target: target, method: domain.MethodRun}
}

// Name returns the explicit name set with As, or the lower-snake name of the target.
func (s *Step) Name() string {
	if s.name != "" {
		return s.name
	}
	return naming.Snake(s.target.Name())
}

// Target returns the invoked target.
func (s *Step) Target() domain.Target { return s.target }

// Method returns the entry point invoked on the target.
func (s *Step) Method() string { return s.method }

// HasMutator reports which mutator, if any, is set.
func (s *Step) HasMutator() (single, splat bool) {
	return s.single != nil, s.splat != nil
}

// RetryPolicy returns the retry policy, or nil.
func (s *Step) RetryPolicy() *RetryPolicy { return s.retry }

// As sets the name under which the step result is recorded.
func (s *Step) As(name string) *Step {
	s.name = name
	return s
}

// InvokeWith selects the target entry point, e.g. "run_strict".
func (s *Step) InvokeWith(method string) *Step {
	s.method = method
	return s
}

// Retry re-runs the step according to p.
func (s *Step) Retry(p RetryPolicy) *Step {
	s.retry = &p
	return s
}

// Receives sets the single-argument mutator. It fails if ReceivesMany was used,
// leaving the step unchanged.
func (s *Step) Receives(m Mutator) error {
	if s.splat != nil {
		return &domain.InvalidSequenceError{Step: s.Name(), Reason: "receives cannot be combined with receives_many"}
	}
	s.single = m
	return nil
}

// ReceivesMany sets the spread-arguments mutator. It fails if Receives was used,
// leaving the step unchanged.
func (s *Step) ReceivesMany(m SplatMutator) error {
	if s.single != nil {
		return &domain.InvalidSequenceError{Step: s.Name(), Reason: "receives_many cannot be combined with receives"}
	}
	s.splat = m
	return nil
}

// Run invokes the target with the arguments derived from params and prior results.
func (s *Step) Run(ctx context.Context, params []any, prior Results) (any, error) {
	entry, err := s.target.Entry(s.method)
	if err != nil {
		return nil, err
	}

	args := s.args(params, prior)
	call := func() (any, error) { return entry(ctx, args...) }
	if s.retry == nil {
		return call()
	}
	return s.retry.do(ctx, call)
}

func (s *Step) args(params []any, prior Results) []any {
	switch {
	case s.single != nil:
		return []any{s.single(params, prior)}
	case s.splat != nil:
		return s.splat(params, prior)
	default:
		return params
	}
}
