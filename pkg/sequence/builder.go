package sequence

import (
	"errors"
	"fmt"

	"github.com/aretw0/baton/pkg/domain"
	"github.com/aretw0/baton/pkg/hooks"
)

// Builder collects the definition of a sequence.
// Definition mistakes are recorded and reported by Build.
type Builder struct {
	seq  *Sequence
	errs []error
}

// New starts the definition of a sequence.
func New(name string, opts ...Option) *Builder {
	return &Builder{seq: newSequence(name, opts)}
}

// Step appends a step invoking target and returns its builder.
func (b *Builder) Step(target domain.Target) *StepBuilder {
	if target == nil {
		b.errs = append(b.errs, &domain.InvalidSequenceError{Reason: fmt.Sprintf("step %d has no target", len(b.seq.steps))})
		target = Callable("missing", nil)
	}
	step := NewStep(target)
	b.seq.steps = append(b.seq.steps, step)
	return &StepBuilder{builder: b, step: step}
}

// TakeLast returns the outcome of the last step. This is the default.
func (b *Builder) TakeLast() *Builder {
	b.seq.strategy = TakeLast
	b.seq.reducer = nil
	return b
}

// TakeAll returns the results of every step, keyed by step name.
func (b *Builder) TakeAll() *Builder {
	b.seq.strategy = TakeAll
	b.seq.reducer = nil
	return b
}

// Reduce computes the successful result with fn.
func (b *Builder) Reduce(fn Reducer) *Builder {
	b.seq.strategy = Reduced
	b.seq.reducer = fn
	return b
}

// Before appends hooks run once before the first step.
func (b *Builder) Before(hs ...hooks.Hook[[]any]) *Builder {
	b.record(b.seq.chain.Before(hs...))
	return b
}

// After appends hooks run once after the last step.
func (b *Builder) After(hs ...hooks.Hook[[]any]) *Builder {
	b.record(b.seq.chain.After(hs...))
	return b
}

// Around appends hooks wrapping the whole run.
func (b *Builder) Around(hs ...hooks.AroundHook[[]any]) *Builder {
	b.record(b.seq.chain.Around(hs...))
	return b
}

// Build returns the sequence, or every definition error joined.
// Later changes through the builder do not affect the returned sequence.
func (b *Builder) Build() (*Sequence, error) {
	if err := errors.Join(b.errs...); err != nil {
		return nil, err
	}

	seq := *b.seq
	seq.steps = make([]*Step, len(b.seq.steps))
	for i, st := range b.seq.steps {
		cp := *st
		seq.steps[i] = &cp
	}
	b.seq.chain.Freeze()
	return &seq, nil
}

// MustBuild is like Build but panics on definition errors.
func (b *Builder) MustBuild() *Sequence {
	seq, err := b.Build()
	if err != nil {
		panic(err)
	}
	return seq
}

func (b *Builder) record(err error) {
	if err != nil {
		b.errs = append(b.errs, err)
	}
}

// StepBuilder provides a fluent API for configuring a step.
type StepBuilder struct {
	builder *Builder
	step    *Step
}

// Receives sets the single-argument mutator.
func (sb *StepBuilder) Receives(m Mutator) *StepBuilder {
	sb.builder.record(sb.step.Receives(m))
	return sb
}

// ReceivesMany sets the spread-arguments mutator.
func (sb *StepBuilder) ReceivesMany(m SplatMutator) *StepBuilder {
	sb.builder.record(sb.step.ReceivesMany(m))
	return sb
}

// As names the step.
func (sb *StepBuilder) As(name string) *StepBuilder {
	sb.step.As(name)
	return sb
}

// InvokeWith selects the target entry point.
func (sb *StepBuilder) InvokeWith(method string) *StepBuilder {
	sb.step.InvokeWith(method)
	return sb
}

// Retry sets the retry policy.
func (sb *StepBuilder) Retry(p RetryPolicy) *StepBuilder {
	sb.step.Retry(p)
	return sb
}

// Step returns the step being configured.
func (sb *StepBuilder) Step() *Step { return sb.step }
