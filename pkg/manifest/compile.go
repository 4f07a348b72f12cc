package manifest

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/aretw0/baton/pkg/command"
	"github.com/aretw0/baton/pkg/domain"
	"github.com/aretw0/baton/pkg/hooks"
	"github.com/aretw0/baton/pkg/registry"
	"github.com/aretw0/baton/pkg/schema"
	"github.com/aretw0/baton/pkg/sequence"
)

// Validate reports every problem that would make Compile fail, joined.
func (m *Manifest) Validate(reg *registry.Registry) error {
	_, err := m.build(reg)
	return err
}

// Compile builds the sequence declared by the manifest, resolving commands in reg.
func (m *Manifest) Compile(reg *registry.Registry, opts ...sequence.Option) (*sequence.Sequence, error) {
	b, err := m.build(reg, opts...)
	if err != nil {
		return nil, err
	}
	return b.Build()
}

func (m *Manifest) build(reg *registry.Registry, opts ...sequence.Option) (*sequence.Builder, error) {
	var errs []error
	fail := func(step string, format string, args ...any) {
		errs = append(errs, &domain.InvalidSequenceError{Step: step, Reason: fmt.Sprintf(format, args...)})
	}

	if m.Name == "" {
		fail("", "manifest has no name")
	}
	b := sequence.New(m.Name, opts...)

	switch sequence.Strategy(m.Result) {
	case "", sequence.TakeLast:
		b.TakeLast()
	case sequence.TakeAll:
		b.TakeAll()
	default:
		fail("", "unknown result %q (want take_last or take_all)", m.Result)
	}

	if m.Params != nil {
		b.Before(paramsGate(m.Params))
	}

	seen := map[string]bool{}
	for i, st := range m.Steps {
		label := st.Key()
		if label == "" {
			label = fmt.Sprintf("#%d", i+1)
		}

		target, err := reg.Lookup(st.Command)
		if err != nil {
			errs = append(errs, fmt.Errorf("step %s: %w", label, err))
			continue
		}

		sb := b.Step(target)
		if st.As != "" {
			sb.As(st.As)
		}
		if st.InvokeWith != "" {
			sb.InvokeWith(st.InvokeWith)
			if _, err := target.Entry(st.InvokeWith); err != nil {
				errs = append(errs, fmt.Errorf("step %s: %w", label, err))
			}
		}
		if st.Retry != nil {
			policy, err := retryPolicy(st.Retry)
			if err != nil {
				fail(label, "retry: %v", err)
			}
			sb.Retry(policy)
		}

		for _, ref := range append(references(st.Receives), references(st.ReceivesMany)...) {
			if !seen[ref] {
				fail(label, "references results of %q, which does not run before it", ref)
			}
		}

		switch {
		case st.Receives != nil && st.ReceivesMany != nil:
			fail(label, "receives cannot be combined with receives_many")
		case st.Receives != nil:
			tmpl := st.Receives
			sb.Receives(func(params []any, prior sequence.Results) any {
				return expand(tmpl, params, prior)
			})
		case st.ReceivesMany != nil:
			tmpl := st.ReceivesMany
			sb.ReceivesMany(func(params []any, prior sequence.Results) []any {
				return expand(tmpl, params, prior).([]any)
			})
		}

		seen[sb.Step().Name()] = true
	}

	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("manifest %s: %w", m.Name, err)
	}
	return b, nil
}

func retryPolicy(r *Retry) (sequence.RetryPolicy, error) {
	delay, err := r.delay()
	if err != nil {
		return sequence.RetryPolicy{}, err
	}
	policy := sequence.RetryPolicy{Attempts: r.Attempts, Delay: delay}
	for _, tag := range r.Tags {
		policy.Tags = append(policy.Tags, domain.Tag(tag))
	}
	return policy, nil
}

// paramsGate validates the first sequence param against s.
func paramsGate(s schema.Schema) hooks.Hook[[]any] {
	return hooks.Named("validate_params", func(ctx context.Context, params []any) error {
		var data map[string]any
		if len(params) > 0 {
			m, ok := params[0].(map[string]any)
			if !ok {
				return command.Invalidate(fmt.Sprintf("params: expected a map, got %T", params[0]))
			}
			data = m
		}
		res := schema.Check(s, data)
		if res.IsValid() {
			return nil
		}
		return command.Invalidate(res.Errors())
	})
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
