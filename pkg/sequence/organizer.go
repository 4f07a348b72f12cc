package sequence

import (
	"context"

	"github.com/aretw0/baton/internal/naming"
	"github.com/aretw0/baton/pkg/command"
	"github.com/aretw0/baton/pkg/domain"
)

// Transform derives the params of an organizer step.
type Transform func(params any, results Results) any

type organized struct {
	target    domain.Target
	transform Transform
}

// Organizer is the command-shaped cousin of Sequence: it is itself a command whose body
// runs each target strictly, so the first failure ends the command, and collects every
// result by target name.
type Organizer struct {
	name  string
	steps []organized
	parse func(results Results) (any, error)
}

// NewOrganizer starts an organizer definition.
func NewOrganizer(name string) *Organizer {
	return &Organizer{name: name}
}

// Add appends a target. A nil transform passes the organizer params through.
func (o *Organizer) Add(target domain.Target, transform Transform) *Organizer {
	o.steps = append(o.steps, organized{target: target, transform: transform})
	return o
}

// Parse sets the function turning the collected results into the command result.
func (o *Organizer) Parse(fn func(results Results) (any, error)) *Organizer {
	o.parse = fn
	return o
}

// Command builds the organizer command.
func (o *Organizer) Command(opts ...command.Option) *command.Command[any] {
	steps := append([]organized(nil), o.steps...)
	parse := o.parse
	return command.NewFunc(o.name, func(ctx context.Context, params any) (any, error) {
		results := Results{}
		for _, st := range steps {
			entry, err := st.target.Entry(domain.MethodRunStrict)
			if err != nil {
				return nil, err
			}
			callWith := params
			if st.transform != nil {
				callWith = st.transform(params, results.Clone())
			}
			v, err := entry(ctx, callWith)
			if err != nil {
				return nil, err
			}
			results[naming.Snake(st.target.Name())] = unwrap(v)
		}
		if parse != nil {
			return parse(results)
		}
		return results, nil
	}, opts...)
}
