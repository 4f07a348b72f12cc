package demo

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/aretw0/baton/pkg/command"
	"github.com/aretw0/baton/pkg/domain"
	"github.com/aretw0/baton/pkg/hooks"
	"github.com/aretw0/baton/pkg/schema"
	"github.com/aretw0/baton/pkg/sequence"
)

// NameRequest is the request object of SayMyName.
type NameRequest struct {
	Name string `mapstructure:"name"`
}

// Valid implements domain.Validatable.
func (r NameRequest) Valid() bool { return strings.TrimSpace(r.Name) != "" }

// Errors implements domain.Validatable.
func (r NameRequest) Errors() any {
	if r.Valid() {
		return map[string][]string{}
	}
	return map[string][]string{"name": {"is required"}}
}

// SayMyName greets params.name.
func SayMyName(opts ...command.Option) *command.Command[NameRequest] {
	opts = append(opts, command.WithRequest(command.Decode[NameRequest]()))
	return command.NewFunc("SayMyName", func(ctx context.Context, r NameRequest) (any, error) {
		return "Hello, " + r.Name, nil
	}, opts...)
}

// importance builds its announcement across method hooks.
type importance struct {
	message string
	country string
}

func (i *importance) takeMessage(ctx context.Context, p map[string]any) error {
	i.message = fmt.Sprint(p["boring_message"])
	return nil
}

func (i *importance) takeCountry(ctx context.Context, p map[string]any) error {
	i.country = fmt.Sprint(p["country"])
	return nil
}

func (i *importance) Call(ctx context.Context, _ map[string]any) (any, error) {
	return fmt.Sprintf("%s! You are the most important citizen of %s!", i.message, i.country), nil
}

var importanceSchema = schema.Schema{
	"boring_message": schema.String(),
	"country":        schema.String(),
}

// MakeMeSoundImportant turns a boring message into a proclamation for a country.
func MakeMeSoundImportant(opts ...command.Option) *command.Command[map[string]any] {
	factory := func(...any) (command.Handler[map[string]any], error) { return &importance{}, nil }
	opts = append(opts,
		command.WithSchema(importanceSchema),
		command.Before(
			hooks.Method("take_message", func(i *importance) hooks.Func[map[string]any] { return i.takeMessage }),
			hooks.Method("take_country", func(i *importance) hooks.Func[map[string]any] { return i.takeCountry }),
		),
	)
	return command.Build[map[string]any]("MakeMeSoundImportant", factory, opts...)
}

// ConstructGreeting is a plain target with a "go" entry point joining a greeting and
// a name.
func ConstructGreeting() domain.Target {
	return sequence.Methods("ConstructGreeting", map[string]domain.Invoker{
		"go": func(ctx context.Context, args ...any) (any, error) {
			if len(args) != 2 {
				return nil, fmt.Errorf("construct_greeting: want 2 arguments, got %d", len(args))
			}
			return fmt.Sprintf("%v, %v", args[0], args[1]), nil
		},
	})
}

// ThrowInvalidError always fails validation.
func ThrowInvalidError(opts ...command.Option) *command.Command[any] {
	return command.NewFunc("ThrowInvalidError", func(ctx context.Context, _ any) (any, error) {
		return nil, command.Invalidate("Error Message")
	}, opts...)
}

// TagBusy is the failure tag of a seat that is not free yet.
const TagBusy domain.Tag = "busy"

// ReserveSeat fails with TagBusy for the first busyFor calls, then confirms the seat.
func ReserveSeat(busyFor int64, opts ...command.Option) *command.Command[map[string]any] {
	var calls atomic.Int64
	return command.NewFunc("ReserveSeat", func(ctx context.Context, p map[string]any) (any, error) {
		n := calls.Add(1)
		if n <= busyFor {
			return nil, command.Fail(TagBusy, fmt.Sprintf("attempt %d: seat is busy", n))
		}
		return fmt.Sprintf("seat reserved for %v after %d attempts", p["name"], n), nil
	}, opts...)
}

// CountryCode returns the upper-case first two letters of params.country.
func CountryCode() domain.Target {
	return sequence.Callable("CountryCode", func(ctx context.Context, args ...any) (any, error) {
		if len(args) == 0 {
			return nil, command.Invalidate("country is required")
		}
		p, _ := args[0].(map[string]any)
		country, _ := p["country"].(string)
		if len(country) < 2 {
			return nil, command.Invalidate(map[string][]string{"country": {"is too short"}})
		}
		return strings.ToUpper(country[:2]), nil
	})
}
