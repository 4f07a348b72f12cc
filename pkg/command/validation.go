package command

import (
	"context"

	"github.com/aretw0/baton/pkg/domain"
	"github.com/aretw0/baton/pkg/hooks"
	"github.com/aretw0/baton/pkg/schema"
)

// gateName is the name the validation gate is registered under.
const gateName = "when_valid"

// ParamsValidator is implemented by handlers that validate their own params.
type ParamsValidator[P any] interface {
	Validate(ctx context.Context, params P) domain.ValidationResult
}

// Validate checks params for the given handler instance. The first applicable source
// decides: the handler as ParamsValidator, then params as domain.Validatable, then the
// schema for map params. Anything else is valid.
func (c *Command[P]) Validate(ctx context.Context, handler Handler[P], params P) domain.ValidationResult {
	if v, ok := handler.(ParamsValidator[P]); ok {
		return v.Validate(ctx, params)
	}
	if v, ok := any(params).(domain.Validatable); ok {
		return domain.NewValidationResult(v.Valid(), v.Errors())
	}
	if c.schema != nil {
		if m, ok := any(params).(map[string]any); ok {
			return schema.Check(c.schema, m)
		}
	}
	return domain.Valid()
}

func (c *Command[P]) gate() hooks.Hook[P] {
	return hooks.Method(gateName, func(h Handler[P]) hooks.Func[P] {
		return func(ctx context.Context, params P) error {
			res := c.Validate(ctx, h, params)
			if res.IsValid() {
				return nil
			}
			c.logger.DebugContext(ctx, "params rejected", "command", c.Name(), "errors", res.Errors())
			return Invalidate(res.Errors())
		}
	})
}
