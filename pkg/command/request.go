package command

import (
	"fmt"
	"reflect"

	"github.com/aretw0/baton/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// Decode returns a request-object constructor that decodes maps into P using
// mapstructure tags. Input is weakly typed, so "19" decodes into an int field.
func Decode[P any]() func(raw any) (P, error) {
	return func(raw any) (P, error) {
		var p P
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:           &p,
			WeaklyTypedInput: true,
		})
		if err != nil {
			return p, err
		}
		if err := dec.Decode(raw); err != nil {
			return p, fmt.Errorf("decode %s: %w", paramsType[P](), err)
		}
		return p, nil
	}
}

// resolve turns raw params into P: values already of type P pass through, then the
// request constructor applies, then nil becomes the zero P.
func (c *Command[P]) resolve(raw any) (P, error) {
	if p, ok := raw.(P); ok {
		return p, nil
	}
	var zero P
	if c.request != nil {
		p, err := c.request(raw)
		if err != nil {
			return zero, Invalidate(err)
		}
		return p, nil
	}
	if raw == nil {
		return zero, nil
	}
	return zero, domain.Invalid(fmt.Sprintf("params: expected %s, got %T", paramsType[P](), raw))
}

func paramsType[P any]() string {
	return reflect.TypeFor[P]().String()
}
