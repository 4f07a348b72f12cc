package sequence

import (
	"maps"

	"github.com/aretw0/baton/pkg/domain"
)

// Results maps step names to the unwrapped results of the steps that already ran.
type Results map[string]any

// Clone returns a shallow copy.
func (r Results) Clone() Results {
	if r == nil {
		return Results{}
	}
	return maps.Clone(r)
}

// unwrap returns an outcome's result, or the raw value of a plain callable.
func unwrap(v any) any {
	if o, ok := v.(domain.Outcome); ok {
		return o.Result()
	}
	return v
}

func failed(v any) (domain.Outcome, bool) {
	o, ok := v.(domain.Outcome)
	return o, ok && o.Failed()
}
