package schema

import (
	"errors"
	"slices"

	"github.com/aretw0/baton/pkg/domain"
)

// Schema is a map of field names to their expected types.
type Schema map[string]Type

// Validate checks data against the schema and returns an *AggregateError listing
// every failing field, or nil. Fields not declared in the schema are ignored.
func Validate(s Schema, data map[string]any) error {
	if len(s) == 0 {
		return nil
	}

	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var errs []*ValidationError
	for _, key := range keys {
		typ := s[key]
		value, exists := data[key]
		if !exists || value == nil {
			if isOptional(typ) {
				continue
			}
			errs = append(errs, &ValidationError{Key: key, Reason: "required"})
			continue
		}
		if err := typ.Validate(value); err != nil {
			errs = append(errs, &ValidationError{Key: key, Reason: err.Error(), Value: value})
		}
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}

// Check validates data and reports the verdict as a ValidationResult whose errors
// payload maps field names to reasons.
func Check(s Schema, data map[string]any) domain.ValidationResult {
	err := Validate(s, data)
	if err == nil {
		return domain.Valid()
	}
	var aggr *AggregateError
	if errors.As(err, &aggr) {
		return domain.NewValidationResult(false, aggr.Fields())
	}
	return domain.NewValidationResult(false, err.Error())
}

// ValidationErrors returns the field failures carried by err, or nil.
func ValidationErrors(err error) []*ValidationError {
	var aggr *AggregateError
	if errors.As(err, &aggr) {
		return aggr.Errors
	}
	return nil
}
