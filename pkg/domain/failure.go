package domain

import "fmt"

// Failure is returned by command bodies, hooks and validators to end execution with a
// tagged, expected failure. Run converts it into a failed Outcome; RunStrict returns it.
type Failure struct {
	Tag Tag
	Raw any
}

// Fail builds a Failure with the given tag and payload.
func Fail(tag Tag, data any) *Failure {
	return &Failure{Tag: tag, Raw: data}
}

// Invalid builds a Failure tagged as a validation failure.
func Invalid(errors any) *Failure {
	return &Failure{Tag: TagValidation, Raw: errors}
}

// Errors returns the payload exposed in failed Outcomes.
// A plain string is wrapped as {"errors": s}; anything else is returned untouched.
func (f *Failure) Errors() any {
	if s, ok := f.Raw.(string); ok {
		return map[string]any{"errors": s}
	}
	return f.Raw
}

// Error renders the raw payload.
func (f *Failure) Error() string {
	if f.Raw == nil {
		return string(f.Tag)
	}
	return fmt.Sprint(f.Raw)
}

// Is lets errors.Is match ErrInvalid for validation failures and ErrFailure for any.
func (f *Failure) Is(target error) bool {
	switch target {
	case ErrFailure:
		return true
	case ErrInvalid:
		return f.Tag == TagValidation
	}
	return false
}

// Outcome converts the failure into the failed Outcome Run reports.
func (f *Failure) Outcome() Outcome {
	return Failed(f.Tag, f.Errors())
}
