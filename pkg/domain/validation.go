package domain

// ValidationResult is the verdict produced by the validation gate on each invocation.
type ValidationResult struct {
	valid  bool
	errors any
}

// Valid returns a passing ValidationResult with no errors.
func Valid() ValidationResult {
	return ValidationResult{valid: true, errors: []any{}}
}

// NewValidationResult builds a ValidationResult. A nil errors payload defaults to an empty slice.
func NewValidationResult(valid bool, errors any) ValidationResult {
	if errors == nil {
		errors = []any{}
	}
	return ValidationResult{valid: valid, errors: errors}
}

// IsValid reports whether validation passed.
func (v ValidationResult) IsValid() bool { return v.valid }

// Errors returns the errors payload.
func (v ValidationResult) Errors() any { return v.errors }

// Validatable is implemented by params that can check themselves.
type Validatable interface {
	Valid() bool
	Errors() any
}

type errorsAccessor interface{ Errors() any }

type messagesAccessor interface{ Messages() any }

type messageAccessor interface{ Message() string }

// Normalize reduces a validation errors object to its most useful form.
// Each accessor is applied in turn when the current value exposes it:
// Errors(), then Messages(), then Message(); a plain error collapses to its text.
func Normalize(obj any) any {
	out := obj
	if v, ok := out.(errorsAccessor); ok {
		out = v.Errors()
	}
	if v, ok := out.(messagesAccessor); ok {
		out = v.Messages()
	}
	if v, ok := out.(messageAccessor); ok {
		out = v.Message()
	} else if err, ok := out.(error); ok {
		out = err.Error()
	}
	return out
}
