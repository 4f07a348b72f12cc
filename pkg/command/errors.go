package command

import (
	"errors"
	"fmt"

	"github.com/aretw0/baton/pkg/domain"
)

// RollbackError reports a Rollback that failed while unwinding another error.
// It is joined with the original error, never replacing it.
type RollbackError struct {
	Command string
	Err     error
}

func (e *RollbackError) Error() string {
	return fmt.Sprintf("command %s: rollback: %v", e.Command, e.Err)
}

func (e *RollbackError) Unwrap() error { return e.Err }

// Fail returns the error a handler or hook uses to end with a tagged domain failure.
// A nil payload is reported as an empty errors map.
func Fail(tag domain.Tag, data any) error {
	if data == nil {
		data = map[string]any{}
	}
	return domain.Fail(tag, data)
}

// Invalidate returns a validation failure for obj, reduced with domain.Normalize.
// A plain string or error ends up as {"errors": text} in the failed outcome.
func Invalidate(obj any) error {
	return domain.Invalid(domain.Normalize(obj))
}

// AsOutcome converts an expected failure into the failed Outcome Run reports.
// It returns false for unexpected errors, including failures whose rollback failed.
func AsOutcome(err error) (domain.Outcome, bool) {
	var rb *RollbackError
	if errors.As(err, &rb) {
		return domain.Outcome{}, false
	}
	var f *domain.Failure
	if errors.As(err, &f) {
		return f.Outcome(), true
	}
	return domain.Outcome{}, false
}
