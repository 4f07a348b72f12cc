package domain

import (
	"errors"
	"fmt"
)

// ErrFailure matches every *Failure via errors.Is.
var ErrFailure = errors.New("command failed")

// ErrInvalid matches validation failures via errors.Is.
var ErrInvalid = errors.New("invalid params")

// ErrNoMatch is wrapped by NoMatchError.
var ErrNoMatch = errors.New("no matcher accepted the outcome")

// ErrInvalidSequence is wrapped by InvalidSequenceError.
var ErrInvalidSequence = errors.New("invalid sequence definition")

// ErrUnknownMethod is returned by Target.Entry for a method the target does not expose.
var ErrUnknownMethod = errors.New("unknown method")

// NoMatchError is returned by Outcome.Handle when no registered handler accepts the outcome.
type NoMatchError struct {
	Outcome Outcome
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("no match could be made for %s", e.Outcome)
}

func (e *NoMatchError) Unwrap() error { return ErrNoMatch }

// InvalidSequenceError reports a definition-time mistake in a sequence or step.
type InvalidSequenceError struct {
	Step   string
	Reason string
}

func (e *InvalidSequenceError) Error() string {
	if e.Step == "" {
		return fmt.Sprintf("invalid sequence: %s", e.Reason)
	}
	return fmt.Sprintf("invalid sequence: step %q: %s", e.Step, e.Reason)
}

func (e *InvalidSequenceError) Unwrap() error { return ErrInvalidSequence }
