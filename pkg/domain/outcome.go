package domain

import "fmt"

// Tag classifies a failed Outcome (e.g. "validation", "not_found").
type Tag string

// TagValidation marks failures produced by the validation gate.
const TagValidation Tag = "validation"

// Outcome is the result of executing a command or a sequence.
// It is a value type: once constructed it never changes.
type Outcome struct {
	success bool
	result  any
	tag     Tag
}

// NewOutcome builds an Outcome with every field set explicitly.
// Prefer Success and Fail; this exists for callers that need a tagged success.
func NewOutcome(success bool, result any, tag Tag) Outcome {
	return Outcome{success: success, result: result, tag: tag}
}

// Success returns a successful, untagged Outcome wrapping result.
func Success(result any) Outcome {
	return Outcome{success: true, result: result}
}

// Failed returns a failed Outcome carrying the tag and the errors payload.
func Failed(tag Tag, errors any) Outcome {
	return Outcome{success: false, result: errors, tag: tag}
}

// Succeeded reports whether the execution succeeded.
func (o Outcome) Succeeded() bool { return o.success }

// Failed reports whether the execution failed.
func (o Outcome) Failed() bool { return !o.success }

// Result returns the payload: the computed value on success, the errors on failure.
func (o Outcome) Result() any { return o.result }

// Tag returns the failure tag, empty for untagged outcomes.
func (o Outcome) Tag() Tag { return o.tag }

func (o Outcome) String() string {
	if o.success {
		return fmt.Sprintf("success(%v)", o.result)
	}
	if o.tag == "" {
		return fmt.Sprintf("failure(%v)", o.result)
	}
	return fmt.Sprintf("failure[%s](%v)", o.tag, o.result)
}
