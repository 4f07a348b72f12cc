package domain

import "slices"

// Condition narrows a matcher beyond its success/failure category.
type Condition func(o Outcome) bool

// IsTag accepts outcomes carrying exactly tag.
func IsTag(tag Tag) Condition {
	return func(o Outcome) bool { return o.tag == tag }
}

// OneOf accepts outcomes whose tag belongs to the given set.
func OneOf(tags ...Tag) Condition {
	return func(o Outcome) bool { return slices.Contains(tags, o.tag) }
}

// Where accepts outcomes whose tag satisfies pred.
func Where(pred func(Tag) bool) Condition {
	return func(o Outcome) bool { return pred(o.tag) }
}

// MatchHandler receives the outcome's result and returns the value Handle yields.
type MatchHandler func(result any) any

type matcher struct {
	success bool
	cond    Condition
	handler MatchHandler
}

func (m matcher) accepts(o Outcome) bool {
	if m.success != o.success {
		return false
	}
	return m.cond == nil || m.cond(o)
}

// Match collects handlers for Outcome.Handle.
// Handlers are tried in registration order and the first accepting one wins;
// register tag-specific failure handlers before generic ones.
type Match struct {
	matchers []matcher
}

// Success registers a handler for any successful outcome.
func (m *Match) Success(h MatchHandler) *Match {
	return m.push(true, nil, h)
}

// SuccessWhen registers a handler for successful outcomes accepted by cond.
func (m *Match) SuccessWhen(cond Condition, h MatchHandler) *Match {
	return m.push(true, cond, h)
}

// Failure registers a handler for any failed outcome.
func (m *Match) Failure(h MatchHandler) *Match {
	return m.push(false, nil, h)
}

// FailureWhen registers a handler for failed outcomes accepted by cond.
func (m *Match) FailureWhen(cond Condition, h MatchHandler) *Match {
	return m.push(false, cond, h)
}

// FailureTag registers a handler for failed outcomes tagged tag.
func (m *Match) FailureTag(tag Tag, h MatchHandler) *Match {
	return m.push(false, IsTag(tag), h)
}

// Invalid registers a handler for validation failures.
func (m *Match) Invalid(h MatchHandler) *Match {
	return m.FailureTag(TagValidation, h)
}

func (m *Match) push(success bool, cond Condition, h MatchHandler) *Match {
	m.matchers = append(m.matchers, matcher{success: success, cond: cond, handler: h})
	return m
}

// Dispatch runs the first handler accepting o.
func (m *Match) Dispatch(o Outcome) (any, error) {
	for _, candidate := range m.matchers {
		if candidate.accepts(o) {
			return candidate.handler(o.result), nil
		}
	}
	return nil, &NoMatchError{Outcome: o}
}

// Handle builds a Match with define and dispatches the outcome through it.
func (o Outcome) Handle(define func(m *Match)) (any, error) {
	m := &Match{}
	define(m)
	return m.Dispatch(o)
}
