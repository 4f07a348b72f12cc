package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventCommandStart  EventType = "command_start"
	EventCommandFinish EventType = "command_finish"
	EventStepEnter     EventType = "step_enter"
	EventStepLeave     EventType = "step_leave"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp    time.Time `json:"timestamp"`
	Type         EventType `json:"type"`
	InvocationID string    `json:"invocation_id"`
}

// CommandEvent is emitted when a command starts and when it finishes.
// Outcome and Err are only populated on finish.
type CommandEvent struct {
	EventBase
	Command  string        `json:"command"`
	Outcome  *Outcome      `json:"-"`
	Err      error         `json:"-"`
	Duration time.Duration `json:"duration,omitempty"`
}

// StepEvent is emitted when a sequence enters and leaves a step.
type StepEvent struct {
	EventBase
	Sequence string        `json:"sequence"`
	Step     string        `json:"step"`
	Index    int           `json:"index"`
	Outcome  *Outcome      `json:"-"`
	Err      error         `json:"-"`
	Duration time.Duration `json:"duration,omitempty"`
}

// LifecycleHooks defines callbacks for execution observability.
// Every field is optional.
type LifecycleHooks struct {
	OnCommandStart  func(context.Context, *CommandEvent)
	OnCommandFinish func(context.Context, *CommandEvent)
	OnStepEnter     func(context.Context, *StepEvent)
	OnStepLeave     func(context.Context, *StepEvent)
}

// Merge returns hooks that call h first and then other for every event.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnCommandStart:  chainCommand(h.OnCommandStart, other.OnCommandStart),
		OnCommandFinish: chainCommand(h.OnCommandFinish, other.OnCommandFinish),
		OnStepEnter:     chainStep(h.OnStepEnter, other.OnStepEnter),
		OnStepLeave:     chainStep(h.OnStepLeave, other.OnStepLeave),
	}
}

func chainCommand(a, b func(context.Context, *CommandEvent)) func(context.Context, *CommandEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *CommandEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}

func chainStep(a, b func(context.Context, *StepEvent)) func(context.Context, *StepEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *StepEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}
