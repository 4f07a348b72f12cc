package domain

import "context"

// Method names understood by Target.Entry for commands and sequences.
const (
	MethodRun       = "run"
	MethodRunStrict = "run_strict"
)

// Invoker is an entry point into a Target. Args are spread positionally.
type Invoker func(ctx context.Context, args ...any) (any, error)

// Target is anything a sequence step can invoke: commands, sequences and plain callables.
type Target interface {
	// Name identifies the target; steps derive their default name from it.
	Name() string
	// Entry resolves the named entry point.
	Entry(method string) (Invoker, error)
}
