/*
Package domain contains the core value types shared by commands and sequences.

It defines what an execution produces and how failures are described. The package is
kept pure and free of I/O so it can be imported by every other layer.

# Key Entities

  - Outcome: the immutable result of running a command or sequence (success flag, result, tag).
  - Failure: the error value a command body returns to end execution with a tagged failure.
  - ValidationResult: the verdict of the validation gate (valid flag and errors payload).
  - Match: an ordered list of handlers used to dispatch on an Outcome.
  - LifecycleHooks: observability callbacks fired around commands and sequence steps.
*/
package domain
