/*
Package baton runs commands and chains them into sequences.

A command wraps one unit of business logic. Each invocation passes through a validation
gate and a chain of before, after and around hooks, and ends as an Outcome: a success
carrying a result, or a failure carrying a tag such as "validation" and its errors.
Commands that can undo partial work are rolled back when they fail.

A sequence hands the baton from step to step. Every step sees the sequence params and a
copy of the results of the steps before it. The first failed step stops the sequence and
its Outcome is returned unchanged.

# Key Features

  - Explicit Outcomes: expected failures are values, unexpected ones are errors.
  - Typed Params: request objects decode raw maps into the params type of a command.
  - Composable: commands, sequences and plain functions share the Target interface, so
    sequences nest.
  - Declarative: sequences can be written as YAML manifests and compiled against a
    registry of commands.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/baton"
		"github.com/aretw0/baton/pkg/command"
		"github.com/aretw0/baton/pkg/domain"
	)

	func main() {
		greet := command.NewFunc("Greet", func(ctx context.Context, p map[string]any) (any, error) {
			return fmt.Sprintf("Hello, %v", p["name"]), nil
		})

		eng := baton.New()
		if err := eng.Register(greet); err != nil {
			log.Fatal(err)
		}

		out, err := eng.Run(context.Background(), "greet", map[string]any{"name": "Walter"})
		if err != nil {
			log.Fatal(err)
		}
		_, _ = out.Handle(func(m *domain.Match) {
			m.Success(func(result any) any {
				fmt.Println(result)
				return nil
			})
		})
	}
*/
package baton
