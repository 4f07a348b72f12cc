// Package command defines command objects: units of business logic with a uniform
// invocation contract.
//
// A command wraps a Handler with a hook chain, a validation gate and an optional
// request-object constructor. Each invocation builds a fresh handler instance, runs it
// inside the chain and reports a domain.Outcome:
//
//	greet := command.NewFunc("SayMyName", func(ctx context.Context, p map[string]any) (any, error) {
//	    return fmt.Sprintf("Hello, %v", p["name"]), nil
//	})
//
//	out, err := greet.Run(ctx, map[string]any{"name": "Jessica"})
//	// out.Result() == "Hello, Jessica"
//
// Run converts expected failures (see Fail and Invalidate) into failed outcomes and only
// returns errors for unexpected problems. RunStrict returns every failure as an error.
// Both roll the handler back when it implements Rollbacker and anything goes wrong.
package command
