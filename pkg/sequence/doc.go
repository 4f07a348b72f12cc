/*
Package sequence composes commands and other targets into ordered pipelines.

A Sequence runs its steps in order, threading the original params and the results of
earlier steps into each step, and stops at the first failed outcome:

	b := sequence.New("GreetCitizen")

	b.Step(sayMyName).
		As("greeting").
		Receives(func(params []any, _ sequence.Results) any {
			return params[0]
		})

	b.Step(makeMeSoundImportant).
		Receives(func(params []any, prior sequence.Results) any {
			p := params[0].(map[string]any)
			return map[string]any{"boring_message": prior["greeting"], "country": p["country"]}
		})

	seq, err := b.Build()
	out, err := seq.Run(ctx, map[string]any{"name": "Jessica", "country": "Azerbaijan"})

By default the outcome of the last step is returned. TakeAll returns the map of every
step result by step name, and Reduce computes the final value from params and results.

Steps invoke a domain.Target: commands, other sequences, or plain functions wrapped with
Callable and Methods.
*/
package sequence
