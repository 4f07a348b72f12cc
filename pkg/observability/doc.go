/*
Package observability turns command and sequence lifecycle events into metrics and
audit logs.

Both are plain domain.LifecycleHooks and can be merged and attached to any command or
sequence:

	metrics, _ := observability.NewMetrics(prometheus.DefaultRegisterer)
	hooks := metrics.Hooks().Merge(observability.Audit(logger))

	cmd := command.NewFunc("SayMyName", fn, command.WithLifecycleHooks(hooks))
	seq := sequence.New("Greet", sequence.WithLifecycleHooks(hooks))
*/
package observability
