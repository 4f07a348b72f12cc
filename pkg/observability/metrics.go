package observability

import (
	"context"
	"errors"
	"fmt"

	"github.com/aretw0/baton/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Status label values.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
	StatusError   = "error"
)

// Metrics holds the Prometheus collectors fed by lifecycle events.
type Metrics struct {
	commandRuns     *prometheus.CounterVec
	commandFailures *prometheus.CounterVec
	commandDuration *prometheus.HistogramVec
	stepRuns        *prometheus.CounterVec
	stepDuration    *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
// Collectors already registered with reg are reused.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		commandRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "baton_command_runs_total",
				Help: "Total number of command runs by final status",
			},
			[]string{"command", "status"},
		),
		commandFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "baton_command_failures_total",
				Help: "Total number of failed command outcomes by tag",
			},
			[]string{"command", "tag"},
		),
		commandDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "baton_command_duration_seconds",
				Help:    "Duration of command runs",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"command"},
		),
		stepRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "baton_step_runs_total",
				Help: "Total number of sequence step runs by status",
			},
			[]string{"sequence", "step", "status"},
		),
		stepDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "baton_step_duration_seconds",
				Help:    "Duration of sequence steps",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"sequence", "step"},
		),
	}

	if reg == nil {
		return m, nil
	}
	var err error
	m.commandRuns, err = register(reg, m.commandRuns, err)
	m.commandFailures, err = register(reg, m.commandFailures, err)
	m.commandDuration, err = register(reg, m.commandDuration, err)
	m.stepRuns, err = register(reg, m.stepRuns, err)
	m.stepDuration, err = register(reg, m.stepDuration, err)
	if err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}
	return m, nil
}

// register registers c unless an earlier registration failed, reusing an identical
// collector registered before.
func register[C prometheus.Collector](reg prometheus.Registerer, c C, prev error) (C, error) {
	if prev != nil {
		return c, prev
	}
	err := reg.Register(c)
	if err == nil {
		return c, nil
	}
	var already prometheus.AlreadyRegisteredError
	if errors.As(err, &already) {
		if existing, ok := already.ExistingCollector.(C); ok {
			return existing, nil
		}
	}
	return c, err
}

// Hooks returns lifecycle hooks recording command and step metrics.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnCommandFinish: func(ctx context.Context, e *domain.CommandEvent) {
			status := statusOf(e.Outcome, e.Err)
			m.commandRuns.WithLabelValues(e.Command, status).Inc()
			if status == StatusFailure {
				m.commandFailures.WithLabelValues(e.Command, string(e.Outcome.Tag())).Inc()
			}
			m.commandDuration.WithLabelValues(e.Command).Observe(e.Duration.Seconds())
		},
		OnStepLeave: func(ctx context.Context, e *domain.StepEvent) {
			m.stepRuns.WithLabelValues(e.Sequence, e.Step, statusOf(e.Outcome, e.Err)).Inc()
			m.stepDuration.WithLabelValues(e.Sequence, e.Step).Observe(e.Duration.Seconds())
		},
	}
}

func statusOf(o *domain.Outcome, err error) string {
	switch {
	case o == nil:
		return StatusError
	case o.Failed():
		return StatusFailure
	default:
		return StatusSuccess
	}
}
