package observability

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/aretw0/baton/internal/logging"
	"github.com/aretw0/baton/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func finish(command string, o *domain.Outcome, err error) *domain.CommandEvent {
	return &domain.CommandEvent{
		EventBase: domain.EventBase{Type: domain.EventCommandFinish, InvocationID: "inv-1"},
		Command:   command,
		Outcome:   o,
		Err:       err,
		Duration:  20 * time.Millisecond,
	}
}

func TestMetrics_Commands(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	require.NoError(t, err)
	hooks := m.Hooks()
	ctx := context.Background()

	ok := domain.Success("hi")
	failed := domain.Failed("busy", "later")
	hooks.OnCommandFinish(ctx, finish("say_my_name", &ok, nil))
	hooks.OnCommandFinish(ctx, finish("say_my_name", &ok, nil))
	hooks.OnCommandFinish(ctx, finish("say_my_name", &failed, domain.Fail("busy", "later")))
	hooks.OnCommandFinish(ctx, finish("say_my_name", nil, errors.New("boom")))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.commandRuns.WithLabelValues("say_my_name", StatusSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.commandRuns.WithLabelValues("say_my_name", StatusFailure)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.commandRuns.WithLabelValues("say_my_name", StatusError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.commandFailures.WithLabelValues("say_my_name", "busy")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.commandDuration))
}

func TestMetrics_Steps(t *testing.T) {
	m, err := NewMetrics(prometheus.NewRegistry())
	require.NoError(t, err)

	ok := domain.Success(nil)
	m.Hooks().OnStepLeave(context.Background(), &domain.StepEvent{Sequence: "greet", Step: "say_my_name", Outcome: &ok})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.stepRuns.WithLabelValues("greet", "say_my_name", StatusSuccess)))
	assert.Nil(t, m.Hooks().OnStepEnter)
}

func TestNewMetrics_ReusesRegistered(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewMetrics(reg)
	require.NoError(t, err)
	second, err := NewMetrics(reg)
	require.NoError(t, err)

	ok := domain.Success(nil)
	first.Hooks().OnCommandFinish(context.Background(), finish("x", &ok, nil))
	assert.Equal(t, 1.0, testutil.ToFloat64(second.commandRuns.WithLabelValues("x", StatusSuccess)))
}

func TestNewMetrics_Conflict(t *testing.T) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewGauge(prometheus.GaugeOpts{Name: "baton_command_runs_total", Help: "conflict"}))

	_, err := NewMetrics(reg)
	assert.ErrorContains(t, err, "register metrics")
}

func TestAudit(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, slog.LevelInfo, true)
	hooks := Audit(logger)
	ctx := context.Background()

	failed := domain.Failed("busy", "later")
	hooks.OnCommandFinish(ctx, finish("say_my_name", &failed, nil))
	assert.Contains(t, buf.String(), `"level":"WARN"`)
	assert.Contains(t, buf.String(), `"msg":"command_finish"`)
	assert.Contains(t, buf.String(), `"tag":"busy"`)

	buf.Reset()
	hooks.OnStepLeave(ctx, &domain.StepEvent{EventBase: domain.EventBase{Type: domain.EventStepLeave}, Sequence: "greet", Step: "explode", Err: errors.New("boom")})
	assert.Contains(t, buf.String(), `"level":"ERROR"`)
	assert.Contains(t, buf.String(), `"err":"boom"`)
	assert.Contains(t, buf.String(), `"step":"explode"`)
}
