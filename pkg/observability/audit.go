package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/baton/pkg/domain"
)

// Audit returns lifecycle hooks writing one structured record per event.
// Failures are logged at Warn, errors at Error, everything else at Info.
func Audit(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnCommandStart: func(ctx context.Context, e *domain.CommandEvent) {
			logger.InfoContext(ctx, string(e.Type),
				"command", e.Command,
				"invocation_id", e.InvocationID,
			)
		},
		OnCommandFinish: func(ctx context.Context, e *domain.CommandEvent) {
			attrs := []any{
				"command", e.Command,
				"invocation_id", e.InvocationID,
				"duration", e.Duration,
			}
			logger.Log(ctx, levelOf(e.Outcome, e.Err), string(e.Type), append(attrs, outcomeAttrs(e.Outcome, e.Err)...)...)
		},
		OnStepEnter: func(ctx context.Context, e *domain.StepEvent) {
			logger.InfoContext(ctx, string(e.Type),
				"sequence", e.Sequence,
				"step", e.Step,
				"index", e.Index,
				"invocation_id", e.InvocationID,
			)
		},
		OnStepLeave: func(ctx context.Context, e *domain.StepEvent) {
			attrs := []any{
				"sequence", e.Sequence,
				"step", e.Step,
				"index", e.Index,
				"invocation_id", e.InvocationID,
				"duration", e.Duration,
			}
			logger.Log(ctx, levelOf(e.Outcome, e.Err), string(e.Type), append(attrs, outcomeAttrs(e.Outcome, e.Err)...)...)
		},
	}
}

func levelOf(o *domain.Outcome, err error) slog.Level {
	switch statusOf(o, err) {
	case StatusError:
		return slog.LevelError
	case StatusFailure:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

func outcomeAttrs(o *domain.Outcome, err error) []any {
	status := statusOf(o, err)
	attrs := []any{"status", status}
	switch status {
	case StatusFailure:
		attrs = append(attrs, "tag", o.Tag())
	case StatusError:
		attrs = append(attrs, "error", err)
	}
	return attrs
}
