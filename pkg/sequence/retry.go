package sequence

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/aretw0/baton/pkg/domain"
	"github.com/avast/retry-go/v4"
)

// RetryPolicy re-runs a step while it returns a failed outcome with a retryable tag.
// Errors are never retried.
type RetryPolicy struct {
	// Attempts is the total number of runs, the first included. Values below 1 mean 1.
	Attempts uint `yaml:"attempts" mapstructure:"attempts"`
	// Delay is the fixed pause between runs.
	Delay time.Duration `yaml:"delay" mapstructure:"delay"`
	// Tags restricts retries to failures with one of these tags; empty retries any failure.
	Tags []domain.Tag `yaml:"tags" mapstructure:"tags"`
}

var errRetryable = errors.New("retryable outcome")

func (p *RetryPolicy) retries(v any) bool {
	o, ok := failed(v)
	if !ok {
		return false
	}
	return len(p.Tags) == 0 || slices.Contains(p.Tags, o.Tag())
}

func (p *RetryPolicy) do(ctx context.Context, call func() (any, error)) (any, error) {
	var (
		last    any
		callErr error
	)
	_, err := retry.DoWithData(func() (any, error) {
		v, err := call()
		if err != nil {
			callErr = err
			return nil, err
		}
		last = v
		if p.retries(v) {
			return nil, errRetryable
		}
		return v, nil
	},
		retry.Context(ctx),
		retry.Attempts(max(p.Attempts, 1)),
		retry.Delay(p.Delay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool { return errors.Is(err, errRetryable) }),
	)
	if err == nil || errors.Is(err, errRetryable) {
		return last, nil
	}
	// A context ending between attempts keeps the failure already seen.
	if callErr == nil && p.retries(last) {
		return last, nil
	}
	return nil, err
}
