package command_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/baton/pkg/command"
	"github.com/aretw0/baton/pkg/domain"
	"github.com/aretw0/baton/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type transfer struct {
	fail        error
	panics      bool
	rollbackErr error
	rolledBack  int
}

func (tr *transfer) Call(ctx context.Context, _ any) (any, error) {
	if tr.panics {
		panic("ledger corrupted")
	}
	if tr.fail != nil {
		return nil, tr.fail
	}
	return "moved", nil
}

func (tr *transfer) Rollback(ctx context.Context) error {
	tr.rolledBack++
	return tr.rollbackErr
}

func TestRollback(t *testing.T) {
	ctx := context.Background()

	t.Run("not called on success", func(t *testing.T) {
		tr := &transfer{}
		_, err := command.New[any]("Transfer", tr).Run(ctx, nil)
		require.NoError(t, err)
		assert.Zero(t, tr.rolledBack)
	})

	t.Run("called on domain failure", func(t *testing.T) {
		tr := &transfer{fail: command.Fail("insufficient_funds", "balance too low")}
		out, err := command.New[any]("Transfer", tr).Run(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, domain.Tag("insufficient_funds"), out.Tag())
		assert.Equal(t, 1, tr.rolledBack)
	})

	t.Run("called on unexpected error", func(t *testing.T) {
		boom := errors.New("timeout")
		tr := &transfer{fail: boom}
		_, err := command.New[any]("Transfer", tr).RunStrict(ctx, nil)
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 1, tr.rolledBack)
	})

	t.Run("called on validation failure", func(t *testing.T) {
		tr := &transfer{}
		cmd := command.New[any]("Transfer", tr, command.WithSchema(schema.Schema{"amount": schema.Int()}))

		out, err := cmd.Run(ctx, map[string]any{})
		require.NoError(t, err)
		assert.Equal(t, domain.TagValidation, out.Tag())
		assert.Equal(t, 1, tr.rolledBack)
	})

	t.Run("rollback error is not suppressed", func(t *testing.T) {
		undo := errors.New("undo failed")
		tr := &transfer{fail: command.Fail("insufficient_funds", "balance too low"), rollbackErr: undo}

		_, err := command.New[any]("Transfer", tr).Run(ctx, nil)
		assert.ErrorIs(t, err, undo)
		assert.ErrorIs(t, err, domain.ErrFailure)

		var rb *command.RollbackError
		require.ErrorAs(t, err, &rb)
		assert.Equal(t, "transfer", rb.Command)
	})

	t.Run("called on panic", func(t *testing.T) {
		tr := &transfer{panics: true}
		var finished *domain.CommandEvent
		cmd := command.New[any]("Transfer", tr, command.WithLifecycleHooks(domain.LifecycleHooks{
			OnCommandFinish: func(ctx context.Context, e *domain.CommandEvent) { finished = e },
		}))

		assert.PanicsWithValue(t, "ledger corrupted", func() {
			_, _ = cmd.Run(ctx, nil)
		})
		assert.Equal(t, 1, tr.rolledBack)
		require.NotNil(t, finished)
		assert.ErrorContains(t, finished.Err, "panic: ledger corrupted")
	})
}
