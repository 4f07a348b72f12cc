package command_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/baton/pkg/command"
	"github.com/aretw0/baton/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type controlled struct{}

func (controlled) Call(ctx context.Context, p map[string]any) (any, error) {
	switch p["result"] {
	case "success":
		return 123, nil
	case "invalid":
		return nil, command.Invalidate("Invalid Message")
	case "failure":
		return nil, command.Fail("falure_type", "Failure Message")
	}
	return nil, nil
}

func controlledOutcome() *command.Command[map[string]any] {
	return command.New[map[string]any]("ControlledOutcome", controlled{})
}

func TestRun(t *testing.T) {
	ctx := context.Background()

	t.Run("succeeds", func(t *testing.T) {
		out, err := controlledOutcome().Run(ctx, map[string]any{"result": "success"})
		require.NoError(t, err)
		assert.True(t, out.Succeeded())
		assert.False(t, out.Failed())
		assert.Equal(t, 123, out.Result())
	})

	t.Run("invalid", func(t *testing.T) {
		out, err := controlledOutcome().Run(ctx, map[string]any{"result": "invalid"})
		require.NoError(t, err)
		assert.True(t, out.Failed())
		assert.Equal(t, domain.TagValidation, out.Tag())
		assert.Equal(t, map[string]any{"errors": "Invalid Message"}, out.Result())
	})

	t.Run("fails", func(t *testing.T) {
		out, err := controlledOutcome().Run(ctx, map[string]any{"result": "failure"})
		require.NoError(t, err)
		assert.True(t, out.Failed())
		assert.Equal(t, domain.Tag("falure_type"), out.Tag())
		assert.Equal(t, map[string]any{"errors": "Failure Message"}, out.Result())
	})

	t.Run("fail without payload", func(t *testing.T) {
		cmd := command.NewFunc("Failing", func(ctx context.Context, _ any) (any, error) {
			return nil, command.Fail("something", nil)
		})
		out, err := cmd.Run(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, domain.Tag("something"), out.Tag())
		assert.Equal(t, map[string]any{}, out.Result())
	})

	t.Run("plain value is wrapped", func(t *testing.T) {
		cmd := command.NewFunc("Succeeding", func(ctx context.Context, _ any) (any, error) {
			return 1234, nil
		})
		out, err := cmd.Run(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, domain.Success(1234), out)
	})

	t.Run("outcome passes through", func(t *testing.T) {
		tagged := domain.NewOutcome(true, "ok", "cached")
		cmd := command.NewFunc("Tagged", func(ctx context.Context, _ any) (any, error) {
			return tagged, nil
		})
		out, err := cmd.Run(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, tagged, out)
	})

	t.Run("unexpected errors are returned", func(t *testing.T) {
		boom := errors.New("boom")
		cmd := command.NewFunc("Broken", func(ctx context.Context, _ any) (any, error) {
			return nil, boom
		})
		_, err := cmd.Run(ctx, nil)
		assert.ErrorIs(t, err, boom)
	})
}

func TestRunStrict(t *testing.T) {
	ctx := context.Background()

	_, err := controlledOutcome().RunStrict(ctx, map[string]any{"result": "invalid"})
	assert.ErrorIs(t, err, domain.ErrInvalid)
	assert.EqualError(t, err, "Invalid Message")

	_, err = controlledOutcome().RunStrict(ctx, map[string]any{"result": "failure"})
	var f *domain.Failure
	require.ErrorAs(t, err, &f)
	assert.Equal(t, domain.Tag("falure_type"), f.Tag)
	assert.EqualError(t, err, "Failure Message")
	assert.NotErrorIs(t, err, domain.ErrInvalid)
}

func TestRunMatch(t *testing.T) {
	tests := []struct {
		result string
		want   string
	}{
		{result: "success", want: "success"},
		{result: "invalid", want: "invalid"},
		{result: "failure", want: "failure"},
	}

	for _, tt := range tests {
		t.Run(tt.result, func(t *testing.T) {
			got, err := controlledOutcome().RunMatch(context.Background(), map[string]any{"result": tt.result}, func(m *domain.Match) {
				m.Success(func(any) any { return "success" })
				m.Invalid(func(any) any { return "invalid" })
				m.Failure(func(any) any { return "failure" })
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestName(t *testing.T) {
	assert.Equal(t, "controlled_outcome", controlledOutcome().Name())
	assert.Equal(t, "say_my_name", command.NewFunc("demo.SayMyName", func(context.Context, any) (any, error) { return nil, nil }).Name())
}

func TestEntry(t *testing.T) {
	ctx := context.Background()
	cmd := controlledOutcome()

	run, err := cmd.Entry(domain.MethodRun)
	require.NoError(t, err)
	v, err := run(ctx, map[string]any{"result": "failure"})
	require.NoError(t, err)
	assert.True(t, v.(domain.Outcome).Failed())

	strict, err := cmd.Entry(domain.MethodRunStrict)
	require.NoError(t, err)
	_, err = strict(ctx, map[string]any{"result": "failure"})
	assert.ErrorIs(t, err, domain.ErrFailure)

	_, err = cmd.Entry("go")
	assert.ErrorIs(t, err, domain.ErrUnknownMethod)
}

type greeter struct {
	greeting string
}

func TestBuild_ConstructionArgs(t *testing.T) {
	factory := func(args ...any) (command.Handler[string], error) {
		g := &greeter{greeting: "Hello"}
		if len(args) > 0 {
			s, ok := args[0].(string)
			if !ok {
				return nil, errors.New("greeting must be a string")
			}
			g.greeting = s
		}
		return command.Func[string](func(ctx context.Context, name string) (any, error) {
			return g.greeting + ", " + name, nil
		}), nil
	}
	cmd := command.Build[string]("Greet", factory)
	ctx := context.Background()

	out, err := cmd.Run(ctx, "Jessica")
	require.NoError(t, err)
	assert.Equal(t, "Hello, Jessica", out.Result())

	out, err = cmd.Run(ctx, "Jessica", "Salut")
	require.NoError(t, err)
	assert.Equal(t, "Salut, Jessica", out.Result())

	_, err = cmd.Run(ctx, "Jessica", 42)
	assert.ErrorContains(t, err, "command greet: build: greeting must be a string")
}

type counter struct{ calls int }

func (c *counter) Call(ctx context.Context, _ any) (any, error) {
	c.calls++
	return c.calls, nil
}

func TestHandlerInstances(t *testing.T) {
	ctx := context.Background()

	t.Run("New shares one handler", func(t *testing.T) {
		cmd := command.New[any]("Counter", &counter{})
		_, err := cmd.Run(ctx, nil)
		require.NoError(t, err)
		out, err := cmd.Run(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, 2, out.Result())
	})

	t.Run("Build gives each run its own handler", func(t *testing.T) {
		cmd := command.Build[any]("Counter", func(...any) (command.Handler[any], error) {
			return &counter{}, nil
		})
		for range 2 {
			out, err := cmd.Run(ctx, nil)
			require.NoError(t, err)
			assert.Equal(t, 1, out.Result())
		}
	})
}

func TestLifecycleHooks(t *testing.T) {
	var events []*domain.CommandEvent
	record := func(ctx context.Context, e *domain.CommandEvent) { events = append(events, e) }

	cmd := command.New[map[string]any]("ControlledOutcome", controlled{}, command.WithLifecycleHooks(domain.LifecycleHooks{
		OnCommandStart:  record,
		OnCommandFinish: record,
	}))

	_, err := cmd.Run(context.Background(), map[string]any{"result": "failure"})
	require.NoError(t, err)

	require.Len(t, events, 2)
	assert.Equal(t, domain.EventCommandStart, events[0].Type)
	assert.Equal(t, domain.EventCommandFinish, events[1].Type)
	assert.NotEmpty(t, events[0].InvocationID)
	assert.Equal(t, events[0].InvocationID, events[1].InvocationID)
	assert.Equal(t, "controlled_outcome", events[1].Command)
	require.NotNil(t, events[1].Outcome)
	assert.Equal(t, domain.Tag("falure_type"), events[1].Outcome.Tag())
}

func TestBuild_PanicsOnMismatchedOption(t *testing.T) {
	assert.Panics(t, func() {
		command.NewFunc("Mismatch", func(ctx context.Context, _ string) (any, error) { return nil, nil },
			command.WithRequest(command.Decode[int]()))
	})
}
