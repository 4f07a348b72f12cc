package manifest_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/aretw0/baton/pkg/command"
	"github.com/aretw0/baton/pkg/domain"
	"github.com/aretw0/baton/pkg/manifest"
	"github.com/aretw0/baton/pkg/registry"
	"github.com/aretw0/baton/pkg/sequence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func greetings(t *testing.T) *registry.Registry {
	t.Helper()
	reg := registry.NewRegistry()
	require.NoError(t, reg.Register(
		command.NewFunc("SayMyName", func(ctx context.Context, p map[string]any) (any, error) {
			return fmt.Sprintf("Hello, %v", p["name"]), nil
		}),
		command.NewFunc("MakeMeSoundImportant", func(ctx context.Context, p map[string]any) (any, error) {
			return fmt.Sprintf("%v! You are the most important citizen of %v!", p["boring_message"], p["country"]), nil
		}),
		sequence.Methods("ConstructGreeting", map[string]domain.Invoker{
			"go": func(ctx context.Context, args ...any) (any, error) {
				return fmt.Sprintf("%v, %v", args[0], args[1]), nil
			},
		}),
	))
	return reg
}

func TestLoad_YAML(t *testing.T) {
	m, err := manifest.Load("testdata/greet.yaml")
	require.NoError(t, err)
	assert.Equal(t, "greet_citizen", m.Name)
	require.Len(t, m.Steps, 2)
	assert.Equal(t, "greeting", m.Steps[0].As)
	assert.Equal(t, uint(2), m.Steps[1].Retry.Attempts)
	assert.Equal(t, "string", m.Params["country"].Name())

	seq, err := m.Compile(greetings(t))
	require.NoError(t, err)

	out, err := seq.Run(context.Background(), map[string]any{"name": "Jessica", "country": "Azerbaijan"})
	require.NoError(t, err)
	assert.Equal(t, "Hello, Jessica! You are the most important citizen of Azerbaijan!", out.Result())

	steps := seq.Steps()
	require.NotNil(t, steps[1].RetryPolicy())
	assert.Equal(t, []domain.Tag{"busy"}, steps[1].RetryPolicy().Tags)
}

func TestLoad_JSON(t *testing.T) {
	m, err := manifest.Load("testdata/greet.json")
	require.NoError(t, err)

	seq, err := m.Compile(greetings(t))
	require.NoError(t, err)

	out, err := seq.Run(context.Background(), "Greetings", "Christopher", "Canada")
	require.NoError(t, err)
	assert.Equal(t, sequence.Results{
		"say_my_name":             "Greetings, Christopher",
		"make_me_sound_important": "Greetings, Christopher! You are the most important citizen of Canada!",
	}, out.Result())
}

func TestLoad_Missing(t *testing.T) {
	_, err := manifest.Load("testdata/nope.yaml")
	assert.ErrorContains(t, err, "failed to read manifest")
}

func TestCompile_ParamsSchema(t *testing.T) {
	m, err := manifest.Load("testdata/greet.yaml")
	require.NoError(t, err)
	seq, err := m.Compile(greetings(t))
	require.NoError(t, err)

	out, err := seq.Run(context.Background(), map[string]any{"name": "Jessica"})
	require.NoError(t, err)
	assert.Equal(t, domain.TagValidation, out.Tag())
	assert.Equal(t, map[string][]string{"country": {"required"}}, out.Result())

	out, err = seq.Run(context.Background(), "Jessica")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"errors": "params: expected a map, got string"}, out.Result())
}

func TestValidate(t *testing.T) {
	reg := greetings(t)

	tests := []struct {
		name     string
		yaml     string
		contains string
		is       error
	}{
		{
			name:     "unknown command",
			yaml:     "name: x\nsteps:\n  - command: launch_rockets\n",
			contains: "step launch_rockets",
			is:       registry.ErrNotFound,
		},
		{
			name: "unknown method",
			yaml: "name: x\nsteps:\n  - command: construct_greeting\n    invoke_with: stop\n",
			is:   domain.ErrUnknownMethod,
		},
		{
			name:     "forward reference",
			yaml:     "name: x\nsteps:\n  - command: say_my_name\n    receives: {name: results.later}\n  - command: make_me_sound_important\n    as: later\n",
			contains: `references results of "later"`,
			is:       domain.ErrInvalidSequence,
		},
		{
			name:     "both mutators",
			yaml:     "name: x\nsteps:\n  - command: say_my_name\n    receives: {name: params.name}\n    receives_many: [params.name]\n",
			contains: "receives cannot be combined",
			is:       domain.ErrInvalidSequence,
		},
		{
			name:     "unknown result",
			yaml:     "name: x\nresult: take_some\nsteps: []\n",
			contains: `unknown result "take_some"`,
		},
		{
			name:     "bad retry delay",
			yaml:     "name: x\nsteps:\n  - command: say_my_name\n    retry: {attempts: 2, delay: soon}\n",
			contains: "retry:",
		},
		{
			name:     "no name",
			yaml:     "steps: []\n",
			contains: "manifest has no name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := manifest.Parse([]byte(tt.yaml))
			require.NoError(t, err)

			err = m.Validate(reg)
			require.Error(t, err)
			if tt.contains != "" {
				assert.ErrorContains(t, err, tt.contains)
			}
			if tt.is != nil {
				assert.ErrorIs(t, err, tt.is)
			}
		})
	}

	t.Run("valid", func(t *testing.T) {
		m, err := manifest.Load("testdata/greet.yaml")
		require.NoError(t, err)
		assert.NoError(t, m.Validate(reg))
	})
}

func TestMarkdown(t *testing.T) {
	m, err := manifest.Load("testdata/greet.yaml")
	require.NoError(t, err)

	md := m.Markdown()
	assert.Contains(t, md, "# greet_citizen")
	assert.Contains(t, md, "Greets a citizen and makes them feel important.")
	assert.Contains(t, md, "| `country` | `string` |")
	assert.Contains(t, md, "| 1 | greeting | `say_my_name` | run | `params` |  |")
	assert.Contains(t, md, "| 2 | make_me_sound_important | `make_me_sound_important` | run | `{boring_message: results.greeting, country: params.country}` | 2x on busy |")
}

func TestStep_KeyAndSources(t *testing.T) {
	tests := []struct {
		name    string
		step    manifest.Step
		key     string
		sources []string
	}{
		{
			name:    "no arguments reads params",
			step:    manifest.Step{Command: "SayMyName"},
			key:     "say_my_name",
			sources: []string{"params"},
		},
		{
			name: "receives mixes results and params",
			step: manifest.Step{
				Command: "make_me_sound_important",
				As:      "important",
				Receives: map[string]any{
					"boring_message": "results.greeting",
					"country":        "params.country",
				},
			},
			key:     "important",
			sources: []string{"greeting", "params"},
		},
		{
			name: "receives_many deduplicates",
			step: manifest.Step{
				Command:      "construct_greeting",
				ReceivesMany: []any{"results.a.text", "results.a", "literal", "results.b"},
			},
			key:     "construct_greeting",
			sources: []string{"a", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.key, tt.step.Key())
			assert.Equal(t, tt.sources, tt.step.Sources())
		})
	}
}
