// Package process exposes allow-listed local executables as commands.
//
// Params are never passed as flags. Each key of the params map reaches the process as
// a BATON_ARG_<KEY> environment variable, scalars formatted with %v and anything else
// as JSON. Stdout becomes the result, decoded when it is a JSON object or array.
// A non-zero exit is a failed Outcome tagged TagExit.
package process

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"sort"
	"strings"

	"github.com/aretw0/baton/pkg/command"
	"github.com/aretw0/baton/pkg/domain"
	"github.com/aretw0/baton/pkg/registry"
)

// TagExit marks a process that exited with a non-zero status.
const TagExit domain.Tag = "process_failed"

// EnvPrefix prefixes the environment variables carrying params.
const EnvPrefix = "BATON_ARG_"

type runner struct {
	cfg Config
}

// New returns a command running the executable described by cfg.
func New(cfg Config, opts ...command.Option) *command.Command[map[string]any] {
	return command.New[map[string]any](cfg.Name, &runner{cfg: cfg}, opts...)
}

// Register adds a command per tool to reg.
func Register(reg *registry.Registry, tools []Config, opts ...command.Option) error {
	targets := make([]domain.Target, 0, len(tools))
	for _, tool := range tools {
		targets = append(targets, New(tool, opts...))
	}
	return reg.Register(targets...)
}

func (r *runner) Call(ctx context.Context, params map[string]any) (any, error) {
	cmd := exec.CommandContext(ctx, r.cfg.Command, r.cfg.Args...)
	cmd.Dir = r.cfg.Dir
	cmd.Env = append(cmd.Environ(), r.environment(params)...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, command.Fail(TagExit, map[string]any{
				"exit_code": exitErr.ExitCode(),
				"stderr":    strings.TrimSpace(stderr.String()),
			})
		}
		return nil, fmt.Errorf("process %s: %w", r.cfg.Name, err)
	}
	return decodeOutput(stdout.String()), nil
}

func (r *runner) environment(params map[string]any) []string {
	env := make([]string, 0, len(r.cfg.Environment)+len(params))
	for k, v := range r.cfg.Environment {
		env = append(env, k+"="+v)
	}
	for k, v := range params {
		env = append(env, EnvPrefix+strings.ToUpper(k)+"="+formatArg(v))
	}
	sort.Strings(env)
	return env
}

func formatArg(v any) string {
	switch v.(type) {
	case nil:
		return ""
	case string, bool, int, int64, float64:
		return fmt.Sprintf("%v", v)
	}
	if data, err := json.Marshal(v); err == nil {
		return string(data)
	}
	return fmt.Sprintf("%v", v)
}

// decodeOutput returns JSON objects and arrays decoded, anything else as trimmed text.
func decodeOutput(output string) any {
	trimmed := strings.TrimSpace(output)
	if (strings.HasPrefix(trimmed, "{") && strings.HasSuffix(trimmed, "}")) ||
		(strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]")) {
		var v any
		if err := json.Unmarshal([]byte(trimmed), &v); err == nil {
			return v
		}
	}
	return trimmed
}
