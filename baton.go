package baton

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/baton/internal/logging"
	"github.com/aretw0/baton/pkg/domain"
	"github.com/aretw0/baton/pkg/manifest"
	"github.com/aretw0/baton/pkg/registry"
	"github.com/aretw0/baton/pkg/sequence"
)

// Engine is the high-level entry point for the Baton library.
// It holds a registry of targets and compiles manifests against it.
type Engine struct {
	registry *registry.Registry
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks for compiled sequences.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = e.hooks.Merge(hooks)
	}
}

// WithLogger sets a custom structured logger for compiled sequences.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithRegistry uses reg instead of an empty registry.
func WithRegistry(reg *registry.Registry) Option {
	return func(e *Engine) {
		e.registry = reg
	}
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	if e.registry == nil {
		e.registry = registry.NewRegistry()
	}
	return e
}

// Registry returns the registry targets are looked up in.
func (e *Engine) Registry() *registry.Registry { return e.registry }

// Register adds targets to the registry.
func (e *Engine) Register(targets ...domain.Target) error {
	return e.registry.Register(targets...)
}

// Compile builds the sequence declared by m, observed through the engine hooks.
func (e *Engine) Compile(m *manifest.Manifest) (*sequence.Sequence, error) {
	return m.Compile(e.registry, sequence.WithLogger(e.logger), sequence.WithLifecycleHooks(e.hooks))
}

// Load reads and compiles the manifest at path.
func (e *Engine) Load(path string) (*sequence.Sequence, error) {
	m, err := manifest.Load(path)
	if err != nil {
		return nil, err
	}
	return e.Compile(m)
}

// Run invokes the "run" entry of the registered target name.
// A raw return value is wrapped as a successful Outcome.
func (e *Engine) Run(ctx context.Context, name string, params ...any) (domain.Outcome, error) {
	target, err := e.registry.Lookup(name)
	if err != nil {
		return domain.Outcome{}, err
	}
	entry, err := target.Entry(domain.MethodRun)
	if err != nil {
		return domain.Outcome{}, err
	}
	v, err := entry(ctx, params...)
	if err != nil {
		return domain.Outcome{}, fmt.Errorf("run %s: %w", name, err)
	}
	if o, ok := v.(domain.Outcome); ok {
		return o, nil
	}
	return domain.Success(v), nil
}

// Handle runs name and dispatches its Outcome through the matcher built by define.
func (e *Engine) Handle(ctx context.Context, name string, params any, define func(m *domain.Match)) (any, error) {
	out, err := e.Run(ctx, name, params)
	if err != nil {
		return nil, err
	}
	return out.Handle(define)
}
