package demo

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"strings"

	"github.com/aretw0/baton/internal/logging"
	"github.com/aretw0/baton/pkg/command"
	"github.com/aretw0/baton/pkg/domain"
	"github.com/aretw0/baton/pkg/manifest"
	"github.com/aretw0/baton/pkg/registry"
	"github.com/aretw0/baton/pkg/sequence"
)

//go:embed manifests/*.yaml
var manifests embed.FS

// Observers configures logging and lifecycle hooks shared by every demo target.
type Observers struct {
	Logger    *slog.Logger
	Lifecycle domain.LifecycleHooks
}

// CommandOptions returns the command options matching o.
func (o Observers) CommandOptions() []command.Option {
	logger := o.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	return []command.Option{command.WithLogger(logger), command.WithLifecycleHooks(o.Lifecycle)}
}

// SequenceOptions returns the sequence options matching o.
func (o Observers) SequenceOptions() []sequence.Option {
	logger := o.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	return []sequence.Option{sequence.WithLogger(logger), sequence.WithLifecycleHooks(o.Lifecycle)}
}

// Registry returns a registry holding the demo commands, a sequence announcing a
// citizen and an organizer building a citizen profile.
func Registry(obs Observers) (*registry.Registry, error) {
	opts := obs.CommandOptions()
	say := SayMyName(opts...)
	important := MakeMeSoundImportant(opts...)
	code := CountryCode()

	b := sequence.New("AnnounceCitizen", obs.SequenceOptions()...)
	b.Step(say).As("greeting")
	b.Step(important).Receives(func(params []any, prior sequence.Results) any {
		return map[string]any{"boring_message": prior["greeting"], "country": countryOf(params)}
	})
	b.Reduce(func(params []any, results sequence.Results) (any, error) {
		return fmt.Sprintf("BULLETIN: %v", results["make_me_sound_important"]), nil
	})
	announce, err := b.Build()
	if err != nil {
		return nil, err
	}

	profile := sequence.NewOrganizer("CitizenProfile").
		Add(say, nil).
		Add(code, nil).
		Parse(func(results sequence.Results) (any, error) {
			return fmt.Sprintf("%v (%v)", results["say_my_name"], results["country_code"]), nil
		}).
		Command(opts...)

	reg := registry.NewRegistry()
	err = reg.Register(
		say,
		important,
		ConstructGreeting(),
		ThrowInvalidError(opts...),
		ReserveSeat(2, opts...),
		code,
		announce,
		profile,
	)
	if err != nil {
		return nil, err
	}
	return reg, nil
}

func countryOf(params []any) any {
	if len(params) == 0 {
		return nil
	}
	p, _ := params[0].(map[string]any)
	return p["country"]
}

// Manifests lists the names of the bundled manifests.
func Manifests() []string {
	entries, _ := fs.ReadDir(manifests, "manifests")
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), path.Ext(e.Name())))
	}
	return names
}

// Manifest loads a bundled manifest by name.
func Manifest(name string) (*manifest.Manifest, error) {
	data, err := manifests.ReadFile(path.Join("manifests", name+".yaml"))
	if err != nil {
		return nil, fmt.Errorf("demo manifest %q: %w", name, err)
	}
	return manifest.Parse(data)
}

// Run compiles the bundled manifest name against reg and runs it with params.
func Run(ctx context.Context, reg *registry.Registry, name string, params ...any) (domain.Outcome, error) {
	m, err := Manifest(name)
	if err != nil {
		return domain.Outcome{}, err
	}
	seq, err := m.Compile(reg)
	if err != nil {
		return domain.Outcome{}, err
	}
	return seq.Run(ctx, params...)
}
