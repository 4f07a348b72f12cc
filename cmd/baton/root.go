package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aretw0/baton/internal/config"
	"github.com/aretw0/baton/internal/demo"
	"github.com/aretw0/baton/internal/logging"
	"github.com/aretw0/baton/internal/presentation/tui"
	"github.com/aretw0/baton/pkg/domain"
	"github.com/aretw0/baton/pkg/manifest"
	"github.com/aretw0/baton/pkg/process"
	"github.com/aretw0/baton/pkg/registry"
	"github.com/spf13/cobra"
)

// errFailedOutcome makes the process exit non-zero once a failed outcome was printed.
var errFailedOutcome = errors.New("failed outcome")

// app carries what every subcommand shares.
type app struct {
	cfg    config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{logger: logging.NewNop()}

	rootCmd := &cobra.Command{
		Use:   "baton",
		Short: "Baton runs commands and hands results along sequences",
		Long: `Baton runs commands that end in explicit outcomes and chains them into sequences
declared in YAML manifests. Manifests are looked up as files, in $BATON_MANIFESTS, and
among the bundled demo manifests.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if tui.IsTerminal(cmd.OutOrStdout()) {
				tui.PrintBanner(cmd.OutOrStdout())
			}
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel, _ = cmd.Flags().GetString("log-level")
			}
			if cmd.Flags().Changed("log-json") {
				cfg.LogJSON, _ = cmd.Flags().GetBool("log-json")
			}
			if cmd.Flags().Changed("dir") {
				cfg.Manifests, _ = cmd.Flags().GetString("dir")
			}
			if cmd.Flags().Changed("tools") {
				cfg.Tools, _ = cmd.Flags().GetString("tools")
			}
			a.cfg = cfg
			a.logger = logging.NewWithWriter(cmd.ErrOrStderr(), cfg.Level(), cfg.LogJSON)
			return nil
		},
	}

	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("log-json", false, "Write logs as JSON")
	rootCmd.PersistentFlags().String("dir", ".", "Directory searched for manifests by name")
	rootCmd.PersistentFlags().String("tools", "tools.yaml", "File declaring process commands")

	rootCmd.AddCommand(
		newRunCmd(a),
		newDescribeCmd(a),
		newGraphCmd(a),
		newValidateCmd(a),
		newCommandsCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errFailedOutcome) {
			tui.PrintError(os.Stderr, err)
		}
		os.Exit(1)
	}
}

// registry builds the demo registry plus the process commands of the tools file.
func (a *app) registry(lifecycle domain.LifecycleHooks) (*registry.Registry, error) {
	obs := demo.Observers{Logger: a.logger, Lifecycle: lifecycle}
	reg, err := demo.Registry(obs)
	if err != nil {
		return nil, err
	}
	tools, err := process.LoadTools(a.cfg.Tools)
	if err != nil {
		return nil, err
	}
	if err := process.Register(reg, tools, obs.CommandOptions()...); err != nil {
		return nil, fmt.Errorf("tools %s: %w", a.cfg.Tools, err)
	}
	return reg, nil
}

// loadManifest resolves ref as a file path, then as a name in the manifests directory,
// then as a bundled manifest.
func (a *app) loadManifest(ref string) (*manifest.Manifest, error) {
	if info, err := os.Stat(ref); err == nil && !info.IsDir() {
		return manifest.Load(ref)
	}
	for _, ext := range []string{".yaml", ".yml", ".json"} {
		path := filepath.Join(a.cfg.Manifests, ref+ext)
		if _, err := os.Stat(path); err == nil {
			return manifest.Load(path)
		}
	}
	m, err := demo.Manifest(ref)
	if err != nil {
		return nil, fmt.Errorf("manifest %q not found in %s or among the bundled manifests %v", ref, a.cfg.Manifests, demo.Manifests())
	}
	return m, nil
}
