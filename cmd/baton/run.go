package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/aretw0/baton"
	"github.com/aretw0/baton/internal/naming"
	"github.com/aretw0/baton/internal/presentation/graph"
	"github.com/aretw0/baton/internal/presentation/tui"
	"github.com/aretw0/baton/pkg/domain"
	"github.com/aretw0/baton/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
)

// outcomeJSON is the --json rendering of an Outcome.
type outcomeJSON struct {
	Success bool   `json:"success"`
	Tag     string `json:"tag,omitempty"`
	Result  any    `json:"result"`
}

// trace records the steps of one manifest run for the graph overlay.
type trace struct {
	sequence string
	overlay  graph.Overlay
}

func (t *trace) hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStepLeave: func(ctx context.Context, e *domain.StepEvent) {
			if e.Sequence != t.sequence {
				return
			}
			t.overlay.Visited = append(t.overlay.Visited, e.Step)
			if e.Err != nil || (e.Outcome != nil && e.Outcome.Failed()) {
				t.overlay.Failed = e.Step
			}
		},
	}
}

func newRunCmd(a *app) *cobra.Command {
	runCmd := &cobra.Command{
		Use:   "run <manifest>",
		Short: "Run a manifest",
		Long: `Compiles a manifest against the registered commands and runs it once with the
given params. A failed outcome is printed and exits with status 1.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rawParams, _ := cmd.Flags().GetString("params")
			jsonMode, _ := cmd.Flags().GetBool("json")
			withMetrics, _ := cmd.Flags().GetBool("metrics")
			withGraph, _ := cmd.Flags().GetBool("graph")

			m, err := a.loadManifest(args[0])
			if err != nil {
				return err
			}

			var params []any
			if rawParams != "" {
				var p any
				if err := json.Unmarshal([]byte(rawParams), &p); err != nil {
					return fmt.Errorf("invalid --params: %w", err)
				}
				params = append(params, p)
			}

			lifecycle := observability.Audit(a.logger)
			promReg := prometheus.NewRegistry()
			if withMetrics {
				metrics, err := observability.NewMetrics(promReg)
				if err != nil {
					return err
				}
				lifecycle = lifecycle.Merge(metrics.Hooks())
			}
			tr := &trace{sequence: naming.Snake(m.Name)}
			lifecycle = lifecycle.Merge(tr.hooks())

			reg, err := a.registry(lifecycle)
			if err != nil {
				return err
			}
			eng := baton.New(baton.WithRegistry(reg), baton.WithLogger(a.logger), baton.WithLifecycleHooks(lifecycle))
			seq, err := eng.Compile(m)
			if err != nil {
				return err
			}

			out, err := seq.Run(cmd.Context(), params...)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if jsonMode {
				enc := json.NewEncoder(w)
				if err := enc.Encode(outcomeJSON{Success: out.Succeeded(), Tag: string(out.Tag()), Result: out.Result()}); err != nil {
					return err
				}
			} else {
				tui.PrintOutcome(w, out)
			}
			if withGraph {
				fmt.Fprint(w, graph.GenerateMermaid(m, &tr.overlay))
			}
			if withMetrics {
				if err := writeMetrics(cmd.ErrOrStderr(), promReg); err != nil {
					return err
				}
			}

			if out.Failed() {
				return errFailedOutcome
			}
			return nil
		},
	}

	runCmd.Flags().String("params", "", "Sequence params as JSON, e.g. '{\"name\": \"Walter\"}'")
	runCmd.Flags().Bool("json", false, "Print the outcome as JSON")
	runCmd.Flags().Bool("metrics", false, "Dump Prometheus metrics of the run to stderr")
	runCmd.Flags().Bool("graph", false, "Print the Mermaid data flow with the steps reached")
	return runCmd
}

func writeMetrics(w io.Writer, reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
