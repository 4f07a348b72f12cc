package main

import (
	"fmt"

	"github.com/aretw0/baton/pkg/domain"
	"github.com/spf13/cobra"
)

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <manifest>",
		Short: "Check a manifest against the registered commands",
		Long:  `Reports unknown commands, unknown entry points, bad retry policies and references to results of steps that have not run yet.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.loadManifest(args[0])
			if err != nil {
				return err
			}
			reg, err := a.registry(domain.LifecycleHooks{})
			if err != nil {
				return err
			}
			if err := m.Validate(reg); err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Manifest %s is valid! ✅\n", m.Name)
			return nil
		},
	}
}
