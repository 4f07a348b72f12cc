package main

import (
	"fmt"

	"github.com/aretw0/baton/internal/demo"
	"github.com/aretw0/baton/pkg/domain"
	"github.com/spf13/cobra"
)

func newCommandsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "commands",
		Short: "List the registered commands and bundled manifests",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := a.registry(domain.LifecycleHooks{})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Commands:")
			for _, name := range reg.Names() {
				fmt.Fprintf(out, "  %s\n", name)
			}
			fmt.Fprintln(out, "Manifests:")
			for _, name := range demo.Manifests() {
				fmt.Fprintf(out, "  %s\n", name)
			}
			return nil
		},
	}
}
