package main

import (
	"fmt"

	"github.com/aretw0/baton/internal/presentation/graph"
	"github.com/spf13/cobra"
)

func newGraphCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "graph <manifest>",
		Short: "Export the manifest data flow",
		Long:  `Outputs a Mermaid diagram (graph TD) showing which params and results each step reads.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.loadManifest(args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(m, nil))
			return nil
		},
	}
}
