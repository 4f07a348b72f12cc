package main

import (
	"fmt"

	"github.com/aretw0/baton/internal/presentation/tui"
	"github.com/spf13/cobra"
)

func newDescribeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "describe <manifest>",
		Short: "Describe a manifest",
		Long:  `Prints the params and steps of a manifest as markdown, rendered when writing to a terminal.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.loadManifest(args[0])
			if err != nil {
				return err
			}
			render, err := tui.NewRenderer(tui.IsTerminal(cmd.OutOrStdout()))
			if err != nil {
				return err
			}
			text, err := render(m.Markdown())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), text)
			return nil
		},
	}
}
