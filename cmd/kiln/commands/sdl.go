package commands

import "github.com/spf13/cobra"

func (c *CLI) newSDLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sdl",
		Short: "Rebuild the native SDL3 archive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.BuildDependency(cmd.Context())
		},
	}
}
