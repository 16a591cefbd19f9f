package commands

import "github.com/spf13/cobra"

func (c *CLI) newTestBuildsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "test_builds",
		Short: "Build every configuration the host supports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.BuildAll(cmd.Context())
		},
	}
}
