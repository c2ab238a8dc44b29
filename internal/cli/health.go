package cli

import (
	"github.com/spf13/cobra"

	"github.com/mcoot/cwrules/internal/api/response"
)

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the server is up",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var health response.Health
			if err := client.Get("/api/v1/health", &health); err != nil {
				return err
			}
			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(health)
			return nil
		},
	}
}
