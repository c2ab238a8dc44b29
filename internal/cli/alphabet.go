package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/mcoot/cwrules/internal/api/response"
)

func newAlphabetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alphabet",
		Short: "Alphabet commands",
	}

	cmd.AddCommand(newAlphabetListCmd())
	cmd.AddCommand(newAlphabetShowCmd())

	return cmd
}

func newAlphabetListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the alphabets the server supports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.AlphabetList

			if err := client.Get("/api/v1/alphabets", &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newAlphabetShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show an alphabet's tiles, scores and counts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Alphabet

			if err := client.Get(fmt.Sprintf("/api/v1/alphabets/%s", url.PathEscape(args[0])), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}
