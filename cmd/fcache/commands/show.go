package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/fcache/internal/app"
)

func (c *CLI) newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the stored cache of the project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			root, _ := cmd.Flags().GetString("root")

			return c.app.Show(cmd.Context(), app.ShowOptions{
				Root:  root,
				Store: storeOptions(cmd),
			})
		},
	}

	addRootFlag(cmd)

	return cmd
}
