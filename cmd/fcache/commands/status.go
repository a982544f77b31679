package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/fcache/internal/app"
)

func (c *CLI) newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "List files that changed since the last commit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			root, _ := cmd.Flags().GetString("root")
			flush, _ := cmd.Flags().GetBool("flush")
			all, _ := cmd.Flags().GetBool("all")

			return c.app.Status(cmd.Context(), app.StatusOptions{
				Root:          root,
				Flush:         flush,
				ShowUnchanged: all,
				Store:         storeOptions(cmd),
			})
		},
	}

	addRootFlag(cmd)
	cmd.Flags().BoolP("flush", "f", false, "Compare against an empty cache without deleting the stored one")
	cmd.Flags().BoolP("all", "a", false, "Also list unchanged files")

	return cmd
}
