package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/fcache/internal/app"
)

func (c *CLI) newCommitCmd() *cobra.Command {
	var pending []string

	cmd := &cobra.Command{
		Use:   "commit",
		Short: "Record a finished run, confirming every file that is not pending",
		Long: "Record a finished run. New files are tracked and every file is confirmed " +
			"unchanged as of now, except files passed with --pending, which keep their " +
			"marker and are reported as changed again by the next status.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			root, _ := cmd.Flags().GetString("root")
			flush, _ := cmd.Flags().GetBool("flush")

			return c.app.Commit(cmd.Context(), app.CommitOptions{
				Root:    root,
				Flush:   flush,
				Pending: pending,
				Store:   storeOptions(cmd),
			})
		},
	}

	addRootFlag(cmd)
	cmd.Flags().BoolP("flush", "f", false, "Discard the stored cache and rebuild it")
	cmd.Flags().StringSliceVarP(&pending, "pending", "p", nil,
		"Files that still need processing, relative to the project root")

	return cmd
}
