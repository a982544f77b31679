package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/fcache/internal/app"
)

func (c *CLI) newFlushCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "flush [roots...]",
		Short: "Delete the stored cache of one or more projects",
		Long:  "Delete the stored cache of the given project roots, or of the current directory when none is given.",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Flush(cmd.Context(), app.FlushOptions{
				Roots: args,
				Store: storeOptions(cmd),
			})
		},
	}
}
