// Package commands implements the CLI commands for fcache.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/fcache/internal/app"
	"go.trai.ch/fcache/internal/build"
)

// CLI represents the command line interface for fcache.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
	setJSON func(bool)
}

// Application represents the application logic interface.
type Application interface {
	Status(ctx context.Context, opts app.StatusOptions) error
	Commit(ctx context.Context, opts app.CommitOptions) error
	Show(ctx context.Context, opts app.ShowOptions) error
	Flush(ctx context.Context, opts app.FlushOptions) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "fcache",
		Short:         "Track which files of a project changed since the last successful run",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	flags := rootCmd.PersistentFlags()
	flags.Bool("json", false, "Write logs as JSON")
	flags.String("store-backend", "", "Store backend: file, sqlite, or memory (overrides the config file)")
	flags.String("store-path", "", "Store directory (overrides the config file)")

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		jsonLogs, _ := cmd.Flags().GetBool("json")
		if jsonLogs && c.setJSON != nil {
			c.setJSON(true)
		}
	}

	rootCmd.AddCommand(c.newStatusCmd())
	rootCmd.AddCommand(c.newCommitCmd())
	rootCmd.AddCommand(c.newShowCmd())
	rootCmd.AddCommand(c.newFlushCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// WithJSONSwitch registers the function that switches logging to JSON when --json is given.
func (c *CLI) WithJSONSwitch(fn func(bool)) *CLI {
	c.setJSON = fn
	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

func storeOptions(cmd *cobra.Command) app.StoreOptions {
	backend, _ := cmd.Flags().GetString("store-backend")
	path, _ := cmd.Flags().GetString("store-path")
	return app.StoreOptions{Backend: backend, Path: path}
}

func addRootFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("root", "r", "", "Project root directory (defaults to the current directory)")
}
