// Package commands implements the CLI commands for wikipath.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/wikipath/internal/app"
	"go.trai.ch/wikipath/internal/build"
	"go.trai.ch/wikipath/internal/core/domain"
)

// CLI represents the command line interface for wikipath.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	LoadSettings(path string, forceJSON bool) (domain.Settings, error)
	Build(ctx context.Context, corpus string) (domain.GraphStats, error)
	FindPaths(ctx context.Context, corpus string, queries []app.Query, opts app.BuildOptions) ([]app.Result, error)
	Stats(ctx context.Context, corpus string, opts app.BuildOptions) (domain.GraphStats, error)
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "wikipath",
		Short:         "Find the shortest chain of links between two wiki pages",
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

	rootCmd.PersistentFlags().StringP("config", "c", domain.ConfigFileName, "Path to the settings file")
	rootCmd.PersistentFlags().Bool("json", false, "Write logs as JSON")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentPreRunE = c.loadSettings

	rootCmd.AddCommand(c.newPathCmd())
	rootCmd.AddCommand(c.newBuildCmd())
	rootCmd.AddCommand(c.newStatsCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

func (c *CLI) loadSettings(cmd *cobra.Command, _ []string) error {
	path, _ := cmd.Flags().GetString("config")
	jsonLogs, _ := cmd.Flags().GetBool("json")
	_, err := c.app.LoadSettings(path, jsonLogs)
	return err
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
