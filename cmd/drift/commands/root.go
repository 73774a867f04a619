// Package commands implements the CLI commands for the drift client.
package commands

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"go.trai.ch/drift/internal/adapters/config"
	"go.trai.ch/drift/internal/app"
)

// ComponentsResolver builds the application components once flags are
// parsed. The production resolver runs the Graft wiring; tests substitute
// their own.
type ComponentsResolver func(ctx context.Context) (*app.Components, error)

// CLI represents the command line interface for drift.
type CLI struct {
	resolve ComponentsResolver
	rootCmd *cobra.Command
}

// New creates a CLI over the given components resolver.
func New(resolve ComponentsResolver) *CLI {
	rootCmd := &cobra.Command{
		Use:           "drift",
		Short:         "A decentralized message-board client",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringP("config", "c", config.DefaultFilename, "Path to configuration file")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		path, err := cmd.Flags().GetString("config")
		if err != nil {
			return err
		}
		// The config Graft node reads the path from the environment, since
		// wiring runs after flag parsing.
		return os.Setenv(config.EnvPath, path)
	}

	c := &CLI{
		resolve: resolve,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newTrustCmd())
	rootCmd.AddCommand(c.newVersionCmd())

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

// Command exposes the underlying cobra command. Used for testing.
func (c *CLI) Command() *cobra.Command {
	return c.rootCmd
}
