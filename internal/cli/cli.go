// Package cli implements the devtrack command line interface.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	root       *cobra.Command
	configPath string
}

// NewApp creates the devtrack CLI application.
func NewApp() *App {
	a := &App{}

	a.root = &cobra.Command{
		Use:   "devtrack",
		Short: "Track coding tasks and platform activity",
		Long: `Devtrack is a task tracker for developers.

It serves an HTTP API for managing tasks tied to coding platforms,
aggregates completion analytics, and syncs activity snapshots from
GitHub and LeetCode.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	a.root.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to the configuration file")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.serveCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("devtrack %s (commit: %s)\n", Version, Commit)
		},
	}
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}
