package main

import (
	"fmt"
	"os"

	"github.com/mattsolo1/grove-core/cli"
	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-explorer/cmd"
	"github.com/mattsolo1/grove-explorer/cmd/config"
	"github.com/mattsolo1/grove-explorer/pkg/vfs"
)

var store *vfs.Store

func main() {
	rootCmd := cli.NewStandardCommand(
		"xp",
		"A workspace file explorer with tabs, inline editing, and search",
	)
	config.AddGlobalFlags(rootCmd)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// This runs once before any subcommand
		config.InitConfig()

		var err error
		store, err = config.InitStore()
		if err != nil {
			return fmt.Errorf("failed to initialize workspace store: %w", err)
		}
		return nil
	}

	// Add subcommands; a bare `xp` launches the explorer.
	tuiCmd := cmd.NewTuiCmd(&store)
	rootCmd.RunE = tuiCmd.RunE
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(cmd.NewSearchCmd(&store))
	rootCmd.AddCommand(cmd.NewTreeCmd(&store))
	rootCmd.AddCommand(cmd.NewIndexCmd(&store))
	rootCmd.AddCommand(cmd.NewVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
