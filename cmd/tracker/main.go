package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/taskhabit/tracker/cmd/tracker/commands"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "tracker",
		Short: "Personal task and habit tracker",
		Long:  "Interactive CLI for tracking tasks and habits, with an optional GitHub bridge",
	}

	rootCmd.AddCommand(commands.NewRunCmd())
	rootCmd.AddCommand(commands.NewStatsCmd())

	// Bare `tracker` drops straight into the prompt loop.
	rootCmd.RunE = commands.NewRunCmd().RunE

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
