package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/taskhabit/tracker/internal/config"
	"github.com/taskhabit/tracker/internal/store"
)

// NewStatsCmd creates the stats command, a one-shot summary that skips
// the prompt loop.
func NewStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print task and habit statistics",
		Long:  "Print task and habit statistics without entering the prompt loop",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			s, err := store.New(cfg.DataFile, nil)
			if err != nil {
				fmt.Fprintf(os.Stderr, "⚠️ Error loading data: %v\n", err)
			}

			a := &app{store: s, out: cmd.OutOrStdout()}
			a.renderStats()
			return nil
		},
	}
}
