package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/example/fleetdesk/internal/wire"
)

// StatsCmd returns the stats command
func StatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show mission counts by state and fleet availability",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.StatsAdapter().Show(context.Background())
		},
	}
}
