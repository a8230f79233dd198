package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/fleetdesk/internal/db"
	"github.com/example/fleetdesk/internal/wire"
)

// SeedCmd returns the seed command
func SeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert sample drivers, employees, a dispatcher and vehicles",
		Long: `Insert a small development data set. Rows that already exist are left alone,
so running seed twice is harmless.`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := db.SeedFixtures(context.Background(), wire.DB(), wire.Config().Database.Driver); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "✓ Seeded sample directory and fleet")
			return nil
		},
	}
}
