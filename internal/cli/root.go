package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/fleetdesk/internal/version"
	"github.com/example/fleetdesk/internal/wire"
)

// NewRootCmd builds the fleetdesk command tree. Call it once per process.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "fleetdesk",
		Short:   "fleetdesk - vehicle missions, drivers and fleet availability",
		Version: version.String(),
		Long: `fleetdesk books transport missions, offers them to drivers and keeps
vehicle availability consistent across the mission lifecycle.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			path, _ := cmd.Flags().GetString("config")
			wire.SetConfigPath(path)
		},
	}
	rootCmd.PersistentFlags().String("config", "", "Config file (default ~/.fleetdesk/config.yaml)")
	rootCmd.SetFlagErrorFunc(FlagError)

	rootCmd.AddCommand(MissionCmd())
	rootCmd.AddCommand(VehicleCmd())
	rootCmd.AddCommand(DriverCmd())
	rootCmd.AddCommand(EmployeeCmd())
	rootCmd.AddCommand(DispatcherCmd())
	rootCmd.AddCommand(LeaveCmd())
	rootCmd.AddCommand(NotificationCmd())
	rootCmd.AddCommand(StatsCmd())

	// Operations
	rootCmd.AddCommand(ServeCmd())
	rootCmd.AddCommand(SeedCmd())

	return rootCmd
}
