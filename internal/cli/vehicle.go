package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/example/fleetdesk/internal/ports/primary"
	"github.com/example/fleetdesk/internal/wire"
)

var vehicleCmd = &cobra.Command{
	Use:   "vehicle",
	Short: "Manage the fleet and its availability",
}

var vehicleRegisterCmd = &cobra.Command{
	Use:   "register [registration]",
	Short: "Register a vehicle (starts available)",
	Args:  exactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		vmake, _ := cmd.Flags().GetString("make")
		model, _ := cmd.Flags().GetString("model")
		capacity, _ := cmd.Flags().GetInt("capacity")

		return wire.VehicleAdapter().Register(context.Background(), primary.RegisterVehicleRequest{
			Registration: args[0],
			Make:         vmake,
			Model:        model,
			CapacityKg:   capacity,
		})
	},
}

var vehicleListCmd = &cobra.Command{
	Use:   "list",
	Short: "List vehicles",
	Args:  exactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		available, _ := cmd.Flags().GetBool("available")
		return wire.VehicleAdapter().List(context.Background(), available)
	},
}

var vehicleShowCmd = &cobra.Command{
	Use:   "show [vehicle-id]",
	Short: "Show one vehicle",
	Args:  idArg("vehicle"),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.VehicleAdapter().Show(context.Background(), args[0])
	},
}

var vehicleCountCmd = &cobra.Command{
	Use:   "count",
	Short: "Count available vehicles",
	Args:  exactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.VehicleAdapter().Count(context.Background())
	},
}

// VehicleCmd returns the vehicle command
func VehicleCmd() *cobra.Command {
	vehicleRegisterCmd.Flags().String("make", "", "Manufacturer")
	vehicleRegisterCmd.Flags().String("model", "", "Model")
	vehicleRegisterCmd.Flags().Int("capacity", 0, "Payload capacity in kg")
	vehicleListCmd.Flags().BoolP("available", "a", false, "Only available vehicles")

	vehicleCmd.AddCommand(vehicleRegisterCmd)
	vehicleCmd.AddCommand(vehicleListCmd)
	vehicleCmd.AddCommand(vehicleShowCmd)
	vehicleCmd.AddCommand(vehicleCountCmd)

	return vehicleCmd
}
