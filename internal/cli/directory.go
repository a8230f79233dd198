package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/example/fleetdesk/internal/ports/primary"
	"github.com/example/fleetdesk/internal/wire"
)

// drivers

var driverCmd = &cobra.Command{
	Use:   "driver",
	Short: "Manage drivers",
}

var driverRegisterCmd = &cobra.Command{
	Use:   "register [first-name] [last-name]",
	Short: "Register an active driver",
	Args:  exactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		phone, _ := cmd.Flags().GetString("phone")
		return wire.DirectoryAdapter().RegisterDriver(context.Background(), primary.RegisterDriverRequest{
			FirstName: args[0],
			LastName:  args[1],
			Phone:     phone,
		})
	},
}

var driverListCmd = &cobra.Command{
	Use:   "list",
	Short: "List drivers",
	Args:  exactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		active, _ := cmd.Flags().GetBool("active")
		return wire.DirectoryAdapter().ListDrivers(context.Background(), active)
	},
}

var driverReactivateCmd = &cobra.Command{
	Use:   "reactivate [driver-id]",
	Short: "Put a driver back on duty after leave",
	Args:  idArg("driver"),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.DirectoryAdapter().ReactivateDriver(context.Background(), args[0])
	},
}

// DriverCmd returns the driver command
func DriverCmd() *cobra.Command {
	driverRegisterCmd.Flags().String("phone", "", "Contact number")
	driverListCmd.Flags().BoolP("active", "a", false, "Only active drivers")

	driverCmd.AddCommand(driverRegisterCmd)
	driverCmd.AddCommand(driverListCmd)
	driverCmd.AddCommand(driverReactivateCmd)

	return driverCmd
}

// employees

var employeeCmd = &cobra.Command{
	Use:   "employee",
	Short: "Manage employees who request missions",
}

var employeeRegisterCmd = &cobra.Command{
	Use:   "register [first-name] [last-name]",
	Short: "Register an employee",
	Args:  exactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		department, _ := cmd.Flags().GetString("department")
		return wire.DirectoryAdapter().RegisterEmployee(context.Background(), primary.RegisterEmployeeRequest{
			FirstName:  args[0],
			LastName:   args[1],
			Department: department,
		})
	},
}

var employeeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List employees",
	Args:  exactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.DirectoryAdapter().ListEmployees(context.Background())
	},
}

// EmployeeCmd returns the employee command
func EmployeeCmd() *cobra.Command {
	employeeRegisterCmd.Flags().String("department", "", "Department")

	employeeCmd.AddCommand(employeeRegisterCmd)
	employeeCmd.AddCommand(employeeListCmd)

	return employeeCmd
}

// dispatchers

var dispatcherCmd = &cobra.Command{
	Use:   "dispatcher",
	Short: "Manage dispatchers",
}

var dispatcherRegisterCmd = &cobra.Command{
	Use:   "register [name]",
	Short: "Register a dispatcher",
	Args:  exactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		return wire.DirectoryAdapter().RegisterDispatcher(context.Background(), primary.RegisterDispatcherRequest{
			Name:  args[0],
			Email: email,
		})
	},
}

var dispatcherListCmd = &cobra.Command{
	Use:   "list",
	Short: "List dispatchers",
	Args:  exactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.DirectoryAdapter().ListDispatchers(context.Background())
	},
}

// DispatcherCmd returns the dispatcher command
func DispatcherCmd() *cobra.Command {
	dispatcherRegisterCmd.Flags().String("email", "", "Email address (required)")

	dispatcherCmd.AddCommand(dispatcherRegisterCmd)
	dispatcherCmd.AddCommand(dispatcherListCmd)

	return dispatcherCmd
}
