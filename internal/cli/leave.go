package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/example/fleetdesk/internal/ports/primary"
	"github.com/example/fleetdesk/internal/wire"
)

var leaveCmd = &cobra.Command{
	Use:   "leave",
	Short: "Request and decide driver leave",
}

var leaveRequestCmd = &cobra.Command{
	Use:   "request",
	Short: "File a leave request for a driver",
	Args:  exactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		driver, _ := cmd.Flags().GetString("driver")
		from, _ := cmd.Flags().GetString("from")
		to, _ := cmd.Flags().GetString("to")
		kind, _ := cmd.Flags().GetString("kind")
		reason, _ := cmd.Flags().GetString("reason")

		if err := validateEntityID(driver, "driver"); err != nil {
			return err
		}
		starts, err := parseWhen("from", from)
		if err != nil {
			return err
		}
		ends, err := parseWhen("to", to)
		if err != nil {
			return err
		}

		return wire.LeaveAdapter().Request(context.Background(), primary.RequestLeaveRequest{
			DriverID: driver,
			StartsAt: starts,
			EndsAt:   ends,
			Kind:     kind,
			Reason:   reason,
		})
	},
}

var leaveListCmd = &cobra.Command{
	Use:   "list",
	Short: "List leave requests",
	Args:  exactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		driver, _ := cmd.Flags().GetString("driver")
		status, _ := cmd.Flags().GetString("status")
		return wire.LeaveAdapter().List(context.Background(), primary.LeaveFilters{DriverID: driver, Status: status})
	},
}

var leaveApproveCmd = &cobra.Command{
	Use:   "approve [leave-id]",
	Short: "Approve a pending request",
	Args:  idArg("leave"),
	RunE: func(cmd *cobra.Command, args []string) error {
		note, _ := cmd.Flags().GetString("note")
		return wire.LeaveAdapter().Approve(context.Background(), args[0], note)
	},
}

var leaveRefuseCmd = &cobra.Command{
	Use:   "refuse [leave-id]",
	Short: "Refuse a pending request",
	Args:  idArg("leave"),
	RunE: func(cmd *cobra.Command, args []string) error {
		reason, _ := cmd.Flags().GetString("reason")
		return wire.LeaveAdapter().Refuse(context.Background(), args[0], reason)
	},
}

// LeaveCmd returns the leave command
func LeaveCmd() *cobra.Command {
	leaveRequestCmd.Flags().StringP("driver", "d", "", "Driver ID (required)")
	leaveRequestCmd.Flags().String("from", "", "First day, YYYY-MM-DD (required)")
	leaveRequestCmd.Flags().String("to", "", "Last day, YYYY-MM-DD (required)")
	leaveRequestCmd.Flags().StringP("kind", "k", "ANNUAL", "ANNUAL, SICK, PERSONAL, EMERGENCY or OTHER")
	leaveRequestCmd.Flags().String("reason", "", "Optional reason")
	leaveListCmd.Flags().StringP("driver", "d", "", "Filter by driver")
	leaveListCmd.Flags().StringP("status", "s", "", "Filter by status")
	leaveApproveCmd.Flags().String("note", "", "Decision note")
	leaveRefuseCmd.Flags().String("reason", "", "Why the request is refused (required)")

	leaveCmd.AddCommand(leaveRequestCmd)
	leaveCmd.AddCommand(leaveListCmd)
	leaveCmd.AddCommand(leaveApproveCmd)
	leaveCmd.AddCommand(leaveRefuseCmd)

	return leaveCmd
}
