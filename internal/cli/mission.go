package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/fleetdesk/internal/ports/primary"
	"github.com/example/fleetdesk/internal/wire"
)

var missionCmd = &cobra.Command{
	Use:   "mission",
	Short: "Book and drive missions through their lifecycle",
	Long: `Create, list and move missions through their lifecycle:

  PENDING → ACCEPTED_WAITING → IN_PROGRESS → COMPLETED
  any open state → REFUSED, problems send missions back to PENDING for reassignment.`,
}

var missionCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Book a new mission",
	Args:  exactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		origin, _ := cmd.Flags().GetString("from")
		destination, _ := cmd.Flags().GetString("to")
		at, _ := cmd.Flags().GetString("at")
		typ, _ := cmd.Flags().GetString("type")
		notes, _ := cmd.Flags().GetString("notes")
		requester, _ := cmd.Flags().GetString("requester")
		driver, _ := cmd.Flags().GetString("driver")
		vehicle, _ := cmd.Flags().GetString("vehicle")

		scheduled, err := parseWhen("at", at)
		if err != nil {
			return err
		}
		for _, check := range []struct{ id, kind string }{
			{requester, "employee"}, {driver, "driver"}, {vehicle, "vehicle"},
		} {
			if err := validateEntityID(check.id, check.kind); err != nil {
				return err
			}
		}

		return wire.MissionAdapter().Create(ctx, primary.CreateMissionRequest{
			Origin:       origin,
			Destination:  destination,
			ScheduledAt:  scheduled,
			Type:         strings.ToUpper(typ),
			Instructions: notes,
			RequesterID:  requester,
			DriverID:     driver,
			VehicleID:    vehicle,
		})
	},
}

var missionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List missions, newest first",
	Args:  exactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		state, _ := cmd.Flags().GetString("state")
		driver, _ := cmd.Flags().GetString("driver")
		requester, _ := cmd.Flags().GetString("requester")
		limit, _ := cmd.Flags().GetInt("limit")

		return wire.MissionAdapter().List(context.Background(), primary.MissionFilters{
			State:       strings.ToUpper(state),
			DriverID:    driver,
			RequesterID: requester,
			Limit:       limit,
		})
	},
}

var missionShowCmd = &cobra.Command{
	Use:   "show [mission-id]",
	Short: "Show mission details",
	Args:  idArg("mission"),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := wire.MissionAdapter().Show(context.Background(), args[0])
		return err
	},
}

var missionUpdateCmd = &cobra.Command{
	Use:   "update [mission-id]",
	Short: "Edit a pending mission before a driver accepts it",
	Long: `Edit a pending mission before a driver accepts it. Only the flags given
are changed. --vehicle "" detaches the vehicle and releases it.`,
	Args: idArg("mission"),
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		req := primary.UpdateMissionDetailsRequest{MissionID: args[0]}
		changed := func(name string) *string {
			if !flags.Changed(name) {
				return nil
			}
			v, _ := flags.GetString(name)
			return &v
		}

		req.Origin = changed("from")
		req.Destination = changed("to")
		req.Instructions = changed("notes")
		if typ := changed("type"); typ != nil {
			upper := strings.ToUpper(*typ)
			req.Type = &upper
		}
		if at := changed("at"); at != nil {
			scheduled, err := parseWhen("at", *at)
			if err != nil {
				return err
			}
			req.ScheduledAt = &scheduled
		}
		if vehicle := changed("vehicle"); vehicle != nil {
			if *vehicle != "" {
				if err := validateEntityID(*vehicle, "vehicle"); err != nil {
					return err
				}
			}
			req.VehicleID = vehicle
		}

		return wire.MissionAdapter().Update(context.Background(), req)
	},
}

var missionAcceptCmd = &cobra.Command{
	Use:   "accept [mission-id]",
	Short: "Accept a pending mission as a driver",
	Args:  idArg("mission"),
	RunE: func(cmd *cobra.Command, args []string) error {
		driver, _ := cmd.Flags().GetString("driver")
		if err := validateEntityID(driver, "driver"); err != nil {
			return err
		}
		return wire.MissionAdapter().Accept(context.Background(), args[0], driver)
	},
}

var missionStartCmd = &cobra.Command{
	Use:   "start [mission-id]",
	Short: "Put an accepted mission on the road",
	Args:  idArg("mission"),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.MissionAdapter().Start(context.Background(), args[0])
	},
}

var missionCompleteCmd = &cobra.Command{
	Use:   "complete [mission-id]",
	Short: "Complete a mission and release its vehicle",
	Args:  idArg("mission"),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.MissionAdapter().Complete(context.Background(), args[0])
	},
}

var missionRefuseCmd = &cobra.Command{
	Use:   "refuse [mission-id]",
	Short: "Refuse a mission",
	Args:  idArg("mission"),
	RunE: func(cmd *cobra.Command, args []string) error {
		reason, _ := cmd.Flags().GetString("reason")
		return wire.MissionAdapter().Refuse(context.Background(), args[0], reason)
	},
}

var missionProblemCmd = &cobra.Command{
	Use:   "problem [mission-id]",
	Short: "Report a problem on an accepted mission",
	Args:  idArg("mission"),
	RunE: func(cmd *cobra.Command, args []string) error {
		reason, _ := cmd.Flags().GetString("reason")
		return wire.MissionAdapter().Problem(context.Background(), args[0], reason)
	},
}

var missionReassignCmd = &cobra.Command{
	Use:   "reassign [mission-id]",
	Short: "Hand a refused or problem mission to another driver",
	Args:  idArg("mission"),
	RunE: func(cmd *cobra.Command, args []string) error {
		driver, _ := cmd.Flags().GetString("driver")
		if err := validateEntityID(driver, "driver"); err != nil {
			return err
		}
		return wire.MissionAdapter().Reassign(context.Background(), args[0], driver)
	},
}

var missionDeleteCmd = &cobra.Command{
	Use:   "delete [mission-id]",
	Short: "Delete a mission that holds no vehicle",
	Args:  idArg("mission"),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.MissionAdapter().Delete(context.Background(), args[0])
	},
}

// MissionCmd returns the mission command
func MissionCmd() *cobra.Command {
	missionCreateCmd.Flags().String("from", "", "Origin (required)")
	missionCreateCmd.Flags().String("to", "", "Destination (required)")
	missionCreateCmd.Flags().String("at", "", "Scheduled time, YYYY-MM-DD HH:MM (required)")
	missionCreateCmd.Flags().StringP("type", "t", "MATERIAL", "Mission type (MATERIAL, DOCUMENT, PERSONNEL)")
	missionCreateCmd.Flags().StringP("notes", "n", "", "Instructions for the driver")
	missionCreateCmd.Flags().StringP("requester", "r", "", "Requesting employee ID (required)")
	missionCreateCmd.Flags().StringP("driver", "d", "", "Offer the mission to this driver")
	missionCreateCmd.Flags().StringP("vehicle", "v", "", "Reserve this vehicle")
	missionListCmd.Flags().StringP("state", "s", "", "Filter by state")
	missionListCmd.Flags().StringP("driver", "d", "", "Filter by driver")
	missionListCmd.Flags().StringP("requester", "r", "", "Filter by requester")
	missionListCmd.Flags().IntP("limit", "l", 0, "Maximum rows (0 for all)")
	missionUpdateCmd.Flags().String("from", "", "New origin")
	missionUpdateCmd.Flags().String("to", "", "New destination")
	missionUpdateCmd.Flags().String("at", "", "New scheduled time, YYYY-MM-DD HH:MM")
	missionUpdateCmd.Flags().StringP("type", "t", "", "New mission type")
	missionUpdateCmd.Flags().StringP("notes", "n", "", "New instructions")
	missionUpdateCmd.Flags().StringP("vehicle", "v", "", "Replacement vehicle, empty to detach")
	missionAcceptCmd.Flags().StringP("driver", "d", "", "Accepting driver ID (required)")
	missionReassignCmd.Flags().StringP("driver", "d", "", "New driver ID (required)")
	missionRefuseCmd.Flags().String("reason", "", "Why the mission is refused (required)")
	missionProblemCmd.Flags().String("reason", "", "What went wrong (required)")

	missionCmd.AddCommand(missionCreateCmd)
	missionCmd.AddCommand(missionListCmd)
	missionCmd.AddCommand(missionShowCmd)
	missionCmd.AddCommand(missionUpdateCmd)
	missionCmd.AddCommand(missionAcceptCmd)
	missionCmd.AddCommand(missionStartCmd)
	missionCmd.AddCommand(missionCompleteCmd)
	missionCmd.AddCommand(missionRefuseCmd)
	missionCmd.AddCommand(missionProblemCmd)
	missionCmd.AddCommand(missionReassignCmd)
	missionCmd.AddCommand(missionDeleteCmd)

	return missionCmd
}
