package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/example/fleetdesk/internal/ports/primary"
	"github.com/example/fleetdesk/internal/wire"
)

var notificationCmd = &cobra.Command{
	Use:     "notification",
	Aliases: []string{"inbox"},
	Short:   "Read notifications sent to drivers, requesters and dispatchers",
}

var notificationListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show an actor's notifications, newest first",
	Args:  exactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, _ := cmd.Flags().GetString("kind")
		id, _ := cmd.Flags().GetString("id")
		unread, _ := cmd.Flags().GetBool("unread")
		limit, _ := cmd.Flags().GetInt("limit")

		return wire.NotificationAdapter().Inbox(context.Background(), primary.NotificationFilters{
			TargetKind: kind,
			TargetID:   id,
			UnreadOnly: unread,
			Limit:      limit,
		})
	},
}

var notificationReadCmd = &cobra.Command{
	Use:   "read [notification-id]",
	Short: "Mark one notification read",
	Args:  exactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.NotificationAdapter().MarkRead(context.Background(), args[0])
	},
}

var notificationReadAllCmd = &cobra.Command{
	Use:   "read-all",
	Short: "Mark every notification of an actor read",
	Args:  exactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, _ := cmd.Flags().GetString("kind")
		id, _ := cmd.Flags().GetString("id")
		return wire.NotificationAdapter().MarkAllRead(context.Background(), kind, id)
	},
}

// NotificationCmd returns the notification command
func NotificationCmd() *cobra.Command {
	for _, c := range []*cobra.Command{notificationListCmd, notificationReadAllCmd} {
		c.Flags().StringP("kind", "k", "", "driver, requester or dispatcher (required)")
		c.Flags().StringP("id", "i", "", "Actor ID (required)")
	}
	notificationListCmd.Flags().BoolP("unread", "u", false, "Only unread")
	notificationListCmd.Flags().IntP("limit", "l", 20, "Maximum rows (0 for all)")

	notificationCmd.AddCommand(notificationListCmd)
	notificationCmd.AddCommand(notificationReadCmd)
	notificationCmd.AddCommand(notificationReadAllCmd)

	return notificationCmd
}
