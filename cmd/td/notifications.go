package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alfredjeanlab/threads/internal/model"
	"github.com/spf13/cobra"
)

var notificationsCmd = &cobra.Command{
	Use:     "notifications",
	Aliases: []string{"ntf"},
	Short:   "List and manage your notifications",
	GroupID: "notifications",
}

var notificationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your notifications, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		unread, _ := cmd.Flags().GetBool("unread")
		limit, _ := cmd.Flags().GetInt("limit")
		offset, _ := cmd.Flags().GetInt("offset")

		resp, err := threadsClient.ListNotifications(context.Background(), &model.NotificationFilter{
			UnreadOnly: unread,
			Limit:      limit,
			Offset:     offset,
		})
		if err != nil {
			return fmt.Errorf("listing notifications: %w", err)
		}

		if jsonOutput {
			printJSON(resp)
			return nil
		}

		if len(resp.Notifications) == 0 {
			fmt.Println("no notifications")
			return nil
		}
		printNotificationsTable(os.Stdout, resp.Notifications, resp.Total)
		return nil
	},
}

var notificationsReadCmd = &cobra.Command{
	Use:   "read <notification-id>",
	Short: "Mark a notification as read",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := threadsClient.MarkNotificationRead(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("marking notification read: %w", err)
		}

		if jsonOutput {
			printJSON(n)
			return nil
		}
		fmt.Printf("read %s at %s\n", n.ID, n.ReadAt.Format(timeLayout))
		return nil
	},
}

var notificationsDismissCmd = &cobra.Command{
	Use:   "dismiss <notification-id>",
	Short: "Dismiss a notification permanently",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]
		if err := threadsClient.DismissNotification(context.Background(), id); err != nil {
			return fmt.Errorf("dismissing notification: %w", err)
		}
		fmt.Printf("dismissed %s\n", id)
		return nil
	},
}

func init() {
	notificationsListCmd.Flags().Bool("unread", false, "only unread notifications")
	notificationsListCmd.Flags().Int("limit", 0, "maximum notifications to return")
	notificationsListCmd.Flags().Int("offset", 0, "notifications to skip")

	notificationsCmd.AddCommand(notificationsListCmd)
	notificationsCmd.AddCommand(notificationsReadCmd)
	notificationsCmd.AddCommand(notificationsDismissCmd)
}
