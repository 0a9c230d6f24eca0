package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var eventsCmd = &cobra.Command{
	Use:     "events",
	Short:   "List recent comment events, newest first",
	GroupID: "system",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		postID, _ := cmd.Flags().GetString("post")
		limit, _ := cmd.Flags().GetInt("limit")

		evts, err := threadsClient.ListEvents(context.Background(), postID, limit)
		if err != nil {
			return fmt.Errorf("listing events: %w", err)
		}

		if jsonOutput {
			printJSON(evts)
			return nil
		}

		if len(evts) == 0 {
			fmt.Println("no events")
			return nil
		}
		printEventsTable(os.Stdout, evts)
		return nil
	},
}

func init() {
	eventsCmd.Flags().StringP("post", "p", "", "only events for this post")
	eventsCmd.Flags().IntP("limit", "n", 50, "maximum events to return")
}
