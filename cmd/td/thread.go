package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var threadCmd = &cobra.Command{
	Use:     "thread <post-id>",
	Short:   "Show a post's comment tree",
	GroupID: "comments",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		thread, err := threadsClient.GetThread(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("fetching thread: %w", err)
		}

		if jsonOutput {
			printJSON(thread)
			return nil
		}

		if len(thread.Data) == 0 {
			fmt.Printf("no comments (%d total)\n", thread.Count)
			return nil
		}
		writeThread(os.Stdout, thread)
		return nil
	},
}
