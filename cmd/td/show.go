package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:     "show <comment-id>",
	Short:   "Show a single comment",
	GroupID: "comments",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		comment, err := threadsClient.GetComment(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("fetching comment: %w", err)
		}

		if jsonOutput {
			printJSON(comment)
		} else {
			printComment(comment)
		}
		return nil
	},
}
