package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:     "edit <comment-id> <body>",
	Short:   "Replace the body of a comment you wrote",
	GroupID: "comments",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		comment, err := threadsClient.EditComment(context.Background(), args[0], args[1])
		if err != nil {
			return fmt.Errorf("editing comment: %w", err)
		}

		if jsonOutput {
			printJSON(comment)
		} else {
			printComment(comment)
		}
		return nil
	},
}
