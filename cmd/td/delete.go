package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete <comment-id>",
	Short:   "Delete a comment you wrote (replies and likes go with it)",
	GroupID: "comments",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := threadsClient.DeleteComment(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("deleting comment: %w", err)
		}

		if jsonOutput {
			data, err := json.MarshalIndent(map[string]string{"deletedCommentId": id}, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling JSON: %w", err)
			}
			fmt.Println(string(data))
		} else {
			fmt.Printf("deleted %s\n", id)
		}
		return nil
	},
}
