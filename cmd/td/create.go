package main

import (
	"context"
	"fmt"

	"github.com/alfredjeanlab/threads/internal/client"
	"github.com/spf13/cobra"
)

var createCmd = &cobra.Command{
	Use:     "create <post-id> <body>",
	Short:   "Create a comment on a post (or a reply with --reply-to)",
	GroupID: "comments",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		postID, body := args[0], args[1]
		replyTo, _ := cmd.Flags().GetString("reply-to")

		req := &client.CreateCommentRequest{
			PostID: postID,
			Body:   body,
		}
		if replyTo != "" {
			req.ParentID = &replyTo
		}

		comment, err := threadsClient.CreateComment(context.Background(), req)
		if err != nil {
			return fmt.Errorf("creating comment: %w", err)
		}

		if jsonOutput {
			printJSON(comment)
		} else {
			printComment(comment)
		}
		return nil
	},
}

func init() {
	createCmd.Flags().StringP("reply-to", "r", "", "parent comment id to reply to")
}
