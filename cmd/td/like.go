package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var likeCmd = &cobra.Command{
	Use:     "like <comment-id>",
	Short:   "Toggle your like on a comment",
	GroupID: "comments",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := threadsClient.ToggleLike(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("toggling like: %w", err)
		}

		if jsonOutput {
			printJSON(resp)
			return nil
		}

		if resp.Liked {
			fmt.Printf("liked %s\n", resp.Like.CommentID)
		} else {
			fmt.Printf("unliked %s\n", resp.Like.CommentID)
		}
		return nil
	},
}
