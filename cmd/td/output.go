package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/alfredjeanlab/threads/internal/model"
)

const timeLayout = "2006-01-02 15:04:05"

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling JSON: %v\n", err)
		return
	}
	fmt.Println(string(data))
}

// commentAuthor prefers the joined username and falls back to the raw user id.
func commentAuthor(c *model.Comment) string {
	if c.Author != nil && c.Author.Username != "" {
		return c.Author.Username
	}
	return c.UserID
}

func printComment(c *model.Comment) {
	fmt.Printf("ID:       %s\n", c.ID)
	fmt.Printf("Post:     %s\n", c.PostID)
	if c.ParentID != nil {
		fmt.Printf("Parent:   %s\n", *c.ParentID)
	}
	fmt.Printf("Author:   %s\n", commentAuthor(c))
	liked := ""
	if c.YouLikedThis {
		liked = " (you liked this)"
	}
	fmt.Printf("Likes:    %d%s\n", c.LikeCount, liked)
	fmt.Printf("Created:  %s\n", c.CreatedAt.Format(timeLayout))
	if c.UpdatedAt.After(c.CreatedAt) {
		fmt.Printf("Edited:   %s\n", c.UpdatedAt.Format(timeLayout))
	}
	fmt.Printf("\n%s\n", c.Body)
}

func printNotificationsTable(w io.Writer, ns []*model.Notification, total int) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTYPE\tFROM\tPOST\tCOMMENT\tREAD\tCREATED")
	for _, n := range ns {
		read := ""
		if n.ReadAt != nil {
			read = n.ReadAt.Format(timeLayout)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			n.ID,
			n.Type,
			n.NotifierID,
			n.PostID,
			n.CommentID,
			read,
			n.CreatedAt.Format(timeLayout),
		)
	}
	tw.Flush()
	fmt.Fprintf(w, "\n%d notifications (%d total)\n", len(ns), total)
}

func printEventsTable(w io.Writer, evts []*model.Event) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTOPIC\tPOST\tCOMMENT\tACTOR\tCREATED")
	for _, e := range evts {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			e.ID,
			e.Topic,
			e.PostID,
			e.CommentID,
			e.Actor,
			e.CreatedAt.Format(timeLayout),
		)
	}
	tw.Flush()
	fmt.Fprintf(w, "\n%d events\n", len(evts))
}

// firstLine truncates a comment body to its first line, capped at 60 runes.
func firstLine(body string) string {
	if i := strings.IndexByte(body, '\n'); i >= 0 {
		body = body[:i]
	}
	runes := []rune(body)
	if len(runes) > 60 {
		return string(runes[:57]) + "..."
	}
	return body
}

// commentNodeLine formats one tree node: id, author, like count, body excerpt.
func commentNodeLine(node *model.CommentNode) string {
	author := node.User.Username
	if author == "" {
		author = node.User.ID
	}
	line := fmt.Sprintf("%s %s: %s", node.ID, author, firstLine(node.Body))
	switch {
	case node.LikeCount == 1:
		line += " (1 like)"
	case node.LikeCount > 1:
		line += fmt.Sprintf(" (%d likes)", node.LikeCount)
	}
	return line
}

// writeThread renders a post's comment tree as ASCII art. Top-level comments
// sit flush left; replies hang off them with branch connectors.
func writeThread(w io.Writer, thread *model.Thread) {
	for _, node := range thread.Data {
		fmt.Fprintln(w, commentNodeLine(node))
		writeCommentBranch(w, node.Children, "")
	}
	fmt.Fprintf(w, "\n%d comments\n", thread.Count)
}

func writeCommentBranch(w io.Writer, children []*model.CommentNode, prefix string) {
	for i, child := range children {
		connector := "├── "
		childPrefix := prefix + "│   "
		if i == len(children)-1 {
			connector = "└── "
			childPrefix = prefix + "    "
		}
		fmt.Fprintf(w, "%s%s%s\n", prefix, connector, commentNodeLine(child))
		writeCommentBranch(w, child.Children, childPrefix)
	}
}
