// Package sync periodically archives the comment data set as JSONL to one
// or more destinations (S3-compatible object storage, a git repository).
package sync

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/alfredjeanlab/threads/internal/store"
)

// header is the first JSONL record written by ExportJSONL.
type header struct {
	Version           string    `json:"version"`
	Type              string    `json:"type"`
	Timestamp         time.Time `json:"timestamp"`
	CommentCount      int       `json:"comment_count"`
	LikeCount         int       `json:"like_count"`
	NotificationCount int       `json:"notification_count"`
}

// record wraps a single JSONL line with a type discriminator.
type record struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// ExportJSONL writes all comments, likes, and notifications from the store
// as JSONL to w. The store returns rows in id order, so repeated exports of
// the same data produce identical output after the header line.
func ExportJSONL(ctx context.Context, s store.Store, w io.Writer) error {
	comments, err := s.ListAllComments(ctx)
	if err != nil {
		return fmt.Errorf("list comments: %w", err)
	}

	likes, err := s.ListAllLikes(ctx)
	if err != nil {
		return fmt.Errorf("list likes: %w", err)
	}

	notifications, err := s.ListAllNotifications(ctx)
	if err != nil {
		return fmt.Errorf("list notifications: %w", err)
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(header{
		Version:           "1",
		Type:              "threads.archive",
		Timestamp:         time.Now().UTC(),
		CommentCount:      len(comments),
		LikeCount:         len(likes),
		NotificationCount: len(notifications),
	}); err != nil {
		return fmt.Errorf("encode header: %w", err)
	}

	for _, c := range comments {
		if err := enc.Encode(record{Type: "comment", Data: c}); err != nil {
			return fmt.Errorf("encode comment %s: %w", c.ID, err)
		}
	}

	for _, l := range likes {
		if err := enc.Encode(record{Type: "like", Data: l}); err != nil {
			return fmt.Errorf("encode like %s/%s: %w", l.UserID, l.CommentID, err)
		}
	}

	for _, n := range notifications {
		if err := enc.Encode(record{Type: "notification", Data: n}); err != nil {
			return fmt.Errorf("encode notification %s: %w", n.ID, err)
		}
	}

	return nil
}
