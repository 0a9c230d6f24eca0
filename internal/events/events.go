package events

import (
	"context"

	"github.com/alfredjeanlab/threads/internal/model"
)

// Event topic constants
const (
	TopicCommentCreated = "comments.comment.created"
	TopicCommentUpdated = "comments.comment.updated"
	TopicCommentDeleted = "comments.comment.deleted"
	TopicLikeAdded      = "comments.like.added"
	TopicLikeRemoved    = "comments.like.removed"

	// Notification events (consumed by the notify delivery worker).
	TopicNotificationCreated = "comments.notification.created"
)

// Event types

type CommentCreated struct {
	Comment *model.Comment `json:"comment"`
}

type CommentUpdated struct {
	Comment *model.Comment `json:"comment"`
}

type CommentDeleted struct {
	CommentID string `json:"commentId"`
	PostID    string `json:"postId"`
}

type LikeAdded struct {
	Like *model.Like `json:"like"`
}

type LikeRemoved struct {
	Like *model.Like `json:"like"`
}

type NotificationCreated struct {
	Notification *model.Notification `json:"notification"`
}

// Publisher is the interface for emitting events.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}

// Subscriber is the consuming side of the bus. The notify worker uses it to
// follow notification events; topics accept NATS wildcards ("*", ">").
type Subscriber interface {
	// Subscribe returns a channel of raw JSON payloads for the topic. The
	// cancel function unsubscribes and closes the channel; calling it more
	// than once is safe.
	Subscribe(topic string) (<-chan []byte, func(), error)
	Close() error
}
