// Package client provides a transport-agnostic interface for the threads
// service and an HTTP/JSON implementation that talks to the threads REST API.
package client

import (
	"context"

	"github.com/alfredjeanlab/threads/internal/model"
)

// ThreadsClient is the interface all td CLI commands use to talk to the
// threads server. HTTPClient is the only implementation today; the interface
// keeps command code independent of the transport.
type ThreadsClient interface {
	// Comment CRUD
	CreateComment(ctx context.Context, req *CreateCommentRequest) (*model.Comment, error)
	GetComment(ctx context.Context, id string) (*model.Comment, error)
	EditComment(ctx context.Context, id, body string) (*model.Comment, error)
	DeleteComment(ctx context.Context, id string) (string, error)
	ToggleLike(ctx context.Context, id string) (*ToggleLikeResponse, error)

	// Threads
	GetThread(ctx context.Context, postID string) (*model.Thread, error)

	// Notifications
	ListNotifications(ctx context.Context, filter *model.NotificationFilter) (*NotificationsResponse, error)
	MarkNotificationRead(ctx context.Context, id string) (*model.Notification, error)
	DismissNotification(ctx context.Context, id string) error

	// Events
	ListEvents(ctx context.Context, postID string, limit int) ([]*model.Event, error)

	// Health
	Health(ctx context.Context) (string, error)

	// Lifecycle
	Close() error
}

// CreateCommentRequest holds parameters for creating a comment. A nil
// ParentID creates a top-level comment on the post.
type CreateCommentRequest struct {
	PostID   string  `json:"postId"`
	ParentID *string `json:"parentId,omitempty"`
	Body     string  `json:"body"`
}

// ToggleLikeResponse is the response from ToggleLike. Liked reports whether
// the toggle created the like (true) or removed it (false).
type ToggleLikeResponse struct {
	Like  *model.Like `json:"like"`
	Liked bool        `json:"liked"`
}

// NotificationsResponse is the response from ListNotifications. Total counts
// every notification matching the filter, ignoring limit and offset.
type NotificationsResponse struct {
	Notifications []*model.Notification `json:"notifications"`
	Total         int                   `json:"total"`
}
