package store

import (
	"context"

	"github.com/alfredjeanlab/threads/internal/model"
)

// Store defines the persistence interface for the comment service.
// Missing rows surface as sql.ErrNoRows so callers can branch on them.
type Store interface {
	// Comment CRUD. GetComment attaches the author projection, the
	// aggregate like count, and whether viewerID liked the comment
	// (viewerID may be empty).
	CreateComment(ctx context.Context, comment *model.Comment) error
	GetComment(ctx context.Context, id string, viewerID string) (*model.Comment, error)
	UpdateCommentBody(ctx context.Context, id string, body string) error
	DeleteComment(ctx context.Context, id string) error
	CountCommentsByPost(ctx context.Context, postID string) (int, error)

	// Thread traversal. Top-level comments come back newest first; children
	// come back oldest first within a level. Both attach the same relational
	// data as GetComment.
	ListTopLevelComments(ctx context.Context, postID string, viewerID string) ([]*model.Comment, error)
	ListCommentsByParents(ctx context.Context, parentIDs []string, viewerID string) ([]*model.Comment, error)

	// Likes
	GetLike(ctx context.Context, userID, commentID string) (*model.Like, error)
	CreateLike(ctx context.Context, like *model.Like) error
	DeleteLike(ctx context.Context, userID, commentID string) error

	// Notifications
	CreateNotification(ctx context.Context, n *model.Notification) error
	ListNotifications(ctx context.Context, userID string, filter model.NotificationFilter) ([]*model.Notification, int, error) // returns notifications, total count, error
	MarkNotificationRead(ctx context.Context, id, userID string) (*model.Notification, error)
	DeleteNotification(ctx context.Context, id, userID string) error

	// External projections
	GetPost(ctx context.Context, id string) (*model.Post, error)

	// Events
	RecordEvent(ctx context.Context, event *model.Event) error
	ListEvents(ctx context.Context, postID string, limit int) ([]*model.Event, error)

	// Archive export. Full-table reads in id order, used by the sync package.
	ListAllComments(ctx context.Context) ([]*model.Comment, error)
	ListAllLikes(ctx context.Context) ([]*model.Like, error)
	ListAllNotifications(ctx context.Context) ([]*model.Notification, error)

	// Transaction support
	RunInTransaction(ctx context.Context, fn func(tx Store) error) error

	// Lifecycle
	Close() error
}
