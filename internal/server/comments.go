package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alfredjeanlab/threads/internal/events"
	"github.com/alfredjeanlab/threads/internal/idgen"
	"github.com/alfredjeanlab/threads/internal/model"
	"github.com/alfredjeanlab/threads/internal/store"
)

// createCommentInput carries the request fields for creating a comment.
type createCommentInput struct {
	PostID   string  `json:"postId"`
	ParentID *string `json:"parentId,omitempty"`
	Body     string  `json:"body"`
}

// editCommentInput carries the request fields for editing a comment body.
type editCommentInput struct {
	Body string `json:"body"`
}

// createComment inserts a new comment and, in the same transaction, at most
// one notification: the parent comment's author for a reply, otherwise the
// post's author for a top-level comment. The comment's own author is never
// notified about their own activity.
func (s *ThreadsServer) createComment(ctx context.Context, actor Identity, in createCommentInput) (*model.Comment, error) {
	if actor.Anonymous() {
		return nil, errUnauthenticated
	}

	id, err := idgen.Comment()
	if err != nil {
		return nil, fmt.Errorf("generate comment id: %w", err)
	}
	comment := &model.Comment{
		ID:       id,
		PostID:   in.PostID,
		UserID:   actor.UserID,
		ParentID: in.ParentID,
		Body:     in.Body,
	}
	if err := model.ValidateComment(comment); err != nil {
		return nil, err
	}

	post, err := s.store.GetPost(ctx, in.PostID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFoundError("post not found")
	}
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}

	// Pick the notification recipient before opening the transaction. A reply
	// notifies the parent comment's author and never falls back to the post
	// author; a top-level comment notifies the post author. Self-notification
	// is suppressed in both cases.
	var recipient string
	var notifType model.NotificationType
	if in.ParentID != nil {
		parent, err := s.store.GetComment(ctx, *in.ParentID, "")
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFoundError("parent comment not found")
		}
		if err != nil {
			return nil, fmt.Errorf("get parent comment: %w", err)
		}
		if parent.PostID != in.PostID {
			return nil, inputError("parent comment belongs to a different post")
		}
		if parent.UserID != actor.UserID {
			recipient = parent.UserID
			notifType = model.NotificationNewReply
		}
	} else if post.UserID != actor.UserID {
		recipient = post.UserID
		notifType = model.NotificationNewComment
	}

	var notification *model.Notification
	err = s.store.RunInTransaction(ctx, func(tx store.Store) error {
		if err := tx.CreateComment(ctx, comment); err != nil {
			return fmt.Errorf("create comment: %w", err)
		}
		if recipient == "" {
			return nil
		}
		nid, err := idgen.Notification()
		if err != nil {
			return fmt.Errorf("generate notification id: %w", err)
		}
		notification = &model.Notification{
			ID:         nid,
			NotifierID: actor.UserID,
			UserID:     recipient,
			Type:       notifType,
			PostID:     in.PostID,
			CommentID:  comment.ID,
		}
		if err := tx.CreateNotification(ctx, notification); err != nil {
			return fmt.Errorf("create notification: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.recordAndPublish(ctx, events.TopicCommentCreated, comment.PostID, comment.ID, actor.UserID,
		events.CommentCreated{Comment: comment})
	if notification != nil {
		s.recordAndPublish(ctx, events.TopicNotificationCreated, notification.PostID, notification.CommentID, actor.UserID,
			events.NotificationCreated{Notification: notification})
	}

	return comment, nil
}

// getComment fetches a single comment with like data scoped to the viewer.
func (s *ThreadsServer) getComment(ctx context.Context, viewer Identity, id string) (*model.Comment, error) {
	comment, err := s.store.GetComment(ctx, id, viewer.UserID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFoundError("comment not found")
	}
	if err != nil {
		return nil, fmt.Errorf("get comment: %w", err)
	}
	return comment, nil
}

// editComment replaces a comment's body. Only the comment's author may edit
// it. Submitting the stored body unchanged skips the write entirely and
// returns the comment as-is.
func (s *ThreadsServer) editComment(ctx context.Context, actor Identity, id string, in editCommentInput) (*model.Comment, error) {
	if actor.Anonymous() {
		return nil, errUnauthenticated
	}
	if err := model.ValidateCommentBody(in.Body); err != nil {
		return nil, err
	}

	comment, err := s.store.GetComment(ctx, id, actor.UserID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFoundError("comment not found")
	}
	if err != nil {
		return nil, fmt.Errorf("get comment: %w", err)
	}
	if comment.UserID != actor.UserID {
		return nil, errForbidden
	}

	if comment.Body == in.Body {
		return comment, nil
	}

	if err := s.store.UpdateCommentBody(ctx, id, in.Body); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFoundError("comment not found")
		}
		return nil, fmt.Errorf("update comment body: %w", err)
	}

	// Re-fetch so the response carries the store's updated_at, not a
	// client-side approximation of it.
	updated, err := s.store.GetComment(ctx, id, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("reload comment: %w", err)
	}

	s.recordAndPublish(ctx, events.TopicCommentUpdated, updated.PostID, updated.ID, actor.UserID,
		events.CommentUpdated{Comment: updated})

	return updated, nil
}

// deleteComment removes a comment and, via cascade, its replies and likes.
// Only the comment's author may delete it. Returns the deleted comment's id.
func (s *ThreadsServer) deleteComment(ctx context.Context, actor Identity, id string) (string, error) {
	if actor.Anonymous() {
		return "", errUnauthenticated
	}

	comment, err := s.store.GetComment(ctx, id, "")
	if errors.Is(err, sql.ErrNoRows) {
		return "", notFoundError("comment not found")
	}
	if err != nil {
		return "", fmt.Errorf("get comment: %w", err)
	}
	if comment.UserID != actor.UserID {
		return "", errForbidden
	}

	if err := s.store.DeleteComment(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", notFoundError("comment not found")
		}
		return "", fmt.Errorf("delete comment: %w", err)
	}

	s.recordAndPublish(ctx, events.TopicCommentDeleted, comment.PostID, id, actor.UserID,
		events.CommentDeleted{CommentID: id, PostID: comment.PostID})

	return id, nil
}

// toggleLike flips the caller's like on a comment. It returns the like record
// and whether this call created it; false means an existing like was removed.
// Likes never notify anyone.
func (s *ThreadsServer) toggleLike(ctx context.Context, actor Identity, commentID string) (*model.Like, bool, error) {
	if actor.Anonymous() {
		return nil, false, errUnauthenticated
	}

	comment, err := s.store.GetComment(ctx, commentID, "")
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, notFoundError("comment not found")
	}
	if err != nil {
		return nil, false, fmt.Errorf("get comment: %w", err)
	}

	existing, err := s.store.GetLike(ctx, actor.UserID, commentID)
	if err == nil {
		if err := s.store.DeleteLike(ctx, actor.UserID, commentID); err != nil {
			return nil, false, fmt.Errorf("delete like: %w", err)
		}
		s.recordAndPublish(ctx, events.TopicLikeRemoved, comment.PostID, commentID, actor.UserID,
			events.LikeRemoved{Like: existing})
		return existing, false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, fmt.Errorf("get like: %w", err)
	}

	like := &model.Like{UserID: actor.UserID, CommentID: commentID}
	if err := s.store.CreateLike(ctx, like); err != nil {
		return nil, false, fmt.Errorf("create like: %w", err)
	}

	s.recordAndPublish(ctx, events.TopicLikeAdded, comment.PostID, commentID, actor.UserID,
		events.LikeAdded{Like: like})

	return like, true, nil
}
