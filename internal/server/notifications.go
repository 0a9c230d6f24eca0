package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alfredjeanlab/threads/internal/model"
)

// listNotifications returns the caller's notifications, newest first, along
// with the total matching the filter before limit/offset.
func (s *ThreadsServer) listNotifications(ctx context.Context, actor Identity, filter model.NotificationFilter) ([]*model.Notification, int, error) {
	if actor.Anonymous() {
		return nil, 0, errUnauthenticated
	}
	notifications, total, err := s.store.ListNotifications(ctx, actor.UserID, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("list notifications: %w", err)
	}
	return notifications, total, nil
}

// markNotificationRead stamps a notification as read. Marking an
// already-read notification keeps the original read time. Callers can only
// touch their own notifications; anything else reads as not found.
func (s *ThreadsServer) markNotificationRead(ctx context.Context, actor Identity, id string) (*model.Notification, error) {
	if actor.Anonymous() {
		return nil, errUnauthenticated
	}
	notification, err := s.store.MarkNotificationRead(ctx, id, actor.UserID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFoundError("notification not found")
	}
	if err != nil {
		return nil, fmt.Errorf("mark notification read: %w", err)
	}
	return notification, nil
}

// dismissNotification deletes one of the caller's notifications.
func (s *ThreadsServer) dismissNotification(ctx context.Context, actor Identity, id string) error {
	if actor.Anonymous() {
		return errUnauthenticated
	}
	err := s.store.DeleteNotification(ctx, id, actor.UserID)
	if errors.Is(err, sql.ErrNoRows) {
		return notFoundError("notification not found")
	}
	if err != nil {
		return fmt.Errorf("delete notification: %w", err)
	}
	return nil
}
