package sync

import (
	"context"
	"database/sql"
	"sort"

	"github.com/alfredjeanlab/threads/internal/model"
	"github.com/alfredjeanlab/threads/internal/store"
)

// mockStore is a minimal in-memory store for archive tests. Only the
// ListAll* methods carry real behavior.
type mockStore struct {
	comments      map[string]*model.Comment
	likes         []*model.Like
	notifications map[string]*model.Notification
}

func newMockStore() *mockStore {
	return &mockStore{
		comments:      make(map[string]*model.Comment),
		notifications: make(map[string]*model.Notification),
	}
}

var _ store.Store = (*mockStore)(nil)

func (m *mockStore) ListAllComments(_ context.Context) ([]*model.Comment, error) {
	var result []*model.Comment
	for _, c := range m.comments {
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockStore) ListAllLikes(_ context.Context) ([]*model.Like, error) {
	result := make([]*model.Like, len(m.likes))
	copy(result, m.likes)
	sort.Slice(result, func(i, j int) bool { return result[i].CommentID < result[j].CommentID })
	return result, nil
}

func (m *mockStore) ListAllNotifications(_ context.Context) ([]*model.Notification, error) {
	var result []*model.Notification
	for _, n := range m.notifications {
		result = append(result, n)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockStore) CreateComment(_ context.Context, c *model.Comment) error {
	m.comments[c.ID] = c
	return nil
}

func (m *mockStore) GetComment(_ context.Context, id, _ string) (*model.Comment, error) {
	c, ok := m.comments[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return c, nil
}

func (m *mockStore) UpdateCommentBody(_ context.Context, id, body string) error {
	c, ok := m.comments[id]
	if !ok {
		return sql.ErrNoRows
	}
	c.Body = body
	return nil
}

func (m *mockStore) DeleteComment(_ context.Context, id string) error {
	delete(m.comments, id)
	return nil
}

func (m *mockStore) CountCommentsByPost(_ context.Context, postID string) (int, error) {
	count := 0
	for _, c := range m.comments {
		if c.PostID == postID {
			count++
		}
	}
	return count, nil
}

func (m *mockStore) ListTopLevelComments(_ context.Context, _, _ string) ([]*model.Comment, error) {
	return nil, nil
}

func (m *mockStore) ListCommentsByParents(_ context.Context, _ []string, _ string) ([]*model.Comment, error) {
	return nil, nil
}

func (m *mockStore) GetLike(_ context.Context, _, _ string) (*model.Like, error) {
	return nil, sql.ErrNoRows
}

func (m *mockStore) CreateLike(_ context.Context, l *model.Like) error {
	m.likes = append(m.likes, l)
	return nil
}

func (m *mockStore) DeleteLike(_ context.Context, _, _ string) error { return nil }

func (m *mockStore) CreateNotification(_ context.Context, n *model.Notification) error {
	m.notifications[n.ID] = n
	return nil
}

func (m *mockStore) ListNotifications(_ context.Context, _ string, _ model.NotificationFilter) ([]*model.Notification, int, error) {
	return nil, 0, nil
}

func (m *mockStore) MarkNotificationRead(_ context.Context, _, _ string) (*model.Notification, error) {
	return nil, sql.ErrNoRows
}

func (m *mockStore) DeleteNotification(_ context.Context, _, _ string) error {
	return nil
}

func (m *mockStore) GetPost(_ context.Context, _ string) (*model.Post, error) {
	return nil, sql.ErrNoRows
}

func (m *mockStore) RecordEvent(_ context.Context, _ *model.Event) error { return nil }

func (m *mockStore) ListEvents(_ context.Context, _ string, _ int) ([]*model.Event, error) {
	return nil, nil
}

func (m *mockStore) RunInTransaction(_ context.Context, fn func(tx store.Store) error) error {
	return fn(m)
}

func (m *mockStore) Close() error { return nil }
