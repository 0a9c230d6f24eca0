package server

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/alfredjeanlab/threads/internal/model"
	"github.com/alfredjeanlab/threads/internal/store"
)

// mockStore is a map-backed store.Store used by the service and HTTP tests.
// Creation order drives timestamps so list ordering is deterministic.
type mockStore struct {
	mu            sync.Mutex
	seq           int
	comments      map[string]*model.Comment
	likes         map[string]*model.Like // keyed userID + "|" + commentID
	notifications map[string]*model.Notification
	posts         map[string]*model.Post
	authors       map[string]*model.Author
	events        []*model.Event

	// Injectable failures.
	createCommentErr      error
	createNotificationErr error
	recordEventErr        error
	pingErr               error
}

func newMockStore() *mockStore {
	return &mockStore{
		comments:      make(map[string]*model.Comment),
		likes:         make(map[string]*model.Like),
		notifications: make(map[string]*model.Notification),
		posts:         make(map[string]*model.Post),
		authors:       make(map[string]*model.Author),
	}
}

var _ store.Store = (*mockStore)(nil)

// Ping lets the health endpoint report store trouble in tests.
func (m *mockStore) Ping(_ context.Context) error { return m.pingErr }

func likeKey(userID, commentID string) string { return userID + "|" + commentID }

// tick returns a strictly increasing timestamp. Callers must hold mu.
func (m *mockStore) tick() time.Time {
	m.seq++
	return time.Unix(1700000000, 0).UTC().Add(time.Duration(m.seq) * time.Second)
}

// project returns a copy of c with author, like count, and viewer like
// attached, the way the real store's comment queries do. Callers must hold mu.
func (m *mockStore) project(c *model.Comment, viewerID string) *model.Comment {
	out := *c
	for _, l := range m.likes {
		if l.CommentID == c.ID {
			out.LikeCount++
			if viewerID != "" && l.UserID == viewerID {
				out.YouLikedThis = true
			}
		}
	}
	if a, ok := m.authors[c.UserID]; ok {
		cp := *a
		out.Author = &cp
	}
	return &out
}

func (m *mockStore) CreateComment(_ context.Context, c *model.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createCommentErr != nil {
		return m.createCommentErr
	}
	now := m.tick()
	c.CreatedAt = now
	c.UpdatedAt = now
	cp := *c
	m.comments[c.ID] = &cp
	return nil
}

func (m *mockStore) GetComment(_ context.Context, id, viewerID string) (*model.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.comments[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return m.project(c, viewerID), nil
}

func (m *mockStore) UpdateCommentBody(_ context.Context, id, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.comments[id]
	if !ok {
		return sql.ErrNoRows
	}
	c.Body = body
	c.UpdatedAt = m.tick()
	return nil
}

func (m *mockStore) DeleteComment(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.comments[id]; !ok {
		return sql.ErrNoRows
	}
	m.deleteCommentLocked(id)
	return nil
}

// deleteCommentLocked mirrors the database's ON DELETE CASCADE: replies,
// likes, and notifications hanging off the comment go with it.
func (m *mockStore) deleteCommentLocked(id string) {
	delete(m.comments, id)
	for key, l := range m.likes {
		if l.CommentID == id {
			delete(m.likes, key)
		}
	}
	for nid, n := range m.notifications {
		if n.CommentID == id {
			delete(m.notifications, nid)
		}
	}
	for cid, c := range m.comments {
		if c.ParentID != nil && *c.ParentID == id {
			m.deleteCommentLocked(cid)
		}
	}
}

func (m *mockStore) CountCommentsByPost(_ context.Context, postID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, c := range m.comments {
		if c.PostID == postID {
			count++
		}
	}
	return count, nil
}

func (m *mockStore) ListTopLevelComments(_ context.Context, postID, viewerID string) ([]*model.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Comment
	for _, c := range m.comments {
		if c.PostID == postID && c.ParentID == nil {
			out = append(out, m.project(c, viewerID))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *mockStore) ListCommentsByParents(_ context.Context, parentIDs []string, viewerID string) ([]*model.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	parents := make(map[string]bool, len(parentIDs))
	for _, id := range parentIDs {
		parents[id] = true
	}
	var out []*model.Comment
	for _, c := range m.comments {
		if c.ParentID != nil && parents[*c.ParentID] {
			out = append(out, m.project(c, viewerID))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *mockStore) GetLike(_ context.Context, userID, commentID string) (*model.Like, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.likes[likeKey(userID, commentID)]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *l
	return &cp, nil
}

func (m *mockStore) CreateLike(_ context.Context, like *model.Like) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	like.CreatedAt = m.tick()
	cp := *like
	m.likes[likeKey(like.UserID, like.CommentID)] = &cp
	return nil
}

func (m *mockStore) DeleteLike(_ context.Context, userID, commentID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := likeKey(userID, commentID)
	if _, ok := m.likes[key]; !ok {
		return sql.ErrNoRows
	}
	delete(m.likes, key)
	return nil
}

func (m *mockStore) CreateNotification(_ context.Context, n *model.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createNotificationErr != nil {
		return m.createNotificationErr
	}
	n.CreatedAt = m.tick()
	cp := *n
	m.notifications[n.ID] = &cp
	return nil
}

func (m *mockStore) ListNotifications(_ context.Context, userID string, filter model.NotificationFilter) ([]*model.Notification, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Notification
	for _, n := range m.notifications {
		if n.UserID != userID {
			continue
		}
		if filter.UnreadOnly && n.ReadAt != nil {
			continue
		}
		cp := *n
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	total := len(out)
	if filter.Offset > 0 {
		if filter.Offset >= len(out) {
			out = nil
		} else {
			out = out[filter.Offset:]
		}
	}
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, total, nil
}

func (m *mockStore) MarkNotificationRead(_ context.Context, id, userID string) (*model.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.notifications[id]
	if !ok || n.UserID != userID {
		return nil, sql.ErrNoRows
	}
	if n.ReadAt == nil {
		now := m.tick()
		n.ReadAt = &now
	}
	cp := *n
	return &cp, nil
}

func (m *mockStore) DeleteNotification(_ context.Context, id, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.notifications[id]
	if !ok || n.UserID != userID {
		return sql.ErrNoRows
	}
	delete(m.notifications, id)
	return nil
}

func (m *mockStore) GetPost(_ context.Context, id string) (*model.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.posts[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := *p
	return &cp, nil
}

func (m *mockStore) RecordEvent(_ context.Context, event *model.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.recordEventErr != nil {
		return m.recordEventErr
	}
	event.ID = int64(len(m.events) + 1)
	event.CreatedAt = m.tick()
	cp := *event
	m.events = append(m.events, &cp)
	return nil
}

func (m *mockStore) ListEvents(_ context.Context, postID string, limit int) ([]*model.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if limit <= 0 {
		limit = 100
	}
	var out []*model.Event
	for i := len(m.events) - 1; i >= 0 && len(out) < limit; i-- {
		e := m.events[i]
		if postID != "" && e.PostID != postID {
			continue
		}
		cp := *e
		out = append(out, &cp)
	}
	return out, nil
}

func (m *mockStore) ListAllComments(_ context.Context) ([]*model.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Comment
	for _, c := range m.comments {
		out = append(out, m.project(c, ""))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockStore) ListAllLikes(_ context.Context) ([]*model.Like, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Like
	for _, l := range m.likes {
		cp := *l
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CommentID < out[j].CommentID })
	return out, nil
}

func (m *mockStore) ListAllNotifications(_ context.Context) ([]*model.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Notification
	for _, n := range m.notifications {
		cp := *n
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockStore) RunInTransaction(_ context.Context, fn func(tx store.Store) error) error {
	return fn(m)
}

func (m *mockStore) Close() error { return nil }

// Seeding helpers.

func (m *mockStore) addPost(id, ownerID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.posts[id] = &model.Post{ID: id, UserID: ownerID}
}

func (m *mockStore) addAuthor(a *model.Author) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.authors[a.ID] = a
}

func (m *mockStore) notificationCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.notifications)
}

func (m *mockStore) notificationsFor(userID string) []*model.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Notification
	for _, n := range m.notifications {
		if n.UserID == userID {
			cp := *n
			out = append(out, &cp)
		}
	}
	return out
}

func (m *mockStore) commentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.comments)
}

func (m *mockStore) storedBody(id string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.comments[id]; ok {
		return c.Body
	}
	return ""
}

func (m *mockStore) lastEvent() *model.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.events) == 0 {
		return nil
	}
	return m.events[len(m.events)-1]
}

func (m *mockStore) eventCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.events)
}
