package postgres

import (
	"database/sql"
	"encoding/json"

	"github.com/alfredjeanlab/threads/internal/model"
)

// scannable is the interface satisfied by both *sql.Row and *sql.Rows.
type scannable interface {
	Scan(dest ...any) error
}

// scanComment scans a single row into a model.Comment. The row must carry
// the columns produced by commentSelect: comment fields, author projection
// fields, like_count, and viewer_liked.
func scanComment(row scannable) (*model.Comment, error) {
	var c model.Comment
	var a model.Author
	var (
		parentID sql.NullString
		name     sql.NullString
		image    sql.NullString
		email    sql.NullString
	)

	err := row.Scan(
		&c.ID,
		&c.PostID,
		&c.UserID,
		&parentID,
		&c.Body,
		&c.CreatedAt,
		&c.UpdatedAt,
		&a.Username,
		&name,
		&image,
		&email,
		&c.LikeCount,
		&c.YouLikedThis,
	)
	if err != nil {
		return nil, err
	}

	if parentID.Valid {
		p := parentID.String
		c.ParentID = &p
	}

	a.ID = c.UserID
	a.Name = name.String
	a.Image = image.String
	a.Email = email.String
	c.Author = &a

	return &c, nil
}

// scanComments scans multiple rows into a slice of model.Comment pointers.
func scanComments(rows *sql.Rows) ([]*model.Comment, error) {
	var comments []*model.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return comments, nil
}

// scanLike scans a single row into a model.Like.
func scanLike(row scannable) (*model.Like, error) {
	var l model.Like
	if err := row.Scan(&l.UserID, &l.CommentID, &l.CreatedAt); err != nil {
		return nil, err
	}
	return &l, nil
}

// scanNotification scans a single row into a model.Notification.
func scanNotification(row scannable) (*model.Notification, error) {
	var n model.Notification
	var readAt sql.NullTime
	err := row.Scan(
		&n.ID,
		&n.NotifierID,
		&n.UserID,
		&n.Type,
		&n.PostID,
		&n.CommentID,
		&n.CreatedAt,
		&readAt,
	)
	if err != nil {
		return nil, err
	}
	if readAt.Valid {
		t := readAt.Time
		n.ReadAt = &t
	}
	return &n, nil
}

// scanNotificationWithTotal scans a row that has a leading total_count
// column followed by the standard notification columns. Used by
// queryListNotifications with COUNT(*) OVER().
func scanNotificationWithTotal(row scannable) (*model.Notification, int, error) {
	var total int
	var n model.Notification
	var readAt sql.NullTime
	err := row.Scan(
		&total,
		&n.ID,
		&n.NotifierID,
		&n.UserID,
		&n.Type,
		&n.PostID,
		&n.CommentID,
		&n.CreatedAt,
		&readAt,
	)
	if err != nil {
		return nil, 0, err
	}
	if readAt.Valid {
		t := readAt.Time
		n.ReadAt = &t
	}
	return &n, total, nil
}

// scanEvent scans a single row into a model.Event.
func scanEvent(row scannable) (*model.Event, error) {
	var e model.Event
	var (
		commentID sql.NullString
		actor     sql.NullString
		payload   []byte
	)
	err := row.Scan(&e.ID, &e.Topic, &e.PostID, &commentID, &actor, &payload, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	e.CommentID = commentID.String
	e.Actor = actor.String
	if len(payload) > 0 {
		e.Payload = json.RawMessage(payload)
	}
	return &e, nil
}

// scanEvents scans multiple rows into a slice of model.Event pointers.
func scanEvents(rows *sql.Rows) ([]*model.Event, error) {
	var events []*model.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

// nullString converts a string to sql.NullString; empty string is null.
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// nullStringPtr converts a *string to sql.NullString; nil is null.
func nullStringPtr(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
