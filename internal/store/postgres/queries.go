package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/alfredjeanlab/threads/internal/model"
)

// commentSelect is the SELECT head shared by every comment query. It joins
// the users projection for the author fields and aggregates likes per
// comment. $1 is always the viewer id ("" for anonymous), so that
// viewer_liked can be computed in the same statement.
const commentSelect = `
	SELECT c.id, c.post_id, c.user_id, c.parent_id, c.body, c.created_at, c.updated_at,
		u.username, u.name, u.image, u.email,
		(SELECT COUNT(*) FROM likes l WHERE l.comment_id = c.id) AS like_count,
		EXISTS (SELECT 1 FROM likes l WHERE l.comment_id = c.id AND l.user_id = $1) AS viewer_liked
	FROM comments c
	JOIN users u ON u.id = c.user_id`

// executor is the interface satisfied by both *sql.DB and *sql.Tx.
type executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func queryCreateComment(ctx context.Context, db executor, c *model.Comment) error {
	return db.QueryRowContext(ctx, `
		INSERT INTO comments (id, post_id, user_id, parent_id, body)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`,
		c.ID, c.PostID, c.UserID, nullStringPtr(c.ParentID), c.Body,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
}

func queryGetComment(ctx context.Context, db executor, id, viewerID string) (*model.Comment, error) {
	row := db.QueryRowContext(ctx, commentSelect+` WHERE c.id = $2`, viewerID, id)
	return scanComment(row)
}

func queryUpdateCommentBody(ctx context.Context, db executor, id, body string) error {
	res, err := db.ExecContext(ctx, `
		UPDATE comments SET body = $2, updated_at = NOW()
		WHERE id = $1`,
		id, body,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// queryDeleteComment removes a comment. Descendant comments, likes, and
// notifications referencing the subtree go with it via ON DELETE CASCADE.
func queryDeleteComment(ctx context.Context, db executor, id string) error {
	res, err := db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func queryCountCommentsByPost(ctx context.Context, db executor, postID string) (int, error) {
	var n int
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM comments WHERE post_id = $1`, postID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count comments: %w", err)
	}
	return n, nil
}

func queryListTopLevelComments(ctx context.Context, db executor, postID, viewerID string) ([]*model.Comment, error) {
	rows, err := db.QueryContext(ctx, commentSelect+`
		WHERE c.post_id = $2 AND c.parent_id IS NULL
		ORDER BY c.created_at DESC`,
		viewerID, postID,
	)
	if err != nil {
		return nil, fmt.Errorf("list top-level comments: %w", err)
	}
	defer rows.Close()
	return scanComments(rows)
}

func queryListCommentsByParents(ctx context.Context, db executor, parentIDs []string, viewerID string) ([]*model.Comment, error) {
	if len(parentIDs) == 0 {
		return nil, nil
	}
	rows, err := db.QueryContext(ctx, commentSelect+`
		WHERE c.parent_id = ANY($2)
		ORDER BY c.created_at ASC`,
		viewerID, pq.Array(parentIDs),
	)
	if err != nil {
		return nil, fmt.Errorf("list comments by parents: %w", err)
	}
	defer rows.Close()
	return scanComments(rows)
}

func queryGetLike(ctx context.Context, db executor, userID, commentID string) (*model.Like, error) {
	row := db.QueryRowContext(ctx, `
		SELECT user_id, comment_id, created_at
		FROM likes
		WHERE user_id = $1 AND comment_id = $2`,
		userID, commentID,
	)
	return scanLike(row)
}

func queryCreateLike(ctx context.Context, db executor, l *model.Like) error {
	return db.QueryRowContext(ctx, `
		INSERT INTO likes (user_id, comment_id)
		VALUES ($1, $2)
		RETURNING created_at`,
		l.UserID, l.CommentID,
	).Scan(&l.CreatedAt)
}

func queryDeleteLike(ctx context.Context, db executor, userID, commentID string) error {
	res, err := db.ExecContext(ctx, `
		DELETE FROM likes
		WHERE user_id = $1 AND comment_id = $2`,
		userID, commentID,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func queryCreateNotification(ctx context.Context, db executor, n *model.Notification) error {
	return db.QueryRowContext(ctx, `
		INSERT INTO notifications (id, notifier_id, user_id, type, post_id, comment_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`,
		n.ID, n.NotifierID, n.UserID, string(n.Type), n.PostID, n.CommentID,
	).Scan(&n.CreatedAt)
}

func queryListNotifications(ctx context.Context, db executor, userID string, filter model.NotificationFilter) ([]*model.Notification, int, error) {
	query := `
		SELECT COUNT(*) OVER() AS total_count,
			id, notifier_id, user_id, type, post_id, comment_id, created_at, read_at
		FROM notifications
		WHERE user_id = $1`
	args := []any{userID}
	argIdx := 1

	nextArg := func() string {
		argIdx++
		return fmt.Sprintf("$%d", argIdx)
	}

	if filter.UnreadOnly {
		query += " AND read_at IS NULL"
	}
	query += " ORDER BY created_at DESC"

	if filter.Limit > 0 {
		query += " LIMIT " + nextArg()
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		query += " OFFSET " + nextArg()
		args = append(args, filter.Offset)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*model.Notification
	var total int
	for rows.Next() {
		n, t, err := scanNotificationWithTotal(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan notifications: %w", err)
		}
		total = t
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("scan notifications: %w", err)
	}

	return notifications, total, nil
}

// queryMarkNotificationRead stamps read_at, keeping the first read time on
// repeat calls. The user_id guard scopes the update to the recipient, so a
// foreign id surfaces as sql.ErrNoRows.
func queryMarkNotificationRead(ctx context.Context, db executor, id, userID string) (*model.Notification, error) {
	row := db.QueryRowContext(ctx, `
		UPDATE notifications SET read_at = COALESCE(read_at, NOW())
		WHERE id = $1 AND user_id = $2
		RETURNING id, notifier_id, user_id, type, post_id, comment_id, created_at, read_at`,
		id, userID,
	)
	return scanNotification(row)
}

func queryDeleteNotification(ctx context.Context, db executor, id, userID string) error {
	res, err := db.ExecContext(ctx, `
		DELETE FROM notifications
		WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func queryGetPost(ctx context.Context, db executor, id string) (*model.Post, error) {
	var p model.Post
	err := db.QueryRowContext(ctx, `SELECT id, user_id FROM posts WHERE id = $1`, id).Scan(&p.ID, &p.UserID)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func queryRecordEvent(ctx context.Context, db executor, e *model.Event) error {
	return db.QueryRowContext(ctx, `
		INSERT INTO events (topic, post_id, comment_id, actor, payload)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		e.Topic, e.PostID, nullString(e.CommentID), e.Actor, []byte(e.Payload),
	).Scan(&e.ID, &e.CreatedAt)
}

// queryListAllComments returns every comment with the same projections the
// read paths attach, ordered by id for stable archive output.
func queryListAllComments(ctx context.Context, db executor) ([]*model.Comment, error) {
	rows, err := db.QueryContext(ctx, commentSelect+` ORDER BY c.id`, "")
	if err != nil {
		return nil, fmt.Errorf("list all comments: %w", err)
	}
	defer rows.Close()
	return scanComments(rows)
}

func queryListAllLikes(ctx context.Context, db executor) ([]*model.Like, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT user_id, comment_id, created_at
		FROM likes
		ORDER BY comment_id, user_id`)
	if err != nil {
		return nil, fmt.Errorf("list all likes: %w", err)
	}
	defer rows.Close()

	var likes []*model.Like
	for rows.Next() {
		l, err := scanLike(rows)
		if err != nil {
			return nil, err
		}
		likes = append(likes, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return likes, nil
}

func queryListAllNotifications(ctx context.Context, db executor) ([]*model.Notification, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, notifier_id, user_id, type, post_id, comment_id, created_at, read_at
		FROM notifications
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list all notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*model.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return notifications, nil
}

func queryListEvents(ctx context.Context, db executor, postID string, limit int) ([]*model.Event, error) {
	if limit <= 0 {
		limit = 100
	}

	query := `
		SELECT id, topic, post_id, comment_id, actor, payload, created_at
		FROM events`
	args := []any{}
	if postID != "" {
		query += ` WHERE post_id = $1`
		args = append(args, postID)
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d`, len(args)+1)
	args = append(args, limit)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()
	return scanEvents(rows)
}
