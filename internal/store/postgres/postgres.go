// Package postgres implements the store.Store interface backed by PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"

	"github.com/alfredjeanlab/threads/internal/model"
	"github.com/alfredjeanlab/threads/internal/store"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// PostgresStore implements store.Store backed by a PostgreSQL database.
type PostgresStore struct {
	db *sql.DB
}

// Compile-time check that PostgresStore implements store.Store.
var _ store.Store = (*PostgresStore)(nil)

// New opens a connection to the PostgreSQL database at the given URL,
// configures the connection pool, and runs any pending migrations.
func New(databaseURL string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

func runMigrations(db *sql.DB) error {
	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	dbDriver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration db driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "postgres", dbDriver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}

// Ping verifies the database connection is alive.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the underlying database connection.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) CreateComment(ctx context.Context, comment *model.Comment) error {
	return queryCreateComment(ctx, s.db, comment)
}

func (s *PostgresStore) GetComment(ctx context.Context, id, viewerID string) (*model.Comment, error) {
	return queryGetComment(ctx, s.db, id, viewerID)
}

func (s *PostgresStore) UpdateCommentBody(ctx context.Context, id, body string) error {
	return queryUpdateCommentBody(ctx, s.db, id, body)
}

func (s *PostgresStore) DeleteComment(ctx context.Context, id string) error {
	return queryDeleteComment(ctx, s.db, id)
}

func (s *PostgresStore) CountCommentsByPost(ctx context.Context, postID string) (int, error) {
	return queryCountCommentsByPost(ctx, s.db, postID)
}

func (s *PostgresStore) ListTopLevelComments(ctx context.Context, postID, viewerID string) ([]*model.Comment, error) {
	return queryListTopLevelComments(ctx, s.db, postID, viewerID)
}

func (s *PostgresStore) ListCommentsByParents(ctx context.Context, parentIDs []string, viewerID string) ([]*model.Comment, error) {
	return queryListCommentsByParents(ctx, s.db, parentIDs, viewerID)
}

func (s *PostgresStore) GetLike(ctx context.Context, userID, commentID string) (*model.Like, error) {
	return queryGetLike(ctx, s.db, userID, commentID)
}

func (s *PostgresStore) CreateLike(ctx context.Context, like *model.Like) error {
	return queryCreateLike(ctx, s.db, like)
}

func (s *PostgresStore) DeleteLike(ctx context.Context, userID, commentID string) error {
	return queryDeleteLike(ctx, s.db, userID, commentID)
}

func (s *PostgresStore) CreateNotification(ctx context.Context, n *model.Notification) error {
	return queryCreateNotification(ctx, s.db, n)
}

func (s *PostgresStore) ListNotifications(ctx context.Context, userID string, filter model.NotificationFilter) ([]*model.Notification, int, error) {
	return queryListNotifications(ctx, s.db, userID, filter)
}

func (s *PostgresStore) MarkNotificationRead(ctx context.Context, id, userID string) (*model.Notification, error) {
	return queryMarkNotificationRead(ctx, s.db, id, userID)
}

func (s *PostgresStore) DeleteNotification(ctx context.Context, id, userID string) error {
	return queryDeleteNotification(ctx, s.db, id, userID)
}

func (s *PostgresStore) GetPost(ctx context.Context, id string) (*model.Post, error) {
	return queryGetPost(ctx, s.db, id)
}

func (s *PostgresStore) RecordEvent(ctx context.Context, event *model.Event) error {
	return queryRecordEvent(ctx, s.db, event)
}

func (s *PostgresStore) ListEvents(ctx context.Context, postID string, limit int) ([]*model.Event, error) {
	return queryListEvents(ctx, s.db, postID, limit)
}

func (s *PostgresStore) ListAllComments(ctx context.Context) ([]*model.Comment, error) {
	return queryListAllComments(ctx, s.db)
}

func (s *PostgresStore) ListAllLikes(ctx context.Context) ([]*model.Like, error) {
	return queryListAllLikes(ctx, s.db)
}

func (s *PostgresStore) ListAllNotifications(ctx context.Context) ([]*model.Notification, error) {
	return queryListAllNotifications(ctx, s.db)
}

// RunInTransaction begins a database transaction, creates a txStore that
// delegates to it, calls fn, and commits on success or rolls back on error.
func (s *PostgresStore) RunInTransaction(ctx context.Context, fn func(tx store.Store) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	txS := &txStore{tx: tx}
	if err := fn(txS); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// txStore implements store.Store using a *sql.Tx.
type txStore struct {
	tx *sql.Tx
}

// Compile-time check that txStore implements store.Store.
var _ store.Store = (*txStore)(nil)

func (s *txStore) CreateComment(ctx context.Context, comment *model.Comment) error {
	return queryCreateComment(ctx, s.tx, comment)
}

func (s *txStore) GetComment(ctx context.Context, id, viewerID string) (*model.Comment, error) {
	return queryGetComment(ctx, s.tx, id, viewerID)
}

func (s *txStore) UpdateCommentBody(ctx context.Context, id, body string) error {
	return queryUpdateCommentBody(ctx, s.tx, id, body)
}

func (s *txStore) DeleteComment(ctx context.Context, id string) error {
	return queryDeleteComment(ctx, s.tx, id)
}

func (s *txStore) CountCommentsByPost(ctx context.Context, postID string) (int, error) {
	return queryCountCommentsByPost(ctx, s.tx, postID)
}

func (s *txStore) ListTopLevelComments(ctx context.Context, postID, viewerID string) ([]*model.Comment, error) {
	return queryListTopLevelComments(ctx, s.tx, postID, viewerID)
}

func (s *txStore) ListCommentsByParents(ctx context.Context, parentIDs []string, viewerID string) ([]*model.Comment, error) {
	return queryListCommentsByParents(ctx, s.tx, parentIDs, viewerID)
}

func (s *txStore) GetLike(ctx context.Context, userID, commentID string) (*model.Like, error) {
	return queryGetLike(ctx, s.tx, userID, commentID)
}

func (s *txStore) CreateLike(ctx context.Context, like *model.Like) error {
	return queryCreateLike(ctx, s.tx, like)
}

func (s *txStore) DeleteLike(ctx context.Context, userID, commentID string) error {
	return queryDeleteLike(ctx, s.tx, userID, commentID)
}

func (s *txStore) CreateNotification(ctx context.Context, n *model.Notification) error {
	return queryCreateNotification(ctx, s.tx, n)
}

func (s *txStore) ListNotifications(ctx context.Context, userID string, filter model.NotificationFilter) ([]*model.Notification, int, error) {
	return queryListNotifications(ctx, s.tx, userID, filter)
}

func (s *txStore) MarkNotificationRead(ctx context.Context, id, userID string) (*model.Notification, error) {
	return queryMarkNotificationRead(ctx, s.tx, id, userID)
}

func (s *txStore) DeleteNotification(ctx context.Context, id, userID string) error {
	return queryDeleteNotification(ctx, s.tx, id, userID)
}

func (s *txStore) GetPost(ctx context.Context, id string) (*model.Post, error) {
	return queryGetPost(ctx, s.tx, id)
}

func (s *txStore) RecordEvent(ctx context.Context, event *model.Event) error {
	return queryRecordEvent(ctx, s.tx, event)
}

func (s *txStore) ListEvents(ctx context.Context, postID string, limit int) ([]*model.Event, error) {
	return queryListEvents(ctx, s.tx, postID, limit)
}

func (s *txStore) ListAllComments(ctx context.Context) ([]*model.Comment, error) {
	return queryListAllComments(ctx, s.tx)
}

func (s *txStore) ListAllLikes(ctx context.Context) ([]*model.Like, error) {
	return queryListAllLikes(ctx, s.tx)
}

func (s *txStore) ListAllNotifications(ctx context.Context) ([]*model.Notification, error) {
	return queryListAllNotifications(ctx, s.tx)
}

// RunInTransaction on a txStore reuses the existing transaction (no nesting).
func (s *txStore) RunInTransaction(ctx context.Context, fn func(tx store.Store) error) error {
	return fn(s)
}

// Close is a no-op for a transaction store; the parent store owns the connection.
func (s *txStore) Close() error {
	return nil
}
