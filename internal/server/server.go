// Package server implements the comment service: the service methods that
// back every operation, the HTTP/JSON transport, and the SSE event stream.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/alfredjeanlab/threads/internal/events"
	"github.com/alfredjeanlab/threads/internal/model"
	"github.com/alfredjeanlab/threads/internal/presence"
	"github.com/alfredjeanlab/threads/internal/store"
)

// ThreadsServer holds the service state shared by all transports.
type ThreadsServer struct {
	store     store.Store
	publisher events.Publisher
	sseHub    *sseHub
	Presence  *presence.Tracker

	// PresenceTTL is how long since the last heartbeat a viewer still counts
	// as present. Zero means presence.DefaultStaleThreshold.
	PresenceTTL time.Duration
}

// NewThreadsServer returns a new ThreadsServer backed by the given store and publisher.
func NewThreadsServer(s store.Store, p events.Publisher) *ThreadsServer {
	return &ThreadsServer{
		store:     s,
		publisher: p,
		sseHub:    newSSEHub(),
		Presence:  presence.New(),
	}
}

// Identity is the caller identity resolved at the transport boundary.
// A zero Identity is an anonymous caller.
type Identity struct {
	UserID string
}

// Anonymous reports whether the identity carries no user.
func (id Identity) Anonymous() bool { return id.UserID == "" }

// recordAndPublish persists an event to the store and publishes it to NATS.
// Both operations are best-effort; failures are logged but do not block the caller.
func (s *ThreadsServer) recordAndPublish(ctx context.Context, topic, postID, commentID, actor string, event any) {
	payload, err := json.Marshal(event)
	if err != nil {
		slog.Warn("failed to marshal event", "topic", topic, "post_id", postID, "error", err)
		return
	}
	if err := s.store.RecordEvent(ctx, &model.Event{
		Topic:     topic,
		PostID:    postID,
		CommentID: commentID,
		Actor:     actor,
		Payload:   payload,
	}); err != nil {
		slog.Warn("failed to record event", "topic", topic, "post_id", postID, "error", err)
	}
	if err := s.publisher.Publish(ctx, topic, event); err != nil {
		slog.Warn("failed to publish event", "topic", topic, "post_id", postID, "error", err)
	}
	s.broadcastEvent(topic, event)
}

// Sentinel errors for caller identity failures. Transport layers map
// errUnauthenticated to 401 and errForbidden to 403.
var (
	errUnauthenticated = errors.New("authentication required")
	errForbidden       = errors.New("forbidden")
)

// inputError indicates invalid user input.
// Transport layers map this to 400.
type inputError string

func (e inputError) Error() string { return string(e) }

// notFoundError indicates a missing resource, with a message naming it.
// Transport layers map this to 404.
type notFoundError string

func (e notFoundError) Error() string { return string(e) }
