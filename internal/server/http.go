package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/alfredjeanlab/threads/internal/model"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewHTTPHandler returns an http.Handler with all routes registered.
// When authToken is non-empty, requests (except GET /healthz and GET /metrics)
// must include a valid Authorization: Bearer <token> header.
func (s *ThreadsServer) NewHTTPHandler(authToken string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/comments", s.handleCreateComment)
	mux.HandleFunc("GET /v1/comments/{id}", s.handleGetComment)
	mux.HandleFunc("PATCH /v1/comments/{id}", s.handleEditComment)
	mux.HandleFunc("DELETE /v1/comments/{id}", s.handleDeleteComment)
	mux.HandleFunc("POST /v1/comments/{id}/like", s.handleToggleLike)
	mux.HandleFunc("GET /v1/posts/{postId}/comments", s.handleGetThread)
	mux.HandleFunc("GET /v1/posts/{postId}/viewers", s.handleListViewers)
	mux.HandleFunc("POST /v1/posts/{postId}/presence", s.handlePresenceHeartbeat)
	mux.HandleFunc("GET /v1/notifications", s.handleListNotifications)
	mux.HandleFunc("POST /v1/notifications/{id}/read", s.handleMarkNotificationRead)
	mux.HandleFunc("DELETE /v1/notifications/{id}", s.handleDismissNotification)
	mux.HandleFunc("GET /v1/events", s.handleListEvents)
	mux.HandleFunc("GET /v1/events/stream", s.handleEventStream)
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.Handle("GET /metrics", promhttp.Handler())

	var h http.Handler = mux
	h = AuthMiddleware(authToken, h)
	h = MetricsMiddleware(h)
	h = LoggingMiddleware(h)
	return RecoveryMiddleware(h)
}

// identity resolves the caller identity from the X-User-ID header. The
// posting service terminates real authentication upstream and forwards the
// verified user id; an absent header is an anonymous caller.
func identity(r *http.Request) Identity {
	return Identity{UserID: r.Header.Get("X-User-ID")}
}

// handleHealthz handles GET /healthz. When the store can be pinged, an
// unreachable database turns the response into a 503.
func (s *ThreadsServer) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if p, ok := s.store.(interface{ Ping(context.Context) error }); ok {
		if err := p.Ping(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "store unavailable")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeOpError maps a service-layer error onto an HTTP status code.
func writeOpError(w http.ResponseWriter, err error) {
	var (
		ve *model.ValidationError
		ie inputError
		nf notFoundError
	)
	switch {
	case errors.As(err, &ve):
		writeError(w, http.StatusBadRequest, ve.Error())
	case errors.As(err, &ie):
		writeError(w, http.StatusBadRequest, ie.Error())
	case errors.As(err, &nf):
		writeError(w, http.StatusNotFound, nf.Error())
	case errors.Is(err, errUnauthenticated):
		writeError(w, http.StatusUnauthorized, errUnauthenticated.Error())
	case errors.Is(err, errForbidden):
		writeError(w, http.StatusForbidden, errForbidden.Error())
	case errors.Is(err, sql.ErrNoRows):
		writeError(w, http.StatusNotFound, "not found")
	default:
		slog.Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
