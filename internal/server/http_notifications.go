package server

import (
	"net/http"
	"strconv"

	"github.com/alfredjeanlab/threads/internal/model"
)

// handleListNotifications handles GET /v1/notifications.
func (s *ThreadsServer) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := model.NotificationFilter{
		UnreadOnly: q.Get("unread") == "true",
	}
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Limit = n
		}
	}
	if v := q.Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Offset = n
		}
	}

	notifications, total, err := s.listNotifications(r.Context(), identity(r), filter)
	if err != nil {
		writeOpError(w, err)
		return
	}

	// Ensure notifications is never null in JSON output.
	if notifications == nil {
		notifications = []*model.Notification{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"notifications": notifications,
		"total":         total,
	})
}

// handleMarkNotificationRead handles POST /v1/notifications/{id}/read.
func (s *ThreadsServer) handleMarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	notification, err := s.markNotificationRead(r.Context(), identity(r), id)
	if err != nil {
		writeOpError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, notification)
}

// handleDismissNotification handles DELETE /v1/notifications/{id}.
func (s *ThreadsServer) handleDismissNotification(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	if err := s.dismissNotification(r.Context(), identity(r), id); err != nil {
		writeOpError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
