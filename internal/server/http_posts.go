package server

import (
	"net/http"
	"time"

	"github.com/alfredjeanlab/threads/internal/presence"
)

// handleGetThread handles GET /v1/posts/{postId}/comments.
func (s *ThreadsServer) handleGetThread(w http.ResponseWriter, r *http.Request) {
	postID := r.PathValue("postId")
	if postID == "" {
		writeError(w, http.StatusBadRequest, "postId is required")
		return
	}

	thread, err := s.getThread(r.Context(), identity(r), postID)
	if err != nil {
		writeOpError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, thread)
}

// handleListViewers handles GET /v1/posts/{postId}/viewers.
// An optional ?stale= duration narrows or widens the activity window.
func (s *ThreadsServer) handleListViewers(w http.ResponseWriter, r *http.Request) {
	postID := r.PathValue("postId")
	if postID == "" {
		writeError(w, http.StatusBadRequest, "postId is required")
		return
	}

	stale := s.PresenceTTL
	if stale == 0 {
		stale = presence.DefaultStaleThreshold
	}
	if v := r.URL.Query().Get("stale"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid stale duration")
			return
		}
		stale = d
	}

	viewers := s.Presence.Viewers(postID, stale)
	if viewers == nil {
		viewers = []presence.Viewer{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"viewers": viewers,
		"total":   len(viewers),
	})
}

// handlePresenceHeartbeat handles POST /v1/posts/{postId}/presence.
func (s *ThreadsServer) handlePresenceHeartbeat(w http.ResponseWriter, r *http.Request) {
	postID := r.PathValue("postId")
	if postID == "" {
		writeError(w, http.StatusBadRequest, "postId is required")
		return
	}

	actor := identity(r)
	if actor.Anonymous() {
		writeError(w, http.StatusUnauthorized, errUnauthenticated.Error())
		return
	}

	s.Presence.Touch(postID, actor.UserID)
	w.WriteHeader(http.StatusNoContent)
}
