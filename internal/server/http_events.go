package server

import (
	"net/http"
	"strconv"

	"github.com/alfredjeanlab/threads/internal/model"
)

// handleListEvents handles GET /v1/events. Events are returned newest first,
// optionally scoped to a post via ?postId= and capped via ?limit=.
func (s *ThreadsServer) handleListEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	postID := q.Get("postId")

	limit := 0
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	evts, err := s.store.ListEvents(r.Context(), postID, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list events")
		return
	}

	// Ensure events is never null in JSON output.
	if evts == nil {
		evts = []*model.Event{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"events": evts})
}
