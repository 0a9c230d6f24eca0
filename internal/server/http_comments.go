package server

import (
	"encoding/json"
	"net/http"
)

// handleCreateComment handles POST /v1/comments.
func (s *ThreadsServer) handleCreateComment(w http.ResponseWriter, r *http.Request) {
	var in createCommentInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	comment, err := s.createComment(r.Context(), identity(r), in)
	if err != nil {
		writeOpError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, comment)
}

// handleGetComment handles GET /v1/comments/{id}.
func (s *ThreadsServer) handleGetComment(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	comment, err := s.getComment(r.Context(), identity(r), id)
	if err != nil {
		writeOpError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, comment)
}

// handleEditComment handles PATCH /v1/comments/{id}.
func (s *ThreadsServer) handleEditComment(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	var in editCommentInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	comment, err := s.editComment(r.Context(), identity(r), id, in)
	if err != nil {
		writeOpError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, comment)
}

// handleDeleteComment handles DELETE /v1/comments/{id}.
func (s *ThreadsServer) handleDeleteComment(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	deletedID, err := s.deleteComment(r.Context(), identity(r), id)
	if err != nil {
		writeOpError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"id": deletedID})
}

// handleToggleLike handles POST /v1/comments/{id}/like.
func (s *ThreadsServer) handleToggleLike(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	like, created, err := s.toggleLike(r.Context(), identity(r), id)
	if err != nil {
		writeOpError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"like":  like,
		"liked": created,
	})
}
