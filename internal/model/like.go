package model

import "time"

// Like is a per-user endorsement of a single comment. Identity is the
// (UserID, CommentID) pair; at most one row exists per pair.
type Like struct {
	UserID    string    `json:"userId"`
	CommentID string    `json:"commentId"`
	CreatedAt time.Time `json:"createdAt"`
}
