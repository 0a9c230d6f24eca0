package model

import "time"

// MaxThreadDepth is the maximum reply-nesting level returned by a thread
// fetch. Comments nested deeper exist and are counted, but are never
// included in the tree.
const MaxThreadDepth = 6

// Comment is a single comment on a post. A nil ParentID marks a top-level
// comment; otherwise ParentID references another comment on the same post.
type Comment struct {
	ID        string    `json:"id"`
	PostID    string    `json:"postId"`
	UserID    string    `json:"userId"`
	ParentID  *string   `json:"parentId,omitempty"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relational data -- populated by queries, not stored in the comments table.
	Author       *Author `json:"author,omitempty"`
	LikeCount    int     `json:"likeCount"`
	YouLikedThis bool    `json:"youLikedThis"`
}

// CommentNode is the public shape of one node in a post's comment tree.
// Children is omitted entirely for leaves and for nodes at the depth cutoff.
type CommentNode struct {
	ID           string         `json:"id"`
	Body         string         `json:"body"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	User         Author         `json:"user"`
	YouLikedThis bool           `json:"youLikedThis"`
	LikeCount    int            `json:"likeCount"`
	Children     []*CommentNode `json:"children,omitempty"`
}

// Thread is a post's comment tree plus the total number of comments on the
// post at any depth, including comments beyond the tree's depth cutoff.
type Thread struct {
	Data  []*CommentNode `json:"data"`
	Count int            `json:"count"`
}
