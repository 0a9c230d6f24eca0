package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alfredjeanlab/threads/internal/model"
)

// getThread assembles a post's comment tree for the given viewer. Top-level
// comments are ordered newest first; replies within a parent oldest first.
// The tree stops at model.MaxThreadDepth levels, but Count covers every
// comment on the post regardless of depth.
func (s *ThreadsServer) getThread(ctx context.Context, viewer Identity, postID string) (*model.Thread, error) {
	if _, err := s.store.GetPost(ctx, postID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFoundError("post not found")
		}
		return nil, fmt.Errorf("get post: %w", err)
	}

	count, err := s.store.CountCommentsByPost(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("count comments: %w", err)
	}

	top, err := s.store.ListTopLevelComments(ctx, postID, viewer.UserID)
	if err != nil {
		return nil, fmt.Errorf("list top-level comments: %w", err)
	}

	nodes := make([]*model.CommentNode, 0, len(top))
	byID := make(map[string]*model.CommentNode, len(top))
	parentIDs := make([]string, 0, len(top))
	for _, c := range top {
		n := nodeFromComment(c)
		nodes = append(nodes, n)
		byID[c.ID] = n
		parentIDs = append(parentIDs, c.ID)
	}

	// Fetch one level per query. Comments below the depth cutoff stay
	// unqueried; they only show up in Count.
	for depth := 2; depth <= model.MaxThreadDepth && len(parentIDs) > 0; depth++ {
		children, err := s.store.ListCommentsByParents(ctx, parentIDs, viewer.UserID)
		if err != nil {
			return nil, fmt.Errorf("list replies at depth %d: %w", depth, err)
		}

		parentIDs = parentIDs[:0]
		level := make(map[string]*model.CommentNode, len(children))
		for _, c := range children {
			parent, ok := byID[*c.ParentID]
			if !ok {
				continue
			}
			n := nodeFromComment(c)
			parent.Children = append(parent.Children, n)
			level[c.ID] = n
			parentIDs = append(parentIDs, c.ID)
		}
		byID = level
	}

	return &model.Thread{Data: nodes, Count: count}, nil
}

// nodeFromComment converts a stored comment into its tree representation.
func nodeFromComment(c *model.Comment) *model.CommentNode {
	n := &model.CommentNode{
		ID:           c.ID,
		Body:         c.Body,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
		YouLikedThis: c.YouLikedThis,
		LikeCount:    c.LikeCount,
	}
	if c.Author != nil {
		n.User = *c.Author
	}
	return n
}
