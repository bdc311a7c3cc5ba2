package services

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/inkwell/internal/common"
	"github.com/dmitrijs2005/inkwell/internal/server/models"
	"github.com/dmitrijs2005/inkwell/internal/shared"
)

type CommentInput struct {
	PostID   string  `json:"post_id"`
	Author   string  `json:"author"`
	Email    string  `json:"email"`
	Content  string  `json:"content"`
	ParentID *string `json:"parent_id"`
}

type CommentService struct {
	*deps
}

// ListByPost returns a post's comments oldest first.
func (s *CommentService) ListByPost(ctx context.Context, postID string) ([]*models.Comment, error) {
	if postID == "" {
		return nil, common.NewValidationError("post_id", "is required")
	}
	return s.rm.Comments().GetByPostID(ctx, postID)
}

// Create checks that the post exists and, for replies, that the parent
// comment belongs to the same post.
func (s *CommentService) Create(ctx context.Context, in CommentInput) (string, error) {
	switch {
	case in.PostID == "":
		return "", common.NewValidationError("post_id", "is required")
	case strings.TrimSpace(in.Author) == "":
		return "", common.NewValidationError("author", "is required")
	case strings.TrimSpace(in.Content) == "":
		return "", common.NewValidationError("content", "is required")
	}

	post, err := s.rm.Posts().GetByID(ctx, in.PostID)
	if err != nil {
		return "", err
	}
	if post == nil {
		return "", common.NewValidationError("post_id", "post does not exist")
	}

	var parentID *string
	if in.ParentID != nil && *in.ParentID != "" {
		parent, err := s.rm.Comments().GetByID(ctx, *in.ParentID)
		if err != nil {
			return "", err
		}
		if parent == nil || parent.PostID != in.PostID {
			return "", common.NewValidationError("parent_id", "comment does not exist on this post")
		}
		parentID = in.ParentID
	}

	c := &models.Comment{
		ID:        shared.NewID(),
		PostID:    in.PostID,
		Author:    in.Author,
		Email:     in.Email,
		Content:   in.Content,
		CreatedAt: s.now(),
		ParentID:  parentID,
	}
	if err := s.rm.Comments().Create(ctx, c); err != nil {
		return "", err
	}
	return c.ID, nil
}

func (s *CommentService) Delete(ctx context.Context, id string) error {
	return s.rm.Comments().Delete(ctx, id)
}
