package services

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/inkwell/internal/common"
	"github.com/dmitrijs2005/inkwell/internal/server/models"
	"github.com/dmitrijs2005/inkwell/internal/shared"
)

type AIConversationService struct {
	*deps
}

// Record appends one exchange to the log.
func (s *AIConversationService) Record(ctx context.Context, question, answer string, postID *string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", common.NewValidationError("question", "is required")
	}
	if postID != nil && *postID == "" {
		postID = nil
	}

	c := &models.AIConversation{
		ID:        shared.NewID(),
		Question:  question,
		Answer:    answer,
		CreatedAt: s.now(),
		PostID:    postID,
	}
	if err := s.rm.AIConversations().Create(ctx, c); err != nil {
		return "", err
	}
	return c.ID, nil
}

// Recent returns the newest conversations; limit <= 0 means the default of 10.
func (s *AIConversationService) Recent(ctx context.Context, limit int) ([]*models.AIConversation, error) {
	if limit <= 0 {
		limit = common.DefaultRecentConversations
	}
	return s.rm.AIConversations().GetRecent(ctx, limit)
}
