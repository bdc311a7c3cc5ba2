// Package aiconversations stores the append-only log of assistant exchanges.
package aiconversations

import (
	"context"

	"github.com/dmitrijs2005/inkwell/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, c *models.AIConversation) error
	// GetRecent returns at most limit conversations, newest first.
	GetRecent(ctx context.Context, limit int) ([]*models.AIConversation, error)
}
