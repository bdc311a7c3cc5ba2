// Package comments stores reader comments. Comments are never updated.
package comments

import (
	"context"

	"github.com/dmitrijs2005/inkwell/internal/server/models"
)

type Repository interface {
	// GetByPostID lists a post's comments oldest first.
	GetByPostID(ctx context.Context, postID string) ([]*models.Comment, error)
	GetByID(ctx context.Context, id string) (*models.Comment, error)
	Create(ctx context.Context, c *models.Comment) error
	Delete(ctx context.Context, id string) error
}
