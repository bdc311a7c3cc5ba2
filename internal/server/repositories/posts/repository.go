// Package posts stores blog posts.
package posts

import (
	"context"
	"time"

	"github.com/dmitrijs2005/inkwell/internal/server/models"
)

// Repository is implemented by LocalRepository and PostgresRepository.
// Listings are newest first; public listings skip explicitly unpublished
// posts. GetByID returns (nil, nil) when the post does not exist. Update and
// Delete return common.ErrNotFound for an unknown id.
type Repository interface {
	GetAll(ctx context.Context) ([]*models.Post, error)
	GetAllForAdmin(ctx context.Context) ([]*models.Post, error)
	GetByID(ctx context.Context, id string) (*models.Post, error)
	GetByCategory(ctx context.Context, category string) ([]*models.Post, error)
	Create(ctx context.Context, post *models.Post) error
	Update(ctx context.Context, id string, patch models.PostPatch, at time.Time) error
	Delete(ctx context.Context, id string) error
}
