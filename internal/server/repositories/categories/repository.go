// Package categories stores post categories. Slugs are unique; both
// implementations refuse a duplicate slug with common.ErrDuplicateSlug.
package categories

import (
	"context"

	"github.com/dmitrijs2005/inkwell/internal/server/models"
)

type Repository interface {
	// GetAll lists categories oldest first.
	GetAll(ctx context.Context) ([]*models.Category, error)
	GetByID(ctx context.Context, id string) (*models.Category, error)
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
	Create(ctx context.Context, c *models.Category) error
	Delete(ctx context.Context, id string) error
}
