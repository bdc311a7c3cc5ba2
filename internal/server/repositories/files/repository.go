// Package files stores metadata of uploaded files. The bytes themselves are
// handled by the blobstore package.
package files

import (
	"context"

	"github.com/dmitrijs2005/inkwell/internal/server/models"
)

type Repository interface {
	// GetAll lists files newest upload first.
	GetAll(ctx context.Context) ([]*models.FileMeta, error)
	GetByID(ctx context.Context, id string) (*models.FileMeta, error)
	// GetByPostID lists a post's files in upload order.
	GetByPostID(ctx context.Context, postID string) ([]*models.FileMeta, error)
	Create(ctx context.Context, f *models.FileMeta) error
	Delete(ctx context.Context, id string) error
}
