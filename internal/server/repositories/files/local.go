package files

import (
	"context"
	"slices"
	"time"

	"github.com/dmitrijs2005/inkwell/internal/common"
	"github.com/dmitrijs2005/inkwell/internal/server/docstore"
	"github.com/dmitrijs2005/inkwell/internal/server/models"
)

type LocalRepository struct {
	store *docstore.Store
}

func NewLocalRepository(store *docstore.Store) *LocalRepository {
	return &LocalRepository{store: store}
}

func uploadedAt(f models.FileMeta) time.Time { return f.UploadedAt }

func (r *LocalRepository) GetAll(ctx context.Context) ([]*models.FileMeta, error) {
	items, err := docstore.Read[models.FileMeta](ctx, r.store, docstore.Files)
	if err != nil {
		return nil, err
	}
	docstore.NewestFirst(items, uploadedAt)

	result := make([]*models.FileMeta, 0, len(items))
	for i := range items {
		result = append(result, &items[i])
	}
	return result, nil
}

func (r *LocalRepository) GetByID(ctx context.Context, id string) (*models.FileMeta, error) {
	items, err := docstore.Read[models.FileMeta](ctx, r.store, docstore.Files)
	if err != nil {
		return nil, err
	}
	i := slices.IndexFunc(items, func(f models.FileMeta) bool { return f.ID == id })
	if i < 0 {
		return nil, nil
	}
	return &items[i], nil
}

func (r *LocalRepository) GetByPostID(ctx context.Context, postID string) ([]*models.FileMeta, error) {
	items, err := docstore.Read[models.FileMeta](ctx, r.store, docstore.Files)
	if err != nil {
		return nil, err
	}
	docstore.OldestFirst(items, uploadedAt)

	result := make([]*models.FileMeta, 0)
	for i := range items {
		if items[i].PostID != nil && *items[i].PostID == postID {
			result = append(result, &items[i])
		}
	}
	return result, nil
}

func (r *LocalRepository) Create(ctx context.Context, f *models.FileMeta) error {
	return docstore.Update(ctx, r.store, docstore.Files, func(items []models.FileMeta) ([]models.FileMeta, error) {
		return append(items, *f), nil
	})
}

func (r *LocalRepository) Delete(ctx context.Context, id string) error {
	return docstore.Update(ctx, r.store, docstore.Files, func(items []models.FileMeta) ([]models.FileMeta, error) {
		i := slices.IndexFunc(items, func(f models.FileMeta) bool { return f.ID == id })
		if i < 0 {
			return nil, common.ErrNotFound
		}
		return slices.Delete(items, i, i+1), nil
	})
}
