package comments

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

func (r *LocalRepository) GetByPostID(ctx context.Context, postID string) ([]*models.Comment, error) {
	items, err := docstore.Read[models.Comment](ctx, r.store, docstore.Comments)
	if err != nil {
		return nil, err
	}
	docstore.OldestFirst(items, func(c models.Comment) time.Time { return c.CreatedAt })

	result := make([]*models.Comment, 0)
	for i := range items {
		if items[i].PostID == postID {
			result = append(result, &items[i])
		}
	}
	return result, nil
}

func (r *LocalRepository) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	items, err := docstore.Read[models.Comment](ctx, r.store, docstore.Comments)
	if err != nil {
		return nil, err
	}
	i := slices.IndexFunc(items, func(c models.Comment) bool { return c.ID == id })
	if i < 0 {
		return nil, nil
	}
	return &items[i], nil
}

func (r *LocalRepository) Create(ctx context.Context, c *models.Comment) error {
	return docstore.Update(ctx, r.store, docstore.Comments, func(items []models.Comment) ([]models.Comment, error) {
		return append(items, *c), nil
	})
}

func (r *LocalRepository) Delete(ctx context.Context, id string) error {
	return docstore.Update(ctx, r.store, docstore.Comments, func(items []models.Comment) ([]models.Comment, error) {
		i := slices.IndexFunc(items, func(c models.Comment) bool { return c.ID == id })
		if i < 0 {
			return nil, common.ErrNotFound
		}
		return slices.Delete(items, i, i+1), nil
	})
}
