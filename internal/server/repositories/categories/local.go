package categories

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

func (r *LocalRepository) GetAll(ctx context.Context) ([]*models.Category, error) {
	items, err := docstore.Read[models.Category](ctx, r.store, docstore.Categories)
	if err != nil {
		return nil, err
	}
	docstore.OldestFirst(items, func(c models.Category) time.Time { return c.CreatedAt })

	result := make([]*models.Category, 0, len(items))
	for i := range items {
		result = append(result, &items[i])
	}
	return result, nil
}

func (r *LocalRepository) find(ctx context.Context, match func(models.Category) bool) (*models.Category, error) {
	items, err := docstore.Read[models.Category](ctx, r.store, docstore.Categories)
	if err != nil {
		return nil, err
	}
	i := slices.IndexFunc(items, match)
	if i < 0 {
		return nil, nil
	}
	return &items[i], nil
}

func (r *LocalRepository) GetByID(ctx context.Context, id string) (*models.Category, error) {
	return r.find(ctx, func(c models.Category) bool { return c.ID == id })
}

func (r *LocalRepository) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	return r.find(ctx, func(c models.Category) bool { return c.Slug == slug })
}

// Create re-checks the slug inside the write cycle so that two creations
// racing in this process cannot both succeed.
func (r *LocalRepository) Create(ctx context.Context, c *models.Category) error {
	return docstore.Update(ctx, r.store, docstore.Categories, func(items []models.Category) ([]models.Category, error) {
		if slices.ContainsFunc(items, func(existing models.Category) bool { return existing.Slug == c.Slug }) {
			return nil, common.ErrDuplicateSlug
		}
		return append(items, *c), nil
	})
}

func (r *LocalRepository) Delete(ctx context.Context, id string) error {
	return docstore.Update(ctx, r.store, docstore.Categories, func(items []models.Category) ([]models.Category, error) {
		i := slices.IndexFunc(items, func(c models.Category) bool { return c.ID == id })
		if i < 0 {
			return nil, common.ErrNotFound
		}
		return slices.Delete(items, i, i+1), nil
	})
}
