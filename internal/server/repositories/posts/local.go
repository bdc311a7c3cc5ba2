package posts

import (
	"context"
	"slices"
	"time"

	"github.com/dmitrijs2005/inkwell/internal/common"
	"github.com/dmitrijs2005/inkwell/internal/server/docstore"
	"github.com/dmitrijs2005/inkwell/internal/server/models"
)

// LocalRepository keeps posts in the docstore "posts" document.
type LocalRepository struct {
	store *docstore.Store
}

func NewLocalRepository(store *docstore.Store) *LocalRepository {
	return &LocalRepository{store: store}
}

func createdAt(p models.Post) time.Time { return p.CreatedAt }

func (r *LocalRepository) list(ctx context.Context, keep func(models.Post) bool) ([]*models.Post, error) {
	items, err := docstore.Read[models.Post](ctx, r.store, docstore.Posts)
	if err != nil {
		return nil, err
	}
	docstore.NewestFirst(items, createdAt)

	result := make([]*models.Post, 0, len(items))
	for i := range items {
		if keep(items[i]) {
			result = append(result, &items[i])
		}
	}
	return result, nil
}

func (r *LocalRepository) GetAll(ctx context.Context) ([]*models.Post, error) {
	return r.list(ctx, func(p models.Post) bool { return p.IsPublished.Visible() })
}

func (r *LocalRepository) GetAllForAdmin(ctx context.Context) ([]*models.Post, error) {
	return r.list(ctx, func(models.Post) bool { return true })
}

func (r *LocalRepository) GetByCategory(ctx context.Context, category string) ([]*models.Post, error) {
	return r.list(ctx, func(p models.Post) bool {
		return p.Category == category && p.IsPublished.Visible()
	})
}

func (r *LocalRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	items, err := docstore.Read[models.Post](ctx, r.store, docstore.Posts)
	if err != nil {
		return nil, err
	}
	i := slices.IndexFunc(items, func(p models.Post) bool { return p.ID == id })
	if i < 0 {
		return nil, nil
	}
	return &items[i], nil
}

func (r *LocalRepository) Create(ctx context.Context, post *models.Post) error {
	return docstore.Update(ctx, r.store, docstore.Posts, func(items []models.Post) ([]models.Post, error) {
		return append(items, *post), nil
	})
}

func (r *LocalRepository) Update(ctx context.Context, id string, patch models.PostPatch, at time.Time) error {
	return docstore.Update(ctx, r.store, docstore.Posts, func(items []models.Post) ([]models.Post, error) {
		i := slices.IndexFunc(items, func(p models.Post) bool { return p.ID == id })
		if i < 0 {
			return nil, common.ErrNotFound
		}
		patch.Apply(&items[i], at)
		return items, nil
	})
}

func (r *LocalRepository) Delete(ctx context.Context, id string) error {
	return docstore.Update(ctx, r.store, docstore.Posts, func(items []models.Post) ([]models.Post, error) {
		i := slices.IndexFunc(items, func(p models.Post) bool { return p.ID == id })
		if i < 0 {
			return nil, common.ErrNotFound
		}
		return slices.Delete(items, i, i+1), nil
	})
}
