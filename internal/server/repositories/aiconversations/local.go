package aiconversations

import (
	"context"
	"time"

	"github.com/dmitrijs2005/inkwell/internal/server/docstore"
	"github.com/dmitrijs2005/inkwell/internal/server/models"
)

type LocalRepository struct {
	store *docstore.Store
}

func NewLocalRepository(store *docstore.Store) *LocalRepository {
	return &LocalRepository{store: store}
}

func (r *LocalRepository) Create(ctx context.Context, c *models.AIConversation) error {
	return docstore.Update(ctx, r.store, docstore.AIConversations, func(items []models.AIConversation) ([]models.AIConversation, error) {
		return append(items, *c), nil
	})
}

func (r *LocalRepository) GetRecent(ctx context.Context, limit int) ([]*models.AIConversation, error) {
	items, err := docstore.Read[models.AIConversation](ctx, r.store, docstore.AIConversations)
	if err != nil {
		return nil, err
	}
	docstore.NewestFirst(items, func(c models.AIConversation) time.Time { return c.CreatedAt })

	if limit >= 0 && limit < len(items) {
		items = items[:limit]
	}
	result := make([]*models.AIConversation, 0, len(items))
	for i := range items {
		result = append(result, &items[i])
	}
	return result, nil
}
