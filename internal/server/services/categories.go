package services

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/inkwell/internal/common"
	"github.com/dmitrijs2005/inkwell/internal/server/models"
	"github.com/dmitrijs2005/inkwell/internal/shared"
)

// CategoryInput creates a category. Slug is derived from Name when empty.
type CategoryInput struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

type CategoryService struct {
	*deps
}

func (s *CategoryService) List(ctx context.Context) ([]*models.Category, error) {
	return s.rm.Categories().GetAll(ctx)
}

// GetBySlug returns (nil, nil) for an unknown slug.
func (s *CategoryService) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	return s.rm.Categories().GetBySlug(ctx, slug)
}

// Create returns common.ErrDuplicateSlug when the slug is taken. The
// repositories enforce the same rule at write time, so a concurrent create
// with the same slug fails the same way.
func (s *CategoryService) Create(ctx context.Context, in CategoryInput) (string, error) {
	if strings.TrimSpace(in.Name) == "" {
		return "", common.NewValidationError("name", "is required")
	}

	slug := shared.CategorySlug(in.Name, in.Slug)
	if err := s.ensureUniqueSlug(ctx, slug); err != nil {
		return "", err
	}

	c := &models.Category{
		ID:          shared.NewID(),
		Name:        in.Name,
		Slug:        slug,
		Description: in.Description,
		CreatedAt:   s.now(),
	}
	if err := s.rm.Categories().Create(ctx, c); err != nil {
		return "", err
	}
	return c.ID, nil
}

func (s *CategoryService) ensureUniqueSlug(ctx context.Context, slug string) error {
	existing, err := s.rm.Categories().GetBySlug(ctx, slug)
	if err != nil {
		return err
	}
	if existing != nil {
		return common.ErrDuplicateSlug
	}
	return nil
}

func (s *CategoryService) Delete(ctx context.Context, id string) error {
	return s.rm.Categories().Delete(ctx, id)
}
