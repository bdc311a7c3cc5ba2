package services

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/inkwell/internal/common"
	"github.com/dmitrijs2005/inkwell/internal/server/models"
	"github.com/dmitrijs2005/inkwell/internal/shared"
)

// PostInput is the payload for a new post. Title and content are required.
type PostInput struct {
	Title         string `json:"title"`
	Content       string `json:"content"`
	Excerpt       string `json:"excerpt"`
	Category      string `json:"category"`
	Author        string `json:"author"`
	FeaturedImage string `json:"featured_image"`
	IsPublished   *bool  `json:"is_published"`
}

type PostService struct {
	*deps
}

// List returns visible posts, newest first.
func (s *PostService) List(ctx context.Context) ([]*models.Post, error) {
	return s.rm.Posts().GetAll(ctx)
}

// ListForAdmin includes unpublished posts.
func (s *PostService) ListForAdmin(ctx context.Context) ([]*models.Post, error) {
	return s.rm.Posts().GetAllForAdmin(ctx)
}

func (s *PostService) ListByCategory(ctx context.Context, category string) ([]*models.Post, error) {
	return s.rm.Posts().GetByCategory(ctx, category)
}

// Get returns (nil, nil) for an unknown id.
func (s *PostService) Get(ctx context.Context, id string) (*models.Post, error) {
	return s.rm.Posts().GetByID(ctx, id)
}

func (s *PostService) Create(ctx context.Context, in PostInput) (string, error) {
	if strings.TrimSpace(in.Title) == "" {
		return "", common.NewValidationError("title", "is required")
	}
	if strings.TrimSpace(in.Content) == "" {
		return "", common.NewValidationError("content", "is required")
	}

	author := in.Author
	if author == "" {
		author = common.DefaultAuthor
	}
	published := models.Published
	if in.IsPublished != nil {
		published = models.PublicationOf(in.IsPublished)
	}

	p := &models.Post{
		ID:            shared.NewID(),
		Title:         in.Title,
		Content:       in.Content,
		Excerpt:       in.Excerpt,
		Category:      in.Category,
		Author:        author,
		FeaturedImage: in.FeaturedImage,
		CreatedAt:     s.now(),
		IsPublished:   published,
	}
	if err := s.rm.Posts().Create(ctx, p); err != nil {
		return "", err
	}
	s.logger.Info(ctx, "post created", "id", p.ID)
	return p.ID, nil
}

// Update applies patch and returns the stored post.
func (s *PostService) Update(ctx context.Context, id string, patch models.PostPatch) (*models.Post, error) {
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return nil, common.NewValidationError("title", "must not be empty")
	}
	if patch.Content != nil && strings.TrimSpace(*patch.Content) == "" {
		return nil, common.NewValidationError("content", "must not be empty")
	}

	repo := s.rm.Posts()
	if err := repo.Update(ctx, id, patch, s.now()); err != nil {
		return nil, err
	}
	p, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, common.ErrNotFound
	}
	return p, nil
}

func (s *PostService) Delete(ctx context.Context, id string) error {
	if err := s.rm.Posts().Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info(ctx, "post deleted", "id", id)
	return nil
}
