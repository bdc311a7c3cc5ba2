package posts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/inkwell/internal/common"
	"github.com/dmitrijs2005/inkwell/internal/dbx"
	"github.com/dmitrijs2005/inkwell/internal/server/models"
	"github.com/dmitrijs2005/inkwell/internal/server/pgstore"
)

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectColumns = `SELECT id, title, content, COALESCE(excerpt, ''), COALESCE(category, ''),
		COALESCE(author, ''), COALESCE(featured_image, ''), created_at, updated_at, is_published
		FROM posts`

type scanner interface {
	Scan(dest ...any) error
}

func scanPost(row scanner) (*models.Post, error) {
	var (
		p         models.Post
		updatedAt sql.NullTime
	)
	if err := row.Scan(&p.ID, &p.Title, &p.Content, &p.Excerpt, &p.Category,
		&p.Author, &p.FeaturedImage, &p.CreatedAt, &updatedAt, &p.IsPublished); err != nil {
		return nil, err
	}
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = pgstore.TimePtr(updatedAt)
	return &p, nil
}

func (r *PostgresRepository) query(ctx context.Context, op, query string, args ...any) ([]*models.Post, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, pgstore.Wrap(op, err)
	}
	defer rows.Close()

	result := make([]*models.Post, 0)
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, pgstore.Wrap(op, err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, pgstore.Wrap(op, err)
	}
	return result, nil
}

func (r *PostgresRepository) GetAll(ctx context.Context) ([]*models.Post, error) {
	query := selectColumns + `
		WHERE is_published IS DISTINCT FROM false
		ORDER BY created_at DESC, seq ASC`
	return r.query(ctx, "select posts", query)
}

func (r *PostgresRepository) GetAllForAdmin(ctx context.Context) ([]*models.Post, error) {
	query := selectColumns + `
		ORDER BY created_at DESC, seq ASC`
	return r.query(ctx, "select posts", query)
}

func (r *PostgresRepository) GetByCategory(ctx context.Context, category string) ([]*models.Post, error) {
	query := selectColumns + `
		WHERE category = $1 AND is_published IS DISTINCT FROM false
		ORDER BY created_at DESC, seq ASC`
	return r.query(ctx, "select posts by category", query, category)
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	query := selectColumns + `
		WHERE id = $1`
	p, err := scanPost(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, pgstore.Wrap("select post", err)
	}
	return p, nil
}

func (r *PostgresRepository) Create(ctx context.Context, p *models.Post) error {
	query := `INSERT INTO posts (id, title, content, excerpt, category, author, featured_image, created_at, is_published)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.Title, p.Content, p.Excerpt, p.Category, p.Author, p.FeaturedImage, p.CreatedAt, p.IsPublished.Bool())
	return pgstore.Wrap("insert post", err)
}

// Update issues a single UPDATE setting updated_at plus every supplied field.
func (r *PostgresRepository) Update(ctx context.Context, id string, patch models.PostPatch, at time.Time) error {
	sets := []string{"updated_at = $1"}
	args := []any{at}
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if patch.Title != nil {
		add("title", *patch.Title)
	}
	if patch.Content != nil {
		add("content", *patch.Content)
	}
	if patch.Excerpt != nil {
		add("excerpt", *patch.Excerpt)
	}
	if patch.Category != nil {
		add("category", *patch.Category)
	}
	if patch.FeaturedImage != nil {
		add("featured_image", *patch.FeaturedImage)
	}
	if patch.IsPublished != nil {
		add("is_published", *patch.IsPublished)
	}
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE posts SET %s WHERE id = $%d`, strings.Join(sets, ", "), len(args))
	return r.exec(ctx, "update post", query, args...)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	return r.exec(ctx, "delete post", `DELETE FROM posts WHERE id = $1`, id)
}

func (r *PostgresRepository) exec(ctx context.Context, op, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return pgstore.Wrap(op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return pgstore.Wrap(op, err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrNotFound
	default:
		return pgstore.Wrap(op, fmt.Errorf("unexpected rows affected: %d", n))
	}
}
