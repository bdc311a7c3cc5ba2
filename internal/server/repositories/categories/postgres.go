package categories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/inkwell/internal/common"
	"github.com/dmitrijs2005/inkwell/internal/dbx"
	"github.com/dmitrijs2005/inkwell/internal/server/models"
	"github.com/dmitrijs2005/inkwell/internal/server/pgstore"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectColumns = `SELECT id, name, slug, COALESCE(description, ''), created_at FROM categories`

func (r *PostgresRepository) GetAll(ctx context.Context) ([]*models.Category, error) {
	rows, err := r.db.QueryContext(ctx, selectColumns+` ORDER BY created_at ASC, seq ASC`)
	if err != nil {
		return nil, pgstore.Wrap("select categories", err)
	}
	defer rows.Close()

	result := make([]*models.Category, 0)
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.CreatedAt); err != nil {
			return nil, pgstore.Wrap("scan category", err)
		}
		c.CreatedAt = c.CreatedAt.UTC()
		result = append(result, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, pgstore.Wrap("select categories", err)
	}
	return result, nil
}

func (r *PostgresRepository) getOne(ctx context.Context, where string, arg string) (*models.Category, error) {
	var c models.Category
	err := r.db.QueryRowContext(ctx, selectColumns+` WHERE `+where+` = $1`, arg).
		Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, pgstore.Wrap("select category", err)
	}
	c.CreatedAt = c.CreatedAt.UTC()
	return &c, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Category, error) {
	return r.getOne(ctx, "id", id)
}

func (r *PostgresRepository) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	return r.getOne(ctx, "slug", slug)
}

func (r *PostgresRepository) Create(ctx context.Context, c *models.Category) error {
	query := `INSERT INTO categories (id, name, slug, description, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.ExecContext(ctx, query, c.ID, c.Name, c.Slug, c.Description, c.CreatedAt)
	if pgstore.IsUniqueViolation(err, pgstore.SlugConstraint) {
		return common.ErrDuplicateSlug
	}
	return pgstore.Wrap("insert category", err)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return pgstore.Wrap("delete category", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return pgstore.Wrap("delete category", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrNotFound
	default:
		return pgstore.Wrap("delete category", fmt.Errorf("unexpected rows affected: %d", n))
	}
}
