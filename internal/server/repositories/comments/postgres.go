package comments

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

const selectColumns = `SELECT id, post_id, author, COALESCE(email, ''), content, created_at, parent_id FROM comments`

type scanner interface {
	Scan(dest ...any) error
}

func scanComment(row scanner) (*models.Comment, error) {
	var (
		c        models.Comment
		parentID sql.NullString
	)
	if err := row.Scan(&c.ID, &c.PostID, &c.Author, &c.Email, &c.Content, &c.CreatedAt, &parentID); err != nil {
		return nil, err
	}
	c.CreatedAt = c.CreatedAt.UTC()
	c.ParentID = pgstore.StringPtr(parentID)
	return &c, nil
}

func (r *PostgresRepository) GetByPostID(ctx context.Context, postID string) ([]*models.Comment, error) {
	query := selectColumns + `
		WHERE post_id = $1
		ORDER BY created_at ASC, seq ASC`
	rows, err := r.db.QueryContext(ctx, query, postID)
	if err != nil {
		return nil, pgstore.Wrap("select comments", err)
	}
	defer rows.Close()

	result := make([]*models.Comment, 0)
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, pgstore.Wrap("scan comment", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, pgstore.Wrap("select comments", err)
	}
	return result, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	c, err := scanComment(r.db.QueryRowContext(ctx, selectColumns+` WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, pgstore.Wrap("select comment", err)
	}
	return c, nil
}

func (r *PostgresRepository) Create(ctx context.Context, c *models.Comment) error {
	query := `INSERT INTO comments (id, post_id, author, email, content, created_at, parent_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.PostID, c.Author, c.Email, c.Content, c.CreatedAt, pgstore.NullString(c.ParentID))
	return pgstore.Wrap("insert comment", err)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return pgstore.Wrap("delete comment", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return pgstore.Wrap("delete comment", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrNotFound
	default:
		return pgstore.Wrap("delete comment", fmt.Errorf("unexpected rows affected: %d", n))
	}
}
