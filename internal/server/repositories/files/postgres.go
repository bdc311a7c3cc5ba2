package files

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

// PostgresRepository implements file metadata storage over a dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectColumns = `SELECT id, filename, original_name, file_type, file_size, file_path, uploaded_at, post_id FROM files`

type scanner interface {
	Scan(dest ...any) error
}

func scanFile(row scanner) (*models.FileMeta, error) {
	var (
		f      models.FileMeta
		postID sql.NullString
	)
	if err := row.Scan(&f.ID, &f.Filename, &f.OriginalName, &f.FileType, &f.FileSize, &f.FilePath, &f.UploadedAt, &postID); err != nil {
		return nil, err
	}
	f.UploadedAt = f.UploadedAt.UTC()
	f.PostID = pgstore.StringPtr(postID)
	return &f, nil
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]*models.FileMeta, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, pgstore.Wrap("select files", err)
	}
	defer rows.Close()

	result := make([]*models.FileMeta, 0)
	for rows.Next() {
		f, err := scanFile(rows)
		if err != nil {
			return nil, pgstore.Wrap("scan file", err)
		}
		result = append(result, f)
	}
	if err := rows.Err(); err != nil {
		return nil, pgstore.Wrap("select files", err)
	}
	return result, nil
}

func (r *PostgresRepository) GetAll(ctx context.Context) ([]*models.FileMeta, error) {
	return r.list(ctx, selectColumns+` ORDER BY uploaded_at DESC, seq ASC`)
}

func (r *PostgresRepository) GetByPostID(ctx context.Context, postID string) ([]*models.FileMeta, error) {
	return r.list(ctx, selectColumns+` WHERE post_id = $1 ORDER BY uploaded_at ASC, seq ASC`, postID)
}

// GetByID returns nil when no such file exists.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.FileMeta, error) {
	f, err := scanFile(r.db.QueryRowContext(ctx, selectColumns+` WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, pgstore.Wrap("select file", err)
	}
	return f, nil
}

func (r *PostgresRepository) Create(ctx context.Context, f *models.FileMeta) error {
	query := `INSERT INTO files (id, filename, original_name, file_type, file_size, file_path, uploaded_at, post_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.ExecContext(ctx, query,
		f.ID, f.Filename, f.OriginalName, f.FileType, f.FileSize, f.FilePath, f.UploadedAt, pgstore.NullString(f.PostID))
	return pgstore.Wrap("insert file", err)
}

// Delete removes the metadata row. Exactly one row must be affected.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM files WHERE id = $1`, id)
	if err != nil {
		return pgstore.Wrap("delete file", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return pgstore.Wrap("delete file", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrNotFound
	default:
		return pgstore.Wrap("delete file", fmt.Errorf("unexpected rows affected: %d", n))
	}
}
