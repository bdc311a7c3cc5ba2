package aiconversations

import (
	"context"
	"database/sql"

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

func (r *PostgresRepository) Create(ctx context.Context, c *models.AIConversation) error {
	query := `INSERT INTO ai_conversations (id, question, answer, created_at, post_id)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.ExecContext(ctx, query, c.ID, c.Question, c.Answer, c.CreatedAt, pgstore.NullString(c.PostID))
	return pgstore.Wrap("insert ai conversation", err)
}

func (r *PostgresRepository) GetRecent(ctx context.Context, limit int) ([]*models.AIConversation, error) {
	query := `SELECT id, question, answer, created_at, post_id FROM ai_conversations
		ORDER BY created_at DESC, seq ASC
		LIMIT $1`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, pgstore.Wrap("select ai conversations", err)
	}
	defer rows.Close()

	result := make([]*models.AIConversation, 0)
	for rows.Next() {
		var (
			c      models.AIConversation
			postID sql.NullString
		)
		if err := rows.Scan(&c.ID, &c.Question, &c.Answer, &c.CreatedAt, &postID); err != nil {
			return nil, pgstore.Wrap("scan ai conversation", err)
		}
		c.CreatedAt = c.CreatedAt.UTC()
		c.PostID = pgstore.StringPtr(postID)
		result = append(result, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, pgstore.Wrap("select ai conversations", err)
	}
	return result, nil
}
