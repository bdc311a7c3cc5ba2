package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/inkwell/internal/logging"
	"github.com/dmitrijs2005/inkwell/internal/server/config"
	"github.com/dmitrijs2005/inkwell/internal/server/pgstore"
	"github.com/dmitrijs2005/inkwell/internal/server/repositories/aiconversations"
	"github.com/dmitrijs2005/inkwell/internal/server/repositories/categories"
	"github.com/dmitrijs2005/inkwell/internal/server/repositories/comments"
	"github.com/dmitrijs2005/inkwell/internal/server/repositories/files"
	"github.com/dmitrijs2005/inkwell/internal/server/repositories/posts"
)

// PostgresRepositoryManager vends PostgreSQL-backed repository
// implementations sharing one connection pool.
type PostgresRepositoryManager struct {
	db *sql.DB
}

// NewPostgresRepositoryManager wraps an open pool. Close closes it.
func NewPostgresRepositoryManager(db *sql.DB) *PostgresRepositoryManager {
	return &PostgresRepositoryManager{db: db}
}

// Seams for tests.
var (
	pgOpen         = pgstore.Open
	seedCategories = pgstore.SeedCategories
)

func openPostgres(ctx context.Context, dsn string, maxOpenConns int, logger logging.Logger) (RepositoryManager, error) {
	db, err := pgOpen(ctx, dsn, maxOpenConns)
	if err != nil {
		return nil, err
	}
	added, err := seedCategories(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	logger.Info(ctx, "storage backend ready", "backend", config.BackendRemote, "seeded_categories", added)
	return NewPostgresRepositoryManager(db), nil
}

func (m *PostgresRepositoryManager) Posts() posts.Repository {
	return posts.NewPostgresRepository(m.db)
}

func (m *PostgresRepositoryManager) Comments() comments.Repository {
	return comments.NewPostgresRepository(m.db)
}

func (m *PostgresRepositoryManager) Categories() categories.Repository {
	return categories.NewPostgresRepository(m.db)
}

func (m *PostgresRepositoryManager) Files() files.Repository {
	return files.NewPostgresRepository(m.db)
}

func (m *PostgresRepositoryManager) AIConversations() aiconversations.Repository {
	return aiconversations.NewPostgresRepository(m.db)
}

func (m *PostgresRepositoryManager) Backend() string { return config.BackendRemote }

func (m *PostgresRepositoryManager) Close() error { return m.db.Close() }
