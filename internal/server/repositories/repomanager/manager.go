// Package repomanager selects the storage backend once at startup and vends
// the entity repositories bound to it.
package repomanager

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/inkwell/internal/logging"
	"github.com/dmitrijs2005/inkwell/internal/server/config"
	"github.com/dmitrijs2005/inkwell/internal/server/repositories/aiconversations"
	"github.com/dmitrijs2005/inkwell/internal/server/repositories/categories"
	"github.com/dmitrijs2005/inkwell/internal/server/repositories/comments"
	"github.com/dmitrijs2005/inkwell/internal/server/repositories/files"
	"github.com/dmitrijs2005/inkwell/internal/server/repositories/posts"
)

type RepositoryManager interface {
	Posts() posts.Repository
	Comments() comments.Repository
	Categories() categories.Repository
	Files() files.Repository
	AIConversations() aiconversations.Repository
	// Backend names the active backend ("local" or "remote").
	Backend() string
	Close() error
}

// New opens the backend named by cfg.StorageBackend.
func New(ctx context.Context, cfg *config.Config, logger logging.Logger) (RepositoryManager, error) {
	switch cfg.StorageBackend {
	case config.BackendLocal, "":
		return openLocal(ctx, cfg.DataDir, logger)
	case config.BackendRemote:
		return openPostgres(ctx, cfg.DatabaseDSN, cfg.DBMaxOpenConns, logger)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
