package repomanager

import (
	"context"

	"github.com/dmitrijs2005/inkwell/internal/logging"
	"github.com/dmitrijs2005/inkwell/internal/server/config"
	"github.com/dmitrijs2005/inkwell/internal/server/docstore"
	"github.com/dmitrijs2005/inkwell/internal/server/repositories/aiconversations"
	"github.com/dmitrijs2005/inkwell/internal/server/repositories/categories"
	"github.com/dmitrijs2005/inkwell/internal/server/repositories/comments"
	"github.com/dmitrijs2005/inkwell/internal/server/repositories/files"
	"github.com/dmitrijs2005/inkwell/internal/server/repositories/posts"
)

// LocalRepositoryManager vends repositories backed by JSON documents.
type LocalRepositoryManager struct {
	posts           *posts.LocalRepository
	comments        *comments.LocalRepository
	categories      *categories.LocalRepository
	files           *files.LocalRepository
	aiConversations *aiconversations.LocalRepository
}

func NewLocalRepositoryManager(store *docstore.Store) *LocalRepositoryManager {
	return &LocalRepositoryManager{
		posts:           posts.NewLocalRepository(store),
		comments:        comments.NewLocalRepository(store),
		categories:      categories.NewLocalRepository(store),
		files:           files.NewLocalRepository(store),
		aiConversations: aiconversations.NewLocalRepository(store),
	}
}

func openLocal(ctx context.Context, dir string, logger logging.Logger) (RepositoryManager, error) {
	store, err := docstore.Open(ctx, dir, logger)
	if err != nil {
		return nil, err
	}
	logger.Info(ctx, "storage backend ready", "backend", config.BackendLocal, "dir", store.Dir())
	return NewLocalRepositoryManager(store), nil
}

func (m *LocalRepositoryManager) Posts() posts.Repository           { return m.posts }
func (m *LocalRepositoryManager) Comments() comments.Repository     { return m.comments }
func (m *LocalRepositoryManager) Categories() categories.Repository { return m.categories }
func (m *LocalRepositoryManager) Files() files.Repository           { return m.files }
func (m *LocalRepositoryManager) AIConversations() aiconversations.Repository {
	return m.aiConversations
}
func (m *LocalRepositoryManager) Backend() string { return config.BackendLocal }

// Close is a no-op; documents are closed after every write.
func (m *LocalRepositoryManager) Close() error { return nil }
