// Package docstore is the local backend: every collection is one JSON
// document (an array of records in insertion order) inside a data directory.
//
// Documents are replaced atomically (temp file + rename), so a reader never
// sees a torn write. Read-modify-write cycles are serialized per collection
// inside this process; separate processes sharing a directory are not
// coordinated and the last writer wins.
package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/dmitrijs2005/inkwell/internal/common"
	"github.com/dmitrijs2005/inkwell/internal/filex"
	"github.com/dmitrijs2005/inkwell/internal/logging"
	"github.com/dmitrijs2005/inkwell/internal/server/models"
	"github.com/dmitrijs2005/inkwell/internal/shared"
)

// Kind names a collection and its document file.
type Kind string

const (
	Posts           Kind = "posts"
	Comments        Kind = "comments"
	Categories      Kind = "categories"
	Files           Kind = "files"
	AIConversations Kind = "ai_conversations"
)

// Kinds lists every collection the store manages.
var Kinds = []Kind{Posts, Comments, Categories, Files, AIConversations}

const docPerm = 0o660

type Store struct {
	dir    string
	locks  map[Kind]*sync.Mutex
	logger logging.Logger
}

// Open prepares dir and creates every missing document. The categories
// document is seeded with models.DefaultCategories only when it is created
// here, so deleted defaults never come back.
func Open(ctx context.Context, dir string, logger logging.Logger) (*Store, error) {
	abs, err := filex.EnsureSubdDir(dir)
	if err != nil {
		return nil, common.NewStorageError("open data dir", err)
	}

	s := &Store{
		dir:    abs,
		locks:  make(map[Kind]*sync.Mutex, len(Kinds)),
		logger: logging.Component(logger, "docstore"),
	}
	for _, k := range Kinds {
		s.locks[k] = &sync.Mutex{}
	}

	for _, k := range Kinds {
		if err := s.initDocument(ctx, k); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Dir is the absolute data directory.
func (s *Store) Dir() string { return s.dir }

func (s *Store) path(kind Kind) string {
	return filepath.Join(s.dir, string(kind)+".json")
}

func (s *Store) lock(kind Kind) (*sync.Mutex, error) {
	mu, ok := s.locks[kind]
	if !ok {
		return nil, common.NewStorageError("docstore", fmt.Errorf("unknown collection %q", kind))
	}
	return mu, nil
}

func (s *Store) initDocument(ctx context.Context, kind Kind) error {
	_, exists, err := filex.ReadFileIfExists(s.path(kind))
	if err != nil {
		return common.NewStorageError("init "+string(kind), err)
	}
	if exists {
		return nil
	}

	if kind != Categories {
		return Write(ctx, s, kind, []json.RawMessage{})
	}

	now := time.Now().UTC().Truncate(time.Microsecond)
	seed := make([]models.Category, 0, len(models.DefaultCategories))
	for _, c := range models.DefaultCategories {
		seed = append(seed, models.Category{
			ID:          shared.NewID(),
			Name:        c.Name,
			Slug:        shared.CategorySlug(c.Name, ""),
			Description: c.Description,
			CreatedAt:   now,
		})
	}
	if err := Write(ctx, s, Categories, seed); err != nil {
		return err
	}
	s.logger.Info(ctx, "seeded default categories", "count", len(seed))
	return nil
}

// Read returns every record of kind in insertion order. A missing document
// yields an empty slice.
func Read[T any](ctx context.Context, s *Store, kind Kind) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := s.lock(kind); err != nil {
		return nil, err
	}

	data, ok, err := filex.ReadFileIfExists(s.path(kind))
	if err != nil {
		return nil, common.NewStorageError("read "+string(kind), err)
	}
	if !ok || len(data) == 0 {
		return []T{}, nil
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, common.NewStorageError("decode "+string(kind), err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// Write replaces the whole document of kind with items.
func Write[T any](ctx context.Context, s *Store, kind Kind, items []T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := s.lock(kind); err != nil {
		return err
	}
	if items == nil {
		items = []T{}
	}

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return common.NewStorageError("encode "+string(kind), err)
	}
	if err := filex.WriteFileAtomic(s.path(kind), data, docPerm); err != nil {
		return common.NewStorageError("write "+string(kind), err)
	}
	return nil
}

// Update runs a read-modify-write cycle on kind. An error from fn aborts the
// cycle and is returned unchanged; nothing is written.
func Update[T any](ctx context.Context, s *Store, kind Kind, fn func(items []T) ([]T, error)) error {
	mu, err := s.lock(kind)
	if err != nil {
		return err
	}
	mu.Lock()
	defer mu.Unlock()

	items, err := Read[T](ctx, s, kind)
	if err != nil {
		return err
	}
	next, err := fn(items)
	if err != nil {
		return err
	}
	return Write(ctx, s, kind, next)
}
