// Package services is the storage facade: it validates input, applies
// defaults and delegates to the repositories of the active backend.
package services

import (
	"time"

	"github.com/dmitrijs2005/inkwell/internal/logging"
	"github.com/dmitrijs2005/inkwell/internal/server/blobstore"
	"github.com/dmitrijs2005/inkwell/internal/server/repositories/repomanager"
)

// Storage groups the entity services. Build it once with NewStorage and
// share it; all services are safe for concurrent use.
type Storage struct {
	Posts           *PostService
	Comments        *CommentService
	Categories      *CategoryService
	Files           *FileService
	AIConversations *AIConversationService
}

type Option func(*deps)

// WithClock overrides the time source used for created_at and friends.
func WithClock(now func() time.Time) Option {
	return func(d *deps) { d.now = now }
}

type deps struct {
	rm     repomanager.RepositoryManager
	blobs  blobstore.Store
	logger logging.Logger
	now    func() time.Time
}

// now truncates to microseconds so timestamps survive both backends unchanged.
func defaultNow() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

func NewStorage(rm repomanager.RepositoryManager, blobs blobstore.Store, logger logging.Logger, opts ...Option) *Storage {
	d := &deps{rm: rm, blobs: blobs, logger: logging.Component(logger, "storage"), now: defaultNow}
	for _, o := range opts {
		o(d)
	}

	return &Storage{
		Posts:           &PostService{deps: d},
		Comments:        &CommentService{deps: d},
		Categories:      &CategoryService{deps: d},
		Files:           &FileService{deps: d},
		AIConversations: &AIConversationService{deps: d},
	}
}
