// Package blobstore keeps the bytes of uploaded files. Metadata lives in the
// files repository; a Store only knows keys, which are bare generated
// filenames such as "1718000000000-<uuid>.jpg".
package blobstore

import (
	"context"
	"io"
)

type Store interface {
	// Put stores r under key and returns the public URL of the object.
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	// Delete removes the object. Deleting a missing object is not an error.
	Delete(ctx context.Context, key string) error
}
