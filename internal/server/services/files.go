package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/inkwell/internal/common"
	"github.com/dmitrijs2005/inkwell/internal/server/models"
	"github.com/dmitrijs2005/inkwell/internal/shared"
	"github.com/gabriel-vasile/mimetype"
)

const sniffLen = 3072

// UploadInput describes an incoming file. Size is -1 when unknown.
type UploadInput struct {
	OriginalName string
	ContentType  string
	Size         int64
	Body         io.Reader
	PostID       *string
}

type FileService struct {
	*deps
}

// List returns all files, newest upload first.
func (s *FileService) List(ctx context.Context) ([]*models.FileMeta, error) {
	return s.rm.Files().GetAll(ctx)
}

func (s *FileService) ListByPost(ctx context.Context, postID string) ([]*models.FileMeta, error) {
	return s.rm.Files().GetByPostID(ctx, postID)
}

func (s *FileService) Get(ctx context.Context, id string) (*models.FileMeta, error) {
	return s.rm.Files().GetByID(ctx, id)
}

// Upload stores the bytes first and records the metadata afterwards. If the
// record cannot be written the stored bytes are removed again.
func (s *FileService) Upload(ctx context.Context, in UploadInput) (*models.FileMeta, error) {
	if in.Body == nil || in.OriginalName == "" {
		return nil, common.NewValidationError("file", "is required")
	}

	now := s.now()
	name := shared.UploadFilename(in.OriginalName, now)

	body, fileType, err := detectType(in.Body, in.ContentType, in.OriginalName)
	if err != nil {
		return nil, common.NewStorageError("read upload", err)
	}
	counted := &countingReader{r: body}

	url, err := s.blobs.Put(ctx, name, counted, in.Size, fileType)
	if err != nil {
		return nil, common.NewStorageError("store upload", err)
	}

	size := in.Size
	if size < 0 {
		size = counted.n
	}
	var postID *string
	if in.PostID != nil && *in.PostID != "" {
		postID = in.PostID
	}

	meta := &models.FileMeta{
		ID:           shared.NewID(),
		Filename:     name,
		OriginalName: in.OriginalName,
		FileType:     fileType,
		FileSize:     size,
		FilePath:     url,
		UploadedAt:   now,
		PostID:       postID,
	}
	if err := s.rm.Files().Create(ctx, meta); err != nil {
		if derr := s.blobs.Delete(context.WithoutCancel(ctx), name); derr != nil {
			s.logger.Warn(ctx, "orphaned upload", "filename", name, "error", derr)
		}
		return nil, err
	}
	s.logger.Info(ctx, "file uploaded", "id", meta.ID, "filename", name, "size", size)
	return meta, nil
}

// Create records metadata for bytes that are already in place.
func (s *FileService) Create(ctx context.Context, meta models.FileMeta) (string, error) {
	if meta.Filename == "" {
		return "", common.NewValidationError("filename", "is required")
	}
	if meta.ID == "" {
		meta.ID = shared.NewID()
	}
	if meta.UploadedAt.IsZero() {
		meta.UploadedAt = s.now()
	}
	if err := s.rm.Files().Create(ctx, &meta); err != nil {
		return "", err
	}
	return meta.ID, nil
}

// Delete removes the stored bytes on a best effort basis and always removes
// the record. A failure to remove the bytes is only logged.
func (s *FileService) Delete(ctx context.Context, id string) (*models.FileMeta, error) {
	repo := s.rm.Files()
	meta, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if meta == nil {
		return nil, common.ErrNotFound
	}

	if err := s.blobs.Delete(ctx, meta.Filename); err != nil {
		s.logger.Warn(ctx, "failed to remove stored file", "id", id, "filename", meta.Filename, "error", err)
	}

	if err := repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return meta, nil
}

// detectType prefers the client supplied type, then sniffs the content, then
// falls back to the file extension.
func detectType(r io.Reader, clientType, name string) (io.Reader, string, error) {
	if clientType != "" && clientType != "application/octet-stream" {
		return r, clientType, nil
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, "", err
	}
	head = head[:n]
	body := io.MultiReader(bytes.NewReader(head), r)

	if n > 0 {
		if m := mimetype.Detect(head); !m.Is("application/octet-stream") {
			return body, m.String(), nil
		}
	}
	if ext := strings.ToLower(filepath.Ext(name)); ext != "" {
		return body, ext, nil
	}
	return body, "application/octet-stream", nil
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
