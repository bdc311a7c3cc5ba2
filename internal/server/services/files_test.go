package services

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/dmitrijs2005/inkwell/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestFileService_Upload(t *testing.T) {
	s, blobs := newLocalStorage(t)
	ctx := context.Background()
	postID := "p1"

	meta, err := s.Files.Upload(ctx, UploadInput{
		OriginalName: "cat.png", ContentType: "image/png", Size: 3,
		Body: strings.NewReader("png"), PostID: &postID,
	})
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(meta.Filename, ".png"))
	assert.True(t, strings.HasPrefix(meta.Filename, "1714564800000-"))
	assert.Equal(t, "cat.png", meta.OriginalName)
	assert.Equal(t, "image/png", meta.FileType)
	assert.Equal(t, int64(3), meta.FileSize)
	assert.Equal(t, "/uploads/"+meta.Filename, meta.FilePath)
	assert.Equal(t, []byte("png"), blobs.objects[meta.Filename])

	stored, err := s.Files.ListByPost(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, meta, stored[0])
}

func TestFileService_UploadTypeFallbacks(t *testing.T) {
	s, _ := newLocalStorage(t)
	ctx := context.Background()

	sniffed, err := s.Files.Upload(ctx, UploadInput{OriginalName: "noext", Size: -1, Body: bytes.NewReader(pngHeader)})
	require.NoError(t, err)
	assert.Equal(t, "image/png", sniffed.FileType)
	assert.Equal(t, int64(len(pngHeader)), sniffed.FileSize)

	byExt, err := s.Files.Upload(ctx, UploadInput{OriginalName: "data.BIN", ContentType: "application/octet-stream", Size: 0, Body: strings.NewReader("")})
	require.NoError(t, err)
	assert.Equal(t, ".bin", byExt.FileType)
}

func TestFileService_UploadErrors(t *testing.T) {
	s, blobs := newLocalStorage(t)
	ctx := context.Background()

	_, err := s.Files.Upload(ctx, UploadInput{})
	require.ErrorIs(t, err, common.ErrValidation)

	blobs.putErr = errBoom
	_, err = s.Files.Upload(ctx, UploadInput{OriginalName: "a.txt", ContentType: "text/plain", Body: strings.NewReader("a")})
	require.ErrorIs(t, err, common.ErrStorage)

	all, err := s.Files.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all, "no record without stored bytes")
}

func TestFileService_DeleteRemovesBytesAndRecord(t *testing.T) {
	s, blobs := newLocalStorage(t)
	ctx := context.Background()

	meta, err := s.Files.Upload(ctx, UploadInput{OriginalName: "a.txt", ContentType: "text/plain", Size: 1, Body: strings.NewReader("a")})
	require.NoError(t, err)

	deleted, err := s.Files.Delete(ctx, meta.ID)
	require.NoError(t, err)
	assert.Equal(t, meta.ID, deleted.ID)
	assert.NotContains(t, blobs.objects, meta.Filename)

	got, err := s.Files.Get(ctx, meta.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = s.Files.Delete(ctx, meta.ID)
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestFileService_DeleteToleratesBlobFailure(t *testing.T) {
	s, blobs := newLocalStorage(t)
	ctx := context.Background()

	meta, err := s.Files.Upload(ctx, UploadInput{OriginalName: "a.txt", ContentType: "text/plain", Size: 1, Body: strings.NewReader("a")})
	require.NoError(t, err)

	blobs.delErr = errBoom
	_, err = s.Files.Delete(ctx, meta.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{meta.Filename}, blobs.deleted)

	all, err := s.Files.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestFileService_CreateAndListOrder(t *testing.T) {
	s, _ := newLocalStorage(t)
	ctx := context.Background()

	first, err := s.Files.Upload(ctx, UploadInput{OriginalName: "1.txt", ContentType: "text/plain", Size: 1, Body: strings.NewReader("1")})
	require.NoError(t, err)
	second, err := s.Files.Upload(ctx, UploadInput{OriginalName: "2.txt", ContentType: "text/plain", Size: 1, Body: strings.NewReader("2")})
	require.NoError(t, err)

	all, err := s.Files.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID)
	assert.Equal(t, first.ID, all[1].ID)
}
