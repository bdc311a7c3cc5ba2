package blobstore

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskStore_PutAndDelete(t *testing.T) {
	root := t.TempDir()
	s, err := NewDiskStore(root)
	require.NoError(t, err)
	ctx := context.Background()

	url, err := s.Put(ctx, "1-abc.txt", strings.NewReader("hello"), 5, "text/plain")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/1-abc.txt", url)

	data, err := os.ReadFile(filepath.Join(root, "uploads", "1-abc.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	_, err = s.Put(ctx, "1-abc.txt", strings.NewReader("again"), 5, "")
	require.Error(t, err, "existing objects are never overwritten")

	require.NoError(t, s.Delete(ctx, "1-abc.txt"))
	_, err = os.Stat(filepath.Join(root, "uploads", "1-abc.txt"))
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, s.Delete(ctx, "1-abc.txt"), "missing object is not an error")
}

func TestDiskStore_RejectsPathKeys(t *testing.T) {
	s, err := NewDiskStore(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", "../x", "a/b", ".hidden"} {
		_, err := s.Put(context.Background(), key, strings.NewReader("x"), 1, "")
		assert.Error(t, err, key)
		assert.Error(t, s.Delete(context.Background(), key), key)
	}
}
