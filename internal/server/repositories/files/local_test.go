package files

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/inkwell/internal/common"
	"github.com/dmitrijs2005/inkwell/internal/logging"
	"github.com/dmitrijs2005/inkwell/internal/server/docstore"
	"github.com/dmitrijs2005/inkwell/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLocalRepo(t *testing.T) *LocalRepository {
	t.Helper()
	store, err := docstore.Open(context.Background(), t.TempDir(), logging.Nop())
	require.NoError(t, err)
	return NewLocalRepository(store)
}

func meta(id string, at time.Time, postID *string) *models.FileMeta {
	return &models.FileMeta{
		ID: id, Filename: "1-" + id + ".jpg", OriginalName: "photo.jpg", FileType: "image/jpeg",
		FileSize: 42, FilePath: "/uploads/1-" + id + ".jpg", UploadedAt: at, PostID: postID,
	}
}

func TestLocal_ListingsAndRoundTrip(t *testing.T) {
	r := newLocalRepo(t)
	ctx := context.Background()
	t0 := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	p1 := "p1"

	first := meta("f1", t0, &p1)
	second := meta("f2", t0.Add(time.Second), nil)
	third := meta("f3", t0.Add(2*time.Second), &p1)
	for _, f := range []*models.FileMeta{first, second, third} {
		require.NoError(t, r.Create(ctx, f))
	}

	all, err := r.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "f3", all[0].ID)
	assert.Equal(t, "f1", all[2].ID)

	byPost, err := r.GetByPostID(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, byPost, 2)
	assert.Equal(t, "f1", byPost[0].ID)
	assert.Equal(t, "f3", byPost[1].ID)

	got, err := r.GetByID(ctx, "f2")
	require.NoError(t, err)
	require.Equal(t, second, got)
}

func TestLocal_Delete(t *testing.T) {
	r := newLocalRepo(t)
	ctx := context.Background()
	require.NoError(t, r.Create(ctx, meta("f1", time.Now().UTC(), nil)))

	require.NoError(t, r.Delete(ctx, "f1"))
	got, err := r.GetByID(ctx, "f1")
	require.NoError(t, err)
	assert.Nil(t, got)
	require.ErrorIs(t, r.Delete(ctx, "f1"), common.ErrNotFound)
}
