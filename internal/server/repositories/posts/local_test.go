package posts

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

var t0 = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func newLocalRepo(t *testing.T) *LocalRepository {
	t.Helper()
	store, err := docstore.Open(context.Background(), t.TempDir(), logging.Nop())
	require.NoError(t, err)
	return NewLocalRepository(store)
}

func post(id string, at time.Time, pub models.Publication, category string) *models.Post {
	return &models.Post{
		ID: id, Title: "T " + id, Content: "C " + id, Category: category,
		Author: common.DefaultAuthor, CreatedAt: at, IsPublished: pub,
	}
}

func ids(ps []*models.Post) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.ID)
	}
	return out
}

func seed(t *testing.T, r *LocalRepository, ps ...*models.Post) {
	t.Helper()
	for _, p := range ps {
		require.NoError(t, r.Create(context.Background(), p))
	}
}

func TestLocal_PublishFilteringAndOrdering(t *testing.T) {
	r := newLocalRepo(t)
	ctx := context.Background()
	seed(t, r,
		post("old", t0, models.Published, "Music"),
		post("hidden", t0.Add(time.Hour), models.Unpublished, "Music"),
		post("legacy", t0.Add(2*time.Hour), models.PublicationUnset, "Lifestyle"),
		post("tie-a", t0.Add(3*time.Hour), models.Published, "Music"),
		post("tie-b", t0.Add(3*time.Hour), models.Published, "Music"),
	)

	public, err := r.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"tie-a", "tie-b", "legacy", "old"}, ids(public))

	admin, err := r.GetAllForAdmin(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"tie-a", "tie-b", "legacy", "hidden", "old"}, ids(admin))

	music, err := r.GetByCategory(ctx, "Music")
	require.NoError(t, err)
	assert.Equal(t, []string{"tie-a", "tie-b", "old"}, ids(music))

	none, err := r.GetByCategory(ctx, "Nope")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestLocal_RoundTrip(t *testing.T) {
	r := newLocalRepo(t)
	ctx := context.Background()
	in := post("p1", t0, models.Published, "Music")
	in.Excerpt = "short"
	in.FeaturedImage = "/uploads/x.png"
	seed(t, r, in)

	got, err := r.GetByID(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, in, got)

	missing, err := r.GetByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestLocal_PartialUpdate(t *testing.T) {
	r := newLocalRepo(t)
	ctx := context.Background()
	in := post("p1", t0, models.Published, "Music")
	in.Excerpt = "E"
	in.FeaturedImage = "img"
	seed(t, r, in)

	title := "New title"
	at := t0.Add(time.Hour)
	require.NoError(t, r.Update(ctx, "p1", models.PostPatch{Title: &title}, at))

	got, err := r.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "New title", got.Title)
	assert.Equal(t, in.Content, got.Content)
	assert.Equal(t, "Music", got.Category)
	assert.Equal(t, "E", got.Excerpt)
	assert.Equal(t, "img", got.FeaturedImage)
	assert.Equal(t, t0, got.CreatedAt)
	require.NotNil(t, got.UpdatedAt)
	assert.Equal(t, at, *got.UpdatedAt)
}

func TestLocal_UnpublishHidesPost(t *testing.T) {
	r := newLocalRepo(t)
	ctx := context.Background()
	seed(t, r, post("p1", t0, models.Published, ""))

	off := false
	require.NoError(t, r.Update(ctx, "p1", models.PostPatch{IsPublished: &off}, t0))

	public, err := r.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, public)
}

func TestLocal_DeleteAndMissingIDs(t *testing.T) {
	r := newLocalRepo(t)
	ctx := context.Background()
	seed(t, r, post("p1", t0, models.Published, ""), post("p2", t0, models.Published, ""))

	require.NoError(t, r.Delete(ctx, "p1"))
	got, err := r.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.ErrorIs(t, r.Delete(ctx, "p1"), common.ErrNotFound)
	require.ErrorIs(t, r.Update(ctx, "ghost", models.PostPatch{}, t0), common.ErrNotFound)

	rest, err := r.GetAllForAdmin(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"p2"}, ids(rest))
}
