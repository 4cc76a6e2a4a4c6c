package test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/irsalhamdi/realty-training/apperr"
	"github.com/irsalhamdi/realty-training/core/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog(t *testing.T) {
	env, err := NewTestEnv(t, defaultLoginBurst)
	if err != nil {
		t.Fatalf("initializing test env: %v", err)
	}

	ctx := context.Background()
	admin := env.SignedIn(t, env.AdminEmail, env.AdminPass)

	require.NoError(t, admin.Catalog.Load(ctx))
	require.Len(t, admin.Catalog.Categories(), len(catalog.DefaultCategories()))

	v, err := admin.Catalog.CreateVideo(ctx, catalog.VideoForm{
		Title:      "Listing presentations that close",
		URL:        "https://youtu.be/abc12345678",
		CategoryID: "2",
	})
	require.NoError(t, err)
	assert.Equal(t, "abc12345678", v.YoutubeID)
	assert.Equal(t, catalog.ThumbnailURL("abc12345678"), v.Thumbnail)
	assert.Equal(t, catalog.Intermediate, v.Difficulty)

	found, err := admin.Catalog.Videos(catalog.Filter{Search: "listing presentations"})
	require.NoError(t, err)
	require.Len(t, found, 1, "created video appears once after resync")
	assert.Equal(t, "Marketing and Sales", found[0].CategoryName)

	err = admin.Catalog.UpdateVideo(ctx, v.ID, catalog.VideoForm{Duration: "30 min"})
	require.NoError(t, err)
	e, ok := admin.Catalog.Video(v.ID)
	require.True(t, ok)
	assert.Equal(t, "30 min", e.Duration)
	assert.Equal(t, "Listing presentations that close", e.Title)

	_, err = admin.Catalog.CreateVideo(ctx, catalog.VideoForm{
		Title:      "Nowhere",
		URL:        "https://youtu.be/xyz",
		CategoryID: "missing",
	})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = admin.Catalog.CreateVideo(ctx, catalog.VideoForm{
		Title:      "Not YouTube",
		URL:        "https://vimeo.com/123",
		CategoryID: "2",
	})
	assert.ErrorIs(t, err, apperr.ErrInvalidURL)

	require.NoError(t, admin.Catalog.DeleteVideo(ctx, v.ID))
	_, ok = admin.Catalog.Video(v.ID)
	assert.False(t, ok)
	assert.ErrorIs(t, admin.Catalog.DeleteVideo(ctx, v.ID), apperr.ErrNotFound)
}

func TestCategoryCascade(t *testing.T) {
	env, err := NewTestEnv(t, defaultLoginBurst)
	if err != nil {
		t.Fatalf("initializing test env: %v", err)
	}

	ctx := context.Background()
	admin := env.SignedIn(t, env.AdminEmail, env.AdminPass)
	require.NoError(t, admin.Catalog.Load(ctx))

	c, err := admin.Catalog.CreateCategory(ctx, catalog.CategoryForm{Name: "Luxury Homes"})
	require.NoError(t, err)
	assert.Equal(t, catalog.DefaultIcon, c.Icon)

	for _, title := range []string{"Staging", "Photography"} {
		_, err := admin.Catalog.CreateVideo(ctx, catalog.VideoForm{
			Title:      title,
			URL:        "https://www.youtube.com/watch?v=" + title,
			CategoryID: c.ID,
		})
		require.NoError(t, err)
	}

	in, err := admin.Catalog.Videos(catalog.Filter{CategoryID: c.ID})
	require.NoError(t, err)
	require.Len(t, in, 2)

	require.NoError(t, admin.Catalog.UpdateCategory(ctx, c.ID, catalog.CategoryForm{Icon: "Gem"}))

	require.NoError(t, admin.Catalog.DeleteCategory(ctx, c.ID))
	all, err := admin.Catalog.Videos(catalog.Filter{})
	require.NoError(t, err)
	assert.Empty(t, all, "videos go with their category")
	assert.Len(t, admin.Catalog.Categories(), len(catalog.DefaultCategories()))
}

func TestBanner(t *testing.T) {
	env, err := NewTestEnv(t, defaultLoginBurst)
	if err != nil {
		t.Fatalf("initializing test env: %v", err)
	}

	if err := Login(env.Server, env.UserEmail, env.UserPass); err != nil {
		t.Fatal(err)
	}
	w, err := Do(env.Server, http.MethodGet, "/banner-video", nil)
	require.NoError(t, err)
	defer w.Body.Close()
	require.Equal(t, http.StatusOK, w.StatusCode)
	require.NoError(t, Logout(env.Server))

	ctx := context.Background()
	admin := env.SignedIn(t, env.AdminEmail, env.AdminPass)
	require.NoError(t, admin.Catalog.Load(ctx))

	_, ok := admin.Catalog.Banner()
	assert.False(t, ok, "no banner until one is set")

	for _, title := range []string{"Welcome", "Spring kickoff"} {
		err := admin.Catalog.SetBanner(ctx, catalog.BannerForm{
			Title: title,
			URL:   "https://youtu.be/banner" + title[:1],
		})
		require.NoError(t, err)
	}

	b, ok := admin.Catalog.Banner()
	require.True(t, ok)
	assert.Equal(t, "Spring kickoff", b.Title, "setting replaces the previous banner")

	require.NoError(t, admin.Catalog.ClearBanner(ctx))
	_, ok = admin.Catalog.Banner()
	assert.False(t, ok)
}

func TestCatalogGate(t *testing.T) {
	env, err := NewTestEnv(t, defaultLoginBurst)
	if err != nil {
		t.Fatalf("initializing test env: %v", err)
	}

	ctx := context.Background()
	anon := env.Frontend(t)
	if err := anon.Catalog.Load(ctx); !errors.Is(err, apperr.ErrUnauthenticated) {
		t.Fatalf("expected unauthenticated, got %v", err)
	}

	agent := env.SignedIn(t, env.UserEmail, env.UserPass)
	require.NoError(t, agent.Catalog.Load(ctx))

	_, err = agent.Catalog.CreateCategory(ctx, catalog.CategoryForm{Name: "Mine"})
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	// The server enforces the role even when the client gate is bypassed.
	if err := Login(env.Server, env.UserEmail, env.UserPass); err != nil {
		t.Fatal(err)
	}
	expectStatus(t, env.Server, http.MethodPost, "/categories", catalog.CategoryNew{Name: "Mine", Icon: "Folder"}, http.StatusForbidden)
	expectStatus(t, env.Server, http.MethodDelete, "/videos/1", nil, http.StatusForbidden)
	expectStatus(t, env.Server, http.MethodGet, "/videos", nil, http.StatusOK)
	require.NoError(t, Logout(env.Server))

	expectStatus(t, env.Server, http.MethodGet, "/categories", nil, http.StatusUnauthorized)
	expectStatus(t, env.Server, http.MethodGet, "/settings", nil, http.StatusOK)
}
