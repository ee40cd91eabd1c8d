// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/dualsite/internal/model"
	"github.com/olegiv/dualsite/internal/revalidate"
	"github.com/olegiv/dualsite/internal/store"
)

func TestEnsureTag(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	tag, created, err := svc.Blog.EnsureTag(ctx, "Müll-Abfuhr", "")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "muell-abfuhr", tag.Slug)

	// case-insensitive name match
	again, created, err := svc.Blog.EnsureTag(ctx, "müll-abfuhr", "")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, tag.ID, again.ID)

	// slug match with a different spelling
	again, created, err = svc.Blog.EnsureTag(ctx, "Muell Abfuhr", "")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, tag.ID, again.ID)

	_, _, err = svc.Blog.EnsureTag(ctx, "   ", "")
	assertValidation(t, err, "name")
	_, _, err = svc.Blog.EnsureTag(ctx, "!!!", "")
	assertValidation(t, err, "name")
}

func TestUpdateTagConflict(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	a, _, err := svc.Blog.EnsureTag(ctx, "Recycling", "")
	require.NoError(t, err)
	_, _, err = svc.Blog.EnsureTag(ctx, "Logistik", "")
	require.NoError(t, err)

	_, err = svc.Blog.UpdateTag(ctx, a.ID, TagInput{Name: ptr("LOGISTIK")})
	assertConflict(t, err, "name")

	updated, err := svc.Blog.UpdateTag(ctx, a.ID, TagInput{Name: ptr("Wertstoffe")})
	require.NoError(t, err)
	assert.Equal(t, "wertstoffe", updated.Slug)

	require.NoError(t, svc.Blog.DeleteTag(ctx, a.ID))
	assert.ErrorIs(t, svc.Blog.DeleteTag(ctx, a.ID), ErrNotFound)
}

func TestCategoryDeleteBlockedByPosts(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	cat, err := svc.Blog.CreateCategory(ctx, primary, CategoryInput{Name: ptr("News")})
	require.NoError(t, err)
	assert.Equal(t, "news", cat.Slug)

	_, err = svc.Blog.CreateCategory(ctx, primary, CategoryInput{Name: ptr("News")})
	assertConflict(t, err, "slug")

	_, err = svc.Blog.CreatePost(ctx, primary, PostInput{Title: ptr("Post"), CategoryID: NullableOf(cat.ID)})
	require.NoError(t, err)

	err = svc.Blog.DeleteCategory(ctx, primary, cat.ID)
	var re *ReferenceError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, int64(1), re.Count)

	_, err = svc.Blog.GetCategory(ctx, primary, cat.ID)
	require.NoError(t, err)
}

func TestPostCategoryMustBelongToWebsite(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	cat, err := svc.Blog.CreateCategory(ctx, secondary, CategoryInput{Name: ptr("Other")})
	require.NoError(t, err)

	_, err = svc.Blog.CreatePost(ctx, primary, PostInput{Title: ptr("Post"), CategoryID: NullableOf(cat.ID)})
	assertValidation(t, err, "category_id")
}

func TestPostTagsAndPublishStamp(t *testing.T) {
	svc, notifier := newTestServices(t)
	ctx := context.Background()

	post, err := svc.Blog.CreatePost(ctx, primary, PostInput{
		Title:     ptr("Hello World"),
		Published: ptr(true),
		Tags:      &[]string{"Umwelt", "umwelt", "Technik"},
	})
	require.NoError(t, err)
	assert.Equal(t, "hello-world", post.Slug)
	require.NotNil(t, post.PublishedAt)
	assert.WithinDuration(t, time.Now(), *post.PublishedAt, 5*time.Second)
	assert.Len(t, post.Tags, 2)
	assert.True(t, notifier.Has(primary, revalidate.ForTag(model.TagJournalPage)))

	// absent tags keep the set, an empty list clears it
	post, err = svc.Blog.UpdatePost(ctx, primary, post.ID, PostInput{Excerpt: ptr("short")})
	require.NoError(t, err)
	assert.Len(t, post.Tags, 2)
	post, err = svc.Blog.UpdatePost(ctx, primary, post.ID, PostInput{Tags: &[]string{}})
	require.NoError(t, err)
	assert.Empty(t, post.Tags)

	tags, err := svc.Blog.ListTags(ctx)
	require.NoError(t, err)
	assert.Len(t, tags, 2)
}

func TestPostNullableFields(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	cat, err := svc.Blog.CreateCategory(ctx, primary, CategoryInput{Name: ptr("News")})
	require.NoError(t, err)
	post, err := svc.Blog.CreatePost(ctx, primary, PostInput{Title: ptr("P"), CategoryID: NullableOf(cat.ID)})
	require.NoError(t, err)
	require.NotNil(t, post.CategoryID)

	var in PostInput
	require.NoError(t, json.Unmarshal([]byte(`{"title": "P2"}`), &in))
	post, err = svc.Blog.UpdatePost(ctx, primary, post.ID, in)
	require.NoError(t, err)
	require.NotNil(t, post.CategoryID, "absent key keeps the category")

	in = PostInput{}
	require.NoError(t, json.Unmarshal([]byte(`{"category_id": null}`), &in))
	post, err = svc.Blog.UpdatePost(ctx, primary, post.ID, in)
	require.NoError(t, err)
	assert.Nil(t, post.CategoryID)

	require.NoError(t, svc.Blog.DeleteCategory(ctx, primary, cat.ID))
}

func TestPublishedPosts(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	cat, err := svc.Blog.CreateCategory(ctx, primary, CategoryInput{Name: ptr("News")})
	require.NoError(t, err)

	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(24 * time.Hour)
	_, err = svc.Blog.CreatePost(ctx, primary, PostInput{Title: ptr("Live"), Published: ptr(true),
		PublishedAt: NullableOf(past), CategoryID: NullableOf(cat.ID), Tags: &[]string{"Go"}})
	require.NoError(t, err)
	_, err = svc.Blog.CreatePost(ctx, primary, PostInput{Title: ptr("Scheduled"), Published: ptr(true), PublishedAt: NullableOf(future)})
	require.NoError(t, err)
	_, err = svc.Blog.CreatePost(ctx, primary, PostInput{Title: ptr("Draft")})
	require.NoError(t, err)
	_, err = svc.Blog.CreatePost(ctx, secondary, PostInput{Title: ptr("Elsewhere"), Published: ptr(true)})
	require.NoError(t, err)

	posts, total, err := svc.Blog.ListPublished(ctx, primary, PostFilter{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, posts, 1)
	assert.Equal(t, "live", posts[0].Slug)

	_, total, err = svc.Blog.ListPublished(ctx, primary, PostFilter{CategorySlug: "news", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	_, total, err = svc.Blog.ListPublished(ctx, primary, PostFilter{TagSlug: "go", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	_, total, err = svc.Blog.ListPublished(ctx, primary, PostFilter{TagSlug: "missing", Limit: 10})
	require.NoError(t, err)
	assert.Zero(t, total)

	_, err = svc.Blog.GetPublished(ctx, primary, "live")
	require.NoError(t, err)
	_, err = svc.Blog.GetPublished(ctx, primary, "scheduled")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.Blog.GetPublished(ctx, primary, "draft")
	assert.ErrorIs(t, err, ErrNotFound)

	all, err := svc.Blog.ListPosts(ctx, primary)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestPostSlugConflictBackstop(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	_, err := svc.Blog.CreatePost(ctx, primary, PostInput{Title: ptr("Same")})
	require.NoError(t, err)

	// bypass the pre-check and hit the UNIQUE constraint directly
	_, err = svc.Blog.queries.CreateBlogPost(ctx, store.CreateBlogPostParams{
		Website:        string(primary),
		BlogPostFields: store.BlogPostFields{Title: "Same", Slug: "same"},
		CreatedAt:      store.Now(),
	})
	require.Error(t, err)
	assertConflict(t, writeErr(err, "post", "slug", "same"), "slug")
}
