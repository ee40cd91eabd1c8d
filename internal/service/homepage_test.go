// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/dualsite/internal/model"
	"github.com/olegiv/dualsite/internal/revalidate"
)

func TestHomepageSectionIdentifierUnique(t *testing.T) {
	svc, notifier := newTestServices(t)
	ctx := context.Background()

	s, err := svc.Homepage.CreateSection(ctx, primary, HomepageSectionInput{Identifier: ptr("about")})
	require.NoError(t, err)
	assert.Equal(t, int64(0), s.SortOrder)
	assert.True(t, notifier.Has(primary, revalidate.ForTag(model.TagSections)))
	assert.True(t, notifier.Has(primary, revalidate.ForTag(model.TagHomepage)))

	_, err = svc.Homepage.CreateSection(ctx, primary, HomepageSectionInput{Identifier: ptr("about")})
	assertConflict(t, err, "identifier")

	_, err = svc.Homepage.CreateSection(ctx, secondary, HomepageSectionInput{Identifier: ptr("about")})
	require.NoError(t, err)

	_, err = svc.Homepage.CreateSection(ctx, primary, HomepageSectionInput{})
	assertValidation(t, err, "identifier")
}

func TestHomepageSectionWithoutTypeAcceptsAnyCollection(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	var in HomepageSectionInput
	require.NoError(t, json.Unmarshal([]byte(`{
		"identifier": "mixed",
		"items": [{"title": "i"}],
		"stats": [{"number": "10+", "title": "Years"}],
		"cards": []
	}`), &in))

	s, err := svc.Homepage.CreateSection(ctx, primary, in)
	require.NoError(t, err)
	require.NotNil(t, s.Items)
	require.NotNil(t, s.Stats)
	assert.Equal(t, "10+", (*s.Stats)[0].Number)
	require.NotNil(t, s.Cards)
	assert.Empty(t, *s.Cards)
	assert.Nil(t, s.Buttons)

	// sub-field rules still apply
	require.NoError(t, json.Unmarshal([]byte(`{"identifier": "bad", "items": [{"title": ""}]}`), &in))
	_, err = svc.Homepage.CreateSection(ctx, primary, in)
	assertValidation(t, err, "items[0].title")
}

func TestHomepageSectionReorderScopedToWebsite(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	a, err := svc.Homepage.CreateSection(ctx, primary, HomepageSectionInput{Identifier: ptr("a")})
	require.NoError(t, err)
	b, err := svc.Homepage.CreateSection(ctx, primary, HomepageSectionInput{Identifier: ptr("b")})
	require.NoError(t, err)
	other, err := svc.Homepage.CreateSection(ctx, secondary, HomepageSectionInput{Identifier: ptr("c")})
	require.NoError(t, err)
	assert.Equal(t, int64(0), other.SortOrder)

	err = svc.Homepage.ReorderSections(ctx, primary, []int64{b.ID, a.ID, other.ID})
	assertValidation(t, err, "ids")

	require.NoError(t, svc.Homepage.ReorderSections(ctx, primary, []int64{b.ID, a.ID}))
	list, err := svc.Homepage.ListSections(ctx, primary)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, b.ID, list[0].ID)
	assert.Equal(t, a.ID, list[1].ID)
}

func TestHomepageActiveSections(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	_, err := svc.Homepage.CreateSection(ctx, primary, HomepageSectionInput{Identifier: ptr("on")})
	require.NoError(t, err)
	_, err = svc.Homepage.CreateSection(ctx, primary, HomepageSectionInput{Identifier: ptr("off"), Active: ptr(false)})
	require.NoError(t, err)

	list, err := svc.Homepage.ListActiveSections(ctx, primary)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "on", list[0].Identifier)
}

func TestSlides(t *testing.T) {
	svc, notifier := newTestServices(t)
	ctx := context.Background()

	_, err := svc.Homepage.CreateSlide(ctx, primary, SlideInput{Title: ptr("No image")})
	assertValidation(t, err, "image")

	s1, err := svc.Homepage.CreateSlide(ctx, primary, SlideInput{Title: ptr("One"), Image: ptr("/uploads/1.jpg")})
	require.NoError(t, err)
	s2, err := svc.Homepage.CreateSlide(ctx, primary, SlideInput{Title: ptr("Two"), Image: ptr("/uploads/2.jpg"), Active: ptr(false)})
	require.NoError(t, err)
	assert.Equal(t, int64(0), s1.SortOrder)
	assert.Equal(t, int64(1), s2.SortOrder)
	assert.True(t, notifier.Has(primary, revalidate.ForTag(model.TagSlides)))

	active, err := svc.Homepage.ListActiveSlides(ctx, primary)
	require.NoError(t, err)
	require.Len(t, active, 1)

	updated, err := svc.Homepage.UpdateSlide(ctx, primary, s2.ID, SlideInput{Active: ptr(true), LinkText: ptr("More")})
	require.NoError(t, err)
	assert.Equal(t, "Two", updated.Title)
	assert.Equal(t, "More", updated.LinkText)

	require.NoError(t, svc.Homepage.ReorderSlides(ctx, primary, []int64{s2.ID, s1.ID}))
	all, err := svc.Homepage.ListSlides(ctx, primary)
	require.NoError(t, err)
	assert.Equal(t, s2.ID, all[0].ID)

	_, err = svc.Homepage.GetSlide(ctx, secondary, s1.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.Homepage.DeleteSlide(ctx, secondary, s1.ID), ErrNotFound)
	require.NoError(t, svc.Homepage.DeleteSlide(ctx, primary, s1.ID))
}
