// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testDB creates a migrated database in a temporary directory.
func testDB(t *testing.T, driver string) *sql.DB {
	t.Helper()

	cfg := DefaultDBConfig()
	cfg.Driver = driver
	db, err := NewDBWithConfig(filepath.Join(t.TempDir(), "test.db"), cfg)
	require.NoError(t, err, "NewDB")
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, Migrate(db), "Migrate")
	return db
}

func createTestPage(t *testing.T, q *Queries, website, slug string) Page {
	t.Helper()
	p, err := q.CreatePage(context.Background(), CreatePageParams{
		Website:    website,
		PageFields: PageFields{Slug: slug, Title: "Page " + slug, Active: true},
		CreatedAt:  Now(),
	})
	require.NoError(t, err)
	return p
}

func TestCreateUser(t *testing.T) {
	db := testDB(t, DriverModernc)
	ctx := context.Background()
	q := New(db)

	now := Now()
	user, err := q.CreateUser(ctx, CreateUserParams{
		Email:        "test@example.com",
		PasswordHash: "hashed-password",
		Role:         "editor",
		Name:         "Test User",
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "editor", user.Role)
	assert.True(t, now.Equal(user.CreatedAt), "created_at round trip: %v vs %v", now, user.CreatedAt)
	assert.Nil(t, user.LastLoginAt)

	got, err := q.GetUserByEmail(ctx, "TEST@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = q.GetUserByEmail(ctx, "missing@example.com")
	assert.True(t, IsNotFound(err))

	_, err = q.CreateUser(ctx, CreateUserParams{Email: "test@example.com", PasswordHash: "x", Role: "editor", CreatedAt: now, UpdatedAt: now})
	assert.True(t, IsUniqueViolation(err), "duplicate email: %v", err)
}

func TestSeed(t *testing.T) {
	db := testDB(t, DriverModernc)
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	admin := AdminSeed{Email: "admin@example.com", Password: "a long admin password"}

	require.NoError(t, Seed(ctx, db, admin, logger))
	require.NoError(t, Seed(ctx, db, admin, logger), "second seed must be a no-op")

	count, err := New(db).CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	user, err := New(db).GetUserByEmail(ctx, admin.Email)
	require.NoError(t, err)
	assert.Equal(t, "admin", user.Role)
	assert.Equal(t, "Administrator", user.Name)
}

func TestPageSlugUniquePerWebsite(t *testing.T) {
	db := testDB(t, DriverModernc)
	ctx := context.Background()
	q := New(db)

	first := createTestPage(t, q, "primary", "about")
	createTestPage(t, q, "secondary", "about")

	_, err := q.CreatePage(ctx, CreatePageParams{
		Website:    "primary",
		PageFields: PageFields{Slug: "about", Title: "Duplicate"},
		CreatedAt:  Now(),
	})
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))

	exists, err := q.PageSlugExists(ctx, "primary", "about", 0)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = q.PageSlugExists(ctx, "primary", "about", first.ID)
	require.NoError(t, err)
	assert.False(t, exists, "a page does not conflict with itself")

	_, err = q.GetPage(ctx, "secondary", first.ID)
	assert.True(t, IsNotFound(err), "page must not be visible from the other website")
}

func TestWebsiteCheckConstraint(t *testing.T) {
	db := testDB(t, DriverModernc)
	_, err := New(db).CreatePage(context.Background(), CreatePageParams{
		Website:    "tertiary",
		PageFields: PageFields{Slug: "x", Title: "x"},
		CreatedAt:  Now(),
	})
	assert.Error(t, err)
}

func TestPageSectionAppendAndCascade(t *testing.T) {
	db := testDB(t, DriverModernc)
	ctx := context.Background()
	q := New(db)

	page := createTestPage(t, q, "primary", "leistungen")
	other := createTestPage(t, q, "primary", "kontakt")

	var ids []int64
	for i := 0; i < 3; i++ {
		s, err := q.CreatePageSection(ctx, CreatePageSectionParams{
			PageID:            page.ID,
			PageSectionFields: PageSectionFields{Type: "hero", Active: true},
			CreatedAt:         Now(),
		})
		require.NoError(t, err)
		assert.Equal(t, int64(i), s.SortOrder)
		ids = append(ids, s.ID)
	}

	s, err := q.CreatePageSection(ctx, CreatePageSectionParams{
		PageID:            other.ID,
		PageSectionFields: PageSectionFields{Type: "hero"},
		CreatedAt:         Now(),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), s.SortOrder, "sort order is scoped to the page")

	n, err := q.DeletePage(ctx, "primary", page.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	count, err := q.CountPageSections(ctx, page.ID)
	require.NoError(t, err)
	assert.Zero(t, count, "sections are deleted with their page")

	count, err = q.CountPageSections(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestSectionCollectionsNullVersusEmpty(t *testing.T) {
	db := testDB(t, DriverModernc)
	ctx := context.Background()
	q := New(db)
	page := createTestPage(t, q, "primary", "start")

	s, err := q.CreatePageSection(ctx, CreatePageSectionParams{
		PageID: page.ID,
		PageSectionFields: PageSectionFields{
			Type: "triple-column",
			Collections: CollectionsJSON{
				Cards:   sql.NullString{String: `[{"title":"A","content":"B"}]`, Valid: true},
				Buttons: sql.NullString{String: `[]`, Valid: true},
			},
		},
		CreatedAt: Now(),
	})
	require.NoError(t, err)
	assert.Equal(t, `[{"title":"A","content":"B"}]`, s.CardsJSON.String)
	assert.True(t, s.ButtonsJSON.Valid)
	assert.Equal(t, "[]", s.ButtonsJSON.String)
	assert.False(t, s.ItemsJSON.Valid)
	assert.False(t, s.StatsJSON.Valid)
}

func TestJobListingCascadesApplications(t *testing.T) {
	db := testDB(t, DriverModernc)
	ctx := context.Background()
	q := New(db)

	job, err := q.CreateJobListing(ctx, CreateJobListingParams{
		Website:          "secondary",
		JobListingFields: JobListingFields{Title: "Elektriker", Slug: "elektriker", Status: "published"},
		CreatedAt:        Now(),
	})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err := q.CreateJobApplication(ctx, CreateJobApplicationParams{
			JobListingID: job.ID, FirstName: "Max", LastName: "Muster", Email: "max@example.com", CreatedAt: Now(),
		})
		require.NoError(t, err)
	}

	total, fresh, err := q.CountJobApplications(ctx, "secondary")
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, int64(2), fresh)

	_, err = q.DeleteJobListing(ctx, "secondary", job.ID)
	require.NoError(t, err)

	count, err := q.CountApplicationsForListing(ctx, job.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestBlogCategoryRestrict(t *testing.T) {
	db := testDB(t, DriverModernc)
	ctx := context.Background()
	q := New(db)

	cat, err := q.CreateBlogCategory(ctx, CreateBlogCategoryParams{Website: "primary", Name: "News", Slug: "news", CreatedAt: Now()})
	require.NoError(t, err)

	_, err = q.CreateBlogPost(ctx, CreateBlogPostParams{
		Website:        "primary",
		BlogPostFields: BlogPostFields{Title: "Hallo", Slug: "hallo", CategoryID: &cat.ID},
		CreatedAt:      Now(),
	})
	require.NoError(t, err)

	_, err = q.DeleteBlogCategory(ctx, "primary", cat.ID)
	require.Error(t, err)
	assert.True(t, IsForeignKeyViolation(err), "expected FK violation, got %v", err)
}

func TestPublishedBlogPostFilter(t *testing.T) {
	db := testDB(t, DriverModernc)
	ctx := context.Background()
	q := New(db)

	now := Now()
	future := now.Add(time.Hour)
	past := now.Add(-time.Hour)

	for _, p := range []BlogPostFields{
		{Title: "Draft", Slug: "draft", Published: false},
		{Title: "Scheduled", Slug: "scheduled", Published: true, PublishedAt: &future},
		{Title: "Live", Slug: "live", Published: true, PublishedAt: &past},
		{Title: "Undated", Slug: "undated", Published: true},
	} {
		_, err := q.CreateBlogPost(ctx, CreateBlogPostParams{Website: "primary", BlogPostFields: p, CreatedAt: now})
		require.NoError(t, err)
	}

	arg := ListPublishedBlogPostsParams{Website: "primary", Now: now, Limit: 10}
	posts, err := q.ListPublishedBlogPosts(ctx, arg)
	require.NoError(t, err)
	var slugs []string
	for _, p := range posts {
		slugs = append(slugs, p.Slug)
	}
	assert.ElementsMatch(t, []string{"live", "undated"}, slugs)

	_, err = q.GetPublishedBlogPostBySlug(ctx, "primary", "scheduled", now)
	assert.True(t, IsNotFound(err))

	_, err = q.GetPublishedBlogPostBySlug(ctx, "primary", "scheduled", future.Add(time.Second))
	assert.NoError(t, err, "scheduled post becomes visible after its publish date")
}

func TestUpserts(t *testing.T) {
	db := testDB(t, DriverModernc)
	ctx := context.Background()
	q := New(db)

	h, err := q.UpsertPageHeader(ctx, UpsertPageHeaderParams{Website: "primary", PageSlug: "kontakt", Title: "Kontakt", UpdatedAt: Now()})
	require.NoError(t, err)
	h2, err := q.UpsertPageHeader(ctx, UpsertPageHeaderParams{Website: "primary", PageSlug: "kontakt", Title: "Schreiben Sie uns", UpdatedAt: Now()})
	require.NoError(t, err)
	assert.Equal(t, h.ID, h2.ID)
	assert.Equal(t, "Schreiben Sie uns", h2.Title)

	_, err = q.UpsertPageHeader(ctx, UpsertPageHeaderParams{Website: "secondary", PageSlug: "kontakt", Title: "Other", UpdatedAt: Now()})
	require.NoError(t, err)
	headers, err := q.ListPageHeaders(ctx, "primary")
	require.NoError(t, err)
	assert.Len(t, headers, 1)

	require.NoError(t, q.UpsertSetting(ctx, "primary", "company_name", "A", Now()))
	require.NoError(t, q.UpsertSetting(ctx, "primary", "company_name", "B", Now()))
	require.NoError(t, q.UpsertSetting(ctx, "secondary", "company_name", "C", Now()))
	settings, err := q.ListSettings(ctx, "primary")
	require.NoError(t, err)
	require.Len(t, settings, 1)
	assert.Equal(t, "B", settings[0].Value)

	l, err := q.UpsertLegalPage(ctx, UpsertLegalPageParams{Website: "primary", Type: "impressum", Content: "v1", LastUpdated: Now()})
	require.NoError(t, err)
	l2, err := q.UpsertLegalPage(ctx, UpsertLegalPageParams{Website: "primary", Type: "impressum", Content: "v2", LastUpdated: Now()})
	require.NoError(t, err)
	assert.Equal(t, l.ID, l2.ID)
	assert.Equal(t, "v2", l2.Content)
}

func TestMediaUsageCounts(t *testing.T) {
	db := testDB(t, DriverModernc)
	ctx := context.Background()
	q := New(db)

	url := "/uploads/3f1c.jpg"
	_, err := q.CreateBlogPost(ctx, CreateBlogPostParams{
		Website:        "primary",
		BlogPostFields: BlogPostFields{Title: "Bild", Slug: "bild", Content: `<img src="` + url + `">`},
		CreatedAt:      Now(),
	})
	require.NoError(t, err)
	_, err = q.CreateJobListing(ctx, CreateJobListingParams{
		Website:          "secondary",
		JobListingFields: JobListingFields{Title: "Job", Slug: "job", Status: "draft", Benefits: url},
		CreatedAt:        Now(),
	})
	require.NoError(t, err)

	posts, err := q.CountBlogPostsUsingURL(ctx, url)
	require.NoError(t, err)
	assert.Equal(t, int64(1), posts)

	jobs, err := q.CountJobListingsUsingURL(ctx, url)
	require.NoError(t, err)
	assert.Equal(t, int64(1), jobs)
}

func TestInTxRollsBack(t *testing.T) {
	db := testDB(t, DriverModernc)
	ctx := context.Background()

	err := InTx(ctx, db, func(q *Queries) error {
		if err := q.UpsertSetting(ctx, "primary", "a", "1", Now()); err != nil {
			return err
		}
		return sql.ErrTxDone
	})
	require.ErrorIs(t, err, sql.ErrTxDone)

	settings, err := New(db).ListSettings(ctx, "primary")
	require.NoError(t, err)
	assert.Empty(t, settings)
}

func TestCGODriver(t *testing.T) {
	db := testDB(t, DriverCGO)
	ctx := context.Background()
	q := New(db)

	page := createTestPage(t, q, "primary", "about")
	_, err := q.CreatePage(ctx, CreatePageParams{Website: "primary", PageFields: PageFields{Slug: "about", Title: "x"}, CreatedAt: Now()})
	assert.True(t, IsUniqueViolation(err), "unique violation via cgo driver: %v", err)

	_, err = q.CreatePageSection(ctx, CreatePageSectionParams{PageID: page.ID, PageSectionFields: PageSectionFields{Type: "hero"}, CreatedAt: Now()})
	require.NoError(t, err)
	_, err = q.DeletePage(ctx, "primary", page.ID)
	require.NoError(t, err)
	count, err := q.CountPageSections(ctx, page.ID)
	require.NoError(t, err)
	assert.Zero(t, count, "foreign keys are enforced with the cgo driver")
}

func TestUnsupportedDriver(t *testing.T) {
	cfg := DefaultDBConfig()
	cfg.Driver = "postgres"
	_, err := NewDBWithConfig(filepath.Join(t.TempDir(), "x.db"), cfg)
	assert.Error(t, err)
}
