// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/olegiv/dualsite/internal/model"
	"github.com/olegiv/dualsite/internal/revalidate"
	"github.com/olegiv/dualsite/internal/service"
	"github.com/olegiv/dualsite/internal/store"
)

type idTitle struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

func TestTenantRoutesRequireWebsite(t *testing.T) {
	env := newTestEnv(t)
	env.signIn(t, model.RoleEditor)

	for _, path := range []string{
		"/api/admin/pages",
		"/api/admin/pages?website=",
		"/api/admin/pages?website=tertiary",
		"/api/admin/blog/posts?website=Primary",
		"/api/admin/settings",
	} {
		resp := env.do(t, http.MethodGet, path, nil)
		assertErrorCode(t, resp, http.StatusBadRequest, CodeInvalidWebsite)
	}

	// global routes need no website
	resp := env.do(t, http.MethodGet, "/api/admin/tags", nil)
	assertStatus(t, resp, http.StatusOK)
}

func TestPageCRUD(t *testing.T) {
	env := newTestEnv(t)
	env.signIn(t, model.RoleEditor)

	resp := env.do(t, http.MethodPost, "/api/admin/pages?website=primary",
		service.PageInput{Title: ptr("Über uns")})
	assertStatus(t, resp, http.StatusCreated)
	page := unmarshalData[store.Page](t, resp)
	if page.Slug != "ueber-uns" || page.Website != "primary" {
		t.Fatalf("page = %+v", page)
	}
	if !env.notifier.Has(primary, revalidate.ForPath("/ueber-uns")) {
		t.Error("expected revalidation of the page path")
	}

	pagePath := fmt.Sprintf("/api/admin/pages/%d", page.ID)

	// tenant isolation
	resp = env.do(t, http.MethodGet, pagePath+"?website=secondary", nil)
	assertErrorCode(t, resp, http.StatusNotFound, CodeNotFound)

	resp = env.do(t, http.MethodPut, pagePath+"?website=primary",
		service.PageInput{Title: ptr("About"), Slug: ptr("about")})
	assertStatus(t, resp, http.StatusOK)
	if got := unmarshalData[store.Page](t, resp); got.Slug != "about" || got.Title != "About" {
		t.Errorf("updated = %+v", got)
	}

	resp = env.do(t, http.MethodGet, "/api/admin/pages?website=primary", nil)
	pages, meta := unmarshalList[idTitle](t, resp)
	if len(pages) != 1 || meta.Total != 1 {
		t.Fatalf("pages = %+v", pages)
	}

	resp = env.do(t, http.MethodGet, "/api/admin/pages?website=secondary", nil)
	if pages, _ := unmarshalList[idTitle](t, resp); len(pages) != 0 {
		t.Errorf("secondary pages = %+v", pages)
	}

	resp = env.do(t, http.MethodDelete, pagePath+"?website=primary", nil)
	assertStatus(t, resp, http.StatusNoContent)

	resp = env.do(t, http.MethodDelete, pagePath+"?website=primary", nil)
	assertErrorCode(t, resp, http.StatusNotFound, CodeNotFound)
}

func TestPageErrors(t *testing.T) {
	env := newTestEnv(t)
	env.signIn(t, model.RoleEditor)

	resp := env.do(t, http.MethodPost, "/api/admin/pages?website=primary", service.PageInput{})
	detail := assertErrorCode(t, resp, http.StatusUnprocessableEntity, CodeValidation)
	if detail.Details["field"] != "title" {
		t.Errorf("field = %v", detail.Details["field"])
	}

	resp = env.do(t, http.MethodPost, "/api/admin/pages?website=primary",
		service.PageInput{Website: "secondary", Title: ptr("x")})
	assertErrorCode(t, resp, http.StatusBadRequest, CodeInvalidWebsite)

	resp = env.do(t, http.MethodPost, "/api/admin/pages?website=primary",
		service.PageInput{Title: ptr("Services")})
	assertStatus(t, resp, http.StatusCreated)
	resp = env.do(t, http.MethodPost, "/api/admin/pages?website=primary",
		service.PageInput{Title: ptr("Services")})
	detail = assertErrorCode(t, resp, http.StatusConflict, CodeConflict)
	if detail.Details["field"] != "slug" || detail.Details["value"] != "services" {
		t.Errorf("details = %v", detail.Details)
	}

	resp = env.do(t, http.MethodGet, "/api/admin/pages/abc?website=primary", nil)
	assertErrorCode(t, resp, http.StatusBadRequest, CodeBadRequest)
}

func TestPageSectionsReorder(t *testing.T) {
	env := newTestEnv(t)
	env.signIn(t, model.RoleEditor)

	resp := env.do(t, http.MethodPost, "/api/admin/pages?website=primary",
		service.PageInput{Title: ptr("Leistungen")})
	page := unmarshalData[store.Page](t, resp)
	base := fmt.Sprintf("/api/admin/pages/%d/sections", page.ID)

	var ids []int64
	for _, title := range []string{"One", "Two", "Three"} {
		resp = env.do(t, http.MethodPost, base+"?website=primary",
			map[string]any{"type": "text-image", "title": title})
		assertStatus(t, resp, http.StatusCreated)
		ids = append(ids, unmarshalData[idTitle](t, resp).ID)
	}

	resp = env.do(t, http.MethodPost, base+"/reorder?website=primary",
		ReorderRequest{IDs: []int64{ids[2], ids[0], ids[1]}})
	assertStatus(t, resp, http.StatusOK)
	sections, _ := unmarshalList[idTitle](t, resp)
	got := []string{sections[0].Title, sections[1].Title, sections[2].Title}
	if got[0] != "Three" || got[1] != "One" || got[2] != "Two" {
		t.Errorf("order = %v", got)
	}

	// a partial list is rejected
	resp = env.do(t, http.MethodPost, base+"/reorder?website=primary",
		ReorderRequest{IDs: []int64{ids[0], ids[1]}})
	assertErrorCode(t, resp, http.StatusUnprocessableEntity, CodeValidation)

	// the page belongs to primary only
	resp = env.do(t, http.MethodGet, base+"?website=secondary", nil)
	assertErrorCode(t, resp, http.StatusNotFound, CodeNotFound)

	resp = env.do(t, http.MethodDelete, fmt.Sprintf("%s/%d?website=primary", base, ids[0]), nil)
	assertStatus(t, resp, http.StatusNoContent)
}

func TestSlidesReorder(t *testing.T) {
	env := newTestEnv(t)
	env.signIn(t, model.RoleEditor)

	var ids []int64
	for _, title := range []string{"A", "B"} {
		resp := env.do(t, http.MethodPost, "/api/admin/slides?website=secondary",
			service.SlideInput{Title: ptr(title), Image: ptr("/uploads/" + title + ".jpg")})
		assertStatus(t, resp, http.StatusCreated)
		ids = append(ids, unmarshalData[idTitle](t, resp).ID)
	}

	resp := env.do(t, http.MethodPost, "/api/admin/slides/reorder?website=secondary",
		ReorderRequest{IDs: []int64{ids[1], ids[0]}})
	assertStatus(t, resp, http.StatusOK)
	slides, _ := unmarshalList[idTitle](t, resp)
	if slides[0].Title != "B" {
		t.Errorf("first slide = %q, want B", slides[0].Title)
	}

	// ids of another website do not belong to this list
	resp = env.do(t, http.MethodPost, "/api/admin/slides/reorder?website=primary",
		ReorderRequest{IDs: []int64{ids[1], ids[0]}})
	assertErrorCode(t, resp, http.StatusUnprocessableEntity, CodeValidation)
}

func TestCategoryDeleteReferenced(t *testing.T) {
	env := newTestEnv(t)
	env.signIn(t, model.RoleEditor)

	resp := env.do(t, http.MethodPost, "/api/admin/blog/categories?website=primary",
		service.CategoryInput{Name: ptr("News")})
	assertStatus(t, resp, http.StatusCreated)
	category := unmarshalData[store.BlogCategory](t, resp)

	resp = env.do(t, http.MethodPost, "/api/admin/blog/posts?website=primary", map[string]any{
		"title":       "Hello",
		"content":     "<p>Hi</p>",
		"category_id": category.ID,
		"tags":        []string{"Go"},
	})
	assertStatus(t, resp, http.StatusCreated)

	resp = env.do(t, http.MethodDelete,
		fmt.Sprintf("/api/admin/blog/categories/%d?website=primary", category.ID), nil)
	detail := assertErrorCode(t, resp, http.StatusConflict, CodeReferenced)
	if detail.Details["blocking_count"] != float64(1) {
		t.Errorf("blocking_count = %v", detail.Details["blocking_count"])
	}
}

func TestCreateTagIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	env.signIn(t, model.RoleEditor)

	resp := env.do(t, http.MethodPost, "/api/admin/tags", service.TagInput{Name: ptr("Kubernetes")})
	assertStatus(t, resp, http.StatusCreated)
	first := unmarshalData[store.Tag](t, resp)

	resp = env.do(t, http.MethodPost, "/api/admin/tags", service.TagInput{Name: ptr("kubernetes")})
	assertStatus(t, resp, http.StatusOK)
	if again := unmarshalData[store.Tag](t, resp); again.ID != first.ID {
		t.Errorf("got tag %d, want %d", again.ID, first.ID)
	}

	resp = env.do(t, http.MethodGet, "/api/admin/tags", nil)
	tags, _ := unmarshalList[store.TagWithCount](t, resp)
	if len(tags) != 1 || tags[0].PostCount != 0 {
		t.Errorf("tags = %+v", tags)
	}
}

func TestApplicationsAdmin(t *testing.T) {
	env := newTestEnv(t)
	env.signIn(t, model.RoleEditor)

	resp := env.do(t, http.MethodPost, "/api/admin/jobs?website=primary", service.JobInput{
		Title:  ptr("Backend Developer"),
		Status: ptr(model.JobStatusPublished),
	})
	assertStatus(t, resp, http.StatusCreated)
	job := unmarshalData[store.JobListing](t, resp)

	resp = env.do(t, http.MethodPost, "/api/public/jobs/"+job.Slug+"/apply?website=primary",
		service.ApplicationInput{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"})
	assertStatus(t, resp, http.StatusCreated)

	resp = env.do(t, http.MethodGet, "/api/admin/applications?website=primary&status=new", nil)
	apps, _ := unmarshalList[service.Application](t, resp)
	if len(apps) != 1 {
		t.Fatalf("applications = %d, want 1", len(apps))
	}

	resp = env.do(t, http.MethodPatch, fmt.Sprintf("/api/admin/applications/%d?website=primary", apps[0].ID),
		service.ApplicationUpdate{Status: ptr(model.ApplicationStatusReviewing), Notes: ptr("call back")})
	assertStatus(t, resp, http.StatusOK)
	if app := unmarshalData[service.Application](t, resp); app.Status != model.ApplicationStatusReviewing {
		t.Errorf("status = %q", app.Status)
	}

	resp = env.do(t, http.MethodGet, fmt.Sprintf("/api/admin/jobs/%d/applications?website=primary", job.ID), nil)
	if apps, _ := unmarshalList[service.Application](t, resp); len(apps) != 1 {
		t.Errorf("job applications = %d, want 1", len(apps))
	}

	resp = env.do(t, http.MethodGet, "/api/admin/dashboard?website=primary", nil)
	stats, _ := unmarshalList[service.DashboardStats](t, resp)
	if len(stats) != 1 || stats[0].NewApplications != 0 || stats[0].Applications != 1 {
		t.Errorf("stats = %+v", stats)
	}

	// applications go with their listing
	resp = env.do(t, http.MethodDelete, fmt.Sprintf("/api/admin/jobs/%d?website=primary", job.ID), nil)
	assertStatus(t, resp, http.StatusNoContent)
	resp = env.do(t, http.MethodGet, fmt.Sprintf("/api/admin/applications/%d?website=primary", apps[0].ID), nil)
	assertErrorCode(t, resp, http.StatusNotFound, CodeNotFound)
}

func TestDashboard(t *testing.T) {
	env := newTestEnv(t)
	env.signIn(t, model.RoleEditor)

	resp := env.do(t, http.MethodGet, "/api/admin/dashboard", nil)
	assertStatus(t, resp, http.StatusOK)
	stats, _ := unmarshalList[service.DashboardStats](t, resp)
	if len(stats) != 2 || stats[0].Website != primary || stats[1].Website != secondary {
		t.Errorf("stats = %+v", stats)
	}

	resp = env.do(t, http.MethodGet, "/api/admin/dashboard?website=other", nil)
	assertErrorCode(t, resp, http.StatusBadRequest, CodeInvalidWebsite)
}

func TestSettingsAndMessages(t *testing.T) {
	env := newTestEnv(t)
	env.signIn(t, model.RoleEditor)

	resp := env.do(t, http.MethodPut, "/api/admin/settings?website=primary", map[string]string{
		"site_name": "Primary",
	})
	assertStatus(t, resp, http.StatusOK)
	if settings := unmarshalData[map[string]string](t, resp); settings["site_name"] != "Primary" {
		t.Errorf("settings = %v", settings)
	}

	resp = env.do(t, http.MethodPost, "/api/public/contact?website=primary", service.ContactInput{
		Name: "Max", Email: "max@example.com", Message: "Hallo",
	})
	assertStatus(t, resp, http.StatusCreated)

	resp = env.do(t, http.MethodGet, "/api/admin/contact-messages?website=primary&status=unread", nil)
	msgs, _ := unmarshalList[store.ContactMessage](t, resp)
	if len(msgs) != 1 {
		t.Fatalf("unread = %d, want 1", len(msgs))
	}

	resp = env.do(t, http.MethodPatch, fmt.Sprintf("/api/admin/contact-messages/%d?website=primary", msgs[0].ID),
		service.MessageUpdate{Read: ptr(true)})
	assertStatus(t, resp, http.StatusOK)

	resp = env.do(t, http.MethodGet, "/api/admin/contact-messages?website=primary&status=unread", nil)
	if msgs, _ := unmarshalList[store.ContactMessage](t, resp); len(msgs) != 0 {
		t.Errorf("unread after read = %d", len(msgs))
	}

	resp = env.do(t, http.MethodGet, "/api/admin/contact-messages?website=primary&status=bogus", nil)
	assertErrorCode(t, resp, http.StatusUnprocessableEntity, CodeValidation)

	// messages of primary are invisible to secondary
	resp = env.do(t, http.MethodGet, fmt.Sprintf("/api/admin/contact-messages/%d?website=secondary", msgs[0].ID), nil)
	assertErrorCode(t, resp, http.StatusNotFound, CodeNotFound)
}
