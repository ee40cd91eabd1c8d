// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"mime"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/dualsite/internal/handler"
	"github.com/olegiv/dualsite/internal/service"
)

// maxFormMemory bounds the in-memory part of a multipart submission.
const maxFormMemory = 1 << 20

// PublicPages handles GET /api/public/pages?website=
func (h *Handler) PublicPages(w http.ResponseWriter, r *http.Request) {
	pages, err := h.svc.Pages.ListPublic(r.Context(), websiteOf(r))
	if err != nil {
		h.writeServiceError(w, r, err, "page")
		return
	}
	WriteList(w, pages)
}

// PublicPage handles GET /api/public/pages/{slug}?website=
// Inactive pages are reported as not found.
func (h *Handler) PublicPage(w http.ResponseWriter, r *http.Request) {
	page, err := h.svc.Pages.GetPublic(r.Context(), websiteOf(r), chi.URLParam(r, "slug"))
	if err != nil {
		h.writeServiceError(w, r, err, "page")
		return
	}
	WriteSuccess(w, page, nil)
}

// PublicNavigation handles GET /api/public/navigation?website=
func (h *Handler) PublicNavigation(w http.ResponseWriter, r *http.Request) {
	nav, err := h.svc.Pages.Navigation(r.Context(), websiteOf(r))
	if err != nil {
		h.writeServiceError(w, r, err, "navigation")
		return
	}
	WriteSuccess(w, nav, nil)
}

// PublicHomepageSections handles GET /api/public/homepage-sections?website=
func (h *Handler) PublicHomepageSections(w http.ResponseWriter, r *http.Request) {
	sections, err := h.svc.Homepage.ListActiveSections(r.Context(), websiteOf(r))
	if err != nil {
		h.writeServiceError(w, r, err, "homepage section")
		return
	}
	WriteList(w, sections)
}

// PublicSlides handles GET /api/public/slides?website=
func (h *Handler) PublicSlides(w http.ResponseWriter, r *http.Request) {
	slides, err := h.svc.Homepage.ListActiveSlides(r.Context(), websiteOf(r))
	if err != nil {
		h.writeServiceError(w, r, err, "slide")
		return
	}
	WriteList(w, slides)
}

// PublicPosts handles GET /api/public/blog/posts?website=&category=&tag=&page=&per_page=
func (h *Handler) PublicPosts(w http.ResponseWriter, r *http.Request) {
	page := handler.ParsePage(r)
	q := r.URL.Query()
	posts, total, err := h.svc.Blog.ListPublished(r.Context(), websiteOf(r), service.PostFilter{
		CategorySlug: strings.TrimSpace(q.Get("category")),
		TagSlug:      strings.TrimSpace(q.Get("tag")),
		Limit:        int64(page.Limit()),
		Offset:       int64(page.Offset()),
	})
	if err != nil {
		h.writeServiceError(w, r, err, "blog post")
		return
	}
	if posts == nil {
		posts = []service.Post{}
	}
	WriteSuccess(w, posts, &Meta{
		Total:   total,
		Page:    page.Number,
		PerPage: page.PerPage,
		Pages:   handler.TotalPages(total, page.PerPage),
	})
}

// PublicPost handles GET /api/public/blog/posts/{slug}?website=
func (h *Handler) PublicPost(w http.ResponseWriter, r *http.Request) {
	post, err := h.svc.Blog.GetPublished(r.Context(), websiteOf(r), chi.URLParam(r, "slug"))
	if err != nil {
		h.writeServiceError(w, r, err, "blog post")
		return
	}
	WriteSuccess(w, post, nil)
}

// PublicCategories handles GET /api/public/blog/categories?website=
func (h *Handler) PublicCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.Blog.ListCategories(r.Context(), websiteOf(r))
	if err != nil {
		h.writeServiceError(w, r, err, "category")
		return
	}
	WriteList(w, categories)
}

// PublicJobs handles GET /api/public/jobs?website=
func (h *Handler) PublicJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.svc.Jobs.ListPublished(r.Context(), websiteOf(r))
	if err != nil {
		h.writeServiceError(w, r, err, "job listing")
		return
	}
	WriteList(w, jobs)
}

// PublicJob handles GET /api/public/jobs/{slug}?website=
func (h *Handler) PublicJob(w http.ResponseWriter, r *http.Request) {
	job, err := h.svc.Jobs.GetPublished(r.Context(), websiteOf(r), chi.URLParam(r, "slug"))
	if err != nil {
		h.writeServiceError(w, r, err, "job listing")
		return
	}
	WriteSuccess(w, job, nil)
}

// PublicPageHeader handles GET /api/public/page-headers/{pageSlug}?website=
func (h *Handler) PublicPageHeader(w http.ResponseWriter, r *http.Request) {
	header, err := h.svc.Site.GetHeader(r.Context(), websiteOf(r), chi.URLParam(r, "pageSlug"))
	if err != nil {
		h.writeServiceError(w, r, err, "page header")
		return
	}
	WriteSuccess(w, header, nil)
}

// PublicLegalPage handles GET /api/public/legal/{type}?website=
func (h *Handler) PublicLegalPage(w http.ResponseWriter, r *http.Request) {
	page, err := h.svc.Site.GetLegal(r.Context(), websiteOf(r), chi.URLParam(r, "type"))
	if err != nil {
		h.writeServiceError(w, r, err, "legal page")
		return
	}
	WriteSuccess(w, page, nil)
}

// PublicSettings handles GET /api/public/settings?website=
// Only allow-listed keys are exposed.
func (h *Handler) PublicSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.svc.Site.PublicSettings(r.Context(), websiteOf(r))
	if err != nil {
		h.writeServiceError(w, r, err, "settings")
		return
	}
	WriteSuccess(w, settings, nil)
}

// SubmitContact handles POST /api/public/contact?website=
func (h *Handler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var in service.ContactInput
	if isJSON(r) {
		if !decodeJSON(w, r, &in) {
			return
		}
	} else {
		if !parseForm(w, r) {
			return
		}
		in = service.ContactInput{
			Name:    r.PostFormValue("name"),
			Email:   r.PostFormValue("email"),
			Phone:   r.PostFormValue("phone"),
			Company: r.PostFormValue("company"),
			Subject: r.PostFormValue("subject"),
			Message: r.PostFormValue("message"),
		}
	}

	msg, err := h.svc.Site.SubmitContact(r.Context(), websiteOf(r), in)
	if err != nil {
		h.writeServiceError(w, r, err, "contact message")
		return
	}
	h.logger.InfoContext(r.Context(), "contact message received", "message_id", msg.ID)
	WriteCreated(w, map[string]any{"id": msg.ID})
}

// SubmitApplication handles POST /api/public/jobs/{slug}/apply?website=
// Form bodies may repeat the certificates field once per URL.
func (h *Handler) SubmitApplication(w http.ResponseWriter, r *http.Request) {
	var in service.ApplicationInput
	if isJSON(r) {
		if !decodeJSON(w, r, &in) {
			return
		}
	} else {
		if !parseForm(w, r) {
			return
		}
		in = service.ApplicationInput{
			FirstName:   r.PostFormValue("first_name"),
			LastName:    r.PostFormValue("last_name"),
			Email:       r.PostFormValue("email"),
			Phone:       r.PostFormValue("phone"),
			CoverLetter: r.PostFormValue("cover_letter"),
			ResumeURL:   r.PostFormValue("resume_url"),
		}
		if certs, ok := r.PostForm["certificates"]; ok {
			in.Certificates = &certs
		}
	}

	app, err := h.svc.Jobs.Apply(r.Context(), websiteOf(r), chi.URLParam(r, "slug"), in)
	if err != nil {
		h.writeServiceError(w, r, err, "job listing")
		return
	}
	h.logger.InfoContext(r.Context(), "job application received",
		"application_id", app.ID, "job_listing_id", app.JobListingID)
	WriteCreated(w, map[string]any{"id": app.ID, "status": app.Status})
}

// isJSON reports whether the request body is JSON. A missing content
// type is treated as JSON.
func isJSON(r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(ct)
	return err == nil && mediaType == "application/json"
}

// parseForm parses an urlencoded or multipart body, writing 400 on failure.
func parseForm(w http.ResponseWriter, r *http.Request) bool {
	r.Body = http.MaxBytesReader(w, r.Body, MaxJSONBodySize)
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	var err error
	switch mediaType {
	case "multipart/form-data":
		err = r.ParseMultipartForm(maxFormMemory)
	case "application/x-www-form-urlencoded":
		err = r.ParseForm()
	default:
		WriteError(w, http.StatusUnsupportedMediaType, CodeBadRequest,
			"Content-Type must be application/json or a form encoding", nil)
		return false
	}
	if err != nil {
		WriteBadRequest(w, "Invalid form body", nil)
		return false
	}
	return true
}
