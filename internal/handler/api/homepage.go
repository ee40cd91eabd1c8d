// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/olegiv/dualsite/internal/service"
)

// ListHomepageSections handles GET /api/admin/homepage-sections?website=
func (h *Handler) ListHomepageSections(w http.ResponseWriter, r *http.Request) {
	sections, err := h.svc.Homepage.ListSections(r.Context(), websiteOf(r))
	if err != nil {
		h.writeServiceError(w, r, err, "homepage section")
		return
	}
	WriteList(w, sections)
}

// GetHomepageSection handles GET /api/admin/homepage-sections/{id}?website=
func (h *Handler) GetHomepageSection(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "id", "homepage section")
	if !ok {
		return
	}
	section, err := h.svc.Homepage.GetSection(r.Context(), websiteOf(r), id)
	if err != nil {
		h.writeServiceError(w, r, err, "homepage section")
		return
	}
	WriteSuccess(w, section, nil)
}

// CreateHomepageSection handles POST /api/admin/homepage-sections?website=
func (h *Handler) CreateHomepageSection(w http.ResponseWriter, r *http.Request) {
	var in service.HomepageSectionInput
	if !decodeJSON(w, r, &in) {
		return
	}
	section, err := h.svc.Homepage.CreateSection(r.Context(), websiteOf(r), in)
	if err != nil {
		h.writeServiceError(w, r, err, "homepage section")
		return
	}
	WriteCreated(w, section)
}

// UpdateHomepageSection handles PUT /api/admin/homepage-sections/{id}?website=
func (h *Handler) UpdateHomepageSection(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "id", "homepage section")
	if !ok {
		return
	}
	var in service.HomepageSectionInput
	if !decodeJSON(w, r, &in) {
		return
	}
	section, err := h.svc.Homepage.UpdateSection(r.Context(), websiteOf(r), id, in)
	if err != nil {
		h.writeServiceError(w, r, err, "homepage section")
		return
	}
	WriteSuccess(w, section, nil)
}

// DeleteHomepageSection handles DELETE /api/admin/homepage-sections/{id}?website=
func (h *Handler) DeleteHomepageSection(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "id", "homepage section")
	if !ok {
		return
	}
	if err := h.svc.Homepage.DeleteSection(r.Context(), websiteOf(r), id); err != nil {
		h.writeServiceError(w, r, err, "homepage section")
		return
	}
	WriteNoContent(w)
}

// ReorderHomepageSections handles POST /api/admin/homepage-sections/reorder?website=
func (h *Handler) ReorderHomepageSections(w http.ResponseWriter, r *http.Request) {
	var in ReorderRequest
	if !decodeJSON(w, r, &in) {
		return
	}
	ctx := r.Context()
	website := websiteOf(r)
	if err := h.svc.Homepage.ReorderSections(ctx, website, in.IDs); err != nil {
		h.writeServiceError(w, r, err, "homepage section")
		return
	}
	sections, err := h.svc.Homepage.ListSections(ctx, website)
	if err != nil {
		h.writeServiceError(w, r, err, "homepage section")
		return
	}
	WriteList(w, sections)
}

// ListSlides handles GET /api/admin/slides?website=
func (h *Handler) ListSlides(w http.ResponseWriter, r *http.Request) {
	slides, err := h.svc.Homepage.ListSlides(r.Context(), websiteOf(r))
	if err != nil {
		h.writeServiceError(w, r, err, "slide")
		return
	}
	WriteList(w, slides)
}

// GetSlide handles GET /api/admin/slides/{id}?website=
func (h *Handler) GetSlide(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "id", "slide")
	if !ok {
		return
	}
	slide, err := h.svc.Homepage.GetSlide(r.Context(), websiteOf(r), id)
	if err != nil {
		h.writeServiceError(w, r, err, "slide")
		return
	}
	WriteSuccess(w, slide, nil)
}

// CreateSlide handles POST /api/admin/slides?website=
func (h *Handler) CreateSlide(w http.ResponseWriter, r *http.Request) {
	var in service.SlideInput
	if !decodeJSON(w, r, &in) {
		return
	}
	slide, err := h.svc.Homepage.CreateSlide(r.Context(), websiteOf(r), in)
	if err != nil {
		h.writeServiceError(w, r, err, "slide")
		return
	}
	WriteCreated(w, slide)
}

// UpdateSlide handles PUT /api/admin/slides/{id}?website=
func (h *Handler) UpdateSlide(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "id", "slide")
	if !ok {
		return
	}
	var in service.SlideInput
	if !decodeJSON(w, r, &in) {
		return
	}
	slide, err := h.svc.Homepage.UpdateSlide(r.Context(), websiteOf(r), id, in)
	if err != nil {
		h.writeServiceError(w, r, err, "slide")
		return
	}
	WriteSuccess(w, slide, nil)
}

// DeleteSlide handles DELETE /api/admin/slides/{id}?website=
func (h *Handler) DeleteSlide(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "id", "slide")
	if !ok {
		return
	}
	if err := h.svc.Homepage.DeleteSlide(r.Context(), websiteOf(r), id); err != nil {
		h.writeServiceError(w, r, err, "slide")
		return
	}
	WriteNoContent(w)
}

// ReorderSlides handles POST /api/admin/slides/reorder?website=
func (h *Handler) ReorderSlides(w http.ResponseWriter, r *http.Request) {
	var in ReorderRequest
	if !decodeJSON(w, r, &in) {
		return
	}
	ctx := r.Context()
	website := websiteOf(r)
	if err := h.svc.Homepage.ReorderSlides(ctx, website, in.IDs); err != nil {
		h.writeServiceError(w, r, err, "slide")
		return
	}
	slides, err := h.svc.Homepage.ListSlides(ctx, website)
	if err != nil {
		h.writeServiceError(w, r, err, "slide")
		return
	}
	WriteList(w, slides)
}
