// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/olegiv/dualsite/internal/service"
)

// ReorderRequest is the body of every reorder endpoint: the complete list
// of sibling IDs in their new order.
type ReorderRequest struct {
	IDs []int64 `json:"ids"`
}

// ListPages handles GET /api/admin/pages?website=
func (h *Handler) ListPages(w http.ResponseWriter, r *http.Request) {
	pages, err := h.svc.Pages.List(r.Context(), websiteOf(r))
	if err != nil {
		h.writeServiceError(w, r, err, "page")
		return
	}
	WriteList(w, pages)
}

// GetPage handles GET /api/admin/pages/{id}?website=
func (h *Handler) GetPage(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "id", "page")
	if !ok {
		return
	}
	page, err := h.svc.Pages.Get(r.Context(), websiteOf(r), id)
	if err != nil {
		h.writeServiceError(w, r, err, "page")
		return
	}
	WriteSuccess(w, page, nil)
}

// CreatePage handles POST /api/admin/pages?website=
func (h *Handler) CreatePage(w http.ResponseWriter, r *http.Request) {
	var in service.PageInput
	if !decodeJSON(w, r, &in) {
		return
	}
	page, err := h.svc.Pages.Create(r.Context(), websiteOf(r), in)
	if err != nil {
		h.writeServiceError(w, r, err, "page")
		return
	}
	WriteCreated(w, page)
}

// UpdatePage handles PUT /api/admin/pages/{id}?website=
func (h *Handler) UpdatePage(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "id", "page")
	if !ok {
		return
	}
	var in service.PageInput
	if !decodeJSON(w, r, &in) {
		return
	}
	page, err := h.svc.Pages.Update(r.Context(), websiteOf(r), id, in)
	if err != nil {
		h.writeServiceError(w, r, err, "page")
		return
	}
	WriteSuccess(w, page, nil)
}

// DeletePage handles DELETE /api/admin/pages/{id}?website=
// Sections of the page are removed with it.
func (h *Handler) DeletePage(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "id", "page")
	if !ok {
		return
	}
	if err := h.svc.Pages.Delete(r.Context(), websiteOf(r), id); err != nil {
		h.writeServiceError(w, r, err, "page")
		return
	}
	WriteNoContent(w)
}

// ListPageSections handles GET /api/admin/pages/{id}/sections?website=
func (h *Handler) ListPageSections(w http.ResponseWriter, r *http.Request) {
	pageID, ok := requireID(w, r, "id", "page")
	if !ok {
		return
	}
	sections, err := h.svc.Pages.Sections(r.Context(), websiteOf(r), pageID)
	if err != nil {
		h.writeServiceError(w, r, err, "page")
		return
	}
	WriteList(w, sections)
}

// GetPageSection handles GET /api/admin/pages/{id}/sections/{sectionID}?website=
func (h *Handler) GetPageSection(w http.ResponseWriter, r *http.Request) {
	pageID, sectionID, ok := sectionIDs(w, r)
	if !ok {
		return
	}
	section, err := h.svc.Pages.Section(r.Context(), websiteOf(r), pageID, sectionID)
	if err != nil {
		h.writeServiceError(w, r, err, "section")
		return
	}
	WriteSuccess(w, section, nil)
}

// CreatePageSection handles POST /api/admin/pages/{id}/sections?website=
// The section is appended after the existing ones.
func (h *Handler) CreatePageSection(w http.ResponseWriter, r *http.Request) {
	pageID, ok := requireID(w, r, "id", "page")
	if !ok {
		return
	}
	var in service.SectionInput
	if !decodeJSON(w, r, &in) {
		return
	}
	section, err := h.svc.Pages.CreateSection(r.Context(), websiteOf(r), pageID, in)
	if err != nil {
		h.writeServiceError(w, r, err, "page")
		return
	}
	WriteCreated(w, section)
}

// UpdatePageSection handles PUT /api/admin/pages/{id}/sections/{sectionID}?website=
func (h *Handler) UpdatePageSection(w http.ResponseWriter, r *http.Request) {
	pageID, sectionID, ok := sectionIDs(w, r)
	if !ok {
		return
	}
	var in service.SectionInput
	if !decodeJSON(w, r, &in) {
		return
	}
	section, err := h.svc.Pages.UpdateSection(r.Context(), websiteOf(r), pageID, sectionID, in)
	if err != nil {
		h.writeServiceError(w, r, err, "section")
		return
	}
	WriteSuccess(w, section, nil)
}

// DeletePageSection handles DELETE /api/admin/pages/{id}/sections/{sectionID}?website=
func (h *Handler) DeletePageSection(w http.ResponseWriter, r *http.Request) {
	pageID, sectionID, ok := sectionIDs(w, r)
	if !ok {
		return
	}
	if err := h.svc.Pages.DeleteSection(r.Context(), websiteOf(r), pageID, sectionID); err != nil {
		h.writeServiceError(w, r, err, "section")
		return
	}
	WriteNoContent(w)
}

// ReorderPageSections handles POST /api/admin/pages/{id}/sections/reorder?website=
func (h *Handler) ReorderPageSections(w http.ResponseWriter, r *http.Request) {
	pageID, ok := requireID(w, r, "id", "page")
	if !ok {
		return
	}
	var in ReorderRequest
	if !decodeJSON(w, r, &in) {
		return
	}
	ctx := r.Context()
	website := websiteOf(r)
	if err := h.svc.Pages.ReorderSections(ctx, website, pageID, in.IDs); err != nil {
		h.writeServiceError(w, r, err, "page")
		return
	}
	sections, err := h.svc.Pages.Sections(ctx, website, pageID)
	if err != nil {
		h.writeServiceError(w, r, err, "page")
		return
	}
	WriteList(w, sections)
}

func sectionIDs(w http.ResponseWriter, r *http.Request) (pageID, sectionID int64, ok bool) {
	if pageID, ok = requireID(w, r, "id", "page"); !ok {
		return 0, 0, false
	}
	if sectionID, ok = requireID(w, r, "sectionID", "section"); !ok {
		return 0, 0, false
	}
	return pageID, sectionID, true
}
