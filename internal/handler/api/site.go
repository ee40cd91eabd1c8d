// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/dualsite/internal/service"
)

// ListPageHeaders handles GET /api/admin/page-headers?website=
func (h *Handler) ListPageHeaders(w http.ResponseWriter, r *http.Request) {
	headers, err := h.svc.Site.ListHeaders(r.Context(), websiteOf(r))
	if err != nil {
		h.writeServiceError(w, r, err, "page header")
		return
	}
	WriteList(w, headers)
}

// GetPageHeader handles GET /api/admin/page-headers/{pageSlug}?website=
func (h *Handler) GetPageHeader(w http.ResponseWriter, r *http.Request) {
	header, err := h.svc.Site.GetHeader(r.Context(), websiteOf(r), chi.URLParam(r, "pageSlug"))
	if err != nil {
		h.writeServiceError(w, r, err, "page header")
		return
	}
	WriteSuccess(w, header, nil)
}

// UpsertPageHeader handles PUT /api/admin/page-headers/{pageSlug}?website=
func (h *Handler) UpsertPageHeader(w http.ResponseWriter, r *http.Request) {
	var in service.HeaderInput
	if !decodeJSON(w, r, &in) {
		return
	}
	header, err := h.svc.Site.UpsertHeader(r.Context(), websiteOf(r), chi.URLParam(r, "pageSlug"), in)
	if err != nil {
		h.writeServiceError(w, r, err, "page header")
		return
	}
	WriteSuccess(w, header, nil)
}

// ListLegalPages handles GET /api/admin/legal-pages?website=
func (h *Handler) ListLegalPages(w http.ResponseWriter, r *http.Request) {
	pages, err := h.svc.Site.ListLegal(r.Context(), websiteOf(r))
	if err != nil {
		h.writeServiceError(w, r, err, "legal page")
		return
	}
	WriteList(w, pages)
}

// GetLegalPage handles GET /api/admin/legal-pages/{type}?website=
func (h *Handler) GetLegalPage(w http.ResponseWriter, r *http.Request) {
	page, err := h.svc.Site.GetLegal(r.Context(), websiteOf(r), chi.URLParam(r, "type"))
	if err != nil {
		h.writeServiceError(w, r, err, "legal page")
		return
	}
	WriteSuccess(w, page, nil)
}

// UpsertLegalPage handles PUT /api/admin/legal-pages/{type}?website=
func (h *Handler) UpsertLegalPage(w http.ResponseWriter, r *http.Request) {
	var in service.LegalInput
	if !decodeJSON(w, r, &in) {
		return
	}
	page, err := h.svc.Site.UpsertLegal(r.Context(), websiteOf(r), chi.URLParam(r, "type"), in)
	if err != nil {
		h.writeServiceError(w, r, err, "legal page")
		return
	}
	WriteSuccess(w, page, nil)
}

// GetSettings handles GET /api/admin/settings?website=
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.svc.Site.Settings(r.Context(), websiteOf(r))
	if err != nil {
		h.writeServiceError(w, r, err, "settings")
		return
	}
	WriteSuccess(w, settings, nil)
}

// UpdateSettings handles PUT /api/admin/settings?website=
// The body is a flat key-value map; all keys are written in one transaction.
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var values map[string]string
	if !decodeJSON(w, r, &values) {
		return
	}
	settings, err := h.svc.Site.UpdateSettings(r.Context(), websiteOf(r), values)
	if err != nil {
		h.writeServiceError(w, r, err, "settings")
		return
	}
	WriteSuccess(w, settings, nil)
}

// ListContactMessages handles GET /api/admin/contact-messages?website=&status=
func (h *Handler) ListContactMessages(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.svc.Site.ListMessages(r.Context(), websiteOf(r), r.URL.Query().Get("status"))
	if err != nil {
		h.writeServiceError(w, r, err, "contact message")
		return
	}
	WriteList(w, msgs)
}

// GetContactMessage handles GET /api/admin/contact-messages/{id}?website=
func (h *Handler) GetContactMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "id", "contact message")
	if !ok {
		return
	}
	msg, err := h.svc.Site.GetMessage(r.Context(), websiteOf(r), id)
	if err != nil {
		h.writeServiceError(w, r, err, "contact message")
		return
	}
	WriteSuccess(w, msg, nil)
}

// UpdateContactMessage handles PATCH /api/admin/contact-messages/{id}?website=
func (h *Handler) UpdateContactMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "id", "contact message")
	if !ok {
		return
	}
	var in service.MessageUpdate
	if !decodeJSON(w, r, &in) {
		return
	}
	msg, err := h.svc.Site.UpdateMessage(r.Context(), websiteOf(r), id, in)
	if err != nil {
		h.writeServiceError(w, r, err, "contact message")
		return
	}
	WriteSuccess(w, msg, nil)
}

// DeleteContactMessage handles DELETE /api/admin/contact-messages/{id}?website=
func (h *Handler) DeleteContactMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "id", "contact message")
	if !ok {
		return
	}
	if err := h.svc.Site.DeleteMessage(r.Context(), websiteOf(r), id); err != nil {
		h.writeServiceError(w, r, err, "contact message")
		return
	}
	WriteNoContent(w)
}
