// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/olegiv/dualsite/internal/handler"
	"github.com/olegiv/dualsite/internal/middleware"
	"github.com/olegiv/dualsite/internal/service"
	"github.com/olegiv/dualsite/internal/store"
)

// multipartOverhead is added to the upload limit to leave room for the
// multipart boundaries and the alt and caption fields.
const multipartOverhead = 64 << 10

// MediaDeleteResponse reports how many content items still mention a
// deleted file.
type MediaDeleteResponse struct {
	ID      int64              `json:"id"`
	Usage   service.MediaUsage `json:"usage"`
	Warning string             `json:"warning,omitempty"`
}

// ListMedia handles GET /api/admin/media?page=&per_page=&search=&type=
func (h *Handler) ListMedia(w http.ResponseWriter, r *http.Request) {
	page := handler.ParsePage(r)
	q := r.URL.Query()
	items, total, err := h.svc.Media.List(r.Context(), service.MediaFilter{
		Search: strings.TrimSpace(q.Get("search")),
		Type:   q.Get("type"),
		Limit:  int64(page.Limit()),
		Offset: int64(page.Offset()),
	})
	if err != nil {
		h.writeServiceError(w, r, err, "media")
		return
	}
	if items == nil {
		items = []store.Medium{}
	}
	WriteSuccess(w, items, &Meta{
		Total:   total,
		Page:    page.Number,
		PerPage: page.PerPage,
		Pages:   handler.TotalPages(total, page.PerPage),
	})
}

// GetMedia handles GET /api/admin/media/{id}
func (h *Handler) GetMedia(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "id", "media")
	if !ok {
		return
	}
	m, err := h.svc.Media.Get(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err, "media")
		return
	}
	WriteSuccess(w, m, nil)
}

// UploadMedia handles POST /api/admin/media
// The file is sent in the multipart field "file" with optional "alt"
// and "caption" fields.
func (h *Handler) UploadMedia(w http.ResponseWriter, r *http.Request) {
	maxSize := h.svc.Media.MaxUploadSize()
	r.Body = http.MaxBytesReader(w, r.Body, maxSize+multipartOverhead)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			WriteValidationError(w, "file", fmt.Sprintf("file exceeds the maximum size of %d bytes", maxSize))
			return
		}
		WriteBadRequest(w, "Failed to parse multipart form", nil)
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("file")
	if err != nil {
		WriteValidationError(w, "file", "file is required")
		return
	}
	defer func() { _ = file.Close() }()

	m, err := h.svc.Media.Upload(r.Context(), file, service.UploadInput{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Alt:         r.FormValue("alt"),
		Caption:     r.FormValue("caption"),
		UploadedBy:  middleware.GetUserIDPtr(r),
	})
	if err != nil {
		h.writeServiceError(w, r, err, "media")
		return
	}
	h.logger.InfoContext(r.Context(), "media uploaded", "media_id", m.ID, "filename", m.Filename)
	WriteCreated(w, m)
}

// UpdateMedia handles PATCH /api/admin/media/{id}
func (h *Handler) UpdateMedia(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "id", "media")
	if !ok {
		return
	}
	var in service.MediaUpdate
	if !decodeJSON(w, r, &in) {
		return
	}
	m, err := h.svc.Media.Update(r.Context(), id, in)
	if err != nil {
		h.writeServiceError(w, r, err, "media")
		return
	}
	WriteSuccess(w, m, nil)
}

// DeleteMedia handles DELETE /api/admin/media/{id}
// Deletion always proceeds; content still mentioning the file is
// reported in the response as a warning.
func (h *Handler) DeleteMedia(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "id", "media")
	if !ok {
		return
	}
	usage, err := h.svc.Media.Delete(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err, "media")
		return
	}
	resp := MediaDeleteResponse{ID: id, Usage: usage}
	if usage.InUse() {
		resp.Warning = fmt.Sprintf("File was still referenced by %d blog post(s) and %d job listing(s)",
			usage.BlogPosts, usage.JobListings)
	}
	WriteSuccess(w, resp, nil)
}
