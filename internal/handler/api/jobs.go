// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/olegiv/dualsite/internal/handler"
	"github.com/olegiv/dualsite/internal/service"
)

// ListJobs handles GET /api/admin/jobs?website=&status=
func (h *Handler) ListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.svc.Jobs.List(r.Context(), websiteOf(r), r.URL.Query().Get("status"))
	if err != nil {
		h.writeServiceError(w, r, err, "job listing")
		return
	}
	WriteList(w, jobs)
}

// GetJob handles GET /api/admin/jobs/{id}?website=
func (h *Handler) GetJob(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "id", "job listing")
	if !ok {
		return
	}
	job, err := h.svc.Jobs.Get(r.Context(), websiteOf(r), id)
	if err != nil {
		h.writeServiceError(w, r, err, "job listing")
		return
	}
	WriteSuccess(w, job, nil)
}

// CreateJob handles POST /api/admin/jobs?website=
func (h *Handler) CreateJob(w http.ResponseWriter, r *http.Request) {
	var in service.JobInput
	if !decodeJSON(w, r, &in) {
		return
	}
	job, err := h.svc.Jobs.Create(r.Context(), websiteOf(r), in)
	if err != nil {
		h.writeServiceError(w, r, err, "job listing")
		return
	}
	WriteCreated(w, job)
}

// UpdateJob handles PUT /api/admin/jobs/{id}?website=
func (h *Handler) UpdateJob(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "id", "job listing")
	if !ok {
		return
	}
	var in service.JobInput
	if !decodeJSON(w, r, &in) {
		return
	}
	job, err := h.svc.Jobs.Update(r.Context(), websiteOf(r), id, in)
	if err != nil {
		h.writeServiceError(w, r, err, "job listing")
		return
	}
	WriteSuccess(w, job, nil)
}

// DeleteJob handles DELETE /api/admin/jobs/{id}?website=
// Applications of the listing are deleted with it.
func (h *Handler) DeleteJob(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "id", "job listing")
	if !ok {
		return
	}
	if err := h.svc.Jobs.Delete(r.Context(), websiteOf(r), id); err != nil {
		h.writeServiceError(w, r, err, "job listing")
		return
	}
	WriteNoContent(w)
}

// ListJobApplications handles GET /api/admin/jobs/{id}/applications?website=&status=
func (h *Handler) ListJobApplications(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "id", "job listing")
	if !ok {
		return
	}
	ctx := r.Context()
	website := websiteOf(r)
	if _, err := h.svc.Jobs.Get(ctx, website, id); err != nil {
		h.writeServiceError(w, r, err, "job listing")
		return
	}
	apps, err := h.svc.Jobs.ListApplications(ctx, website, service.ApplicationFilter{
		JobListingID: id,
		Status:       r.URL.Query().Get("status"),
	})
	if err != nil {
		h.writeServiceError(w, r, err, "application")
		return
	}
	WriteList(w, apps)
}

// ListApplications handles GET /api/admin/applications?website=&status=&job=
func (h *Handler) ListApplications(w http.ResponseWriter, r *http.Request) {
	apps, err := h.svc.Jobs.ListApplications(r.Context(), websiteOf(r), service.ApplicationFilter{
		JobListingID: handler.ParseQueryInt64(r, "job"),
		Status:       r.URL.Query().Get("status"),
	})
	if err != nil {
		h.writeServiceError(w, r, err, "application")
		return
	}
	WriteList(w, apps)
}

// GetApplication handles GET /api/admin/applications/{id}?website=
func (h *Handler) GetApplication(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "id", "application")
	if !ok {
		return
	}
	app, err := h.svc.Jobs.GetApplication(r.Context(), websiteOf(r), id)
	if err != nil {
		h.writeServiceError(w, r, err, "application")
		return
	}
	WriteSuccess(w, app, nil)
}

// UpdateApplication handles PATCH /api/admin/applications/{id}?website=
func (h *Handler) UpdateApplication(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "id", "application")
	if !ok {
		return
	}
	var in service.ApplicationUpdate
	if !decodeJSON(w, r, &in) {
		return
	}
	app, err := h.svc.Jobs.UpdateApplication(r.Context(), websiteOf(r), id, in)
	if err != nil {
		h.writeServiceError(w, r, err, "application")
		return
	}
	WriteSuccess(w, app, nil)
}
