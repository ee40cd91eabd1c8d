// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/olegiv/dualsite/internal/middleware"
	"github.com/olegiv/dualsite/internal/model"
	"github.com/olegiv/dualsite/internal/service"
)

// Dashboard handles GET /api/admin/dashboard[?website=]
// Without a website the counts of both websites are returned.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	websites := model.Websites
	if raw := r.URL.Query().Get(middleware.WebsiteParam); raw != "" {
		website, err := model.ParseWebsite(raw)
		if err != nil {
			h.writeServiceError(w, r, err, "dashboard")
			return
		}
		websites = []model.Website{website}
	}

	stats := make([]service.DashboardStats, 0, len(websites))
	for _, website := range websites {
		s, err := h.svc.Dashboard.Stats(r.Context(), website)
		if err != nil {
			h.writeServiceError(w, r, err, "dashboard")
			return
		}
		stats = append(stats, s)
	}
	WriteList(w, stats)
}

// ListUsers handles GET /api/admin/users
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.Users.List(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err, "user")
		return
	}
	WriteList(w, users)
}

// CreateUser handles POST /api/admin/users
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var in service.UserInput
	if !decodeJSON(w, r, &in) {
		return
	}
	user, err := h.svc.Users.Create(r.Context(), in)
	if err != nil {
		h.writeServiceError(w, r, err, "user")
		return
	}
	h.logger.InfoContext(r.Context(), "user created", "created_user_id", user.ID, "role", user.Role)
	WriteCreated(w, user)
}
