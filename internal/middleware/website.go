// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"net/http"

	"github.com/olegiv/dualsite/internal/model"
)

// WebsiteParam is the query parameter selecting the tenant.
const WebsiteParam = "website"

// RequireWebsite validates the website query parameter before any handler
// runs. Absent or unknown values are answered with 400 invalid_website.
func RequireWebsite(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		website, err := model.ParseWebsite(r.URL.Query().Get(WebsiteParam))
		if err != nil {
			WriteAPIError(w, http.StatusBadRequest, "invalid_website",
				"website must be one of: primary, secondary", nil)
			return
		}
		ctx := context.WithValue(r.Context(), ContextKeyWebsite, website)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetWebsite returns the website stored by RequireWebsite.
// The second value is false when the middleware did not run.
func GetWebsite(r *http.Request) (model.Website, bool) {
	w, ok := r.Context().Value(ContextKeyWebsite).(model.Website)
	return w, ok
}
