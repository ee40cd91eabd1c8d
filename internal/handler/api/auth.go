// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/olegiv/dualsite/internal/middleware"
	"github.com/olegiv/dualsite/internal/service"
)

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/auth/login.
// Repeated failures for one email lock the account for a while; the
// session token is renewed on success to prevent fixation.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		WriteValidationError(w, "email", "email is required")
		return
	}
	if req.Password == "" {
		WriteValidationError(w, "password", "password is required")
		return
	}

	if locked, remaining := h.login.IsAccountLocked(email); locked {
		writeLocked(w, remaining)
		return
	}

	ctx := r.Context()
	user, err := h.svc.Users.Authenticate(ctx, email, req.Password)
	if err != nil {
		if !errors.Is(err, service.ErrInvalidCredentials) {
			h.writeServiceError(w, r, err, "user")
			return
		}
		if locked, remaining := h.login.RecordFailedAttempt(email); locked {
			h.logger.WarnContext(ctx, "account locked after failed logins", "email", email)
			writeLocked(w, remaining)
			return
		}
		WriteUnauthorized(w, "Invalid email or password")
		return
	}
	h.login.RecordSuccessfulLogin(email)

	if err := h.sessions.RenewToken(ctx); err != nil {
		h.logger.ErrorContext(ctx, "failed to renew session token", "error", err)
		WriteInternalError(w, "An internal error occurred")
		return
	}
	h.sessions.Put(ctx, middleware.SessionKeyUserID, user.ID)
	h.logger.InfoContext(ctx, "user logged in", "user_id", user.ID, "email", user.Email)

	WriteSuccess(w, user, nil)
}

// Logout handles POST /api/auth/logout.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Destroy(r.Context()); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to destroy session", "error", err)
		WriteInternalError(w, "An internal error occurred")
		return
	}
	WriteNoContent(w)
}

// Me handles GET /api/auth/me.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		WriteUnauthorized(w, "Authentication required")
		return
	}
	WriteSuccess(w, user, nil)
}

func writeLocked(w http.ResponseWriter, remaining time.Duration) {
	seconds := int(math.Ceil(remaining.Seconds()))
	w.Header().Set("Retry-After", strconv.Itoa(seconds))
	WriteError(w, http.StatusTooManyRequests, CodeAccountLocked,
		"Too many failed login attempts, try again later", map[string]any{
			"retry_after": seconds,
		})
}
