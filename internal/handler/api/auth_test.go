// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"testing"

	"github.com/olegiv/dualsite/internal/middleware"
	"github.com/olegiv/dualsite/internal/model"
	"github.com/olegiv/dualsite/internal/store"
)

func TestPrivateRoutesRequireSession(t *testing.T) {
	env := newTestEnv(t)

	paths := []string{
		"/api/admin/pages?website=primary",
		"/api/admin/dashboard",
		"/api/admin/tags",
		"/api/admin/media",
		"/api/auth/me",
	}
	for _, path := range paths {
		resp := env.do(t, http.MethodGet, path, nil)
		assertErrorCode(t, resp, http.StatusUnauthorized, CodeUnauthorized)
		if cc := resp.Header.Get("Cache-Control"); cc != "no-store" {
			t.Errorf("%s: Cache-Control = %q, want no-store", path, cc)
		}
	}
}

func TestLoginLogout(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "editor@example.com", model.RoleEditor)

	resp := env.do(t, http.MethodPost, "/api/auth/login",
		LoginRequest{Email: "Editor@Example.com", Password: testPassword})
	assertStatus(t, resp, http.StatusOK)
	user := unmarshalData[store.User](t, resp)
	if user.Email != "editor@example.com" {
		t.Errorf("email = %q", user.Email)
	}
	if len(resp.Cookies()) == 0 {
		t.Error("expected a session cookie")
	}

	resp = env.do(t, http.MethodGet, "/api/auth/me", nil)
	assertStatus(t, resp, http.StatusOK)
	if me := unmarshalData[store.User](t, resp); me.ID != user.ID {
		t.Errorf("me = %d, want %d", me.ID, user.ID)
	}

	resp = env.do(t, http.MethodPost, "/api/auth/logout", nil)
	assertStatus(t, resp, http.StatusNoContent)

	resp = env.do(t, http.MethodGet, "/api/auth/me", nil)
	assertErrorCode(t, resp, http.StatusUnauthorized, CodeUnauthorized)
}

func TestLoginFailures(t *testing.T) {
	env := newTestEnv(t)
	env.createUser(t, "editor@example.com", model.RoleEditor)

	resp := env.do(t, http.MethodPost, "/api/auth/login",
		LoginRequest{Email: "editor@example.com", Password: "wrong password"})
	assertErrorCode(t, resp, http.StatusUnauthorized, CodeUnauthorized)

	resp = env.do(t, http.MethodPost, "/api/auth/login",
		LoginRequest{Email: "nobody@example.com", Password: testPassword})
	assertErrorCode(t, resp, http.StatusUnauthorized, CodeUnauthorized)

	resp = env.do(t, http.MethodPost, "/api/auth/login", LoginRequest{Password: testPassword})
	assertErrorCode(t, resp, http.StatusUnprocessableEntity, CodeValidation)
}

func TestLoginLockout(t *testing.T) {
	env := newTestEnvWith(t, envOptions{
		login: middleware.NewLoginProtection(middleware.LoginProtectionConfig{
			IPRateLimit:       100,
			IPBurst:           100,
			MaxFailedAttempts: 3,
		}),
	})
	env.createUser(t, "editor@example.com", model.RoleEditor)

	var resp *response
	for range 10 {
		resp = env.do(t, http.MethodPost, "/api/auth/login",
			LoginRequest{Email: "editor@example.com", Password: "wrong password"})
		if resp.StatusCode != http.StatusUnauthorized {
			break
		}
	}
	assertErrorCode(t, resp, http.StatusTooManyRequests, CodeAccountLocked)
	if resp.Header.Get("Retry-After") == "" {
		t.Error("expected Retry-After header")
	}

	// The right password does not help while locked.
	resp = env.do(t, http.MethodPost, "/api/auth/login",
		LoginRequest{Email: "editor@example.com", Password: testPassword})
	assertErrorCode(t, resp, http.StatusTooManyRequests, CodeAccountLocked)
}

func TestUsersRequireAdmin(t *testing.T) {
	env := newTestEnv(t)
	env.signIn(t, model.RoleEditor)

	resp := env.do(t, http.MethodGet, "/api/admin/users", nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected status %d, got %d", http.StatusForbidden, resp.StatusCode)
	}

	admin := newTestEnv(t)
	admin.signIn(t, model.RoleAdmin)
	resp = admin.do(t, http.MethodPost, "/api/admin/users", map[string]string{
		"email": "new@example.com", "name": "New", "password": testPassword,
	})
	assertStatus(t, resp, http.StatusCreated)
	if u := unmarshalData[store.User](t, resp); u.Role != model.RoleEditor {
		t.Errorf("role = %q, want editor", u.Role)
	}

	resp = admin.do(t, http.MethodPost, "/api/admin/users", map[string]string{
		"email": "new@example.com", "name": "Again", "password": testPassword,
	})
	assertErrorCode(t, resp, http.StatusConflict, CodeConflict)

	resp = admin.do(t, http.MethodGet, "/api/admin/users", nil)
	users, meta := unmarshalList[store.User](t, resp)
	if len(users) != 2 || meta.Total != 2 {
		t.Errorf("users = %d, total = %d", len(users), meta.Total)
	}
}
