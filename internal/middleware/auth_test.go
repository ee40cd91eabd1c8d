// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/dualsite/internal/model"
	"github.com/olegiv/dualsite/internal/store"
	"github.com/olegiv/dualsite/internal/testutil"
)

// sessionCookie signs in userID on sm and returns the session cookie.
func sessionCookie(t *testing.T, sm *scs.SessionManager, userID int64) *http.Cookie {
	t.Helper()
	login := sm.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sm.Put(r.Context(), SessionKeyUserID, userID)
	}))
	rr := httptest.NewRecorder()
	login.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/login", nil))
	cookies := rr.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("no session cookie set")
	}
	return cookies[0]
}

func decodeAPIError(t *testing.T, rr *httptest.ResponseRecorder) APIError {
	t.Helper()
	var apiErr APIError
	if err := json.Unmarshal(rr.Body.Bytes(), &apiErr); err != nil {
		t.Fatalf("decoding error body %q: %v", rr.Body.String(), err)
	}
	return apiErr
}

func TestAuthRejectsAnonymous(t *testing.T) {
	sm := scs.New()
	called := false
	h := sm.LoadAndSave(Auth(sm)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/admin/pages", nil))

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rr.Code)
	}
	if called {
		t.Error("handler should not run for anonymous requests")
	}
	if got := decodeAPIError(t, rr).Error.Code; got != "unauthorized" {
		t.Errorf("code = %q, want unauthorized", got)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
}

func TestAuthAndLoadUser(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	now := store.Now()
	user, err := store.New(db).CreateUser(context.Background(), store.CreateUserParams{
		Email:        "editor@example.com",
		Name:         "Editor",
		PasswordHash: "x",
		Role:         model.RoleEditor,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	sm := scs.New()
	var got *store.User
	h := sm.LoadAndSave(Auth(sm)(LoadUser(sm, db)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetUser(r)
	}))))

	t.Run("known user", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(sessionCookie(t, sm, user.ID))
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rr.Code)
		}
		if got == nil || got.ID != user.ID {
			t.Fatalf("GetUser() = %v, want user %d", got, user.ID)
		}
	})

	t.Run("deleted user", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(sessionCookie(t, sm, user.ID+100))
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)

		if rr.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", rr.Code)
		}
	})
}

func TestGetUser(t *testing.T) {
	t.Run("no user in context", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if user := GetUser(req); user != nil {
			t.Errorf("GetUser() = %v, want nil", user)
		}
		if id := GetUserID(req); id != 0 {
			t.Errorf("GetUserID() = %d, want 0", id)
		}
		if p := GetUserIDPtr(req); p != nil {
			t.Errorf("GetUserIDPtr() = %v, want nil", p)
		}
	})

	t.Run("user in context", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		ctx := context.WithValue(req.Context(), ContextKeyUser, store.User{ID: 123, Email: "test@example.com"})
		req = req.WithContext(ctx)

		if user := GetUser(req); user == nil || user.Email != "test@example.com" {
			t.Errorf("GetUser() = %v, want test user", user)
		}
		if p := GetUserIDPtr(req); p == nil || *p != 123 {
			t.Errorf("GetUserIDPtr() = %v, want 123", p)
		}
	})
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name    string
		user    *store.User
		minRole string
		want    int
	}{
		{"anonymous", nil, model.RoleEditor, http.StatusUnauthorized},
		{"editor allowed as editor", &store.User{ID: 1, Role: model.RoleEditor}, model.RoleEditor, http.StatusOK},
		{"admin allowed as editor", &store.User{ID: 2, Role: model.RoleAdmin}, model.RoleEditor, http.StatusOK},
		{"editor denied admin", &store.User{ID: 3, Role: model.RoleEditor}, model.RoleAdmin, http.StatusForbidden},
		{"unknown role denied", &store.User{ID: 4, Role: "viewer"}, model.RoleEditor, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := RequireRole(tt.minRole)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))
			req := httptest.NewRequest(http.MethodPost, "/api/admin/users", nil)
			if tt.user != nil {
				req = req.WithContext(context.WithValue(req.Context(), ContextKeyUser, *tt.user))
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			if rr.Code != tt.want {
				t.Errorf("status = %d, want %d", rr.Code, tt.want)
			}
		})
	}
}

func TestRequestPath(t *testing.T) {
	var got string
	h := RequestPath(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetRequestPath(r.Context())
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/public/pages?website=primary", nil))

	if got != "/api/public/pages" {
		t.Errorf("GetRequestPath() = %q, want /api/public/pages", got)
	}
	if p := GetRequestPath(context.Background()); p != "" {
		t.Errorf("GetRequestPath(empty) = %q, want empty", p)
	}
}
