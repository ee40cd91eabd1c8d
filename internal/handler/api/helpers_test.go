// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"github.com/olegiv/dualsite/internal/middleware"
	"github.com/olegiv/dualsite/internal/model"
	"github.com/olegiv/dualsite/internal/service"
	"github.com/olegiv/dualsite/internal/testutil"
)

const testPassword = "correct horse battery"

// testEnv is a running API backed by a migrated temporary database.
type testEnv struct {
	db       *sql.DB
	svc      *service.Services
	notifier *testutil.RecordingNotifier
	server   *httptest.Server
	client   *http.Client
}

type envOptions struct {
	notifier service.Notifier
	limiter  *middleware.IPRateLimiter
	login    *middleware.LoginProtection
	origins  []string
}

func newTestEnv(t *testing.T) *testEnv {
	return newTestEnvWith(t, envOptions{})
}

func newTestEnvWith(t *testing.T, opts envOptions) *testEnv {
	t.Helper()

	db, cleanup := testutil.TestDB(t)
	t.Cleanup(cleanup)

	recorder := &testutil.RecordingNotifier{}
	var notifier service.Notifier = recorder
	if opts.notifier != nil {
		notifier = opts.notifier
	}

	svc := service.New(db, notifier, testutil.DiscardLogger(), service.MediaConfig{
		UploadDir:     t.TempDir(),
		URLPrefix:     "/uploads/",
		MaxUploadSize: 1 << 20,
	})

	h := NewHandler(Config{
		Services:        svc,
		Sessions:        scs.New(),
		LoginProtection: opts.login,
		Logger:          testutil.DiscardLogger(),
	})

	r := chi.NewRouter()
	r.Mount("/api", h.Routes(RouterConfig{
		DB:            db,
		CORSOrigins:   opts.origins,
		PublicLimiter: opts.limiter,
	}))
	server := httptest.NewServer(r)
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar: %v", err)
	}

	return &testEnv{
		db:       db,
		svc:      svc,
		notifier: recorder,
		server:   server,
		client:   &http.Client{Jar: jar},
	}
}

// createUser adds a user with testPassword.
func (e *testEnv) createUser(t *testing.T, email, role string) {
	t.Helper()
	_, err := e.svc.Users.Create(context.Background(), service.UserInput{
		Email:    email,
		Name:     "Test User",
		Password: testPassword,
		Role:     role,
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
}

// signIn creates a user and logs the env client in as that user.
func (e *testEnv) signIn(t *testing.T, role string) {
	t.Helper()
	email := role + "@example.com"
	e.createUser(t, email, role)
	resp := e.do(t, http.MethodPost, "/api/auth/login", LoginRequest{Email: email, Password: testPassword})
	assertStatus(t, resp, http.StatusOK)
}

// do sends body as JSON (or as is when it is an io.Reader) and returns
// the response with its body buffered.
func (e *testEnv) do(t *testing.T, method, path string, body any) *response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		if r, ok := body.(io.Reader); ok {
			reader = r
		} else {
			b, err := json.Marshal(body)
			if err != nil {
				t.Fatalf("marshal body: %v", err)
			}
			reader = bytes.NewReader(b)
		}
	}
	req, err := http.NewRequest(method, e.server.URL+path, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		if _, ok := body.(io.Reader); !ok {
			req.Header.Set("Content-Type", "application/json")
		}
	}
	return e.send(t, req)
}

// form posts an urlencoded body.
func (e *testEnv) form(t *testing.T, path, encoded string) *response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, e.server.URL+path, strings.NewReader(encoded))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return e.send(t, req)
}

func (e *testEnv) send(t *testing.T, req *http.Request) *response {
	t.Helper()
	resp, err := e.client.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", req.Method, req.URL.Path, err)
	}
	defer func() { _ = resp.Body.Close() }()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return &response{Response: resp, body: b}
}

type response struct {
	*http.Response
	body []byte
}

// dataResponse is a generic wrapper for API responses with a "data" field.
type dataResponse[T any] struct {
	Data T     `json:"data"`
	Meta *Meta `json:"meta"`
}

// unmarshalData unmarshals the data field of a response body.
func unmarshalData[T any](t *testing.T, r *response) T {
	t.Helper()
	var resp dataResponse[T]
	if err := json.Unmarshal(r.body, &resp); err != nil {
		t.Fatalf("failed to unmarshal response %q: %v", r.body, err)
	}
	return resp.Data
}

// unmarshalList unmarshals a list response body.
func unmarshalList[T any](t *testing.T, r *response) ([]T, *Meta) {
	t.Helper()
	var resp dataResponse[[]T]
	if err := json.Unmarshal(r.body, &resp); err != nil {
		t.Fatalf("failed to unmarshal response %q: %v", r.body, err)
	}
	return resp.Data, resp.Meta
}

func assertStatus(t *testing.T, r *response, expected int) {
	t.Helper()
	if r.StatusCode != expected {
		t.Fatalf("expected status %d, got %d: %s", expected, r.StatusCode, r.body)
	}
}

// assertErrorCode checks the status and error code of a response.
func assertErrorCode(t *testing.T, r *response, status int, code string) ErrorDetail {
	t.Helper()
	assertStatus(t, r, status)
	var resp ErrorResponse
	if err := json.Unmarshal(r.body, &resp); err != nil {
		t.Fatalf("failed to unmarshal error %q: %v", r.body, err)
	}
	if resp.Error.Code != code {
		t.Errorf("expected code %q, got %q", code, resp.Error.Code)
	}
	return resp.Error
}

func ptr[T any](v T) *T {
	return &v
}

const (
	primary   = model.WebsitePrimary
	secondary = model.WebsiteSecondary
)
