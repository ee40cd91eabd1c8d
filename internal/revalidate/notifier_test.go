// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package revalidate

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/dualsite/internal/model"
)

type resultLog struct {
	mu      sync.Mutex
	results []string
}

func (l *resultLog) record(website, result string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.results = append(l.results, website+":"+result)
}

func (l *resultLog) all() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.results...)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNotifySendsPayload(t *testing.T) {
	var mu sync.Mutex
	var got []payload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		var p payload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&p))
		mu.Lock()
		got = append(got, p)
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	log := &resultLog{}
	n := New(Config{
		URLs:     map[model.Website]string{model.WebsitePrimary: srv.URL},
		Secret:   "s3cret",
		Logger:   discardLogger(),
		OnResult: log.record,
	})

	n.Notify(model.WebsitePrimary, ForTag(model.TagSections), ForPath("/leistungen"))
	n.Wait()

	require.Len(t, got, 2)
	assert.ElementsMatch(t, []payload{
		{Secret: "s3cret", Tag: "sections"},
		{Secret: "s3cret", Path: "/leistungen"},
	}, got)
	assert.Equal(t, []string{"primary:ok", "primary:ok"}, log.all())
}

func TestNotifyServerErrorIsSwallowed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	log := &resultLog{}
	n := New(Config{
		URLs:     map[model.Website]string{model.WebsiteSecondary: srv.URL},
		Logger:   discardLogger(),
		OnResult: log.record,
	})

	n.Notify(model.WebsiteSecondary, ForTag(model.TagSlides))
	n.Wait()

	assert.Equal(t, []string{"secondary:error"}, log.all())
}

func TestNotifyTimeoutIsBounded(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	log := &resultLog{}
	n := New(Config{
		URLs:     map[model.Website]string{model.WebsitePrimary: srv.URL},
		Timeout:  50 * time.Millisecond,
		Logger:   discardLogger(),
		OnResult: log.record,
	})

	start := time.Now()
	n.Notify(model.WebsitePrimary, ForTag(model.TagPages))
	assert.Less(t, time.Since(start), 50*time.Millisecond, "Notify must not block")

	n.Wait()
	assert.Less(t, time.Since(start), 2*time.Second)
	assert.Equal(t, []string{"primary:error"}, log.all())
}

func TestNotifyWithoutURL(t *testing.T) {
	log := &resultLog{}
	n := New(Config{
		URLs:     map[model.Website]string{model.WebsitePrimary: ""},
		Logger:   discardLogger(),
		OnResult: log.record,
	})

	n.Notify(model.WebsitePrimary, ForTag(model.TagHomepage))
	n.Wait()

	assert.Equal(t, []string{"primary:not_configured"}, log.all())
}

func TestNotifyBlockPrivate(t *testing.T) {
	var hits int
	var mu sync.Mutex
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		hits++
		mu.Unlock()
	}))
	defer srv.Close()

	log := &resultLog{}
	n := New(Config{
		URLs:         map[model.Website]string{model.WebsiteSecondary: srv.URL},
		Logger:       discardLogger(),
		OnResult:     log.record,
		BlockPrivate: true,
	})

	n.Notify(model.WebsiteSecondary, ForTag(model.TagHomepage))
	n.Wait()

	assert.Equal(t, []string{"secondary:error"}, log.all())
	mu.Lock()
	defer mu.Unlock()
	assert.Zero(t, hits)
}

func TestTargetString(t *testing.T) {
	assert.Equal(t, "tag:karriere-page", ForTag(model.TagKarrierePage).String())
	assert.Equal(t, "path:/impressum", ForPath("/impressum").String())
}
