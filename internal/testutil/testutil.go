// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package testutil provides shared test helpers.
package testutil

import (
	"database/sql"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"

	"github.com/olegiv/dualsite/internal/model"
	"github.com/olegiv/dualsite/internal/revalidate"
	"github.com/olegiv/dualsite/internal/store"
)

// TestLogger creates a test logger that only outputs warnings and errors.
func TestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
}

// DiscardLogger drops everything.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestDB creates a temporary database with migrations applied.
// Returns the database and a cleanup function that should be deferred.
func TestDB(t *testing.T) (*sql.DB, func()) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "dualsite-test.db")
	db, err := store.NewDB(dbPath)
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	if err := store.Migrate(db); err != nil {
		_ = db.Close()
		t.Fatalf("Migrate: %v", err)
	}
	return db, func() {
		_ = db.Close()
	}
}

// Notification is one recorded revalidation request.
type Notification struct {
	Website model.Website
	Target  revalidate.Target
}

// RecordingNotifier captures revalidation requests instead of sending them.
type RecordingNotifier struct {
	mu    sync.Mutex
	calls []Notification
}

// Notify records every target.
func (n *RecordingNotifier) Notify(website model.Website, targets ...revalidate.Target) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, t := range targets {
		n.calls = append(n.calls, Notification{Website: website, Target: t})
	}
}

// Calls returns a copy of the recorded notifications.
func (n *RecordingNotifier) Calls() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return slices.Clone(n.calls)
}

// Has reports whether target was requested for website.
func (n *RecordingNotifier) Has(website model.Website, target revalidate.Target) bool {
	return slices.Contains(n.Calls(), Notification{Website: website, Target: target})
}

// Reset forgets all recorded notifications.
func (n *RecordingNotifier) Reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = nil
}
