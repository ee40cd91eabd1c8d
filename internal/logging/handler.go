// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package logging provides a slog handler that enriches records logged with a
// request context. It adds the request ID, request path, website and the
// signed-in user to every record that carries them.
package logging

import (
	"context"
	"log/slog"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/olegiv/dualsite/internal/middleware"
	"github.com/olegiv/dualsite/internal/model"
	"github.com/olegiv/dualsite/internal/store"
)

// Attribute keys added by ContextHandler.
const (
	KeyRequestID   = "request_id"
	KeyRequestPath = "request_path"
	KeyWebsite     = "website"
	KeyUserID      = "user_id"
)

// ContextHandler is a slog.Handler that wraps another handler and copies
// request-scoped values from the record's context into its attributes.
type ContextHandler struct {
	inner slog.Handler
}

// NewContextHandler creates a new ContextHandler that wraps the given handler.
func NewContextHandler(inner slog.Handler) *ContextHandler {
	return &ContextHandler{inner: inner}
}

// Enabled implements slog.Handler.
func (h *ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if ctx != nil {
		if attrs := contextAttrs(ctx, r); len(attrs) > 0 {
			r = r.Clone()
			r.AddAttrs(attrs...)
		}
	}
	return h.inner.Handle(ctx, r)
}

// WithAttrs implements slog.Handler.
func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{inner: h.inner.WithAttrs(attrs)}
}

// WithGroup implements slog.Handler.
func (h *ContextHandler) WithGroup(name string) slog.Handler {
	return &ContextHandler{inner: h.inner.WithGroup(name)}
}

// contextAttrs collects request values not already set on the record.
func contextAttrs(ctx context.Context, r slog.Record) []slog.Attr {
	present := make(map[string]bool, 4)
	r.Attrs(func(a slog.Attr) bool {
		switch a.Key {
		case KeyRequestID, KeyRequestPath, KeyWebsite, KeyUserID:
			present[a.Key] = true
		}
		return true
	})

	var attrs []slog.Attr
	if id := chimw.GetReqID(ctx); id != "" && !present[KeyRequestID] {
		attrs = append(attrs, slog.String(KeyRequestID, id))
	}
	if path := middleware.GetRequestPath(ctx); path != "" && !present[KeyRequestPath] {
		attrs = append(attrs, slog.String(KeyRequestPath, path))
	}
	if w, ok := ctx.Value(middleware.ContextKeyWebsite).(model.Website); ok && !present[KeyWebsite] {
		attrs = append(attrs, slog.String(KeyWebsite, string(w)))
	}
	if u, ok := ctx.Value(middleware.ContextKeyUser).(*store.User); ok && u != nil && !present[KeyUserID] {
		attrs = append(attrs, slog.Int64(KeyUserID, u.ID))
	}
	return attrs
}
