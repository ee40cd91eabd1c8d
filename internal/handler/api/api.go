// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package api provides the JSON handlers of the dashboard API and the public
// content API read by the marketing frontends.
package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/dualsite/internal/handler"
	"github.com/olegiv/dualsite/internal/middleware"
	"github.com/olegiv/dualsite/internal/model"
	"github.com/olegiv/dualsite/internal/service"
)

// MaxJSONBodySize limits JSON request bodies.
const MaxJSONBodySize = 1 << 20

// Error codes used in ErrorDetail.Code.
const (
	CodeBadRequest     = "bad_request"
	CodeValidation     = "validation_error"
	CodeInvalidWebsite = "invalid_website"
	CodeNotFound       = "not_found"
	CodeConflict       = "conflict"
	CodeReferenced     = "referenced"
	CodeUnauthorized   = "unauthorized"
	CodeForbidden      = "forbidden"
	CodeAccountLocked  = "account_locked"
	CodeInternal       = "internal_error"
)

// Handler holds shared dependencies for all API handlers.
type Handler struct {
	svc      *service.Services
	sessions *scs.SessionManager
	login    *middleware.LoginProtection
	logger   *slog.Logger
}

// Config configures a Handler.
type Config struct {
	Services *service.Services
	Sessions *scs.SessionManager
	// LoginProtection is optional; a default one is created when nil.
	LoginProtection *middleware.LoginProtection
	Logger          *slog.Logger
}

// NewHandler creates a new API handler.
func NewHandler(cfg Config) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	login := cfg.LoginProtection
	if login == nil {
		login = middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())
	}
	return &Handler{
		svc:      cfg.Services,
		sessions: cfg.Sessions,
		login:    login,
		logger:   logger,
	}
}

// Response is the standard API response wrapper.
type Response struct {
	Data any   `json:"data"`
	Meta *Meta `json:"meta,omitempty"`
}

// Meta contains pagination and other metadata.
type Meta struct {
	Total   int64 `json:"total"`
	Page    int   `json:"page,omitempty"`
	PerPage int   `json:"per_page,omitempty"`
	Pages   int   `json:"pages,omitempty"`
}

// ErrorResponse is the standard API error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteSuccess writes a successful JSON response.
func WriteSuccess(w http.ResponseWriter, data any, meta *Meta) {
	WriteJSON(w, http.StatusOK, Response{Data: data, Meta: meta})
}

// WriteList writes a list with its total count. A nil slice is sent as [].
func WriteList[T any](w http.ResponseWriter, items []T) {
	if items == nil {
		items = []T{}
	}
	WriteSuccess(w, items, &Meta{Total: int64(len(items))})
}

// WriteCreated writes a 201 Created JSON response.
func WriteCreated(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusCreated, Response{Data: data})
}

// WriteNoContent writes a 204 No Content response.
func WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// WriteError writes an error JSON response.
func WriteError(w http.ResponseWriter, statusCode int, code, message string, details map[string]any) {
	WriteJSON(w, statusCode, ErrorResponse{
		Error: ErrorDetail{Code: code, Message: message, Details: details},
	})
}

// WriteBadRequest writes a 400 Bad Request response.
func WriteBadRequest(w http.ResponseWriter, message string, details map[string]any) {
	WriteError(w, http.StatusBadRequest, CodeBadRequest, message, details)
}

// WriteNotFound writes a 404 Not Found response.
func WriteNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, CodeNotFound, message, nil)
}

// WriteUnauthorized writes a 401 Unauthorized response.
func WriteUnauthorized(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusUnauthorized, CodeUnauthorized, message, nil)
}

// WriteInternalError writes a 500 Internal Server Error response.
func WriteInternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, CodeInternal, message, nil)
}

// WriteValidationError writes a 422 Unprocessable Entity response for one field.
func WriteValidationError(w http.ResponseWriter, field, message string) {
	WriteError(w, http.StatusUnprocessableEntity, CodeValidation, message, map[string]any{
		"field": field,
	})
}

// writeServiceError maps the service error taxonomy to a response.
// Unexpected errors are logged with the request context and answered
// with a generic message.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error, entity string) {
	var (
		ve *service.ValidationError
		ce *service.ConflictError
		re *service.ReferenceError
	)
	switch {
	case errors.As(err, &ve):
		msg := ve.Message
		if ve.Field != "" {
			msg = ve.Field + " " + ve.Message
		}
		WriteValidationError(w, ve.Field, msg)
	case errors.Is(err, service.ErrInvalidWebsite):
		WriteError(w, http.StatusBadRequest, CodeInvalidWebsite, "website must be one of: primary, secondary", nil)
	case errors.Is(err, service.ErrNotFound):
		WriteNotFound(w, capitalizeFirst(entity)+" not found")
	case errors.As(err, &ce):
		WriteError(w, http.StatusConflict, CodeConflict, ce.Error(), map[string]any{
			"field": ce.Field,
			"value": ce.Value,
		})
	case errors.As(err, &re):
		WriteError(w, http.StatusConflict, CodeReferenced,
			capitalizeFirst(entity)+" is "+re.Error(), map[string]any{
				"entity":         re.Entity,
				"blocking_count": re.Count,
			})
	case errors.Is(err, service.ErrInvalidCredentials):
		WriteUnauthorized(w, "Invalid email or password")
	default:
		args := []any{"entity", entity, "method", r.Method, "error", err}
		if website, ok := middleware.GetWebsite(r); ok {
			args = append(args, "website", website)
		}
		h.logger.ErrorContext(r.Context(), "request failed", args...)
		WriteInternalError(w, "An internal error occurred")
	}
}

// decodeJSON reads a JSON body into dst. It writes a 400 response and
// returns false when the body is missing or malformed.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, MaxJSONBodySize)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			WriteBadRequest(w, "Request body is required", nil)
		case errors.As(err, &tooLarge):
			WriteError(w, http.StatusRequestEntityTooLarge, CodeBadRequest, "Request body is too large", nil)
		default:
			WriteBadRequest(w, "Invalid JSON body", map[string]any{"reason": err.Error()})
		}
		return false
	}
	return true
}

// requireID parses the id URL parameter, writing 400 on failure.
func requireID(w http.ResponseWriter, r *http.Request, name, entity string) (int64, bool) {
	id, err := handler.ParseNamedIDParam(r, name)
	if err != nil {
		WriteBadRequest(w, "Invalid "+entity+" ID", nil)
		return 0, false
	}
	return id, true
}

// websiteOf returns the website validated by middleware.RequireWebsite.
func websiteOf(r *http.Request) model.Website {
	website, _ := middleware.GetWebsite(r)
	return website
}

// capitalizeFirst returns s with the first letter capitalized.
func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
