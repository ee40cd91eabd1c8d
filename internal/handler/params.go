// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler holds the HTTP helpers shared by the API handlers: URL and
// query parameter parsing, route patterns and the health endpoints.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// Pagination defaults for list endpoints.
const (
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// ErrInvalidID is returned for a missing or non-positive ID parameter.
var ErrInvalidID = errors.New("invalid id")

// ParseIDParam parses the "id" URL parameter.
func ParseIDParam(r *http.Request) (int64, error) {
	return ParseNamedIDParam(r, "id")
}

// ParseNamedIDParam parses a positive int64 URL parameter.
func ParseNamedIDParam(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id < 1 {
		return 0, ErrInvalidID
	}
	return id, nil
}

// ParsePageParam parses the "page" query parameter from the request.
// Returns 1 if the parameter is missing, empty, or invalid.
func ParsePageParam(r *http.Request) int {
	return ParseIntParam(r, "page", 1, 1, 0)
}

// ParsePerPageParam parses the "per_page" query parameter from the request.
// Returns the default value if the parameter is missing, empty, or invalid.
// The value is clamped to the range [1, maxPerPage].
func ParsePerPageParam(r *http.Request, defaultPerPage, maxPerPage int) int {
	return ParseIntParam(r, "per_page", defaultPerPage, 1, maxPerPage)
}

// ParseIntParam parses an integer query parameter from the request.
// Returns defaultVal if the parameter is missing, empty, or invalid.
// If minVal > 0, values below minVal return defaultVal.
// If maxVal > 0, values above maxVal return defaultVal.
func ParseIntParam(r *http.Request, param string, defaultVal, minVal, maxVal int) int {
	str := r.URL.Query().Get(param)
	if str == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(str)
	if err != nil {
		return defaultVal
	}
	if minVal > 0 && val < minVal {
		return defaultVal
	}
	if maxVal > 0 && val > maxVal {
		return defaultVal
	}
	return val
}

// ParseQueryInt64 parses a named query parameter as a positive int64.
// Returns 0 if the parameter is missing, empty, invalid, or not positive.
func ParseQueryInt64(r *http.Request, name string) int64 {
	v, err := strconv.ParseInt(r.URL.Query().Get(name), 10, 64)
	if err != nil || v < 1 {
		return 0
	}
	return v
}

// Page is a parsed page/per_page pair.
type Page struct {
	Number  int
	PerPage int
}

// ParsePage reads page and per_page with the package defaults.
func ParsePage(r *http.Request) Page {
	return Page{
		Number:  ParsePageParam(r),
		PerPage: ParsePerPageParam(r, DefaultPerPage, MaxPerPage),
	}
}

// Limit returns the SQL limit.
func (p Page) Limit() int64 {
	return int64(p.PerPage)
}

// Offset returns the SQL offset.
func (p Page) Offset() int64 {
	return int64((p.Number - 1) * p.PerPage)
}

// TotalPages returns the number of pages needed for total items.
func TotalPages(total int64, perPage int) int {
	if perPage < 1 || total < 1 {
		return 0
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}
