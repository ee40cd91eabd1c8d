// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the domain types shared by the store, service and
// HTTP layers: the website (tenant) key, closed enumerations, section
// collections and the public visibility rules.
package model

import (
	"errors"
	"fmt"
)

// Website identifies one of the two tenant sites sharing the schema.
type Website string

// Supported websites.
const (
	WebsitePrimary   Website = "primary"
	WebsiteSecondary Website = "secondary"
)

// Websites lists every valid website in a stable order.
var Websites = []Website{WebsitePrimary, WebsiteSecondary}

// ErrInvalidWebsite is returned when a website value is missing or unknown.
var ErrInvalidWebsite = errors.New("invalid website")

// Valid reports whether w is one of the known websites.
func (w Website) Valid() bool {
	switch w {
	case WebsitePrimary, WebsiteSecondary:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (w Website) String() string {
	return string(w)
}

// ParseWebsite validates s and returns it as a Website.
func ParseWebsite(s string) (Website, error) {
	if s == "" {
		return "", fmt.Errorf("%w: website is required", ErrInvalidWebsite)
	}
	w := Website(s)
	if !w.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidWebsite, s)
	}
	return w, nil
}
