// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package util provides general-purpose utility functions including
// URL slug generation and validation with Unicode normalization support.
package util

import (
	"regexp"
	"strings"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/unicode/norm"
)

var (
	// nonAlnum matches runs of characters that are not allowed in a slug
	nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

	// germanReplacer spells out umlauts the way German URLs do,
	// before the generic transliteration would drop the diaeresis.
	germanReplacer = strings.NewReplacer(
		"ä", "ae", "ö", "oe", "ü", "ue", "ß", "ss",
		"Ä", "ae", "Ö", "oe", "Ü", "ue", "ẞ", "ss",
	)
)

// Slugify converts a string to a URL-friendly slug.
// German umlauts are transliterated (ü -> ue), other non-ASCII text is
// transliterated with unidecode, and every run of non-alphanumeric
// characters collapses to a single hyphen. Edge hyphens are trimmed.
func Slugify(s string) string {
	// Compose first so decomposed umlauts (u + U+0308) are replaced too
	result := norm.NFC.String(s)
	result = germanReplacer.Replace(result)
	result = unidecode.Unidecode(result)
	result = strings.ToLower(result)
	result = nonAlnum.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}

// IsValidSlug checks if a string is a valid slug format.
func IsValidSlug(s string) bool {
	if s == "" || len(s) > MaxSlugLength {
		return false
	}

	// Check if it only contains lowercase letters, numbers, and hyphens
	for _, r := range s {
		if !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-') {
			return false
		}
	}

	// Check that it doesn't start or end with a hyphen
	if s[0] == '-' || s[len(s)-1] == '-' {
		return false
	}

	// Check for consecutive hyphens
	if strings.Contains(s, "--") {
		return false
	}

	return true
}

// MaxSlugLength bounds slugs and identifiers.
const MaxSlugLength = 200
