// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// CacheTag names a group of cached frontend responses.
type CacheTag string

// Cache tags understood by the marketing frontends.
const (
	TagSlides       CacheTag = "slides"
	TagSections     CacheTag = "sections"
	TagHomepage     CacheTag = "homepage"
	TagPages        CacheTag = "pages"
	TagContactPage  CacheTag = "contact-page"
	TagKarrierePage CacheTag = "karriere-page"
	TagJournalPage  CacheTag = "journal-page"
)

// Valid reports whether t belongs to the closed tag set.
func (t CacheTag) Valid() bool {
	switch t {
	case TagSlides, TagSections, TagHomepage, TagPages, TagContactPage, TagKarrierePage, TagJournalPage:
		return true
	}
	return false
}

// headerTags maps page slugs with a dedicated cache tag.
var headerTags = map[string]CacheTag{
	"contact":  TagContactPage,
	"karriere": TagKarrierePage,
	"journal":  TagJournalPage,
}

// HeaderCacheTag returns the cache tag covering the page a header belongs to.
// Pages without a dedicated tag report false and are revalidated by path.
func HeaderCacheTag(pageSlug string) (CacheTag, bool) {
	t, ok := headerTags[pageSlug]
	return t, ok
}

// PagePath returns the frontend path of a page slug.
func PagePath(slug string) string {
	return "/" + slug
}
