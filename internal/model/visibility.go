// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Public visibility rules. The authenticated API never applies them.

// PageVisible reports whether a page is publicly reachable.
func PageVisible(active bool) bool {
	return active
}

// SectionVisible reports whether a page section is publicly reachable.
// Sections of an inactive page are never visible.
func SectionVisible(sectionActive, pageActive bool) bool {
	return sectionActive && PageVisible(pageActive)
}

// BlogPostVisible reports whether a blog post is publicly visible at now.
// A published post without a publish date is visible immediately.
func BlogPostVisible(published bool, publishedAt *time.Time, now time.Time) bool {
	if !published {
		return false
	}
	return publishedAt == nil || !publishedAt.After(now)
}

// JobListingVisible reports whether a job listing is publicly visible.
func JobListingVisible(status string) bool {
	return status == JobStatusPublished
}

// ActiveVisible is the rule for slides and homepage sections.
func ActiveVisible(active bool) bool {
	return active
}
