// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Job listing statuses
const (
	JobStatusDraft     = "draft"
	JobStatusPublished = "published"
	JobStatusArchived  = "archived"
)

// IsValidJobStatus reports whether s is a known job listing status.
func IsValidJobStatus(s string) bool {
	switch s {
	case JobStatusDraft, JobStatusPublished, JobStatusArchived:
		return true
	}
	return false
}

// Job application statuses
const (
	ApplicationStatusNew         = "new"
	ApplicationStatusReviewing   = "reviewing"
	ApplicationStatusInterviewed = "interviewed"
	ApplicationStatusAccepted    = "accepted"
	ApplicationStatusRejected    = "rejected"
)

// IsValidApplicationStatus reports whether s is a known application status.
func IsValidApplicationStatus(s string) bool {
	switch s {
	case ApplicationStatusNew, ApplicationStatusReviewing, ApplicationStatusInterviewed,
		ApplicationStatusAccepted, ApplicationStatusRejected:
		return true
	}
	return false
}

// Legal page types
const (
	LegalImpressum        = "impressum"
	LegalDatenschutz      = "datenschutz"
	LegalBarrierefreiheit = "barrierefreiheit"
)

// IsValidLegalType reports whether s is a known legal page type.
func IsValidLegalType(s string) bool {
	switch s {
	case LegalImpressum, LegalDatenschutz, LegalBarrierefreiheit:
		return true
	}
	return false
}

// Contact message triage filters.
const (
	MessageFilterAll      = "all"
	MessageFilterUnread   = "unread"
	MessageFilterRead     = "read"
	MessageFilterArchived = "archived"
)

// MessageState returns the triage state of a contact message.
// Archived wins over read.
func MessageState(read, archived bool) string {
	switch {
	case archived:
		return MessageFilterArchived
	case read:
		return MessageFilterRead
	default:
		return MessageFilterUnread
	}
}
