// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service implements the content rules of the dashboard on top of
// the store: website scoping, key uniqueness, ordering, delete policies,
// upserts and revalidation triggers.
package service

import (
	"database/sql"
	"log/slog"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"

	"github.com/olegiv/dualsite/internal/model"
	"github.com/olegiv/dualsite/internal/revalidate"
	"github.com/olegiv/dualsite/internal/store"
	"github.com/olegiv/dualsite/internal/util"
)

// Notifier receives revalidation requests after successful mutations.
// Implementations must not block and must not fail the caller.
type Notifier interface {
	Notify(website model.Website, targets ...revalidate.Target)
}

var (
	// richText keeps the markup editors may author in rich text fields
	richText = bluemonday.UGCPolicy()
	// plainText strips all markup from public submissions
	plainText = bluemonday.StrictPolicy()
)

// Field length limits
const (
	MaxTitleLength   = 255
	MaxShortText     = 500
	MaxMessageLength = 10000
)

// base carries the dependencies shared by every service.
type base struct {
	db       *sql.DB
	queries  *store.Queries
	notifier Notifier
	logger   *slog.Logger
}

func newBase(db *sql.DB, notifier Notifier, logger *slog.Logger) base {
	if logger == nil {
		logger = slog.Default()
	}
	return base{
		db:       db,
		queries:  store.New(db),
		notifier: notifier,
		logger:   logger,
	}
}

// notify hands targets to the notifier once a write has been applied.
func (b *base) notify(website model.Website, targets ...revalidate.Target) {
	if b.notifier == nil {
		return
	}
	b.notifier.Notify(website, targets...)
}

// Services bundles the services used by the HTTP layer.
type Services struct {
	Pages     *PageService
	Homepage  *HomepageService
	Blog      *BlogService
	Jobs      *JobService
	Site      *SiteService
	Media     *MediaService
	Dashboard *DashboardService
	Users     *UserService
}

// New wires every service against db.
func New(db *sql.DB, notifier Notifier, logger *slog.Logger, media MediaConfig) *Services {
	return &Services{
		Pages:     NewPageService(db, notifier, logger),
		Homepage:  NewHomepageService(db, notifier, logger),
		Blog:      NewBlogService(db, notifier, logger),
		Jobs:      NewJobService(db, notifier, logger),
		Site:      NewSiteService(db, notifier, logger),
		Media:     NewMediaService(db, logger, media),
		Dashboard: NewDashboardService(db, logger),
		Users:     NewUserService(db, logger),
	}
}

// set copies src into dst when src is present.
func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// setTrimmed is set for text fields, trimming surrounding whitespace.
func setTrimmed(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return invalid(field, "is required")
	}
	return nil
}

func maxLength(field, value string, limit int) error {
	if utf8.RuneCountInString(value) > limit {
		return invalid(field, "must be at most %d characters", limit)
	}
	return nil
}

func validEmail(field, value string) error {
	if value == "" {
		return invalid(field, "is required")
	}
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		return invalid(field, "must be a valid email address")
	}
	return nil
}

// resolveSlug derives a missing slug from fallback and validates the result.
func resolveSlug(field, slug, fallback string) (string, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		slug = util.Slugify(fallback)
	}
	if slug == "" {
		return "", invalid(field, "is required")
	}
	if !util.IsValidSlug(slug) {
		return "", invalid(field, "must contain only lowercase letters, numbers and single hyphens")
	}
	return slug, nil
}

// firstErr returns the first non-nil error.
func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
