// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/olegiv/dualsite/internal/model"
	"github.com/olegiv/dualsite/internal/store"
)

// DashboardService aggregates per-website counts.
type DashboardService struct {
	queries *store.Queries
	logger  *slog.Logger
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(db *sql.DB, logger *slog.Logger) *DashboardService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardService{queries: store.New(db), logger: logger}
}

// DashboardStats are the counts shown on the dashboard of one website.
type DashboardStats struct {
	Website             model.Website `json:"website"`
	Pages               int64         `json:"pages"`
	ActivePages         int64         `json:"active_pages"`
	BlogPosts           int64         `json:"blog_posts"`
	PublishedBlogPosts  int64         `json:"published_blog_posts"`
	JobListings         int64         `json:"job_listings"`
	PublishedJobs       int64         `json:"published_job_listings"`
	Applications        int64         `json:"applications"`
	NewApplications     int64         `json:"new_applications"`
	UnreadMessages      int64         `json:"unread_contact_messages"`
}

// Stats computes the dashboard counts of website.
func (s *DashboardService) Stats(ctx context.Context, website model.Website) (DashboardStats, error) {
	w := string(website)
	stats := DashboardStats{Website: website}
	var err error

	if stats.Pages, stats.ActivePages, err = s.queries.CountPages(ctx, w); err != nil {
		return DashboardStats{}, fmt.Errorf("counting pages: %w", err)
	}
	if stats.BlogPosts, stats.PublishedBlogPosts, err = s.queries.CountBlogPosts(ctx, w, store.Now()); err != nil {
		return DashboardStats{}, fmt.Errorf("counting posts: %w", err)
	}
	if stats.JobListings, stats.PublishedJobs, err = s.queries.CountJobListings(ctx, w); err != nil {
		return DashboardStats{}, fmt.Errorf("counting jobs: %w", err)
	}
	if stats.Applications, stats.NewApplications, err = s.queries.CountJobApplications(ctx, w); err != nil {
		return DashboardStats{}, fmt.Errorf("counting applications: %w", err)
	}
	if stats.UnreadMessages, err = s.queries.CountUnreadContactMessages(ctx, w); err != nil {
		return DashboardStats{}, fmt.Errorf("counting messages: %w", err)
	}
	return stats, nil
}
