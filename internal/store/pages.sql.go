// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

const pageColumns = `id, website, slug, title, meta_title, meta_description, og_image,
	hero_title, hero_subtitle, hero_description, hero_image, hero_button_text, hero_button_link,
	hero_background_color, hero_text_color, active, show_in_sidebar, sidebar_name, sidebar_position,
	created_at, updated_at`

func scanPage(s scanner) (Page, error) {
	var i Page
	err := s.Scan(
		&i.ID,
		&i.Website,
		&i.Slug,
		&i.Title,
		&i.MetaTitle,
		&i.MetaDescription,
		&i.OgImage,
		&i.HeroTitle,
		&i.HeroSubtitle,
		&i.HeroDescription,
		&i.HeroImage,
		&i.HeroButtonText,
		&i.HeroButtonLink,
		&i.HeroBackgroundColor,
		&i.HeroTextColor,
		&i.Active,
		&i.ShowInSidebar,
		&i.SidebarName,
		&i.SidebarPosition,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

// PageFields are the editable columns of a page.
type PageFields struct {
	Slug                string
	Title               string
	MetaTitle           string
	MetaDescription     string
	OgImage             string
	HeroTitle           string
	HeroSubtitle        string
	HeroDescription     string
	HeroImage           string
	HeroButtonText      string
	HeroButtonLink      string
	HeroBackgroundColor string
	HeroTextColor       string
	Active              bool
	ShowInSidebar       bool
	SidebarName         string
	SidebarPosition     int64
}

// Fields returns the editable columns of p.
func (p Page) Fields() PageFields {
	return PageFields{
		Slug:                p.Slug,
		Title:               p.Title,
		MetaTitle:           p.MetaTitle,
		MetaDescription:     p.MetaDescription,
		OgImage:             p.OgImage,
		HeroTitle:           p.HeroTitle,
		HeroSubtitle:        p.HeroSubtitle,
		HeroDescription:     p.HeroDescription,
		HeroImage:           p.HeroImage,
		HeroButtonText:      p.HeroButtonText,
		HeroButtonLink:      p.HeroButtonLink,
		HeroBackgroundColor: p.HeroBackgroundColor,
		HeroTextColor:       p.HeroTextColor,
		Active:              p.Active,
		ShowInSidebar:       p.ShowInSidebar,
		SidebarName:         p.SidebarName,
		SidebarPosition:     p.SidebarPosition,
	}
}

func (f PageFields) args() []any {
	return []any{
		f.Slug, f.Title, f.MetaTitle, f.MetaDescription, f.OgImage,
		f.HeroTitle, f.HeroSubtitle, f.HeroDescription, f.HeroImage, f.HeroButtonText, f.HeroButtonLink,
		f.HeroBackgroundColor, f.HeroTextColor, f.Active, f.ShowInSidebar, f.SidebarName, f.SidebarPosition,
	}
}

const createPage = `-- name: CreatePage :execlastid
INSERT INTO pages (
	website, slug, title, meta_title, meta_description, og_image,
	hero_title, hero_subtitle, hero_description, hero_image, hero_button_text, hero_button_link,
	hero_background_color, hero_text_color, active, show_in_sidebar, sidebar_name, sidebar_position,
	created_at, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

type CreatePageParams struct {
	Website string
	PageFields
	CreatedAt time.Time
}

func (q *Queries) CreatePage(ctx context.Context, arg CreatePageParams) (Page, error) {
	args := append([]any{arg.Website}, arg.args()...)
	args = append(args, arg.CreatedAt, arg.CreatedAt)
	res, err := q.db.ExecContext(ctx, createPage, args...)
	if err != nil {
		return Page{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Page{}, err
	}
	return q.GetPage(ctx, arg.Website, id)
}

const getPage = `-- name: GetPage :one
SELECT ` + pageColumns + ` FROM pages WHERE website = ? AND id = ?
`

func (q *Queries) GetPage(ctx context.Context, website string, id int64) (Page, error) {
	return scanPage(q.db.QueryRowContext(ctx, getPage, website, id))
}

const getPageBySlug = `-- name: GetPageBySlug :one
SELECT ` + pageColumns + ` FROM pages WHERE website = ? AND slug = ?
`

func (q *Queries) GetPageBySlug(ctx context.Context, website, slug string) (Page, error) {
	return scanPage(q.db.QueryRowContext(ctx, getPageBySlug, website, slug))
}

const getActivePageBySlug = `-- name: GetActivePageBySlug :one
SELECT ` + pageColumns + ` FROM pages WHERE website = ? AND slug = ? AND active = 1
`

func (q *Queries) GetActivePageBySlug(ctx context.Context, website, slug string) (Page, error) {
	return scanPage(q.db.QueryRowContext(ctx, getActivePageBySlug, website, slug))
}

const listPages = `-- name: ListPages :many
SELECT ` + pageColumns + ` FROM pages WHERE website = ? ORDER BY title, id
`

func (q *Queries) ListPages(ctx context.Context, website string) ([]Page, error) {
	rows, err := q.db.QueryContext(ctx, listPages, website)
	return collect(rows, err, scanPage)
}

const listActivePages = `-- name: ListActivePages :many
SELECT ` + pageColumns + ` FROM pages WHERE website = ? AND active = 1 ORDER BY title, id
`

func (q *Queries) ListActivePages(ctx context.Context, website string) ([]Page, error) {
	rows, err := q.db.QueryContext(ctx, listActivePages, website)
	return collect(rows, err, scanPage)
}

const listSidebarPages = `-- name: ListSidebarPages :many
SELECT ` + pageColumns + ` FROM pages
WHERE website = ? AND active = 1 AND show_in_sidebar = 1
ORDER BY sidebar_position, id
`

func (q *Queries) ListSidebarPages(ctx context.Context, website string) ([]Page, error) {
	rows, err := q.db.QueryContext(ctx, listSidebarPages, website)
	return collect(rows, err, scanPage)
}

const updatePage = `-- name: UpdatePage :exec
UPDATE pages SET
	slug = ?, title = ?, meta_title = ?, meta_description = ?, og_image = ?,
	hero_title = ?, hero_subtitle = ?, hero_description = ?, hero_image = ?, hero_button_text = ?, hero_button_link = ?,
	hero_background_color = ?, hero_text_color = ?, active = ?, show_in_sidebar = ?, sidebar_name = ?, sidebar_position = ?,
	updated_at = ?
WHERE website = ? AND id = ?
`

type UpdatePageParams struct {
	Website string
	ID      int64
	PageFields
	UpdatedAt time.Time
}

func (q *Queries) UpdatePage(ctx context.Context, arg UpdatePageParams) (Page, error) {
	args := append(arg.args(), arg.UpdatedAt, arg.Website, arg.ID)
	if _, err := q.db.ExecContext(ctx, updatePage, args...); err != nil {
		return Page{}, err
	}
	return q.GetPage(ctx, arg.Website, arg.ID)
}

const deletePage = `-- name: DeletePage :execrows
DELETE FROM pages WHERE website = ? AND id = ?
`

func (q *Queries) DeletePage(ctx context.Context, website string, id int64) (int64, error) {
	return affected(q.db.ExecContext(ctx, deletePage, website, id))
}

const pageSlugExists = `-- name: PageSlugExists :one
SELECT EXISTS(SELECT 1 FROM pages WHERE website = ? AND slug = ? AND id != ?)
`

// PageSlugExists reports whether another page of website uses slug.
func (q *Queries) PageSlugExists(ctx context.Context, website, slug string, excludeID int64) (bool, error) {
	var exists bool
	err := q.db.QueryRowContext(ctx, pageSlugExists, website, slug, excludeID).Scan(&exists)
	return exists, err
}

const countPages = `-- name: CountPages :one
SELECT COUNT(*), COALESCE(SUM(active), 0) FROM pages WHERE website = ?
`

// CountPages returns the total and active page counts of website.
func (q *Queries) CountPages(ctx context.Context, website string) (total, active int64, err error) {
	err = q.db.QueryRowContext(ctx, countPages, website).Scan(&total, &active)
	return total, active, err
}
