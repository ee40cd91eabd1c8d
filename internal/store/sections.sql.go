// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

// CollectionsJSON carries the encoded JSON collections of a section.
// An invalid NullString stores SQL NULL (no collection).
type CollectionsJSON struct {
	Items   sql.NullString
	Buttons sql.NullString
	Cards   sql.NullString
	Stats   sql.NullString
}

const pageSectionColumns = `id, page_id, type, title, subtitle, content, image, image_position, background_color,
	items, buttons, cards, stats, sort_order, active, created_at, updated_at`

func scanPageSection(s scanner) (PageSection, error) {
	var i PageSection
	err := s.Scan(
		&i.ID,
		&i.PageID,
		&i.Type,
		&i.Title,
		&i.Subtitle,
		&i.Content,
		&i.Image,
		&i.ImagePosition,
		&i.BackgroundColor,
		&i.ItemsJSON,
		&i.ButtonsJSON,
		&i.CardsJSON,
		&i.StatsJSON,
		&i.SortOrder,
		&i.Active,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

// PageSectionFields are the editable columns of a page section.
type PageSectionFields struct {
	Type            string
	Title           string
	Subtitle        string
	Content         string
	Image           string
	ImagePosition   string
	BackgroundColor string
	Collections     CollectionsJSON
	Active          bool
}

// Fields returns the editable columns of s.
func (s PageSection) Fields() PageSectionFields {
	return PageSectionFields{
		Type:            s.Type,
		Title:           s.Title,
		Subtitle:        s.Subtitle,
		Content:         s.Content,
		Image:           s.Image,
		ImagePosition:   s.ImagePosition,
		BackgroundColor: s.BackgroundColor,
		Collections: CollectionsJSON{
			Items:   s.ItemsJSON,
			Buttons: s.ButtonsJSON,
			Cards:   s.CardsJSON,
			Stats:   s.StatsJSON,
		},
		Active: s.Active,
	}
}

func (f PageSectionFields) args() []any {
	return []any{
		f.Type, f.Title, f.Subtitle, f.Content, f.Image, f.ImagePosition, f.BackgroundColor,
		f.Collections.Items, f.Collections.Buttons, f.Collections.Cards, f.Collections.Stats, f.Active,
	}
}

// The sort order is computed inside the INSERT so the append is a single
// statement: SQLite serializes writers, so two concurrent appends cannot
// read the same maximum.
const createPageSection = `-- name: CreatePageSection :execlastid
INSERT INTO page_sections (
	page_id, type, title, subtitle, content, image, image_position, background_color,
	items, buttons, cards, stats, active, sort_order, created_at, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?,
	(SELECT COALESCE(MAX(sort_order), -1) + 1 FROM page_sections WHERE page_id = ?),
	?, ?)
`

type CreatePageSectionParams struct {
	PageID int64
	PageSectionFields
	CreatedAt time.Time
}

func (q *Queries) CreatePageSection(ctx context.Context, arg CreatePageSectionParams) (PageSection, error) {
	args := append([]any{arg.PageID}, arg.args()...)
	args = append(args, arg.PageID, arg.CreatedAt, arg.CreatedAt)
	res, err := q.db.ExecContext(ctx, createPageSection, args...)
	if err != nil {
		return PageSection{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return PageSection{}, err
	}
	return q.GetPageSection(ctx, arg.PageID, id)
}

const getPageSection = `-- name: GetPageSection :one
SELECT ` + pageSectionColumns + ` FROM page_sections WHERE page_id = ? AND id = ?
`

func (q *Queries) GetPageSection(ctx context.Context, pageID, id int64) (PageSection, error) {
	return scanPageSection(q.db.QueryRowContext(ctx, getPageSection, pageID, id))
}

const listPageSections = `-- name: ListPageSections :many
SELECT ` + pageSectionColumns + ` FROM page_sections WHERE page_id = ? ORDER BY sort_order, id
`

func (q *Queries) ListPageSections(ctx context.Context, pageID int64) ([]PageSection, error) {
	rows, err := q.db.QueryContext(ctx, listPageSections, pageID)
	return collect(rows, err, scanPageSection)
}

const listActivePageSections = `-- name: ListActivePageSections :many
SELECT ` + pageSectionColumns + ` FROM page_sections WHERE page_id = ? AND active = 1 ORDER BY sort_order, id
`

func (q *Queries) ListActivePageSections(ctx context.Context, pageID int64) ([]PageSection, error) {
	rows, err := q.db.QueryContext(ctx, listActivePageSections, pageID)
	return collect(rows, err, scanPageSection)
}

const updatePageSection = `-- name: UpdatePageSection :exec
UPDATE page_sections SET
	type = ?, title = ?, subtitle = ?, content = ?, image = ?, image_position = ?, background_color = ?,
	items = ?, buttons = ?, cards = ?, stats = ?, active = ?, updated_at = ?
WHERE page_id = ? AND id = ?
`

type UpdatePageSectionParams struct {
	PageID int64
	ID     int64
	PageSectionFields
	UpdatedAt time.Time
}

func (q *Queries) UpdatePageSection(ctx context.Context, arg UpdatePageSectionParams) (PageSection, error) {
	args := append(arg.args(), arg.UpdatedAt, arg.PageID, arg.ID)
	if _, err := q.db.ExecContext(ctx, updatePageSection, args...); err != nil {
		return PageSection{}, err
	}
	return q.GetPageSection(ctx, arg.PageID, arg.ID)
}

const deletePageSection = `-- name: DeletePageSection :execrows
DELETE FROM page_sections WHERE page_id = ? AND id = ?
`

func (q *Queries) DeletePageSection(ctx context.Context, pageID, id int64) (int64, error) {
	return affected(q.db.ExecContext(ctx, deletePageSection, pageID, id))
}

const listPageSectionIDs = `-- name: ListPageSectionIDs :many
SELECT id FROM page_sections WHERE page_id = ?
`

func (q *Queries) ListPageSectionIDs(ctx context.Context, pageID int64) ([]int64, error) {
	rows, err := q.db.QueryContext(ctx, listPageSectionIDs, pageID)
	return collect(rows, err, scanID)
}

const setPageSectionSortOrder = `-- name: SetPageSectionSortOrder :execrows
UPDATE page_sections SET sort_order = ?, updated_at = ? WHERE page_id = ? AND id = ?
`

func (q *Queries) SetPageSectionSortOrder(ctx context.Context, pageID, id, sortOrder int64, at time.Time) (int64, error) {
	return affected(q.db.ExecContext(ctx, setPageSectionSortOrder, sortOrder, at, pageID, id))
}

const countPageSections = `-- name: CountPageSections :one
SELECT COUNT(*) FROM page_sections WHERE page_id = ?
`

func (q *Queries) CountPageSections(ctx context.Context, pageID int64) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countPageSections, pageID).Scan(&count)
	return count, err
}

func scanID(s scanner) (int64, error) {
	var id int64
	err := s.Scan(&id)
	return id, err
}

// Homepage sections

const homepageSectionColumns = `id, website, identifier, type, title, subtitle, content, image,
	items, buttons, cards, stats, sort_order, active, show_in_navbar, navbar_name, navbar_position,
	created_at, updated_at`

func scanHomepageSection(s scanner) (HomepageSection, error) {
	var i HomepageSection
	err := s.Scan(
		&i.ID,
		&i.Website,
		&i.Identifier,
		&i.Type,
		&i.Title,
		&i.Subtitle,
		&i.Content,
		&i.Image,
		&i.ItemsJSON,
		&i.ButtonsJSON,
		&i.CardsJSON,
		&i.StatsJSON,
		&i.SortOrder,
		&i.Active,
		&i.ShowInNavbar,
		&i.NavbarName,
		&i.NavbarPosition,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

// HomepageSectionFields are the editable columns of a homepage section.
type HomepageSectionFields struct {
	Identifier     string
	Type           string
	Title          string
	Subtitle       string
	Content        string
	Image          string
	Collections    CollectionsJSON
	Active         bool
	ShowInNavbar   bool
	NavbarName     string
	NavbarPosition int64
}

// Fields returns the editable columns of s.
func (s HomepageSection) Fields() HomepageSectionFields {
	return HomepageSectionFields{
		Identifier: s.Identifier,
		Type:       s.Type,
		Title:      s.Title,
		Subtitle:   s.Subtitle,
		Content:    s.Content,
		Image:      s.Image,
		Collections: CollectionsJSON{
			Items:   s.ItemsJSON,
			Buttons: s.ButtonsJSON,
			Cards:   s.CardsJSON,
			Stats:   s.StatsJSON,
		},
		Active:         s.Active,
		ShowInNavbar:   s.ShowInNavbar,
		NavbarName:     s.NavbarName,
		NavbarPosition: s.NavbarPosition,
	}
}

func (f HomepageSectionFields) args() []any {
	return []any{
		f.Identifier, f.Type, f.Title, f.Subtitle, f.Content, f.Image,
		f.Collections.Items, f.Collections.Buttons, f.Collections.Cards, f.Collections.Stats,
		f.Active, f.ShowInNavbar, f.NavbarName, f.NavbarPosition,
	}
}

const createHomepageSection = `-- name: CreateHomepageSection :execlastid
INSERT INTO homepage_sections (
	website, identifier, type, title, subtitle, content, image,
	items, buttons, cards, stats, active, show_in_navbar, navbar_name, navbar_position,
	sort_order, created_at, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?,
	(SELECT COALESCE(MAX(sort_order), -1) + 1 FROM homepage_sections WHERE website = ?),
	?, ?)
`

type CreateHomepageSectionParams struct {
	Website string
	HomepageSectionFields
	CreatedAt time.Time
}

func (q *Queries) CreateHomepageSection(ctx context.Context, arg CreateHomepageSectionParams) (HomepageSection, error) {
	args := append([]any{arg.Website}, arg.args()...)
	args = append(args, arg.Website, arg.CreatedAt, arg.CreatedAt)
	res, err := q.db.ExecContext(ctx, createHomepageSection, args...)
	if err != nil {
		return HomepageSection{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return HomepageSection{}, err
	}
	return q.GetHomepageSection(ctx, arg.Website, id)
}

const getHomepageSection = `-- name: GetHomepageSection :one
SELECT ` + homepageSectionColumns + ` FROM homepage_sections WHERE website = ? AND id = ?
`

func (q *Queries) GetHomepageSection(ctx context.Context, website string, id int64) (HomepageSection, error) {
	return scanHomepageSection(q.db.QueryRowContext(ctx, getHomepageSection, website, id))
}

const listHomepageSections = `-- name: ListHomepageSections :many
SELECT ` + homepageSectionColumns + ` FROM homepage_sections WHERE website = ? ORDER BY sort_order, id
`

func (q *Queries) ListHomepageSections(ctx context.Context, website string) ([]HomepageSection, error) {
	rows, err := q.db.QueryContext(ctx, listHomepageSections, website)
	return collect(rows, err, scanHomepageSection)
}

const listActiveHomepageSections = `-- name: ListActiveHomepageSections :many
SELECT ` + homepageSectionColumns + ` FROM homepage_sections WHERE website = ? AND active = 1 ORDER BY sort_order, id
`

func (q *Queries) ListActiveHomepageSections(ctx context.Context, website string) ([]HomepageSection, error) {
	rows, err := q.db.QueryContext(ctx, listActiveHomepageSections, website)
	return collect(rows, err, scanHomepageSection)
}

const listNavbarHomepageSections = `-- name: ListNavbarHomepageSections :many
SELECT ` + homepageSectionColumns + ` FROM homepage_sections
WHERE website = ? AND active = 1 AND show_in_navbar = 1
ORDER BY navbar_position, id
`

func (q *Queries) ListNavbarHomepageSections(ctx context.Context, website string) ([]HomepageSection, error) {
	rows, err := q.db.QueryContext(ctx, listNavbarHomepageSections, website)
	return collect(rows, err, scanHomepageSection)
}

const updateHomepageSection = `-- name: UpdateHomepageSection :exec
UPDATE homepage_sections SET
	identifier = ?, type = ?, title = ?, subtitle = ?, content = ?, image = ?,
	items = ?, buttons = ?, cards = ?, stats = ?,
	active = ?, show_in_navbar = ?, navbar_name = ?, navbar_position = ?, updated_at = ?
WHERE website = ? AND id = ?
`

type UpdateHomepageSectionParams struct {
	Website string
	ID      int64
	HomepageSectionFields
	UpdatedAt time.Time
}

func (q *Queries) UpdateHomepageSection(ctx context.Context, arg UpdateHomepageSectionParams) (HomepageSection, error) {
	args := append(arg.args(), arg.UpdatedAt, arg.Website, arg.ID)
	if _, err := q.db.ExecContext(ctx, updateHomepageSection, args...); err != nil {
		return HomepageSection{}, err
	}
	return q.GetHomepageSection(ctx, arg.Website, arg.ID)
}

const deleteHomepageSection = `-- name: DeleteHomepageSection :execrows
DELETE FROM homepage_sections WHERE website = ? AND id = ?
`

func (q *Queries) DeleteHomepageSection(ctx context.Context, website string, id int64) (int64, error) {
	return affected(q.db.ExecContext(ctx, deleteHomepageSection, website, id))
}

const homepageIdentifierExists = `-- name: HomepageIdentifierExists :one
SELECT EXISTS(SELECT 1 FROM homepage_sections WHERE website = ? AND identifier = ? AND id != ?)
`

func (q *Queries) HomepageIdentifierExists(ctx context.Context, website, identifier string, excludeID int64) (bool, error) {
	var exists bool
	err := q.db.QueryRowContext(ctx, homepageIdentifierExists, website, identifier, excludeID).Scan(&exists)
	return exists, err
}

const listHomepageSectionIDs = `-- name: ListHomepageSectionIDs :many
SELECT id FROM homepage_sections WHERE website = ?
`

func (q *Queries) ListHomepageSectionIDs(ctx context.Context, website string) ([]int64, error) {
	rows, err := q.db.QueryContext(ctx, listHomepageSectionIDs, website)
	return collect(rows, err, scanID)
}

const setHomepageSectionSortOrder = `-- name: SetHomepageSectionSortOrder :execrows
UPDATE homepage_sections SET sort_order = ?, updated_at = ? WHERE website = ? AND id = ?
`

func (q *Queries) SetHomepageSectionSortOrder(ctx context.Context, website string, id, sortOrder int64, at time.Time) (int64, error) {
	return affected(q.db.ExecContext(ctx, setHomepageSectionSortOrder, sortOrder, at, website, id))
}
