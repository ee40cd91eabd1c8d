// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

// Page headers

const pageHeaderColumns = `id, website, page_slug, title, subtitle, description, image,
	button_text, button_link, background_color, text_color, updated_at`

func scanPageHeader(s scanner) (PageHeader, error) {
	var i PageHeader
	err := s.Scan(
		&i.ID,
		&i.Website,
		&i.PageSlug,
		&i.Title,
		&i.Subtitle,
		&i.Description,
		&i.Image,
		&i.ButtonText,
		&i.ButtonLink,
		&i.BackgroundColor,
		&i.TextColor,
		&i.UpdatedAt,
	)
	return i, err
}

const upsertPageHeader = `-- name: UpsertPageHeader :exec
INSERT INTO page_headers (
	website, page_slug, title, subtitle, description, image,
	button_text, button_link, background_color, text_color, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (website, page_slug) DO UPDATE SET
	title = excluded.title,
	subtitle = excluded.subtitle,
	description = excluded.description,
	image = excluded.image,
	button_text = excluded.button_text,
	button_link = excluded.button_link,
	background_color = excluded.background_color,
	text_color = excluded.text_color,
	updated_at = excluded.updated_at
`

type UpsertPageHeaderParams struct {
	Website         string
	PageSlug        string
	Title           string
	Subtitle        string
	Description     string
	Image           string
	ButtonText      string
	ButtonLink      string
	BackgroundColor string
	TextColor       string
	UpdatedAt       time.Time
}

// UpsertPageHeader creates or replaces the header of a page in one statement.
func (q *Queries) UpsertPageHeader(ctx context.Context, arg UpsertPageHeaderParams) (PageHeader, error) {
	_, err := q.db.ExecContext(ctx, upsertPageHeader,
		arg.Website,
		arg.PageSlug,
		arg.Title,
		arg.Subtitle,
		arg.Description,
		arg.Image,
		arg.ButtonText,
		arg.ButtonLink,
		arg.BackgroundColor,
		arg.TextColor,
		arg.UpdatedAt,
	)
	if err != nil {
		return PageHeader{}, err
	}
	return q.GetPageHeader(ctx, arg.Website, arg.PageSlug)
}

const getPageHeader = `-- name: GetPageHeader :one
SELECT ` + pageHeaderColumns + ` FROM page_headers WHERE website = ? AND page_slug = ?
`

func (q *Queries) GetPageHeader(ctx context.Context, website, pageSlug string) (PageHeader, error) {
	return scanPageHeader(q.db.QueryRowContext(ctx, getPageHeader, website, pageSlug))
}

const listPageHeaders = `-- name: ListPageHeaders :many
SELECT ` + pageHeaderColumns + ` FROM page_headers WHERE website = ? ORDER BY page_slug
`

func (q *Queries) ListPageHeaders(ctx context.Context, website string) ([]PageHeader, error) {
	rows, err := q.db.QueryContext(ctx, listPageHeaders, website)
	return collect(rows, err, scanPageHeader)
}

// Legal pages

const legalPageColumns = `id, website, type, title, content, last_updated`

func scanLegalPage(s scanner) (LegalPage, error) {
	var i LegalPage
	err := s.Scan(&i.ID, &i.Website, &i.Type, &i.Title, &i.Content, &i.LastUpdated)
	return i, err
}

const upsertLegalPage = `-- name: UpsertLegalPage :exec
INSERT INTO legal_pages (website, type, title, content, last_updated)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT (website, type) DO UPDATE SET
	title = excluded.title,
	content = excluded.content,
	last_updated = excluded.last_updated
`

type UpsertLegalPageParams struct {
	Website     string
	Type        string
	Title       string
	Content     string
	LastUpdated time.Time
}

func (q *Queries) UpsertLegalPage(ctx context.Context, arg UpsertLegalPageParams) (LegalPage, error) {
	_, err := q.db.ExecContext(ctx, upsertLegalPage,
		arg.Website, arg.Type, arg.Title, arg.Content, arg.LastUpdated)
	if err != nil {
		return LegalPage{}, err
	}
	return q.GetLegalPage(ctx, arg.Website, arg.Type)
}

const getLegalPage = `-- name: GetLegalPage :one
SELECT ` + legalPageColumns + ` FROM legal_pages WHERE website = ? AND type = ?
`

func (q *Queries) GetLegalPage(ctx context.Context, website, typ string) (LegalPage, error) {
	return scanLegalPage(q.db.QueryRowContext(ctx, getLegalPage, website, typ))
}

const listLegalPages = `-- name: ListLegalPages :many
SELECT ` + legalPageColumns + ` FROM legal_pages WHERE website = ? ORDER BY type
`

func (q *Queries) ListLegalPages(ctx context.Context, website string) ([]LegalPage, error) {
	rows, err := q.db.QueryContext(ctx, listLegalPages, website)
	return collect(rows, err, scanLegalPage)
}

// Settings

const upsertSetting = `-- name: UpsertSetting :exec
INSERT INTO settings (website, key, value, updated_at) VALUES (?, ?, ?, ?)
ON CONFLICT (website, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
`

func (q *Queries) UpsertSetting(ctx context.Context, website, key, value string, at time.Time) error {
	_, err := q.db.ExecContext(ctx, upsertSetting, website, key, value, at)
	return err
}

const listSettings = `-- name: ListSettings :many
SELECT website, key, value, updated_at FROM settings WHERE website = ? ORDER BY key
`

func (q *Queries) ListSettings(ctx context.Context, website string) ([]Setting, error) {
	rows, err := q.db.QueryContext(ctx, listSettings, website)
	return collect(rows, err, func(s scanner) (Setting, error) {
		var i Setting
		err := s.Scan(&i.Website, &i.Key, &i.Value, &i.UpdatedAt)
		return i, err
	})
}

// Contact messages

const contactMessageColumns = `id, website, name, email, phone, company, subject, message, read, archived, created_at`

func scanContactMessage(s scanner) (ContactMessage, error) {
	var i ContactMessage
	err := s.Scan(
		&i.ID,
		&i.Website,
		&i.Name,
		&i.Email,
		&i.Phone,
		&i.Company,
		&i.Subject,
		&i.Message,
		&i.Read,
		&i.Archived,
		&i.CreatedAt,
	)
	return i, err
}

const createContactMessage = `-- name: CreateContactMessage :execlastid
INSERT INTO contact_messages (website, name, email, phone, company, subject, message, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`

type CreateContactMessageParams struct {
	Website   string
	Name      string
	Email     string
	Phone     string
	Company   string
	Subject   string
	Message   string
	CreatedAt time.Time
}

func (q *Queries) CreateContactMessage(ctx context.Context, arg CreateContactMessageParams) (ContactMessage, error) {
	res, err := q.db.ExecContext(ctx, createContactMessage,
		arg.Website,
		arg.Name,
		arg.Email,
		arg.Phone,
		arg.Company,
		arg.Subject,
		arg.Message,
		arg.CreatedAt,
	)
	if err != nil {
		return ContactMessage{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return ContactMessage{}, err
	}
	return q.GetContactMessage(ctx, arg.Website, id)
}

const getContactMessage = `-- name: GetContactMessage :one
SELECT ` + contactMessageColumns + ` FROM contact_messages WHERE website = ? AND id = ?
`

func (q *Queries) GetContactMessage(ctx context.Context, website string, id int64) (ContactMessage, error) {
	return scanContactMessage(q.db.QueryRowContext(ctx, getContactMessage, website, id))
}

const listContactMessages = `-- name: ListContactMessages :many
SELECT ` + contactMessageColumns + ` FROM contact_messages
WHERE website = ? AND (
	? = 'all'
	OR (? = 'unread' AND read = 0 AND archived = 0)
	OR (? = 'read' AND read = 1 AND archived = 0)
	OR (? = 'archived' AND archived = 1)
)
ORDER BY created_at DESC, id DESC
`

// ListContactMessages lists messages of website in the given triage state
// (all, unread, read or archived).
func (q *Queries) ListContactMessages(ctx context.Context, website, filter string) ([]ContactMessage, error) {
	rows, err := q.db.QueryContext(ctx, listContactMessages, website, filter, filter, filter, filter)
	return collect(rows, err, scanContactMessage)
}

const updateContactMessageFlags = `-- name: UpdateContactMessageFlags :execrows
UPDATE contact_messages SET read = ?, archived = ? WHERE website = ? AND id = ?
`

func (q *Queries) UpdateContactMessageFlags(ctx context.Context, website string, id int64, read, archived bool) (int64, error) {
	return affected(q.db.ExecContext(ctx, updateContactMessageFlags, read, archived, website, id))
}

const deleteContactMessage = `-- name: DeleteContactMessage :execrows
DELETE FROM contact_messages WHERE website = ? AND id = ?
`

func (q *Queries) DeleteContactMessage(ctx context.Context, website string, id int64) (int64, error) {
	return affected(q.db.ExecContext(ctx, deleteContactMessage, website, id))
}

const countUnreadContactMessages = `-- name: CountUnreadContactMessages :one
SELECT COUNT(*) FROM contact_messages WHERE website = ? AND read = 0 AND archived = 0
`

func (q *Queries) CountUnreadContactMessages(ctx context.Context, website string) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countUnreadContactMessages, website).Scan(&count)
	return count, err
}
