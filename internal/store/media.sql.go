// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

const mediaColumns = `id, filename, original_name, url, mime_type, size, width, height,
	alt, caption, uploaded_by, created_at, updated_at`

func scanMedium(s scanner) (Medium, error) {
	var i Medium
	err := s.Scan(
		&i.ID,
		&i.Filename,
		&i.OriginalName,
		&i.URL,
		&i.MimeType,
		&i.Size,
		&i.Width,
		&i.Height,
		&i.Alt,
		&i.Caption,
		&i.UploadedBy,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const createMedia = `-- name: CreateMedia :execlastid
INSERT INTO media (filename, original_name, url, mime_type, size, width, height, alt, caption, uploaded_by, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

type CreateMediaParams struct {
	Filename     string
	OriginalName string
	URL          string
	MimeType     string
	Size         int64
	Width        *int64
	Height       *int64
	Alt          string
	Caption      string
	UploadedBy   *int64
	CreatedAt    time.Time
}

func (q *Queries) CreateMedia(ctx context.Context, arg CreateMediaParams) (Medium, error) {
	res, err := q.db.ExecContext(ctx, createMedia,
		arg.Filename,
		arg.OriginalName,
		arg.URL,
		arg.MimeType,
		arg.Size,
		arg.Width,
		arg.Height,
		arg.Alt,
		arg.Caption,
		arg.UploadedBy,
		arg.CreatedAt,
		arg.CreatedAt,
	)
	if err != nil {
		return Medium{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Medium{}, err
	}
	return q.GetMedia(ctx, id)
}

const getMedia = `-- name: GetMedia :one
SELECT ` + mediaColumns + ` FROM media WHERE id = ?
`

func (q *Queries) GetMedia(ctx context.Context, id int64) (Medium, error) {
	return scanMedium(q.db.QueryRowContext(ctx, getMedia, id))
}

// ListMediaParams filters the media library. Type is "", "image" or "document".
type ListMediaParams struct {
	Search string
	Type   string
	Limit  int64
	Offset int64
}

const mediaFilter = `(? = '' OR original_name LIKE '%' || ? || '%' OR alt LIKE '%' || ? || '%')
	AND (? = '' OR (? = 'image' AND mime_type LIKE 'image/%') OR (? = 'document' AND mime_type NOT LIKE 'image/%'))`

func (arg ListMediaParams) filterArgs() []any {
	return []any{arg.Search, arg.Search, arg.Search, arg.Type, arg.Type, arg.Type}
}

const listMedia = `-- name: ListMedia :many
SELECT ` + mediaColumns + ` FROM media WHERE ` + mediaFilter + `
ORDER BY created_at DESC, id DESC
LIMIT ? OFFSET ?
`

func (q *Queries) ListMedia(ctx context.Context, arg ListMediaParams) ([]Medium, error) {
	args := append(arg.filterArgs(), arg.Limit, arg.Offset)
	rows, err := q.db.QueryContext(ctx, listMedia, args...)
	return collect(rows, err, scanMedium)
}

const countMedia = `-- name: CountMedia :one
SELECT COUNT(*) FROM media WHERE ` + mediaFilter + `
`

func (q *Queries) CountMedia(ctx context.Context, arg ListMediaParams) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countMedia, arg.filterArgs()...).Scan(&count)
	return count, err
}

const updateMediaMeta = `-- name: UpdateMediaMeta :execrows
UPDATE media SET alt = ?, caption = ?, updated_at = ? WHERE id = ?
`

func (q *Queries) UpdateMediaMeta(ctx context.Context, id int64, alt, caption string, at time.Time) (int64, error) {
	return affected(q.db.ExecContext(ctx, updateMediaMeta, alt, caption, at, id))
}

const deleteMedia = `-- name: DeleteMedia :execrows
DELETE FROM media WHERE id = ?
`

func (q *Queries) DeleteMedia(ctx context.Context, id int64) (int64, error) {
	return affected(q.db.ExecContext(ctx, deleteMedia, id))
}

const countBlogPostsUsingURL = `-- name: CountBlogPostsUsingURL :one
SELECT COUNT(*) FROM blog_posts
WHERE content LIKE '%' || ? || '%' OR featured_image LIKE '%' || ? || '%'
`

// CountBlogPostsUsingURL counts posts whose text mentions url. The match is
// a substring search, so the result is advisory.
func (q *Queries) CountBlogPostsUsingURL(ctx context.Context, url string) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countBlogPostsUsingURL, url, url).Scan(&count)
	return count, err
}

const countJobListingsUsingURL = `-- name: CountJobListingsUsingURL :one
SELECT COUNT(*) FROM job_listings
WHERE description LIKE '%' || ? || '%' OR requirements LIKE '%' || ? || '%' OR benefits LIKE '%' || ? || '%'
`

func (q *Queries) CountJobListingsUsingURL(ctx context.Context, url string) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countJobListingsUsingURL, url, url, url).Scan(&count)
	return count, err
}
