// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

const slideColumns = `id, website, title, subtitle, image, link, link_text, sort_order, active, created_at, updated_at`

func scanSlide(s scanner) (Slide, error) {
	var i Slide
	err := s.Scan(
		&i.ID,
		&i.Website,
		&i.Title,
		&i.Subtitle,
		&i.Image,
		&i.Link,
		&i.LinkText,
		&i.SortOrder,
		&i.Active,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

// SlideFields are the editable columns of a slide.
type SlideFields struct {
	Title    string
	Subtitle string
	Image    string
	Link     string
	LinkText string
	Active   bool
}

// Fields returns the editable columns of s.
func (s Slide) Fields() SlideFields {
	return SlideFields{
		Title:    s.Title,
		Subtitle: s.Subtitle,
		Image:    s.Image,
		Link:     s.Link,
		LinkText: s.LinkText,
		Active:   s.Active,
	}
}

const createSlide = `-- name: CreateSlide :execlastid
INSERT INTO slides (website, title, subtitle, image, link, link_text, active, sort_order, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?,
	(SELECT COALESCE(MAX(sort_order), -1) + 1 FROM slides WHERE website = ?),
	?, ?)
`

type CreateSlideParams struct {
	Website string
	SlideFields
	CreatedAt time.Time
}

func (q *Queries) CreateSlide(ctx context.Context, arg CreateSlideParams) (Slide, error) {
	res, err := q.db.ExecContext(ctx, createSlide,
		arg.Website,
		arg.Title,
		arg.Subtitle,
		arg.Image,
		arg.Link,
		arg.LinkText,
		arg.Active,
		arg.Website,
		arg.CreatedAt,
		arg.CreatedAt,
	)
	if err != nil {
		return Slide{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Slide{}, err
	}
	return q.GetSlide(ctx, arg.Website, id)
}

const getSlide = `-- name: GetSlide :one
SELECT ` + slideColumns + ` FROM slides WHERE website = ? AND id = ?
`

func (q *Queries) GetSlide(ctx context.Context, website string, id int64) (Slide, error) {
	return scanSlide(q.db.QueryRowContext(ctx, getSlide, website, id))
}

const listSlides = `-- name: ListSlides :many
SELECT ` + slideColumns + ` FROM slides WHERE website = ? ORDER BY sort_order, id
`

func (q *Queries) ListSlides(ctx context.Context, website string) ([]Slide, error) {
	rows, err := q.db.QueryContext(ctx, listSlides, website)
	return collect(rows, err, scanSlide)
}

const listActiveSlides = `-- name: ListActiveSlides :many
SELECT ` + slideColumns + ` FROM slides WHERE website = ? AND active = 1 ORDER BY sort_order, id
`

func (q *Queries) ListActiveSlides(ctx context.Context, website string) ([]Slide, error) {
	rows, err := q.db.QueryContext(ctx, listActiveSlides, website)
	return collect(rows, err, scanSlide)
}

const updateSlide = `-- name: UpdateSlide :exec
UPDATE slides SET title = ?, subtitle = ?, image = ?, link = ?, link_text = ?, active = ?, updated_at = ?
WHERE website = ? AND id = ?
`

type UpdateSlideParams struct {
	Website string
	ID      int64
	SlideFields
	UpdatedAt time.Time
}

func (q *Queries) UpdateSlide(ctx context.Context, arg UpdateSlideParams) (Slide, error) {
	_, err := q.db.ExecContext(ctx, updateSlide,
		arg.Title,
		arg.Subtitle,
		arg.Image,
		arg.Link,
		arg.LinkText,
		arg.Active,
		arg.UpdatedAt,
		arg.Website,
		arg.ID,
	)
	if err != nil {
		return Slide{}, err
	}
	return q.GetSlide(ctx, arg.Website, arg.ID)
}

const deleteSlide = `-- name: DeleteSlide :execrows
DELETE FROM slides WHERE website = ? AND id = ?
`

func (q *Queries) DeleteSlide(ctx context.Context, website string, id int64) (int64, error) {
	return affected(q.db.ExecContext(ctx, deleteSlide, website, id))
}

const listSlideIDs = `-- name: ListSlideIDs :many
SELECT id FROM slides WHERE website = ?
`

func (q *Queries) ListSlideIDs(ctx context.Context, website string) ([]int64, error) {
	rows, err := q.db.QueryContext(ctx, listSlideIDs, website)
	return collect(rows, err, scanID)
}

const setSlideSortOrder = `-- name: SetSlideSortOrder :execrows
UPDATE slides SET sort_order = ?, updated_at = ? WHERE website = ? AND id = ?
`

func (q *Queries) SetSlideSortOrder(ctx context.Context, website string, id, sortOrder int64, at time.Time) (int64, error) {
	return affected(q.db.ExecContext(ctx, setSlideSortOrder, sortOrder, at, website, id))
}
