// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

// Categories

const blogCategoryColumns = `id, website, name, slug, description, created_at, updated_at`

func scanBlogCategory(s scanner) (BlogCategory, error) {
	var i BlogCategory
	err := s.Scan(&i.ID, &i.Website, &i.Name, &i.Slug, &i.Description, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

const createBlogCategory = `-- name: CreateBlogCategory :execlastid
INSERT INTO blog_categories (website, name, slug, description, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
`

type CreateBlogCategoryParams struct {
	Website     string
	Name        string
	Slug        string
	Description string
	CreatedAt   time.Time
}

func (q *Queries) CreateBlogCategory(ctx context.Context, arg CreateBlogCategoryParams) (BlogCategory, error) {
	res, err := q.db.ExecContext(ctx, createBlogCategory,
		arg.Website, arg.Name, arg.Slug, arg.Description, arg.CreatedAt, arg.CreatedAt)
	if err != nil {
		return BlogCategory{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return BlogCategory{}, err
	}
	return q.GetBlogCategory(ctx, arg.Website, id)
}

const getBlogCategory = `-- name: GetBlogCategory :one
SELECT ` + blogCategoryColumns + ` FROM blog_categories WHERE website = ? AND id = ?
`

func (q *Queries) GetBlogCategory(ctx context.Context, website string, id int64) (BlogCategory, error) {
	return scanBlogCategory(q.db.QueryRowContext(ctx, getBlogCategory, website, id))
}

const listBlogCategories = `-- name: ListBlogCategories :many
SELECT ` + blogCategoryColumns + ` FROM blog_categories WHERE website = ? ORDER BY name, id
`

func (q *Queries) ListBlogCategories(ctx context.Context, website string) ([]BlogCategory, error) {
	rows, err := q.db.QueryContext(ctx, listBlogCategories, website)
	return collect(rows, err, scanBlogCategory)
}

const updateBlogCategory = `-- name: UpdateBlogCategory :exec
UPDATE blog_categories SET name = ?, slug = ?, description = ?, updated_at = ? WHERE website = ? AND id = ?
`

type UpdateBlogCategoryParams struct {
	Website     string
	ID          int64
	Name        string
	Slug        string
	Description string
	UpdatedAt   time.Time
}

func (q *Queries) UpdateBlogCategory(ctx context.Context, arg UpdateBlogCategoryParams) (BlogCategory, error) {
	_, err := q.db.ExecContext(ctx, updateBlogCategory,
		arg.Name, arg.Slug, arg.Description, arg.UpdatedAt, arg.Website, arg.ID)
	if err != nil {
		return BlogCategory{}, err
	}
	return q.GetBlogCategory(ctx, arg.Website, arg.ID)
}

const deleteBlogCategory = `-- name: DeleteBlogCategory :execrows
DELETE FROM blog_categories WHERE website = ? AND id = ?
`

func (q *Queries) DeleteBlogCategory(ctx context.Context, website string, id int64) (int64, error) {
	return affected(q.db.ExecContext(ctx, deleteBlogCategory, website, id))
}

const blogCategorySlugExists = `-- name: BlogCategorySlugExists :one
SELECT EXISTS(SELECT 1 FROM blog_categories WHERE website = ? AND slug = ? AND id != ?)
`

func (q *Queries) BlogCategorySlugExists(ctx context.Context, website, slug string, excludeID int64) (bool, error) {
	var exists bool
	err := q.db.QueryRowContext(ctx, blogCategorySlugExists, website, slug, excludeID).Scan(&exists)
	return exists, err
}

const countPostsInCategory = `-- name: CountPostsInCategory :one
SELECT COUNT(*) FROM blog_posts WHERE category_id = ?
`

func (q *Queries) CountPostsInCategory(ctx context.Context, categoryID int64) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countPostsInCategory, categoryID).Scan(&count)
	return count, err
}

// Tags

const tagColumns = `id, name, slug, created_at`

func scanTag(s scanner) (Tag, error) {
	var i Tag
	err := s.Scan(&i.ID, &i.Name, &i.Slug, &i.CreatedAt)
	return i, err
}

const createTag = `-- name: CreateTag :execlastid
INSERT INTO tags (name, slug, created_at) VALUES (?, ?, ?)
`

func (q *Queries) CreateTag(ctx context.Context, name, slug string, createdAt time.Time) (Tag, error) {
	res, err := q.db.ExecContext(ctx, createTag, name, slug, createdAt)
	if err != nil {
		return Tag{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Tag{}, err
	}
	return q.GetTag(ctx, id)
}

const getTag = `-- name: GetTag :one
SELECT ` + tagColumns + ` FROM tags WHERE id = ?
`

func (q *Queries) GetTag(ctx context.Context, id int64) (Tag, error) {
	return scanTag(q.db.QueryRowContext(ctx, getTag, id))
}

const findTag = `-- name: FindTag :one
SELECT ` + tagColumns + ` FROM tags WHERE name = ? COLLATE NOCASE OR slug = ? ORDER BY id LIMIT 1
`

// FindTag returns the tag whose name (case-insensitive) or slug matches.
func (q *Queries) FindTag(ctx context.Context, name, slug string) (Tag, error) {
	return scanTag(q.db.QueryRowContext(ctx, findTag, name, slug))
}

const getTagBySlug = `-- name: GetTagBySlug :one
SELECT ` + tagColumns + ` FROM tags WHERE slug = ?
`

func (q *Queries) GetTagBySlug(ctx context.Context, slug string) (Tag, error) {
	return scanTag(q.db.QueryRowContext(ctx, getTagBySlug, slug))
}

// TagWithCount is a tag and the number of posts using it.
type TagWithCount struct {
	Tag
	PostCount int64 `json:"post_count"`
}

const listTagsWithCounts = `-- name: ListTagsWithCounts :many
SELECT t.id, t.name, t.slug, t.created_at, COUNT(pt.post_id)
FROM tags t
LEFT JOIN blog_post_tags pt ON pt.tag_id = t.id
GROUP BY t.id
ORDER BY t.name COLLATE NOCASE, t.id
`

func (q *Queries) ListTagsWithCounts(ctx context.Context) ([]TagWithCount, error) {
	rows, err := q.db.QueryContext(ctx, listTagsWithCounts)
	return collect(rows, err, func(s scanner) (TagWithCount, error) {
		var i TagWithCount
		err := s.Scan(&i.ID, &i.Name, &i.Slug, &i.CreatedAt, &i.PostCount)
		return i, err
	})
}

const updateTag = `-- name: UpdateTag :execrows
UPDATE tags SET name = ?, slug = ? WHERE id = ?
`

func (q *Queries) UpdateTag(ctx context.Context, id int64, name, slug string) (int64, error) {
	return affected(q.db.ExecContext(ctx, updateTag, name, slug, id))
}

const deleteTag = `-- name: DeleteTag :execrows
DELETE FROM tags WHERE id = ?
`

func (q *Queries) DeleteTag(ctx context.Context, id int64) (int64, error) {
	return affected(q.db.ExecContext(ctx, deleteTag, id))
}

const tagTaken = `-- name: TagTaken :one
SELECT EXISTS(SELECT 1 FROM tags WHERE (name = ? COLLATE NOCASE OR slug = ?) AND id != ?)
`

// TagTaken reports whether another tag already uses name or slug.
func (q *Queries) TagTaken(ctx context.Context, name, slug string, excludeID int64) (bool, error) {
	var exists bool
	err := q.db.QueryRowContext(ctx, tagTaken, name, slug, excludeID).Scan(&exists)
	return exists, err
}

// Posts

const blogPostColumns = `p.id, p.website, p.title, p.slug, p.excerpt, p.content, p.featured_image, p.author,
	p.category_id, p.published, p.published_at, p.meta_title, p.meta_description, p.created_at, p.updated_at`

func scanBlogPost(s scanner) (BlogPost, error) {
	var i BlogPost
	err := s.Scan(
		&i.ID,
		&i.Website,
		&i.Title,
		&i.Slug,
		&i.Excerpt,
		&i.Content,
		&i.FeaturedImage,
		&i.Author,
		&i.CategoryID,
		&i.Published,
		&i.PublishedAt,
		&i.MetaTitle,
		&i.MetaDescription,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

// BlogPostFields are the editable columns of a blog post.
type BlogPostFields struct {
	Title           string
	Slug            string
	Excerpt         string
	Content         string
	FeaturedImage   string
	Author          string
	CategoryID      *int64
	Published       bool
	PublishedAt     *time.Time
	MetaTitle       string
	MetaDescription string
}

// Fields returns the editable columns of p.
func (p BlogPost) Fields() BlogPostFields {
	return BlogPostFields{
		Title:           p.Title,
		Slug:            p.Slug,
		Excerpt:         p.Excerpt,
		Content:         p.Content,
		FeaturedImage:   p.FeaturedImage,
		Author:          p.Author,
		CategoryID:      p.CategoryID,
		Published:       p.Published,
		PublishedAt:     p.PublishedAt,
		MetaTitle:       p.MetaTitle,
		MetaDescription: p.MetaDescription,
	}
}

func (f BlogPostFields) args() []any {
	return []any{
		f.Title, f.Slug, f.Excerpt, f.Content, f.FeaturedImage, f.Author,
		f.CategoryID, f.Published, f.PublishedAt, f.MetaTitle, f.MetaDescription,
	}
}

const createBlogPost = `-- name: CreateBlogPost :execlastid
INSERT INTO blog_posts (
	website, title, slug, excerpt, content, featured_image, author,
	category_id, published, published_at, meta_title, meta_description, created_at, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

type CreateBlogPostParams struct {
	Website string
	BlogPostFields
	CreatedAt time.Time
}

func (q *Queries) CreateBlogPost(ctx context.Context, arg CreateBlogPostParams) (BlogPost, error) {
	args := append([]any{arg.Website}, arg.args()...)
	args = append(args, arg.CreatedAt, arg.CreatedAt)
	res, err := q.db.ExecContext(ctx, createBlogPost, args...)
	if err != nil {
		return BlogPost{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return BlogPost{}, err
	}
	return q.GetBlogPost(ctx, arg.Website, id)
}

const getBlogPost = `-- name: GetBlogPost :one
SELECT ` + blogPostColumns + ` FROM blog_posts p WHERE p.website = ? AND p.id = ?
`

func (q *Queries) GetBlogPost(ctx context.Context, website string, id int64) (BlogPost, error) {
	return scanBlogPost(q.db.QueryRowContext(ctx, getBlogPost, website, id))
}

const listBlogPosts = `-- name: ListBlogPosts :many
SELECT ` + blogPostColumns + ` FROM blog_posts p WHERE p.website = ? ORDER BY p.created_at DESC, p.id DESC
`

func (q *Queries) ListBlogPosts(ctx context.Context, website string) ([]BlogPost, error) {
	rows, err := q.db.QueryContext(ctx, listBlogPosts, website)
	return collect(rows, err, scanBlogPost)
}

// The public filter: published and (no publish date or publish date reached).
const publishedPostFilter = `p.website = ? AND p.published = 1 AND (p.published_at IS NULL OR p.published_at <= ?)`

const publishedPostListFilter = publishedPostFilter + `
	AND (? = '' OR p.category_id = (SELECT c.id FROM blog_categories c WHERE c.website = p.website AND c.slug = ?))
	AND (? = '' OR EXISTS (SELECT 1 FROM blog_post_tags pt JOIN tags t ON t.id = pt.tag_id WHERE pt.post_id = p.id AND t.slug = ?))`

type ListPublishedBlogPostsParams struct {
	Website      string
	Now          time.Time
	CategorySlug string
	TagSlug      string
	Limit        int64
	Offset       int64
}

const listPublishedBlogPosts = `-- name: ListPublishedBlogPosts :many
SELECT ` + blogPostColumns + ` FROM blog_posts p
WHERE ` + publishedPostListFilter + `
ORDER BY COALESCE(p.published_at, p.created_at) DESC, p.id DESC
LIMIT ? OFFSET ?
`

func (q *Queries) ListPublishedBlogPosts(ctx context.Context, arg ListPublishedBlogPostsParams) ([]BlogPost, error) {
	rows, err := q.db.QueryContext(ctx, listPublishedBlogPosts,
		arg.Website, arg.Now,
		arg.CategorySlug, arg.CategorySlug,
		arg.TagSlug, arg.TagSlug,
		arg.Limit, arg.Offset,
	)
	return collect(rows, err, scanBlogPost)
}

const countPublishedBlogPosts = `-- name: CountPublishedBlogPosts :one
SELECT COUNT(*) FROM blog_posts p WHERE ` + publishedPostListFilter + `
`

func (q *Queries) CountPublishedBlogPosts(ctx context.Context, arg ListPublishedBlogPostsParams) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countPublishedBlogPosts,
		arg.Website, arg.Now,
		arg.CategorySlug, arg.CategorySlug,
		arg.TagSlug, arg.TagSlug,
	).Scan(&count)
	return count, err
}

const getPublishedBlogPostBySlug = `-- name: GetPublishedBlogPostBySlug :one
SELECT ` + blogPostColumns + ` FROM blog_posts p WHERE ` + publishedPostFilter + ` AND p.slug = ?
`

func (q *Queries) GetPublishedBlogPostBySlug(ctx context.Context, website, slug string, now time.Time) (BlogPost, error) {
	return scanBlogPost(q.db.QueryRowContext(ctx, getPublishedBlogPostBySlug, website, now, slug))
}

const updateBlogPost = `-- name: UpdateBlogPost :exec
UPDATE blog_posts SET
	title = ?, slug = ?, excerpt = ?, content = ?, featured_image = ?, author = ?,
	category_id = ?, published = ?, published_at = ?, meta_title = ?, meta_description = ?, updated_at = ?
WHERE website = ? AND id = ?
`

type UpdateBlogPostParams struct {
	Website string
	ID      int64
	BlogPostFields
	UpdatedAt time.Time
}

func (q *Queries) UpdateBlogPost(ctx context.Context, arg UpdateBlogPostParams) (BlogPost, error) {
	args := append(arg.args(), arg.UpdatedAt, arg.Website, arg.ID)
	if _, err := q.db.ExecContext(ctx, updateBlogPost, args...); err != nil {
		return BlogPost{}, err
	}
	return q.GetBlogPost(ctx, arg.Website, arg.ID)
}

const deleteBlogPost = `-- name: DeleteBlogPost :execrows
DELETE FROM blog_posts WHERE website = ? AND id = ?
`

func (q *Queries) DeleteBlogPost(ctx context.Context, website string, id int64) (int64, error) {
	return affected(q.db.ExecContext(ctx, deleteBlogPost, website, id))
}

const blogPostSlugExists = `-- name: BlogPostSlugExists :one
SELECT EXISTS(SELECT 1 FROM blog_posts WHERE website = ? AND slug = ? AND id != ?)
`

func (q *Queries) BlogPostSlugExists(ctx context.Context, website, slug string, excludeID int64) (bool, error) {
	var exists bool
	err := q.db.QueryRowContext(ctx, blogPostSlugExists, website, slug, excludeID).Scan(&exists)
	return exists, err
}

const countBlogPosts = `-- name: CountBlogPosts :one
SELECT COUNT(*),
	COALESCE(SUM(CASE WHEN published = 1 AND (published_at IS NULL OR published_at <= ?) THEN 1 ELSE 0 END), 0)
FROM blog_posts WHERE website = ?
`

// CountBlogPosts returns the total and publicly visible post counts of website.
func (q *Queries) CountBlogPosts(ctx context.Context, website string, now time.Time) (total, published int64, err error) {
	err = q.db.QueryRowContext(ctx, countBlogPosts, now, website).Scan(&total, &published)
	return total, published, err
}

// Post tags

const deleteBlogPostTags = `-- name: DeleteBlogPostTags :exec
DELETE FROM blog_post_tags WHERE post_id = ?
`

func (q *Queries) DeleteBlogPostTags(ctx context.Context, postID int64) error {
	_, err := q.db.ExecContext(ctx, deleteBlogPostTags, postID)
	return err
}

const addBlogPostTag = `-- name: AddBlogPostTag :exec
INSERT OR IGNORE INTO blog_post_tags (post_id, tag_id) VALUES (?, ?)
`

func (q *Queries) AddBlogPostTag(ctx context.Context, postID, tagID int64) error {
	_, err := q.db.ExecContext(ctx, addBlogPostTag, postID, tagID)
	return err
}

const listTagsForPost = `-- name: ListTagsForPost :many
SELECT t.id, t.name, t.slug, t.created_at
FROM tags t JOIN blog_post_tags pt ON pt.tag_id = t.id
WHERE pt.post_id = ?
ORDER BY t.name COLLATE NOCASE
`

func (q *Queries) ListTagsForPost(ctx context.Context, postID int64) ([]Tag, error) {
	rows, err := q.db.QueryContext(ctx, listTagsForPost, postID)
	return collect(rows, err, scanTag)
}
