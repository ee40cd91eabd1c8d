// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/olegiv/dualsite/internal/model"
	"github.com/olegiv/dualsite/internal/revalidate"
	"github.com/olegiv/dualsite/internal/store"
	"github.com/olegiv/dualsite/internal/util"
)

// MaxTagNameLength bounds tag names.
const MaxTagNameLength = 100

// BlogService manages blog posts, categories and the global tag list.
type BlogService struct {
	base
}

// NewBlogService creates a new BlogService.
func NewBlogService(db *sql.DB, notifier Notifier, logger *slog.Logger) *BlogService {
	return &BlogService{base: newBase(db, notifier, logger)}
}

func (s *BlogService) notifyJournal(website model.Website) {
	s.notify(website, revalidate.ForTag(model.TagJournalPage))
}

// Categories

// CategoryInput is the create and update body of a blog category.
type CategoryInput struct {
	Website     string  `json:"website"`
	Name        *string `json:"name"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
}

func (s *BlogService) validateCategory(ctx context.Context, website model.Website, c *store.BlogCategory) error {
	if err := firstErr(required("name", c.Name), maxLength("name", c.Name, MaxTitleLength)); err != nil {
		return err
	}
	slug, err := resolveSlug("slug", c.Slug, c.Name)
	if err != nil {
		return err
	}
	c.Slug = slug
	exists, err := s.queries.BlogCategorySlugExists(ctx, string(website), slug, c.ID)
	if err != nil {
		return fmt.Errorf("checking category slug: %w", err)
	}
	if exists {
		return &ConflictError{Field: "slug", Value: slug}
	}
	return nil
}

// ListCategories returns the categories of website ordered by name.
func (s *BlogService) ListCategories(ctx context.Context, website model.Website) ([]store.BlogCategory, error) {
	cats, err := s.queries.ListBlogCategories(ctx, string(website))
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	return cats, nil
}

// GetCategory returns a category of website by ID.
func (s *BlogService) GetCategory(ctx context.Context, website model.Website, id int64) (store.BlogCategory, error) {
	c, err := s.queries.GetBlogCategory(ctx, string(website), id)
	if err != nil {
		return store.BlogCategory{}, lookupErr(err, "category")
	}
	return c, nil
}

// CreateCategory adds a blog category.
func (s *BlogService) CreateCategory(ctx context.Context, website model.Website, in CategoryInput) (store.BlogCategory, error) {
	if err := checkWebsite(website, in.Website); err != nil {
		return store.BlogCategory{}, err
	}
	var c store.BlogCategory
	setTrimmed(&c.Name, in.Name)
	setTrimmed(&c.Slug, in.Slug)
	setTrimmed(&c.Description, in.Description)
	if err := s.validateCategory(ctx, website, &c); err != nil {
		return store.BlogCategory{}, err
	}
	created, err := s.queries.CreateBlogCategory(ctx, store.CreateBlogCategoryParams{
		Website:     string(website),
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		CreatedAt:   store.Now(),
	})
	if err != nil {
		return store.BlogCategory{}, writeErr(err, "category", "slug", c.Slug)
	}
	s.notifyJournal(website)
	return created, nil
}

// UpdateCategory applies the present fields of in to a category.
func (s *BlogService) UpdateCategory(ctx context.Context, website model.Website, id int64, in CategoryInput) (store.BlogCategory, error) {
	if err := checkWebsite(website, in.Website); err != nil {
		return store.BlogCategory{}, err
	}
	c, err := s.GetCategory(ctx, website, id)
	if err != nil {
		return store.BlogCategory{}, err
	}
	setTrimmed(&c.Name, in.Name)
	setTrimmed(&c.Slug, in.Slug)
	setTrimmed(&c.Description, in.Description)
	if err := s.validateCategory(ctx, website, &c); err != nil {
		return store.BlogCategory{}, err
	}
	updated, err := s.queries.UpdateBlogCategory(ctx, store.UpdateBlogCategoryParams{
		Website:     string(website),
		ID:          id,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		UpdatedAt:   store.Now(),
	})
	if err != nil {
		return store.BlogCategory{}, writeErr(err, "category", "slug", c.Slug)
	}
	s.notifyJournal(website)
	return updated, nil
}

// DeleteCategory removes a category that no post references.
func (s *BlogService) DeleteCategory(ctx context.Context, website model.Website, id int64) error {
	if _, err := s.GetCategory(ctx, website, id); err != nil {
		return err
	}
	count, err := s.queries.CountPostsInCategory(ctx, id)
	if err != nil {
		return fmt.Errorf("counting category posts: %w", err)
	}
	if count > 0 {
		return &ReferenceError{Entity: "blog posts", Count: count}
	}

	n, err := s.queries.DeleteBlogCategory(ctx, string(website), id)
	if err != nil {
		if store.IsForeignKeyViolation(err) {
			count, _ = s.queries.CountPostsInCategory(ctx, id)
			return &ReferenceError{Entity: "blog posts", Count: max(count, 1)}
		}
		return fmt.Errorf("deleting category: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	s.notifyJournal(website)
	return nil
}

// Tags

// TagInput is the create and update body of a tag.
type TagInput struct {
	Name *string `json:"name"`
	Slug *string `json:"slug"`
}

func tagKey(name, slug string) (string, string, error) {
	name = strings.TrimSpace(name)
	if err := firstErr(required("name", name), maxLength("name", name, MaxTagNameLength)); err != nil {
		return "", "", err
	}
	slug = strings.TrimSpace(slug)
	if slug == "" {
		slug = model.TagSlug(name)
		if slug == "" {
			return "", "", invalid("name", "must contain at least one letter or digit")
		}
	} else if !util.IsValidSlug(slug) {
		return "", "", invalid("slug", "must contain only lowercase letters, numbers and single hyphens")
	}
	return name, slug, nil
}

// ListTags returns every tag with the number of posts using it.
func (s *BlogService) ListTags(ctx context.Context) ([]store.TagWithCount, error) {
	tags, err := s.queries.ListTagsWithCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	return tags, nil
}

// GetTag returns a tag by ID.
func (s *BlogService) GetTag(ctx context.Context, id int64) (store.Tag, error) {
	t, err := s.queries.GetTag(ctx, id)
	if err != nil {
		return store.Tag{}, lookupErr(err, "tag")
	}
	return t, nil
}

// EnsureTag returns the tag matching name (case-insensitive) or its slug,
// creating it when none exists. created reports whether a row was inserted.
func (s *BlogService) EnsureTag(ctx context.Context, name, slug string) (tag store.Tag, created bool, err error) {
	return ensureTag(ctx, s.queries, name, slug)
}

func ensureTag(ctx context.Context, q *store.Queries, name, slug string) (store.Tag, bool, error) {
	name, slug, err := tagKey(name, slug)
	if err != nil {
		return store.Tag{}, false, err
	}
	tag, err := q.FindTag(ctx, name, slug)
	if err == nil {
		return tag, false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return store.Tag{}, false, fmt.Errorf("finding tag: %w", err)
	}

	tag, err = q.CreateTag(ctx, name, slug, store.Now())
	if err == nil {
		return tag, true, nil
	}
	if !store.IsUniqueViolation(err) {
		return store.Tag{}, false, fmt.Errorf("creating tag: %w", err)
	}
	// Lost a race with a concurrent insert: return the winner.
	tag, err = q.FindTag(ctx, name, slug)
	if err != nil {
		return store.Tag{}, false, fmt.Errorf("re-reading tag: %w", err)
	}
	return tag, false, nil
}

// UpdateTag renames a tag, keeping name and slug globally unique.
func (s *BlogService) UpdateTag(ctx context.Context, id int64, in TagInput) (store.Tag, error) {
	current, err := s.GetTag(ctx, id)
	if err != nil {
		return store.Tag{}, err
	}
	name, slug := current.Name, current.Slug
	if in.Name != nil {
		name = *in.Name
		if in.Slug == nil {
			slug = ""
		}
	}
	if in.Slug != nil {
		slug = *in.Slug
	}
	name, slug, err = tagKey(name, slug)
	if err != nil {
		return store.Tag{}, err
	}

	taken, err := s.queries.TagTaken(ctx, name, slug, id)
	if err != nil {
		return store.Tag{}, fmt.Errorf("checking tag: %w", err)
	}
	if taken {
		return store.Tag{}, &ConflictError{Field: "name", Value: name}
	}
	n, err := s.queries.UpdateTag(ctx, id, name, slug)
	if err != nil {
		return store.Tag{}, writeErr(err, "tag", "name", name)
	}
	if n == 0 {
		return store.Tag{}, ErrNotFound
	}
	return s.GetTag(ctx, id)
}

// DeleteTag removes a tag and its post links.
func (s *BlogService) DeleteTag(ctx context.Context, id int64) error {
	n, err := s.queries.DeleteTag(ctx, id)
	if err != nil {
		return fmt.Errorf("deleting tag: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Posts

// Post is a blog post with its tags.
type Post struct {
	store.BlogPost
	Tags []store.Tag `json:"tags"`
}

// PostInput is the create and update body of a blog post. Tags holds tag
// names; when present it replaces the post's tag set.
type PostInput struct {
	Website         string              `json:"website"`
	Title           *string             `json:"title"`
	Slug            *string             `json:"slug"`
	Excerpt         *string             `json:"excerpt"`
	Content         *string             `json:"content"`
	FeaturedImage   *string             `json:"featured_image"`
	Author          *string             `json:"author"`
	CategoryID      Nullable[int64]     `json:"category_id"`
	Published       *bool               `json:"published"`
	PublishedAt     Nullable[time.Time] `json:"published_at"`
	MetaTitle       *string             `json:"meta_title"`
	MetaDescription *string             `json:"meta_description"`
	Tags            *[]string           `json:"tags"`
}

func (in PostInput) applyTo(f *store.BlogPostFields) {
	setTrimmed(&f.Title, in.Title)
	setTrimmed(&f.Slug, in.Slug)
	setTrimmed(&f.Excerpt, in.Excerpt)
	if in.Content != nil {
		f.Content = richText.Sanitize(*in.Content)
	}
	setTrimmed(&f.FeaturedImage, in.FeaturedImage)
	setTrimmed(&f.Author, in.Author)
	in.CategoryID.apply(&f.CategoryID)
	set(&f.Published, in.Published)
	in.PublishedAt.apply(&f.PublishedAt)
	setTrimmed(&f.MetaTitle, in.MetaTitle)
	setTrimmed(&f.MetaDescription, in.MetaDescription)
}

func (s *BlogService) validatePost(ctx context.Context, website model.Website, f *store.BlogPostFields, excludeID int64) error {
	if err := firstErr(
		required("title", f.Title),
		maxLength("title", f.Title, MaxTitleLength),
		maxLength("excerpt", f.Excerpt, MaxShortText*2),
		maxLength("meta_title", f.MetaTitle, MaxTitleLength),
		maxLength("meta_description", f.MetaDescription, MaxShortText),
	); err != nil {
		return err
	}
	slug, err := resolveSlug("slug", f.Slug, f.Title)
	if err != nil {
		return err
	}
	f.Slug = slug

	if f.CategoryID != nil {
		if _, err := s.queries.GetBlogCategory(ctx, string(website), *f.CategoryID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return invalid("category_id", "category %d does not exist", *f.CategoryID)
			}
			return fmt.Errorf("loading category: %w", err)
		}
	}
	if f.Published && f.PublishedAt == nil {
		now := store.Now()
		f.PublishedAt = &now
	}
	if f.PublishedAt != nil {
		t := store.Timestamp(*f.PublishedAt)
		f.PublishedAt = &t
	}

	exists, err := s.queries.BlogPostSlugExists(ctx, string(website), slug, excludeID)
	if err != nil {
		return fmt.Errorf("checking post slug: %w", err)
	}
	if exists {
		return &ConflictError{Field: "slug", Value: slug}
	}
	return nil
}

// setPostTags replaces the tag set of a post, creating missing tags.
func setPostTags(ctx context.Context, q *store.Queries, postID int64, names []string) error {
	if err := q.DeleteBlogPostTags(ctx, postID); err != nil {
		return fmt.Errorf("clearing post tags: %w", err)
	}
	for i, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		tag, _, err := ensureTag(ctx, q, name, "")
		if err != nil {
			var ve *ValidationError
			if errors.As(err, &ve) {
				return invalid(fmt.Sprintf("tags[%d]", i), "%s", ve.Message)
			}
			return err
		}
		if err := q.AddBlogPostTag(ctx, postID, tag.ID); err != nil {
			return fmt.Errorf("linking tag: %w", err)
		}
	}
	return nil
}

func (s *BlogService) withTags(ctx context.Context, p store.BlogPost) (Post, error) {
	tags, err := s.queries.ListTagsForPost(ctx, p.ID)
	if err != nil {
		return Post{}, fmt.Errorf("listing post tags: %w", err)
	}
	return Post{BlogPost: p, Tags: tags}, nil
}

func (s *BlogService) withTagsAll(ctx context.Context, posts []store.BlogPost) ([]Post, error) {
	out := make([]Post, 0, len(posts))
	for _, p := range posts {
		post, err := s.withTags(ctx, p)
		if err != nil {
			return nil, err
		}
		out = append(out, post)
	}
	return out, nil
}

// ListPosts returns every post of website, drafts included.
func (s *BlogService) ListPosts(ctx context.Context, website model.Website) ([]Post, error) {
	posts, err := s.queries.ListBlogPosts(ctx, string(website))
	if err != nil {
		return nil, fmt.Errorf("listing posts: %w", err)
	}
	return s.withTagsAll(ctx, posts)
}

// GetPost returns a post of website by ID.
func (s *BlogService) GetPost(ctx context.Context, website model.Website, id int64) (Post, error) {
	p, err := s.queries.GetBlogPost(ctx, string(website), id)
	if err != nil {
		return Post{}, lookupErr(err, "post")
	}
	return s.withTags(ctx, p)
}

// CreatePost adds a blog post and its tags. Publishing without a date
// stamps the current time.
func (s *BlogService) CreatePost(ctx context.Context, website model.Website, in PostInput) (Post, error) {
	if err := checkWebsite(website, in.Website); err != nil {
		return Post{}, err
	}
	var f store.BlogPostFields
	in.applyTo(&f)
	if err := s.validatePost(ctx, website, &f, 0); err != nil {
		return Post{}, err
	}

	var created store.BlogPost
	err := store.InTx(ctx, s.db, func(q *store.Queries) error {
		var err error
		created, err = q.CreateBlogPost(ctx, store.CreateBlogPostParams{
			Website:        string(website),
			BlogPostFields: f,
			CreatedAt:      store.Now(),
		})
		if err != nil {
			return writeErr(err, "post", "slug", f.Slug)
		}
		if in.Tags != nil {
			return setPostTags(ctx, q, created.ID, *in.Tags)
		}
		return nil
	})
	if err != nil {
		return Post{}, err
	}

	s.logger.Info("blog post created", "website", website, "post_id", created.ID, "slug", created.Slug)
	s.notifyJournal(website)
	return s.withTags(ctx, created)
}

// UpdatePost applies the present fields of in to a post.
func (s *BlogService) UpdatePost(ctx context.Context, website model.Website, id int64, in PostInput) (Post, error) {
	if err := checkWebsite(website, in.Website); err != nil {
		return Post{}, err
	}
	current, err := s.queries.GetBlogPost(ctx, string(website), id)
	if err != nil {
		return Post{}, lookupErr(err, "post")
	}
	f := current.Fields()
	in.applyTo(&f)
	if err := s.validatePost(ctx, website, &f, id); err != nil {
		return Post{}, err
	}

	var updated store.BlogPost
	err = store.InTx(ctx, s.db, func(q *store.Queries) error {
		var err error
		updated, err = q.UpdateBlogPost(ctx, store.UpdateBlogPostParams{
			Website:        string(website),
			ID:             id,
			BlogPostFields: f,
			UpdatedAt:      store.Now(),
		})
		if err != nil {
			return writeErr(err, "post", "slug", f.Slug)
		}
		if in.Tags != nil {
			return setPostTags(ctx, q, id, *in.Tags)
		}
		return nil
	})
	if err != nil {
		return Post{}, err
	}

	s.notifyJournal(website)
	return s.withTags(ctx, updated)
}

// DeletePost removes a post.
func (s *BlogService) DeletePost(ctx context.Context, website model.Website, id int64) error {
	n, err := s.queries.DeleteBlogPost(ctx, string(website), id)
	if err != nil {
		return fmt.Errorf("deleting post: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	s.notifyJournal(website)
	return nil
}

// PostFilter narrows the public post list.
type PostFilter struct {
	CategorySlug string
	TagSlug      string
	Limit        int64
	Offset       int64
}

// ListPublished returns the visible posts of website matching filter and
// the total number of matches.
func (s *BlogService) ListPublished(ctx context.Context, website model.Website, filter PostFilter) ([]Post, int64, error) {
	params := store.ListPublishedBlogPostsParams{
		Website:      string(website),
		Now:          store.Now(),
		CategorySlug: strings.TrimSpace(filter.CategorySlug),
		TagSlug:      strings.TrimSpace(filter.TagSlug),
		Limit:        filter.Limit,
		Offset:       filter.Offset,
	}
	total, err := s.queries.CountPublishedBlogPosts(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("counting posts: %w", err)
	}
	posts, err := s.queries.ListPublishedBlogPosts(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("listing posts: %w", err)
	}
	out, err := s.withTagsAll(ctx, posts)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// GetPublished returns a visible post of website by slug.
func (s *BlogService) GetPublished(ctx context.Context, website model.Website, slug string) (Post, error) {
	now := store.Now()
	p, err := s.queries.GetPublishedBlogPostBySlug(ctx, string(website), slug, now)
	if err != nil {
		return Post{}, lookupErr(err, "post")
	}
	if !model.BlogPostVisible(p.Published, p.PublishedAt, now) {
		return Post{}, ErrNotFound
	}
	return s.withTags(ctx, p)
}
