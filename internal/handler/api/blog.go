// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/olegiv/dualsite/internal/service"
)

// ListPosts handles GET /api/admin/blog/posts?website=
func (h *Handler) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.svc.Blog.ListPosts(r.Context(), websiteOf(r))
	if err != nil {
		h.writeServiceError(w, r, err, "blog post")
		return
	}
	WriteList(w, posts)
}

// GetPost handles GET /api/admin/blog/posts/{id}?website=
func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "id", "blog post")
	if !ok {
		return
	}
	post, err := h.svc.Blog.GetPost(r.Context(), websiteOf(r), id)
	if err != nil {
		h.writeServiceError(w, r, err, "blog post")
		return
	}
	WriteSuccess(w, post, nil)
}

// CreatePost handles POST /api/admin/blog/posts?website=
// Unknown tag names are created on the fly.
func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var in service.PostInput
	if !decodeJSON(w, r, &in) {
		return
	}
	post, err := h.svc.Blog.CreatePost(r.Context(), websiteOf(r), in)
	if err != nil {
		h.writeServiceError(w, r, err, "blog post")
		return
	}
	WriteCreated(w, post)
}

// UpdatePost handles PUT /api/admin/blog/posts/{id}?website=
func (h *Handler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "id", "blog post")
	if !ok {
		return
	}
	var in service.PostInput
	if !decodeJSON(w, r, &in) {
		return
	}
	post, err := h.svc.Blog.UpdatePost(r.Context(), websiteOf(r), id, in)
	if err != nil {
		h.writeServiceError(w, r, err, "blog post")
		return
	}
	WriteSuccess(w, post, nil)
}

// DeletePost handles DELETE /api/admin/blog/posts/{id}?website=
func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "id", "blog post")
	if !ok {
		return
	}
	if err := h.svc.Blog.DeletePost(r.Context(), websiteOf(r), id); err != nil {
		h.writeServiceError(w, r, err, "blog post")
		return
	}
	WriteNoContent(w)
}

// ListCategories handles GET /api/admin/blog/categories?website=
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.Blog.ListCategories(r.Context(), websiteOf(r))
	if err != nil {
		h.writeServiceError(w, r, err, "category")
		return
	}
	WriteList(w, categories)
}

// GetCategory handles GET /api/admin/blog/categories/{id}?website=
func (h *Handler) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "id", "category")
	if !ok {
		return
	}
	category, err := h.svc.Blog.GetCategory(r.Context(), websiteOf(r), id)
	if err != nil {
		h.writeServiceError(w, r, err, "category")
		return
	}
	WriteSuccess(w, category, nil)
}

// CreateCategory handles POST /api/admin/blog/categories?website=
func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var in service.CategoryInput
	if !decodeJSON(w, r, &in) {
		return
	}
	category, err := h.svc.Blog.CreateCategory(r.Context(), websiteOf(r), in)
	if err != nil {
		h.writeServiceError(w, r, err, "category")
		return
	}
	WriteCreated(w, category)
}

// UpdateCategory handles PUT /api/admin/blog/categories/{id}?website=
func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "id", "category")
	if !ok {
		return
	}
	var in service.CategoryInput
	if !decodeJSON(w, r, &in) {
		return
	}
	category, err := h.svc.Blog.UpdateCategory(r.Context(), websiteOf(r), id, in)
	if err != nil {
		h.writeServiceError(w, r, err, "category")
		return
	}
	WriteSuccess(w, category, nil)
}

// DeleteCategory handles DELETE /api/admin/blog/categories/{id}?website=
// Categories still used by posts are answered with 409 referenced.
func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "id", "category")
	if !ok {
		return
	}
	if err := h.svc.Blog.DeleteCategory(r.Context(), websiteOf(r), id); err != nil {
		h.writeServiceError(w, r, err, "category")
		return
	}
	WriteNoContent(w)
}

// ListTags handles GET /api/admin/tags
func (h *Handler) ListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.svc.Blog.ListTags(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err, "tag")
		return
	}
	WriteList(w, tags)
}

// GetTag handles GET /api/admin/tags/{id}
func (h *Handler) GetTag(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "id", "tag")
	if !ok {
		return
	}
	tag, err := h.svc.Blog.GetTag(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err, "tag")
		return
	}
	WriteSuccess(w, tag, nil)
}

// CreateTag handles POST /api/admin/tags
// An existing tag with the same name or slug is returned with 200
// instead of creating a duplicate.
func (h *Handler) CreateTag(w http.ResponseWriter, r *http.Request) {
	var in service.TagInput
	if !decodeJSON(w, r, &in) {
		return
	}
	var name, slug string
	if in.Name != nil {
		name = *in.Name
	}
	if in.Slug != nil {
		slug = *in.Slug
	}
	tag, created, err := h.svc.Blog.EnsureTag(r.Context(), name, slug)
	if err != nil {
		h.writeServiceError(w, r, err, "tag")
		return
	}
	if created {
		WriteCreated(w, tag)
		return
	}
	WriteSuccess(w, tag, nil)
}

// UpdateTag handles PUT /api/admin/tags/{id}
func (h *Handler) UpdateTag(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "id", "tag")
	if !ok {
		return
	}
	var in service.TagInput
	if !decodeJSON(w, r, &in) {
		return
	}
	tag, err := h.svc.Blog.UpdateTag(r.Context(), id, in)
	if err != nil {
		h.writeServiceError(w, r, err, "tag")
		return
	}
	WriteSuccess(w, tag, nil)
}

// DeleteTag handles DELETE /api/admin/tags/{id}
func (h *Handler) DeleteTag(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r, "id", "tag")
	if !ok {
		return
	}
	if err := h.svc.Blog.DeleteTag(r.Context(), id); err != nil {
		h.writeServiceError(w, r, err, "tag")
		return
	}
	WriteNoContent(w)
}
