// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/olegiv/dualsite/internal/model"
	"github.com/olegiv/dualsite/internal/revalidate"
	"github.com/olegiv/dualsite/internal/store"
)

// PageService manages pages and their sections.
type PageService struct {
	base
}

// NewPageService creates a new PageService.
func NewPageService(db *sql.DB, notifier Notifier, logger *slog.Logger) *PageService {
	return &PageService{base: newBase(db, notifier, logger)}
}

// PageInput is the create and update body of a page. Nil fields keep
// their current value on update.
type PageInput struct {
	Website             string  `json:"website"`
	Slug                *string `json:"slug"`
	Title               *string `json:"title"`
	MetaTitle           *string `json:"meta_title"`
	MetaDescription     *string `json:"meta_description"`
	OgImage             *string `json:"og_image"`
	HeroTitle           *string `json:"hero_title"`
	HeroSubtitle        *string `json:"hero_subtitle"`
	HeroDescription     *string `json:"hero_description"`
	HeroImage           *string `json:"hero_image"`
	HeroButtonText      *string `json:"hero_button_text"`
	HeroButtonLink      *string `json:"hero_button_link"`
	HeroBackgroundColor *string `json:"hero_background_color"`
	HeroTextColor       *string `json:"hero_text_color"`
	Active              *bool   `json:"active"`
	ShowInSidebar       *bool   `json:"show_in_sidebar"`
	SidebarName         *string `json:"sidebar_name"`
	SidebarPosition     *int64  `json:"sidebar_position"`
}

func (in PageInput) applyTo(f *store.PageFields) {
	setTrimmed(&f.Slug, in.Slug)
	setTrimmed(&f.Title, in.Title)
	setTrimmed(&f.MetaTitle, in.MetaTitle)
	setTrimmed(&f.MetaDescription, in.MetaDescription)
	setTrimmed(&f.OgImage, in.OgImage)
	setTrimmed(&f.HeroTitle, in.HeroTitle)
	setTrimmed(&f.HeroSubtitle, in.HeroSubtitle)
	setTrimmed(&f.HeroDescription, in.HeroDescription)
	setTrimmed(&f.HeroImage, in.HeroImage)
	setTrimmed(&f.HeroButtonText, in.HeroButtonText)
	setTrimmed(&f.HeroButtonLink, in.HeroButtonLink)
	setTrimmed(&f.HeroBackgroundColor, in.HeroBackgroundColor)
	setTrimmed(&f.HeroTextColor, in.HeroTextColor)
	set(&f.Active, in.Active)
	set(&f.ShowInSidebar, in.ShowInSidebar)
	setTrimmed(&f.SidebarName, in.SidebarName)
	set(&f.SidebarPosition, in.SidebarPosition)
}

// checkWebsite rejects a body website that disagrees with the query website.
func checkWebsite(website model.Website, body string) error {
	if !website.Valid() {
		return ErrInvalidWebsite
	}
	if body != "" && body != string(website) {
		return fmt.Errorf("%w: body website %q does not match %q", ErrInvalidWebsite, body, website)
	}
	return nil
}

func (s *PageService) validate(ctx context.Context, website model.Website, f *store.PageFields, excludeID int64) error {
	if err := firstErr(
		required("title", f.Title),
		maxLength("title", f.Title, MaxTitleLength),
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
	exists, err := s.queries.PageSlugExists(ctx, string(website), slug, excludeID)
	if err != nil {
		return fmt.Errorf("checking page slug: %w", err)
	}
	if exists {
		return &ConflictError{Field: "slug", Value: slug}
	}
	return nil
}

// List returns every page of website ordered by title.
func (s *PageService) List(ctx context.Context, website model.Website) ([]store.Page, error) {
	pages, err := s.queries.ListPages(ctx, string(website))
	if err != nil {
		return nil, fmt.Errorf("listing pages: %w", err)
	}
	return pages, nil
}

// Get returns a page of website by ID.
func (s *PageService) Get(ctx context.Context, website model.Website, id int64) (store.Page, error) {
	p, err := s.queries.GetPage(ctx, string(website), id)
	if err != nil {
		return store.Page{}, lookupErr(err, "page")
	}
	return p, nil
}

// Create adds a page. A missing slug is derived from the title.
func (s *PageService) Create(ctx context.Context, website model.Website, in PageInput) (store.Page, error) {
	if err := checkWebsite(website, in.Website); err != nil {
		return store.Page{}, err
	}
	f := store.PageFields{Active: true}
	in.applyTo(&f)
	if err := s.validate(ctx, website, &f, 0); err != nil {
		return store.Page{}, err
	}

	p, err := s.queries.CreatePage(ctx, store.CreatePageParams{
		Website:    string(website),
		PageFields: f,
		CreatedAt:  store.Now(),
	})
	if err != nil {
		return store.Page{}, writeErr(err, "page", "slug", f.Slug)
	}

	s.logger.Info("page created", "website", website, "page_id", p.ID, "slug", p.Slug)
	s.notify(website, revalidate.ForTag(model.TagPages), revalidate.ForPath(model.PagePath(p.Slug)))
	return p, nil
}

// Update applies the present fields of in to a page.
func (s *PageService) Update(ctx context.Context, website model.Website, id int64, in PageInput) (store.Page, error) {
	if err := checkWebsite(website, in.Website); err != nil {
		return store.Page{}, err
	}
	current, err := s.Get(ctx, website, id)
	if err != nil {
		return store.Page{}, err
	}
	f := current.Fields()
	in.applyTo(&f)
	if err := s.validate(ctx, website, &f, id); err != nil {
		return store.Page{}, err
	}

	p, err := s.queries.UpdatePage(ctx, store.UpdatePageParams{
		Website:    string(website),
		ID:         id,
		PageFields: f,
		UpdatedAt:  store.Now(),
	})
	if err != nil {
		return store.Page{}, writeErr(err, "page", "slug", f.Slug)
	}

	targets := []revalidate.Target{revalidate.ForTag(model.TagPages), revalidate.ForPath(model.PagePath(p.Slug))}
	if current.Slug != p.Slug {
		targets = append(targets, revalidate.ForPath(model.PagePath(current.Slug)))
	}
	s.notify(website, targets...)
	return p, nil
}

// Delete removes a page together with its sections.
func (s *PageService) Delete(ctx context.Context, website model.Website, id int64) error {
	current, err := s.Get(ctx, website, id)
	if err != nil {
		return err
	}
	n, err := s.queries.DeletePage(ctx, string(website), id)
	if err != nil {
		return fmt.Errorf("deleting page: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}

	s.logger.Info("page deleted", "website", website, "page_id", id, "slug", current.Slug)
	s.notify(website, revalidate.ForTag(model.TagPages), revalidate.ForPath(model.PagePath(current.Slug)))
	return nil
}

// SectionInput is the create and update body of a page section.
type SectionInput struct {
	Type            *string `json:"type"`
	Title           *string `json:"title"`
	Subtitle        *string `json:"subtitle"`
	Content         *string `json:"content"`
	Image           *string `json:"image"`
	ImagePosition   *string `json:"image_position"`
	BackgroundColor *string `json:"background_color"`
	Active          *bool   `json:"active"`
	CollectionsInput
}

func (in SectionInput) applyTo(f *store.PageSectionFields) {
	setTrimmed(&f.Type, in.Type)
	setTrimmed(&f.Title, in.Title)
	setTrimmed(&f.Subtitle, in.Subtitle)
	if in.Content != nil {
		f.Content = richText.Sanitize(*in.Content)
	}
	setTrimmed(&f.Image, in.Image)
	setTrimmed(&f.ImagePosition, in.ImagePosition)
	setTrimmed(&f.BackgroundColor, in.BackgroundColor)
	set(&f.Active, in.Active)
}

// Image positions of text-image sections
const (
	ImagePositionLeft  = "left"
	ImagePositionRight = "right"
)

func validateSection(f *store.PageSectionFields, c *model.SectionCollections) error {
	t := model.SectionType(f.Type)
	if f.Type == "" {
		return invalid("type", "is required")
	}
	if !t.Valid() {
		return invalid("type", "unknown section type %q", f.Type)
	}
	switch f.ImagePosition {
	case "", ImagePositionLeft, ImagePositionRight:
	default:
		return invalid("image_position", "must be left or right")
	}
	if err := maxLength("title", f.Title, MaxTitleLength); err != nil {
		return err
	}
	encoded, err := prepareCollections(c, t)
	if err != nil {
		return err
	}
	f.Collections = encoded
	return nil
}

func (s *PageService) notifyPage(website model.Website, slug string) {
	s.notify(website, revalidate.ForTag(model.TagPages), revalidate.ForPath(model.PagePath(slug)))
}

// Sections returns every section of a page in display order.
func (s *PageService) Sections(ctx context.Context, website model.Website, pageID int64) ([]PageSection, error) {
	if _, err := s.Get(ctx, website, pageID); err != nil {
		return nil, err
	}
	rows, err := s.queries.ListPageSections(ctx, pageID)
	if err != nil {
		return nil, fmt.Errorf("listing sections: %w", err)
	}
	return toPageSections(rows)
}

// Section returns one section of a page.
func (s *PageService) Section(ctx context.Context, website model.Website, pageID, id int64) (PageSection, error) {
	if _, err := s.Get(ctx, website, pageID); err != nil {
		return PageSection{}, err
	}
	row, err := s.queries.GetPageSection(ctx, pageID, id)
	if err != nil {
		return PageSection{}, lookupErr(err, "section")
	}
	return toPageSection(row)
}

// CreateSection appends a section to a page.
func (s *PageService) CreateSection(ctx context.Context, website model.Website, pageID int64, in SectionInput) (PageSection, error) {
	page, err := s.Get(ctx, website, pageID)
	if err != nil {
		return PageSection{}, err
	}
	f := store.PageSectionFields{Active: true}
	in.applyTo(&f)
	var c model.SectionCollections
	in.CollectionsInput.applyTo(&c)
	if err := validateSection(&f, &c); err != nil {
		return PageSection{}, err
	}

	row, err := s.queries.CreatePageSection(ctx, store.CreatePageSectionParams{
		PageID:            pageID,
		PageSectionFields: f,
		CreatedAt:         store.Now(),
	})
	if err != nil {
		return PageSection{}, fmt.Errorf("creating section: %w", err)
	}

	s.notifyPage(website, page.Slug)
	return toPageSection(row)
}

// UpdateSection applies the present fields of in to a section.
func (s *PageService) UpdateSection(ctx context.Context, website model.Website, pageID, id int64, in SectionInput) (PageSection, error) {
	page, err := s.Get(ctx, website, pageID)
	if err != nil {
		return PageSection{}, err
	}
	current, err := s.queries.GetPageSection(ctx, pageID, id)
	if err != nil {
		return PageSection{}, lookupErr(err, "section")
	}
	existing, err := toPageSection(current)
	if err != nil {
		return PageSection{}, err
	}

	f := current.Fields()
	in.applyTo(&f)
	c := existing.SectionCollections
	in.CollectionsInput.applyTo(&c)
	if err := validateSection(&f, &c); err != nil {
		return PageSection{}, err
	}

	row, err := s.queries.UpdatePageSection(ctx, store.UpdatePageSectionParams{
		PageID:            pageID,
		ID:                id,
		PageSectionFields: f,
		UpdatedAt:         store.Now(),
	})
	if err != nil {
		return PageSection{}, lookupErr(err, "section")
	}

	s.notifyPage(website, page.Slug)
	return toPageSection(row)
}

// DeleteSection removes a section from a page.
func (s *PageService) DeleteSection(ctx context.Context, website model.Website, pageID, id int64) error {
	page, err := s.Get(ctx, website, pageID)
	if err != nil {
		return err
	}
	n, err := s.queries.DeletePageSection(ctx, pageID, id)
	if err != nil {
		return fmt.Errorf("deleting section: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	s.notifyPage(website, page.Slug)
	return nil
}

// ReorderSections sets the display order of every section of a page.
func (s *PageService) ReorderSections(ctx context.Context, website model.Website, pageID int64, ids []int64) error {
	page, err := s.Get(ctx, website, pageID)
	if err != nil {
		return err
	}
	now := store.Now()
	err = reorder(ctx, &s.base, ids, reorderScope{
		list: func(ctx context.Context, q *store.Queries) ([]int64, error) {
			return q.ListPageSectionIDs(ctx, pageID)
		},
		set: func(ctx context.Context, q *store.Queries, id, sortOrder int64) (int64, error) {
			return q.SetPageSectionSortOrder(ctx, pageID, id, sortOrder, now)
		},
	})
	if err != nil {
		return err
	}
	s.notifyPage(website, page.Slug)
	return nil
}

// PublicPage is an active page with its active sections.
type PublicPage struct {
	store.Page
	Sections []PageSection `json:"sections"`
}

// ListPublic returns the active pages of website.
func (s *PageService) ListPublic(ctx context.Context, website model.Website) ([]store.Page, error) {
	pages, err := s.queries.ListActivePages(ctx, string(website))
	if err != nil {
		return nil, fmt.Errorf("listing active pages: %w", err)
	}
	return pages, nil
}

// GetPublic returns an active page by slug with its visible sections.
func (s *PageService) GetPublic(ctx context.Context, website model.Website, slug string) (PublicPage, error) {
	slug = strings.TrimSpace(slug)
	p, err := s.queries.GetActivePageBySlug(ctx, string(website), slug)
	if err != nil {
		return PublicPage{}, lookupErr(err, "page")
	}
	if !model.PageVisible(p.Active) {
		return PublicPage{}, ErrNotFound
	}
	rows, err := s.queries.ListActivePageSections(ctx, p.ID)
	if err != nil {
		return PublicPage{}, fmt.Errorf("listing sections: %w", err)
	}
	sections, err := toPageSections(rows)
	if err != nil {
		return PublicPage{}, err
	}
	return PublicPage{Page: p, Sections: sections}, nil
}

// NavItem is one navigation entry.
type NavItem struct {
	Name     string `json:"name"`
	Href     string `json:"href"`
	Position int64  `json:"position"`
}

// Navigation holds the sidebar pages and the navbar anchors of a website.
type Navigation struct {
	Sidebar []NavItem `json:"sidebar"`
	Navbar  []NavItem `json:"navbar"`
}

// Navigation builds the public navigation of website.
func (s *PageService) Navigation(ctx context.Context, website model.Website) (Navigation, error) {
	pages, err := s.queries.ListSidebarPages(ctx, string(website))
	if err != nil {
		return Navigation{}, fmt.Errorf("listing sidebar pages: %w", err)
	}
	sections, err := s.queries.ListNavbarHomepageSections(ctx, string(website))
	if err != nil {
		return Navigation{}, fmt.Errorf("listing navbar sections: %w", err)
	}

	nav := Navigation{Sidebar: make([]NavItem, 0, len(pages)), Navbar: make([]NavItem, 0, len(sections))}
	for _, p := range pages {
		name := p.SidebarName
		if name == "" {
			name = p.Title
		}
		nav.Sidebar = append(nav.Sidebar, NavItem{Name: name, Href: model.PagePath(p.Slug), Position: p.SidebarPosition})
	}
	for _, hs := range sections {
		name := hs.NavbarName
		if name == "" {
			name = hs.Title
		}
		nav.Navbar = append(nav.Navbar, NavItem{Name: name, Href: "/#" + hs.Identifier, Position: hs.NavbarPosition})
	}
	return nav, nil
}
