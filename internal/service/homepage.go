// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/olegiv/dualsite/internal/model"
	"github.com/olegiv/dualsite/internal/revalidate"
	"github.com/olegiv/dualsite/internal/store"
	"github.com/olegiv/dualsite/internal/util"
)

// HomepageService manages homepage sections and hero slides.
type HomepageService struct {
	base
}

// NewHomepageService creates a new HomepageService.
func NewHomepageService(db *sql.DB, notifier Notifier, logger *slog.Logger) *HomepageService {
	return &HomepageService{base: newBase(db, notifier, logger)}
}

func (s *HomepageService) notifySections(website model.Website) {
	s.notify(website, revalidate.ForTag(model.TagSections), revalidate.ForTag(model.TagHomepage))
}

func (s *HomepageService) notifySlides(website model.Website) {
	s.notify(website, revalidate.ForTag(model.TagSlides))
}

// HomepageSectionInput is the create and update body of a homepage section.
type HomepageSectionInput struct {
	Website        string  `json:"website"`
	Identifier     *string `json:"identifier"`
	Type           *string `json:"type"`
	Title          *string `json:"title"`
	Subtitle       *string `json:"subtitle"`
	Content        *string `json:"content"`
	Image          *string `json:"image"`
	Active         *bool   `json:"active"`
	ShowInNavbar   *bool   `json:"show_in_navbar"`
	NavbarName     *string `json:"navbar_name"`
	NavbarPosition *int64  `json:"navbar_position"`
	CollectionsInput
}

func (in HomepageSectionInput) applyTo(f *store.HomepageSectionFields) {
	setTrimmed(&f.Identifier, in.Identifier)
	setTrimmed(&f.Type, in.Type)
	setTrimmed(&f.Title, in.Title)
	setTrimmed(&f.Subtitle, in.Subtitle)
	if in.Content != nil {
		f.Content = richText.Sanitize(*in.Content)
	}
	setTrimmed(&f.Image, in.Image)
	set(&f.Active, in.Active)
	set(&f.ShowInNavbar, in.ShowInNavbar)
	setTrimmed(&f.NavbarName, in.NavbarName)
	set(&f.NavbarPosition, in.NavbarPosition)
}

func (s *HomepageService) validateSection(ctx context.Context, website model.Website, f *store.HomepageSectionFields, c *model.SectionCollections, excludeID int64) error {
	if f.Identifier == "" {
		return invalid("identifier", "is required")
	}
	if !util.IsValidSlug(f.Identifier) {
		return invalid("identifier", "must contain only lowercase letters, numbers and single hyphens")
	}
	t := model.SectionType(f.Type)
	if f.Type != "" && !t.Valid() {
		return invalid("type", "unknown section type %q", f.Type)
	}
	if err := maxLength("title", f.Title, MaxTitleLength); err != nil {
		return err
	}
	if f.ShowInNavbar && f.NavbarName == "" && f.Title == "" {
		return invalid("navbar_name", "is required when shown in the navbar")
	}
	encoded, err := prepareCollections(c, t)
	if err != nil {
		return err
	}
	f.Collections = encoded

	exists, err := s.queries.HomepageIdentifierExists(ctx, string(website), f.Identifier, excludeID)
	if err != nil {
		return fmt.Errorf("checking identifier: %w", err)
	}
	if exists {
		return &ConflictError{Field: "identifier", Value: f.Identifier}
	}
	return nil
}

// ListSections returns every homepage section of website in display order.
func (s *HomepageService) ListSections(ctx context.Context, website model.Website) ([]HomepageSection, error) {
	rows, err := s.queries.ListHomepageSections(ctx, string(website))
	if err != nil {
		return nil, fmt.Errorf("listing homepage sections: %w", err)
	}
	return toHomepageSections(rows)
}

// ListActiveSections returns the visible homepage sections of website.
func (s *HomepageService) ListActiveSections(ctx context.Context, website model.Website) ([]HomepageSection, error) {
	rows, err := s.queries.ListActiveHomepageSections(ctx, string(website))
	if err != nil {
		return nil, fmt.Errorf("listing homepage sections: %w", err)
	}
	return toHomepageSections(rows)
}

// GetSection returns a homepage section of website by ID.
func (s *HomepageService) GetSection(ctx context.Context, website model.Website, id int64) (HomepageSection, error) {
	row, err := s.queries.GetHomepageSection(ctx, string(website), id)
	if err != nil {
		return HomepageSection{}, lookupErr(err, "homepage section")
	}
	return toHomepageSection(row)
}

// CreateSection appends a homepage section.
func (s *HomepageService) CreateSection(ctx context.Context, website model.Website, in HomepageSectionInput) (HomepageSection, error) {
	if err := checkWebsite(website, in.Website); err != nil {
		return HomepageSection{}, err
	}
	f := store.HomepageSectionFields{Active: true}
	in.applyTo(&f)
	var c model.SectionCollections
	in.CollectionsInput.applyTo(&c)
	if err := s.validateSection(ctx, website, &f, &c, 0); err != nil {
		return HomepageSection{}, err
	}

	row, err := s.queries.CreateHomepageSection(ctx, store.CreateHomepageSectionParams{
		Website:               string(website),
		HomepageSectionFields: f,
		CreatedAt:             store.Now(),
	})
	if err != nil {
		return HomepageSection{}, writeErr(err, "homepage section", "identifier", f.Identifier)
	}

	s.logger.Info("homepage section created", "website", website, "section_id", row.ID, "identifier", row.Identifier)
	s.notifySections(website)
	return toHomepageSection(row)
}

// UpdateSection applies the present fields of in to a homepage section.
func (s *HomepageService) UpdateSection(ctx context.Context, website model.Website, id int64, in HomepageSectionInput) (HomepageSection, error) {
	if err := checkWebsite(website, in.Website); err != nil {
		return HomepageSection{}, err
	}
	current, err := s.GetSection(ctx, website, id)
	if err != nil {
		return HomepageSection{}, err
	}
	f := current.HomepageSection.Fields()
	in.applyTo(&f)
	c := current.SectionCollections
	in.CollectionsInput.applyTo(&c)
	if err := s.validateSection(ctx, website, &f, &c, id); err != nil {
		return HomepageSection{}, err
	}

	row, err := s.queries.UpdateHomepageSection(ctx, store.UpdateHomepageSectionParams{
		Website:               string(website),
		ID:                    id,
		HomepageSectionFields: f,
		UpdatedAt:             store.Now(),
	})
	if err != nil {
		return HomepageSection{}, writeErr(err, "homepage section", "identifier", f.Identifier)
	}

	s.notifySections(website)
	return toHomepageSection(row)
}

// DeleteSection removes a homepage section.
func (s *HomepageService) DeleteSection(ctx context.Context, website model.Website, id int64) error {
	n, err := s.queries.DeleteHomepageSection(ctx, string(website), id)
	if err != nil {
		return fmt.Errorf("deleting homepage section: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	s.notifySections(website)
	return nil
}

// ReorderSections sets the display order of every homepage section of website.
func (s *HomepageService) ReorderSections(ctx context.Context, website model.Website, ids []int64) error {
	now := store.Now()
	err := reorder(ctx, &s.base, ids, reorderScope{
		list: func(ctx context.Context, q *store.Queries) ([]int64, error) {
			return q.ListHomepageSectionIDs(ctx, string(website))
		},
		set: func(ctx context.Context, q *store.Queries, id, sortOrder int64) (int64, error) {
			return q.SetHomepageSectionSortOrder(ctx, string(website), id, sortOrder, now)
		},
	})
	if err != nil {
		return err
	}
	s.notifySections(website)
	return nil
}

// SlideInput is the create and update body of a slide.
type SlideInput struct {
	Website  string  `json:"website"`
	Title    *string `json:"title"`
	Subtitle *string `json:"subtitle"`
	Image    *string `json:"image"`
	Link     *string `json:"link"`
	LinkText *string `json:"link_text"`
	Active   *bool   `json:"active"`
}

func (in SlideInput) applyTo(f *store.SlideFields) {
	setTrimmed(&f.Title, in.Title)
	setTrimmed(&f.Subtitle, in.Subtitle)
	setTrimmed(&f.Image, in.Image)
	setTrimmed(&f.Link, in.Link)
	setTrimmed(&f.LinkText, in.LinkText)
	set(&f.Active, in.Active)
}

func validateSlide(f store.SlideFields) error {
	return firstErr(
		required("title", f.Title),
		maxLength("title", f.Title, MaxTitleLength),
		required("image", f.Image),
	)
}

// ListSlides returns every slide of website in display order.
func (s *HomepageService) ListSlides(ctx context.Context, website model.Website) ([]store.Slide, error) {
	slides, err := s.queries.ListSlides(ctx, string(website))
	if err != nil {
		return nil, fmt.Errorf("listing slides: %w", err)
	}
	return slides, nil
}

// ListActiveSlides returns the visible slides of website.
func (s *HomepageService) ListActiveSlides(ctx context.Context, website model.Website) ([]store.Slide, error) {
	slides, err := s.queries.ListActiveSlides(ctx, string(website))
	if err != nil {
		return nil, fmt.Errorf("listing slides: %w", err)
	}
	return slides, nil
}

// GetSlide returns a slide of website by ID.
func (s *HomepageService) GetSlide(ctx context.Context, website model.Website, id int64) (store.Slide, error) {
	slide, err := s.queries.GetSlide(ctx, string(website), id)
	if err != nil {
		return store.Slide{}, lookupErr(err, "slide")
	}
	return slide, nil
}

// CreateSlide appends a slide.
func (s *HomepageService) CreateSlide(ctx context.Context, website model.Website, in SlideInput) (store.Slide, error) {
	if err := checkWebsite(website, in.Website); err != nil {
		return store.Slide{}, err
	}
	f := store.SlideFields{Active: true}
	in.applyTo(&f)
	if err := validateSlide(f); err != nil {
		return store.Slide{}, err
	}
	slide, err := s.queries.CreateSlide(ctx, store.CreateSlideParams{
		Website:     string(website),
		SlideFields: f,
		CreatedAt:   store.Now(),
	})
	if err != nil {
		return store.Slide{}, fmt.Errorf("creating slide: %w", err)
	}
	s.notifySlides(website)
	return slide, nil
}

// UpdateSlide applies the present fields of in to a slide.
func (s *HomepageService) UpdateSlide(ctx context.Context, website model.Website, id int64, in SlideInput) (store.Slide, error) {
	if err := checkWebsite(website, in.Website); err != nil {
		return store.Slide{}, err
	}
	current, err := s.GetSlide(ctx, website, id)
	if err != nil {
		return store.Slide{}, err
	}
	f := current.Fields()
	in.applyTo(&f)
	if err := validateSlide(f); err != nil {
		return store.Slide{}, err
	}
	slide, err := s.queries.UpdateSlide(ctx, store.UpdateSlideParams{
		Website:     string(website),
		ID:          id,
		SlideFields: f,
		UpdatedAt:   store.Now(),
	})
	if err != nil {
		return store.Slide{}, lookupErr(err, "slide")
	}
	s.notifySlides(website)
	return slide, nil
}

// DeleteSlide removes a slide.
func (s *HomepageService) DeleteSlide(ctx context.Context, website model.Website, id int64) error {
	n, err := s.queries.DeleteSlide(ctx, string(website), id)
	if err != nil {
		return fmt.Errorf("deleting slide: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	s.notifySlides(website)
	return nil
}

// ReorderSlides sets the display order of every slide of website.
func (s *HomepageService) ReorderSlides(ctx context.Context, website model.Website, ids []int64) error {
	now := store.Now()
	err := reorder(ctx, &s.base, ids, reorderScope{
		list: func(ctx context.Context, q *store.Queries) ([]int64, error) {
			return q.ListSlideIDs(ctx, string(website))
		},
		set: func(ctx context.Context, q *store.Queries, id, sortOrder int64) (int64, error) {
			return q.SetSlideSortOrder(ctx, string(website), id, sortOrder, now)
		},
	})
	if err != nil {
		return err
	}
	s.notifySlides(website)
	return nil
}
