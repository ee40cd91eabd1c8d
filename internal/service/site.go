// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"regexp"
	"slices"
	"strings"

	"github.com/olegiv/dualsite/internal/model"
	"github.com/olegiv/dualsite/internal/revalidate"
	"github.com/olegiv/dualsite/internal/store"
	"github.com/olegiv/dualsite/internal/util"
)

var settingKeyRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// SiteService manages per-website singletons: page headers, legal pages,
// settings and the contact inbox.
type SiteService struct {
	base
}

// NewSiteService creates a new SiteService.
func NewSiteService(db *sql.DB, notifier Notifier, logger *slog.Logger) *SiteService {
	return &SiteService{base: newBase(db, notifier, logger)}
}

// Page headers

// HeaderInput is the upsert body of a page header. Nil fields keep the
// stored value, or stay empty when the header is new.
type HeaderInput struct {
	Website         string  `json:"website"`
	Title           *string `json:"title"`
	Subtitle        *string `json:"subtitle"`
	Description     *string `json:"description"`
	Image           *string `json:"image"`
	ButtonText      *string `json:"button_text"`
	ButtonLink      *string `json:"button_link"`
	BackgroundColor *string `json:"background_color"`
	TextColor       *string `json:"text_color"`
}

// ListHeaders returns every page header of website.
func (s *SiteService) ListHeaders(ctx context.Context, website model.Website) ([]store.PageHeader, error) {
	headers, err := s.queries.ListPageHeaders(ctx, string(website))
	if err != nil {
		return nil, fmt.Errorf("listing page headers: %w", err)
	}
	return headers, nil
}

// GetHeader returns the header of a page.
func (s *SiteService) GetHeader(ctx context.Context, website model.Website, pageSlug string) (store.PageHeader, error) {
	h, err := s.queries.GetPageHeader(ctx, string(website), pageSlug)
	if err != nil {
		return store.PageHeader{}, lookupErr(err, "page header")
	}
	return h, nil
}

// UpsertHeader creates or replaces the header of a page.
func (s *SiteService) UpsertHeader(ctx context.Context, website model.Website, pageSlug string, in HeaderInput) (store.PageHeader, error) {
	if err := checkWebsite(website, in.Website); err != nil {
		return store.PageHeader{}, err
	}
	pageSlug = strings.TrimSpace(pageSlug)
	if !util.IsValidSlug(pageSlug) {
		return store.PageHeader{}, invalid("page_slug", "must contain only lowercase letters, numbers and single hyphens")
	}

	current, err := s.queries.GetPageHeader(ctx, string(website), pageSlug)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return store.PageHeader{}, fmt.Errorf("loading page header: %w", err)
	}
	p := store.UpsertPageHeaderParams{
		Website:         string(website),
		PageSlug:        pageSlug,
		Title:           current.Title,
		Subtitle:        current.Subtitle,
		Description:     current.Description,
		Image:           current.Image,
		ButtonText:      current.ButtonText,
		ButtonLink:      current.ButtonLink,
		BackgroundColor: current.BackgroundColor,
		TextColor:       current.TextColor,
		UpdatedAt:       store.Now(),
	}
	setTrimmed(&p.Title, in.Title)
	setTrimmed(&p.Subtitle, in.Subtitle)
	setTrimmed(&p.Description, in.Description)
	setTrimmed(&p.Image, in.Image)
	setTrimmed(&p.ButtonText, in.ButtonText)
	setTrimmed(&p.ButtonLink, in.ButtonLink)
	setTrimmed(&p.BackgroundColor, in.BackgroundColor)
	setTrimmed(&p.TextColor, in.TextColor)
	if err := firstErr(
		required("title", p.Title),
		maxLength("title", p.Title, MaxTitleLength),
		maxLength("subtitle", p.Subtitle, MaxTitleLength),
		maxLength("description", p.Description, MaxShortText*2),
	); err != nil {
		return store.PageHeader{}, err
	}

	h, err := s.queries.UpsertPageHeader(ctx, p)
	if err != nil {
		return store.PageHeader{}, fmt.Errorf("saving page header: %w", err)
	}

	if tag, ok := model.HeaderCacheTag(pageSlug); ok {
		s.notify(website, revalidate.ForTag(tag))
	} else {
		s.notify(website, revalidate.ForPath(model.PagePath(pageSlug)))
	}
	return h, nil
}

// Legal pages

// LegalInput is the upsert body of a legal page.
type LegalInput struct {
	Website string  `json:"website"`
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

func validLegalType(typ string) error {
	if !model.IsValidLegalType(typ) {
		return invalid("type", "must be one of impressum, datenschutz, barrierefreiheit")
	}
	return nil
}

// ListLegal returns the legal pages of website.
func (s *SiteService) ListLegal(ctx context.Context, website model.Website) ([]store.LegalPage, error) {
	pages, err := s.queries.ListLegalPages(ctx, string(website))
	if err != nil {
		return nil, fmt.Errorf("listing legal pages: %w", err)
	}
	return pages, nil
}

// GetLegal returns one legal page of website.
func (s *SiteService) GetLegal(ctx context.Context, website model.Website, typ string) (store.LegalPage, error) {
	if err := validLegalType(typ); err != nil {
		return store.LegalPage{}, err
	}
	p, err := s.queries.GetLegalPage(ctx, string(website), typ)
	if err != nil {
		return store.LegalPage{}, lookupErr(err, "legal page")
	}
	return p, nil
}

// UpsertLegal creates or replaces a legal page and stamps last_updated.
func (s *SiteService) UpsertLegal(ctx context.Context, website model.Website, typ string, in LegalInput) (store.LegalPage, error) {
	if err := checkWebsite(website, in.Website); err != nil {
		return store.LegalPage{}, err
	}
	if err := validLegalType(typ); err != nil {
		return store.LegalPage{}, err
	}
	current, err := s.queries.GetLegalPage(ctx, string(website), typ)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return store.LegalPage{}, fmt.Errorf("loading legal page: %w", err)
	}
	title, content := current.Title, current.Content
	setTrimmed(&title, in.Title)
	if in.Content != nil {
		content = richText.Sanitize(*in.Content)
	}
	if err := firstErr(
		required("title", title),
		maxLength("title", title, MaxTitleLength),
		required("content", content),
	); err != nil {
		return store.LegalPage{}, err
	}

	p, err := s.queries.UpsertLegalPage(ctx, store.UpsertLegalPageParams{
		Website:     string(website),
		Type:        typ,
		Title:       title,
		Content:     content,
		LastUpdated: store.Now(),
	})
	if err != nil {
		return store.LegalPage{}, fmt.Errorf("saving legal page: %w", err)
	}
	s.notify(website, revalidate.ForPath(model.PagePath(typ)))
	return p, nil
}

// Settings

// Settings returns every setting of website as a key/value map.
func (s *SiteService) Settings(ctx context.Context, website model.Website) (map[string]string, error) {
	rows, err := s.queries.ListSettings(ctx, string(website))
	if err != nil {
		return nil, fmt.Errorf("listing settings: %w", err)
	}
	out := make(map[string]string, len(rows))
	for _, r := range rows {
		out[r.Key] = r.Value
	}
	return out, nil
}

// PublicSettings returns only the allow-listed settings of website.
func (s *SiteService) PublicSettings(ctx context.Context, website model.Website) (map[string]string, error) {
	all, err := s.Settings(ctx, website)
	if err != nil {
		return nil, err
	}
	maps.DeleteFunc(all, func(k, _ string) bool { return !model.IsPublicSettingKey(k) })
	return all, nil
}

// UpdateSettings upserts every entry of values in one transaction and
// returns the full settings map.
func (s *SiteService) UpdateSettings(ctx context.Context, website model.Website, values map[string]string) (map[string]string, error) {
	if !website.Valid() {
		return nil, ErrInvalidWebsite
	}
	if len(values) == 0 {
		return nil, invalid("settings", "must not be empty")
	}
	keys := slices.Sorted(maps.Keys(values))
	for _, k := range keys {
		if len(k) > model.MaxSettingKeyLength || !settingKeyRegex.MatchString(k) {
			return nil, invalid(k, "is not a valid setting key")
		}
		if err := maxLength(k, values[k], MaxMessageLength); err != nil {
			return nil, err
		}
	}

	now := store.Now()
	err := store.InTx(ctx, s.db, func(q *store.Queries) error {
		for _, k := range keys {
			if err := q.UpsertSetting(ctx, string(website), k, strings.TrimSpace(values[k]), now); err != nil {
				return fmt.Errorf("saving setting %s: %w", k, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if slices.ContainsFunc(keys, model.IsKarriereSettingKey) {
		s.notify(website, revalidate.ForTag(model.TagKarrierePage))
	}
	return s.Settings(ctx, website)
}

// Contact messages

// ContactInput is the public contact form.
type ContactInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (in *ContactInput) clean() error {
	in.Name = plainText.Sanitize(strings.TrimSpace(in.Name))
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = plainText.Sanitize(strings.TrimSpace(in.Phone))
	in.Company = plainText.Sanitize(strings.TrimSpace(in.Company))
	in.Subject = plainText.Sanitize(strings.TrimSpace(in.Subject))
	in.Message = plainText.Sanitize(strings.TrimSpace(in.Message))
	return firstErr(
		required("name", in.Name),
		maxLength("name", in.Name, MaxTitleLength),
		validEmail("email", in.Email),
		maxLength("phone", in.Phone, 50),
		maxLength("company", in.Company, MaxTitleLength),
		maxLength("subject", in.Subject, MaxTitleLength),
		required("message", in.Message),
		maxLength("message", in.Message, MaxMessageLength),
	)
}

// SubmitContact stores a contact form submission as an unread message.
func (s *SiteService) SubmitContact(ctx context.Context, website model.Website, in ContactInput) (store.ContactMessage, error) {
	if !website.Valid() {
		return store.ContactMessage{}, ErrInvalidWebsite
	}
	if err := in.clean(); err != nil {
		return store.ContactMessage{}, err
	}
	m, err := s.queries.CreateContactMessage(ctx, store.CreateContactMessageParams{
		Website:   string(website),
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Company:   in.Company,
		Subject:   in.Subject,
		Message:   in.Message,
		CreatedAt: store.Now(),
	})
	if err != nil {
		return store.ContactMessage{}, fmt.Errorf("saving contact message: %w", err)
	}
	s.logger.Info("contact message received", "website", website, "message_id", m.ID)
	return m, nil
}

// ListMessages returns the messages of website in the given state,
// newest first.
func (s *SiteService) ListMessages(ctx context.Context, website model.Website, filter string) ([]store.ContactMessage, error) {
	if filter == "" {
		filter = model.MessageFilterAll
	}
	switch filter {
	case model.MessageFilterAll, model.MessageFilterUnread, model.MessageFilterRead, model.MessageFilterArchived:
	default:
		return nil, invalid("status", "must be one of all, unread, read, archived")
	}
	msgs, err := s.queries.ListContactMessages(ctx, string(website), filter)
	if err != nil {
		return nil, fmt.Errorf("listing contact messages: %w", err)
	}
	return msgs, nil
}

// GetMessage returns a message of website by ID.
func (s *SiteService) GetMessage(ctx context.Context, website model.Website, id int64) (store.ContactMessage, error) {
	m, err := s.queries.GetContactMessage(ctx, string(website), id)
	if err != nil {
		return store.ContactMessage{}, lookupErr(err, "contact message")
	}
	return m, nil
}

// MessageUpdate is the PATCH body of a contact message.
type MessageUpdate struct {
	Read     *bool `json:"read"`
	Archived *bool `json:"archived"`
}

// UpdateMessage sets the read and archived flags of a message.
func (s *SiteService) UpdateMessage(ctx context.Context, website model.Website, id int64, in MessageUpdate) (store.ContactMessage, error) {
	m, err := s.GetMessage(ctx, website, id)
	if err != nil {
		return store.ContactMessage{}, err
	}
	set(&m.Read, in.Read)
	set(&m.Archived, in.Archived)
	n, err := s.queries.UpdateContactMessageFlags(ctx, string(website), id, m.Read, m.Archived)
	if err != nil {
		return store.ContactMessage{}, fmt.Errorf("updating contact message: %w", err)
	}
	if n == 0 {
		return store.ContactMessage{}, ErrNotFound
	}
	return m, nil
}

// DeleteMessage removes a message.
func (s *SiteService) DeleteMessage(ctx context.Context, website model.Website, id int64) error {
	n, err := s.queries.DeleteContactMessage(ctx, string(website), id)
	if err != nil {
		return fmt.Errorf("deleting contact message: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
