// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/olegiv/dualsite/internal/imaging"
	"github.com/olegiv/dualsite/internal/model"
	"github.com/olegiv/dualsite/internal/store"
	"github.com/olegiv/dualsite/internal/util"
)

// Upload defaults
const (
	DefaultMaxUploadSize = 20 << 20 // 20MB
	DefaultUploadDir     = "./uploads"
	DefaultUploadsPrefix = "/uploads"
)

// MediaConfig configures where uploads are written and served from.
type MediaConfig struct {
	UploadDir     string
	URLPrefix     string
	MaxUploadSize int64
}

// MediaService manages the global media library.
type MediaService struct {
	db        *sql.DB
	queries   *store.Queries
	processor *imaging.Processor
	cfg       MediaConfig
	logger    *slog.Logger
}

// NewMediaService creates a new MediaService.
func NewMediaService(db *sql.DB, logger *slog.Logger, cfg MediaConfig) *MediaService {
	if cfg.UploadDir == "" {
		cfg.UploadDir = DefaultUploadDir
	}
	if cfg.URLPrefix == "" {
		cfg.URLPrefix = DefaultUploadsPrefix
	}
	cfg.URLPrefix = strings.TrimRight(cfg.URLPrefix, "/")
	if cfg.MaxUploadSize <= 0 {
		cfg.MaxUploadSize = DefaultMaxUploadSize
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &MediaService{
		db:        db,
		queries:   store.New(db),
		processor: imaging.NewProcessor(cfg.UploadDir),
		cfg:       cfg,
		logger:    logger,
	}
}

// MaxUploadSize returns the configured size limit in bytes.
func (s *MediaService) MaxUploadSize() int64 {
	return s.cfg.MaxUploadSize
}

// UploadInput describes one uploaded file.
type UploadInput struct {
	Filename    string
	ContentType string
	Size        int64
	Alt         string
	Caption     string
	UploadedBy  *int64
}

// Upload validates, stores and records an uploaded file.
func (s *MediaService) Upload(ctx context.Context, r io.Reader, in UploadInput) (store.Medium, error) {
	if in.Size > s.cfg.MaxUploadSize {
		return store.Medium{}, invalid("file", "exceeds the maximum size of %d bytes", s.cfg.MaxUploadSize)
	}
	original, err := util.CleanFilename(in.Filename)
	if err != nil {
		return store.Medium{}, invalid("file", "filename is invalid")
	}

	res, err := s.processor.Process(io.LimitReader(r, s.cfg.MaxUploadSize+1), original, in.ContentType)
	if err != nil {
		if errors.Is(err, imaging.ErrUnsupportedType) {
			return store.Medium{}, invalid("file", "type is not allowed")
		}
		return store.Medium{}, invalid("file", "could not be processed: %v", err)
	}
	if int64(len(res.Data)) > s.cfg.MaxUploadSize {
		return store.Medium{}, invalid("file", "exceeds the maximum size of %d bytes", s.cfg.MaxUploadSize)
	}

	filename := uuid.New().String() + res.Ext
	if _, err := s.processor.Save(filename, res.Data); err != nil {
		return store.Medium{}, fmt.Errorf("saving upload: %w", err)
	}

	params := store.CreateMediaParams{
		Filename:     filename,
		OriginalName: original,
		URL:          s.cfg.URLPrefix + "/" + filename,
		MimeType:     res.MimeType,
		Size:         int64(len(res.Data)),
		Alt:          strings.TrimSpace(in.Alt),
		Caption:      strings.TrimSpace(in.Caption),
		UploadedBy:   in.UploadedBy,
		CreatedAt:    store.Now(),
	}
	if res.HasDimensions() {
		w, h := int64(res.Width), int64(res.Height)
		params.Width, params.Height = &w, &h
	}

	m, err := s.queries.CreateMedia(ctx, params)
	if err != nil {
		if rmErr := s.processor.Remove(filename); rmErr != nil {
			s.logger.Warn("failed to remove orphaned upload", "filename", filename, "error", rmErr)
		}
		return store.Medium{}, fmt.Errorf("recording upload: %w", err)
	}
	s.logger.Info("media uploaded", "media_id", m.ID, "filename", filename, "mime_type", m.MimeType, "size", m.Size)
	return m, nil
}

// MediaFilter narrows the media library list.
type MediaFilter struct {
	Search string
	Type   string
	Limit  int64
	Offset int64
}

// List returns one page of the media library and the total match count.
func (s *MediaService) List(ctx context.Context, filter MediaFilter) ([]store.Medium, int64, error) {
	switch filter.Type {
	case "", model.MediaFilterImage, model.MediaFilterDocument:
	default:
		return nil, 0, invalid("type", "must be image or document")
	}
	params := store.ListMediaParams{
		Search: strings.TrimSpace(filter.Search),
		Type:   filter.Type,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}
	total, err := s.queries.CountMedia(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("counting media: %w", err)
	}
	items, err := s.queries.ListMedia(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("listing media: %w", err)
	}
	return items, total, nil
}

// Get returns a media item by ID.
func (s *MediaService) Get(ctx context.Context, id int64) (store.Medium, error) {
	m, err := s.queries.GetMedia(ctx, id)
	if err != nil {
		return store.Medium{}, lookupErr(err, "media")
	}
	return m, nil
}

// MediaUpdate is the PATCH body of a media item.
type MediaUpdate struct {
	Alt     *string `json:"alt"`
	Caption *string `json:"caption"`
}

// Update changes the alt text and caption of a media item.
func (s *MediaService) Update(ctx context.Context, id int64, in MediaUpdate) (store.Medium, error) {
	m, err := s.Get(ctx, id)
	if err != nil {
		return store.Medium{}, err
	}
	setTrimmed(&m.Alt, in.Alt)
	setTrimmed(&m.Caption, in.Caption)
	if err := firstErr(maxLength("alt", m.Alt, MaxShortText), maxLength("caption", m.Caption, MaxShortText*2)); err != nil {
		return store.Medium{}, err
	}
	n, err := s.queries.UpdateMediaMeta(ctx, id, m.Alt, m.Caption, store.Now())
	if err != nil {
		return store.Medium{}, fmt.Errorf("updating media: %w", err)
	}
	if n == 0 {
		return store.Medium{}, ErrNotFound
	}
	return s.Get(ctx, id)
}

// MediaUsage counts content that still mentions a deleted file.
type MediaUsage struct {
	BlogPosts   int64 `json:"blog_posts"`
	JobListings int64 `json:"job_listings"`
}

// InUse reports whether any content references the file.
func (u MediaUsage) InUse() bool {
	return u.BlogPosts > 0 || u.JobListings > 0
}

// Delete removes a media item and its file. It never refuses: the usage
// counts are returned so the caller can warn about dangling references.
// A failure to remove the file is logged only.
func (s *MediaService) Delete(ctx context.Context, id int64) (MediaUsage, error) {
	m, err := s.Get(ctx, id)
	if err != nil {
		return MediaUsage{}, err
	}

	var usage MediaUsage
	if usage.BlogPosts, err = s.queries.CountBlogPostsUsingURL(ctx, m.URL); err != nil {
		return MediaUsage{}, fmt.Errorf("counting blog usage: %w", err)
	}
	if usage.JobListings, err = s.queries.CountJobListingsUsingURL(ctx, m.URL); err != nil {
		return MediaUsage{}, fmt.Errorf("counting job usage: %w", err)
	}

	n, err := s.queries.DeleteMedia(ctx, id)
	if err != nil {
		return MediaUsage{}, fmt.Errorf("deleting media: %w", err)
	}
	if n == 0 {
		return MediaUsage{}, ErrNotFound
	}
	if err := s.processor.Remove(m.Filename); err != nil {
		s.logger.Warn("failed to remove media file", "media_id", id, "filename", m.Filename, "error", err)
	}
	if usage.InUse() {
		s.logger.Info("deleted media still referenced", "media_id", id, "blog_posts", usage.BlogPosts, "job_listings", usage.JobListings)
	}
	return usage, nil
}
