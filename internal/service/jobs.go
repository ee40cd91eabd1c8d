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

// MaxCertificates bounds the attachments of one application.
const MaxCertificates = 10

// JobService manages job listings and the applications submitted to them.
type JobService struct {
	base
}

// NewJobService creates a new JobService.
func NewJobService(db *sql.DB, notifier Notifier, logger *slog.Logger) *JobService {
	return &JobService{base: newBase(db, notifier, logger)}
}

func (s *JobService) notifyKarriere(website model.Website) {
	s.notify(website, revalidate.ForTag(model.TagKarrierePage))
}

// JobInput is the create and update body of a job listing.
type JobInput struct {
	Website        string  `json:"website"`
	Title          *string `json:"title"`
	Slug           *string `json:"slug"`
	Department     *string `json:"department"`
	Location       *string `json:"location"`
	EmploymentType *string `json:"employment_type"`
	Summary        *string `json:"summary"`
	Description    *string `json:"description"`
	Requirements   *string `json:"requirements"`
	Benefits       *string `json:"benefits"`
	ContactEmail   *string `json:"contact_email"`
	Status         *string `json:"status"`
}

func (in JobInput) applyTo(f *store.JobListingFields) {
	setTrimmed(&f.Title, in.Title)
	setTrimmed(&f.Slug, in.Slug)
	setTrimmed(&f.Department, in.Department)
	setTrimmed(&f.Location, in.Location)
	setTrimmed(&f.EmploymentType, in.EmploymentType)
	setTrimmed(&f.Summary, in.Summary)
	if in.Description != nil {
		f.Description = richText.Sanitize(*in.Description)
	}
	if in.Requirements != nil {
		f.Requirements = richText.Sanitize(*in.Requirements)
	}
	if in.Benefits != nil {
		f.Benefits = richText.Sanitize(*in.Benefits)
	}
	setTrimmed(&f.ContactEmail, in.ContactEmail)
	setTrimmed(&f.Status, in.Status)
}

func (s *JobService) validateListing(ctx context.Context, website model.Website, f *store.JobListingFields, excludeID int64) error {
	if err := firstErr(
		required("title", f.Title),
		maxLength("title", f.Title, MaxTitleLength),
		maxLength("summary", f.Summary, MaxShortText*2),
	); err != nil {
		return err
	}
	if !model.IsValidJobStatus(f.Status) {
		return invalid("status", "must be one of draft, published, archived")
	}
	if f.ContactEmail != "" {
		if err := validEmail("contact_email", f.ContactEmail); err != nil {
			return err
		}
	}
	slug, err := resolveSlug("slug", f.Slug, f.Title)
	if err != nil {
		return err
	}
	f.Slug = slug
	if f.Status == model.JobStatusPublished && f.PublishedAt == nil {
		now := store.Now()
		f.PublishedAt = &now
	}

	exists, err := s.queries.JobListingSlugExists(ctx, string(website), slug, excludeID)
	if err != nil {
		return fmt.Errorf("checking job slug: %w", err)
	}
	if exists {
		return &ConflictError{Field: "slug", Value: slug}
	}
	return nil
}

// List returns the listings of website, optionally narrowed to a status.
func (s *JobService) List(ctx context.Context, website model.Website, status string) ([]store.JobListing, error) {
	if status != "" && !model.IsValidJobStatus(status) {
		return nil, invalid("status", "must be one of draft, published, archived")
	}
	jobs, err := s.queries.ListJobListings(ctx, string(website), status)
	if err != nil {
		return nil, fmt.Errorf("listing jobs: %w", err)
	}
	return jobs, nil
}

// Get returns a listing of website by ID.
func (s *JobService) Get(ctx context.Context, website model.Website, id int64) (store.JobListing, error) {
	j, err := s.queries.GetJobListing(ctx, string(website), id)
	if err != nil {
		return store.JobListing{}, lookupErr(err, "job listing")
	}
	return j, nil
}

// Create adds a job listing. New listings are drafts unless a status is given.
func (s *JobService) Create(ctx context.Context, website model.Website, in JobInput) (store.JobListing, error) {
	if err := checkWebsite(website, in.Website); err != nil {
		return store.JobListing{}, err
	}
	f := store.JobListingFields{Status: model.JobStatusDraft}
	in.applyTo(&f)
	if err := s.validateListing(ctx, website, &f, 0); err != nil {
		return store.JobListing{}, err
	}
	j, err := s.queries.CreateJobListing(ctx, store.CreateJobListingParams{
		Website:          string(website),
		JobListingFields: f,
		CreatedAt:        store.Now(),
	})
	if err != nil {
		return store.JobListing{}, writeErr(err, "job listing", "slug", f.Slug)
	}

	s.logger.Info("job listing created", "website", website, "job_id", j.ID, "slug", j.Slug, "status", j.Status)
	s.notifyKarriere(website)
	return j, nil
}

// Update applies the present fields of in to a listing.
func (s *JobService) Update(ctx context.Context, website model.Website, id int64, in JobInput) (store.JobListing, error) {
	if err := checkWebsite(website, in.Website); err != nil {
		return store.JobListing{}, err
	}
	current, err := s.Get(ctx, website, id)
	if err != nil {
		return store.JobListing{}, err
	}
	f := current.Fields()
	in.applyTo(&f)
	if err := s.validateListing(ctx, website, &f, id); err != nil {
		return store.JobListing{}, err
	}
	j, err := s.queries.UpdateJobListing(ctx, store.UpdateJobListingParams{
		Website:          string(website),
		ID:               id,
		JobListingFields: f,
		UpdatedAt:        store.Now(),
	})
	if err != nil {
		return store.JobListing{}, writeErr(err, "job listing", "slug", f.Slug)
	}
	s.notifyKarriere(website)
	return j, nil
}

// Delete removes a listing together with its applications.
func (s *JobService) Delete(ctx context.Context, website model.Website, id int64) error {
	apps, err := s.queries.CountApplicationsForListing(ctx, id)
	if err != nil {
		return fmt.Errorf("counting applications: %w", err)
	}
	n, err := s.queries.DeleteJobListing(ctx, string(website), id)
	if err != nil {
		return fmt.Errorf("deleting job listing: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	s.logger.Info("job listing deleted", "website", website, "job_id", id, "applications", apps)
	s.notifyKarriere(website)
	return nil
}

// ListPublished returns the visible listings of website.
func (s *JobService) ListPublished(ctx context.Context, website model.Website) ([]store.JobListing, error) {
	jobs, err := s.queries.ListPublishedJobListings(ctx, string(website))
	if err != nil {
		return nil, fmt.Errorf("listing jobs: %w", err)
	}
	return jobs, nil
}

// GetPublished returns a visible listing of website by slug.
func (s *JobService) GetPublished(ctx context.Context, website model.Website, slug string) (store.JobListing, error) {
	j, err := s.queries.GetPublishedJobListingBySlug(ctx, string(website), slug)
	if err != nil {
		return store.JobListing{}, lookupErr(err, "job listing")
	}
	if !model.JobListingVisible(j.Status) {
		return store.JobListing{}, ErrNotFound
	}
	return j, nil
}

// Applications

// Application is a job application with its decoded certificate URLs.
type Application struct {
	store.JobApplicationRow
	Certificates *[]string `json:"certificates"`
}

func toApplication(row store.JobApplicationRow) (Application, error) {
	certs, err := model.DecodeCollection[string](row.CertificatesJSON)
	if err != nil {
		return Application{}, fmt.Errorf("application %d: %w", row.ID, err)
	}
	return Application{JobApplicationRow: row, Certificates: certs}, nil
}

// ApplicationFilter narrows the application list.
type ApplicationFilter struct {
	JobListingID int64
	Status       string
}

// ListApplications returns the applications of website, newest first.
func (s *JobService) ListApplications(ctx context.Context, website model.Website, filter ApplicationFilter) ([]Application, error) {
	if filter.Status != "" && !model.IsValidApplicationStatus(filter.Status) {
		return nil, invalid("status", "unknown application status %q", filter.Status)
	}
	if filter.JobListingID != 0 {
		if _, err := s.Get(ctx, website, filter.JobListingID); err != nil {
			return nil, err
		}
	}
	rows, err := s.queries.ListJobApplications(ctx, store.ListJobApplicationsParams{
		Website:      string(website),
		JobListingID: filter.JobListingID,
		Status:       filter.Status,
	})
	if err != nil {
		return nil, fmt.Errorf("listing applications: %w", err)
	}
	out := make([]Application, 0, len(rows))
	for _, r := range rows {
		a, err := toApplication(r)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

// GetApplication returns an application of website by ID.
func (s *JobService) GetApplication(ctx context.Context, website model.Website, id int64) (Application, error) {
	row, err := s.queries.GetJobApplication(ctx, string(website), id)
	if err != nil {
		return Application{}, lookupErr(err, "application")
	}
	return toApplication(row)
}

// ApplicationUpdate is the PATCH body of an application.
type ApplicationUpdate struct {
	Status *string `json:"status"`
	Notes  *string `json:"notes"`
}

// UpdateApplication changes the review status and notes of an application.
func (s *JobService) UpdateApplication(ctx context.Context, website model.Website, id int64, in ApplicationUpdate) (Application, error) {
	current, err := s.GetApplication(ctx, website, id)
	if err != nil {
		return Application{}, err
	}
	status, notes := current.Status, current.Notes
	setTrimmed(&status, in.Status)
	if in.Notes != nil {
		notes = plainText.Sanitize(*in.Notes)
	}
	if !model.IsValidApplicationStatus(status) {
		return Application{}, invalid("status", "unknown application status %q", status)
	}
	if err := maxLength("notes", notes, MaxMessageLength); err != nil {
		return Application{}, err
	}

	n, err := s.queries.UpdateJobApplication(ctx, store.UpdateJobApplicationParams{
		Website:   string(website),
		ID:        id,
		Status:    status,
		Notes:     notes,
		UpdatedAt: store.Now(),
	})
	if err != nil {
		return Application{}, fmt.Errorf("updating application: %w", err)
	}
	if n == 0 {
		return Application{}, ErrNotFound
	}
	return s.GetApplication(ctx, website, id)
}

// ApplicationInput is the public application form.
type ApplicationInput struct {
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	CoverLetter  string    `json:"cover_letter"`
	ResumeURL    string    `json:"resume_url"`
	Certificates *[]string `json:"certificates"`
}

func (in *ApplicationInput) clean() error {
	in.FirstName = plainText.Sanitize(strings.TrimSpace(in.FirstName))
	in.LastName = plainText.Sanitize(strings.TrimSpace(in.LastName))
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = plainText.Sanitize(strings.TrimSpace(in.Phone))
	in.CoverLetter = plainText.Sanitize(strings.TrimSpace(in.CoverLetter))
	in.ResumeURL = strings.TrimSpace(in.ResumeURL)

	if err := firstErr(
		required("first_name", in.FirstName),
		maxLength("first_name", in.FirstName, MaxTitleLength),
		required("last_name", in.LastName),
		maxLength("last_name", in.LastName, MaxTitleLength),
		validEmail("email", in.Email),
		maxLength("phone", in.Phone, 50),
		maxLength("cover_letter", in.CoverLetter, MaxMessageLength),
		maxLength("resume_url", in.ResumeURL, MaxShortText*4),
	); err != nil {
		return err
	}
	if in.Certificates != nil {
		if len(*in.Certificates) > MaxCertificates {
			return invalid("certificates", "must contain at most %d entries", MaxCertificates)
		}
		for i, c := range *in.Certificates {
			if strings.TrimSpace(c) == "" {
				return invalid(fmt.Sprintf("certificates[%d]", i), "is required")
			}
		}
	}
	return nil
}

// Apply stores an application for a published listing with status new.
func (s *JobService) Apply(ctx context.Context, website model.Website, slug string, in ApplicationInput) (Application, error) {
	listing, err := s.GetPublished(ctx, website, slug)
	if err != nil {
		return Application{}, err
	}
	if err := in.clean(); err != nil {
		return Application{}, err
	}
	certs, err := model.EncodeCollection(in.Certificates)
	if err != nil {
		return Application{}, err
	}

	app, err := s.queries.CreateJobApplication(ctx, store.CreateJobApplicationParams{
		JobListingID:     listing.ID,
		FirstName:        in.FirstName,
		LastName:         in.LastName,
		Email:            in.Email,
		Phone:            in.Phone,
		CoverLetter:      in.CoverLetter,
		ResumeURL:        in.ResumeURL,
		CertificatesJSON: certs,
		CreatedAt:        store.Now(),
	})
	if err != nil {
		return Application{}, fmt.Errorf("creating application: %w", err)
	}

	s.logger.Info("job application received", "website", website, "job_id", listing.ID, "application_id", app.ID)
	return s.GetApplication(ctx, website, app.ID)
}
