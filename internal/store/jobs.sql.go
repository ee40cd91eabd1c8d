// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const jobListingColumns = `id, website, title, slug, department, location, employment_type, summary,
	description, requirements, benefits, contact_email, status, published_at, created_at, updated_at`

func scanJobListing(s scanner) (JobListing, error) {
	var i JobListing
	err := s.Scan(
		&i.ID,
		&i.Website,
		&i.Title,
		&i.Slug,
		&i.Department,
		&i.Location,
		&i.EmploymentType,
		&i.Summary,
		&i.Description,
		&i.Requirements,
		&i.Benefits,
		&i.ContactEmail,
		&i.Status,
		&i.PublishedAt,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

// JobListingFields are the editable columns of a job listing.
type JobListingFields struct {
	Title          string
	Slug           string
	Department     string
	Location       string
	EmploymentType string
	Summary        string
	Description    string
	Requirements   string
	Benefits       string
	ContactEmail   string
	Status         string
	PublishedAt    *time.Time
}

// Fields returns the editable columns of j.
func (j JobListing) Fields() JobListingFields {
	return JobListingFields{
		Title:          j.Title,
		Slug:           j.Slug,
		Department:     j.Department,
		Location:       j.Location,
		EmploymentType: j.EmploymentType,
		Summary:        j.Summary,
		Description:    j.Description,
		Requirements:   j.Requirements,
		Benefits:       j.Benefits,
		ContactEmail:   j.ContactEmail,
		Status:         j.Status,
		PublishedAt:    j.PublishedAt,
	}
}

func (f JobListingFields) args() []any {
	return []any{
		f.Title, f.Slug, f.Department, f.Location, f.EmploymentType, f.Summary,
		f.Description, f.Requirements, f.Benefits, f.ContactEmail, f.Status, f.PublishedAt,
	}
}

const createJobListing = `-- name: CreateJobListing :execlastid
INSERT INTO job_listings (
	website, title, slug, department, location, employment_type, summary,
	description, requirements, benefits, contact_email, status, published_at, created_at, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

type CreateJobListingParams struct {
	Website string
	JobListingFields
	CreatedAt time.Time
}

func (q *Queries) CreateJobListing(ctx context.Context, arg CreateJobListingParams) (JobListing, error) {
	args := append([]any{arg.Website}, arg.args()...)
	args = append(args, arg.CreatedAt, arg.CreatedAt)
	res, err := q.db.ExecContext(ctx, createJobListing, args...)
	if err != nil {
		return JobListing{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return JobListing{}, err
	}
	return q.GetJobListing(ctx, arg.Website, id)
}

const getJobListing = `-- name: GetJobListing :one
SELECT ` + jobListingColumns + ` FROM job_listings WHERE website = ? AND id = ?
`

func (q *Queries) GetJobListing(ctx context.Context, website string, id int64) (JobListing, error) {
	return scanJobListing(q.db.QueryRowContext(ctx, getJobListing, website, id))
}

const getPublishedJobListingBySlug = `-- name: GetPublishedJobListingBySlug :one
SELECT ` + jobListingColumns + ` FROM job_listings WHERE website = ? AND slug = ? AND status = 'published'
`

func (q *Queries) GetPublishedJobListingBySlug(ctx context.Context, website, slug string) (JobListing, error) {
	return scanJobListing(q.db.QueryRowContext(ctx, getPublishedJobListingBySlug, website, slug))
}

const listJobListings = `-- name: ListJobListings :many
SELECT ` + jobListingColumns + ` FROM job_listings
WHERE website = ? AND (? = '' OR status = ?)
ORDER BY created_at DESC, id DESC
`

// ListJobListings lists the listings of website, optionally filtered by status.
func (q *Queries) ListJobListings(ctx context.Context, website, status string) ([]JobListing, error) {
	rows, err := q.db.QueryContext(ctx, listJobListings, website, status, status)
	return collect(rows, err, scanJobListing)
}

const listPublishedJobListings = `-- name: ListPublishedJobListings :many
SELECT ` + jobListingColumns + ` FROM job_listings
WHERE website = ? AND status = 'published'
ORDER BY COALESCE(published_at, created_at) DESC, id DESC
`

func (q *Queries) ListPublishedJobListings(ctx context.Context, website string) ([]JobListing, error) {
	rows, err := q.db.QueryContext(ctx, listPublishedJobListings, website)
	return collect(rows, err, scanJobListing)
}

const updateJobListing = `-- name: UpdateJobListing :exec
UPDATE job_listings SET
	title = ?, slug = ?, department = ?, location = ?, employment_type = ?, summary = ?,
	description = ?, requirements = ?, benefits = ?, contact_email = ?, status = ?, published_at = ?, updated_at = ?
WHERE website = ? AND id = ?
`

type UpdateJobListingParams struct {
	Website string
	ID      int64
	JobListingFields
	UpdatedAt time.Time
}

func (q *Queries) UpdateJobListing(ctx context.Context, arg UpdateJobListingParams) (JobListing, error) {
	args := append(arg.args(), arg.UpdatedAt, arg.Website, arg.ID)
	if _, err := q.db.ExecContext(ctx, updateJobListing, args...); err != nil {
		return JobListing{}, err
	}
	return q.GetJobListing(ctx, arg.Website, arg.ID)
}

const deleteJobListing = `-- name: DeleteJobListing :execrows
DELETE FROM job_listings WHERE website = ? AND id = ?
`

func (q *Queries) DeleteJobListing(ctx context.Context, website string, id int64) (int64, error) {
	return affected(q.db.ExecContext(ctx, deleteJobListing, website, id))
}

const jobListingSlugExists = `-- name: JobListingSlugExists :one
SELECT EXISTS(SELECT 1 FROM job_listings WHERE website = ? AND slug = ? AND id != ?)
`

func (q *Queries) JobListingSlugExists(ctx context.Context, website, slug string, excludeID int64) (bool, error) {
	var exists bool
	err := q.db.QueryRowContext(ctx, jobListingSlugExists, website, slug, excludeID).Scan(&exists)
	return exists, err
}

const countJobListings = `-- name: CountJobListings :one
SELECT COUNT(*), COALESCE(SUM(CASE WHEN status = 'published' THEN 1 ELSE 0 END), 0)
FROM job_listings WHERE website = ?
`

// CountJobListings returns the total and published listing counts of website.
func (q *Queries) CountJobListings(ctx context.Context, website string) (total, published int64, err error) {
	err = q.db.QueryRowContext(ctx, countJobListings, website).Scan(&total, &published)
	return total, published, err
}

// Applications

const jobApplicationColumns = `a.id, a.job_listing_id, a.first_name, a.last_name, a.email, a.phone,
	a.cover_letter, a.resume_url, a.certificates, a.status, a.notes, a.created_at, a.updated_at`

func scanJobApplication(s scanner) (JobApplication, error) {
	var i JobApplication
	err := s.Scan(
		&i.ID,
		&i.JobListingID,
		&i.FirstName,
		&i.LastName,
		&i.Email,
		&i.Phone,
		&i.CoverLetter,
		&i.ResumeURL,
		&i.CertificatesJSON,
		&i.Status,
		&i.Notes,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const createJobApplication = `-- name: CreateJobApplication :execlastid
INSERT INTO job_applications (
	job_listing_id, first_name, last_name, email, phone, cover_letter, resume_url,
	certificates, status, created_at, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, 'new', ?, ?)
`

type CreateJobApplicationParams struct {
	JobListingID     int64
	FirstName        string
	LastName         string
	Email            string
	Phone            string
	CoverLetter      string
	ResumeURL        string
	CertificatesJSON sql.NullString
	CreatedAt        time.Time
}

func (q *Queries) CreateJobApplication(ctx context.Context, arg CreateJobApplicationParams) (JobApplication, error) {
	res, err := q.db.ExecContext(ctx, createJobApplication,
		arg.JobListingID,
		arg.FirstName,
		arg.LastName,
		arg.Email,
		arg.Phone,
		arg.CoverLetter,
		arg.ResumeURL,
		arg.CertificatesJSON,
		arg.CreatedAt,
		arg.CreatedAt,
	)
	if err != nil {
		return JobApplication{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return JobApplication{}, err
	}
	return scanJobApplication(q.db.QueryRowContext(ctx,
		`SELECT `+jobApplicationColumns+` FROM job_applications a WHERE a.id = ?`, id))
}

// JobApplicationRow is an application with the title and slug of its listing.
type JobApplicationRow struct {
	JobApplication
	JobTitle string `json:"job_title"`
	JobSlug  string `json:"job_slug"`
}

func scanJobApplicationRow(s scanner) (JobApplicationRow, error) {
	var i JobApplicationRow
	err := s.Scan(
		&i.ID,
		&i.JobListingID,
		&i.FirstName,
		&i.LastName,
		&i.Email,
		&i.Phone,
		&i.CoverLetter,
		&i.ResumeURL,
		&i.CertificatesJSON,
		&i.Status,
		&i.Notes,
		&i.CreatedAt,
		&i.UpdatedAt,
		&i.JobTitle,
		&i.JobSlug,
	)
	return i, err
}

const getJobApplication = `-- name: GetJobApplication :one
SELECT ` + jobApplicationColumns + `, j.title, j.slug
FROM job_applications a JOIN job_listings j ON j.id = a.job_listing_id
WHERE j.website = ? AND a.id = ?
`

func (q *Queries) GetJobApplication(ctx context.Context, website string, id int64) (JobApplicationRow, error) {
	return scanJobApplicationRow(q.db.QueryRowContext(ctx, getJobApplication, website, id))
}

type ListJobApplicationsParams struct {
	Website      string
	JobListingID int64
	Status       string
}

const listJobApplications = `-- name: ListJobApplications :many
SELECT ` + jobApplicationColumns + `, j.title, j.slug
FROM job_applications a JOIN job_listings j ON j.id = a.job_listing_id
WHERE j.website = ? AND (? = 0 OR a.job_listing_id = ?) AND (? = '' OR a.status = ?)
ORDER BY a.created_at DESC, a.id DESC
`

// ListJobApplications lists applications of website, optionally narrowed
// to one listing and one status.
func (q *Queries) ListJobApplications(ctx context.Context, arg ListJobApplicationsParams) ([]JobApplicationRow, error) {
	rows, err := q.db.QueryContext(ctx, listJobApplications,
		arg.Website,
		arg.JobListingID, arg.JobListingID,
		arg.Status, arg.Status,
	)
	return collect(rows, err, scanJobApplicationRow)
}

const updateJobApplication = `-- name: UpdateJobApplication :execrows
UPDATE job_applications SET status = ?, notes = ?, updated_at = ?
WHERE id = ? AND job_listing_id IN (SELECT id FROM job_listings WHERE website = ?)
`

type UpdateJobApplicationParams struct {
	Website   string
	ID        int64
	Status    string
	Notes     string
	UpdatedAt time.Time
}

func (q *Queries) UpdateJobApplication(ctx context.Context, arg UpdateJobApplicationParams) (int64, error) {
	return affected(q.db.ExecContext(ctx, updateJobApplication,
		arg.Status, arg.Notes, arg.UpdatedAt, arg.ID, arg.Website))
}

const countJobApplications = `-- name: CountJobApplications :one
SELECT COUNT(*), COALESCE(SUM(CASE WHEN a.status = 'new' THEN 1 ELSE 0 END), 0)
FROM job_applications a JOIN job_listings j ON j.id = a.job_listing_id
WHERE j.website = ?
`

// CountJobApplications returns the total applications of website and
// those still in status new.
func (q *Queries) CountJobApplications(ctx context.Context, website string) (total, fresh int64, err error) {
	err = q.db.QueryRowContext(ctx, countJobApplications, website).Scan(&total, &fresh)
	return total, fresh, err
}

const countApplicationsForListing = `-- name: CountApplicationsForListing :one
SELECT COUNT(*) FROM job_applications WHERE job_listing_id = ?
`

func (q *Queries) CountApplicationsForListing(ctx context.Context, listingID int64) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countApplicationsForListing, listingID).Scan(&count)
	return count, err
}
