// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"database/sql"
	"time"
)

type User struct {
	ID           int64      `json:"id"`
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	PasswordHash string     `json:"-"`
	Role         string     `json:"role"`
	LastLoginAt  *time.Time `json:"last_login_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type Page struct {
	ID                  int64     `json:"id"`
	Website             string    `json:"website"`
	Slug                string    `json:"slug"`
	Title               string    `json:"title"`
	MetaTitle           string    `json:"meta_title"`
	MetaDescription     string    `json:"meta_description"`
	OgImage             string    `json:"og_image"`
	HeroTitle           string    `json:"hero_title"`
	HeroSubtitle        string    `json:"hero_subtitle"`
	HeroDescription     string    `json:"hero_description"`
	HeroImage           string    `json:"hero_image"`
	HeroButtonText      string    `json:"hero_button_text"`
	HeroButtonLink      string    `json:"hero_button_link"`
	HeroBackgroundColor string    `json:"hero_background_color"`
	HeroTextColor       string    `json:"hero_text_color"`
	Active              bool      `json:"active"`
	ShowInSidebar       bool      `json:"show_in_sidebar"`
	SidebarName         string    `json:"sidebar_name"`
	SidebarPosition     int64     `json:"sidebar_position"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// PageSection keeps its collections as stored JSON text;
// the service layer decodes them into model.SectionCollections.
type PageSection struct {
	ID              int64          `json:"id"`
	PageID          int64          `json:"page_id"`
	Type            string         `json:"type"`
	Title           string         `json:"title"`
	Subtitle        string         `json:"subtitle"`
	Content         string         `json:"content"`
	Image           string         `json:"image"`
	ImagePosition   string         `json:"image_position"`
	BackgroundColor string         `json:"background_color"`
	ItemsJSON       sql.NullString `json:"-"`
	ButtonsJSON     sql.NullString `json:"-"`
	CardsJSON       sql.NullString `json:"-"`
	StatsJSON       sql.NullString `json:"-"`
	SortOrder       int64          `json:"sort_order"`
	Active          bool           `json:"active"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

type HomepageSection struct {
	ID             int64          `json:"id"`
	Website        string         `json:"website"`
	Identifier     string         `json:"identifier"`
	Type           string         `json:"type"`
	Title          string         `json:"title"`
	Subtitle       string         `json:"subtitle"`
	Content        string         `json:"content"`
	Image          string         `json:"image"`
	ItemsJSON      sql.NullString `json:"-"`
	ButtonsJSON    sql.NullString `json:"-"`
	CardsJSON      sql.NullString `json:"-"`
	StatsJSON      sql.NullString `json:"-"`
	SortOrder      int64          `json:"sort_order"`
	Active         bool           `json:"active"`
	ShowInNavbar   bool           `json:"show_in_navbar"`
	NavbarName     string         `json:"navbar_name"`
	NavbarPosition int64          `json:"navbar_position"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

type Slide struct {
	ID        int64     `json:"id"`
	Website   string    `json:"website"`
	Title     string    `json:"title"`
	Subtitle  string    `json:"subtitle"`
	Image     string    `json:"image"`
	Link      string    `json:"link"`
	LinkText  string    `json:"link_text"`
	SortOrder int64     `json:"sort_order"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type BlogCategory struct {
	ID          int64     `json:"id"`
	Website     string    `json:"website"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Tag struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

type BlogPost struct {
	ID              int64      `json:"id"`
	Website         string     `json:"website"`
	Title           string     `json:"title"`
	Slug            string     `json:"slug"`
	Excerpt         string     `json:"excerpt"`
	Content         string     `json:"content"`
	FeaturedImage   string     `json:"featured_image"`
	Author          string     `json:"author"`
	CategoryID      *int64     `json:"category_id"`
	Published       bool       `json:"published"`
	PublishedAt     *time.Time `json:"published_at"`
	MetaTitle       string     `json:"meta_title"`
	MetaDescription string     `json:"meta_description"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type JobListing struct {
	ID             int64      `json:"id"`
	Website        string     `json:"website"`
	Title          string     `json:"title"`
	Slug           string     `json:"slug"`
	Department     string     `json:"department"`
	Location       string     `json:"location"`
	EmploymentType string     `json:"employment_type"`
	Summary        string     `json:"summary"`
	Description    string     `json:"description"`
	Requirements   string     `json:"requirements"`
	Benefits       string     `json:"benefits"`
	ContactEmail   string     `json:"contact_email"`
	Status         string     `json:"status"`
	PublishedAt    *time.Time `json:"published_at"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

type JobApplication struct {
	ID               int64          `json:"id"`
	JobListingID     int64          `json:"job_listing_id"`
	FirstName        string         `json:"first_name"`
	LastName         string         `json:"last_name"`
	Email            string         `json:"email"`
	Phone            string         `json:"phone"`
	CoverLetter      string         `json:"cover_letter"`
	ResumeURL        string         `json:"resume_url"`
	CertificatesJSON sql.NullString `json:"-"`
	Status           string         `json:"status"`
	Notes            string         `json:"notes"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

type PageHeader struct {
	ID              int64     `json:"id"`
	Website         string    `json:"website"`
	PageSlug        string    `json:"page_slug"`
	Title           string    `json:"title"`
	Subtitle        string    `json:"subtitle"`
	Description     string    `json:"description"`
	Image           string    `json:"image"`
	ButtonText      string    `json:"button_text"`
	ButtonLink      string    `json:"button_link"`
	BackgroundColor string    `json:"background_color"`
	TextColor       string    `json:"text_color"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type LegalPage struct {
	ID          int64     `json:"id"`
	Website     string    `json:"website"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	LastUpdated time.Time `json:"last_updated"`
}

type Setting struct {
	Website   string    `json:"website"`
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ContactMessage struct {
	ID        int64     `json:"id"`
	Website   string    `json:"website"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Company   string    `json:"company"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	Archived  bool      `json:"archived"`
	CreatedAt time.Time `json:"created_at"`
}

type Medium struct {
	ID           int64     `json:"id"`
	Filename     string    `json:"filename"`
	OriginalName string    `json:"original_name"`
	URL          string    `json:"url"`
	MimeType     string    `json:"mime_type"`
	Size         int64     `json:"size"`
	Width        *int64    `json:"width"`
	Height       *int64    `json:"height"`
	Alt          string    `json:"alt"`
	Caption      string    `json:"caption"`
	UploadedBy   *int64    `json:"uploaded_by"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
