// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

// Route pattern constants for chi router registration.
const (
	// RouteRoot is the root path.
	RouteRoot = "/"
	// RouteParamID is the ID parameter pattern.
	RouteParamID = "/{id}"
	// RouteParamSlug is the slug parameter pattern.
	RouteParamSlug = "/{slug}"
	// RouteSuffixReorder is the suffix for reorder routes.
	RouteSuffixReorder = "/reorder"

	// RouteAPI is where the JSON API is mounted.
	RouteAPI = "/api"
	// RouteAdmin is the session protected dashboard API.
	RouteAdmin = "/admin"
	// RoutePublic is the unauthenticated API read by the marketing sites.
	RoutePublic = "/public"
	// RouteAuth groups login, logout and the current user.
	RouteAuth = "/auth"

	// RouteLogin is the login route.
	RouteLogin = "/login"
	// RouteLogout is the logout route.
	RouteLogout = "/logout"
	// RouteMe returns the signed-in user.
	RouteMe = "/me"

	// RoutePages is the pages route.
	RoutePages = "/pages"
	// RoutePageSections is the nested page sections route.
	RoutePageSections = "/pages/{id}/sections"
	// RouteHomepageSections is the homepage sections route.
	RouteHomepageSections = "/homepage-sections"
	// RouteSlides is the hero slides route.
	RouteSlides = "/slides"
	// RouteBlogPosts is the blog posts route.
	RouteBlogPosts = "/blog/posts"
	// RouteBlogCategories is the blog categories route.
	RouteBlogCategories = "/blog/categories"
	// RouteTags is the global tags route.
	RouteTags = "/tags"
	// RouteJobs is the job listings route.
	RouteJobs = "/jobs"
	// RouteApplications is the job applications route.
	RouteApplications = "/applications"
	// RoutePageHeaders is the page headers route.
	RoutePageHeaders = "/page-headers"
	// RouteLegalPages is the legal pages route.
	RouteLegalPages = "/legal-pages"
	// RouteLegal is the public legal page route.
	RouteLegal = "/legal"
	// RouteSettings is the settings route.
	RouteSettings = "/settings"
	// RouteContactMessages is the contact messages route.
	RouteContactMessages = "/contact-messages"
	// RouteContact is the public contact form route.
	RouteContact = "/contact"
	// RouteMedia is the media library route.
	RouteMedia = "/media"
	// RouteDashboard is the dashboard statistics route.
	RouteDashboard = "/dashboard"
	// RouteUsers is the users route.
	RouteUsers = "/users"
	// RouteNavigation is the public navigation route.
	RouteNavigation = "/navigation"

	// RouteHealth is the health check route.
	RouteHealth = "/health"
	// RouteMetrics is the Prometheus scrape route.
	RouteMetrics = "/metrics"
)
