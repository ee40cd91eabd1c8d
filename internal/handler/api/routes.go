// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/dualsite/internal/handler"
	"github.com/olegiv/dualsite/internal/middleware"
	"github.com/olegiv/dualsite/internal/model"
)

// RouterConfig holds the middleware the API routes are wrapped in.
type RouterConfig struct {
	// DB loads the signed-in user for every private request.
	DB *sql.DB
	// CSRF guards unsafe methods on the private and auth routes. Optional.
	CSRF func(http.Handler) http.Handler
	// CORSOrigins are the marketing frontends allowed to read the public API.
	CORSOrigins []string
	// PublicLimiter throttles contact and application submissions. Optional.
	PublicLimiter *middleware.IPRateLimiter
}

// Routes returns the router mounted at /api.
func (h *Handler) Routes(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Route(handler.RouteAuth, func(r chi.Router) {
		r.Use(h.sessions.LoadAndSave)
		if cfg.CSRF != nil {
			r.Use(cfg.CSRF)
		}
		r.Use(noStore)
		r.With(h.login.Middleware).Post(handler.RouteLogin, h.Login)
		r.Post(handler.RouteLogout, h.Logout)
		r.With(middleware.Auth(h.sessions), middleware.LoadUser(h.sessions, cfg.DB)).
			Get(handler.RouteMe, h.Me)
	})

	r.Route(handler.RouteAdmin, func(r chi.Router) {
		r.Use(h.sessions.LoadAndSave)
		if cfg.CSRF != nil {
			r.Use(cfg.CSRF)
		}
		r.Use(noStore)
		r.Use(middleware.Auth(h.sessions))
		r.Use(middleware.LoadUser(h.sessions, cfg.DB))
		r.Use(middleware.RequireRole(model.RoleEditor))

		h.globalRoutes(r)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireWebsite)
			h.tenantRoutes(r)
		})
	})

	r.Route(handler.RoutePublic, func(r chi.Router) {
		r.Use(middleware.CORS(cfg.CORSOrigins))
		r.Use(middleware.PublicCache)
		r.Use(middleware.RequireWebsite)
		h.publicRoutes(r, cfg.PublicLimiter)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		WriteNotFound(w, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		WriteError(w, http.StatusMethodNotAllowed, "method_not_allowed", "Method not allowed", nil)
	})
	return r
}

// globalRoutes registers the private routes that are not scoped to a website.
func (h *Handler) globalRoutes(r chi.Router) {
	r.Get(handler.RouteDashboard, h.Dashboard)

	r.Get(handler.RouteTags, h.ListTags)
	r.Post(handler.RouteTags, h.CreateTag)
	r.Get(handler.RouteTags+handler.RouteParamID, h.GetTag)
	r.Put(handler.RouteTags+handler.RouteParamID, h.UpdateTag)
	r.Delete(handler.RouteTags+handler.RouteParamID, h.DeleteTag)

	r.Get(handler.RouteMedia, h.ListMedia)
	r.Post(handler.RouteMedia, h.UploadMedia)
	r.Get(handler.RouteMedia+handler.RouteParamID, h.GetMedia)
	r.Patch(handler.RouteMedia+handler.RouteParamID, h.UpdateMedia)
	r.Delete(handler.RouteMedia+handler.RouteParamID, h.DeleteMedia)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin())
		r.Get(handler.RouteUsers, h.ListUsers)
		r.Post(handler.RouteUsers, h.CreateUser)
	})
}

// tenantRoutes registers the private routes that need ?website=.
func (h *Handler) tenantRoutes(r chi.Router) {
	crud(r, handler.RoutePages, h.ListPages, h.CreatePage, h.GetPage, h.UpdatePage, h.DeletePage)
	r.Get(handler.RoutePageSections, h.ListPageSections)
	r.Post(handler.RoutePageSections, h.CreatePageSection)
	r.Post(handler.RoutePageSections+handler.RouteSuffixReorder, h.ReorderPageSections)
	r.Get(handler.RoutePageSections+"/{sectionID}", h.GetPageSection)
	r.Put(handler.RoutePageSections+"/{sectionID}", h.UpdatePageSection)
	r.Delete(handler.RoutePageSections+"/{sectionID}", h.DeletePageSection)

	r.Post(handler.RouteHomepageSections+handler.RouteSuffixReorder, h.ReorderHomepageSections)
	crud(r, handler.RouteHomepageSections, h.ListHomepageSections, h.CreateHomepageSection,
		h.GetHomepageSection, h.UpdateHomepageSection, h.DeleteHomepageSection)

	r.Post(handler.RouteSlides+handler.RouteSuffixReorder, h.ReorderSlides)
	crud(r, handler.RouteSlides, h.ListSlides, h.CreateSlide, h.GetSlide, h.UpdateSlide, h.DeleteSlide)

	crud(r, handler.RouteBlogPosts, h.ListPosts, h.CreatePost, h.GetPost, h.UpdatePost, h.DeletePost)
	crud(r, handler.RouteBlogCategories, h.ListCategories, h.CreateCategory,
		h.GetCategory, h.UpdateCategory, h.DeleteCategory)

	crud(r, handler.RouteJobs, h.ListJobs, h.CreateJob, h.GetJob, h.UpdateJob, h.DeleteJob)
	r.Get(handler.RouteJobs+handler.RouteParamID+handler.RouteApplications, h.ListJobApplications)

	r.Get(handler.RouteApplications, h.ListApplications)
	r.Get(handler.RouteApplications+handler.RouteParamID, h.GetApplication)
	r.Patch(handler.RouteApplications+handler.RouteParamID, h.UpdateApplication)

	r.Get(handler.RoutePageHeaders, h.ListPageHeaders)
	r.Get(handler.RoutePageHeaders+"/{pageSlug}", h.GetPageHeader)
	r.Put(handler.RoutePageHeaders+"/{pageSlug}", h.UpsertPageHeader)

	r.Get(handler.RouteLegalPages, h.ListLegalPages)
	r.Get(handler.RouteLegalPages+"/{type}", h.GetLegalPage)
	r.Put(handler.RouteLegalPages+"/{type}", h.UpsertLegalPage)

	r.Get(handler.RouteSettings, h.GetSettings)
	r.Put(handler.RouteSettings, h.UpdateSettings)

	r.Get(handler.RouteContactMessages, h.ListContactMessages)
	r.Get(handler.RouteContactMessages+handler.RouteParamID, h.GetContactMessage)
	r.Patch(handler.RouteContactMessages+handler.RouteParamID, h.UpdateContactMessage)
	r.Delete(handler.RouteContactMessages+handler.RouteParamID, h.DeleteContactMessage)
}

// publicRoutes registers the unauthenticated read routes and the two
// submission endpoints.
func (h *Handler) publicRoutes(r chi.Router, limiter *middleware.IPRateLimiter) {
	r.Get(handler.RoutePages, h.PublicPages)
	r.Get(handler.RoutePages+handler.RouteParamSlug, h.PublicPage)
	r.Get(handler.RouteNavigation, h.PublicNavigation)
	r.Get(handler.RouteHomepageSections, h.PublicHomepageSections)
	r.Get(handler.RouteSlides, h.PublicSlides)
	r.Get(handler.RouteBlogPosts, h.PublicPosts)
	r.Get(handler.RouteBlogPosts+handler.RouteParamSlug, h.PublicPost)
	r.Get(handler.RouteBlogCategories, h.PublicCategories)
	r.Get(handler.RouteJobs, h.PublicJobs)
	r.Get(handler.RouteJobs+handler.RouteParamSlug, h.PublicJob)
	r.Get(handler.RoutePageHeaders+"/{pageSlug}", h.PublicPageHeader)
	r.Get(handler.RouteLegal+"/{type}", h.PublicLegalPage)
	r.Get(handler.RouteSettings, h.PublicSettings)

	r.Group(func(r chi.Router) {
		if limiter != nil {
			r.Use(limiter.Middleware)
		}
		r.Post(handler.RouteContact, h.SubmitContact)
		r.Post(handler.RouteJobs+handler.RouteParamSlug+"/apply", h.SubmitApplication)
	})
}

// crud registers list, create, get, update and delete for a resource.
func crud(r chi.Router, base string, list, create, get, update, del http.HandlerFunc) {
	r.Get(base, list)
	r.Post(base, create)
	r.Get(base+handler.RouteParamID, get)
	r.Put(base+handler.RouteParamID, update)
	r.Delete(base+handler.RouteParamID, del)
}

// noStore keeps private responses out of shared caches.
func noStore(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}
