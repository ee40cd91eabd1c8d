// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package session configures the dashboard session manager.
package session

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
)

// Session lifetimes
const (
	Lifetime        = 24 * time.Hour
	IdleTimeout     = 2 * time.Hour
	CleanupInterval = 30 * time.Minute
)

// Cookie names. The __Host- prefix requires Secure, so it is used in
// production only.
const (
	CookieNameDev  = "dualsite_session"
	CookieNameProd = "__Host-dualsite_session"
)

// New creates a session manager storing sessions in the sessions table.
func New(db *sql.DB, isDev bool) *scs.SessionManager {
	sm := scs.New()

	sm.Store = sqlite3store.NewWithCleanupInterval(db, CleanupInterval)

	sm.Lifetime = Lifetime
	sm.IdleTimeout = IdleTimeout
	sm.Cookie.Name = CookieNameDev
	sm.Cookie.Path = "/"
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Secure = !isDev // Secure cookies in production only
	if !isDev {
		sm.Cookie.Name = CookieNameProd
	}

	return sm
}
