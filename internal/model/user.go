// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// User roles
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
)

// IsValidRole reports whether role is a known dashboard role.
func IsValidRole(role string) bool {
	return role == RoleAdmin || role == RoleEditor
}
