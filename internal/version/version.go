// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package version carries build metadata injected via ldflags.
package version

// Info contains build-time version information.
type Info struct {
	Version   string // Semantic version from git tags (e.g., "v1.2.3")
	GitCommit string // Short git commit hash (e.g., "abc1234")
	BuildTime string // Build timestamp in RFC3339 format
}

// String returns the version, or "dev" for builds without ldflags.
func (i Info) String() string {
	if i.Version == "" {
		return "dev"
	}
	if i.GitCommit == "" {
		return i.Version
	}
	return i.Version + " (" + i.GitCommit + ")"
}
