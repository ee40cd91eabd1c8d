// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"fmt"
	"path/filepath"
	"strings"
)

// MaxFilenameLength bounds stored and reported upload names.
const MaxFilenameLength = 255

// CleanFilename reduces an uploaded name to its last path element, in
// either slash style, so "../../etc/passwd" and "C:\dir\a.png" keep only
// the file name. Empty, dot-only and control-character names are rejected.
func CleanFilename(name string) (string, error) {
	name = strings.TrimSpace(name)
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	if name == "" || name == "." || name == ".." {
		return "", fmt.Errorf("invalid filename: %q", name)
	}
	if strings.IndexFunc(name, func(r rune) bool { return r < 0x20 || r == 0x7f }) >= 0 {
		return "", fmt.Errorf("invalid filename: control characters")
	}
	if len(name) > MaxFilenameLength {
		ext := filepath.Ext(name)
		if len(ext) > 16 {
			ext = ""
		}
		name = name[:MaxFilenameLength-len(ext)] + ext
	}
	return name, nil
}

// WithinDir returns dir/name for a cleaned name and fails when the
// resolved path would leave dir.
func WithinDir(dir, name string) (string, error) {
	clean, err := CleanFilename(name)
	if err != nil {
		return "", err
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("invalid directory: %w", err)
	}
	full := filepath.Join(absDir, clean)
	// The separator suffix keeps /uploads-x from matching /uploads.
	if !strings.HasPrefix(full, absDir+string(filepath.Separator)) {
		return "", fmt.Errorf("path escapes %s", dir)
	}
	return full, nil
}
