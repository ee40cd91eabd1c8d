// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "github.com/olegiv/dualsite/internal/util"

// TagSlug derives the global slug of a blog tag from its name,
// e.g. "Müll-Abfuhr" becomes "muell-abfuhr".
func TagSlug(name string) string {
	return util.Slugify(name)
}
