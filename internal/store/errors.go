// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"database/sql"
	"errors"
	"strings"
)

// Both SQLite drivers report constraint failures with the same messages
// from the SQLite core, so matching the text covers either driver.
const (
	msgUnique     = "UNIQUE constraint failed"
	msgPrimaryKey = "PRIMARY KEY constraint failed"
	msgForeignKey = "FOREIGN KEY constraint failed"
)

// IsUniqueViolation reports whether err came from a UNIQUE or PRIMARY KEY constraint.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, msgUnique) || strings.Contains(msg, msgPrimaryKey)
}

// IsForeignKeyViolation reports whether err came from a FOREIGN KEY constraint.
func IsForeignKeyViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), msgForeignKey)
}

// IsNotFound reports whether err means the queried row does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
