// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/olegiv/dualsite/internal/model"
	"github.com/olegiv/dualsite/internal/store"
)

// ErrNotFound is returned when an entity does not exist or belongs to
// another website.
var ErrNotFound = errors.New("not found")

// ErrInvalidWebsite is returned when a website value is missing or unknown.
var ErrInvalidWebsite = model.ErrInvalidWebsite

// ErrInvalidCredentials is returned by a failed login.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ValidationError reports the first input rule that was violated.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// ConflictError reports a key that is already taken within a website.
type ConflictError struct {
	Field string
	Value string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %q is already in use", e.Field, e.Value)
}

// ReferenceError reports a delete blocked by dependent rows.
type ReferenceError struct {
	Entity string
	Count  int64
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("still referenced by %d %s", e.Count, e.Entity)
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// fromFieldError converts a model validation failure into a ValidationError.
func fromFieldError(err error) error {
	var fe *model.FieldError
	if errors.As(err, &fe) {
		return &ValidationError{Field: fe.Field, Message: fe.Message}
	}
	return err
}

// lookupErr maps a missing row to ErrNotFound and wraps anything else.
func lookupErr(err error, entity string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return fmt.Errorf("loading %s: %w", entity, err)
}

// writeErr translates a storage constraint failure on field into the same
// ConflictError a pre-check would have returned.
func writeErr(err error, entity, field, value string) error {
	if store.IsUniqueViolation(err) {
		return &ConflictError{Field: field, Value: value}
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return fmt.Errorf("saving %s: %w", entity, err)
}

// IsClientError reports whether err belongs to the caller-facing taxonomy
// rather than being an unexpected failure.
func IsClientError(err error) bool {
	var (
		ve *ValidationError
		ce *ConflictError
		re *ReferenceError
	)
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrInvalidWebsite) ||
		errors.Is(err, ErrInvalidCredentials) ||
		errors.As(err, &ve) || errors.As(err, &ce) || errors.As(err, &re)
}
