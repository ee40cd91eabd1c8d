// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/olegiv/dualsite/internal/auth"
	"github.com/olegiv/dualsite/internal/model"
)

// AdminSeed describes the administrator created on first start.
type AdminSeed struct {
	Email    string
	Password string
	Name     string
}

// Seed creates the administrator account unless a user with that email exists.
// An empty email or password skips seeding.
func Seed(ctx context.Context, db *sql.DB, admin AdminSeed, logger *slog.Logger) error {
	if admin.Email == "" || admin.Password == "" {
		logger.Info("no admin credentials configured, skipping seed")
		return nil
	}

	queries := New(db)

	_, err := queries.GetUserByEmail(ctx, admin.Email)
	if err == nil {
		logger.Info("admin user already exists, skipping seed", "email", admin.Email)
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("checking for admin user: %w", err)
	}

	passwordHash, err := auth.HashPassword(admin.Password)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	name := admin.Name
	if name == "" {
		name = "Administrator"
	}

	now := Now()
	user, err := queries.CreateUser(ctx, CreateUserParams{
		Email:        admin.Email,
		Name:         name,
		PasswordHash: passwordHash,
		Role:         model.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return fmt.Errorf("creating admin user: %w", err)
	}

	logger.Info("created admin user", "id", user.ID, "email", user.Email)
	return nil
}
