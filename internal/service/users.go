// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/olegiv/dualsite/internal/auth"
	"github.com/olegiv/dualsite/internal/model"
	"github.com/olegiv/dualsite/internal/store"
)

// UserService manages dashboard accounts and login.
type UserService struct {
	queries *store.Queries
	logger  *slog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(db *sql.DB, logger *slog.Logger) *UserService {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserService{queries: store.New(db), logger: logger}
}

// Authenticate checks credentials and records the login time. Unknown
// emails and wrong passwords both return ErrInvalidCredentials after the
// same amount of hashing work.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (store.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		auth.BurnCycles(password)
		return store.User{}, ErrInvalidCredentials
	}

	user, err := s.queries.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			auth.BurnCycles(password)
			return store.User{}, ErrInvalidCredentials
		}
		return store.User{}, fmt.Errorf("loading user: %w", err)
	}

	ok, err := auth.CheckPassword(password, user.PasswordHash)
	if err != nil {
		s.logger.Error("stored password hash is unreadable", "user_id", user.ID, "error", err)
		return store.User{}, ErrInvalidCredentials
	}
	if !ok {
		return store.User{}, ErrInvalidCredentials
	}

	now := store.Now()
	if err := s.queries.UpdateUserLastLogin(ctx, user.ID, now); err != nil {
		s.logger.Warn("failed to record login time", "user_id", user.ID, "error", err)
	} else {
		user.LastLoginAt = &now
	}
	if auth.NeedsRehash(user.PasswordHash) {
		if hash, err := auth.HashPassword(password); err == nil {
			if err := s.queries.UpdateUserPassword(ctx, user.ID, hash, now); err != nil {
				s.logger.Warn("failed to upgrade password hash", "user_id", user.ID, "error", err)
			}
		}
	}
	return user, nil
}

// Get returns a user by ID.
func (s *UserService) Get(ctx context.Context, id int64) (store.User, error) {
	u, err := s.queries.GetUserByID(ctx, id)
	if err != nil {
		return store.User{}, lookupErr(err, "user")
	}
	return u, nil
}

// List returns every user.
func (s *UserService) List(ctx context.Context) ([]store.User, error) {
	users, err := s.queries.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return users, nil
}

// UserInput is the create body of a user.
type UserInput struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Create adds a user. Emails are unique regardless of case.
func (s *UserService) Create(ctx context.Context, in UserInput) (store.User, error) {
	in.Email = strings.TrimSpace(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	in.Role = strings.TrimSpace(in.Role)
	if in.Role == "" {
		in.Role = model.RoleEditor
	}
	if err := firstErr(
		validEmail("email", in.Email),
		required("name", in.Name),
		maxLength("name", in.Name, MaxTitleLength),
	); err != nil {
		return store.User{}, err
	}
	if err := auth.ValidatePassword(in.Password); err != nil {
		return store.User{}, invalid("password", "%s", strings.TrimPrefix(err.Error(), "password "))
	}
	if !model.IsValidRole(in.Role) {
		return store.User{}, invalid("role", "must be admin or editor")
	}

	if _, err := s.queries.GetUserByEmail(ctx, in.Email); err == nil {
		return store.User{}, &ConflictError{Field: "email", Value: in.Email}
	} else if !errors.Is(err, sql.ErrNoRows) {
		return store.User{}, fmt.Errorf("checking email: %w", err)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return store.User{}, err
	}
	now := store.Now()
	u, err := s.queries.CreateUser(ctx, store.CreateUserParams{
		Email:        in.Email,
		Name:         in.Name,
		PasswordHash: hash,
		Role:         in.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return store.User{}, writeErr(err, "user", "email", in.Email)
	}
	s.logger.Info("user created", "user_id", u.ID, "email", u.Email, "role", u.Role)
	return u, nil
}
