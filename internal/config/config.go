// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads the server configuration from DUALSITE_ environment
// variables.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/olegiv/dualsite/internal/model"
	"github.com/olegiv/dualsite/internal/util"
)

// knownWeakSecrets contains default/example secrets that must be rejected.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
	"dualsite-development-secret-key!",
}

// Supported environments.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Supported database drivers.
const (
	DriverSQLite  = "sqlite"
	DriverSQLite3 = "sqlite3"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath        string `env:"DUALSITE_DB_PATH" envDefault:"./data/dualsite.db"`
	DBDriver      string `env:"DUALSITE_DB_DRIVER" envDefault:"sqlite"`
	SessionSecret string `env:"DUALSITE_SESSION_SECRET,required"`
	ServerHost    string `env:"DUALSITE_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"DUALSITE_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"DUALSITE_ENV" envDefault:"development"`
	LogLevel      string `env:"DUALSITE_LOG_LEVEL" envDefault:"info"`

	// Media uploads
	UploadsDir       string `env:"DUALSITE_UPLOADS_DIR" envDefault:"./uploads"`
	UploadsURLPrefix string `env:"DUALSITE_UPLOADS_URL_PREFIX" envDefault:"/uploads/"`
	MaxUploadMB      int    `env:"DUALSITE_MAX_UPLOAD_MB" envDefault:"10"`

	// Marketing frontends allowed to call the public API from a browser
	CORSOrigins []string `env:"DUALSITE_CORS_ORIGINS" envSeparator:","`

	// Frontend cache revalidation
	RevalidateSecret       string        `env:"DUALSITE_REVALIDATE_SECRET"`
	RevalidateURLPrimary   string        `env:"DUALSITE_REVALIDATE_URL_PRIMARY"`
	RevalidateURLSecondary string        `env:"DUALSITE_REVALIDATE_URL_SECONDARY"`
	RevalidateTimeout      time.Duration `env:"DUALSITE_REVALIDATE_TIMEOUT" envDefault:"5s"`
	RevalidateBlockPrivate bool          `env:"DUALSITE_REVALIDATE_BLOCK_PRIVATE" envDefault:"false"`

	// Administrator created on first start
	AdminEmail    string `env:"DUALSITE_ADMIN_EMAIL"`
	AdminPassword string `env:"DUALSITE_ADMIN_PASSWORD"`
	AdminName     string `env:"DUALSITE_ADMIN_NAME" envDefault:"Administrator"`

	MetricsEnabled bool `env:"DUALSITE_METRICS_ENABLED" envDefault:"true"`

	// Contact and application submissions per second per client IP
	PublicRateLimit float64 `env:"DUALSITE_PUBLIC_RATE_LIMIT" envDefault:"0.2"`
	PublicRateBurst int     `env:"DUALSITE_PUBLIC_RATE_BURST" envDefault:"5"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == EnvDevelopment
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// RevalidateURL returns the revalidation endpoint of website, or "".
func (c Config) RevalidateURL(website model.Website) string {
	switch website {
	case model.WebsitePrimary:
		return c.RevalidateURLPrimary
	case model.WebsiteSecondary:
		return c.RevalidateURLSecondary
	default:
		return ""
	}
}

// RevalidateURLs returns the configured endpoints keyed by website.
func (c Config) RevalidateURLs() map[model.Website]string {
	urls := make(map[model.Website]string, len(model.Websites))
	for _, w := range model.Websites {
		if u := c.RevalidateURL(w); u != "" {
			urls[w] = u
		}
	}
	return urls
}

// MaxUploadSize returns the upload limit in bytes.
func (c Config) MaxUploadSize() int64 {
	return int64(c.MaxUploadMB) << 20
}

// SlogLevel maps LogLevel to a slog level. Unknown values mean info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// MinSessionSecretLength is the minimum required length for the session secret.
// AES-256 requires 32 bytes minimum for secure encryption.
const MinSessionSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if !hasMinimumEntropy(cfg.SessionSecret) {
		slog.Warn("DUALSITE_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}
	if cfg.RevalidateSecret == "" && len(cfg.RevalidateURLs()) > 0 {
		slog.Warn("DUALSITE_REVALIDATE_SECRET is empty; frontends will reject revalidation requests")
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if len(c.SessionSecret) < MinSessionSecretLength {
		return fmt.Errorf("DUALSITE_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(c.SessionSecret))
	}
	for _, weak := range knownWeakSecrets {
		if c.SessionSecret == weak {
			return fmt.Errorf("DUALSITE_SESSION_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	if c.Env != EnvDevelopment && c.Env != EnvProduction {
		return fmt.Errorf("DUALSITE_ENV must be %q or %q, got %q", EnvDevelopment, EnvProduction, c.Env)
	}
	if c.DBDriver != DriverSQLite && c.DBDriver != DriverSQLite3 {
		return fmt.Errorf("DUALSITE_DB_DRIVER must be %q or %q, got %q", DriverSQLite, DriverSQLite3, c.DBDriver)
	}
	if c.ServerPort < 1 || c.ServerPort > 65535 {
		return fmt.Errorf("DUALSITE_SERVER_PORT out of range: %d", c.ServerPort)
	}
	if c.MaxUploadMB < 1 {
		return fmt.Errorf("DUALSITE_MAX_UPLOAD_MB must be positive, got %d", c.MaxUploadMB)
	}
	if !strings.HasPrefix(c.UploadsURLPrefix, "/") || !strings.HasSuffix(c.UploadsURLPrefix, "/") {
		return fmt.Errorf("DUALSITE_UPLOADS_URL_PREFIX must start and end with '/', got %q", c.UploadsURLPrefix)
	}
	if c.RevalidateTimeout <= 0 {
		return fmt.Errorf("DUALSITE_REVALIDATE_TIMEOUT must be positive, got %s", c.RevalidateTimeout)
	}
	if c.PublicRateLimit <= 0 || c.PublicRateBurst < 1 {
		return fmt.Errorf("DUALSITE_PUBLIC_RATE_LIMIT and DUALSITE_PUBLIC_RATE_BURST must be positive")
	}

	for _, w := range model.Websites {
		raw := c.RevalidateURL(w)
		if raw == "" {
			continue
		}
		if err := util.ValidateEndpointURL(raw, !c.RevalidateBlockPrivate); err != nil {
			return fmt.Errorf("revalidation URL for %s: %w", w, err)
		}
	}

	origins := c.CORSOrigins[:0]
	for _, o := range c.CORSOrigins {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	c.CORSOrigins = origins
	return nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
