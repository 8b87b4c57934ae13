package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// Runtime modes recognised via NODE_ENV.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"
)

// Config holds runtime configuration sourced from env vars. It is populated
// once at process start and treated as read-only afterwards.
type Config struct {
	Port        string
	Env         string
	DatabaseURL string
	LogLevel    string

	AccessTokenSecret  string
	RefreshTokenSecret string
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration

	// WhitelistEmails are the only addresses allowed to self-register
	// with the admin role.
	WhitelistEmails []string
	CORSOrigins     []string
}

// Load reads configuration from the environment and performs minimal validation.
func Load() (Config, error) {
	cfg := Config{
		Port:               fallback(os.Getenv("PORT"), "3000"),
		Env:                fallback(os.Getenv("NODE_ENV"), EnvDevelopment),
		DatabaseURL:        strings.TrimSpace(os.Getenv("DATABASE_URL")),
		LogLevel:           fallback(os.Getenv("LOG_LEVEL"), "info"),
		AccessTokenSecret:  strings.TrimSpace(os.Getenv("JWT_ACCESS_TOKEN_SECRET")),
		RefreshTokenSecret: strings.TrimSpace(os.Getenv("JWT_REFRESH_TOKEN_SECRET")),
		WhitelistEmails:    parseCSV(os.Getenv("WHITELIST_EMAILS")),
		CORSOrigins:        parseCSV(fallback(os.Getenv("CORS_ALLOWED_ORIGINS"), "http://localhost:3000")),
	}

	cfg.AccessTokenTTL = parseTTL(os.Getenv("JWT_ACCESS_TOKEN_EXPIRATION"), 15*time.Minute)
	cfg.RefreshTokenTTL = parseTTL(os.Getenv("JWT_REFRESH_TOKEN_EXPIRATION"), 7*24*time.Hour)

	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("DATABASE_URL is required")
	}
	if cfg.AccessTokenSecret == "" {
		return Config{}, errors.New("JWT_ACCESS_TOKEN_SECRET is required")
	}
	if cfg.RefreshTokenSecret == "" {
		return Config{}, errors.New("JWT_REFRESH_TOKEN_SECRET is required")
	}

	return cfg, nil
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

// IsProduction reports whether the process runs in production mode.
func (c Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// IsTest reports whether the process runs in test mode.
func (c Config) IsTest() bool {
	return c.Env == EnvTest
}

// EmailWhitelisted reports whether the address may register as admin.
func (c Config) EmailWhitelisted(email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, candidate := range c.WhitelistEmails {
		if strings.ToLower(candidate) == email {
			return true
		}
	}
	return false
}

func parseTTL(value string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(strings.TrimSpace(value)); err == nil && d > 0 {
		return d
	}
	return def
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}

func parseCSV(input string) []string {
	parts := strings.Split(input, ",")
	var out []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
