// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
	IsDatabaseEnabled() bool
}

// SheetsConfig provides Google Sheets sink settings.
type SheetsConfig interface {
	GetSheetsCredentialsBase64() string
	GetSpreadsheetID() string
	GetSheetName() string
	IsSheetsEnabled() bool
}

// EmailConfig provides settings for email sending.
type EmailConfig interface {
	GetEmailEnabled() bool
	GetSMTPHost() string
	GetSMTPPort() int
	GetSMTPUsername() string
	GetSMTPPassword() string
	GetEmailFromName() string
	GetEmailFromAddress() string
	GetAdminEmail() string
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetEnv() string
	IsDevelopment() bool
}

// RateLimitConfig provides settings for the public submission rate limiter.
type RateLimitConfig interface {
	GetRateLimitMax() int
	GetRateLimitWindow() time.Duration
}

// PersistConfig provides settings for the persistence fan-out coordinator.
type PersistConfig interface {
	GetPersistPolicy() string
	GetSinkTimeout() time.Duration
}

// QuoteConfig provides settings for quote record construction.
type QuoteConfig interface {
	GetTimezone() string
}

// AdminConfig provides settings for the administrative API surface.
type AdminConfig interface {
	GetAdminAPIKey() string
}

// Persistence success policies accepted by PERSIST_POLICY.
const (
	PolicyPrimary = "primary"
	PolicyAny     = "any"
)

// Config is the concrete configuration loaded from the environment.
type Config struct {
	Env      string
	HTTPAddr string

	DatabaseURL string

	SheetsCredentialsBase64 string
	SpreadsheetID           string
	SheetName               string

	EmailEnabled     bool
	SMTPHost         string
	SMTPPort         int
	SMTPUsername     string
	SMTPPassword     string
	EmailFromName    string
	EmailFromAddress string
	AdminEmail       string

	RateLimitMax    int
	RateLimitWindow time.Duration

	PersistPolicy string
	SinkTimeout   time.Duration

	Timezone string

	AdminAPIKey string
}

// Load reads configuration from the environment, consulting a local .env
// file when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	emailEnabled := strings.EqualFold(getEnv("EMAIL_ENABLED", "true"), "true")
	smtpHost := getEnv("SMTP_HOST", "")
	if smtpHost == "" {
		emailEnabled = false
	}

	cfg := &Config{
		Env:                     getEnv("APP_ENV", "development"),
		HTTPAddr:                getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:             getEnv("DATABASE_URL", ""),
		SheetsCredentialsBase64: getEnv("GOOGLE_CREDENTIALS_BASE64", ""),
		SpreadsheetID:           getEnv("GOOGLE_SHEET_ID", ""),
		SheetName:               getEnv("GOOGLE_SHEET_NAME", "Quote Requests"),
		EmailEnabled:            emailEnabled,
		SMTPHost:                smtpHost,
		SMTPPort:                getEnvInt("SMTP_PORT", 587),
		SMTPUsername:            getEnv("SMTP_USERNAME", ""),
		SMTPPassword:            getEnv("SMTP_PASSWORD", ""),
		EmailFromName:           getEnv("EMAIL_FROM_NAME", "Bhavya Steel Industries"),
		EmailFromAddress:        getEnv("EMAIL_FROM_ADDRESS", "noreply@bhavyasteel.com"),
		AdminEmail:              getEnv("ADMIN_EMAIL", ""),
		RateLimitMax:            getEnvInt("RATE_LIMIT_MAX", 10),
		RateLimitWindow:         getEnvDuration("RATE_LIMIT_WINDOW", time.Minute),
		PersistPolicy:           strings.ToLower(getEnv("PERSIST_POLICY", PolicyPrimary)),
		SinkTimeout:             getEnvDuration("SINK_TIMEOUT", 5*time.Second),
		Timezone:                getEnv("QUOTE_TIMEZONE", "Asia/Kolkata"),
		AdminAPIKey:             getEnv("ADMIN_API_KEY", ""),
	}

	if cfg.DatabaseURL == "" && !cfg.sheetsConfigured() {
		return nil, fmt.Errorf("at least one sink is required: set DATABASE_URL or GOOGLE_CREDENTIALS_BASE64 + GOOGLE_SHEET_ID")
	}
	if cfg.PersistPolicy != PolicyPrimary && cfg.PersistPolicy != PolicyAny {
		return nil, fmt.Errorf("PERSIST_POLICY must be %q or %q, got %q", PolicyPrimary, PolicyAny, cfg.PersistPolicy)
	}
	if cfg.EmailEnabled && cfg.AdminEmail == "" {
		return nil, fmt.Errorf("ADMIN_EMAIL is required when email is enabled")
	}
	if cfg.RateLimitMax < 1 {
		return nil, fmt.Errorf("RATE_LIMIT_MAX must be at least 1")
	}

	return cfg, nil
}

func (c *Config) sheetsConfigured() bool {
	return c.SheetsCredentialsBase64 != "" && c.SpreadsheetID != ""
}

func (c *Config) GetDatabaseURL() string  { return c.DatabaseURL }
func (c *Config) IsDatabaseEnabled() bool { return c.DatabaseURL != "" }

func (c *Config) GetSheetsCredentialsBase64() string { return c.SheetsCredentialsBase64 }
func (c *Config) GetSpreadsheetID() string           { return c.SpreadsheetID }
func (c *Config) GetSheetName() string               { return c.SheetName }
func (c *Config) IsSheetsEnabled() bool              { return c.sheetsConfigured() }

func (c *Config) GetEmailEnabled() bool       { return c.EmailEnabled }
func (c *Config) GetSMTPHost() string         { return c.SMTPHost }
func (c *Config) GetSMTPPort() int            { return c.SMTPPort }
func (c *Config) GetSMTPUsername() string     { return c.SMTPUsername }
func (c *Config) GetSMTPPassword() string     { return c.SMTPPassword }
func (c *Config) GetEmailFromName() string    { return c.EmailFromName }
func (c *Config) GetEmailFromAddress() string { return c.EmailFromAddress }
func (c *Config) GetAdminEmail() string       { return c.AdminEmail }

func (c *Config) GetHTTPAddr() string { return c.HTTPAddr }
func (c *Config) GetEnv() string      { return c.Env }
func (c *Config) IsDevelopment() bool { return strings.EqualFold(c.Env, "development") }

func (c *Config) GetRateLimitMax() int              { return c.RateLimitMax }
func (c *Config) GetRateLimitWindow() time.Duration { return c.RateLimitWindow }

func (c *Config) GetPersistPolicy() string      { return c.PersistPolicy }
func (c *Config) GetSinkTimeout() time.Duration { return c.SinkTimeout }

func (c *Config) GetTimezone() string { return c.Timezone }

func (c *Config) GetAdminAPIKey() string { return c.AdminAPIKey }

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	val, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	val, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	parsed, err := time.ParseDuration(val)
	if err != nil {
		return fallback
	}
	return parsed
}
