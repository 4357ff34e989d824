// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_AllFields(t *testing.T) {
	// Arrange
	envVars := map[string]string{
		"CONFIG":   "/path/to/config.json",
		"ENV_FILE": "/path/to/.env",
		"BASE_DIR": "/srv/news",

		"SECRET_KEY":           "s3cr3t",
		"DEBUG":                "true",
		"ALLOWED_HOSTS":        "example.com,foo.com",
		"CSRF_TRUSTED_ORIGINS": "https://example.com,https://foo.com",
		"TIME_ZONE":            "Europe/Berlin",

		"DB_ENGINE":         "postgres",
		"POSTGRES_DB":       "news",
		"DB_NAME":           "ignored",
		"POSTGRES_USER":     "editor",
		"POSTGRES_PASSWORD": "pw",
		"POSTGRES_HOST":     "db",
		"POSTGRES_PORT":     "6432",

		"EMAIL_BACKEND":       "smtp",
		"EMAIL_HOST":          "smtp.example.com",
		"EMAIL_PORT":          "465",
		"EMAIL_HOST_USER":     "mailer",
		"EMAIL_HOST_PASSWORD": "mailpw",
		"EMAIL_USE_SSL":       "true",
		"EMAIL_TIMEOUT":       "10",
		"EMAIL_SSL_KEYFILE":   "/tls/key.pem",
		"EMAIL_SSL_CERTFILE":  "/tls/cert.pem",
		"DEFAULT_FROM_EMAIL":  "news@example.com",
		"SERVER_EMAIL":        "errors@example.com",
		"EMAIL_FILE_PATH":     "/var/mail",
		"ADMINS":              "Jane <jane@example.com>",

		"SERVER_ADDRESS":           "0.0.0.0:8080",
		"SERVER_REQUEST_TIMEOUT":   "1m",
		"SESSION_COOKIE_AGE":       "24h",
		"SESSION_COOKIE_SECURE":    "true",
		"SESSION_CLEANUP_INTERVAL": "5m",
		"LOG_LEVEL":                "warn",
		"METRICS_ENABLED":          "true",
	}
	setEnvVars(t, envVars)

	// Act
	cfg := &Settings{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)

	assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)
	assert.Equal(t, "/path/to/.env", cfg.EnvFilePath)
	assert.Equal(t, "/srv/news", cfg.BaseDir)

	assert.Equal(t, "s3cr3t", cfg.SecretKey)
	assert.True(t, cfg.Debug)
	assert.Equal(t, []string{"example.com", "foo.com"}, cfg.AllowedHosts)
	assert.Equal(t, []string{"https://example.com", "https://foo.com"}, cfg.CSRFTrustedOrigins)
	assert.Equal(t, "Europe/Berlin", cfg.I18N.TimeZone)

	assert.Equal(t, Database{
		Engine:   "postgres",
		Name:     "news",
		AltName:  "ignored",
		User:     "editor",
		Password: "pw",
		Host:     "db",
		Port:     "6432",
	}, cfg.Database)

	assert.Equal(t, "smtp", cfg.Email.Backend)
	assert.Equal(t, "smtp.example.com", cfg.Email.Host)
	assert.Equal(t, 465, cfg.Email.Port)
	assert.Equal(t, "mailer", cfg.Email.HostUser)
	assert.Equal(t, "mailpw", cfg.Email.HostPassword)
	assert.False(t, cfg.Email.UseTLS)
	assert.True(t, cfg.Email.UseSSL)
	assert.Equal(t, 10*time.Second, cfg.Email.Timeout)
	assert.Equal(t, "/tls/key.pem", cfg.Email.SSLKeyFile)
	assert.Equal(t, "/tls/cert.pem", cfg.Email.SSLCertFile)
	assert.Equal(t, "news@example.com", cfg.Email.DefaultFrom)
	assert.Equal(t, "errors@example.com", cfg.Email.ServerEmail)
	assert.Equal(t, "/var/mail", cfg.Email.FilePath)
	assert.Equal(t, "Jane <jane@example.com>", cfg.AdminsRaw)

	assert.Equal(t, "0.0.0.0:8080", cfg.Server.HTTPAddress)
	assert.Equal(t, time.Minute, cfg.Server.RequestTimeout)
	assert.Equal(t, 24*time.Hour, cfg.Session.CookieAge)
	assert.True(t, cfg.Session.CookieSecure)
	assert.Equal(t, 5*time.Minute, cfg.Session.CleanupInterval)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestParseEnv_Defaults(t *testing.T) {
	// Arrange
	clearEnvVars(t)

	// Act
	cfg := &Settings{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)

	assert.Empty(t, cfg.SecretKey)
	assert.False(t, cfg.Debug)
	assert.Empty(t, cfg.AllowedHosts)
	assert.Equal(t, "UTC", cfg.I18N.TimeZone)

	assert.Equal(t, EngineSQLite, cfg.Database.Engine)
	assert.Empty(t, cfg.Database.Name)
	assert.Equal(t, "nobody", cfg.Database.User)
	assert.Equal(t, "insecure", cfg.Database.Password)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "5432", cfg.Database.Port)

	assert.Equal(t, EmailBackendConsole, cfg.Email.Backend)
	assert.Equal(t, "mail", cfg.Email.Host)
	assert.Equal(t, 587, cfg.Email.Port)
	assert.False(t, cfg.Email.UseTLS)
	assert.False(t, cfg.Email.UseSSL)
	assert.Zero(t, cfg.Email.Timeout)
	assert.Empty(t, cfg.Email.SSLKeyFile)
	assert.Empty(t, cfg.Email.SSLCertFile)
	assert.Equal(t, "webmaster@localhost", cfg.Email.DefaultFrom)
	assert.Empty(t, cfg.Email.ServerEmail)
	assert.Equal(t, "/tmp/news-site-messages", cfg.Email.FilePath)

	assert.Equal(t, "localhost:8000", cfg.Server.HTTPAddress)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, 14*24*time.Hour, cfg.Session.CookieAge)
	assert.Equal(t, time.Hour, cfg.Session.CleanupInterval)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestParseEnv_InvalidBool(t *testing.T) {
	// Arrange
	setEnvVars(t, map[string]string{"DEBUG": "maybe"})

	// Act
	err := parseEnv(&Settings{})

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "env")
	assert.ErrorIs(t, err, ErrImproperlyConfigured)
}

func TestParseEnv_InvalidInt(t *testing.T) {
	setEnvVars(t, map[string]string{"EMAIL_PORT": "smtp"})

	err := parseEnv(&Settings{})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrImproperlyConfigured)
}

func TestParseEnv_InvalidDuration(t *testing.T) {
	// Arrange
	envVars := map[string]string{
		"SERVER_REQUEST_TIMEOUT": "invalid_duration",
	}
	setEnvVars(t, envVars)

	// Act
	cfg := &Settings{}
	err := parseEnv(cfg)

	// Assert
	require.Error(t, err)
	// Error wording may vary depending on parseEnv internals; assert loosely.
	assert.Contains(t, err.Error(), "env")
}

func TestParseEnv_DurationFormats(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		expected time.Duration
	}{
		{"hours", "2h", 2 * time.Hour},
		{"minutes", "45m", 45 * time.Minute},
		{"seconds", "30s", 30 * time.Second},
		{"combined", "1h30m", 90 * time.Minute},
		{"bare seconds", "15", 15 * time.Second},
		{"fractional seconds", "0.5", 500 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			envVars := map[string]string{
				"EMAIL_TIMEOUT": tt.envValue,
			}
			setEnvVars(t, envVars)

			// Act
			cfg := &Settings{}
			err := parseEnv(cfg)

			// Assert
			require.NoError(t, err)
			assert.Equal(t, tt.expected, cfg.Email.Timeout)
		})
	}
}

// Helpers

var envKeys = []string{
	"CONFIG", "ENV_FILE", "BASE_DIR",

	"SECRET_KEY", "DEBUG", "ALLOWED_HOSTS", "CSRF_TRUSTED_ORIGINS", "TIME_ZONE",

	"DB_ENGINE", "POSTGRES_DB", "DB_NAME", "POSTGRES_USER", "POSTGRES_PASSWORD",
	"POSTGRES_HOST", "POSTGRES_PORT",

	"EMAIL_BACKEND", "EMAIL_HOST", "EMAIL_PORT", "EMAIL_HOST_USER",
	"EMAIL_HOST_PASSWORD", "EMAIL_USE_TLS", "EMAIL_USE_SSL", "EMAIL_TIMEOUT",
	"EMAIL_SSL_KEYFILE", "EMAIL_SSL_CERTFILE", "DEFAULT_FROM_EMAIL",
	"SERVER_EMAIL", "EMAIL_FILE_PATH", "ADMINS",

	"SERVER_ADDRESS", "SERVER_REQUEST_TIMEOUT",
	"SESSION_COOKIE_AGE", "SESSION_COOKIE_SECURE", "SESSION_CLEANUP_INTERVAL",
	"LOG_LEVEL", "METRICS_ENABLED",
}

func setEnvVars(t *testing.T, vars map[string]string) {
	t.Helper()
	clearEnvVars(t)
	for k, v := range vars {
		require.NoError(t, os.Setenv(k, v))
		t.Cleanup(func() { _ = os.Unsetenv(k) })
	}
}

func clearEnvVars(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		_ = os.Unsetenv(k)
	}
}
