// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// Settings is the process-wide configuration of the news-site application.
// It is assembled once at startup by [Load] from the optional .env file,
// environment variables, command-line flags and an optional JSON file, and
// must be treated as read-only afterwards.
//
// Struct tags:
//   - env         : environment variable name (caarlos0/env).
//   - envDefault  : value used when the variable is absent.
//   - envSeparator: separator for list-valued variables.
//   - validate    : go-playground/validator constraints checked by [Load].
type Settings struct {
	// BaseDir is the project base directory. Static, media and the default
	// SQLite database paths are derived from it.
	// Env: BASE_DIR
	BaseDir string `env:"BASE_DIR"`

	// SecretKey signs session cookies. Required.
	// Env: SECRET_KEY
	SecretKey string `env:"SECRET_KEY"`

	// Debug enables debug logging, media serving and detailed error pages.
	// Env: DEBUG
	Debug bool `env:"DEBUG" envDefault:"false"`

	// AllowedHosts is the list of host names the site can serve. "localhost"
	// is always the first entry.
	// Env: ALLOWED_HOSTS (comma-separated)
	AllowedHosts []string `env:"ALLOWED_HOSTS" envSeparator:","`

	// CSRFTrustedOrigins lists origins allowed to send unsafe cross-origin
	// requests (e.g. "https://news.example.com").
	// Env: CSRF_TRUSTED_ORIGINS (comma-separated)
	CSRFTrustedOrigins []string `env:"CSRF_TRUSTED_ORIGINS" envSeparator:","`

	// InstalledModules lists the application modules wired at startup.
	InstalledModules []string

	// Middleware lists HTTP middleware names in the order they wrap the
	// router, outermost first.
	Middleware []string

	// Templates configures the template engines used by views.
	Templates []TemplateEngine

	// Database holds the connection parameters of the default database.
	Database Database

	// PasswordValidators lists the password policy validators by name.
	PasswordValidators []string

	// I18N holds locale and time zone settings.
	I18N I18N

	// Static describes where static assets are served from.
	Static Assets

	// Media describes where user-uploaded files are served from.
	Media Assets

	// Email holds outgoing mail transport settings.
	Email Email

	// Admins receive error reports. Parsed from AdminsRaw.
	Admins []Admin

	// AdminsRaw is the unparsed RFC 5322 address list from the environment
	// (e.g. "Jane <jane@example.com>, ops@example.com").
	// Env: ADMINS
	AdminsRaw string `env:"ADMINS"`

	// Server holds HTTP listener settings.
	Server Server

	// Session holds session cookie and storage settings.
	Session Session

	// Logging holds logger settings.
	Logging Logging

	// Metrics holds Prometheus exposition settings.
	Metrics Metrics

	// JSONFilePath is the optional path to a JSON configuration file merged
	// on top of environment variables and flags.
	// Env: CONFIG
	JSONFilePath string `env:"CONFIG"`

	// EnvFilePath overrides the location of the local .env file.
	// Env: ENV_FILE
	EnvFilePath string `env:"ENV_FILE"`
}

// TemplateEngine configures one template engine.
type TemplateEngine struct {
	// Backend names the engine implementation, e.g. "html/template".
	Backend string
	// Dirs are searched for templates before application templates.
	Dirs []string
	// AppDirs enables templates embedded in application modules.
	AppDirs bool
	// ContextProcessors name the functions that populate every template
	// context, e.g. "debug" and "request".
	ContextProcessors []string
}

// Database holds the connection parameters of the default database.
type Database struct {
	// Engine selects the driver: [EngineSQLite] or [EnginePostgres].
	// Env: DB_ENGINE
	Engine string `env:"DB_ENGINE" envDefault:"sqlite3"`

	// Name is the database name, or the file path for SQLite.
	// Falls back to AltName and then to <BaseDir>/db/db.sqlite3.
	// Env: POSTGRES_DB
	Name string `env:"POSTGRES_DB"`

	// AltName is the secondary source of Name.
	// Env: DB_NAME
	AltName string `env:"DB_NAME"`

	// Env: POSTGRES_USER
	User string `env:"POSTGRES_USER" envDefault:"nobody"`

	// Env: POSTGRES_PASSWORD
	Password string `env:"POSTGRES_PASSWORD" envDefault:"insecure"`

	// Env: POSTGRES_HOST
	Host string `env:"POSTGRES_HOST" envDefault:"localhost"`

	// Env: POSTGRES_PORT
	Port string `env:"POSTGRES_PORT" envDefault:"5432"`
}

// I18N holds internationalization settings.
type I18N struct {
	LanguageCode string

	// TimeZone is an IANA time zone name.
	// Env: TIME_ZONE
	TimeZone string `env:"TIME_ZONE" envDefault:"UTC"`

	UseI18N bool
	UseTZ   bool
}

// Assets describes a URL prefix served from a directory.
type Assets struct {
	URL  string
	Root string
}

// Email holds outgoing mail transport settings.
type Email struct {
	// Backend selects the mail backend, see the EmailBackend* constants.
	// Env: EMAIL_BACKEND
	Backend string `env:"EMAIL_BACKEND" envDefault:"console"`

	// Env: EMAIL_HOST
	Host string `env:"EMAIL_HOST" envDefault:"mail"`

	// Env: EMAIL_PORT
	Port int `env:"EMAIL_PORT" envDefault:"587" validate:"min=1,max=65535"`

	// Env: EMAIL_HOST_USER
	HostUser string `env:"EMAIL_HOST_USER"`

	// Env: EMAIL_HOST_PASSWORD
	HostPassword string `env:"EMAIL_HOST_PASSWORD"`

	// UseTLS enables STARTTLS. Mutually exclusive with UseSSL.
	// Env: EMAIL_USE_TLS
	UseTLS bool `env:"EMAIL_USE_TLS" envDefault:"false"`

	// UseSSL enables implicit TLS. Mutually exclusive with UseTLS.
	// Env: EMAIL_USE_SSL
	UseSSL bool `env:"EMAIL_USE_SSL" envDefault:"false"`

	// Timeout bounds SMTP dialing; zero means no timeout. Bare numbers are
	// read as seconds.
	// Env: EMAIL_TIMEOUT
	Timeout time.Duration `env:"EMAIL_TIMEOUT"`

	// Env: EMAIL_SSL_KEYFILE
	SSLKeyFile string `env:"EMAIL_SSL_KEYFILE"`

	// Env: EMAIL_SSL_CERTFILE
	SSLCertFile string `env:"EMAIL_SSL_CERTFILE"`

	// DefaultFrom is the sender of regular site mail.
	// Env: DEFAULT_FROM_EMAIL
	DefaultFrom string `env:"DEFAULT_FROM_EMAIL" envDefault:"webmaster@localhost"`

	// ServerEmail is the sender of error reports to admins. Defaults to
	// DefaultFrom.
	// Env: SERVER_EMAIL
	ServerEmail string `env:"SERVER_EMAIL"`

	// FilePath is the output directory of the file backend.
	// Env: EMAIL_FILE_PATH
	FilePath string `env:"EMAIL_FILE_PATH" envDefault:"/tmp/news-site-messages"`
}

// Admin is a recipient of error reports.
type Admin struct {
	Name  string
	Email string
}

// Server holds HTTP listener settings.
type Server struct {
	// HTTPAddress is the listen address in "host:port" form.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"SERVER_ADDRESS" envDefault:"localhost:8000" validate:"required,hostname_port"`

	// RequestTimeout bounds a single request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" envDefault:"30s" validate:"gte=0s"`
}

// Session holds session cookie and storage settings.
type Session struct {
	CookieName string `validate:"required"`

	// CookieAge is the session lifetime.
	// Env: SESSION_COOKIE_AGE
	CookieAge time.Duration `env:"SESSION_COOKIE_AGE" envDefault:"336h" validate:"gt=0s"`

	// CookieSecure marks the cookie as HTTPS-only.
	// Env: SESSION_COOKIE_SECURE
	CookieSecure bool `env:"SESSION_COOKIE_SECURE" envDefault:"false"`

	// CleanupInterval is how often expired sessions are deleted.
	// Env: SESSION_CLEANUP_INTERVAL
	CleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"1h" validate:"gt=0s"`
}

// Logging holds logger settings.
type Logging struct {
	// Level is a zerolog level name. Forced to "debug" when Debug is set.
	// Env: LOG_LEVEL
	Level string `env:"LOG_LEVEL" envDefault:"info"`
}

// Metrics holds Prometheus exposition settings.
type Metrics struct {
	// Enabled mounts the /metrics endpoint and records request metrics.
	// Env: METRICS_ENABLED
	Enabled bool `env:"METRICS_ENABLED" envDefault:"false"`
}

// Load builds, resolves and validates the [Settings] from all sources
// (last source wins for non-zero fields):
//  1. built-in defaults
//  2. local .env file (only variables not already set)
//  3. environment variables
//  4. command-line flags from args
//  5. JSON file (path resolved from sources 3 and 4)
//
// A missing SECRET_KEY or an invalid value returns an error wrapping
// [ErrImproperlyConfigured]; callers are expected to abort startup.
func Load(args []string) (*Settings, error) {
	return newConfigBuilder(args).
		withFlags().
		withDotEnv().
		withEnv().
		withJSON().
		build()
}
