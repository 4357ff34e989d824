package config

import (
	"errors"
	"fmt"
)

// ErrImproperlyConfigured is wrapped by every error that makes the settings
// unusable. Startup must abort when it is returned.
var ErrImproperlyConfigured = errors.New("improperly configured")

// Validation errors returned by [Settings.validate] and [resolve].
var (
	// ErrMissingSecretKey indicates that SECRET_KEY is absent or empty.
	ErrMissingSecretKey = fmt.Errorf("%w: SECRET_KEY must be set", ErrImproperlyConfigured)
	// ErrUnknownDBEngine indicates an unsupported DB_ENGINE value.
	ErrUnknownDBEngine = fmt.Errorf("%w: unknown DB_ENGINE", ErrImproperlyConfigured)
	// ErrUnknownEmailBackend indicates an unsupported EMAIL_BACKEND value.
	ErrUnknownEmailBackend = fmt.Errorf("%w: unknown EMAIL_BACKEND", ErrImproperlyConfigured)
	// ErrConflictingEmailSecurity indicates that both EMAIL_USE_TLS and
	// EMAIL_USE_SSL are enabled.
	ErrConflictingEmailSecurity = fmt.Errorf("%w: EMAIL_USE_TLS and EMAIL_USE_SSL are mutually exclusive", ErrImproperlyConfigured)
	// ErrInvalidTimeZone indicates a TIME_ZONE that cannot be loaded.
	ErrInvalidTimeZone = fmt.Errorf("%w: invalid TIME_ZONE", ErrImproperlyConfigured)
	// ErrInvalidAdmins indicates an ADMINS value that is not an address list.
	ErrInvalidAdmins = fmt.Errorf("%w: invalid ADMINS", ErrImproperlyConfigured)
	// ErrInvalidLogLevel indicates an unknown LOG_LEVEL.
	ErrInvalidLogLevel = fmt.Errorf("%w: invalid LOG_LEVEL", ErrImproperlyConfigured)
	// ErrInvalidSettings indicates a value rejected by a struct validation
	// tag, such as an out-of-range port.
	ErrInvalidSettings = fmt.Errorf("%w: invalid value", ErrImproperlyConfigured)
	// ErrModuleNotInstalled indicates middleware whose module is missing from
	// InstalledModules.
	ErrModuleNotInstalled = fmt.Errorf("%w: middleware requires a module that is not installed", ErrImproperlyConfigured)
)
