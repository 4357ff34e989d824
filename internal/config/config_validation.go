// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

var settingsValidator = validator.New(validator.WithRequiredStructEnabled())

// validate checks that the final merged [Settings] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or an error wrapping
// [ErrImproperlyConfigured] otherwise.
func (cfg *Settings) validate() error {
	if cfg.SecretKey == "" {
		return ErrMissingSecretKey
	}

	if _, ok := knownEngines[cfg.Database.Engine]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownDBEngine, cfg.Database.Engine)
	}

	if _, ok := knownEmailBackends[cfg.Email.Backend]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownEmailBackend, cfg.Email.Backend)
	}

	if cfg.Email.UseTLS && cfg.Email.UseSSL {
		return ErrConflictingEmailSecurity
	}

	if _, err := time.LoadLocation(cfg.I18N.TimeZone); err != nil {
		return fmt.Errorf("%w: %q: %w", ErrInvalidTimeZone, cfg.I18N.TimeZone, err)
	}

	if _, err := zerolog.ParseLevel(cfg.Logging.Level); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, cfg.Logging.Level)
	}

	for _, mw := range cfg.Middleware {
		module, ok := middlewareModules[mw]
		if ok && !cfg.HasModule(module) {
			return fmt.Errorf("%w: %s needs %s", ErrModuleNotInstalled, mw, module)
		}
	}

	if err := settingsValidator.Struct(cfg); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}

	return nil
}

// middlewareModules maps middleware to the module it depends on.
var middlewareModules = map[string]string{
	MiddlewareSessions: ModuleSessions,
	MiddlewareStatic:   ModuleStaticFiles,
}
