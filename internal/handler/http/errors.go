// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors returned while building the router from the settings
// or serving a request.
// Callers can match against them with [errors.Is].
var (
	// ErrNoReverseMatch is returned by [RouteTable.Reverse] when no route
	// carries the requested name.
	ErrNoReverseMatch = errors.New("no reverse match")

	// ErrNoRouteMatch is returned by [RouteTable.Resolve] when no route
	// matches the path.
	ErrNoRouteMatch = errors.New("no route matches path")

	// ErrUnknownMiddleware is returned when the settings name a middleware
	// that is not registered.
	ErrUnknownMiddleware = errors.New("unknown middleware")

	// ErrSessionsUnavailable is returned when the sessions middleware is
	// configured but no session service was created.
	ErrSessionsUnavailable = errors.New("sessions middleware requires the session service")

	// ErrInvalidTrustedOrigin is returned for a CSRF trusted origin that is
	// not of the form scheme://host[:port].
	ErrInvalidTrustedOrigin = errors.New("invalid CSRF trusted origin")

	// ErrUnsupportedTemplateBackend is returned for a template engine other
	// than html/template.
	ErrUnsupportedTemplateBackend = errors.New("unsupported template backend")

	// ErrUnknownContextProcessor is returned for a template context
	// processor that is not registered.
	ErrUnknownContextProcessor = errors.New("unknown template context processor")

	// ErrNoTemplateEngine is returned when no template engine is configured.
	ErrNoTemplateEngine = errors.New("no template engine is configured")

	// ErrTemplateDoesNotExist is returned when a view renders a page that
	// was not loaded.
	ErrTemplateDoesNotExist = errors.New("template does not exist")
)
