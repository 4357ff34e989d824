// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/news-site/internal/config"
)

// Middleware wraps an http.Handler.
type Middleware func(http.Handler) http.Handler

// middlewareRegistry maps the names used in Settings.Middleware to their
// constructors.
var middlewareRegistry = map[string]func(h *Handler) (Middleware, error){
	config.MiddlewareSecurity:     (*Handler).securityMiddleware,
	config.MiddlewareStatic:       (*Handler).staticMiddleware,
	config.MiddlewareSessions:     (*Handler).sessionMiddleware,
	config.MiddlewareCommon:       (*Handler).commonMiddleware,
	config.MiddlewareCSRF:         (*Handler).csrfMiddleware,
	config.MiddlewareClickjacking: (*Handler).clickjackingMiddleware,
}

// middlewareChain resolves names in order, outermost first.
func (h *Handler) middlewareChain(names []string) ([]Middleware, error) {
	chain := make([]Middleware, 0, len(names))
	for _, name := range names {
		factory, ok := middlewareRegistry[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownMiddleware, name)
		}
		mw, err := factory(h)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		chain = append(chain, mw)
	}
	return chain, nil
}
