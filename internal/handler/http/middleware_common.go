// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/MKhiriev/news-site/internal/logger"
	"github.com/MKhiriev/news-site/internal/utils"
)

var hostValidation = regexp.MustCompile(`^([a-z0-9.-]+|\[[a-f0-9]*:[a-f0-9.:]+\])(:[0-9]+)?$`)

// commonMiddleware rejects requests whose Host header is not allowed with
// 400 Bad Request, and redirects paths missing a trailing slash to the
// slashed path when only that one resolves to a route.
func (h *Handler) commonMiddleware() (Middleware, error) {
	allowed := h.settings.AllowedHosts

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			domain, _ := splitDomainPort(r.Host)
			if domain == "" || !validateHost(domain, allowed) {
				logger.FromRequest(r).Warn().
					Str("host", r.Host).
					Msg("invalid Host header, consider adding it to ALLOWED_HOSTS")
				utils.WriteError(w, http.StatusBadRequest)
				return
			}

			if target, ok := h.slashRedirect(r); ok {
				http.Redirect(w, r, target, http.StatusMovedPermanently)
				return
			}

			next.ServeHTTP(w, r)
		})
	}, nil
}

// slashRedirect returns the path with a trailing slash appended when the
// request path does not resolve but the slashed one does.
func (h *Handler) slashRedirect(r *http.Request) (string, bool) {
	p := r.URL.Path
	if strings.HasSuffix(p, "/") {
		return "", false
	}
	if _, err := h.routes.Resolve(p); !errors.Is(err, ErrNoRouteMatch) {
		return "", false
	}
	if _, err := h.routes.Resolve(p + "/"); err != nil {
		return "", false
	}

	target := p + "/"
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}
	return target, true
}

// splitDomainPort splits host into a lowercase domain and port. Both are
// empty when host is malformed. A trailing dot is removed from the domain.
func splitDomainPort(host string) (string, string) {
	host = strings.ToLower(host)
	if !hostValidation.MatchString(host) {
		return "", ""
	}
	if strings.HasSuffix(host, "]") {
		return host, ""
	}

	domain, port := host, ""
	if i := strings.LastIndex(host, ":"); i >= 0 {
		domain, port = host[:i], host[i+1:]
	}
	return strings.TrimSuffix(domain, "."), port
}

// validateHost reports whether domain matches one of the allowed patterns.
// "*" matches everything and a leading "." matches the domain and all of
// its subdomains.
func validateHost(domain string, allowed []string) bool {
	for _, pattern := range allowed {
		if pattern == "*" || isSameDomain(domain, pattern) {
			return true
		}
	}
	return false
}

func isSameDomain(domain, pattern string) bool {
	pattern = strings.ToLower(pattern)
	if pattern == "" {
		return false
	}
	if pattern[0] == '.' {
		return strings.HasSuffix(domain, pattern) || domain == pattern[1:]
	}
	return domain == pattern
}
