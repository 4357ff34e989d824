package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/news-site/internal/logger"
	"github.com/MKhiriev/news-site/internal/utils"
)

// csrfMiddleware rejects cross-origin unsafe requests with 403 Forbidden.
// Origins in CSRF_TRUSTED_ORIGINS are always accepted.
func (h *Handler) csrfMiddleware() (Middleware, error) {
	protection := http.NewCrossOriginProtection()
	for _, origin := range h.settings.CSRFTrustedOrigins {
		if err := protection.AddTrustedOrigin(origin); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidTrustedOrigin, err)
		}
	}

	protection.SetDenyHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.FromRequest(r).Warn().
			Str("origin", r.Header.Get("Origin")).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("CSRF verification failed")
		utils.WriteError(w, http.StatusForbidden)
	}))

	return protection.Handler, nil
}
