package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func applyMiddleware(t *testing.T, factory func() (Middleware, error), next http.Handler) http.Handler {
	t.Helper()

	mw, err := factory()
	require.NoError(t, err)
	return mw(next)
}

func TestSecurityMiddleware(t *testing.T) {
	h := newTestHandler(t, newTestSettings(t), nil)

	t.Run("sets defaults", func(t *testing.T) {
		handler := applyMiddleware(t, h.securityMiddleware, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))
		assert.Equal(t, "same-origin", rr.Header().Get("Referrer-Policy"))
		assert.Equal(t, "same-origin", rr.Header().Get("Cross-Origin-Opener-Policy"))
	})

	t.Run("keeps values already set", func(t *testing.T) {
		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
		outer := func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Referrer-Policy", "no-referrer")
				next.ServeHTTP(w, r)
			})
		}

		rr := httptest.NewRecorder()
		outer(applyMiddleware(t, h.securityMiddleware, inner)).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, "no-referrer", rr.Header().Get("Referrer-Policy"))
	})
}

func TestClickjackingMiddleware(t *testing.T) {
	h := newTestHandler(t, newTestSettings(t), nil)
	handler := applyMiddleware(t, h.clickjackingMiddleware, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "DENY", rr.Header().Get("X-Frame-Options"))
}
