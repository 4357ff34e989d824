package http

import "net/http"

// securityMiddleware sets the default security headers unless the handler
// chose its own values.
func (h *Handler) securityMiddleware() (Middleware, error) {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := w.Header()
			setDefaultHeader(header, "X-Content-Type-Options", "nosniff")
			setDefaultHeader(header, "Referrer-Policy", "same-origin")
			setDefaultHeader(header, "Cross-Origin-Opener-Policy", "same-origin")
			next.ServeHTTP(w, r)
		})
	}, nil
}

// clickjackingMiddleware forbids rendering the site inside frames.
func (h *Handler) clickjackingMiddleware() (Middleware, error) {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			setDefaultHeader(w.Header(), "X-Frame-Options", "DENY")
			next.ServeHTTP(w, r)
		})
	}, nil
}

func setDefaultHeader(header http.Header, key, value string) {
	if header.Get(key) == "" {
		header.Set(key, value)
	}
}
