package http

import (
	"net/http"
	"strings"

	"github.com/MKhiriev/news-site/internal/config"
	"github.com/MKhiriev/news-site/internal/utils"
)

// staticMiddleware serves files under STATIC_URL from STATIC_ROOT, and in
// debug mode files under MEDIA_URL from MEDIA_ROOT, before the rest of the
// chain runs. Directory listings are never served.
func (h *Handler) staticMiddleware() (Middleware, error) {
	mounts := []config.Assets{h.settings.Static}
	if h.settings.Debug {
		mounts = append(mounts, h.settings.Media)
	}

	type fileMount struct {
		prefix string
		server http.Handler
	}
	servers := make([]fileMount, 0, len(mounts))
	for _, m := range mounts {
		if m.URL == "" || m.Root == "" {
			continue
		}
		servers = append(servers, fileMount{
			prefix: m.URL,
			server: http.StripPrefix(m.URL, http.FileServer(http.Dir(m.Root))),
		})
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet && r.Method != http.MethodHead {
				next.ServeHTTP(w, r)
				return
			}

			for _, m := range servers {
				if !strings.HasPrefix(r.URL.Path, m.prefix) {
					continue
				}
				if strings.HasSuffix(r.URL.Path, "/") {
					utils.WriteError(w, http.StatusNotFound)
					return
				}
				m.server.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r)
		})
	}, nil
}
