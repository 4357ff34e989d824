package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MKhiriev/news-site/internal/utils"
)

// Init assembles the router. Operational endpoints live on the root
// router; the news site is mounted at "/" behind the configured
// middleware chain.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(h.withRecoverer)
	router.Use(withGZip)
	if h.metrics != nil {
		router.Use(h.withMetrics)
	}
	if timeout := h.settings.Server.RequestTimeout; timeout > 0 {
		router.Use(middleware.Timeout(timeout))
	}

	router.Get("/version", h.getServerVersion)
	router.Get("/version/build", h.getBuildInfo)
	if h.metrics != nil {
		router.Method(http.MethodGet, "/metrics", h.metrics.handler())
	}

	site := chi.NewRouter()
	for _, mw := range h.middleware {
		site.Use(mw)
	}
	h.routes.Mount(site)
	site.NotFound(notFound)
	site.MethodNotAllowed(CheckHTTPMethod(site))

	router.Mount("/", site)
	router.NotFound(notFound)
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	utils.WriteError(w, http.StatusNotFound)
}
