package http

import (
	"fmt"
	"html/template"

	"github.com/MKhiriev/news-site/internal/config"
	"github.com/MKhiriev/news-site/internal/logger"
	"github.com/MKhiriev/news-site/internal/mail"
	"github.com/MKhiriev/news-site/internal/service"
)

type Handler struct {
	settings *config.Settings
	services *service.Services
	notifier *mail.AdminNotifier

	routes     RouteTable
	pages      map[string]*template.Template
	processors []contextProcessor
	middleware []Middleware
	metrics    *metrics

	logger *logger.Logger
}

// NewHandler builds the HTTP handler from the settings: it parses the
// templates, resolves the template context processors and the middleware
// chain by name. Unknown names return an error.
func NewHandler(settings *config.Settings, services *service.Services, notifier *mail.AdminNotifier, logger *logger.Logger) (*Handler, error) {
	h := &Handler{
		settings: settings,
		services: services,
		notifier: notifier,
		logger:   logger,
	}
	h.routes = h.newsSiteRoutes()

	pages, processors, err := h.loadTemplates(settings.Templates)
	if err != nil {
		return nil, fmt.Errorf("error loading templates: %w", err)
	}
	h.pages = pages
	h.processors = processors

	chain, err := h.middlewareChain(settings.Middleware)
	if err != nil {
		return nil, fmt.Errorf("error building middleware chain: %w", err)
	}
	h.middleware = chain

	if settings.Metrics.Enabled {
		h.metrics = newMetrics()
	}

	logger.Info().Strs("middleware", settings.Middleware).Msg("http handler created")
	return h, nil
}
