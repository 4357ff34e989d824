package handler

import (
	"github.com/MKhiriev/news-site/internal/config"
	"github.com/MKhiriev/news-site/internal/handler/http"
	"github.com/MKhiriev/news-site/internal/logger"
	"github.com/MKhiriev/news-site/internal/mail"
	"github.com/MKhiriev/news-site/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(settings *config.Settings, services *service.Services, notifier *mail.AdminNotifier, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if settings.Server.HTTPAddress == "" {
		return nil, errNoHandlersAreCreated
	}

	httpHandler, err := http.NewHandler(settings, services, notifier, logger)
	if err != nil {
		return nil, err
	}

	return &Handlers{HTTP: httpHandler}, nil
}
