package http

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/news-site/internal/config"
	"github.com/MKhiriev/news-site/internal/logger"
	"github.com/MKhiriev/news-site/internal/mail"
	"github.com/MKhiriev/news-site/internal/mock"
	"github.com/MKhiriev/news-site/internal/service"
)

// newTestSettings returns settings close to the defaults, without the
// sessions middleware so that no session service is needed.
func newTestSettings(t *testing.T) *config.Settings {
	t.Helper()

	return &config.Settings{
		SecretKey:    "test-secret-key",
		AllowedHosts: []string{"localhost"},
		InstalledModules: []string{
			config.ModuleStaticFiles,
			config.ModuleNewsSite,
		},
		Middleware: []string{
			config.MiddlewareSecurity,
			config.MiddlewareStatic,
			config.MiddlewareCommon,
			config.MiddlewareCSRF,
			config.MiddlewareClickjacking,
		},
		Templates: []config.TemplateEngine{
			{
				Backend: "html/template",
				AppDirs: true,
				ContextProcessors: []string{
					config.ContextProcessorDebug,
					config.ContextProcessorRequest,
				},
			},
		},
		I18N:    config.I18N{LanguageCode: "en-us", TimeZone: "UTC"},
		Static:  config.Assets{URL: "/static/", Root: t.TempDir()},
		Media:   config.Assets{URL: "/media/", Root: t.TempDir()},
		Server:  config.Server{HTTPAddress: "localhost:8000"},
		Session: config.Session{CookieName: "sessionid", CookieAge: 2 * time.Hour},
	}
}

func newTestHandler(t *testing.T, settings *config.Settings, services *service.Services) *Handler {
	t.Helper()

	if services == nil {
		services = &service.Services{}
	}
	h, err := NewHandler(settings, services, nil, logger.Nop())
	require.NoError(t, err)
	return h
}

func TestNewHandler_DefaultChain(t *testing.T) {
	settings := newTestSettings(t)

	h, err := NewHandler(settings, &service.Services{}, nil, logger.Nop())

	require.NoError(t, err)
	assert.Len(t, h.middleware, len(settings.Middleware))
	assert.Contains(t, h.pages, homeTemplate)
	assert.Len(t, h.processors, 2)
	assert.Nil(t, h.metrics)
	assert.Equal(t, NewsSiteNamespace, h.routes.Namespace)
}

func TestNewHandler_MetricsEnabled(t *testing.T) {
	settings := newTestSettings(t)
	settings.Metrics.Enabled = true

	h := newTestHandler(t, settings, nil)

	require.NotNil(t, h.metrics)
}

func TestNewHandler_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(s *config.Settings)
		wantErr error
	}{
		{
			name:    "unknown middleware",
			mutate:  func(s *config.Settings) { s.Middleware = append(s.Middleware, "gzip") },
			wantErr: ErrUnknownMiddleware,
		},
		{
			name:    "sessions middleware without session service",
			mutate:  func(s *config.Settings) { s.Middleware = append(s.Middleware, config.MiddlewareSessions) },
			wantErr: ErrSessionsUnavailable,
		},
		{
			name:    "malformed trusted origin",
			mutate:  func(s *config.Settings) { s.CSRFTrustedOrigins = []string{"news.example.com"} },
			wantErr: ErrInvalidTrustedOrigin,
		},
		{
			name:    "no template engine",
			mutate:  func(s *config.Settings) { s.Templates = nil },
			wantErr: ErrNoTemplateEngine,
		},
		{
			name:    "unsupported template backend",
			mutate:  func(s *config.Settings) { s.Templates[0].Backend = "jinja2" },
			wantErr: ErrUnsupportedTemplateBackend,
		},
		{
			name:    "unknown context processor",
			mutate:  func(s *config.Settings) { s.Templates[0].ContextProcessors = []string{"messages"} },
			wantErr: ErrUnknownContextProcessor,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := newTestSettings(t)
			tt.mutate(settings)

			h, err := NewHandler(settings, &service.Services{}, nil, logger.Nop())

			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, h)
		})
	}
}

func TestNewHandler_SessionsWithService(t *testing.T) {
	ctrl := gomock.NewController(t)
	settings := newTestSettings(t)
	settings.Middleware = append(settings.Middleware, config.MiddlewareSessions)

	h, err := NewHandler(settings, &service.Services{
		SessionService: mock.NewMockSessionService(ctrl),
	}, mail.NewAdminNotifier(mail.NewDummyBackend(), "root@localhost", nil), logger.Nop())

	require.NoError(t, err)
	assert.Len(t, h.middleware, len(settings.Middleware))
}
