package server

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/news-site/internal/config"
	"github.com/MKhiriev/news-site/internal/handler"
	"github.com/MKhiriev/news-site/internal/logger"
	"github.com/MKhiriev/news-site/internal/service"
	"github.com/MKhiriev/news-site/internal/workers"
)

func freeAddress(t *testing.T) string {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func newTestHandlers(t *testing.T, addr string) *handler.Handlers {
	t.Helper()

	settings := &config.Settings{
		AllowedHosts: []string{"127.0.0.1"},
		Middleware:   []string{config.MiddlewareCommon},
		Templates:    []config.TemplateEngine{{Backend: "html/template", AppDirs: true}},
		Server:       config.Server{HTTPAddress: addr},
		Session:      config.Session{CookieName: "sessionid"},
	}
	handlers, err := handler.NewHandlers(settings, &service.Services{}, nil, logger.Nop())
	require.NoError(t, err)
	return handlers
}

func TestNewServer_NoHandlers(t *testing.T) {
	s, err := NewServer(nil, nil, config.Server{HTTPAddress: "localhost:8000"}, logger.Nop())

	require.ErrorIs(t, err, errNoServersAreCreated)
	assert.Nil(t, s)
}

func TestNewServer_NoAddress(t *testing.T) {
	handlers := newTestHandlers(t, "localhost:8000")

	s, err := NewServer(handlers, nil, config.Server{}, logger.Nop())

	require.ErrorIs(t, err, errNoServersAreCreated)
	assert.Nil(t, s)
}

func TestServer_RunServesUntilCancelled(t *testing.T) {
	addr := freeAddress(t)
	cfg := config.Server{HTTPAddress: addr}

	s, err := NewServer(newTestHandlers(t, addr), &workers.Workers{}, cfg, logger.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.(*server).run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}

	_, err = http.Get("http://" + addr + "/")
	assert.Error(t, err)
}

func TestServer_ListenErrorStopsRun(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()
	addr := l.Addr().String()

	s, err := NewServer(newTestHandlers(t, addr), nil, config.Server{HTTPAddress: addr}, logger.Nop())
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		s.(*server).run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return after listen failure")
	}
}
