// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/news-site/internal/mock"
	"github.com/MKhiriev/news-site/internal/service"
	"github.com/MKhiriev/news-site/models"
)

func newSessionTestHandler(t *testing.T, sessions service.SessionService, view http.HandlerFunc) http.Handler {
	t.Helper()

	h := newTestHandler(t, newTestSettings(t), &service.Services{SessionService: sessions})
	return applyMiddleware(t, h.sessionMiddleware, view)
}

func sessionRequest(cookie string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: "sessionid", Value: cookie})
	}
	return req
}

func sessionCookie(rr *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rr.Result().Cookies() {
		if c.Name == "sessionid" {
			return c
		}
	}
	return nil
}

func TestSessionMiddleware_UntouchedSessionIsNotSaved(t *testing.T) {
	ctrl := gomock.NewController(t)
	sessions := mock.NewMockSessionService(ctrl)
	sessions.EXPECT().Load(gomock.Any(), "").Return(models.Session{Data: map[string]any{}}, nil)

	handler := newSessionTestHandler(t, sessions, func(w http.ResponseWriter, r *http.Request) {
		_, ok := SessionFromRequest(r)
		assert.True(t, ok)
		_, _ = w.Write([]byte("ok"))
	})

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, sessionRequest(""))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Nil(t, sessionCookie(rr))
	assert.Empty(t, rr.Header().Values("Vary"))
}

func TestSessionMiddleware_ModifiedSessionIsSaved(t *testing.T) {
	ctrl := gomock.NewController(t)
	sessions := mock.NewMockSessionService(ctrl)
	expire := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

	sessions.EXPECT().Load(gomock.Any(), "").Return(models.Session{Data: map[string]any{}}, nil)
	sessions.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, s models.Session) (models.Session, string, error) {
			assert.Equal(t, map[string]any{"theme": "dark"}, s.Data)
			s.Key = "abc"
			s.ExpireDate = expire
			return s, "abc.signature", nil
		})

	handler := newSessionTestHandler(t, sessions, func(w http.ResponseWriter, r *http.Request) {
		s, _ := SessionFromRequest(r)
		s.Set("theme", "dark")
		_, _ = w.Write([]byte("ok"))
	})

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, sessionRequest(""))

	require.Equal(t, http.StatusOK, rr.Code)
	cookie := sessionCookie(rr)
	require.NotNil(t, cookie)
	assert.Equal(t, "abc.signature", cookie.Value)
	assert.Equal(t, "/", cookie.Path)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.Equal(t, int((2 * time.Hour).Seconds()), cookie.MaxAge)
	assert.Contains(t, rr.Header().Values("Vary"), "Cookie")
}

func TestSessionMiddleware_SavedWhenNothingWritten(t *testing.T) {
	ctrl := gomock.NewController(t)
	sessions := mock.NewMockSessionService(ctrl)
	sessions.EXPECT().Load(gomock.Any(), "").Return(models.Session{Data: map[string]any{}}, nil)
	sessions.EXPECT().Save(gomock.Any(), gomock.Any()).Return(models.Session{Key: "k"}, "k.sig", nil)

	handler := newSessionTestHandler(t, sessions, func(w http.ResponseWriter, r *http.Request) {
		s, _ := SessionFromRequest(r)
		s.Set("visits", 1)
	})

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, sessionRequest(""))

	require.NotNil(t, sessionCookie(rr))
	assert.Equal(t, "k.sig", sessionCookie(rr).Value)
}

func TestSessionMiddleware_NotSavedOnServerError(t *testing.T) {
	ctrl := gomock.NewController(t)
	sessions := mock.NewMockSessionService(ctrl)
	sessions.EXPECT().Load(gomock.Any(), "").Return(models.Session{Data: map[string]any{}}, nil)

	handler := newSessionTestHandler(t, sessions, func(w http.ResponseWriter, r *http.Request) {
		s, _ := SessionFromRequest(r)
		s.Set("theme", "dark")
		w.WriteHeader(http.StatusInternalServerError)
	})

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, sessionRequest(""))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Nil(t, sessionCookie(rr))
}

func TestSessionMiddleware_FlushDeletesSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	sessions := mock.NewMockSessionService(ctrl)
	sessions.EXPECT().Load(gomock.Any(), "abc.sig").
		Return(models.Session{Key: "abc", Data: map[string]any{"theme": "dark"}}, nil)
	sessions.EXPECT().Delete(gomock.Any(), "abc").Return(nil)

	handler := newSessionTestHandler(t, sessions, func(w http.ResponseWriter, r *http.Request) {
		s, _ := SessionFromRequest(r)
		s.Flush()
	})

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, sessionRequest("abc.sig"))

	cookie := sessionCookie(rr)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Equal(t, -1, cookie.MaxAge)
}

func TestSessionMiddleware_StaleCookieIsExpired(t *testing.T) {
	ctrl := gomock.NewController(t)
	sessions := mock.NewMockSessionService(ctrl)
	sessions.EXPECT().Load(gomock.Any(), "gone.sig").Return(models.Session{Data: map[string]any{}}, nil)
	sessions.EXPECT().Delete(gomock.Any(), "").Return(nil)

	handler := newSessionTestHandler(t, sessions, func(w http.ResponseWriter, r *http.Request) {})

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, sessionRequest("gone.sig"))

	cookie := sessionCookie(rr)
	require.NotNil(t, cookie)
	assert.Equal(t, -1, cookie.MaxAge)
}

func TestSessionMiddleware_LoadError(t *testing.T) {
	ctrl := gomock.NewController(t)
	sessions := mock.NewMockSessionService(ctrl)
	sessions.EXPECT().Load(gomock.Any(), "abc.sig").
		Return(models.Session{}, service.ErrLoadingSession)

	called := false
	handler := newSessionTestHandler(t, sessions, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, sessionRequest("abc.sig"))

	assert.False(t, called)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestSessionMiddleware_SaveErrorKeepsResponse(t *testing.T) {
	ctrl := gomock.NewController(t)
	sessions := mock.NewMockSessionService(ctrl)
	sessions.EXPECT().Load(gomock.Any(), "").Return(models.Session{Data: map[string]any{}}, nil)
	sessions.EXPECT().Save(gomock.Any(), gomock.Any()).
		Return(models.Session{}, "", errors.New("disk full"))

	handler := newSessionTestHandler(t, sessions, func(w http.ResponseWriter, r *http.Request) {
		s, _ := SessionFromRequest(r)
		s.Set("theme", "dark")
		_, _ = w.Write([]byte("ok"))
	})

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, sessionRequest(""))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", rr.Body.String())
	assert.Nil(t, sessionCookie(rr))
}

func TestRequestSession(t *testing.T) {
	s := newRequestSession(models.Session{Key: "abc", Data: map[string]any{"a": float64(1)}})

	_, _, modified, _ := s.state()
	assert.False(t, modified)

	v, ok := s.Get("a")
	require.True(t, ok)
	assert.Equal(t, float64(1), v)
	_, accessed, modified, _ := s.state()
	assert.True(t, accessed)
	assert.False(t, modified, "reading does not modify")

	s.Set("a", float64(1))
	_, _, modified, _ = s.state()
	assert.False(t, modified, "writing the same value does not modify")

	s.Set("b", "x")
	s.Delete("a")
	stored, _, modified, flushed := s.state()
	assert.True(t, modified)
	assert.False(t, flushed)
	assert.Equal(t, map[string]any{"b": "x"}, stored.Data)
	assert.Equal(t, "abc", s.Key())

	s.Flush()
	stored, _, _, flushed = s.state()
	assert.True(t, flushed)
	assert.Empty(t, stored.Data)
}

func TestRequestSession_NilData(t *testing.T) {
	s := newRequestSession(models.Session{})

	s.Set("k", "v")

	v, ok := s.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}
