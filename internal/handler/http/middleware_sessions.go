// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"net/http"
	"time"

	"github.com/MKhiriev/news-site/internal/logger"
	"github.com/MKhiriev/news-site/internal/service"
)

// sessionMiddleware loads the session named by the session cookie and
// stores it in the request context. Before the response headers are sent,
// a modified session is saved and its cookie refreshed; a flushed or
// emptied session is deleted together with its cookie. Sessions are not
// saved for 5xx responses.
func (h *Handler) sessionMiddleware() (Middleware, error) {
	if h.services == nil || h.services.SessionService == nil {
		return nil, ErrSessionsUnavailable
	}
	sessions := h.services.SessionService
	cfg := h.settings.Session

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := logger.FromRequest(r)

			var cookieValue string
			if c, err := r.Cookie(cfg.CookieName); err == nil {
				cookieValue = c.Value
			}

			loaded, err := sessions.Load(r.Context(), cookieValue)
			if err != nil {
				log.Error().Err(err).Msg("error loading session")
				writeError(w, err)
				return
			}

			session := newRequestSession(loaded)
			ctx := context.WithoutCancel(r.Context())

			sw := &sessionResponseWriter{ResponseWriter: w}
			sw.beforeHeader = func(status int) {
				h.commitSession(ctx, sw.Header(), sessions, session, cookieValue != "", status)
			}

			next.ServeHTTP(sw, r.WithContext(withSession(r.Context(), session)))

			if !sw.committed {
				sw.commit(http.StatusOK)
			}
		})
	}, nil
}

func (h *Handler) commitSession(ctx context.Context, header http.Header, sessions service.SessionService, session *RequestSession, hadCookie bool, status int) {
	log := logger.FromContext(ctx)
	cfg := h.settings.Session

	stored, accessed, modified, flushed := session.state()
	if accessed {
		header.Add("Vary", "Cookie")
	}

	if flushed || (hadCookie && len(stored.Data) == 0) {
		if err := sessions.Delete(ctx, stored.Key); err != nil {
			log.Error().Err(err).Msg("error deleting session")
		}
		if hadCookie {
			http.SetCookie(headerWriter(header), &http.Cookie{
				Name:     cfg.CookieName,
				Value:    "",
				Path:     "/",
				MaxAge:   -1,
				Expires:  time.Unix(0, 0),
				HttpOnly: true,
				Secure:   cfg.CookieSecure,
				SameSite: http.SameSiteLaxMode,
			})
		}
		return
	}

	if !modified || len(stored.Data) == 0 || status >= http.StatusInternalServerError {
		return
	}

	saved, cookieValue, err := sessions.Save(ctx, stored)
	if err != nil {
		log.Error().Err(err).Msg("error saving session")
		return
	}

	http.SetCookie(headerWriter(header), &http.Cookie{
		Name:     cfg.CookieName,
		Value:    cookieValue,
		Path:     "/",
		MaxAge:   int(cfg.CookieAge.Seconds()),
		Expires:  saved.ExpireDate.UTC(),
		HttpOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// sessionResponseWriter runs beforeHeader once, right before the status
// line is written.
type sessionResponseWriter struct {
	http.ResponseWriter
	beforeHeader func(status int)
	committed    bool
}

func (w *sessionResponseWriter) commit(status int) {
	if w.committed {
		return
	}
	w.committed = true
	w.beforeHeader(status)
}

func (w *sessionResponseWriter) WriteHeader(status int) {
	w.commit(status)
	w.ResponseWriter.WriteHeader(status)
}

func (w *sessionResponseWriter) Write(b []byte) (int, error) {
	if !w.committed {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

func (w *sessionResponseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// headerWriter adapts a header map to http.SetCookie.
type headerWriter http.Header

func (hw headerWriter) Header() http.Header        { return http.Header(hw) }
func (hw headerWriter) Write(b []byte) (int, error) { return len(b), nil }
func (hw headerWriter) WriteHeader(int)             {}
