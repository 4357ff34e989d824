package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/MKhiriev/news-site/internal/logger"
	"github.com/MKhiriev/news-site/internal/utils"
)

// withRecoverer turns a panic in a view into a 500 response. Outside of
// debug mode the admins are mailed the request line and stack trace.
//
// A view that panics after its status line went out cannot be answered
// with an error page any more; the connection is aborted instead so the
// client sees a broken response rather than a mixed one.
func (h *Handler) withRecoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rw := &responseWriter{ResponseWriter: w}

		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
				panic(rec)
			}

			stack := debug.Stack()
			log := logger.FromRequest(r)
			log.Error().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Interface("panic", rec).
				Bytes("stack", stack).
				Bool("headers_sent", rw.wroteHeader).
				Msg("internal server error")

			if rw.wroteHeader {
				if !h.settings.Debug {
					h.mailAdmins(r, rec, stack)
				}
				panic(http.ErrAbortHandler)
			}

			if h.settings.Debug {
				w.Header().Set("Content-Type", "text/plain; charset=utf-8")
				w.WriteHeader(http.StatusInternalServerError)
				fmt.Fprintf(w, "panic: %v\n\n%s", rec, stack)
				return
			}

			utils.WriteError(w, http.StatusInternalServerError)
			h.mailAdmins(r, rec, stack)
		}()

		next.ServeHTTP(rw, r)
	})
}

func (h *Handler) mailAdmins(r *http.Request, rec any, stack []byte) {
	subject := "Internal Server Error: " + r.URL.Path
	if err := h.notifier.MailAdmins(context.WithoutCancel(r.Context()), subject, errorReport(r, rec, stack)); err != nil {
		logger.FromRequest(r).Error().Err(err).Msg("error mailing admins")
	}
}

func errorReport(r *http.Request, rec any, stack []byte) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v\n\n", rec)
	fmt.Fprintf(&b, "Request Method: %s\n", r.Method)
	fmt.Fprintf(&b, "Request URL: %s\n", r.URL.String())
	fmt.Fprintf(&b, "Host: %s\n", r.Host)
	if traceID, ok := utils.GetTraceIDFromContext(r.Context()); ok {
		fmt.Fprintf(&b, "Trace ID: %s\n", traceID)
	}
	fmt.Fprintf(&b, "\n%s", stack)
	return b.String()
}
