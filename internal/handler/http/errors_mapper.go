package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/news-site/internal/service"
	"github.com/MKhiriev/news-site/internal/store"
	"github.com/MKhiriev/news-site/internal/utils"
)

var errorStatusMap = map[error]int{
	ErrNoRouteMatch:             http.StatusNotFound,
	ErrNoReverseMatch:           http.StatusInternalServerError,
	ErrTemplateDoesNotExist:     http.StatusInternalServerError,
	ErrSessionsUnavailable:      http.StatusServiceUnavailable,
	service.ErrNoSessionStorage: http.StatusServiceUnavailable,

	service.ErrLoadingSession:  http.StatusInternalServerError,
	service.ErrSavingSession:   http.StatusInternalServerError,
	service.ErrDeletingSession: http.StatusInternalServerError,

	store.ErrSessionNotFound:     http.StatusNotFound,
	store.ErrDecodingSessionData: http.StatusInternalServerError,
	store.ErrEncodingSessionData: http.StatusInternalServerError,
	store.ErrBuildingSQLQuery:    http.StatusInternalServerError,
	store.ErrExecutingStatement:  http.StatusInternalServerError,
	store.ErrScanningRow:         http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// writeError answers with the error page matching err.
func writeError(w http.ResponseWriter, err error) {
	utils.WriteError(w, statusFromError(err))
}
