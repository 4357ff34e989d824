package workers

import (
	"context"
	"sync"

	"github.com/MKhiriev/news-site/internal/config"
	"github.com/MKhiriev/news-site/internal/logger"
	"github.com/MKhiriev/news-site/internal/service"
)

type Workers struct {
	workers []Worker
}

// NewWorkers creates the background workers enabled by the settings. The
// session cleanup worker runs only when sessions are installed.
func NewWorkers(services *service.Services, cfg *config.Settings, logger *logger.Logger) *Workers {
	w := &Workers{}
	if services.SessionService != nil {
		w.workers = append(w.workers, NewSessionCleanupWorker(services.SessionService, cfg.Session.CleanupInterval, logger))
	}
	return w
}

// Run starts every worker in its own goroutine and waits until all of them
// have returned.
func (w *Workers) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for _, worker := range w.workers {
		wg.Go(func() {
			worker.Run(ctx)
		})
	}
	wg.Wait()
}

func (w *Workers) Len() int {
	return len(w.workers)
}
