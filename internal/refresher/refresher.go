package refresher

import (
	"context"
	"log/slog"
	"time"

	"github.com/onearthlouis/stock-radar/internal/service"
)

// Refreshable re-fetches the dashboard documents.
type Refreshable interface {
	Refresh(ctx context.Context) *service.RefreshResult
}

// Refresher drives periodic refreshes in server mode, mirroring the cadence
// on which the upstream collector regenerates the documents. A failed run
// is logged and waits for the next tick; it is never retried early.
type Refresher struct {
	dashboard Refreshable
	interval  time.Duration
	logger    *slog.Logger
}

func New(dashboard Refreshable, interval time.Duration, logger *slog.Logger) *Refresher {
	return &Refresher{
		dashboard: dashboard,
		interval:  interval,
		logger:    logger,
	}
}

func (r *Refresher) Start(ctx context.Context) error {
	r.logger.Info("refresher started", "interval", r.interval)

	r.runRefresh(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("refresher stopped")
			return ctx.Err()
		case <-ticker.C:
			r.runRefresh(ctx)
		}
	}
}

func (r *Refresher) runRefresh(ctx context.Context) {
	refreshCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	r.dashboard.Refresh(refreshCtx)
}
