package health

import (
	"context"
	"log/slog"
	"time"

	"github.com/spf13/viper"
)

type pinger interface {
	PingContext(ctx context.Context) error
}

type statusSetter interface {
	SetServing(serving bool)
}

// Worker pings the database on a fixed interval and reports the result to
// the gRPC health service.
type Worker struct {
	db          pinger
	status      statusSetter
	interval    time.Duration
	pingTimeout time.Duration
	stopCh      chan struct{}
	serving     bool
}

// NewWorker creates a health worker. The interval comes from
// health.interval_seconds.
func NewWorker(db pinger, status statusSetter) *Worker {
	intervalSeconds := viper.GetInt("health.interval_seconds")
	if intervalSeconds == 0 {
		intervalSeconds = 15
	}

	return &Worker{
		db:          db,
		status:      status,
		interval:    time.Duration(intervalSeconds) * time.Second,
		pingTimeout: 3 * time.Second,
		stopCh:      make(chan struct{}),
	}
}

// Start checks once immediately, then on every tick until ctx is done or
// Stop is called.
func (w *Worker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	slog.Info("Health worker started", "interval", w.interval)
	w.check(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Health worker shutting down")

			return
		case <-w.stopCh:
			slog.Info("Health worker stopped")

			return
		case <-ticker.C:
			w.check(ctx)
		}
	}
}

// Stop stops the worker.
func (w *Worker) Stop() {
	close(w.stopCh)
}

func (w *Worker) check(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, w.pingTimeout)
	defer cancel()

	err := w.db.PingContext(pingCtx)
	serving := err == nil

	switch {
	case !serving && w.serving:
		slog.Error("Database ping failed, reporting NOT_SERVING", "error", err)
	case !serving:
		slog.Warn("Database ping failed", "error", err)
	case !w.serving:
		slog.Info("Database reachable, reporting SERVING")
	}

	w.serving = serving
	w.status.SetServing(serving)
}
