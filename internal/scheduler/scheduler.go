package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/crucial707/campsite/internal/metrics"
	"github.com/crucial707/campsite/internal/session"
	"github.com/robfig/cron/v3"
)

// sessionPurgeSchedule runs the purge at the top of every hour.
const sessionPurgeSchedule = "0 * * * *"

// Run starts the background cron that purges expired sessions so the
// sessions table does not grow without bound. Returns the cron so the
// caller can Stop it on shutdown.
func Run(store session.Store) *cron.Cron {
	c := cron.New()

	_, err := c.AddFunc(sessionPurgeSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		n, err := store.PurgeExpired(ctx)
		if err != nil {
			slog.Error("session purge", "err", err)
			return
		}
		if n > 0 {
			metrics.SessionsPurgedTotal.Add(float64(n))
			slog.Info("session purge", "purged", n)
		}
	})
	if err != nil {
		slog.Error("scheduler: invalid purge schedule", "err", err)
		return c
	}

	c.Start()
	return c
}
