package app

import (
	"context"
	"io"
	"log/slog"
	"time"
)

const maxBackoff = 30 * time.Second

type refresher interface {
	Refresh(ctx context.Context) error
}

// StartPoller launches a background goroutine that refreshes the store at
// interval, backing off exponentially after failures. It returns immediately.
func StartPoller(ctx context.Context, store refresher, interval time.Duration, logger *slog.Logger) {
	if interval <= 0 {
		return
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	go poll(ctx, store, interval, logger.With("component", "poller"))
}

func poll(ctx context.Context, store refresher, interval time.Duration, logger *slog.Logger) {
	failures := 0
	timer := time.NewTimer(interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		if err := store.Refresh(ctx); err != nil {
			failures++
		} else {
			failures = 0
		}

		wait := calculateBackoff(failures, interval)
		if failures > 0 {
			logger.Warn("auto refresh failing", "failures", failures, "retry_in", wait)
		}
		timer.Reset(wait)
	}
}

// calculateBackoff doubles base once per consecutive failure, capped at
// maxBackoff. The result is never shorter than base.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 || base >= maxBackoff {
		return base
	}
	wait := base
	for i := 0; i < failures; i++ {
		wait *= 2
		if wait >= maxBackoff {
			return maxBackoff
		}
	}
	return wait
}
