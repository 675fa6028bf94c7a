package app

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/five82/loupe/internal/source"
)

const (
	defaultRetryInterval = 2 * time.Second
	maxBackoff           = 30 * time.Second
)

// retrier is the part of the source selector the poller drives.
type retrier interface {
	Retry() (bool, error)
}

var _ retrier = (*source.Selector)(nil)

// StartPoller launches a background goroutine that restarts the active
// selection once a root that was missing at selection time appears. The
// watcher cannot observe a directory that does not exist, so this is the
// only way such a root is picked up. It returns immediately.
func StartPoller(ctx context.Context, sel retrier, interval time.Duration, logger zerolog.Logger) {
	if interval <= 0 {
		interval = defaultRetryInterval
	}
	go func() {
		failures := 0
		timer := time.NewTimer(interval)
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}
			if ctx.Err() != nil {
				return
			}

			if err := poll(sel, logger); err != nil {
				failures++
			} else {
				failures = 0
			}
			timer.Reset(calculateBackoff(failures, interval))
		}
	}()
}

func poll(sel retrier, logger zerolog.Logger) error {
	restarted, err := sel.Retry()
	if err != nil {
		logger.Warn().Err(err).Msg("restart watch failed")
		return err
	}
	if restarted {
		logger.Debug().Msg("pending root picked up")
	}
	return nil
}

// calculateBackoff doubles interval per consecutive failure, capped at
// maxBackoff.
func calculateBackoff(failures int, interval time.Duration) time.Duration {
	if failures <= 0 {
		return interval
	}
	d := interval
	for i := 0; i < failures; i++ {
		d *= 2
		if d >= maxBackoff {
			return maxBackoff
		}
	}
	return d
}
