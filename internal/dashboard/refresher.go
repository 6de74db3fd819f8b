package dashboard

import (
	"context"
	"time"
)

const initialBackoff = time.Second

// Run refreshes the catalog immediately and then every interval until the
// context is cancelled. Failed refreshes are retried with exponential backoff
// capped at the refresh interval.
func (s *Service) Run(ctx context.Context) error {
	s.logger.Info("catalog refresher started", "interval", s.interval)
	s.metrics.RefresherRunning.Set(1)
	defer s.metrics.RefresherRunning.Set(0)

	backoff := initialBackoff
	for {
		wait := s.interval
		if err := s.RefreshCatalog(ctx); err != nil {
			if ctx.Err() != nil {
				s.logger.Info("catalog refresher stopping", "reason", ctx.Err())
				return nil
			}
			wait = backoff
			s.logger.Error("catalog refresh failed", "error", err, "retry_in", wait)
			backoff = nextBackoff(backoff, s.interval)
		} else {
			backoff = initialBackoff
		}

		if !sleepWithContext(ctx, wait) {
			s.logger.Info("catalog refresher stopping", "reason", ctx.Err())
			return nil
		}
	}
}

func nextBackoff(current, maxBackoff time.Duration) time.Duration {
	next := current * 2
	if next > maxBackoff {
		return maxBackoff
	}
	return next
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}

	timer := clock.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.Chan():
		return true
	}
}
