package orchestrator

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// StartSweeper runs the expiry sweep on a fixed interval until ctx is
// cancelled. The returned channel closes when the sweeper exits.
func (o *Orchestrator) StartSweeper(ctx context.Context, interval time.Duration) <-chan struct{} {
	done := make(chan struct{})

	go func() {
		defer close(done)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if _, err := o.CleanupCache(ctx); err != nil {
					o.logger.Warn("cache sweep failed", zap.Error(err))
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return done
}
