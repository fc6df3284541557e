package worker

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Sweeper drops expired sessions.
type Sweeper interface {
	Sweep() int
}

// StartSessionSweeper runs Sweep every interval until ctx is cancelled. The
// returned channel is closed once the loop has exited.
func StartSessionSweeper(ctx context.Context, sweeper Sweeper, interval time.Duration, logger *zap.Logger) <-chan struct{} {
	done := make(chan struct{})
	if sweeper == nil || interval <= 0 {
		close(done)
		return done
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := sweeper.Sweep(); n > 0 {
					logger.Debug("expired sessions removed", zap.Int("count", n))
				}
			}
		}
	}()
	return done
}
