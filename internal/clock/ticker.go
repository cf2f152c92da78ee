package clock

import (
	"context"
	"time"

	"studyBuddy/internal/logger"

	"go.uber.org/zap"
)

// startTickLocked registers the single tick source for the current run.
func (c *Clock) startTickLocked() {
	if c.tickInterval <= 0 {
		return
	}

	c.generation++
	ctx, cancel := context.WithCancel(context.Background())
	c.cancelTick = cancel

	go c.run(ctx, c.generation, c.tickInterval)
}

// stopTickLocked cancels the tick source. A tick that is already waiting for
// the lock sees a newer generation and does nothing.
func (c *Clock) stopTickLocked() {
	c.generation++
	if c.cancelTick != nil {
		c.cancelTick()
		c.cancelTick = nil
	}
}

func (c *Clock) run(ctx context.Context, generation int, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Debug("Clock: Ticker started", zap.Duration("interval", interval))

	for {
		select {
		case <-ticker.C:
			c.tick(generation)
		case <-ctx.Done():
			logger.Debug("Clock: Ticker stopped")
			return
		}
	}
}
