// Package roomwatch periodically mirrors arena room counts into Redis and the
// log for ops visibility. It observes only; rooms are never expired or
// removed on a timer — departure or a successful match are the only things
// that change a room's state.
package roomwatch

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	statsKey  = "arena:rooms"
	interval  = 30 * time.Second
	opTimeout = 1500 * time.Millisecond
)

// StatsSource is the slice of the arena service this package needs.
type StatsSource interface {
	Stats() (open, full int)
}

func Run(ctx context.Context, rdc *redis.Client, src StatsSource) {
	tk := time.NewTicker(interval)
	go func() {
		defer tk.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-tk.C:
				mirrorOnce(ctx, rdc, src)
			}
		}
	}()
}

func mirrorOnce(ctx context.Context, rdc *redis.Client, src StatsSource) {
	open, full := src.Stats()

	opCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if err := rdc.HSet(opCtx, statsKey, "open", open, "full", full).Err(); err != nil {
		zap.L().Warn("roomwatch.mirror", zap.Error(err))
		return
	}
	zap.L().Debug("roomwatch.stats", zap.Int("open", open), zap.Int("full", full))
}
