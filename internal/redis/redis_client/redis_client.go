package redis_client

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewRedisClient opens the pooled client backing room event fan-out and the
// room stats mirror. Fan-out holds one pub/sub connection per active room, so
// the pool scales with cores rather than a fixed size.
func NewRedisClient(host string, port int) (*redis.Client, error) {
	poolSize := runtime.NumCPU() * 8
	if poolSize > 512 {
		poolSize = 512
	}

	rc := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", host, port),
		PoolSize: poolSize,
	})

	// Fail fast at startup rather than on the first hosted room.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rc.Ping(ctx).Err(); err != nil {
		err = fmt.Errorf("redis connection failed: %w", err)
		zap.L().Error("arena.redis_connect", zap.Error(err))
		return nil, err
	}
	return rc, nil
}
