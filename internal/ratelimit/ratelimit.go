package ratelimit

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Limiter answers whether one more request is allowed for an identifier.
type Limiter interface {
	Allow(ctx context.Context, identifier string) (bool, error)
}

// SlidingWindow keeps one sorted set per identifier in redis, scored by
// request time. A request is allowed while the set holds fewer than
// limit entries younger than the window.
type SlidingWindow struct {
	rdb    *redis.Client
	limit  int64
	window time.Duration
}

func NewSlidingWindow(rdb *redis.Client, limit int, window time.Duration) *SlidingWindow {
	if limit <= 0 {
		limit = 10
	}
	if window <= 0 {
		window = 10 * time.Second
	}
	return &SlidingWindow{rdb: rdb, limit: int64(limit), window: window}
}

func (l *SlidingWindow) Allow(ctx context.Context, identifier string) (bool, error) {
	key := "ratelimit:" + identifier
	now := time.Now()
	cutoff := now.Add(-l.window).UnixMilli()

	pipe := l.rdb.TxPipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(cutoff, 10))
	card := pipe.ZCard(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}

	if card.Val() >= l.limit {
		return false, nil
	}

	pipe = l.rdb.TxPipeline()
	pipe.ZAdd(ctx, key, redis.Z{
		Score:  float64(now.UnixMilli()),
		Member: uuid.NewString(),
	})
	pipe.Expire(ctx, key, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}
	return true, nil
}
