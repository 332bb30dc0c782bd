package memory

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// memberSep splits the unique id from the line text. A uuid never
// contains it, so Cut on the first occurrence is safe.
const memberSep = "|"

// RedisHistory backs HistoryStore with one sorted set per CompanionKey.
// Scores are insertion times (unix millis) or seed sequence numbers.
type RedisHistory struct {
	rdb *redis.Client
}

func NewRedisHistory(rdb *redis.Client) *RedisHistory {
	return &RedisHistory{rdb: rdb}
}

func (h *RedisHistory) Exists(ctx context.Context, key string) (bool, error) {
	n, err := h.rdb.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Append tags the entry with a fresh uuid before the ZAdd. Sorted sets
// key on the member, so a line sent twice would otherwise collapse into
// one entry with an updated score; the tag keeps both occurrences.
func (h *RedisHistory) Append(ctx context.Context, key, member string, score float64) error {
	entry := uuid.NewString() + memberSep + member
	return h.rdb.ZAdd(ctx, key, redis.Z{Score: score, Member: entry}).Err()
}

func (h *RedisHistory) Latest(ctx context.Context, key string, n int64) ([]string, error) {
	// Highest scores first, then flipped back to chronological order.
	entries, err := h.rdb.ZRevRange(ctx, key, 0, n-1).Result()
	if err != nil {
		return nil, err
	}
	lines := make([]string, len(entries))
	for i, entry := range entries {
		if _, text, ok := strings.Cut(entry, memberSep); ok {
			lines[i] = text
		} else {
			lines[i] = entry
		}
	}
	for i, j := 0, len(lines)-1; i < j; i, j = i+1, j-1 {
		lines[i], lines[j] = lines[j], lines[i]
	}
	return lines, nil
}
