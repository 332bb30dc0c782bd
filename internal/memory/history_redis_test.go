package memory

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHistory(t *testing.T) *RedisHistory {
	t.Helper()
	srv := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewRedisHistory(rdb)
}

func TestRedisHistoryKeepsDuplicateLines(t *testing.T) {
	h := newTestHistory(t)
	ctx := context.Background()

	require.NoError(t, h.Append(ctx, "k", "User: ok\n", 1))
	require.NoError(t, h.Append(ctx, "k", "Ada: sure thing", 2))
	require.NoError(t, h.Append(ctx, "k", "User: ok\n", 3))

	lines, err := h.Latest(ctx, "k", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"User: ok\n", "Ada: sure thing", "User: ok\n"}, lines)
}

func TestRedisHistoryLatestWindowChronological(t *testing.T) {
	h := newTestHistory(t)
	ctx := context.Background()

	for i, line := range []string{"one", "two", "three", "four", "five"} {
		require.NoError(t, h.Append(ctx, "k", line, float64(i)))
	}

	lines, err := h.Latest(ctx, "k", 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"three", "four", "five"}, lines)
}

func TestRedisHistoryLineTextMayContainSeparator(t *testing.T) {
	h := newTestHistory(t)
	ctx := context.Background()

	require.NoError(t, h.Append(ctx, "k", "User: a|b|c", 1))

	lines, err := h.Latest(ctx, "k", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"User: a|b|c"}, lines)
}

func TestRedisHistoryExists(t *testing.T) {
	h := newTestHistory(t)
	ctx := context.Background()

	ok, err := h.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, h.Append(ctx, "k", "User: hi\n", 1))

	ok, err = h.Exists(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
}
