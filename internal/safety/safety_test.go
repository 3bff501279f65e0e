package safety

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisTracker(t *testing.T) (*Tracker, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewTracker(rdb), mr
}

func TestNoticeSeenLifecycle(t *testing.T) {
	tracker, _ := newRedisTracker(t)
	ctx := context.Background()

	seen, err := tracker.NoticeSeen(ctx)
	require.NoError(t, err)
	assert.False(t, seen)

	require.NoError(t, tracker.AcknowledgeNotice(ctx))

	seen, err = tracker.NoticeSeen(ctx)
	require.NoError(t, err)
	assert.True(t, seen)
}

func TestAcknowledgeIsIdempotent(t *testing.T) {
	tracker, _ := newRedisTracker(t)
	ctx := context.Background()

	require.NoError(t, tracker.AcknowledgeNotice(ctx))
	require.NoError(t, tracker.AcknowledgeNotice(ctx))

	seen, err := tracker.NoticeSeen(ctx)
	require.NoError(t, err)
	assert.True(t, seen)
}

func TestClearRemovesPersistedKey(t *testing.T) {
	tracker, mr := newRedisTracker(t)
	ctx := context.Background()

	require.NoError(t, tracker.AcknowledgeNotice(ctx))
	require.True(t, mr.Exists(noticeSeenKey))

	require.NoError(t, tracker.Clear(ctx))
	assert.False(t, mr.Exists(noticeSeenKey))

	seen, err := tracker.NoticeSeen(ctx)
	require.NoError(t, err)
	assert.False(t, seen)
}

func TestNilClientFallsBackToMemory(t *testing.T) {
	tracker := NewTracker(nil)
	ctx := context.Background()

	seen, err := tracker.NoticeSeen(ctx)
	require.NoError(t, err)
	assert.False(t, seen)

	require.NoError(t, tracker.AcknowledgeNotice(ctx))
	seen, _ = tracker.NoticeSeen(ctx)
	assert.True(t, seen)

	require.NoError(t, tracker.Clear(ctx))
	seen, _ = tracker.NoticeSeen(ctx)
	assert.False(t, seen)
}
