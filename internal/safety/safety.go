// Package safety tracks the one piece of state that outlives a session: the
// "safety notice seen" acknowledgement. It lives in Redis under a fixed key
// so a returning visitor is not shown the notice again, and it can be wiped
// in one operation by the emergency exit.
package safety

import (
	"context"
	"errors"
	"sync"

	"github.com/redis/go-redis/v9"
)

// noticeSeenKey is the fixed key the acknowledgement is stored under.
const noticeSeenKey = "safespace:notice-seen"

// Tracker reads and writes the safety-notice acknowledgement. With a nil
// Redis client it degrades to process-local memory.
type Tracker struct {
	rdb *redis.Client

	mu   sync.Mutex
	seen bool
}

// NewTracker creates a Tracker. rdb may be nil.
func NewTracker(rdb *redis.Client) *Tracker {
	return &Tracker{rdb: rdb}
}

// NoticeSeen reports whether the safety notice has been acknowledged.
func (t *Tracker) NoticeSeen(ctx context.Context) (bool, error) {
	if t.rdb == nil {
		t.mu.Lock()
		defer t.mu.Unlock()
		return t.seen, nil
	}
	val, err := t.rdb.Get(ctx, noticeSeenKey).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return val == "true", nil
}

// AcknowledgeNotice records that the safety notice was shown and accepted.
func (t *Tracker) AcknowledgeNotice(ctx context.Context) error {
	if t.rdb == nil {
		t.mu.Lock()
		t.seen = true
		t.mu.Unlock()
		return nil
	}
	return t.rdb.Set(ctx, noticeSeenKey, "true", 0).Err()
}

// Clear removes all persisted state. It is a single deletion regardless of
// how much has been stored, which is what the emergency exit relies on.
func (t *Tracker) Clear(ctx context.Context) error {
	if t.rdb == nil {
		t.mu.Lock()
		t.seen = false
		t.mu.Unlock()
		return nil
	}
	return t.rdb.Del(ctx, noticeSeenKey).Err()
}
