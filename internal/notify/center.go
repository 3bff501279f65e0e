// Package notify keeps the dismissible toast notifications surfaced to the
// user. Notices auto-expire after a fixed visible duration and are never
// fatal; errors here inform, they do not interrupt.
package notify

import (
	"sync"
	"time"

	"safespace/internal/observability"
)

// Kind classifies a notice.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindWarning Kind = "warning"
)

// Notice is one toast entry.
type Notice struct {
	ID      int64     `json:"id"`
	Kind    Kind      `json:"kind"`
	Message string    `json:"message"`
	ShownAt time.Time `json:"shown_at"`
}

// Center holds active notices.
type Center struct {
	mu      sync.Mutex
	seq     int64
	ttl     time.Duration
	now     func() time.Time
	onPush  func(Notice)
	notices []Notice
}

// NewCenter creates a Center whose notices stay visible for ttl.
func NewCenter(ttl time.Duration) *Center {
	return &Center{ttl: ttl, now: time.Now}
}

// OnPush registers a callback invoked for every pushed notice, outside the
// Center's lock. Used to fan notices out to connected clients.
func (c *Center) OnPush(fn func(Notice)) {
	c.mu.Lock()
	c.onPush = fn
	c.mu.Unlock()
}

// Push adds a notice and returns it.
func (c *Center) Push(kind Kind, message string) Notice {
	c.mu.Lock()
	c.seq++
	n := Notice{ID: c.seq, Kind: kind, Message: message, ShownAt: c.now()}
	c.notices = append(c.notices, n)
	onPush := c.onPush
	c.mu.Unlock()

	observability.NoticesPushed.WithLabelValues(string(kind)).Inc()
	if onPush != nil {
		onPush(n)
	}
	return n
}

// Success pushes a success notice.
func (c *Center) Success(message string) Notice { return c.Push(KindSuccess, message) }

// Error pushes an error notice.
func (c *Center) Error(message string) Notice { return c.Push(KindError, message) }

// Warning pushes a warning notice.
func (c *Center) Warning(message string) Notice { return c.Push(KindWarning, message) }

// Active returns the still-visible notices, pruning expired ones.
func (c *Center) Active() []Notice {
	c.mu.Lock()
	defer c.mu.Unlock()
	cutoff := c.now().Add(-c.ttl)
	kept := c.notices[:0]
	for _, n := range c.notices {
		if n.ShownAt.After(cutoff) {
			kept = append(kept, n)
		}
	}
	c.notices = kept
	out := make([]Notice, len(c.notices))
	copy(out, c.notices)
	return out
}

// Dismiss removes one notice by id, reporting whether it was present.
func (c *Center) Dismiss(id int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, n := range c.notices {
		if n.ID == id {
			c.notices = append(c.notices[:i], c.notices[i+1:]...)
			return true
		}
	}
	return false
}

// DismissAll clears every notice, the Escape-key "close overlays" action.
func (c *Center) DismissAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notices = nil
}
