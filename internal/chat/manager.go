// Package chat owns the lifecycle of being in a chat room: joining, leaving,
// and the simulated live feed that pushes synthetic messages while a room is
// joined.
package chat

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"safespace/internal/demo"
	"safespace/internal/models"
	"safespace/internal/observability"
	"safespace/internal/store"
)

// Manager joins and leaves rooms and runs at most one live-feed task at a
// time. Starting a new task implicitly cancels the previous one.
type Manager struct {
	mu      sync.Mutex
	store   *store.Store
	source  demo.ContentSource
	period  time.Duration
	chance  float64
	gate    func() float64
	sleep   func(ctx context.Context, d time.Duration) error
	joinLag time.Duration
	onEvent func(models.ChatMessage)
	task    *feedTask
}

// feedTask is the cancellable handle for one room's live feed. The tick
// re-checks task currency and the store's current room at fire time, so a
// cancelled task can never append against a stale room.
type feedTask struct {
	roomID int64
	cancel context.CancelFunc
	done   chan struct{}
}

// Option configures a Manager.
type Option func(*Manager)

// WithPeriod sets the live-feed tick period.
func WithPeriod(d time.Duration) Option { return func(m *Manager) { m.period = d } }

// WithChance sets the per-tick probability of synthesizing a message.
func WithChance(p float64) Option { return func(m *Manager) { m.chance = p } }

// WithGate replaces the random gate; tests force it true or false.
func WithGate(gate func() float64) Option { return func(m *Manager) { m.gate = gate } }

// WithJoinLatency sets the simulated delay of the join call.
func WithJoinLatency(d time.Duration) Option { return func(m *Manager) { m.joinLag = d } }

// WithOnMessage registers a callback invoked after a feed message lands in
// the store. Used to push the message to connected renderers.
func WithOnMessage(fn func(models.ChatMessage)) Option { return func(m *Manager) { m.onEvent = fn } }

// NewManager creates a Manager bound to the store and content source.
func NewManager(s *store.Store, source demo.ContentSource, opts ...Option) *Manager {
	m := &Manager{
		store:  s,
		source: source,
		period: 5 * time.Second,
		chance: 0.3,
		gate:   rand.Float64,
		sleep:  sleepCtx,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Join enters a room: it loads the initial message backlog, records the room
// as current, and starts the live feed. Joining while already in a room
// cancels the previous feed first, so Join is safe to call repeatedly.
func (m *Manager) Join(ctx context.Context, roomID int64) error {
	if _, ok := m.store.Room(roomID); !ok {
		return models.NewNotFoundError("chat room", roomID)
	}
	if err := m.sleep(ctx, m.joinLag); err != nil {
		return models.NewTransientError("Failed to join chat room", err)
	}

	m.mu.Lock()
	m.stopLocked()
	m.store.SetCurrentRoom(roomID)
	m.store.SetMessages(m.source.Messages(roomID))

	feedCtx, cancel := context.WithCancel(context.Background())
	task := &feedTask{roomID: roomID, cancel: cancel, done: make(chan struct{})}
	m.task = task
	m.mu.Unlock()

	go m.run(feedCtx, task)
	return nil
}

// Leave exits the current room and stops the live feed. After Leave returns,
// no further message can be appended for the left room, even if a tick was
// pending when Leave was called.
func (m *Manager) Leave() {
	m.mu.Lock()
	m.stopLocked()
	m.store.SetCurrentRoom(0)
	m.mu.Unlock()
}

// CurrentRoom returns the joined room id, zero when none.
func (m *Manager) CurrentRoom() int64 {
	return m.store.CurrentRoom()
}

// stopLocked cancels the active task. Callers hold m.mu, which also excludes
// a concurrent tick: a tick already past the select either finishes before
// stopLocked acquires the lock or observes m.task changed and bails.
func (m *Manager) stopLocked() {
	if m.task != nil {
		m.task.cancel()
		m.task = nil
	}
}

func (m *Manager) run(ctx context.Context, task *feedTask) {
	defer close(task.done)
	ticker := time.NewTicker(m.period)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.tick(task)
		}
	}
}

// tick is one firing of the live-feed timer. Each tick independently decides
// whether to synthesize a message; the room check happens here, at fire time,
// not at schedule time.
func (m *Manager) tick(task *feedTask) {
	m.mu.Lock()
	if m.task != task {
		m.mu.Unlock()
		return
	}
	roomID := m.store.CurrentRoom()
	if roomID == 0 || roomID != task.roomID {
		m.mu.Unlock()
		return
	}
	if m.gate() >= m.chance {
		m.mu.Unlock()
		observability.FeedTicks.WithLabelValues("skip").Inc()
		return
	}
	msg := m.source.FeedMessage(roomID)
	m.store.AppendMessage(msg)
	onEvent := m.onEvent
	m.mu.Unlock()

	observability.FeedTicks.WithLabelValues("message").Inc()
	if onEvent != nil {
		onEvent(msg)
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
