package demo

import (
	"strings"
	"sync"
	"time"

	"safespace/internal/models"

	"github.com/brianvoe/gofakeit/v6"
)

const handleCharset = "abcdefghijklmnopqrstuvwxyz0123456789"

// Jitter windows for generated timestamps.
const (
	postWindow    = 7 * 24 * time.Hour
	commentWindow = 24 * time.Hour
	messageWindow = time.Hour
)

// Generator is the production ContentSource. All randomness flows through a
// single gofakeit faker so a fixed seed yields a fully deterministic stream.
type Generator struct {
	mu    sync.Mutex
	faker *gofakeit.Faker
	now   func() time.Time
}

// NewGenerator creates a Generator. A zero seed falls back to the current
// time, matching how the seed factories initialize their random source.
func NewGenerator(seed int64) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{
		faker: gofakeit.New(seed),
		now:   time.Now,
	}
}

// Posts returns one page of demo posts. IDs continue across pages so that
// page 2 picks up where page 1 left off.
func (g *Generator) Posts(page int) []models.Post {
	g.mu.Lock()
	defer g.mu.Unlock()

	if page < 1 {
		page = 1
	}
	posts := make([]models.Post, 0, PostsPerPage)
	for i := 0; i < PostsPerPage; i++ {
		posts = append(posts, models.Post{
			ID:            int64((page-1)*PostsPerPage + i + 1),
			Title:         postTitles[i],
			Content:       postContents[i],
			Category:      postCategories[i],
			AuthorHandle:  g.namedHandle(),
			CreatedAt:     g.pastTime(postWindow),
			LikesCount:    g.faker.Number(2, 16),
			CommentsCount: g.faker.Number(1, 8),
		})
	}
	return posts
}

// Comments returns the canned comment set attributed to fresh handles.
func (g *Generator) Comments(postID int64) []models.Comment {
	g.mu.Lock()
	defer g.mu.Unlock()

	base := g.now().UnixMilli()
	comments := make([]models.Comment, 0, len(commentTexts))
	for i, text := range commentTexts {
		comments = append(comments, models.Comment{
			ID:           base + int64(i),
			PostID:       postID,
			Content:      text,
			AuthorHandle: g.namedHandle(),
			CreatedAt:    g.pastTime(commentWindow),
		})
	}
	return comments
}

// Rooms returns the five predefined chat rooms.
func (g *Generator) Rooms() []models.ChatRoom {
	rooms := make([]models.ChatRoom, len(roomDefs))
	copy(rooms, roomDefs)
	return rooms
}

// Messages returns the initial backlog for a room.
func (g *Generator) Messages(roomID int64) []models.ChatMessage {
	g.mu.Lock()
	defer g.mu.Unlock()

	base := g.now().UnixMilli()
	messages := make([]models.ChatMessage, 0, len(messageTexts))
	for i, text := range messageTexts {
		messages = append(messages, models.ChatMessage{
			ID:           base + int64(i),
			RoomID:       roomID,
			Content:      text,
			AuthorHandle: g.namedHandle(),
			CreatedAt:    g.pastTime(messageWindow),
		})
	}
	return messages
}

// Resources returns the static support resources.
func (g *Generator) Resources() []models.Resource {
	resources := make([]models.Resource, len(resourceDefs))
	copy(resources, resourceDefs)
	return resources
}

// FeedMessage synthesizes one inbound live-feed message.
func (g *Generator) FeedMessage(roomID int64) models.ChatMessage {
	g.mu.Lock()
	defer g.mu.Unlock()

	return models.ChatMessage{
		ID:           g.now().UnixMilli(),
		RoomID:       roomID,
		Content:      feedTexts[g.faker.Number(0, len(feedTexts)-1)],
		AuthorHandle: g.anonymousHandle(),
		CreatedAt:    g.now(),
	}
}

// SessionHandle generates the anonymous identity for a new session.
func (g *Generator) SessionHandle() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.anonymousHandle()
}

// namedHandle builds a "<FirstName>_<4 chars>" display handle.
func (g *Generator) namedHandle() string {
	return g.faker.FirstName() + "_" + g.suffix(4)
}

// anonymousHandle builds an "Anonymous_<6 chars>" display handle.
func (g *Generator) anonymousHandle() string {
	return "Anonymous_" + g.suffix(6)
}

func (g *Generator) suffix(n int) string {
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		b.WriteByte(handleCharset[g.faker.Number(0, len(handleCharset)-1)])
	}
	return b.String()
}

func (g *Generator) pastTime(window time.Duration) time.Time {
	jitter := time.Duration(g.faker.Number(0, int(window/time.Second))) * time.Second
	return g.now().Add(-jitter)
}
