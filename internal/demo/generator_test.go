package demo

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	namedHandleRe = regexp.MustCompile(`^[A-Za-z]+_[a-z0-9]{4}$`)
	anonHandleRe  = regexp.MustCompile(`^Anonymous_[a-z0-9]{6}$`)
)

func TestPostsPageShape(t *testing.T) {
	g := NewGenerator(1)

	for page := 1; page <= 3; page++ {
		posts := g.Posts(page)
		require.Len(t, posts, PostsPerPage)
		for i, p := range posts {
			assert.Equal(t, int64((page-1)*PostsPerPage+i+1), p.ID)
			assert.True(t, namedHandleRe.MatchString(p.AuthorHandle), "handle %q", p.AuthorHandle)
			assert.GreaterOrEqual(t, p.LikesCount, 2)
			assert.LessOrEqual(t, p.LikesCount, 16)
			assert.GreaterOrEqual(t, p.CommentsCount, 1)
			assert.LessOrEqual(t, p.CommentsCount, 8)
			assert.NotEmpty(t, p.Content)
			assert.True(t, p.Category.Valid())
		}
	}
}

func TestPostTimestampsWithinWindow(t *testing.T) {
	g := NewGenerator(7)
	now := time.Now()

	for _, p := range g.Posts(1) {
		age := now.Sub(p.CreatedAt)
		assert.GreaterOrEqual(t, age, -time.Second)
		assert.LessOrEqual(t, age, postWindow+time.Minute)
	}
}

func TestCommentsCannedSet(t *testing.T) {
	g := NewGenerator(3)
	now := time.Now()

	comments := g.Comments(42)
	require.Len(t, comments, 10)
	for _, c := range comments {
		assert.Equal(t, int64(42), c.PostID)
		assert.True(t, namedHandleRe.MatchString(c.AuthorHandle), "handle %q", c.AuthorHandle)
		assert.NotEmpty(t, c.Content)
		age := now.Sub(c.CreatedAt)
		assert.LessOrEqual(t, age, commentWindow+time.Minute)
	}
}

func TestRoomsFixed(t *testing.T) {
	g := NewGenerator(1)
	rooms := g.Rooms()
	require.Len(t, rooms, 5)

	names := make([]string, len(rooms))
	for i, r := range rooms {
		names[i] = r.Name
		assert.True(t, r.Active)
		assert.Greater(t, r.ParticipantCount, 0)
	}
	assert.Contains(t, names, "General Support & Discussion")
	assert.Contains(t, names, "Crisis & Immediate Support")
}

func TestMessagesBelongToRoom(t *testing.T) {
	g := NewGenerator(1)
	messages := g.Messages(3)
	require.Len(t, messages, 17)
	for _, m := range messages {
		assert.Equal(t, int64(3), m.RoomID)
		assert.NotEmpty(t, m.Content)
	}
}

func TestResourcesFixed(t *testing.T) {
	g := NewGenerator(1)
	resources := g.Resources()
	require.Len(t, resources, 4)
	for _, r := range resources {
		assert.NotEmpty(t, r.Title)
		assert.NotEmpty(t, r.URL)
	}
}

func TestFeedMessageShape(t *testing.T) {
	g := NewGenerator(1)
	msg := g.FeedMessage(2)
	assert.Equal(t, int64(2), msg.RoomID)
	assert.True(t, anonHandleRe.MatchString(msg.AuthorHandle), "handle %q", msg.AuthorHandle)
	assert.NotEmpty(t, msg.Content)
}

func TestSessionHandleShape(t *testing.T) {
	g := NewGenerator(1)
	assert.True(t, anonHandleRe.MatchString(g.SessionHandle()))
}

func TestSeededGeneratorIsDeterministic(t *testing.T) {
	a := NewGenerator(99)
	b := NewGenerator(99)

	postsA := a.Posts(1)
	postsB := b.Posts(1)
	require.Len(t, postsB, len(postsA))
	for i := range postsA {
		assert.Equal(t, postsA[i].AuthorHandle, postsB[i].AuthorHandle)
		assert.Equal(t, postsA[i].LikesCount, postsB[i].LikesCount)
		assert.Equal(t, postsA[i].CommentsCount, postsB[i].CommentsCount)
	}
	assert.Equal(t, a.SessionHandle(), b.SessionHandle())
}
