package store

import (
	"testing"

	"safespace/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestToggleLike(t *testing.T) {
	s := New()
	s.SetPosts([]models.Post{{ID: 1, LikesCount: 5}}, false)

	post, ok := s.ToggleLike(1)
	assert.True(t, ok)
	assert.True(t, post.Liked)
	assert.Equal(t, 6, post.LikesCount)

	post, ok = s.ToggleLike(1)
	assert.True(t, ok)
	assert.False(t, post.Liked)
	assert.Equal(t, 5, post.LikesCount)
}

func TestToggleLike_ClampsAtZero(t *testing.T) {
	s := New()
	// A post already marked liked with a zero count must not go negative on
	// unlike.
	s.SetPosts([]models.Post{{ID: 1, LikesCount: 0, Liked: true}}, false)

	post, ok := s.ToggleLike(1)
	assert.True(t, ok)
	assert.False(t, post.Liked)
	assert.Equal(t, 0, post.LikesCount)
}

func TestToggleLike_UnknownPost(t *testing.T) {
	s := New()
	_, ok := s.ToggleLike(42)
	assert.False(t, ok)
}

func TestAddPostPrepends(t *testing.T) {
	s := New()
	s.SetPosts([]models.Post{{ID: 1}, {ID: 2}}, false)
	s.AddPost(models.Post{ID: 99})

	posts := s.Posts()
	assert.Len(t, posts, 3)
	assert.Equal(t, int64(99), posts[0].ID)
}

func TestSetPostsAppend(t *testing.T) {
	s := New()
	s.SetPosts([]models.Post{{ID: 1}}, false)
	s.SetPosts([]models.Post{{ID: 2}}, true)
	assert.Len(t, s.Posts(), 2)

	s.SetPosts([]models.Post{{ID: 3}}, false)
	posts := s.Posts()
	assert.Len(t, posts, 1)
	assert.Equal(t, int64(3), posts[0].ID)
}

func TestTryBeginLoad(t *testing.T) {
	s := New()

	assert.True(t, s.TryBeginLoad())
	assert.True(t, s.Loading())

	// A second load while one is in flight must refuse.
	assert.False(t, s.TryBeginLoad())

	s.EndLoad()
	assert.False(t, s.Loading())
	assert.True(t, s.TryBeginLoad())
}

func TestIncrementCommentCount(t *testing.T) {
	s := New()
	s.SetPosts([]models.Post{{ID: 1, CommentsCount: 3}}, false)

	assert.True(t, s.IncrementCommentCount(1))
	post, _ := s.Post(1)
	assert.Equal(t, 4, post.CommentsCount)

	// Counter moves even when no comments are stored for the post.
	assert.Empty(t, s.Comments(1))

	assert.False(t, s.IncrementCommentCount(42))
}

func TestCommentsAreScopedToPost(t *testing.T) {
	s := New()
	s.SetComments(1, []models.Comment{{ID: 10, PostID: 1}})
	s.SetComments(2, []models.Comment{{ID: 20, PostID: 2}, {ID: 21, PostID: 2}})

	assert.Len(t, s.Comments(1), 1)
	assert.Len(t, s.Comments(2), 2)
	s.AppendComment(models.Comment{ID: 11, PostID: 1})
	assert.Len(t, s.Comments(1), 2)
	assert.Len(t, s.Comments(2), 2)
}

func TestReset(t *testing.T) {
	s := New()
	s.SetPosts([]models.Post{{ID: 1}}, false)
	s.SetRooms([]models.ChatRoom{{ID: 1}})
	s.SetMessages([]models.ChatMessage{{ID: 1}})
	s.SetComments(1, []models.Comment{{ID: 1}})
	s.SetResources([]models.Resource{{ID: 1}})
	s.SetSession(models.Session{LoggedIn: true, Handle: "Anonymous_abc123"})
	s.SetCurrentRoom(1)

	s.Reset()

	assert.Empty(t, s.Posts())
	assert.Empty(t, s.Rooms())
	assert.Empty(t, s.Messages())
	assert.Empty(t, s.Comments(1))
	assert.Empty(t, s.Resources())
	assert.False(t, s.Session().LoggedIn)
	assert.Zero(t, s.CurrentRoom())
}

func TestSnapshotIsDetached(t *testing.T) {
	s := New()
	s.SetPosts([]models.Post{{ID: 1, Content: "original"}}, false)

	snap := s.Snapshot()
	snap.Posts[0].Content = "mutated"

	posts := s.Posts()
	assert.Equal(t, "original", posts[0].Content)
}
