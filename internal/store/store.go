// Package store holds the in-memory content state for a running client
// session. The store is the single owner of all lists; other components keep
// at most an id into it, never a copy they mutate.
package store

import (
	"sync"

	"safespace/internal/models"
)

// Store is the mutable content state. All operations are synchronous and
// side-effect only the store itself. No operation can drive a count negative.
type Store struct {
	mu          sync.RWMutex
	posts       []models.Post
	rooms       []models.ChatRoom
	messages    []models.ChatMessage
	comments    map[int64][]models.Comment
	resources   []models.Resource
	session     models.Session
	currentRoom int64
	loading     bool
}

// Snapshot is a read-only copy of the store handed to renderers. Renderers
// must not mutate it; mutating a snapshot has no effect on the store.
type Snapshot struct {
	Posts       []models.Post               `json:"posts"`
	Rooms       []models.ChatRoom           `json:"rooms"`
	Messages    []models.ChatMessage        `json:"messages"`
	Comments    map[int64][]models.Comment  `json:"comments,omitempty"`
	Resources   []models.Resource           `json:"resources"`
	Session     models.Session              `json:"session"`
	CurrentRoom int64                       `json:"current_room"`
	Loading     bool                        `json:"loading"`
}

// New creates an empty Store.
func New() *Store {
	return &Store{comments: make(map[int64][]models.Comment)}
}

// Posts returns a copy of the post feed, most recent first.
func (s *Store) Posts() []models.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Post, len(s.posts))
	copy(out, s.posts)
	return out
}

// SetPosts replaces the feed, or extends it when appendTo is set.
func (s *Store) SetPosts(posts []models.Post, appendTo bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if appendTo {
		s.posts = append(s.posts, posts...)
		return
	}
	s.posts = append([]models.Post(nil), posts...)
}

// AddPost prepends a newly created post to the feed.
func (s *Store) AddPost(post models.Post) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts = append([]models.Post{post}, s.posts...)
}

// Post returns a copy of the post with the given id.
func (s *Store) Post(id int64) (models.Post, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.posts {
		if p.ID == id {
			return p, true
		}
	}
	return models.Post{}, false
}

// ToggleLike flips the liked flag and adjusts the like count by one, clamping
// at zero. It reports whether the post exists.
func (s *Store) ToggleLike(id int64) (models.Post, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.posts {
		if s.posts[i].ID != id {
			continue
		}
		p := &s.posts[i]
		if p.Liked {
			p.Liked = false
			if p.LikesCount > 0 {
				p.LikesCount--
			}
		} else {
			p.Liked = true
			p.LikesCount++
		}
		return *p, true
	}
	return models.Post{}, false
}

// Rooms returns a copy of the chat room list.
func (s *Store) Rooms() []models.ChatRoom {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.ChatRoom, len(s.rooms))
	copy(out, s.rooms)
	return out
}

// SetRooms replaces the chat room list.
func (s *Store) SetRooms(rooms []models.ChatRoom) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms = append([]models.ChatRoom(nil), rooms...)
}

// Room returns the room with the given id.
func (s *Store) Room(id int64) (models.ChatRoom, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.rooms {
		if r.ID == id {
			return r, true
		}
	}
	return models.ChatRoom{}, false
}

// Messages returns a copy of the current room's message sequence.
func (s *Store) Messages() []models.ChatMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.ChatMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

// SetMessages replaces the message backlog, used on room join.
func (s *Store) SetMessages(messages []models.ChatMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append([]models.ChatMessage(nil), messages...)
}

// AppendMessage appends one message to the sequence.
func (s *Store) AppendMessage(msg models.ChatMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, msg)
}

// Comments returns a copy of the loaded comments for a post.
func (s *Store) Comments(postID int64) []models.Comment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Comment, len(s.comments[postID]))
	copy(out, s.comments[postID])
	return out
}

// SetComments replaces the loaded comments for a post.
func (s *Store) SetComments(postID int64, comments []models.Comment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.comments[postID] = append([]models.Comment(nil), comments...)
}

// AppendComment appends one comment to a post's loaded list. The post's
// comment count is maintained separately via IncrementCommentCount.
func (s *Store) AppendComment(comment models.Comment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.comments[comment.PostID] = append(s.comments[comment.PostID], comment)
}

// IncrementCommentCount bumps the counter shown on the post. The counter and
// the stored comment list are maintained independently.
func (s *Store) IncrementCommentCount(postID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.posts {
		if s.posts[i].ID == postID {
			s.posts[i].CommentsCount++
			return true
		}
	}
	return false
}

// Resources returns a copy of the resource list.
func (s *Store) Resources() []models.Resource {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Resource, len(s.resources))
	copy(out, s.resources)
	return out
}

// SetResources replaces the resource list.
func (s *Store) SetResources(resources []models.Resource) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resources = append([]models.Resource(nil), resources...)
}

// Session returns the current session.
func (s *Store) Session() models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

// SetSession replaces the session.
func (s *Store) SetSession(session models.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = session
}

// CurrentRoom returns the id of the joined room, zero when none.
func (s *Store) CurrentRoom() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentRoom
}

// SetCurrentRoom records the joined room id, zero to clear.
func (s *Store) SetCurrentRoom(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentRoom = id
}

// TryBeginLoad acquires the store-wide load guard. It returns false when a
// load is already outstanding; callers must treat that as a no-op, not queue.
func (s *Store) TryBeginLoad() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loading {
		return false
	}
	s.loading = true
	return true
}

// EndLoad releases the load guard.
func (s *Store) EndLoad() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
}

// Loading reports whether a load is outstanding.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Reset clears all content and the session, used on logout and emergency
// exit. The load guard is cleared too.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts = nil
	s.rooms = nil
	s.messages = nil
	s.comments = make(map[int64][]models.Comment)
	s.resources = nil
	s.session = models.Session{}
	s.currentRoom = 0
	s.loading = false
}

// Snapshot copies the store for rendering.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := Snapshot{
		Posts:       make([]models.Post, len(s.posts)),
		Rooms:       make([]models.ChatRoom, len(s.rooms)),
		Messages:    make([]models.ChatMessage, len(s.messages)),
		Resources:   make([]models.Resource, len(s.resources)),
		Session:     s.session,
		CurrentRoom: s.currentRoom,
		Loading:     s.loading,
	}
	copy(snap.Posts, s.posts)
	copy(snap.Rooms, s.rooms)
	copy(snap.Messages, s.messages)
	copy(snap.Resources, s.resources)
	if len(s.comments) > 0 {
		snap.Comments = make(map[int64][]models.Comment, len(s.comments))
		for id, list := range s.comments {
			snap.Comments[id] = append([]models.Comment(nil), list...)
		}
	}
	return snap
}
