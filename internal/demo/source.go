// Package demo produces randomized but structurally valid demo records that
// stand in for a real data source. Every list it returns has a fixed size per
// request; only the handles and timestamps vary.
package demo

import "safespace/internal/models"

// ContentSource is the capability interface the rest of the application uses
// to obtain content. The production implementation is Generator; tests may
// substitute a deterministic fake or a seeded Generator.
type ContentSource interface {
	// Posts returns exactly one page (5 posts) of demo posts.
	Posts(page int) []models.Post
	// Comments returns the canned comment set for a post.
	Comments(postID int64) []models.Comment
	// Rooms returns the predefined chat rooms.
	Rooms() []models.ChatRoom
	// Messages returns the initial message backlog for a room.
	Messages(roomID int64) []models.ChatMessage
	// Resources returns the static support resources.
	Resources() []models.Resource
	// FeedMessage synthesizes one inbound live-feed message for a room.
	FeedMessage(roomID int64) models.ChatMessage
	// SessionHandle generates the anonymous handle for a new session.
	SessionHandle() string
}

// PostsPerPage is the fixed page size of the demo post feed.
const PostsPerPage = 5
