// Package models contains data structures for the application's domain models.
package models

import "time"

// Category classifies a post by the kind of support it seeks or offers.
type Category string

const (
	CategorySupport   Category = "support"
	CategoryShare     Category = "share"
	CategoryAdvice    Category = "advice"
	CategoryHealing   Category = "healing"
	CategoryResources Category = "resources"
)

// Valid reports whether c is one of the known post categories.
func (c Category) Valid() bool {
	switch c {
	case CategorySupport, CategoryShare, CategoryAdvice, CategoryHealing, CategoryResources:
		return true
	}
	return false
}

// MaxPostContentLen is the upper bound on post content length.
const MaxPostContentLen = 2000

// Post is an anonymous community post. Demo posts carry small sequential IDs;
// posts created during the session use the creation time in milliseconds.
type Post struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title,omitempty"`
	Content       string    `json:"content"`
	Category      Category  `json:"category"`
	AuthorHandle  string    `json:"author_handle"`
	CreatedAt     time.Time `json:"created_at"`
	LikesCount    int       `json:"likes_count"`
	CommentsCount int       `json:"comments_count"`
	// Liked indicates whether the session user liked this post.
	Liked bool `json:"liked"`
}

// Comment is an anonymous comment on a post.
type Comment struct {
	ID           int64     `json:"id"`
	PostID       int64     `json:"post_id"`
	Content      string    `json:"content"`
	AuthorHandle string    `json:"author_handle"`
	CreatedAt    time.Time `json:"created_at"`
}
