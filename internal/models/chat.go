package models

import "time"

// ChatRoom is a topical room users can join. Exactly one room may be current
// for the session at a time.
type ChatRoom struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	Description      string `json:"description"`
	Category         string `json:"category"`
	ParticipantCount int    `json:"participant_count"`
	Active           bool   `json:"active"`
}

// ChatMessage is a message inside a room. Messages are append-only and never
// mix across rooms.
type ChatMessage struct {
	ID           int64     `json:"id"`
	RoomID       int64     `json:"room_id"`
	Content      string    `json:"content"`
	AuthorHandle string    `json:"author_handle"`
	CreatedAt    time.Time `json:"created_at"`
}
