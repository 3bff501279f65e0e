package models

import "time"

// Session holds the per-client anonymous identity. The handle is generated
// once and stays fixed for the session's lifetime.
type Session struct {
	LoggedIn bool   `json:"logged_in"`
	Handle   string `json:"handle"`
}

// Resource is a static support link shown on the resources tab.
type Resource struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Category    string `json:"category"`
}

// Report is a user-submitted content report. Reports are acknowledged but not
// forwarded anywhere; the simulation has no moderation backend.
type Report struct {
	ID          string    `json:"id"`
	TargetType  string    `json:"target_type"`
	TargetID    int64     `json:"target_id"`
	Reason      string    `json:"reason"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
