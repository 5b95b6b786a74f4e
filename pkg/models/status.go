package models

import "time"

// StatusType discriminates the content of a status update.
type StatusType string

const (
	StatusText  StatusType = "text"
	StatusImage StatusType = "image"
	StatusVideo StatusType = "video"
)

// StatusReaction is a single-emoji acknowledgment. A user holds at most one
// reaction per status; the store enforces the invariant on write.
type StatusReaction struct {
	Emoji  string `json:"emoji"`
	UserID string `json:"user_id"`
}

// StatusUpdate is an ephemeral story-like post. Id and timestamp are
// assigned by the store on post; client-supplied values are ignored.
// Viewers only ever accumulates.
type StatusUpdate struct {
	ID           string           `json:"id"`
	SenderID     string           `json:"sender_id"`
	SenderName   string           `json:"sender_name"`
	SenderAvatar string           `json:"sender_avatar,omitempty"`
	Type         StatusType       `json:"type"`
	Content      string           `json:"content"`
	// BackgroundColor applies to text statuses only.
	BackgroundColor string           `json:"background_color,omitempty"`
	Timestamp       time.Time        `json:"timestamp"`
	Viewers         []string         `json:"viewers"`
	Reactions       []StatusReaction `json:"reactions"`
}

// ExpiredAt reports whether the status has passed the given lifetime at
// the supplied instant.
func (s StatusUpdate) ExpiredAt(now time.Time, lifetime time.Duration) bool {
	return now.Sub(s.Timestamp) > lifetime
}
