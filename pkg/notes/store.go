// Package notes provides the append-only learning-log store. Agents
// append a note per study session and query history by user and topic.
package notes

import (
	"context"
	"time"
)

// Session status values recorded on a note.
const (
	StatusCompleted  = "completed"
	StatusInProgress = "in_progress"
	StatusFailed     = "failed"
)

// Note is one learning-log entry. Score is the recorded recall score in
// [0,1]; nil means the session was not scored.
type Note struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Topic     string    `json:"topic"`
	Content   string    `json:"content,omitempty"`
	Score     *float64  `json:"score,omitempty"`
	Status    string    `json:"status"`
	Tags      []string  `json:"tags,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Store is the learning-log capability. Append-only: notes are never
// updated or deleted.
type Store interface {
	// Append records a note. ID and CreatedAt are filled when empty.
	Append(ctx context.Context, note Note) error

	// Query returns notes for the user, newest first. A non-empty topic
	// filters by case-insensitive substring match; limit <= 0 means no
	// limit.
	Query(ctx context.Context, userID, topic string, limit int) ([]Note, error)

	Close() error
}
