package model

import (
	"context"
	"time"
)

// Role identifies who produced a turn.
type Role string

const (
	RoleStudent   Role = "student"
	RoleCounselor Role = "counselor"
)

// Turn is one message in a counseling conversation, stamped with the
// conversation state that was active when it was recorded.
type Turn struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	State     State     `json:"state"`
}

// HistoryRepository stores the bounded, ordered turn history of a session.
type HistoryRepository interface {
	// Append adds a turn to the session's history and trims the oldest
	// turns once the configured bound is exceeded.
	Append(ctx context.Context, sessionID string, turn Turn) error

	// Load retrieves the session's history, oldest first.
	Load(ctx context.Context, sessionID string) ([]Turn, error)

	// Clear removes all history for a session.
	Clear(ctx context.Context, sessionID string) error

	// Count returns the number of stored turns for a session.
	Count(ctx context.Context, sessionID string) (int, error)
}
