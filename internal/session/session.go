package session

import (
	"context" // Context for Redis operations
	"time"    // Time durations
)

// Cookie names used by the view layer.
const (
	CookieName      = "session" // Authenticated session token
	FlashCookieName = "flash"   // One-shot flash message ID
)

// FlashTTL bounds how long an unread flash message survives.
const FlashTTL = 5 * time.Minute

// Flash is a one-shot notice rendered on the next page load.
type Flash struct {
	Message string `json:"message"` // User-facing text
	Level   string `json:"level"`   // success, warning or danger
}

// Store tracks authenticated sessions and flash messages. Tokens are opaque:
// nothing about the user is derivable from them.
type Store interface {
	// Create opens a session for userID and returns its token.
	Create(ctx context.Context, userID uint) (string, error)
	// UserID resolves a token. The bool reports whether the session exists.
	UserID(ctx context.Context, token string) (uint, bool, error)
	// Destroy ends a session. Destroying an unknown token is not an error.
	Destroy(ctx context.Context, token string) error
	// SetFlash stores a one-shot message under id.
	SetFlash(ctx context.Context, id string, f Flash) error
	// PopFlash returns and deletes the message under id, or nil.
	PopFlash(ctx context.Context, id string) (*Flash, error)
}
