package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session persists an agent conversation turn by turn: agent_state carries
// the serialized agent graph state, context the search context.
type Session struct {
	Base
	UserID       *uuid.UUID `db:"user_id"`
	SessionToken string     `db:"session_token"`
	AgentState   Document   `db:"agent_state"`
	Context      Document   `db:"context"`
	ExpiresAt    *time.Time `db:"expires_at"`
}

// IsExpired reports whether the session has lapsed at the given instant.
// Expiry is advisory: lookups still return expired sessions, the caller
// decides what expiry means for it.
func (s *Session) IsExpired(now time.Time) bool {
	return s.ExpiresAt != nil && now.After(*s.ExpiresAt)
}
