package response

import (
	"time"

	"travel-booking/internal/data/entity"
)

type SessionResponse struct {
	ID           string          `json:"id"`
	UserID       *string         `json:"user_id,omitempty"`
	SessionToken string          `json:"session_token"`
	AgentState   entity.Document `json:"agent_state,omitempty"`
	Context      entity.Document `json:"context,omitempty"`
	ExpiresAt    *time.Time      `json:"expires_at,omitempty"`
	Expired      bool            `json:"expired"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func SessionToResponse(s *entity.Session, now time.Time) *SessionResponse {
	resp := &SessionResponse{
		ID:           s.ID.String(),
		SessionToken: s.SessionToken,
		AgentState:   s.AgentState,
		Context:      s.Context,
		ExpiresAt:    s.ExpiresAt,
		Expired:      s.IsExpired(now),
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}

	if s.UserID != nil {
		id := s.UserID.String()
		resp.UserID = &id
	}

	return resp
}
