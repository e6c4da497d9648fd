package request

type CreateSessionRequest struct {
	UserID   *string        `json:"user_id,omitempty" validate:"omitempty,uuid4"`
	Context  map[string]any `json:"context,omitempty"`
	TTLHours *int           `json:"ttl_hours,omitempty" validate:"omitempty,min=1,max=720"`
}

type SaveSessionStateRequest struct {
	AgentState map[string]any `json:"agent_state"`
	Context    map[string]any `json:"context"`
}

type TouchSessionRequest struct {
	TTLHours int `json:"ttl_hours" validate:"required,min=1,max=720"`
}
