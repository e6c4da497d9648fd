package adaptor

import (
	"encoding/json"
	"net/http"

	"travel-booking/internal/dto/request"
	"travel-booking/internal/usecase"
	"travel-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type SessionHandler struct {
	service usecase.SessionService
	log     *zap.Logger
}

func NewSessionHandler(service usecase.SessionService, log *zap.Logger) *SessionHandler {
	return &SessionHandler{
		service: service,
		log:     log.With(zap.String("handler", "session")),
	}
}

// CreateSession handles POST /api/sessions
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req request.CreateSessionRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.ResponseBadRequest(w, "Invalid request body", nil)
			return
		}
	}

	session, err := h.service.CreateSession(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create session")
		return
	}

	utils.ResponseCreated(w, "success", session)
}

// GetSession handles GET /api/sessions/{id}
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	sessionID, err := utils.ParseUUID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid session ID", nil)
		return
	}

	session, err := h.service.GetSession(r.Context(), sessionID)
	if err != nil {
		handleServiceError(h.log, w, err, "get session")
		return
	}

	utils.ResponseSuccess(w, "success", session)
}

// Lookup handles GET /api/sessions/token/{token}
func (h *SessionHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	if token == "" {
		utils.ResponseBadRequest(w, "Token is required", nil)
		return
	}

	session, err := h.service.Lookup(r.Context(), token)
	if err != nil {
		handleServiceError(h.log, w, err, "look up session")
		return
	}

	utils.ResponseSuccess(w, "success", session)
}

// SaveState handles PUT /api/sessions/{id}/state
func (h *SessionHandler) SaveState(w http.ResponseWriter, r *http.Request) {
	sessionID, err := utils.ParseUUID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid session ID", nil)
		return
	}

	var req request.SaveSessionStateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	session, err := h.service.SaveState(r.Context(), sessionID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "save session state")
		return
	}

	utils.ResponseSuccess(w, "success", session)
}

// Touch handles PUT /api/sessions/{id}/touch
func (h *SessionHandler) Touch(w http.ResponseWriter, r *http.Request) {
	sessionID, err := utils.ParseUUID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid session ID", nil)
		return
	}

	var req request.TouchSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	session, err := h.service.Touch(r.Context(), sessionID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "touch session")
		return
	}

	utils.ResponseSuccess(w, "success", session)
}

// DeleteSession handles DELETE /api/sessions/{id}
func (h *SessionHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID, err := utils.ParseUUID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid session ID", nil)
		return
	}

	if err := h.service.DeleteSession(r.Context(), sessionID); err != nil {
		handleServiceError(h.log, w, err, "delete session")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}
