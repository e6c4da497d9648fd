package wire

import (
	"travel-booking/internal/adaptor"
	"travel-booking/internal/data/repository"
	"travel-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Agent session routes are unauthenticated on purpose: sessions exist
// before a user logs in, and the token itself is the credential.
func wireSession(
	r chi.Router,
	sessionHandler *adaptor.SessionHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	r.Post("/api/sessions", sessionHandler.CreateSession)
	r.Get("/api/sessions/{id}", sessionHandler.GetSession)
	r.Get("/api/sessions/token/{token}", sessionHandler.Lookup)
	r.Put("/api/sessions/{id}/state", sessionHandler.SaveState)
	r.Put("/api/sessions/{id}/touch", sessionHandler.Touch)
	r.Delete("/api/sessions/{id}", sessionHandler.DeleteSession)
}
