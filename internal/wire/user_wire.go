package wire

import (
	"travel-booking/internal/adaptor"
	"travel-booking/internal/data/repository"
	"travel-booking/pkg/middleware"
	"travel-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// All user routes require authentication
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))

		// Profile
		r.Get("/api/user/profile", userHandler.GetProfile)
		r.Put("/api/user/profile", userHandler.UpdateProfile)
		r.Post("/api/user/deactivate", userHandler.DeactivateAccount)
		r.Delete("/api/user", userHandler.DeleteAccount)

		// Saved passengers
		r.Post("/api/user/passengers", userHandler.AddPassenger)
		r.Get("/api/user/passengers", userHandler.ListPassengers)
		r.Put("/api/user/passengers/{id}", userHandler.UpdatePassenger)
		r.Put("/api/user/passengers/{id}/default", userHandler.SetDefaultPassenger)
		r.Delete("/api/user/passengers/{id}", userHandler.DeletePassenger)

		// Frequent flyer cards
		r.Post("/api/user/ff-cards", userHandler.AddFrequentFlyerCard)
		r.Get("/api/user/ff-cards", userHandler.ListFrequentFlyerCards)
		r.Delete("/api/user/ff-cards/{id}", userHandler.DeleteFrequentFlyerCard)
	})
}
