// internal/wire/wire.go
package wire

import (
	"net/http"

	"travel-booking/internal/adaptor"
	"travel-booking/internal/data/repository"
	"travel-booking/internal/kafka"
	"travel-booking/internal/usecase"
	"travel-booking/pkg/cache"
	"travel-booking/pkg/middleware"
	"travel-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds everything the server needs to run.
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring initializes the service layer and the router.
func Wiring(
	repo *repository.Repository,
	config *utils.Config,
	sessionCache *cache.SessionCache,
	producer *kafka.Producer,
	logger *zap.Logger,
) *App {
	service := usecase.NewService(repo, config, sessionCache, producer, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, repo, config, logger)

	return &App{
		Router:  router,
		Service: service,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	// Apply routes
	wireAuth(r, handler.Auth, repo, config, logger)
	wireUser(r, handler.User, repo, config, logger)
	wireBooking(r, handler.Booking, repo, config, logger)
	wireSession(r, handler.Session, repo, config, logger)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
