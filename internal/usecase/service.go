package usecase

import (
	"travel-booking/internal/data/repository"
	"travel-booking/internal/kafka"
	"travel-booking/pkg/cache"
	"travel-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth    AuthService
	User    UserService
	Booking BookingService
	Session SessionService
}

// NewService wires the service layer. sessionCache and producer may be nil
// when Redis or Kafka are not configured; the services degrade to the
// database alone.
func NewService(
	repo *repository.Repository,
	config *utils.Config,
	sessionCache *cache.SessionCache,
	producer *kafka.Producer,
	log *zap.Logger,
) *Service {
	session := NewSessionService(repo, config, sessionCache, log)

	return &Service{
		Auth:    NewAuthService(repo, config, sessionCache, log),
		User:    NewUserService(repo, log),
		Booking: NewBookingService(repo, config, producer, log),
		Session: session,
	}
}
