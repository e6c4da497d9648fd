package repository

import (
	"travel-booking/pkg/database"

	"go.uber.org/zap"
)

// Repository groups every table-level store. All mutation statements stamp
// updated_at server-side and deletes with dependents run their cascade or
// nullify statements in the same transaction, so callers above this layer
// never maintain those invariants themselves.
type Repository struct {
	User             UserRepository
	Passenger        PassengerRepository
	FFCard           FrequentFlyerCardRepository
	Booking          BookingRepository
	BookingPassenger BookingPassengerRepository
	Session          SessionRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:             NewUserRepository(db, log),
		Passenger:        NewPassengerRepository(db, log),
		FFCard:           NewFrequentFlyerCardRepository(db, log),
		Booking:          NewBookingRepository(db, log),
		BookingPassenger: NewBookingPassengerRepository(db, log),
		Session:          NewSessionRepository(db, log),
	}
}
