package wire

import (
	"travel-booking/internal/adaptor"
	"travel-booking/internal/data/repository"
	"travel-booking/pkg/middleware"
	"travel-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))

		// POST /api/bookings - Create a new pending booking hold
		r.Post("/api/bookings", bookingHandler.CreateBooking)

		// GET /api/user/bookings - View booking history
		r.Get("/api/user/bookings", bookingHandler.GetUserBookings)

		// Lookups
		r.Get("/api/bookings/{id}", bookingHandler.GetBooking)
		r.Get("/api/bookings/pnr/{pnr}", bookingHandler.GetBookingByPNR)

		// Lifecycle transitions
		r.Put("/api/bookings/{id}/confirm", bookingHandler.ConfirmBooking)
		r.Put("/api/bookings/{id}/ticket", bookingHandler.TicketBooking)
		r.Put("/api/bookings/{id}/cancel", bookingHandler.CancelBooking)
		r.Post("/api/bookings/reap", bookingHandler.ReapExpired)

		// Passengers and payload
		r.Post("/api/bookings/{id}/passengers", bookingHandler.AddPassenger)
		r.Get("/api/bookings/{id}/passengers", bookingHandler.ListPassengers)
		r.Put("/api/bookings/{id}/data", bookingHandler.UpdateBookingData)
		r.Delete("/api/bookings/{id}", bookingHandler.DeleteBooking)
	})
}
