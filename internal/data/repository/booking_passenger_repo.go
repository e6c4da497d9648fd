package repository

import (
	"context"
	"fmt"

	"travel-booking/internal/data/entity"
	"travel-booking/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingPassengerRepository interface {
	Create(ctx context.Context, link *entity.BookingPassenger) error
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.BookingPassenger, error)
}

type bookingPassengerRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingPassengerRepository(db database.PgxIface, log *zap.Logger) BookingPassengerRepository {
	return &bookingPassengerRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking_passenger")),
	}
}

// Create stores the link with its snapshot fields as passed in. The caller
// copies the saved passenger's data at link time; nothing here ever reads
// the live user_passengers row again.
func (r *bookingPassengerRepository) Create(ctx context.Context, link *entity.BookingPassenger) error {
	query := `
		INSERT INTO booking_passengers (id, booking_id, passenger_id, passenger_type,
		                                title, first_name, last_name, date_of_birth,
		                                ticket_number, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.Exec(ctx, query,
		link.ID,
		link.BookingID,
		link.PassengerID,
		link.PassengerType,
		link.Title,
		link.FirstName,
		link.LastName,
		link.DateOfBirth,
		link.TicketNumber,
		link.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create booking passenger link",
			zap.Error(err),
			zap.String("booking_id", link.BookingID.String()),
		)
		return fmt.Errorf("create passenger link for booking %s: %w",
			link.BookingID.String(), mapPgError(err))
	}

	return nil
}

func (r *bookingPassengerRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.BookingPassenger, error) {
	query := `
		SELECT id, booking_id, passenger_id, passenger_type, title, first_name,
		       last_name, date_of_birth, ticket_number, created_at
		FROM booking_passengers
		WHERE booking_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, bookingID)
	if err != nil {
		r.log.Error("Failed to find passenger links by booking ID",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("find passenger links by booking ID %s: %w", bookingID.String(), err)
	}
	defer rows.Close()

	var links []*entity.BookingPassenger
	for rows.Next() {
		var link entity.BookingPassenger
		err := rows.Scan(
			&link.ID,
			&link.BookingID,
			&link.PassengerID,
			&link.PassengerType,
			&link.Title,
			&link.FirstName,
			&link.LastName,
			&link.DateOfBirth,
			&link.TicketNumber,
			&link.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan passenger link row: %w", err)
		}
		links = append(links, &link)
	}

	return links, rows.Err()
}
