package entity

import (
	"time"

	"github.com/google/uuid"
)

// BookingPassenger links a booking to a traveller. Name, type and date of
// birth are snapshots taken at link time: editing the saved passenger later
// must not rewrite booking history. PassengerID is nulled when the saved
// passenger is deleted; the snapshot keeps the row informative.
type BookingPassenger struct {
	BaseSimple
	BookingID     uuid.UUID     `db:"booking_id"`
	PassengerID   *uuid.UUID    `db:"passenger_id"`
	PassengerType PassengerType `db:"passenger_type"`
	Title         *string       `db:"title"`
	FirstName     string        `db:"first_name"`
	LastName      string        `db:"last_name"`
	DateOfBirth   *time.Time    `db:"date_of_birth"`
	TicketNumber  *string       `db:"ticket_number"`
}
