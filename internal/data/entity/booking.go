package entity

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusTicketed  BookingStatus = "ticketed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

type Booking struct {
	Base
	UserID      *uuid.UUID    `db:"user_id"`
	PNR         *string       `db:"pnr"`
	BookingCode *string       `db:"booking_code"`
	Source      string        `db:"source"`
	Status      BookingStatus `db:"status"`
	BookingData Document      `db:"booking_data"`
	TotalPrice  *float64      `db:"total_price"`
	Currency    string        `db:"currency"`
	ExpiresAt   *time.Time    `db:"expires_at"`
}

// CanTransitionTo reports whether the status machine allows moving from the
// booking's current status to the target. Forward path is
// pending -> confirmed -> ticketed; pending and confirmed may cancel.
// Ticketed and cancelled are terminal.
func (b *Booking) CanTransitionTo(target BookingStatus) bool {
	switch target {
	case BookingStatusConfirmed:
		return b.Status == BookingStatusPending
	case BookingStatusTicketed:
		return b.Status == BookingStatusConfirmed
	case BookingStatusCancelled:
		return b.Status == BookingStatusPending || b.Status == BookingStatusConfirmed
	default:
		return false
	}
}

// IsTerminal reports whether no further transition is allowed.
func (b *Booking) IsTerminal() bool {
	return b.Status == BookingStatusTicketed || b.Status == BookingStatusCancelled
}

// IsExpired reports whether the reservation hold has lapsed at the given
// instant. Bookings without an expiry never expire.
func (b *Booking) IsExpired(now time.Time) bool {
	return b.ExpiresAt != nil && now.After(*b.ExpiresAt)
}
