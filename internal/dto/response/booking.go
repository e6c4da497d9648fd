package response

import (
	"time"

	"travel-booking/internal/data/entity"
)

type BookingResponse struct {
	ID          string                      `json:"id"`
	UserID      *string                     `json:"user_id,omitempty"`
	PNR         *string                     `json:"pnr,omitempty"`
	BookingCode *string                     `json:"booking_code,omitempty"`
	Source      string                      `json:"source"`
	Status      entity.BookingStatus        `json:"status"`
	BookingData entity.Document             `json:"booking_data,omitempty"`
	TotalPrice  *float64                    `json:"total_price,omitempty"`
	Currency    string                      `json:"currency"`
	ExpiresAt   *time.Time                  `json:"expires_at,omitempty"`
	Passengers  []*BookingPassengerResponse `json:"passengers,omitempty"`
	CreatedAt   time.Time                   `json:"created_at"`
	UpdatedAt   time.Time                   `json:"updated_at"`
}

type BookingPassengerResponse struct {
	ID            string    `json:"id"`
	BookingID     string    `json:"booking_id"`
	PassengerID   *string   `json:"passenger_id,omitempty"`
	PassengerType string    `json:"passenger_type"`
	Title         *string   `json:"title,omitempty"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	DateOfBirth   *string   `json:"date_of_birth,omitempty"`
	TicketNumber  *string   `json:"ticket_number,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// ReapResponse reports one sweep of the expiry reaper.
type ReapResponse struct {
	Reaped     int      `json:"reaped"`
	BookingIDs []string `json:"booking_ids,omitempty"`
}

func BookingToResponse(b *entity.Booking) *BookingResponse {
	resp := &BookingResponse{
		ID:          b.ID.String(),
		PNR:         b.PNR,
		BookingCode: b.BookingCode,
		Source:      b.Source,
		Status:      b.Status,
		BookingData: b.BookingData,
		TotalPrice:  b.TotalPrice,
		Currency:    b.Currency,
		ExpiresAt:   b.ExpiresAt,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}

	if b.UserID != nil {
		id := b.UserID.String()
		resp.UserID = &id
	}

	return resp
}

func BookingPassengerToResponse(link *entity.BookingPassenger) *BookingPassengerResponse {
	resp := &BookingPassengerResponse{
		ID:            link.ID.String(),
		BookingID:     link.BookingID.String(),
		PassengerType: string(link.PassengerType),
		Title:         link.Title,
		FirstName:     link.FirstName,
		LastName:      link.LastName,
		DateOfBirth:   formatDate(link.DateOfBirth),
		TicketNumber:  link.TicketNumber,
		CreatedAt:     link.CreatedAt,
	}

	if link.PassengerID != nil {
		id := link.PassengerID.String()
		resp.PassengerID = &id
	}

	return resp
}
