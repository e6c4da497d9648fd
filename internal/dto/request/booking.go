package request

type CreateBookingRequest struct {
	Source      string         `json:"source" validate:"omitempty,max=20"`
	PNR         *string        `json:"pnr,omitempty" validate:"omitempty,max=10"`
	BookingCode *string        `json:"booking_code,omitempty" validate:"omitempty,max=50"`
	BookingData map[string]any `json:"booking_data,omitempty"`
	TotalPrice  *float64       `json:"total_price,omitempty" validate:"omitempty,gt=0"`
	Currency    string         `json:"currency" validate:"omitempty,len=3"`
	HoldMinutes *int           `json:"hold_minutes,omitempty" validate:"omitempty,min=1,max=1440"`
}

// AddBookingPassengerRequest attaches a traveller to a booking. When
// PassengerID is set the name fields are copied from the stored passenger
// at link time; otherwise the inline fields are used as the snapshot.
type AddBookingPassengerRequest struct {
	PassengerID   *string `json:"passenger_id,omitempty" validate:"omitempty,uuid4"`
	PassengerType *string `json:"passenger_type,omitempty" validate:"omitempty,oneof=ADT CHD INF"`
	Title         *string `json:"title,omitempty" validate:"omitempty,max=10"`
	FirstName     *string `json:"first_name,omitempty" validate:"omitempty,max=100"`
	LastName      *string `json:"last_name,omitempty" validate:"omitempty,max=100"`
	DateOfBirth   *string `json:"date_of_birth,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type TicketBookingRequest struct {
	// Keyed by booking passenger link ID, value is the ticket number.
	Tickets map[string]string `json:"tickets" validate:"required,min=1"`
}

type UpdateBookingDataRequest struct {
	BookingData map[string]any `json:"booking_data" validate:"required"`
}
