package response

import (
	"time"

	"travel-booking/internal/data/entity"
)

type PassengerResponse struct {
	ID              string  `json:"id"`
	UserID          string  `json:"user_id"`
	PassengerType   string  `json:"passenger_type"`
	Title           *string `json:"title,omitempty"`
	FirstName       string  `json:"first_name"`
	LastName        string  `json:"last_name"`
	DateOfBirth     *string `json:"date_of_birth,omitempty"`
	Gender          *string `json:"gender,omitempty"`
	Nationality     *string `json:"nationality,omitempty"`
	PassportNumber  *string `json:"passport_number,omitempty"`
	PassportExpiry  *string `json:"passport_expiry,omitempty"`
	PassportCountry *string `json:"passport_country,omitempty"`
	IsDefault       bool    `json:"is_default"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func PassengerToResponse(p *entity.Passenger) *PassengerResponse {
	return &PassengerResponse{
		ID:              p.ID.String(),
		UserID:          p.UserID.String(),
		PassengerType:   string(p.PassengerType),
		Title:           p.Title,
		FirstName:       p.FirstName,
		LastName:        p.LastName,
		DateOfBirth:     formatDate(p.DateOfBirth),
		Gender:          p.Gender,
		Nationality:     p.Nationality,
		PassportNumber:  p.PassportNumber,
		PassportExpiry:  formatDate(p.PassportExpiry),
		PassportCountry: p.PassportCountry,
		IsDefault:       p.IsDefault,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}
