package entity

import (
	"time"

	"github.com/google/uuid"
)

type PassengerType string

const (
	PassengerTypeAdult  PassengerType = "ADT"
	PassengerTypeChild  PassengerType = "CHD"
	PassengerTypeInfant PassengerType = "INF"
)

type Passenger struct {
	Base
	UserID          uuid.UUID     `db:"user_id"`
	PassengerType   PassengerType `db:"passenger_type"`
	Title           *string       `db:"title"`
	FirstName       string        `db:"first_name"`
	LastName        string        `db:"last_name"`
	DateOfBirth     *time.Time    `db:"date_of_birth"`
	Gender          *string       `db:"gender"`
	Nationality     *string       `db:"nationality"`
	PassportNumber  *string       `db:"passport_number"`
	PassportExpiry  *time.Time    `db:"passport_expiry"`
	PassportCountry *string       `db:"passport_country"`
	IsDefault       bool          `db:"is_default"`
}
