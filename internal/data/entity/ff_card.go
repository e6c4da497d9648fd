package entity

import "github.com/google/uuid"

// FrequentFlyerCard is unique per (user_id, airline_code, card_number).
type FrequentFlyerCard struct {
	BaseSimple
	UserID      uuid.UUID `db:"user_id"`
	AirlineCode string    `db:"airline_code"`
	CardNumber  string    `db:"card_number"`
	CardType    *string   `db:"card_type"`
}
