package response

import (
	"time"

	"travel-booking/internal/data/entity"
)

type FrequentFlyerCardResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	AirlineCode string    `json:"airline_code"`
	CardNumber  string    `json:"card_number"`
	CardType    *string   `json:"card_type,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func FrequentFlyerCardToResponse(card *entity.FrequentFlyerCard) *FrequentFlyerCardResponse {
	return &FrequentFlyerCardResponse{
		ID:          card.ID.String(),
		UserID:      card.UserID.String(),
		AirlineCode: card.AirlineCode,
		CardNumber:  card.CardNumber,
		CardType:    card.CardType,
		CreatedAt:   card.CreatedAt,
	}
}
