package request

type CreateFrequentFlyerCardRequest struct {
	AirlineCode string  `json:"airline_code" validate:"required,min=2,max=3"`
	CardNumber  string  `json:"card_number" validate:"required,max=50"`
	CardType    *string `json:"card_type,omitempty" validate:"omitempty,max=50"`
}
