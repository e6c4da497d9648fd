package request

type CreatePassengerRequest struct {
	PassengerType   string  `json:"passenger_type" validate:"omitempty,oneof=ADT CHD INF"`
	Title           *string `json:"title,omitempty" validate:"omitempty,max=10"`
	FirstName       string  `json:"first_name" validate:"required,max=100"`
	LastName        string  `json:"last_name" validate:"required,max=100"`
	DateOfBirth     *string `json:"date_of_birth,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Gender          *string `json:"gender,omitempty" validate:"omitempty,oneof=M F"`
	Nationality     *string `json:"nationality,omitempty" validate:"omitempty,max=3"`
	PassportNumber  *string `json:"passport_number,omitempty" validate:"omitempty,max=20"`
	PassportExpiry  *string `json:"passport_expiry,omitempty" validate:"omitempty,datetime=2006-01-02"`
	PassportCountry *string `json:"passport_country,omitempty" validate:"omitempty,max=3"`
	IsDefault       bool    `json:"is_default"`
}

type UpdatePassengerRequest struct {
	PassengerType   *string `json:"passenger_type,omitempty" validate:"omitempty,oneof=ADT CHD INF"`
	Title           *string `json:"title,omitempty" validate:"omitempty,max=10"`
	FirstName       *string `json:"first_name,omitempty" validate:"omitempty,max=100"`
	LastName        *string `json:"last_name,omitempty" validate:"omitempty,max=100"`
	DateOfBirth     *string `json:"date_of_birth,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Gender          *string `json:"gender,omitempty" validate:"omitempty,oneof=M F"`
	Nationality     *string `json:"nationality,omitempty" validate:"omitempty,max=3"`
	PassportNumber  *string `json:"passport_number,omitempty" validate:"omitempty,max=20"`
	PassportExpiry  *string `json:"passport_expiry,omitempty" validate:"omitempty,datetime=2006-01-02"`
	PassportCountry *string `json:"passport_country,omitempty" validate:"omitempty,max=3"`
}
