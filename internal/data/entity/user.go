package entity

type User struct {
	Base
	Email        string  `db:"email"`
	PasswordHash string  `db:"password_hash"`
	FullName     *string `db:"full_name"`
	Phone        *string `db:"phone"`
	IsActive     bool    `db:"is_active"`
}
