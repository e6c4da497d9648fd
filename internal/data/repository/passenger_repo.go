package repository

import (
	"context"
	"fmt"

	"travel-booking/internal/data/entity"
	"travel-booking/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PassengerRepository interface {
	Create(ctx context.Context, passenger *entity.Passenger) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Passenger, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Passenger, error)
	Update(ctx context.Context, passenger *entity.Passenger) error
	SetDefault(ctx context.Context, userID, passengerID uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type passengerRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPassengerRepository(db database.PgxIface, log *zap.Logger) PassengerRepository {
	return &passengerRepository{
		db:  db,
		log: log.With(zap.String("repository", "passenger")),
	}
}

func (r *passengerRepository) Create(ctx context.Context, passenger *entity.Passenger) error {
	query := `
		INSERT INTO user_passengers (id, user_id, passenger_type, title, first_name,
		                             last_name, date_of_birth, gender, nationality,
		                             passport_number, passport_expiry, passport_country,
		                             is_default, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := r.db.Exec(ctx, query,
		passenger.ID,
		passenger.UserID,
		passenger.PassengerType,
		passenger.Title,
		passenger.FirstName,
		passenger.LastName,
		passenger.DateOfBirth,
		passenger.Gender,
		passenger.Nationality,
		passenger.PassportNumber,
		passenger.PassportExpiry,
		passenger.PassportCountry,
		passenger.IsDefault,
		passenger.CreatedAt,
		passenger.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create passenger",
			zap.Error(err),
			zap.String("user_id", passenger.UserID.String()),
		)
		return fmt.Errorf("create passenger for user %s: %w", passenger.UserID.String(), mapPgError(err))
	}

	return nil
}

func (r *passengerRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Passenger, error) {
	query := `
		SELECT id, user_id, passenger_type, title, first_name, last_name,
		       date_of_birth, gender, nationality, passport_number, passport_expiry,
		       passport_country, is_default, created_at, updated_at
		FROM user_passengers
		WHERE id = $1
	`

	var p entity.Passenger
	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.UserID,
		&p.PassengerType,
		&p.Title,
		&p.FirstName,
		&p.LastName,
		&p.DateOfBirth,
		&p.Gender,
		&p.Nationality,
		&p.PassportNumber,
		&p.PassportExpiry,
		&p.PassportCountry,
		&p.IsDefault,
		&p.CreatedAt,
		&p.UpdatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("find passenger by ID %s: %w", id.String(), mapPgError(err))
	}

	return &p, nil
}

func (r *passengerRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Passenger, error) {
	query := `
		SELECT id, user_id, passenger_type, title, first_name, last_name,
		       date_of_birth, gender, nationality, passport_number, passport_expiry,
		       passport_country, is_default, created_at, updated_at
		FROM user_passengers
		WHERE user_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to find passengers by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find passengers by user ID %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var passengers []*entity.Passenger
	for rows.Next() {
		var p entity.Passenger
		err := rows.Scan(
			&p.ID,
			&p.UserID,
			&p.PassengerType,
			&p.Title,
			&p.FirstName,
			&p.LastName,
			&p.DateOfBirth,
			&p.Gender,
			&p.Nationality,
			&p.PassportNumber,
			&p.PassportExpiry,
			&p.PassportCountry,
			&p.IsDefault,
			&p.CreatedAt,
			&p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan passenger row: %w", err)
		}
		passengers = append(passengers, &p)
	}

	return passengers, rows.Err()
}

func (r *passengerRepository) Update(ctx context.Context, passenger *entity.Passenger) error {
	query := `
		UPDATE user_passengers
		SET passenger_type = $2, title = $3, first_name = $4, last_name = $5,
		    date_of_birth = $6, gender = $7, nationality = $8, passport_number = $9,
		    passport_expiry = $10, passport_country = $11, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		passenger.ID,
		passenger.PassengerType,
		passenger.Title,
		passenger.FirstName,
		passenger.LastName,
		passenger.DateOfBirth,
		passenger.Gender,
		passenger.Nationality,
		passenger.PassportNumber,
		passenger.PassportExpiry,
		passenger.PassportCountry,
	)

	if err != nil {
		r.log.Error("Failed to update passenger",
			zap.Error(err),
			zap.String("passenger_id", passenger.ID.String()),
		)
		return fmt.Errorf("update passenger %s: %w", passenger.ID.String(), mapPgError(err))
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update passenger %s: %w", passenger.ID.String(), entity.ErrNotFound)
	}

	return nil
}

// SetDefault enforces the one-default-per-user policy: the previous default
// is cleared and the new one set inside a single transaction, so no two
// rows ever hold is_default at once.
func (r *passengerRepository) SetDefault(ctx context.Context, userID, passengerID uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("set default passenger: begin: %w", err)
	}
	defer tx.Rollback(ctx)

	clearQuery := `
		UPDATE user_passengers SET is_default = FALSE, updated_at = NOW()
		WHERE user_id = $1 AND is_default AND id <> $2
	`
	if _, err := tx.Exec(ctx, clearQuery, userID, passengerID); err != nil {
		return fmt.Errorf("clear default passenger for user %s: %w", userID.String(), mapPgError(err))
	}

	setQuery := `
		UPDATE user_passengers SET is_default = TRUE, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
	`
	result, err := tx.Exec(ctx, setQuery, passengerID, userID)
	if err != nil {
		return fmt.Errorf("set default passenger %s: %w", passengerID.String(), mapPgError(err))
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("set default passenger %s: %w", passengerID.String(), entity.ErrNotFound)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("set default passenger: commit: %w", err)
	}

	return nil
}

// Delete nullifies passenger_id on referencing booking passenger links in
// the same transaction. The links keep their snapshot fields, so booking
// history stays readable after the saved passenger is gone.
func (r *passengerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("delete passenger %s: begin: %w", id.String(), err)
	}
	defer tx.Rollback(ctx)

	nullifyQuery := `UPDATE booking_passengers SET passenger_id = NULL WHERE passenger_id = $1`
	if _, err := tx.Exec(ctx, nullifyQuery, id); err != nil {
		return fmt.Errorf("nullify booking links for passenger %s: %w", id.String(), mapPgError(err))
	}

	result, err := tx.Exec(ctx, `DELETE FROM user_passengers WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete passenger",
			zap.Error(err),
			zap.String("passenger_id", id.String()),
		)
		return fmt.Errorf("delete passenger %s: %w", id.String(), mapPgError(err))
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete passenger %s: %w", id.String(), entity.ErrNotFound)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("delete passenger %s: commit: %w", id.String(), err)
	}

	return nil
}
