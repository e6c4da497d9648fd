package repository

import (
	"context"
	"fmt"

	"travel-booking/internal/data/entity"
	"travel-booking/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type FrequentFlyerCardRepository interface {
	Create(ctx context.Context, card *entity.FrequentFlyerCard) error
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.FrequentFlyerCard, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

type ffCardRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewFrequentFlyerCardRepository(db database.PgxIface, log *zap.Logger) FrequentFlyerCardRepository {
	return &ffCardRepository{
		db:  db,
		log: log.With(zap.String("repository", "ff_card")),
	}
}

// Create relies on the unique (user_id, airline_code, card_number) index;
// the losing writer of a race gets ErrDuplicateKey from the constraint.
func (r *ffCardRepository) Create(ctx context.Context, card *entity.FrequentFlyerCard) error {
	query := `
		INSERT INTO user_ff_cards (id, user_id, airline_code, card_number, card_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		card.ID,
		card.UserID,
		card.AirlineCode,
		card.CardNumber,
		card.CardType,
		card.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create FF card",
			zap.Error(err),
			zap.String("user_id", card.UserID.String()),
			zap.String("airline_code", card.AirlineCode),
		)
		return fmt.Errorf("create FF card %s/%s: %w", card.AirlineCode, card.CardNumber, mapPgError(err))
	}

	return nil
}

func (r *ffCardRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.FrequentFlyerCard, error) {
	query := `
		SELECT id, user_id, airline_code, card_number, card_type, created_at
		FROM user_ff_cards
		WHERE user_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to find FF cards by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find FF cards by user ID %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var cards []*entity.FrequentFlyerCard
	for rows.Next() {
		var card entity.FrequentFlyerCard
		err := rows.Scan(
			&card.ID,
			&card.UserID,
			&card.AirlineCode,
			&card.CardNumber,
			&card.CardType,
			&card.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan FF card row: %w", err)
		}
		cards = append(cards, &card)
	}

	return cards, rows.Err()
}

func (r *ffCardRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	query := `DELETE FROM user_ff_cards WHERE id = $1 AND user_id = $2`

	result, err := r.db.Exec(ctx, query, id, userID)
	if err != nil {
		r.log.Error("Failed to delete FF card",
			zap.Error(err),
			zap.String("ff_card_id", id.String()),
		)
		return fmt.Errorf("delete FF card %s: %w", id.String(), mapPgError(err))
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete FF card %s: %w", id.String(), entity.ErrNotFound)
	}

	return nil
}
