package repository

import (
	"context"
	"fmt"

	"travel-booking/internal/data/entity"
	"travel-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByPNR(ctx context.Context, pnr string) (*entity.Booking, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)

	// Lifecycle transitions. Each is a conditional single-row UPDATE: the
	// status guard lives in the WHERE clause so concurrent callers race on
	// the store's atomic update, not on a read-then-write in Go.
	Confirm(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	Ticket(ctx context.Context, id uuid.UUID, tickets map[uuid.UUID]string) (*entity.Booking, error)
	Cancel(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	ReapExpired(ctx context.Context) ([]*entity.Booking, error)

	UpdateData(ctx context.Context, id uuid.UUID, data entity.Document) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, user_id, pnr, booking_code, source, status,
		                      booking_data, total_price, currency, expires_at,
		                      created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.UserID,
		booking.PNR,
		booking.BookingCode,
		booking.Source,
		booking.Status,
		booking.BookingData,
		booking.TotalPrice,
		booking.Currency,
		booking.ExpiresAt,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
			zap.String("source", booking.Source),
		)
		return fmt.Errorf("create booking %s: %w", booking.ID.String(), mapPgError(err))
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `
		SELECT id, user_id, pnr, booking_code, source, status, booking_data,
		       total_price, currency, expires_at, created_at, updated_at
		FROM bookings
		WHERE id = $1
	`

	booking, err := r.scanBooking(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), mapPgError(err))
	}
	return booking, nil
}

func (r *bookingRepository) FindByPNR(ctx context.Context, pnr string) (*entity.Booking, error) {
	query := `
		SELECT id, user_id, pnr, booking_code, source, status, booking_data,
		       total_price, currency, expires_at, created_at, updated_at
		FROM bookings
		WHERE pnr = $1
	`

	booking, err := r.scanBooking(r.db.QueryRow(ctx, query, pnr))
	if err != nil {
		return nil, fmt.Errorf("find booking by PNR %s: %w", pnr, mapPgError(err))
	}
	return booking, nil
}

func (r *bookingRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT id, user_id, pnr, booking_code, source, status, booking_data,
		       total_price, currency, expires_at, created_at, updated_at
		FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find bookings by user ID %s: %w", userID.String(), err)
	}
	defer rows.Close()

	return r.collectBookings(rows)
}

func (r *bookingRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE user_id = $1`

	var count int64
	if err := r.db.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count bookings by user ID %s: %w", userID.String(), err)
	}

	return count, nil
}

func (r *bookingRepository) Confirm(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `
		UPDATE bookings SET status = 'confirmed', updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
		RETURNING id, user_id, pnr, booking_code, source, status, booking_data,
		          total_price, currency, expires_at, created_at, updated_at
	`

	booking, err := r.scanBooking(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("confirm booking %s: %w", id.String(), mapPgError(err))
	}

	return booking, nil
}

// Cancel clears expires_at in the same statement: a cancelled booking must
// never look like a live reservation hold.
func (r *bookingRepository) Cancel(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `
		UPDATE bookings SET status = 'cancelled', expires_at = NULL, updated_at = NOW()
		WHERE id = $1 AND status IN ('pending', 'confirmed')
		RETURNING id, user_id, pnr, booking_code, source, status, booking_data,
		          total_price, currency, expires_at, created_at, updated_at
	`

	booking, err := r.scanBooking(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("cancel booking %s: %w", id.String(), mapPgError(err))
	}

	return booking, nil
}

// Ticket assigns a ticket number to every passenger link and flips the
// booking to ticketed in one transaction. Coverage is checked against the
// locked link rows; any gap or unknown link aborts with nothing written.
func (r *bookingRepository) Ticket(ctx context.Context, id uuid.UUID, tickets map[uuid.UUID]string) (*entity.Booking, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("ticket booking %s: begin: %w", id.String(), err)
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx,
		`SELECT id FROM booking_passengers WHERE booking_id = $1 FOR UPDATE`, id)
	if err != nil {
		return nil, fmt.Errorf("ticket booking %s: lock links: %w", id.String(), err)
	}

	var linkIDs []uuid.UUID
	for rows.Next() {
		var linkID uuid.UUID
		if err := rows.Scan(&linkID); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan booking passenger ID: %w", err)
		}
		linkIDs = append(linkIDs, linkID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ticket booking %s: iterate links: %w", id.String(), err)
	}

	if len(linkIDs) == 0 || len(tickets) != len(linkIDs) {
		return nil, fmt.Errorf("ticket booking %s: %d tickets for %d passengers: %w",
			id.String(), len(tickets), len(linkIDs), entity.ErrIncompleteTicketing)
	}
	for _, linkID := range linkIDs {
		if _, ok := tickets[linkID]; !ok {
			return nil, fmt.Errorf("ticket booking %s: passenger link %s has no ticket: %w",
				id.String(), linkID.String(), entity.ErrIncompleteTicketing)
		}
	}

	for _, linkID := range linkIDs {
		_, err := tx.Exec(ctx,
			`UPDATE booking_passengers SET ticket_number = $2 WHERE id = $1`,
			linkID, tickets[linkID])
		if err != nil {
			return nil, fmt.Errorf("assign ticket to link %s: %w", linkID.String(), mapPgError(err))
		}
	}

	statusQuery := `
		UPDATE bookings SET status = 'ticketed', updated_at = NOW()
		WHERE id = $1 AND status = 'confirmed'
		RETURNING id, user_id, pnr, booking_code, source, status, booking_data,
		          total_price, currency, expires_at, created_at, updated_at
	`
	booking, err := r.scanBooking(tx.QueryRow(ctx, statusQuery, id))
	if err != nil {
		return nil, fmt.Errorf("ticket booking %s: %w", id.String(), mapPgError(err))
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("ticket booking %s: commit: %w", id.String(), err)
	}

	r.log.Info("Booking ticketed",
		zap.String("booking_id", id.String()),
		zap.Int("passengers", len(linkIDs)),
	)
	return booking, nil
}

// ReapExpired cancels every pending booking whose hold has lapsed. The
// condition and the write are one statement, so concurrent sweeps each
// claim a disjoint set of rows and repeated calls are idempotent.
func (r *bookingRepository) ReapExpired(ctx context.Context) ([]*entity.Booking, error) {
	query := `
		UPDATE bookings SET status = 'cancelled', expires_at = NULL, updated_at = NOW()
		WHERE status = 'pending' AND expires_at IS NOT NULL AND expires_at < NOW()
		RETURNING id, user_id, pnr, booking_code, source, status, booking_data,
		          total_price, currency, expires_at, created_at, updated_at
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to reap expired bookings", zap.Error(err))
		return nil, fmt.Errorf("reap expired bookings: %w", err)
	}
	defer rows.Close()

	return r.collectBookings(rows)
}

func (r *bookingRepository) UpdateData(ctx context.Context, id uuid.UUID, data entity.Document) error {
	query := `UPDATE bookings SET booking_data = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, data)
	if err != nil {
		r.log.Error("Failed to update booking data",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return fmt.Errorf("update booking %s data: %w", id.String(), mapPgError(err))
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update booking %s data: %w", id.String(), entity.ErrNotFound)
	}

	return nil
}

// Delete removes the booking and its passenger links in one transaction.
func (r *bookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("delete booking %s: begin: %w", id.String(), err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM booking_passengers WHERE booking_id = $1`, id); err != nil {
		return fmt.Errorf("delete booking %s links: %w", id.String(), mapPgError(err))
	}

	result, err := tx.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete booking",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return fmt.Errorf("delete booking %s: %w", id.String(), mapPgError(err))
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete booking %s: %w", id.String(), entity.ErrNotFound)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("delete booking %s: commit: %w", id.String(), err)
	}

	r.log.Info("Booking deleted", zap.String("booking_id", id.String()))
	return nil
}

func (r *bookingRepository) scanBooking(row pgx.Row) (*entity.Booking, error) {
	var b entity.Booking
	err := row.Scan(
		&b.ID,
		&b.UserID,
		&b.PNR,
		&b.BookingCode,
		&b.Source,
		&b.Status,
		&b.BookingData,
		&b.TotalPrice,
		&b.Currency,
		&b.ExpiresAt,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bookingRepository) collectBookings(rows pgx.Rows) ([]*entity.Booking, error) {
	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := r.scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}
	return bookings, rows.Err()
}
