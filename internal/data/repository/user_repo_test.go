package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"travel-booking/internal/data/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userColumns = []string{
	"id", "email", "password_hash", "full_name", "phone", "is_active",
	"created_at", "updated_at",
}

func TestUserCreateDuplicateEmail(t *testing.T) {
	mockDb, repo := setupMockDB(t)
	defer mockDb.Close()

	now := time.Now()
	user := &entity.User{
		Base:         entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Email:        "jane@example.com",
		PasswordHash: "$2a$10$hash",
		IsActive:     true,
	}

	mockDb.ExpectExec("INSERT INTO users").
		WithArgs(user.ID, user.Email, user.PasswordHash, user.FullName,
			user.Phone, user.IsActive, user.CreatedAt, user.UpdatedAt).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	err := repo.User.Create(context.Background(), user)
	assert.ErrorIs(t, err, entity.ErrDuplicateKey)

	assert.NoError(t, mockDb.ExpectationsWereMet())
}

func TestUserFindByEmailNotFound(t *testing.T) {
	mockDb, repo := setupMockDB(t)
	defer mockDb.Close()

	mockDb.ExpectQuery("SELECT id, email, password_hash").
		WithArgs("ghost@example.com").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.User.FindByEmail(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, entity.ErrNotFound)

	assert.NoError(t, mockDb.ExpectationsWereMet())
}

func TestUserFindByEmail(t *testing.T) {
	mockDb, repo := setupMockDB(t)
	defer mockDb.Close()

	userID := uuid.MustParse("00000000-0000-0000-0000-000000000101")
	now := time.Now()

	mockDb.ExpectQuery("SELECT id, email, password_hash").
		WithArgs("jane@example.com").
		WillReturnRows(pgxmock.NewRows(userColumns).AddRow(
			userID, "jane@example.com", "$2a$10$hash", (*string)(nil),
			(*string)(nil), true, now, now,
		))

	user, err := repo.User.FindByEmail(context.Background(), "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)
	assert.True(t, user.IsActive)

	assert.NoError(t, mockDb.ExpectationsWereMet())
}

func TestUserDeleteCascade(t *testing.T) {
	mockDb, repo := setupMockDB(t)
	defer mockDb.Close()

	userID := uuid.MustParse("00000000-0000-0000-0000-000000000102")

	mockDb.ExpectBegin()

	// snapshot links lose their passenger reference but stay readable
	mockDb.ExpectExec("UPDATE booking_passengers SET passenger_id = NULL").
		WithArgs(userID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 2))

	mockDb.ExpectExec(regexp.QuoteMeta(`DELETE FROM user_passengers WHERE user_id = $1`)).
		WithArgs(userID).
		WillReturnResult(pgxmock.NewResult("DELETE", 2))

	mockDb.ExpectExec(regexp.QuoteMeta(`DELETE FROM user_ff_cards WHERE user_id = $1`)).
		WithArgs(userID).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	mockDb.ExpectExec(regexp.QuoteMeta(`DELETE FROM sessions WHERE user_id = $1`)).
		WithArgs(userID).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	// bookings survive the account as orphans
	mockDb.ExpectExec("UPDATE bookings SET user_id = NULL").
		WithArgs(userID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 3))

	mockDb.ExpectExec(regexp.QuoteMeta(`DELETE FROM users WHERE id = $1`)).
		WithArgs(userID).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	mockDb.ExpectCommit()

	err := repo.User.Delete(context.Background(), userID)
	require.NoError(t, err)

	assert.NoError(t, mockDb.ExpectationsWereMet())
}

func TestUserDeleteNotFound(t *testing.T) {
	mockDb, repo := setupMockDB(t)
	defer mockDb.Close()

	userID := uuid.MustParse("00000000-0000-0000-0000-000000000103")

	mockDb.ExpectBegin()
	mockDb.ExpectExec("UPDATE booking_passengers SET passenger_id = NULL").
		WithArgs(userID).WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mockDb.ExpectExec("DELETE FROM user_passengers").
		WithArgs(userID).WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mockDb.ExpectExec("DELETE FROM user_ff_cards").
		WithArgs(userID).WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mockDb.ExpectExec("DELETE FROM sessions").
		WithArgs(userID).WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mockDb.ExpectExec("UPDATE bookings SET user_id = NULL").
		WithArgs(userID).WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mockDb.ExpectExec("DELETE FROM users").
		WithArgs(userID).WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mockDb.ExpectRollback()

	err := repo.User.Delete(context.Background(), userID)
	assert.ErrorIs(t, err, entity.ErrNotFound)

	assert.NoError(t, mockDb.ExpectationsWereMet())
}

func TestUserSetActive(t *testing.T) {
	mockDb, repo := setupMockDB(t)
	defer mockDb.Close()

	userID := uuid.MustParse("00000000-0000-0000-0000-000000000104")

	mockDb.ExpectExec(regexp.QuoteMeta(`UPDATE users SET is_active = $2, updated_at = NOW() WHERE id = $1`)).
		WithArgs(userID, false).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := repo.User.SetActive(context.Background(), userID, false)
	assert.NoError(t, err)

	assert.NoError(t, mockDb.ExpectationsWereMet())
}

func TestUserCreateOtherErrorIsNotDuplicate(t *testing.T) {
	mockDb, repo := setupMockDB(t)
	defer mockDb.Close()

	now := time.Now()
	user := &entity.User{
		Base:         entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Email:        "jane@example.com",
		PasswordHash: "$2a$10$hash",
		IsActive:     true,
	}

	mockDb.ExpectExec("INSERT INTO users").
		WithArgs(user.ID, user.Email, user.PasswordHash, user.FullName,
			user.Phone, user.IsActive, user.CreatedAt, user.UpdatedAt).
		WillReturnError(errors.New("connection reset"))

	err := repo.User.Create(context.Background(), user)
	require.Error(t, err)
	assert.NotErrorIs(t, err, entity.ErrDuplicateKey)

	assert.NoError(t, mockDb.ExpectationsWereMet())
}
