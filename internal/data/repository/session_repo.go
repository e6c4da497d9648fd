package repository

import (
	"context"
	"fmt"
	"time"

	"travel-booking/internal/data/entity"
	"travel-booking/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SessionRepository interface {
	Create(ctx context.Context, session *entity.Session) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Session, error)

	// FindByToken returns the session even when its expiry has passed:
	// "expired but present" and "never existed" are different answers,
	// and the caller decides what expiry means for it.
	FindByToken(ctx context.Context, token string) (*entity.Session, error)

	// SaveState overwrites agent_state and context in one statement, so a
	// reader can never observe one payload from the new turn and the
	// other from the old.
	SaveState(ctx context.Context, id uuid.UUID, agentState, context entity.Document) (*entity.Session, error)

	Touch(ctx context.Context, id uuid.UUID, expiresAt time.Time) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByToken(ctx context.Context, token string) error
}

type sessionRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSessionRepository(db database.PgxIface, log *zap.Logger) SessionRepository {
	return &sessionRepository{
		db:  db,
		log: log.With(zap.String("repository", "session")),
	}
}

func (r *sessionRepository) Create(ctx context.Context, session *entity.Session) error {
	query := `
		INSERT INTO sessions (id, user_id, session_token, agent_state, context,
		                      expires_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		session.ID,
		session.UserID,
		session.SessionToken,
		session.AgentState,
		session.Context,
		session.ExpiresAt,
		session.CreatedAt,
		session.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create session",
			zap.Error(err),
			zap.String("session_id", session.ID.String()),
		)
		return fmt.Errorf("create session %s: %w", session.ID.String(), mapPgError(err))
	}

	return nil
}

func (r *sessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Session, error) {
	query := `
		SELECT id, user_id, session_token, agent_state, context, expires_at,
		       created_at, updated_at
		FROM sessions
		WHERE id = $1
	`

	session, err := r.scanSession(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("find session by ID %s: %w", id.String(), mapPgError(err))
	}
	return session, nil
}

func (r *sessionRepository) FindByToken(ctx context.Context, token string) (*entity.Session, error) {
	query := `
		SELECT id, user_id, session_token, agent_state, context, expires_at,
		       created_at, updated_at
		FROM sessions
		WHERE session_token = $1
	`

	session, err := r.scanSession(ctx, query, token)
	if err != nil {
		return nil, fmt.Errorf("find session by token: %w", mapPgError(err))
	}
	return session, nil
}

func (r *sessionRepository) SaveState(ctx context.Context, id uuid.UUID, agentState, context entity.Document) (*entity.Session, error) {
	query := `
		UPDATE sessions SET agent_state = $2, context = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING id, user_id, session_token, agent_state, context, expires_at,
		          created_at, updated_at
	`

	var s entity.Session
	err := r.db.QueryRow(ctx, query, id, agentState, context).Scan(
		&s.ID,
		&s.UserID,
		&s.SessionToken,
		&s.AgentState,
		&s.Context,
		&s.ExpiresAt,
		&s.CreatedAt,
		&s.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to save session state",
			zap.Error(err),
			zap.String("session_id", id.String()),
		)
		return nil, fmt.Errorf("save session %s state: %w", id.String(), mapPgError(err))
	}

	return &s, nil
}

func (r *sessionRepository) Touch(ctx context.Context, id uuid.UUID, expiresAt time.Time) error {
	query := `UPDATE sessions SET expires_at = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, expiresAt)
	if err != nil {
		r.log.Error("Failed to touch session",
			zap.Error(err),
			zap.String("session_id", id.String()),
		)
		return fmt.Errorf("touch session %s: %w", id.String(), mapPgError(err))
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("touch session %s: %w", id.String(), entity.ErrNotFound)
	}

	return nil
}

func (r *sessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete session %s: %w", id.String(), mapPgError(err))
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete session %s: %w", id.String(), entity.ErrNotFound)
	}
	return nil
}

func (r *sessionRepository) DeleteByToken(ctx context.Context, token string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM sessions WHERE session_token = $1`, token)
	if err != nil {
		return fmt.Errorf("delete session by token: %w", mapPgError(err))
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete session by token: %w", entity.ErrNotFound)
	}
	return nil
}

func (r *sessionRepository) scanSession(ctx context.Context, query string, arg any) (*entity.Session, error) {
	var s entity.Session
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&s.ID,
		&s.UserID,
		&s.SessionToken,
		&s.AgentState,
		&s.Context,
		&s.ExpiresAt,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
