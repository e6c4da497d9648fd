package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"travel-booking/internal/data/entity"
	"travel-booking/internal/data/repository"
	"travel-booking/internal/dto/request"
	"travel-booking/internal/dto/response"
	"travel-booking/pkg/cache"
	"travel-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SessionService interface {
	CreateSession(ctx context.Context, req *request.CreateSessionRequest) (*response.SessionResponse, error)
	GetSession(ctx context.Context, id uuid.UUID) (*response.SessionResponse, error)

	// Lookup resolves a session by its token. Expired sessions are still
	// returned, flagged as expired, so agents can resume or discard them.
	Lookup(ctx context.Context, token string) (*response.SessionResponse, error)

	SaveState(ctx context.Context, id uuid.UUID, req *request.SaveSessionStateRequest) (*response.SessionResponse, error)
	Touch(ctx context.Context, id uuid.UUID, req *request.TouchSessionRequest) (*response.SessionResponse, error)
	DeleteSession(ctx context.Context, id uuid.UUID) error
}

type sessionService struct {
	repo   *repository.Repository
	config *utils.Config
	cache  *cache.SessionCache
	log    *zap.Logger
}

func NewSessionService(
	repo *repository.Repository,
	config *utils.Config,
	sessionCache *cache.SessionCache,
	log *zap.Logger,
) SessionService {
	return &sessionService{
		repo:   repo,
		config: config,
		cache:  sessionCache,
		log:    log,
	}
}

func (s *sessionService) CreateSession(ctx context.Context, req *request.CreateSessionRequest) (*response.SessionResponse, error) {
	// 1. Validate
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// 2. Resolve optional owner
	var userID *uuid.UUID
	if req.UserID != nil {
		parsed, err := uuid.Parse(*req.UserID)
		if err != nil {
			return nil, fmt.Errorf("invalid user id")
		}
		userID = &parsed
	}

	ttlHours := s.config.Session.TTLHours
	if req.TTLHours != nil {
		ttlHours = *req.TTLHours
	}

	now := time.Now()
	expiresAt := now.Add(time.Duration(ttlHours) * time.Hour)

	contextDoc := entity.Document(req.Context)
	if contextDoc == nil {
		contextDoc = entity.Document{}
	}

	session := &entity.Session{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:       userID,
		SessionToken: utils.GenerateSessionToken(),
		AgentState:   entity.Document{},
		Context:      contextDoc,
		ExpiresAt:    &expiresAt,
	}

	// 3. Save. The unique index on session_token backs token uniqueness.
	if err := s.repo.Session.Create(ctx, session); err != nil {
		if errors.Is(err, entity.ErrDuplicateKey) {
			return nil, fmt.Errorf("session token collision: %w", err)
		}
		if errors.Is(err, entity.ErrIntegrityViolation) {
			return nil, fmt.Errorf("user not found: %w", entity.ErrNotFound)
		}
		s.log.Error("Failed to create session", zap.Error(err))
		return nil, fmt.Errorf("failed to create session")
	}

	s.cacheSet(ctx, session)

	s.log.Info("Session created", zap.String("session_id", session.ID.String()))

	return response.SessionToResponse(session, time.Now()), nil
}

func (s *sessionService) GetSession(ctx context.Context, id uuid.UUID) (*response.SessionResponse, error) {
	session, err := s.repo.Session.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, fmt.Errorf("session not found: %w", err)
		}
		s.log.Error("Failed to find session", zap.Error(err), zap.String("session_id", id.String()))
		return nil, fmt.Errorf("failed to get session")
	}

	return response.SessionToResponse(session, time.Now()), nil
}

func (s *sessionService) Lookup(ctx context.Context, token string) (*response.SessionResponse, error) {
	// 1. Try the cache
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, token)
		if err != nil {
			s.log.Warn("Session cache read failed", zap.Error(err))
		} else if cached != nil {
			return response.SessionToResponse(cached, time.Now()), nil
		}
	}

	// 2. Fall back to the store
	session, err := s.repo.Session.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, fmt.Errorf("session not found: %w", err)
		}
		s.log.Error("Failed to find session by token", zap.Error(err))
		return nil, fmt.Errorf("failed to look up session")
	}

	s.cacheSet(ctx, session)

	return response.SessionToResponse(session, time.Now()), nil
}

func (s *sessionService) SaveState(ctx context.Context, id uuid.UUID, req *request.SaveSessionStateRequest) (*response.SessionResponse, error) {
	agentState := entity.Document(req.AgentState)
	if agentState == nil {
		agentState = entity.Document{}
	}
	contextDoc := entity.Document(req.Context)
	if contextDoc == nil {
		contextDoc = entity.Document{}
	}

	session, err := s.repo.Session.SaveState(ctx, id, agentState, contextDoc)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, fmt.Errorf("session not found: %w", err)
		}
		s.log.Error("Failed to save session state", zap.Error(err), zap.String("session_id", id.String()))
		return nil, fmt.Errorf("failed to save session state")
	}

	s.cacheSet(ctx, session)

	return response.SessionToResponse(session, time.Now()), nil
}

func (s *sessionService) Touch(ctx context.Context, id uuid.UUID, req *request.TouchSessionRequest) (*response.SessionResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	expiresAt := time.Now().Add(time.Duration(req.TTLHours) * time.Hour)

	if err := s.repo.Session.Touch(ctx, id, expiresAt); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, fmt.Errorf("session not found: %w", err)
		}
		s.log.Error("Failed to touch session", zap.Error(err), zap.String("session_id", id.String()))
		return nil, fmt.Errorf("failed to extend session")
	}

	session, err := s.repo.Session.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to reload session", zap.Error(err), zap.String("session_id", id.String()))
		return nil, fmt.Errorf("failed to extend session")
	}

	s.cacheSet(ctx, session)

	return response.SessionToResponse(session, time.Now()), nil
}

func (s *sessionService) DeleteSession(ctx context.Context, id uuid.UUID) error {
	// Read first so the cached copy can be dropped by token.
	session, err := s.repo.Session.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return fmt.Errorf("session not found: %w", err)
		}
		s.log.Error("Failed to find session", zap.Error(err), zap.String("session_id", id.String()))
		return fmt.Errorf("failed to delete session")
	}

	if err := s.repo.Session.Delete(ctx, id); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return fmt.Errorf("session not found: %w", err)
		}
		s.log.Error("Failed to delete session", zap.Error(err), zap.String("session_id", id.String()))
		return fmt.Errorf("failed to delete session")
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, session.SessionToken); err != nil {
			s.log.Warn("Failed to invalidate cached session", zap.Error(err))
		}
	}

	s.log.Info("Session deleted", zap.String("session_id", id.String()))
	return nil
}

func (s *sessionService) cacheSet(ctx context.Context, session *entity.Session) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, session); err != nil {
		s.log.Warn("Failed to cache session", zap.Error(err))
	}
}
