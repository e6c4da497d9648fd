package usecase_test

import (
	"context"
	"testing"
	"time"

	"travel-booking/internal/data/entity"
	"travel-booking/internal/dto/request"
	"travel-booking/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newSessionService(store *fakeStore) usecase.SessionService {
	// nil cache: the service must behave the same with caching disabled.
	return usecase.NewSessionService(store.repository(), testConfig(), nil, zap.NewNop())
}

func seedSession(store *fakeStore, token string, expiresAt *time.Time) uuid.UUID {
	id := uuid.New()
	store.sessions[id] = entity.Session{
		Base:         entity.Base{ID: id, CreatedAt: time.Now(), UpdatedAt: time.Now()},
		SessionToken: token,
		AgentState:   entity.Document{},
		Context:      entity.Document{},
		ExpiresAt:    expiresAt,
	}
	return id
}

func TestCreateSessionDefaults(t *testing.T) {
	store := newFakeStore()
	svc := newSessionService(store)

	resp, err := svc.CreateSession(context.Background(), &request.CreateSessionRequest{
		Context: map[string]any{"origin": "SGN", "destination": "HAN"},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.SessionToken)
	assert.Nil(t, resp.UserID)
	assert.False(t, resp.Expired)
	assert.Equal(t, "SGN", resp.Context["origin"])

	// Default TTL from config is 24 hours.
	require.NotNil(t, resp.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), *resp.ExpiresAt, 5*time.Second)
}

func TestCreateSessionWithOwner(t *testing.T) {
	store := newFakeStore()
	svc := newSessionService(store)
	userID := seedUser(store)

	uid := userID.String()
	ttl := 2
	resp, err := svc.CreateSession(context.Background(), &request.CreateSessionRequest{
		UserID:   &uid,
		TTLHours: &ttl,
	})
	require.NoError(t, err)
	require.NotNil(t, resp.UserID)
	assert.Equal(t, uid, *resp.UserID)
	assert.WithinDuration(t, time.Now().Add(2*time.Hour), *resp.ExpiresAt, 5*time.Second)
}

func TestLookupReturnsExpiredFlagged(t *testing.T) {
	store := newFakeStore()
	svc := newSessionService(store)
	past := time.Now().Add(-time.Hour)
	seedSession(store, "tok-expired", &past)

	// Expired is not gone: the caller decides whether to resume or discard.
	resp, err := svc.Lookup(context.Background(), "tok-expired")
	require.NoError(t, err)
	assert.True(t, resp.Expired)
	assert.Equal(t, "tok-expired", resp.SessionToken)
}

func TestLookupUnknownToken(t *testing.T) {
	store := newFakeStore()
	svc := newSessionService(store)

	_, err := svc.Lookup(context.Background(), "no-such-token")
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestSaveStateOverwritesBothPayloads(t *testing.T) {
	store := newFakeStore()
	svc := newSessionService(store)
	future := time.Now().Add(time.Hour)
	id := seedSession(store, "tok-1", &future)

	first := store.sessions[id]
	first.AgentState = entity.Document{"step": "search", "attempt": float64(1)}
	first.Context = entity.Document{"origin": "SGN"}
	store.sessions[id] = first

	resp, err := svc.SaveState(context.Background(), id, &request.SaveSessionStateRequest{
		AgentState: map[string]any{"step": "select"},
		Context:    map[string]any{"destination": "HAN"},
	})
	require.NoError(t, err)

	// Both payloads are replaced in full, never merged.
	assert.Equal(t, "select", resp.AgentState["step"])
	assert.NotContains(t, resp.AgentState, "attempt")
	assert.Equal(t, "HAN", resp.Context["destination"])
	assert.NotContains(t, resp.Context, "origin")
}

func TestSaveStateNormalizesNil(t *testing.T) {
	store := newFakeStore()
	svc := newSessionService(store)
	future := time.Now().Add(time.Hour)
	id := seedSession(store, "tok-2", &future)

	resp, err := svc.SaveState(context.Background(), id, &request.SaveSessionStateRequest{})
	require.NoError(t, err)
	assert.NotNil(t, resp.AgentState)
	assert.Empty(t, resp.AgentState)
}

func TestSaveStateUnknownSession(t *testing.T) {
	store := newFakeStore()
	svc := newSessionService(store)

	_, err := svc.SaveState(context.Background(), uuid.New(), &request.SaveSessionStateRequest{})
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestTouchExtendsSession(t *testing.T) {
	store := newFakeStore()
	svc := newSessionService(store)
	soon := time.Now().Add(time.Minute)
	id := seedSession(store, "tok-3", &soon)

	resp, err := svc.Touch(context.Background(), id, &request.TouchSessionRequest{TTLHours: 48})
	require.NoError(t, err)
	require.NotNil(t, resp.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(48*time.Hour), *resp.ExpiresAt, 5*time.Second)
	assert.False(t, resp.Expired)
}

func TestTouchRevivesExpiredSession(t *testing.T) {
	store := newFakeStore()
	svc := newSessionService(store)
	past := time.Now().Add(-time.Hour)
	id := seedSession(store, "tok-4", &past)

	resp, err := svc.Touch(context.Background(), id, &request.TouchSessionRequest{TTLHours: 1})
	require.NoError(t, err)
	assert.False(t, resp.Expired)
}

func TestDeleteSession(t *testing.T) {
	store := newFakeStore()
	svc := newSessionService(store)
	future := time.Now().Add(time.Hour)
	id := seedSession(store, "tok-5", &future)

	require.NoError(t, svc.DeleteSession(context.Background(), id))
	assert.Empty(t, store.sessions)

	err := svc.DeleteSession(context.Background(), id)
	assert.ErrorIs(t, err, entity.ErrNotFound)
}
