package usecase_test

import (
	"context"
	"testing"

	"travel-booking/internal/data/entity"
	"travel-booking/internal/dto/request"
	"travel-booking/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAuthService(store *fakeStore) usecase.AuthService {
	return usecase.NewAuthService(store.repository(), testConfig(), nil, zap.NewNop())
}

func TestRegisterCreatesSession(t *testing.T) {
	store := newFakeStore()
	svc := newAuthService(store)

	fullName := "Linh Nguyen"
	resp, err := svc.Register(context.Background(), &request.RegisterRequest{
		Email:    "linh@example.com",
		Password: "s3cret-pass",
		FullName: &fullName,
	})
	require.NoError(t, err)

	assert.Equal(t, "linh@example.com", resp.Email)
	assert.NotEmpty(t, resp.Token, "register should auto-login")
	assert.Len(t, store.users, 1)
	assert.Len(t, store.sessions, 1)

	// The stored hash is never the raw password.
	for _, user := range store.users {
		assert.NotEqual(t, "s3cret-pass", user.PasswordHash)
		assert.True(t, user.IsActive)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	store := newFakeStore()
	svc := newAuthService(store)

	_, err := svc.Register(context.Background(), &request.RegisterRequest{
		Email:    "linh@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), &request.RegisterRequest{
		Email:    "linh@example.com",
		Password: "another-pass",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrDuplicateKey)
	assert.Len(t, store.users, 1)
}

func TestLoginRoundTrip(t *testing.T) {
	store := newFakeStore()
	svc := newAuthService(store)

	_, err := svc.Register(context.Background(), &request.RegisterRequest{
		Email:    "linh@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), &request.LoginRequest{
		Email:    "linh@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	require.NotNil(t, resp.ExpiresAt)
}

func TestLoginWrongPassword(t *testing.T) {
	store := newFakeStore()
	svc := newAuthService(store)

	_, err := svc.Register(context.Background(), &request.RegisterRequest{
		Email:    "linh@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &request.LoginRequest{
		Email:    "linh@example.com",
		Password: "wrong-pass",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid credentials")
}

func TestLoginUnknownEmail(t *testing.T) {
	store := newFakeStore()
	svc := newAuthService(store)

	_, err := svc.Login(context.Background(), &request.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever123",
	})
	require.Error(t, err)
	// Unknown email and wrong password are indistinguishable to the caller.
	assert.Contains(t, err.Error(), "invalid credentials")
	assert.NotErrorIs(t, err, entity.ErrNotFound)
}

func TestLoginDeactivatedAccount(t *testing.T) {
	store := newFakeStore()
	svc := newAuthService(store)

	_, err := svc.Register(context.Background(), &request.RegisterRequest{
		Email:    "linh@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	for id := range store.users {
		u := store.users[id]
		u.IsActive = false
		store.users[id] = u
	}

	_, err = svc.Login(context.Background(), &request.LoginRequest{
		Email:    "linh@example.com",
		Password: "s3cret-pass",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deactivated")
}

func TestLogout(t *testing.T) {
	store := newFakeStore()
	svc := newAuthService(store)

	resp, err := svc.Register(context.Background(), &request.RegisterRequest{
		Email:    "linh@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), resp.Token))
	assert.Empty(t, store.sessions)

	err = svc.Logout(context.Background(), resp.Token)
	assert.ErrorIs(t, err, entity.ErrNotFound)
}
