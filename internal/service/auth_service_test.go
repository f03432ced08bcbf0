//go:build unit

package service

import (
	"context"
	"errors"
	"testing"

	"go-sites-app/internal/data"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthFixture() (*AuthService, *data.MemoryStore) {
	store := data.NewMemoryStore()
	return NewAuthService(store.Users(), testLogger()), store
}

func TestAuthenticate(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, "alice", "s3cret", false)
	require.NoError(t, err)

	user, err := svc.Authenticate(ctx, "alice", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.False(t, user.IsAdmin)

	_, err = svc.Authenticate(ctx, "alice", "wrong")
	assert.True(t, errors.Is(err, ErrInvalidCredentials))

	// Unknown users fail with the same error as a wrong password.
	_, err = svc.Authenticate(ctx, "bob", "s3cret")
	assert.True(t, errors.Is(err, ErrInvalidCredentials))
}

func TestCreateUser_Validation(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, "", "pw", false)
	assert.True(t, IsValidationError(err))
	_, err = svc.CreateUser(ctx, "alice", "", false)
	assert.True(t, IsValidationError(err))
}

func TestEnsureBootstrapAdmin_CreatesAccount(t *testing.T) {
	svc, store := newAuthFixture()
	ctx := context.Background()

	require.NoError(t, svc.EnsureBootstrapAdmin(ctx, "admin", "changeme"))

	user, err := store.Users().GetByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.True(t, user.IsAdmin)

	// Idempotent on restart.
	require.NoError(t, svc.EnsureBootstrapAdmin(ctx, "admin", "changeme"))
}

func TestEnsureBootstrapAdmin_PromotesExistingUser(t *testing.T) {
	svc, store := newAuthFixture()
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, "admin", "changeme", false)
	require.NoError(t, err)

	require.NoError(t, svc.EnsureBootstrapAdmin(ctx, "admin", "changeme"))

	user, err := store.Users().GetByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.True(t, user.IsAdmin)
}

func TestEnsureBootstrapAdmin_SkipsWhenUnconfigured(t *testing.T) {
	svc, store := newAuthFixture()
	ctx := context.Background()

	require.NoError(t, svc.EnsureBootstrapAdmin(ctx, "", ""))

	_, err := store.Users().GetByUsername(ctx, "admin")
	assert.True(t, data.IsNotFound(err))
}
