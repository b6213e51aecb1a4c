package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vncsmyrnk/voteapp/internal/core/domain"
	"github.com/vncsmyrnk/voteapp/internal/core/ports"
)

func TestAuthService_Register(t *testing.T) {
	app := setupTestApp(t)
	ctx := context.Background()

	res, err := app.auth.Register(ctx, ports.RegisterInput{
		Username: "  alice ",
		Email:    " Alice@Example.COM ",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.NotEmpty(t, res.UserID)
	assert.Equal(t, "alice", res.Username)
	assert.Equal(t, "alice@example.com", res.Email)

	subject, err := app.tokens.Subject(res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.UserID, subject)

	stored, err := app.users.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", stored.PasswordHash)
	assert.Equal(t, noon, stored.CreatedAt)
}

func TestAuthService_RegisterDuplicates(t *testing.T) {
	app := setupTestApp(t)
	ctx := context.Background()
	app.register(t, "alice")

	_, err := app.auth.Register(ctx, ports.RegisterInput{Username: "other", Email: "ALICE@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)

	_, err = app.auth.Register(ctx, ports.RegisterInput{Username: "alice", Email: "other@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, domain.ErrDuplicateUsername)

	// Email is checked before username.
	_, err = app.auth.Register(ctx, ports.RegisterInput{Username: "alice", Email: "alice@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
}

func TestAuthService_Login(t *testing.T) {
	app := setupTestApp(t)
	ctx := context.Background()
	alice := app.register(t, "alice")

	res, err := app.auth.Login(ctx, ports.LoginInput{Email: " ALICE@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, alice.ID, res.UserID)
	assert.Equal(t, "alice", res.Username)

	user, err := app.verifier.Verify(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, user.ID)

	tests := []struct {
		name  string
		input ports.LoginInput
	}{
		{"wrong password", ports.LoginInput{Email: "alice@example.com", Password: "nope"}},
		{"unknown email", ports.LoginInput{Email: "bob@example.com", Password: "secret123"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := app.auth.Login(ctx, tt.input)
			assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
		})
	}
}
