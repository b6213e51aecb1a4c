package http_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	app := setupTestApp(t)
	registered := app.register(t, "alice")
	assert.NotEmpty(t, registered.Token)
	assert.Equal(t, "alice@example.com", registered.Email)

	var loggedIn authResponse
	status := app.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "ALICE@example.com",
		"password": "secret123",
	}, &loggedIn)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, registered.ID, loggedIn.ID)

	var me struct {
		ID       string `json:"_id"`
		Username string `json:"username"`
		Email    string `json:"email"`
	}
	status = app.do(t, http.MethodGet, "/api/auth/me", loggedIn.Token, nil, &me)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, registered.ID, me.ID)
	assert.Equal(t, "alice", me.Username)
}

func TestAuthErrors(t *testing.T) {
	app := setupTestApp(t)
	app.register(t, "alice")

	tests := []struct {
		name    string
		path    string
		body    map[string]string
		message string
	}{
		{"duplicate email", "/api/auth/register", map[string]string{"username": "bob", "email": "alice@example.com", "password": "pw"}, "email already registered"},
		{"duplicate username", "/api/auth/register", map[string]string{"username": "alice", "email": "bob@example.com", "password": "pw"}, "username already taken"},
		{"invalid email", "/api/auth/register", map[string]string{"username": "bob", "email": "not-an-email", "password": "pw"}, "email must be a valid email address"},
		{"blank username", "/api/auth/register", map[string]string{"username": "   ", "email": "bob@example.com", "password": "pw"}, "username is required"},
		{"wrong password", "/api/auth/login", map[string]string{"email": "alice@example.com", "password": "wrong"}, "invalid credentials"},
		{"unknown user", "/api/auth/login", map[string]string{"email": "carol@example.com", "password": "pw"}, "invalid credentials"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body errorResponse
			status := app.do(t, http.MethodPost, tt.path, "", tt.body, &body)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, tt.message, body.Message)
		})
	}

	var body errorResponse
	status := app.do(t, http.MethodGet, "/api/auth/me", "", nil, &body)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "not authorized", body.Message)
}
