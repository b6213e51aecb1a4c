package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	handler "github.com/vncsmyrnk/voteapp/internal/adapters/handler/http"
	"github.com/vncsmyrnk/voteapp/internal/adapters/hasher"
	"github.com/vncsmyrnk/voteapp/internal/adapters/repository/memory"
	"github.com/vncsmyrnk/voteapp/internal/adapters/token"
	"github.com/vncsmyrnk/voteapp/internal/core/services"
)

type TestApp struct {
	Server *httptest.Server
	Client *http.Client
}

func setupTestApp(t *testing.T) *TestApp {
	t.Helper()

	db := memory.NewDB()
	users := memory.NewUserRepository(db)
	polls := memory.NewPollRepository(db)
	comments := memory.NewCommentRepository(db)

	tokens, err := token.NewJWTCodec("test-secret", "HS256", time.Hour)
	require.NoError(t, err)

	authSvc := services.NewAuthService(users, hasher.NewBcryptHasher(bcrypt.MinCost), tokens, nil)
	router := handler.NewHandler(handler.Handlers{
		Auth:     handler.NewAuthHandler(authSvc),
		Users:    handler.NewUserHandler(),
		Polls:    handler.NewPollHandler(services.NewPollService(polls, users, nil)),
		Votes:    handler.NewVoteHandler(services.NewVoteService(polls, users, nil)),
		Comments: handler.NewCommentHandler(services.NewCommentService(comments, polls, users, nil)),
	}, services.NewTokenVerifier(tokens, users), []string{"http://localhost:3000"})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &TestApp{
		Server: server,
		Client: server.Client(),
	}
}

// do sends body as JSON when non-nil and decodes the response into out when non-nil.
func (a *TestApp) do(t *testing.T, method, path, token string, body, out any) int {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, a.Server.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := a.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

type authResponse struct {
	Token    string `json:"token"`
	ID       string `json:"_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func (a *TestApp) register(t *testing.T, username string) authResponse {
	t.Helper()
	var res authResponse
	status := a.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "secret123",
	}, &res)
	require.Equal(t, http.StatusOK, status)
	return res
}

type userSummary struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
}

type optionResponse struct {
	Text      string         `json:"text"`
	VoteCount int            `json:"voteCount"`
	Votes     *[]userSummary `json:"votes"`
}

type pollResponse struct {
	ID              string           `json:"_id"`
	Title           string           `json:"title"`
	Options         []optionResponse `json:"options"`
	IsAnonymous     bool             `json:"isAnonymous"`
	CreatedBy       userSummary      `json:"createdBy"`
	ViewCount       int64            `json:"viewCount"`
	Status          string           `json:"status"`
	TotalVotes      int              `json:"totalVotes"`
	PopularityScore *int64           `json:"popularityScore"`
}

type commentResponse struct {
	ID      string      `json:"_id"`
	Content string      `json:"content"`
	Vote    string      `json:"vote"`
	Author  userSummary `json:"author"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (a *TestApp) createPoll(t *testing.T, token, title string, anonymous bool) pollResponse {
	t.Helper()
	now := time.Now().UTC()
	var poll pollResponse
	status := a.do(t, http.MethodPost, "/api/votes", token, map[string]any{
		"title":       title,
		"options":     []string{"X", "Y"},
		"isAnonymous": anonymous,
		"startTime":   now.Add(-time.Minute).Format(time.RFC3339),
		"endTime":     now.Add(time.Hour).Format(time.RFC3339),
	}, &poll)
	require.Equal(t, http.StatusOK, status)
	return poll
}
