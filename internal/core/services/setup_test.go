package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/vncsmyrnk/voteapp/internal/adapters/hasher"
	"github.com/vncsmyrnk/voteapp/internal/adapters/repository/memory"
	"github.com/vncsmyrnk/voteapp/internal/adapters/token"
	"github.com/vncsmyrnk/voteapp/internal/core/domain"
	"github.com/vncsmyrnk/voteapp/internal/core/ports"
	"github.com/vncsmyrnk/voteapp/internal/core/services"
)

// fakeClock is a settable services.Clock.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

type testApp struct {
	clock    *fakeClock
	users    ports.UserRepository
	polls    ports.PollRepository
	comments ports.CommentRepository
	tokens   ports.TokenCodec

	auth       *services.AuthService
	verifier   ports.TokenVerifier
	pollSvc    ports.PollService
	voteSvc    ports.VoteService
	commentSvc ports.CommentService
}

var noon = time.Date(2026, 5, 20, 12, 0, 0, 0, time.UTC)

func setupTestApp(t *testing.T) *testApp {
	t.Helper()

	db := memory.NewDB()
	clock := &fakeClock{now: noon}
	tokens, err := token.NewJWTCodec("test-secret", "HS256", time.Hour)
	require.NoError(t, err)

	app := &testApp{
		clock:    clock,
		users:    memory.NewUserRepository(db),
		polls:    memory.NewPollRepository(db),
		comments: memory.NewCommentRepository(db),
		tokens:   tokens,
	}
	app.auth = services.NewAuthService(app.users, hasher.NewBcryptHasher(bcrypt.MinCost), tokens, clock.Now)
	app.verifier = services.NewTokenVerifier(tokens, app.users)
	app.pollSvc = services.NewPollService(app.polls, app.users, clock.Now)
	app.voteSvc = services.NewVoteService(app.polls, app.users, clock.Now)
	app.commentSvc = services.NewCommentService(app.comments, app.polls, app.users, clock.Now)
	return app
}

func (a *testApp) register(t *testing.T, username string) *domain.User {
	t.Helper()
	res, err := a.auth.Register(context.Background(), ports.RegisterInput{
		Username: username,
		Email:    username + "@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	user, err := a.users.GetByID(context.Background(), res.UserID)
	require.NoError(t, err)
	return user
}

// createPoll creates a poll active from an hour before noon to an hour after.
func (a *testApp) createPoll(t *testing.T, creator *domain.User, title string, anonymous bool) *domain.PollView {
	t.Helper()
	view, err := a.pollSvc.Create(context.Background(), ports.CreatePollInput{
		Title:       title,
		Options:     []string{"Red", "Green", "Blue"},
		IsAnonymous: anonymous,
		StartTime:   noon.Add(-time.Hour),
		EndTime:     noon.Add(time.Hour),
		Creator:     creator,
	})
	require.NoError(t, err)
	return view
}
