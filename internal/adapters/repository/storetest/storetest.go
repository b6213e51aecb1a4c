// Package storetest holds the behaviour every store must share. Each store package runs
// Run against its own backend.
package storetest

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vncsmyrnk/voteapp/internal/core/domain"
	"github.com/vncsmyrnk/voteapp/internal/core/ports"
)

type Stores struct {
	Users    ports.UserRepository
	Polls    ports.PollRepository
	Comments ports.CommentRepository
	// UnknownID is well formed for the backend but never assigned.
	UnknownID string
}

// Run executes the suite. newStores must return empty stores on every call.
func Run(t *testing.T, newStores func(t *testing.T) Stores) {
	t.Run("Users", func(t *testing.T) { testUsers(t, newStores(t)) })
	t.Run("Polls", func(t *testing.T) { testPolls(t, newStores(t)) })
	t.Run("Ballots", func(t *testing.T) { testBallots(t, newStores(t)) })
	t.Run("ConcurrentBallots", func(t *testing.T) { testConcurrentBallots(t, newStores(t)) })
	t.Run("Comments", func(t *testing.T) { testComments(t, newStores(t)) })
}

// base is millisecond aligned so every backend round-trips it exactly.
var base = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func createUser(t *testing.T, s Stores, name string) *domain.User {
	t.Helper()
	user := &domain.User{
		Username:     name,
		Email:        name + "@example.com",
		PasswordHash: "hash-" + name,
		CreatedAt:    base,
	}
	require.NoError(t, s.Users.Create(context.Background(), user))
	require.NotEmpty(t, user.ID)
	return user
}

func createPoll(t *testing.T, s Stores, creator *domain.User, title string, createdAt time.Time) *domain.Poll {
	t.Helper()
	poll := &domain.Poll{
		Title:       title,
		Description: "about " + title,
		Options:     []domain.Option{{Text: "A"}, {Text: "B"}, {Text: "C"}},
		StartTime:   base.Add(-time.Hour),
		EndTime:     base.Add(time.Hour),
		CreatedBy:   creator.ID,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
	require.NoError(t, s.Polls.Create(context.Background(), poll))
	require.NotEmpty(t, poll.ID)
	return poll
}

func testUsers(t *testing.T, s Stores) {
	ctx := context.Background()
	alice := createUser(t, s, "alice")
	bob := createUser(t, s, "bob")

	got, err := s.Users.GetByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, "alice@example.com", got.Email)
	assert.Equal(t, "hash-alice", got.PasswordHash)
	assert.WithinDuration(t, base, got.CreatedAt, 0)

	got, err = s.Users.GetByEmail(ctx, "bob@example.com")
	require.NoError(t, err)
	assert.Equal(t, bob.ID, got.ID)

	got, err = s.Users.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.ID)

	_, err = s.Users.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	_, err = s.Users.GetByID(ctx, s.UnknownID)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	_, err = s.Users.GetByID(ctx, "not-an-id")
	assert.ErrorIs(t, err, domain.ErrInvalidID)

	err = s.Users.Create(ctx, &domain.User{Username: "carol", Email: "alice@example.com", PasswordHash: "x", CreatedAt: base})
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
	err = s.Users.Create(ctx, &domain.User{Username: "alice", Email: "carol@example.com", PasswordHash: "x", CreatedAt: base})
	assert.ErrorIs(t, err, domain.ErrDuplicateUsername)

	users, err := s.Users.GetByIDs(ctx, []string{alice.ID, bob.ID, s.UnknownID, "garbage"})
	require.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, "alice", users[alice.ID].Username)
	assert.Equal(t, "bob", users[bob.ID].Username)

	users, err = s.Users.GetByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func testPolls(t *testing.T, s Stores) {
	ctx := context.Background()
	owner := createUser(t, s, "owner")

	older := createPoll(t, s, owner, "older", base.Add(-48*time.Hour))
	first := createPoll(t, s, owner, "first", base)
	second := createPoll(t, s, owner, "second", base.Add(time.Minute))

	got, err := s.Polls.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "first", got.Title)
	assert.Equal(t, "about first", got.Description)
	assert.Equal(t, owner.ID, got.CreatedBy)
	assert.WithinDuration(t, first.StartTime, got.StartTime, 0)
	assert.WithinDuration(t, first.EndTime, got.EndTime, 0)
	require.Len(t, got.Options, 3)
	for i, text := range []string{"A", "B", "C"} {
		assert.Equal(t, text, got.Options[i].Text)
		assert.Empty(t, got.Options[i].Voters)
	}
	assert.Zero(t, got.ViewCount)

	_, err = s.Polls.GetByID(ctx, s.UnknownID)
	assert.ErrorIs(t, err, domain.ErrPollNotFound)
	_, err = s.Polls.GetByID(ctx, "not-an-id")
	assert.ErrorIs(t, err, domain.ErrInvalidID)

	all, err := s.Polls.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{second.ID, first.ID, older.ID}, pollIDs(all))

	recent, err := s.Polls.ListCreatedSince(ctx, base)
	require.NoError(t, err)
	assert.Equal(t, []string{second.ID, first.ID}, pollIDs(recent))

	for want := int64(1); want <= 3; want++ {
		viewed, err := s.Polls.IncrementViews(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, want, viewed.ViewCount)
		assert.Len(t, viewed.Options, 3)
	}
	_, err = s.Polls.IncrementViews(ctx, s.UnknownID)
	assert.ErrorIs(t, err, domain.ErrPollNotFound)
}

func testBallots(t *testing.T, s Stores) {
	ctx := context.Background()
	owner := createUser(t, s, "owner")
	alice := createUser(t, s, "alice")
	bob := createUser(t, s, "bob")
	poll := createPoll(t, s, owner, "ballots", base)

	require.NoError(t, s.Polls.AppendVoter(ctx, poll.ID, 1, alice.ID))
	require.NoError(t, s.Polls.AppendVoter(ctx, poll.ID, 1, bob.ID))

	assert.ErrorIs(t, s.Polls.AppendVoter(ctx, poll.ID, 1, alice.ID), domain.ErrAlreadyVoted)
	assert.ErrorIs(t, s.Polls.AppendVoter(ctx, poll.ID, 0, alice.ID), domain.ErrAlreadyVoted)
	assert.ErrorIs(t, s.Polls.AppendVoter(ctx, poll.ID, 3, owner.ID), domain.ErrInvalidOption)
	assert.ErrorIs(t, s.Polls.AppendVoter(ctx, poll.ID, -1, owner.ID), domain.ErrInvalidOption)
	assert.ErrorIs(t, s.Polls.AppendVoter(ctx, s.UnknownID, 0, owner.ID), domain.ErrPollNotFound)

	got, err := s.Polls.GetByID(ctx, poll.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Options[0].Voters)
	assert.Equal(t, []string{alice.ID, bob.ID}, got.Options[1].Voters)
	assert.Empty(t, got.Options[2].Voters)
	assert.Equal(t, 2, got.TotalVotes())
}

func testConcurrentBallots(t *testing.T, s Stores) {
	ctx := context.Background()
	owner := createUser(t, s, "owner")
	voter := createUser(t, s, "voter")
	poll := createPoll(t, s, owner, "race", base)

	const attempts = 16
	var (
		wg        sync.WaitGroup
		succeeded atomic.Int32
		rejected  atomic.Int32
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(option int) {
			defer wg.Done()
			err := s.Polls.AppendVoter(ctx, poll.ID, option, voter.ID)
			switch {
			case err == nil:
				succeeded.Add(1)
			case assert.ErrorIs(t, err, domain.ErrAlreadyVoted):
				rejected.Add(1)
			}
		}(i % 3)
	}
	wg.Wait()

	assert.EqualValues(t, 1, succeeded.Load())
	assert.EqualValues(t, attempts-1, rejected.Load())

	got, err := s.Polls.GetByID(ctx, poll.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.TotalVotes())
}

func testComments(t *testing.T, s Stores) {
	ctx := context.Background()
	owner := createUser(t, s, "owner")
	poll := createPoll(t, s, owner, "talk", base)
	other := createPoll(t, s, owner, "elsewhere", base)

	var ids []string
	for i := 0; i < 3; i++ {
		at := base.Add(time.Duration(i) * time.Minute)
		comment := &domain.Comment{
			Content:   fmt.Sprintf("comment %d", i),
			PollID:    poll.ID,
			AuthorID:  owner.ID,
			CreatedAt: at,
			UpdatedAt: at,
		}
		require.NoError(t, s.Comments.Create(ctx, comment))
		ids = append(ids, comment.ID)
	}

	listed, err := s.Comments.ListByPoll(ctx, poll.ID)
	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.Equal(t, []string{ids[2], ids[1], ids[0]}, []string{listed[0].ID, listed[1].ID, listed[2].ID})
	assert.Equal(t, owner.ID, listed[0].AuthorID)
	assert.Equal(t, poll.ID, listed[0].PollID)

	empty, err := s.Comments.ListByPoll(ctx, other.ID)
	require.NoError(t, err)
	assert.Empty(t, empty)

	edited := base.Add(time.Hour)
	updated, err := s.Comments.UpdateContent(ctx, ids[0], "edited", edited)
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)
	assert.WithinDuration(t, edited, updated.UpdatedAt, 0)
	assert.WithinDuration(t, base, updated.CreatedAt, 0)

	got, err := s.Comments.GetByID(ctx, ids[0])
	require.NoError(t, err)
	assert.Equal(t, "edited", got.Content)

	require.NoError(t, s.Comments.Delete(ctx, ids[1]))
	_, err = s.Comments.GetByID(ctx, ids[1])
	assert.ErrorIs(t, err, domain.ErrCommentNotFound)
	assert.ErrorIs(t, s.Comments.Delete(ctx, ids[1]), domain.ErrCommentNotFound)
	_, err = s.Comments.UpdateContent(ctx, s.UnknownID, "x", edited)
	assert.ErrorIs(t, err, domain.ErrCommentNotFound)
	_, err = s.Comments.GetByID(ctx, "not-an-id")
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}

func pollIDs(polls []*domain.Poll) []string {
	ids := make([]string, 0, len(polls))
	for _, p := range polls {
		ids = append(ids, p.ID)
	}
	return ids
}
