package ports

import (
	"context"
	"time"

	"github.com/vncsmyrnk/voteapp/internal/core/domain"
)

type PollRepository interface {
	Create(ctx context.Context, poll *domain.Poll) error
	GetByID(ctx context.Context, id string) (*domain.Poll, error)
	// List returns every poll, newest first.
	List(ctx context.Context) ([]*domain.Poll, error)
	// ListCreatedSince returns polls created at or after since, newest first.
	ListCreatedSince(ctx context.Context, since time.Time) ([]*domain.Poll, error)

	// IncrementViews atomically adds one to the view count and returns the updated poll.
	IncrementViews(ctx context.Context, id string) (*domain.Poll, error)
	// AppendVoter atomically appends userID to the voters of option optionIndex, provided
	// userID is absent from every option of the poll. Otherwise it fails with
	// domain.ErrAlreadyVoted and leaves the poll untouched.
	AppendVoter(ctx context.Context, pollID string, optionIndex int, userID string) error
}

type CreatePollInput struct {
	Title       string
	Description string
	Options     []string
	IsAnonymous bool
	StartTime   time.Time
	EndTime     time.Time
	Creator     *domain.User
}

type PollService interface {
	List(ctx context.Context) ([]*domain.PollView, error)
	Create(ctx context.Context, input CreatePollInput) (*domain.PollView, error)
	GetPoll(ctx context.Context, id string) (*domain.PollView, error)
	BestToday(ctx context.Context) ([]*domain.PollView, error)
}
