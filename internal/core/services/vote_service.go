package services

import (
	"context"
	"fmt"

	"github.com/vncsmyrnk/voteapp/internal/core/domain"
	"github.com/vncsmyrnk/voteapp/internal/core/ports"
)

type voteService struct {
	polls ports.PollRepository
	users ports.UserRepository
	clock Clock
}

func NewVoteService(polls ports.PollRepository, users ports.UserRepository, clock Clock) ports.VoteService {
	return &voteService{
		polls: polls,
		users: users,
		clock: clock,
	}
}

// Vote records a single ballot. The already-voted check below only short-circuits the common
// case; AppendVoter is the conditional update that actually enforces one ballot per user.
func (s *voteService) Vote(ctx context.Context, input ports.VoteInput) (*domain.PollView, error) {
	poll, err := s.polls.GetByID(ctx, input.PollID)
	if err != nil {
		return nil, err
	}

	if poll.StatusAt(s.clock.now()) != domain.StatusActive {
		return nil, domain.ErrVoteNotActive
	}
	if input.OptionIndex < 0 || input.OptionIndex >= len(poll.Options) {
		return nil, domain.ErrInvalidOption
	}
	if poll.HasVoted(input.UserID) {
		return nil, domain.ErrAlreadyVoted
	}

	if err := s.polls.AppendVoter(ctx, poll.ID, input.OptionIndex, input.UserID); err != nil {
		if domain.KindOf(err) != domain.KindInternal {
			return nil, err
		}
		return nil, fmt.Errorf("failed to save vote: %w", err)
	}

	updated, err := s.polls.GetByID(ctx, poll.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload poll: %w", err)
	}

	summaries, err := userSummaries(ctx, s.users, []string{updated.CreatedBy})
	if err != nil {
		return nil, err
	}

	return updated.View(s.clock.now(), summaryOf(summaries, updated.CreatedBy), nil), nil
}
