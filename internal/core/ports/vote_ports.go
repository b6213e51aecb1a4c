package ports

import (
	"context"

	"github.com/vncsmyrnk/voteapp/internal/core/domain"
)

type VoteInput struct {
	PollID      string
	OptionIndex int
	UserID      string
}

type VoteService interface {
	Vote(ctx context.Context, input VoteInput) (*domain.PollView, error)
}
