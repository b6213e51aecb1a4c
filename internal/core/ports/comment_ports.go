package ports

import (
	"context"
	"time"

	"github.com/vncsmyrnk/voteapp/internal/core/domain"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	GetByID(ctx context.Context, id string) (*domain.Comment, error)
	// ListByPoll returns the comments of a poll, newest first.
	ListByPoll(ctx context.Context, pollID string) ([]*domain.Comment, error)
	UpdateContent(ctx context.Context, id, content string, updatedAt time.Time) (*domain.Comment, error)
	Delete(ctx context.Context, id string) error
}

type CreateCommentInput struct {
	PollID  string
	Content string
	Author  *domain.User
}

type UpdateCommentInput struct {
	CommentID string
	Content   string
	Caller    *domain.User
}

type CommentService interface {
	List(ctx context.Context, pollID string) ([]*domain.CommentView, error)
	Create(ctx context.Context, input CreateCommentInput) (*domain.CommentView, error)
	Update(ctx context.Context, input UpdateCommentInput) (*domain.CommentView, error)
	Delete(ctx context.Context, commentID string, caller *domain.User) error
}
