package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/vncsmyrnk/voteapp/internal/core/domain"
	"github.com/vncsmyrnk/voteapp/internal/core/ports"
)

type commentService struct {
	comments ports.CommentRepository
	polls    ports.PollRepository
	users    ports.UserRepository
	clock    Clock
}

func NewCommentService(comments ports.CommentRepository, polls ports.PollRepository, users ports.UserRepository, clock Clock) ports.CommentService {
	return &commentService{
		comments: comments,
		polls:    polls,
		users:    users,
		clock:    clock,
	}
}

func (s *commentService) List(ctx context.Context, pollID string) ([]*domain.CommentView, error) {
	if _, err := s.polls.GetByID(ctx, pollID); err != nil {
		return nil, err
	}

	comments, err := s.comments.ListByPoll(ctx, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	authors := make([]string, 0, len(comments))
	for _, c := range comments {
		authors = append(authors, c.AuthorID)
	}
	summaries, err := userSummaries(ctx, s.users, authors)
	if err != nil {
		return nil, err
	}

	views := make([]*domain.CommentView, 0, len(comments))
	for _, c := range comments {
		views = append(views, c.View(summaryOf(summaries, c.AuthorID)))
	}
	return views, nil
}

func (s *commentService) Create(ctx context.Context, input ports.CreateCommentInput) (*domain.CommentView, error) {
	content, err := validContent(input.Content)
	if err != nil {
		return nil, err
	}

	poll, err := s.polls.GetByID(ctx, input.PollID)
	if err != nil {
		return nil, err
	}

	now := s.clock.now()
	comment := &domain.Comment{
		Content:   content,
		PollID:    poll.ID,
		AuthorID:  input.Author.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	return comment.View(input.Author.Summary()), nil
}

func (s *commentService) Update(ctx context.Context, input ports.UpdateCommentInput) (*domain.CommentView, error) {
	content, err := validContent(input.Content)
	if err != nil {
		return nil, err
	}

	comment, err := s.comments.GetByID(ctx, input.CommentID)
	if err != nil {
		return nil, err
	}
	if comment.AuthorID != input.Caller.ID {
		return nil, domain.ErrForbidden
	}

	updated, err := s.comments.UpdateContent(ctx, comment.ID, content, s.clock.now())
	if err != nil {
		return nil, err
	}

	return updated.View(input.Caller.Summary()), nil
}

func (s *commentService) Delete(ctx context.Context, commentID string, caller *domain.User) error {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.AuthorID != caller.ID {
		return domain.ErrForbidden
	}

	return s.comments.Delete(ctx, comment.ID)
}

func validContent(raw string) (string, error) {
	content := strings.TrimSpace(raw)
	if content == "" {
		return "", domain.ErrEmptyContent
	}
	if utf8.RuneCountInString(content) > domain.MaxCommentLength {
		return "", domain.ErrContentTooLong
	}
	return content, nil
}
