package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/vncsmyrnk/voteapp/internal/core/domain"
	"github.com/vncsmyrnk/voteapp/internal/core/ports"
)

const bestTodayLimit = 3

type pollService struct {
	polls ports.PollRepository
	users ports.UserRepository
	clock Clock
}

func NewPollService(polls ports.PollRepository, users ports.UserRepository, clock Clock) ports.PollService {
	return &pollService{
		polls: polls,
		users: users,
		clock: clock,
	}
}

func (s *pollService) List(ctx context.Context) ([]*domain.PollView, error) {
	polls, err := s.polls.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list polls: %w", err)
	}
	return s.views(ctx, polls)
}

func (s *pollService) Create(ctx context.Context, input ports.CreatePollInput) (*domain.PollView, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, domain.ErrTitleRequired
	}
	if len(input.Options) < 2 {
		return nil, domain.ErrInsufficientOptions
	}
	if !input.StartTime.Before(input.EndTime) {
		return nil, domain.ErrInvalidTimeRange
	}

	now := s.clock.now()
	poll := &domain.Poll{
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Options:     make([]domain.Option, 0, len(input.Options)),
		IsAnonymous: input.IsAnonymous,
		StartTime:   input.StartTime.UTC(),
		EndTime:     input.EndTime.UTC(),
		CreatedBy:   input.Creator.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, text := range input.Options {
		text = strings.TrimSpace(text)
		if text == "" {
			return nil, domain.ErrEmptyOption
		}
		poll.Options = append(poll.Options, domain.Option{Text: text, Voters: []string{}})
	}

	if err := s.polls.Create(ctx, poll); err != nil {
		return nil, fmt.Errorf("failed to create poll: %w", err)
	}

	return poll.View(now, input.Creator.Summary(), nil), nil
}

// GetPoll counts every read as a view, then expands voter identities unless the poll is anonymous.
func (s *pollService) GetPoll(ctx context.Context, id string) (*domain.PollView, error) {
	poll, err := s.polls.IncrementViews(ctx, id)
	if err != nil {
		return nil, err
	}

	ids := []string{poll.CreatedBy}
	if !poll.IsAnonymous {
		for _, opt := range poll.Options {
			ids = append(ids, opt.Voters...)
		}
	}

	summaries, err := userSummaries(ctx, s.users, ids)
	if err != nil {
		return nil, err
	}

	return poll.View(s.clock.now(), summaryOf(summaries, poll.CreatedBy), summaries), nil
}

// BestToday ranks the polls created since UTC midnight by popularity score and keeps the top three.
// Equal scores fall back to newest first, then to the higher id.
func (s *pollService) BestToday(ctx context.Context) ([]*domain.PollView, error) {
	now := s.clock.now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	polls, err := s.polls.ListCreatedSince(ctx, startOfDay)
	if err != nil {
		return nil, fmt.Errorf("failed to list today's polls: %w", err)
	}

	sort.SliceStable(polls, func(i, j int) bool {
		a, b := polls[i], polls[j]
		if sa, sb := a.PopularityScore(), b.PopularityScore(); sa != sb {
			return sa > sb
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})
	if len(polls) > bestTodayLimit {
		polls = polls[:bestTodayLimit]
	}

	views, err := s.views(ctx, polls)
	if err != nil {
		return nil, err
	}
	for i, poll := range polls {
		score := poll.PopularityScore()
		views[i].PopularityScore = &score
	}
	return views, nil
}

func (s *pollService) views(ctx context.Context, polls []*domain.Poll) ([]*domain.PollView, error) {
	creators := make([]string, 0, len(polls))
	for _, poll := range polls {
		creators = append(creators, poll.CreatedBy)
	}

	summaries, err := userSummaries(ctx, s.users, creators)
	if err != nil {
		return nil, err
	}

	now := s.clock.now()
	views := make([]*domain.PollView, 0, len(polls))
	for _, poll := range polls {
		views = append(views, poll.View(now, summaryOf(summaries, poll.CreatedBy), nil))
	}
	return views, nil
}
