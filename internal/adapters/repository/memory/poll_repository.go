package memory

import (
	"context"
	"time"

	"github.com/vncsmyrnk/voteapp/internal/core/domain"
	"github.com/vncsmyrnk/voteapp/internal/core/ports"
)

type pollRepository struct {
	db *DB
}

func NewPollRepository(db *DB) ports.PollRepository {
	return &pollRepository{db: db}
}

func (r *pollRepository) Create(_ context.Context, poll *domain.Poll) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	poll.ID = newID()
	r.db.polls[poll.ID] = &record[domain.Poll]{seq: r.db.nextSeq(), value: *clonePoll(*poll)}
	return nil
}

func (r *pollRepository) GetByID(_ context.Context, id string) (*domain.Poll, error) {
	if err := validID(id); err != nil {
		return nil, err
	}

	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	rec, ok := r.db.polls[id]
	if !ok {
		return nil, domain.ErrPollNotFound
	}
	return clonePoll(rec.value), nil
}

func (r *pollRepository) List(ctx context.Context) ([]*domain.Poll, error) {
	return r.ListCreatedSince(ctx, time.Time{})
}

func (r *pollRepository) ListCreatedSince(_ context.Context, since time.Time) ([]*domain.Poll, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	records := make([]*record[domain.Poll], 0, len(r.db.polls))
	for _, rec := range r.db.polls {
		if !rec.value.CreatedAt.Before(since) {
			records = append(records, rec)
		}
	}
	newestFirst(records, func(p *domain.Poll) time.Time { return p.CreatedAt })

	polls := make([]*domain.Poll, 0, len(records))
	for _, rec := range records {
		polls = append(polls, clonePoll(rec.value))
	}
	return polls, nil
}

func (r *pollRepository) IncrementViews(_ context.Context, id string) (*domain.Poll, error) {
	if err := validID(id); err != nil {
		return nil, err
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	rec, ok := r.db.polls[id]
	if !ok {
		return nil, domain.ErrPollNotFound
	}
	rec.value.ViewCount++
	return clonePoll(rec.value), nil
}

func (r *pollRepository) AppendVoter(_ context.Context, pollID string, optionIndex int, userID string) error {
	if err := validID(pollID); err != nil {
		return err
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	rec, ok := r.db.polls[pollID]
	if !ok {
		return domain.ErrPollNotFound
	}
	if optionIndex < 0 || optionIndex >= len(rec.value.Options) {
		return domain.ErrInvalidOption
	}
	if rec.value.HasVoted(userID) {
		return domain.ErrAlreadyVoted
	}

	opt := &rec.value.Options[optionIndex]
	opt.Voters = append(opt.Voters, userID)
	return nil
}
