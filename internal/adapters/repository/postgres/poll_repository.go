package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vncsmyrnk/voteapp/internal/core/domain"
	"github.com/vncsmyrnk/voteapp/internal/core/ports"
)

type pollRepository struct {
	db *sql.DB
}

func NewPollRepository(db *sql.DB) ports.PollRepository {
	return &pollRepository{
		db: db,
	}
}

const pollColumns = `id, title, description, is_anonymous, start_time, end_time, created_by, view_count, created_at, updated_at`

func (r *pollRepository) Create(ctx context.Context, poll *domain.Poll) error {
	creator, err := parseID(poll.CreatedBy)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	id := uuid.New()
	queryPoll := `
		INSERT INTO polls (id, title, description, is_anonymous, start_time, end_time, created_by, view_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err = tx.ExecContext(ctx, queryPoll, id, poll.Title, poll.Description, poll.IsAnonymous,
		poll.StartTime, poll.EndTime, creator, poll.ViewCount, poll.CreatedAt, poll.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert poll: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO poll_options (poll_id, position, text) VALUES ($1, $2, $3)`)
	if err != nil {
		return fmt.Errorf("failed to prepare option statement: %w", err)
	}
	defer stmt.Close()

	for i, opt := range poll.Options {
		if _, err = stmt.ExecContext(ctx, id, i, opt.Text); err != nil {
			return fmt.Errorf("failed to insert option: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	poll.ID = id.String()
	return nil
}

func (r *pollRepository) GetByID(ctx context.Context, id string) (*domain.Poll, error) {
	parsed, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return r.getOne(ctx, `SELECT `+pollColumns+` FROM polls WHERE id = $1`, parsed)
}

func (r *pollRepository) List(ctx context.Context) ([]*domain.Poll, error) {
	return r.ListCreatedSince(ctx, time.Time{})
}

func (r *pollRepository) ListCreatedSince(ctx context.Context, since time.Time) ([]*domain.Poll, error) {
	query := `
		SELECT ` + pollColumns + `
		FROM polls
		WHERE created_at >= $1
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("failed to list polls: %w", err)
	}
	defer rows.Close()

	var polls []*domain.Poll
	for rows.Next() {
		poll, err := scanPoll(rows)
		if err != nil {
			return nil, err
		}
		polls = append(polls, poll)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating polls: %w", err)
	}
	rows.Close()

	for _, poll := range polls {
		if err := r.fetchOptions(ctx, poll); err != nil {
			return nil, err
		}
	}
	return polls, nil
}

func (r *pollRepository) IncrementViews(ctx context.Context, id string) (*domain.Poll, error) {
	parsed, err := parseID(id)
	if err != nil {
		return nil, err
	}
	query := `UPDATE polls SET view_count = view_count + 1 WHERE id = $1 RETURNING ` + pollColumns
	return r.getOne(ctx, query, parsed)
}

func (r *pollRepository) getOne(ctx context.Context, query string, arg any) (*domain.Poll, error) {
	poll, err := scanPoll(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPollNotFound
		}
		return nil, err
	}

	if err := r.fetchOptions(ctx, poll); err != nil {
		return nil, err
	}
	return poll, nil
}

func scanPoll(s scanner) (*domain.Poll, error) {
	var (
		poll    domain.Poll
		id      uuid.UUID
		creator uuid.UUID
	)
	err := s.Scan(&id, &poll.Title, &poll.Description, &poll.IsAnonymous, &poll.StartTime, &poll.EndTime,
		&creator, &poll.ViewCount, &poll.CreatedAt, &poll.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan poll: %w", err)
	}
	poll.ID = id.String()
	poll.CreatedBy = creator.String()
	return &poll, nil
}

func (r *pollRepository) fetchOptions(ctx context.Context, poll *domain.Poll) error {
	rows, err := r.db.QueryContext(ctx, `SELECT text FROM poll_options WHERE poll_id = $1 ORDER BY position`, poll.ID)
	if err != nil {
		return fmt.Errorf("failed to get poll options: %w", err)
	}
	defer rows.Close()

	poll.Options = poll.Options[:0]
	for rows.Next() {
		opt := domain.Option{Voters: []string{}}
		if err := rows.Scan(&opt.Text); err != nil {
			return fmt.Errorf("failed to scan option: %w", err)
		}
		poll.Options = append(poll.Options, opt)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating options: %w", err)
	}

	return r.fetchVoters(ctx, poll)
}
