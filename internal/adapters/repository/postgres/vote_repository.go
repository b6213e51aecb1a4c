package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/vncsmyrnk/voteapp/internal/core/domain"
)

// AppendVoter records a ballot. The unique (poll_id, user_id) constraint makes concurrent
// ballots from the same user resolve to exactly one row.
func (r *pollRepository) AppendVoter(ctx context.Context, pollID string, optionIndex int, userID string) error {
	poll, err := r.GetByID(ctx, pollID)
	if err != nil {
		return err
	}
	if optionIndex < 0 || optionIndex >= len(poll.Options) {
		return domain.ErrInvalidOption
	}
	voter, err := parseID(userID)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO ballots (poll_id, option_index, user_id)
		VALUES ($1, $2, $3)
		ON CONFLICT ON CONSTRAINT ballots_poll_user_key DO NOTHING
	`
	res, err := r.db.ExecContext(ctx, query, poll.ID, optionIndex, voter)
	if err != nil {
		return fmt.Errorf("failed to save ballot: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to save ballot: %w", err)
	}
	if affected == 0 {
		return domain.ErrAlreadyVoted
	}
	return nil
}

func (r *pollRepository) fetchVoters(ctx context.Context, poll *domain.Poll) error {
	query := `SELECT option_index, user_id FROM ballots WHERE poll_id = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, poll.ID)
	if err != nil {
		return fmt.Errorf("failed to get ballots: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			index int
			voter uuid.UUID
		)
		if err := rows.Scan(&index, &voter); err != nil {
			return fmt.Errorf("failed to scan ballot: %w", err)
		}
		if index >= 0 && index < len(poll.Options) {
			poll.Options[index].Voters = append(poll.Options[index].Voters, voter.String())
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating ballots: %w", err)
	}
	return nil
}
