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

type commentRepository struct {
	db *sql.DB
}

func NewCommentRepository(db *sql.DB) ports.CommentRepository {
	return &commentRepository{db: db}
}

const commentColumns = `id, poll_id, author_id, content, created_at, updated_at`

func (r *commentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	pollID, err := parseID(comment.PollID)
	if err != nil {
		return err
	}
	authorID, err := parseID(comment.AuthorID)
	if err != nil {
		return err
	}

	id := uuid.New()
	query := `
		INSERT INTO comments (id, poll_id, author_id, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = r.db.ExecContext(ctx, query, id, pollID, authorID, comment.Content, comment.CreatedAt, comment.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert comment: %w", err)
	}

	comment.ID = id.String()
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id string) (*domain.Comment, error) {
	parsed, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return r.getOne(ctx, `SELECT `+commentColumns+` FROM comments WHERE id = $1`, parsed)
}

func (r *commentRepository) ListByPoll(ctx context.Context, pollID string) ([]*domain.Comment, error) {
	parsed, err := parseID(pollID)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + commentColumns + ` FROM comments WHERE poll_id = $1 ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, query, parsed)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	comments := []*domain.Comment{}
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comments: %w", err)
	}
	return comments, nil
}

func (r *commentRepository) UpdateContent(ctx context.Context, id, content string, updatedAt time.Time) (*domain.Comment, error) {
	parsed, err := parseID(id)
	if err != nil {
		return nil, err
	}
	query := `UPDATE comments SET content = $2, updated_at = $3 WHERE id = $1 RETURNING ` + commentColumns
	return r.getOne(ctx, query, parsed, content, updatedAt)
}

func (r *commentRepository) Delete(ctx context.Context, id string) error {
	parsed, err := parseID(id)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, parsed)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	if affected == 0 {
		return domain.ErrCommentNotFound
	}
	return nil
}

func (r *commentRepository) getOne(ctx context.Context, query string, args ...any) (*domain.Comment, error) {
	comment, err := scanComment(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCommentNotFound
		}
		return nil, err
	}
	return comment, nil
}

func scanComment(s scanner) (*domain.Comment, error) {
	var (
		comment domain.Comment
		id      uuid.UUID
		pollID  uuid.UUID
		author  uuid.UUID
	)
	if err := s.Scan(&id, &pollID, &author, &comment.Content, &comment.CreatedAt, &comment.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan comment: %w", err)
	}
	comment.ID = id.String()
	comment.PollID = pollID.String()
	comment.AuthorID = author.String()
	return &comment, nil
}
