package memory

import (
	"context"
	"time"

	"github.com/vncsmyrnk/voteapp/internal/core/domain"
	"github.com/vncsmyrnk/voteapp/internal/core/ports"
)

type commentRepository struct {
	db *DB
}

func NewCommentRepository(db *DB) ports.CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(_ context.Context, comment *domain.Comment) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	comment.ID = newID()
	r.db.comments[comment.ID] = &record[domain.Comment]{seq: r.db.nextSeq(), value: *comment}
	return nil
}

func (r *commentRepository) GetByID(_ context.Context, id string) (*domain.Comment, error) {
	if err := validID(id); err != nil {
		return nil, err
	}

	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	rec, ok := r.db.comments[id]
	if !ok {
		return nil, domain.ErrCommentNotFound
	}
	comment := rec.value
	return &comment, nil
}

func (r *commentRepository) ListByPoll(_ context.Context, pollID string) ([]*domain.Comment, error) {
	if err := validID(pollID); err != nil {
		return nil, err
	}

	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	var records []*record[domain.Comment]
	for _, rec := range r.db.comments {
		if rec.value.PollID == pollID {
			records = append(records, rec)
		}
	}
	newestFirst(records, func(c *domain.Comment) time.Time { return c.CreatedAt })

	comments := make([]*domain.Comment, 0, len(records))
	for _, rec := range records {
		comment := rec.value
		comments = append(comments, &comment)
	}
	return comments, nil
}

func (r *commentRepository) UpdateContent(_ context.Context, id, content string, updatedAt time.Time) (*domain.Comment, error) {
	if err := validID(id); err != nil {
		return nil, err
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	rec, ok := r.db.comments[id]
	if !ok {
		return nil, domain.ErrCommentNotFound
	}
	rec.value.Content = content
	rec.value.UpdatedAt = updatedAt

	comment := rec.value
	return &comment, nil
}

func (r *commentRepository) Delete(_ context.Context, id string) error {
	if err := validID(id); err != nil {
		return err
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.comments[id]; !ok {
		return domain.ErrCommentNotFound
	}
	delete(r.db.comments, id)
	return nil
}
