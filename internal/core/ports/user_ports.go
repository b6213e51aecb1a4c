package ports

import (
	"context"

	"github.com/vncsmyrnk/voteapp/internal/core/domain"
)

type UserRepository interface {
	// Create stores the user and sets its ID. Email and username collisions are reported as
	// domain.ErrDuplicateEmail and domain.ErrDuplicateUsername.
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	// GetByIDs resolves several users at once. Unknown or malformed ids are absent from the result.
	GetByIDs(ctx context.Context, ids []string) (map[string]*domain.User, error)
}
