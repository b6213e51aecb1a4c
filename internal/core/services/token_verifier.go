package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/vncsmyrnk/voteapp/internal/core/domain"
	"github.com/vncsmyrnk/voteapp/internal/core/ports"
)

type tokenVerifier struct {
	tokens ports.TokenCodec
	users  ports.UserRepository
}

func NewTokenVerifier(tokens ports.TokenCodec, users ports.UserRepository) ports.TokenVerifier {
	return &tokenVerifier{
		tokens: tokens,
		users:  users,
	}
}

// Verify fails with domain.ErrUnauthenticated for bad, expired or orphaned tokens. Store
// failures are returned as-is so they are not mistaken for client errors.
func (v *tokenVerifier) Verify(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, domain.ErrUnauthenticated
	}

	subject, err := v.tokens.Subject(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthenticated, err)
	}

	user, err := v.users.GetByID(ctx, subject)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrInvalidID) {
			return nil, fmt.Errorf("%w: %v", domain.ErrUnauthenticated, err)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}
