package ports

import (
	"context"

	"github.com/vncsmyrnk/voteapp/internal/core/domain"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenCodec signs and checks bearer tokens whose subject is a user id.
type TokenCodec interface {
	Issue(subject string) (string, error)
	Subject(token string) (string, error)
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.AuthResult, error)
	Login(ctx context.Context, input LoginInput) (*domain.AuthResult, error)
}

// TokenVerifier resolves a bearer token to the user it was issued for.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*domain.User, error)
}
