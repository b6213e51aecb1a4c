package hasher

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/vncsmyrnk/voteapp/internal/core/ports"
)

type BcryptHasher struct {
	cost int
}

func NewBcryptHasher(cost int) ports.PasswordHasher {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (h *BcryptHasher) Compare(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
