package memory

import (
	"context"

	"github.com/vncsmyrnk/voteapp/internal/core/domain"
	"github.com/vncsmyrnk/voteapp/internal/core/ports"
)

type userRepository struct {
	db *DB
}

func NewUserRepository(db *DB) ports.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(_ context.Context, user *domain.User) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, rec := range r.db.users {
		if rec.value.Email == user.Email {
			return domain.ErrDuplicateEmail
		}
		if rec.value.Username == user.Username {
			return domain.ErrDuplicateUsername
		}
	}

	user.ID = newID()
	r.db.users[user.ID] = &record[domain.User]{seq: r.db.nextSeq(), value: *user}
	return nil
}

func (r *userRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	if err := validID(id); err != nil {
		return nil, err
	}

	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	rec, ok := r.db.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	user := rec.value
	return &user, nil
}

func (r *userRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.Email == email })
}

func (r *userRepository) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.Username == username })
}

func (r *userRepository) GetByIDs(_ context.Context, ids []string) (map[string]*domain.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	users := make(map[string]*domain.User, len(ids))
	for _, id := range ids {
		if rec, ok := r.db.users[id]; ok {
			user := rec.value
			users[id] = &user
		}
	}
	return users, nil
}

func (r *userRepository) find(match func(*domain.User) bool) (*domain.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, rec := range r.db.users {
		if match(&rec.value) {
			user := rec.value
			return &user, nil
		}
	}
	return nil, domain.ErrUserNotFound
}
