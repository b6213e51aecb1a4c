// Package memory keeps users, polls and comments in process memory. It backs STORE_DRIVER=memory
// and serves as the fake store in service and handler tests.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/voteapp/internal/core/domain"
)

// DB is shared by the repositories of this package. A single mutex guards every collection,
// so each repository call is atomic with respect to all others.
type DB struct {
	mu       sync.RWMutex
	seq      int64
	users    map[string]*record[domain.User]
	polls    map[string]*record[domain.Poll]
	comments map[string]*record[domain.Comment]
}

type record[T any] struct {
	seq   int64
	value T
}

func NewDB() *DB {
	return &DB{
		users:    make(map[string]*record[domain.User]),
		polls:    make(map[string]*record[domain.Poll]),
		comments: make(map[string]*record[domain.Comment]),
	}
}

func (db *DB) nextSeq() int64 {
	db.seq++
	return db.seq
}

func newID() string {
	return uuid.NewString()
}

func validID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrInvalidID
	}
	return nil
}

// newestFirst orders by creation time, then by insertion order, both descending.
func newestFirst[T any](records []*record[T], createdAt func(*T) time.Time) {
	sort.Slice(records, func(i, j int) bool {
		a, b := createdAt(&records[i].value), createdAt(&records[j].value)
		if !a.Equal(b) {
			return a.After(b)
		}
		return records[i].seq > records[j].seq
	})
}

func clonePoll(p domain.Poll) *domain.Poll {
	p.Options = append([]domain.Option(nil), p.Options...)
	for i := range p.Options {
		p.Options[i].Voters = append([]string{}, p.Options[i].Voters...)
	}
	return &p
}
