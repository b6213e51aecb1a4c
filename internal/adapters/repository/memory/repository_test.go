package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vncsmyrnk/voteapp/internal/adapters/repository/memory"
	"github.com/vncsmyrnk/voteapp/internal/adapters/repository/storetest"
	"github.com/vncsmyrnk/voteapp/internal/core/domain"
)

func TestMemoryStore(t *testing.T) {
	storetest.Run(t, func(t *testing.T) storetest.Stores {
		db := memory.NewDB()
		return storetest.Stores{
			Users:     memory.NewUserRepository(db),
			Polls:     memory.NewPollRepository(db),
			Comments:  memory.NewCommentRepository(db),
			UnknownID: uuid.NewString(),
		}
	})
}

func TestPollRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	polls := memory.NewPollRepository(memory.NewDB())

	now := time.Now().UTC()
	poll := &domain.Poll{
		Title:     "copies",
		Options:   []domain.Option{{Text: "A"}, {Text: "B"}},
		CreatedBy: uuid.NewString(),
		CreatedAt: now,
	}
	require.NoError(t, polls.Create(ctx, poll))

	got, err := polls.GetByID(ctx, poll.ID)
	require.NoError(t, err)
	got.Options[0].Voters = append(got.Options[0].Voters, "intruder")
	got.Title = "changed"

	again, err := polls.GetByID(ctx, poll.ID)
	require.NoError(t, err)
	assert.Equal(t, "copies", again.Title)
	assert.Empty(t, again.Options[0].Voters)
}
