package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vncsmyrnk/voteapp/internal/core/domain"
	"github.com/vncsmyrnk/voteapp/internal/core/ports"
)

func TestPollService_Create(t *testing.T) {
	app := setupTestApp(t)
	ctx := context.Background()
	alice := app.register(t, "alice")

	view, err := app.pollSvc.Create(ctx, ports.CreatePollInput{
		Title:       "  Lunch?  ",
		Description: " where to eat ",
		Options:     []string{" Pizza ", "Sushi"},
		StartTime:   noon.Add(time.Hour),
		EndTime:     noon.Add(2 * time.Hour),
		Creator:     alice,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, view.ID)
	assert.Equal(t, "Lunch?", view.Title)
	assert.Equal(t, "where to eat", view.Description)
	assert.Equal(t, domain.StatusUpcoming, view.Status)
	assert.Equal(t, domain.UserSummary{ID: alice.ID, Username: "alice"}, view.CreatedBy)
	assert.Zero(t, view.ViewCount)
	assert.Zero(t, view.TotalVotes)
	assert.Nil(t, view.PopularityScore)
	require.Len(t, view.Options, 2)
	assert.Equal(t, "Pizza", view.Options[0].Text)
	assert.Equal(t, "Sushi", view.Options[1].Text)
	assert.Equal(t, noon, view.CreatedAt)
}

func TestPollService_CreateValidation(t *testing.T) {
	app := setupTestApp(t)
	alice := app.register(t, "alice")

	valid := func() ports.CreatePollInput {
		return ports.CreatePollInput{
			Title:     "Question",
			Options:   []string{"Yes", "No"},
			StartTime: noon,
			EndTime:   noon.Add(time.Hour),
			Creator:   alice,
		}
	}

	tests := []struct {
		name   string
		mutate func(*ports.CreatePollInput)
		want   error
	}{
		{"blank title", func(in *ports.CreatePollInput) { in.Title = "   " }, domain.ErrTitleRequired},
		{"single option", func(in *ports.CreatePollInput) { in.Options = []string{"Yes"} }, domain.ErrInsufficientOptions},
		{"no options", func(in *ports.CreatePollInput) { in.Options = nil }, domain.ErrInsufficientOptions},
		{"end equals start", func(in *ports.CreatePollInput) { in.EndTime = in.StartTime }, domain.ErrInvalidTimeRange},
		{"end before start", func(in *ports.CreatePollInput) { in.EndTime = in.StartTime.Add(-time.Minute) }, domain.ErrInvalidTimeRange},
		{"blank option", func(in *ports.CreatePollInput) { in.Options = []string{"Yes", "  "} }, domain.ErrEmptyOption},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := valid()
			tt.mutate(&input)
			_, err := app.pollSvc.Create(context.Background(), input)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, domain.KindValidation, domain.KindOf(err))
		})
	}

	polls, err := app.pollSvc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, polls)
}

func TestPollService_GetPollCountsViews(t *testing.T) {
	app := setupTestApp(t)
	ctx := context.Background()
	alice := app.register(t, "alice")
	poll := app.createPoll(t, alice, "views", false)

	for want := int64(1); want <= 3; want++ {
		view, err := app.pollSvc.GetPoll(ctx, poll.ID)
		require.NoError(t, err)
		assert.Equal(t, want, view.ViewCount)
	}

	listed, err := app.pollSvc.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.EqualValues(t, 3, listed[0].ViewCount, "listing does not count as a view")

	_, err = app.pollSvc.GetPoll(ctx, "not-an-id")
	assert.ErrorIs(t, err, domain.ErrInvalidID)
	_, err = app.pollSvc.GetPoll(ctx, "6f1c2a8e-9d4b-4c1e-8a3f-2b7d9e0c5a14")
	assert.ErrorIs(t, err, domain.ErrPollNotFound)
}

func TestPollService_GetPollVoterIdentities(t *testing.T) {
	app := setupTestApp(t)
	ctx := context.Background()
	alice := app.register(t, "alice")
	bob := app.register(t, "bob")

	public := app.createPoll(t, alice, "public", false)
	secret := app.createPoll(t, alice, "secret", true)
	for _, id := range []string{public.ID, secret.ID} {
		_, err := app.voteSvc.Vote(ctx, ports.VoteInput{PollID: id, OptionIndex: 2, UserID: bob.ID})
		require.NoError(t, err)
	}

	view, err := app.pollSvc.GetPoll(ctx, public.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, view.TotalVotes)
	assert.Equal(t, 1, view.Options[2].VoteCount)
	assert.Equal(t, []domain.UserSummary{{ID: bob.ID, Username: "bob"}}, view.Options[2].Votes)
	assert.Empty(t, view.Options[0].Votes)
	assert.Equal(t, "alice", view.CreatedBy.Username)

	view, err = app.pollSvc.GetPoll(ctx, secret.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, view.TotalVotes)
	assert.Equal(t, 1, view.Options[2].VoteCount)
	for _, opt := range view.Options {
		assert.Nil(t, opt.Votes)
	}
}

func TestPollService_ListNewestFirst(t *testing.T) {
	app := setupTestApp(t)
	alice := app.register(t, "alice")

	first := app.createPoll(t, alice, "first", false)
	app.clock.Set(noon.Add(time.Minute))
	second := app.createPoll(t, alice, "second", false)

	polls, err := app.pollSvc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, polls, 2)
	assert.Equal(t, second.ID, polls[0].ID)
	assert.Equal(t, first.ID, polls[1].ID)
	assert.Equal(t, "alice", polls[0].CreatedBy.Username)
}

func TestPollService_BestToday(t *testing.T) {
	app := setupTestApp(t)
	ctx := context.Background()
	alice := app.register(t, "alice")
	voters := []*domain.User{app.register(t, "v1"), app.register(t, "v2")}

	app.clock.Set(noon.Add(-24 * time.Hour))
	yesterday := app.createPoll(t, alice, "yesterday", false)

	app.clock.Set(noon)
	quiet := app.createPoll(t, alice, "quiet", false)
	viewed := app.createPoll(t, alice, "viewed", false)
	voted := app.createPoll(t, alice, "voted", false)
	app.clock.Set(noon.Add(time.Minute))
	tied := app.createPoll(t, alice, "tied", false)

	// viewed: 4 views. voted: 2 ballots + 0 views = 6. tied: 1 ballot + 1 view = 4, but newer than viewed.
	for i := 0; i < 4; i++ {
		_, err := app.pollSvc.GetPoll(ctx, viewed.ID)
		require.NoError(t, err)
	}
	for _, v := range voters {
		_, err := app.voteSvc.Vote(ctx, ports.VoteInput{PollID: voted.ID, OptionIndex: 0, UserID: v.ID})
		require.NoError(t, err)
	}
	_, err := app.voteSvc.Vote(ctx, ports.VoteInput{PollID: tied.ID, OptionIndex: 1, UserID: voters[0].ID})
	require.NoError(t, err)
	_, err = app.pollSvc.GetPoll(ctx, tied.ID)
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		_, err := app.pollSvc.GetPoll(ctx, yesterday.ID)
		require.NoError(t, err)
	}

	best, err := app.pollSvc.BestToday(ctx)
	require.NoError(t, err)
	require.Len(t, best, 3)

	assert.Equal(t, voted.ID, best[0].ID)
	assert.Equal(t, tied.ID, best[1].ID)
	assert.Equal(t, viewed.ID, best[2].ID)
	for i, want := range []int64{6, 4, 4} {
		require.NotNil(t, best[i].PopularityScore)
		assert.Equal(t, want, *best[i].PopularityScore)
	}
	for _, view := range best {
		assert.NotEqual(t, quiet.ID, view.ID)
		assert.NotEqual(t, yesterday.ID, view.ID)
	}
}

func TestPollService_BestTodayEmpty(t *testing.T) {
	app := setupTestApp(t)

	best, err := app.pollSvc.BestToday(context.Background())
	require.NoError(t, err)
	assert.Empty(t, best)
}
