package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vncsmyrnk/voteapp/internal/core/domain"
)

var (
	start = time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	end   = start.Add(2 * time.Hour)
)

func samplePoll(anonymous bool) *domain.Poll {
	return &domain.Poll{
		ID:          "p1",
		Title:       "Best language",
		IsAnonymous: anonymous,
		Options: []domain.Option{
			{Text: "Go", Voters: []string{"u1", "u2"}},
			{Text: "Rust", Voters: []string{"u3"}},
			{Text: "Zig", Voters: []string{}},
		},
		StartTime: start,
		EndTime:   end,
		CreatedBy: "u0",
		ViewCount: 7,
	}
}

func TestPoll_StatusAt(t *testing.T) {
	p := samplePoll(false)

	tests := []struct {
		at   time.Time
		want domain.Status
	}{
		{start.Add(-time.Nanosecond), domain.StatusUpcoming},
		{start, domain.StatusActive},
		{start.Add(time.Hour), domain.StatusActive},
		{end, domain.StatusActive},
		{end.Add(time.Nanosecond), domain.StatusEnded},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, p.StatusAt(tt.at), "at %s", tt.at)
	}
}

func TestPoll_StatusNeverGoesBack(t *testing.T) {
	p := samplePoll(false)
	order := map[domain.Status]int{domain.StatusUpcoming: 0, domain.StatusActive: 1, domain.StatusEnded: 2}

	prev := order[p.StatusAt(start.Add(-time.Hour))]
	for at := start.Add(-time.Hour); at.Before(end.Add(time.Hour)); at = at.Add(7 * time.Minute) {
		cur := order[p.StatusAt(at)]
		assert.GreaterOrEqual(t, cur, prev)
		prev = cur
	}
}

func TestPoll_Counts(t *testing.T) {
	p := samplePoll(false)

	assert.Equal(t, 3, p.TotalVotes())
	assert.EqualValues(t, 7+3*3, p.PopularityScore())
	assert.True(t, p.HasVoted("u3"))
	assert.False(t, p.HasVoted("u9"))
}

func TestPoll_View(t *testing.T) {
	p := samplePoll(false)
	creator := domain.UserSummary{ID: "u0", Username: "owner"}
	voters := map[string]domain.UserSummary{
		"u1": {ID: "u1", Username: "ann"},
		"u3": {ID: "u3", Username: "cid"},
	}

	view := p.View(start.Add(time.Minute), creator, voters)
	assert.Equal(t, domain.StatusActive, view.Status)
	assert.Equal(t, 3, view.TotalVotes)
	assert.Equal(t, creator, view.CreatedBy)
	require.Len(t, view.Options, 3)
	assert.Equal(t, []domain.UserSummary{{ID: "u1", Username: "ann"}, {ID: "u2"}}, view.Options[0].Votes)
	assert.Equal(t, 2, view.Options[0].VoteCount)
	assert.Equal(t, []domain.UserSummary{{ID: "u3", Username: "cid"}}, view.Options[1].Votes)

	raw, err := json.Marshal(view)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"_id":"p1"`)
	assert.Contains(t, string(raw), `"votes":[]`)
	assert.NotContains(t, string(raw), `popularityScore`)
}

func TestPoll_ViewAnonymous(t *testing.T) {
	p := samplePoll(true)
	voters := map[string]domain.UserSummary{"u1": {ID: "u1", Username: "ann"}}

	view := p.View(end.Add(time.Minute), domain.UserSummary{ID: "u0"}, voters)
	assert.Equal(t, domain.StatusEnded, view.Status)
	assert.Equal(t, 3, view.TotalVotes)
	for _, opt := range view.Options {
		assert.Nil(t, opt.Votes)
	}
	assert.Equal(t, []int{2, 1, 0}, []int{view.Options[0].VoteCount, view.Options[1].VoteCount, view.Options[2].VoteCount})

	raw, err := json.Marshal(view)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), `"votes"`)
	assert.NotContains(t, string(raw), `u1`)
}
