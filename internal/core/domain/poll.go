package domain

import (
	"slices"
	"time"
)

type Status string

const (
	StatusUpcoming Status = "upcoming"
	StatusActive   Status = "active"
	StatusEnded    Status = "ended"
)

// Poll is a timed question users cast a single ballot against. The wire name is "vote".
type Poll struct {
	ID          string
	Title       string
	Description string
	Options     []Option
	IsAnonymous bool
	StartTime   time.Time
	EndTime     time.Time
	CreatedBy   string
	ViewCount   int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Option holds the ids of the users who chose it, in casting order.
type Option struct {
	Text   string
	Voters []string
}

// StatusAt derives the lifecycle status. Both boundary instants count as active.
func (p *Poll) StatusAt(now time.Time) Status {
	switch {
	case now.Before(p.StartTime):
		return StatusUpcoming
	case now.After(p.EndTime):
		return StatusEnded
	default:
		return StatusActive
	}
}

func (p *Poll) TotalVotes() int {
	total := 0
	for _, opt := range p.Options {
		total += len(opt.Voters)
	}
	return total
}

// HasVoted reports whether userID appears in any option's voter set.
func (p *Poll) HasVoted(userID string) bool {
	for _, opt := range p.Options {
		if slices.Contains(opt.Voters, userID) {
			return true
		}
	}
	return false
}

// PopularityScore ranks polls for the "best today" listing: views + 3 per ballot.
func (p *Poll) PopularityScore() int64 {
	return p.ViewCount + 3*int64(p.TotalVotes())
}

// PollView is the response shape of a poll.
type PollView struct {
	ID              string       `json:"_id"`
	Title           string       `json:"title"`
	Description     string       `json:"description,omitempty"`
	Options         []OptionView `json:"options"`
	IsAnonymous     bool         `json:"isAnonymous"`
	StartTime       time.Time    `json:"startTime"`
	EndTime         time.Time    `json:"endTime"`
	CreatedBy       UserSummary  `json:"createdBy"`
	ViewCount       int64        `json:"viewCount"`
	Status          Status       `json:"status"`
	TotalVotes      int          `json:"totalVotes"`
	PopularityScore *int64       `json:"popularityScore,omitempty"`
	CreatedAt       time.Time    `json:"createdAt"`
	UpdatedAt       time.Time    `json:"updatedAt"`
}

// OptionView carries voter identities only for non-anonymous polls.
type OptionView struct {
	Text      string        `json:"text"`
	VoteCount int           `json:"voteCount"`
	Votes     []UserSummary `json:"votes,omitzero"`
}

// View builds the response shape. voters resolves voter ids to summaries; ids missing from
// it are rendered id-only. Voter identities are dropped entirely for anonymous polls.
func (p *Poll) View(now time.Time, creator UserSummary, voters map[string]UserSummary) *PollView {
	view := &PollView{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Options:     make([]OptionView, 0, len(p.Options)),
		IsAnonymous: p.IsAnonymous,
		StartTime:   p.StartTime,
		EndTime:     p.EndTime,
		CreatedBy:   creator,
		ViewCount:   p.ViewCount,
		Status:      p.StatusAt(now),
		TotalVotes:  p.TotalVotes(),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}

	for _, opt := range p.Options {
		ov := OptionView{Text: opt.Text, VoteCount: len(opt.Voters)}
		if !p.IsAnonymous {
			ov.Votes = make([]UserSummary, 0, len(opt.Voters))
			for _, id := range opt.Voters {
				summary, ok := voters[id]
				if !ok {
					summary = UserSummary{ID: id}
				}
				ov.Votes = append(ov.Votes, summary)
			}
		}
		view.Options = append(view.Options, ov)
	}

	return view
}
