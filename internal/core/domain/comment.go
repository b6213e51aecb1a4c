package domain

import "time"

// MaxCommentLength is measured in characters of the trimmed content.
const MaxCommentLength = 500

type Comment struct {
	ID        string
	Content   string
	PollID    string
	AuthorID  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type CommentView struct {
	ID        string      `json:"_id"`
	Content   string      `json:"content"`
	PollID    string      `json:"vote"`
	Author    UserSummary `json:"author"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

func (c *Comment) View(author UserSummary) *CommentView {
	return &CommentView{
		ID:        c.ID,
		Content:   c.Content,
		PollID:    c.PollID,
		Author:    author,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
