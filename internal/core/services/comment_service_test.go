package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vncsmyrnk/voteapp/internal/core/domain"
	"github.com/vncsmyrnk/voteapp/internal/core/ports"
)

func TestCommentService_Create(t *testing.T) {
	app := setupTestApp(t)
	ctx := context.Background()
	alice := app.register(t, "alice")
	poll := app.createPoll(t, alice, "talk", false)

	view, err := app.commentSvc.Create(ctx, ports.CreateCommentInput{PollID: poll.ID, Content: "  nice poll  ", Author: alice})
	require.NoError(t, err)
	assert.NotEmpty(t, view.ID)
	assert.Equal(t, "nice poll", view.Content)
	assert.Equal(t, poll.ID, view.PollID)
	assert.Equal(t, domain.UserSummary{ID: alice.ID, Username: "alice"}, view.Author)
	assert.Equal(t, noon, view.CreatedAt)
	assert.Equal(t, noon, view.UpdatedAt)
}

func TestCommentService_ContentRules(t *testing.T) {
	app := setupTestApp(t)
	ctx := context.Background()
	alice := app.register(t, "alice")
	poll := app.createPoll(t, alice, "talk", false)

	tests := []struct {
		name    string
		content string
		want    error
	}{
		{"empty", "", domain.ErrEmptyContent},
		{"whitespace", " \n\t ", domain.ErrEmptyContent},
		{"too long", strings.Repeat("a", domain.MaxCommentLength+1), domain.ErrContentTooLong},
		{"at limit", strings.Repeat("é", domain.MaxCommentLength), nil},
		{"padded to limit", "  " + strings.Repeat("b", domain.MaxCommentLength) + "  ", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := app.commentSvc.Create(ctx, ports.CreateCommentInput{PollID: poll.ID, Content: tt.content, Author: alice})
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := app.commentSvc.Create(ctx, ports.CreateCommentInput{PollID: "6f1c2a8e-9d4b-4c1e-8a3f-2b7d9e0c5a14", Content: "hi", Author: alice})
	assert.ErrorIs(t, err, domain.ErrPollNotFound)
}

func TestCommentService_List(t *testing.T) {
	app := setupTestApp(t)
	ctx := context.Background()
	alice := app.register(t, "alice")
	bob := app.register(t, "bob")
	poll := app.createPoll(t, alice, "talk", false)

	_, err := app.commentSvc.Create(ctx, ports.CreateCommentInput{PollID: poll.ID, Content: "first", Author: alice})
	require.NoError(t, err)
	app.clock.Set(noon.Add(time.Minute))
	_, err = app.commentSvc.Create(ctx, ports.CreateCommentInput{PollID: poll.ID, Content: "second", Author: bob})
	require.NoError(t, err)

	comments, err := app.commentSvc.List(ctx, poll.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "second", comments[0].Content)
	assert.Equal(t, "bob", comments[0].Author.Username)
	assert.Equal(t, "first", comments[1].Content)
	assert.Equal(t, "alice", comments[1].Author.Username)

	_, err = app.commentSvc.List(ctx, "6f1c2a8e-9d4b-4c1e-8a3f-2b7d9e0c5a14")
	assert.ErrorIs(t, err, domain.ErrPollNotFound)
}

func TestCommentService_UpdateAndDelete(t *testing.T) {
	app := setupTestApp(t)
	ctx := context.Background()
	alice := app.register(t, "alice")
	bob := app.register(t, "bob")
	poll := app.createPoll(t, alice, "talk", false)

	comment, err := app.commentSvc.Create(ctx, ports.CreateCommentInput{PollID: poll.ID, Content: "draft", Author: alice})
	require.NoError(t, err)

	_, err = app.commentSvc.Update(ctx, ports.UpdateCommentInput{CommentID: comment.ID, Content: "hijack", Caller: bob})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.ErrorIs(t, app.commentSvc.Delete(ctx, comment.ID, bob), domain.ErrForbidden)

	_, err = app.commentSvc.Update(ctx, ports.UpdateCommentInput{CommentID: comment.ID, Content: "   ", Caller: alice})
	assert.ErrorIs(t, err, domain.ErrEmptyContent)

	app.clock.Set(noon.Add(5 * time.Minute))
	updated, err := app.commentSvc.Update(ctx, ports.UpdateCommentInput{CommentID: comment.ID, Content: " final ", Caller: alice})
	require.NoError(t, err)
	assert.Equal(t, "final", updated.Content)
	assert.Equal(t, noon, updated.CreatedAt)
	assert.Equal(t, noon.Add(5*time.Minute), updated.UpdatedAt)

	require.NoError(t, app.commentSvc.Delete(ctx, comment.ID, alice))
	comments, err := app.commentSvc.List(ctx, poll.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)

	assert.ErrorIs(t, app.commentSvc.Delete(ctx, comment.ID, alice), domain.ErrCommentNotFound)
	_, err = app.commentSvc.Update(ctx, ports.UpdateCommentInput{CommentID: comment.ID, Content: "ghost", Caller: alice})
	assert.ErrorIs(t, err, domain.ErrCommentNotFound)
}
