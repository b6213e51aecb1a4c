package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vncsmyrnk/voteapp/internal/core/domain"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		err  error
		want domain.Kind
	}{
		{domain.ErrTitleRequired, domain.KindValidation},
		{domain.ErrVoteNotActive, domain.KindValidation},
		{domain.ErrInvalidCredentials, domain.KindValidation},
		{domain.ErrAlreadyVoted, domain.KindConflict},
		{domain.ErrDuplicateEmail, domain.KindConflict},
		{domain.ErrPollNotFound, domain.KindNotFound},
		{domain.ErrCommentNotFound, domain.KindNotFound},
		{domain.ErrForbidden, domain.KindForbidden},
		{fmt.Errorf("%w: token is expired", domain.ErrUnauthenticated), domain.KindUnauthenticated},
		{fmt.Errorf("failed to save: %w", domain.ErrAlreadyVoted), domain.KindConflict},
		{errors.New("connection reset"), domain.KindInternal},
		{nil, domain.KindInternal},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, domain.KindOf(tt.err), "%v", tt.err)
	}
}
