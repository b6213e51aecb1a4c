package services

import (
	"context"
	"fmt"

	"github.com/vncsmyrnk/voteapp/internal/core/domain"
	"github.com/vncsmyrnk/voteapp/internal/core/ports"
)

// userSummaries resolves ids to {id, username} pairs with a single store lookup.
// Users that no longer resolve are left out; callers render them id-only.
func userSummaries(ctx context.Context, users ports.UserRepository, ids []string) (map[string]domain.UserSummary, error) {
	summaries := make(map[string]domain.UserSummary, len(ids))
	if len(ids) == 0 {
		return summaries, nil
	}

	seen := make(map[string]struct{}, len(ids))
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	found, err := users.GetByIDs(ctx, unique)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve users: %w", err)
	}
	for id, user := range found {
		summaries[id] = user.Summary()
	}
	return summaries, nil
}

func summaryOf(summaries map[string]domain.UserSummary, id string) domain.UserSummary {
	if s, ok := summaries[id]; ok {
		return s
	}
	return domain.UserSummary{ID: id}
}
