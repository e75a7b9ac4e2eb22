package ports

import (
	"context"

	"github.com/linkboard/linkboard-api/internal/core/domain"
)

// VoteRepository persists votes.
type VoteRepository interface {
	// Upsert inserts the vote or, when (PostID, UserID) already has one,
	// overwrites its type in place. Returns domain.ErrPostNotFound when the
	// post does not exist.
	Upsert(ctx context.Context, v *domain.Vote) error
}
