package ports

import (
	"context"
)

// CastVoteInput is the DTO passed from the transport layer to VoteService.
type CastVoteInput struct {
	PostID   string
	VoterID  string
	VoteType string
}

// VoteService records votes.
type VoteService interface {
	CastVote(ctx context.Context, input CastVoteInput) error
}
