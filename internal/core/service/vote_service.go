package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/linkboard/linkboard-api/internal/core/domain"
	"github.com/linkboard/linkboard-api/internal/core/ports"
)

type voteService struct {
	repo ports.VoteRepository
	log  zerolog.Logger
}

// NewVoteService returns a VoteService implementation.
func NewVoteService(repo ports.VoteRepository, log zerolog.Logger) ports.VoteService {
	return &voteService{repo: repo, log: log}
}

// CastVote records the voter's stance on a post, replacing any earlier vote
// by the same voter. Authors may vote on their own posts.
func (s *voteService) CastVote(ctx context.Context, in ports.CastVoteInput) error {
	if in.VoterID == "" {
		return domain.ErrNotAuthenticated
	}

	voteType := domain.VoteType(in.VoteType)
	if !voteType.Valid() {
		return domain.ErrInvalidVoteType
	}

	now := time.Now().UTC()
	vote := &domain.Vote{
		PostID:    in.PostID,
		UserID:    in.VoterID,
		Type:      voteType,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Upsert(ctx, vote); err != nil {
		return fmt.Errorf("cast vote: %w", err)
	}

	s.log.Info().
		Str("post_id", in.PostID).
		Str("user_id", in.VoterID).
		Str("vote_type", in.VoteType).
		Msg("vote recorded")

	return nil
}
