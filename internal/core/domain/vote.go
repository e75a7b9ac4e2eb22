package domain

import (
	"errors"
	"time"
)

// VoteType is the direction of a vote.
type VoteType string

const (
	VoteUp   VoteType = "up"
	VoteDown VoteType = "down"
)

var ErrInvalidVoteType = errors.New("vote type must be up or down")

// Valid reports whether v is one of the known directions.
func (v VoteType) Valid() bool {
	return v == VoteUp || v == VoteDown
}

// Weight is the contribution of a single vote to a post's score.
func (v VoteType) Weight() int64 {
	switch v {
	case VoteUp:
		return 1
	case VoteDown:
		return -1
	default:
		return 0
	}
}

// Vote is a single user's signal on one post. There is at most one Vote per
// (PostID, UserID) pair.
type Vote struct {
	PostID    string
	UserID    string
	Type      VoteType
	CreatedAt time.Time
	UpdatedAt time.Time
}
