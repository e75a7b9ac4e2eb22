package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/linkboard/linkboard-api/internal/core/domain"
)

// SessionStore keeps login sessions in Redis.
// Key format: session:<id> -> hash{user_id, expires_at}
// The key expires at the session's absolute deadline and is never refreshed.
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore creates a SessionStore wrapping the given Redis client.
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

// Save writes the session and schedules its expiry.
func (s *SessionStore) Save(ctx context.Context, session *domain.Session) error {
	key := s.key(session.ID)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key,
			"user_id", session.UserID,
			"expires_at", strconv.FormatInt(session.ExpiresAt.Unix(), 10),
		)
		pipe.ExpireAt(ctx, key, session.ExpiresAt)
		return nil
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Find loads a live session. Missing keys mean the session expired or never
// existed.
func (s *SessionStore) Find(ctx context.Context, id string) (*domain.Session, error) {
	fields, err := s.client.HGetAll(ctx, s.key(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("find session: %w", err)
	}
	userID := fields["user_id"]
	if userID == "" {
		return nil, domain.ErrNotAuthenticated
	}

	unix, err := strconv.ParseInt(fields["expires_at"], 10, 64)
	if err != nil {
		return nil, domain.ErrNotAuthenticated
	}

	return &domain.Session{
		ID:        id,
		UserID:    userID,
		ExpiresAt: time.Unix(unix, 0).UTC(),
	}, nil
}

// Delete removes the session. Deleting a missing key is not an error.
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *SessionStore) key(id string) string {
	return "session:" + id
}
