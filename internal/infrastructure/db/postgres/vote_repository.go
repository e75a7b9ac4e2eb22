package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/linkboard/linkboard-api/internal/core/domain"
)

// VoteRepository implements ports.VoteRepository on Postgres.
type VoteRepository struct {
	pool *pgxpool.Pool
}

func NewVoteRepository(pool *pgxpool.Pool) *VoteRepository {
	return &VoteRepository{pool: pool}
}

// Upsert relies on the (post_id, user_id) unique constraint so concurrent
// votes by the same user collapse into one row.
func (r *VoteRepository) Upsert(ctx context.Context, v *domain.Vote) error {
	const q = `
		INSERT INTO votes (post_id, user_id, vote_type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT ON CONSTRAINT votes_post_user_key
		DO UPDATE SET vote_type = EXCLUDED.vote_type, updated_at = EXCLUDED.updated_at`

	_, err := r.pool.Exec(ctx, q, v.PostID, v.UserID, string(v.Type), v.CreatedAt, v.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) || isMalformedID(err) {
			return domain.ErrPostNotFound
		}
		return fmt.Errorf("upsert vote: %w", err)
	}
	return nil
}
