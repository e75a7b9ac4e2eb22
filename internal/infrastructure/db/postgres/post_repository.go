package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/linkboard/linkboard-api/internal/core/domain"
)

// PostRepository implements ports.PostRepository on Postgres.
type PostRepository struct {
	pool *pgxpool.Pool
}

func NewPostRepository(pool *pgxpool.Pool) *PostRepository {
	return &PostRepository{pool: pool}
}

// Create inserts a new post row.
func (r *PostRepository) Create(ctx context.Context, p *domain.Post) error {
	const q = `
		INSERT INTO posts (id, title, content, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	if _, err := r.pool.Exec(ctx, q, p.ID, p.Title, p.Content, p.UserID, p.CreatedAt); err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotAuthenticated
		}
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

// List scores each post as (#up - #down) in the same query that joins the
// author, so a post with no votes scores 0.
func (r *PostRepository) List(ctx context.Context) ([]domain.PostView, error) {
	const q = `
		SELECT p.id, p.title, p.content, p.user_id, p.created_at, u.username,
		       COALESCE(SUM(CASE v.vote_type WHEN 'up' THEN $1::integer WHEN 'down' THEN $2::integer END), 0) AS votes
		FROM posts p
		JOIN users u ON u.id = p.user_id
		LEFT JOIN votes v ON v.post_id = p.id
		GROUP BY p.id, u.username
		ORDER BY p.created_at DESC`

	rows, err := r.pool.Query(ctx, q, domain.VoteUp.Weight(), domain.VoteDown.Weight())
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	posts := make([]domain.PostView, 0)
	for rows.Next() {
		var v domain.PostView
		if err := rows.Scan(&v.ID, &v.Title, &v.Content, &v.UserID, &v.CreatedAt, &v.Username, &v.Votes); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

// Update edits the post in a single statement guarded by the owner id.
func (r *PostRepository) Update(ctx context.Context, id, ownerID, title, content string) (*domain.Post, error) {
	const q = `
		UPDATE posts SET title = $3, content = $4
		WHERE id = $1 AND user_id = $2
		RETURNING id, title, content, user_id, created_at`

	var p domain.Post
	err := r.pool.QueryRow(ctx, q, id, ownerID, title, content).
		Scan(&p.ID, &p.Title, &p.Content, &p.UserID, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, r.missOrForbidden(ctx, id)
		}
		if isMalformedID(err) {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("update post: %w", err)
	}
	return &p, nil
}

// Delete removes the post; its votes go with it via ON DELETE CASCADE.
func (r *PostRepository) Delete(ctx context.Context, id, ownerID string) error {
	const q = `DELETE FROM posts WHERE id = $1 AND user_id = $2`

	tag, err := r.pool.Exec(ctx, q, id, ownerID)
	if err != nil {
		if isMalformedID(err) {
			return domain.ErrPostNotFound
		}
		return fmt.Errorf("delete post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return r.missOrForbidden(ctx, id)
	}
	return nil
}

// missOrForbidden classifies a guarded write that matched no row.
func (r *PostRepository) missOrForbidden(ctx context.Context, id string) error {
	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM posts WHERE id = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("check post: %w", err)
	}
	if !exists {
		return domain.ErrPostNotFound
	}
	return domain.ErrNotAuthorized
}
