package ports

import (
	"context"

	"github.com/linkboard/linkboard-api/internal/core/domain"
)

// PostRepository defines persistence operations for posts.
type PostRepository interface {
	Create(ctx context.Context, p *domain.Post) error
	// List returns every post joined with its author's username and its
	// score, newest first.
	List(ctx context.Context) ([]domain.PostView, error)
	// Update sets title and content on the post identified by id only when it
	// is owned by ownerID. It returns domain.ErrPostNotFound when no such post
	// exists and domain.ErrNotAuthorized when it belongs to someone else.
	Update(ctx context.Context, id, ownerID, title, content string) (*domain.Post, error)
	// Delete removes the post and its votes under the same ownership rule as
	// Update.
	Delete(ctx context.Context, id, ownerID string) error
}
