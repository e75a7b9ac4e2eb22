package ports

import (
	"context"

	"github.com/linkboard/linkboard-api/internal/core/domain"
)

// CreatePostInput carries the data needed to create a post.
type CreatePostInput struct {
	Title    string
	Content  string
	AuthorID string
}

// UpdatePostInput carries an edit request. CallerID must own the post.
type UpdatePostInput struct {
	PostID   string
	Title    string
	Content  string
	CallerID string
}

// PostService defines use-case operations for posts.
type PostService interface {
	ListPosts(ctx context.Context) ([]domain.PostView, error)
	CreatePost(ctx context.Context, input CreatePostInput) (*domain.Post, error)
	UpdatePost(ctx context.Context, input UpdatePostInput) (*domain.Post, error)
	DeletePost(ctx context.Context, postID, callerID string) error
}
