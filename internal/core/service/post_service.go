package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/linkboard/linkboard-api/internal/core/domain"
	"github.com/linkboard/linkboard-api/internal/core/ports"
)

type PostService struct {
	repo   ports.PostRepository
	logger zerolog.Logger
}

func NewPostService(repo ports.PostRepository, logger zerolog.Logger) *PostService {
	return &PostService{repo: repo, logger: logger}
}

// ListPosts returns every post with its author and score, newest first.
func (s *PostService) ListPosts(ctx context.Context) ([]domain.PostView, error) {
	posts, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list posts")
		return nil, err
	}
	if posts == nil {
		posts = []domain.PostView{}
	}
	return posts, nil
}

func (s *PostService) CreatePost(ctx context.Context, input ports.CreatePostInput) (*domain.Post, error) {
	if input.AuthorID == "" {
		return nil, domain.ErrNotAuthenticated
	}

	post := &domain.Post{
		ID:        uuid.NewString(),
		Title:     input.Title,
		Content:   input.Content,
		UserID:    input.AuthorID,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, post); err != nil {
		s.logger.Error().Err(err).Msg("failed to create post")
		return nil, err
	}

	s.logger.Info().Str("post_id", post.ID).Str("user_id", post.UserID).Msg("post created")
	return post, nil
}

// UpdatePost edits title and content when the caller owns the post.
func (s *PostService) UpdatePost(ctx context.Context, input ports.UpdatePostInput) (*domain.Post, error) {
	if input.CallerID == "" {
		return nil, domain.ErrNotAuthenticated
	}

	post, err := s.repo.Update(ctx, input.PostID, input.CallerID, input.Title, input.Content)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("post_id", post.ID).Str("user_id", input.CallerID).Msg("post updated")
	return post, nil
}

func (s *PostService) DeletePost(ctx context.Context, postID, callerID string) error {
	if callerID == "" {
		return domain.ErrNotAuthenticated
	}

	if err := s.repo.Delete(ctx, postID, callerID); err != nil {
		return err
	}

	s.logger.Info().Str("post_id", postID).Str("user_id", callerID).Msg("post deleted")
	return nil
}
