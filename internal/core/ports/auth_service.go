package ports

import (
	"context"

	"github.com/linkboard/linkboard-api/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, username, password string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*domain.Session, *domain.User, error)
	Logout(ctx context.Context, sessionID string) error
	Authenticate(ctx context.Context, sessionID string) (string, error)
	CurrentUser(ctx context.Context, userID string) (*domain.User, error)
}
