package ports

import (
	"context"

	"github.com/sellhub/market-system/internal/core/domain"
)

// RegisterInput carries the data needed to create an account.
type RegisterInput struct {
	Email    string
	Nickname string
	Password string
	Image    string
}

// LoginResult is returned on successful login.
type LoginResult struct {
	User   *domain.User
	Tokens TokenPair
}

type AuthService interface {
	// Register creates a new account. The returned user never carries the
	// password hash in its serialized form.
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	// Refresh verifies a refresh token, re-resolves the user and issues a
	// brand-new pair. The old refresh token is not revoked.
	Refresh(ctx context.Context, refreshToken string) (TokenPair, error)
}
