package ports

import (
	"context"

	"github.com/sellhub/market-system/internal/core/domain"
)

// UserRepository defines persistence operations for accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByIDs returns the users matching ids; missing ids are skipped.
	FindByIDs(ctx context.Context, ids []string) ([]*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
}

// UpdateProfileInput carries the mutable profile fields. Nil means "leave
// unchanged".
type UpdateProfileInput struct {
	Email    *string
	Nickname *string
	Image    *string
}

type UserService interface {
	Get(ctx context.Context, id string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id string, input UpdateProfileInput) (*domain.User, error)
	UpdatePassword(ctx context.Context, id, newPassword string) error
	// OwnArticles / OwnProducts list resources created by the user.
	OwnArticles(ctx context.Context, userID string) ([]*domain.Article, error)
	OwnProducts(ctx context.Context, userID string) ([]*domain.Product, error)
	// LikedArticles / LikedProducts list resources the user has liked.
	LikedArticles(ctx context.Context, userID string) ([]*domain.Article, error)
	LikedProducts(ctx context.Context, userID string) ([]*domain.Product, error)
}
