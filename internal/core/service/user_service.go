package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/sellhub/market-system/internal/core/domain"
	"github.com/sellhub/market-system/internal/core/ports"
)

// UserService implements profile operations and the "mine" listings.
type UserService struct {
	users    ports.UserRepository
	articles ports.ArticleRepository
	products ports.ProductRepository
	likes    ports.LikeRepository
	logger   zerolog.Logger
}

func NewUserService(users ports.UserRepository, articles ports.ArticleRepository, products ports.ProductRepository, likes ports.LikeRepository, logger zerolog.Logger) *UserService {
	return &UserService{users: users, articles: articles, products: products, likes: likes, logger: logger}
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *UserService) UpdateProfile(ctx context.Context, id string, input ports.UpdateProfileInput) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Email != nil && *input.Email != user.Email {
		if _, err := s.users.FindByEmail(ctx, *input.Email); err == nil {
			return nil, domain.ErrEmailTaken
		} else if err != domain.ErrUserNotFound {
			return nil, err
		}
		user.Email = *input.Email
	}
	if input.Nickname != nil {
		user.Nickname = *input.Nickname
	}
	if input.Image != nil {
		user.Image = *input.Image
	}
	user.UpdatedAt = time.Now().UTC()

	return s.users.Update(ctx, user)
}

func (s *UserService) UpdatePassword(ctx context.Context, id, newPassword string) error {
	if newPassword == "" {
		return domain.ErrInvalidInput
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = string(hash)
	user.UpdatedAt = time.Now().UTC()

	if _, err := s.users.Update(ctx, user); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", id).Msg("password updated")
	return nil
}

func (s *UserService) OwnArticles(ctx context.Context, userID string) ([]*domain.Article, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.articles.ListByOwner(ctx, userID)
}

func (s *UserService) OwnProducts(ctx context.Context, userID string) ([]*domain.Product, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.products.ListByOwner(ctx, userID)
}

func (s *UserService) LikedArticles(ctx context.Context, userID string) ([]*domain.Article, error) {
	ids, err := s.likedTargetIDs(ctx, userID, domain.LikeTargetArticle)
	if err != nil {
		return nil, err
	}
	return s.articles.FindByIDs(ctx, ids)
}

func (s *UserService) LikedProducts(ctx context.Context, userID string) ([]*domain.Product, error) {
	ids, err := s.likedTargetIDs(ctx, userID, domain.LikeTargetProduct)
	if err != nil {
		return nil, err
	}
	return s.products.FindByIDs(ctx, ids)
}

func (s *UserService) likedTargetIDs(ctx context.Context, userID string, target domain.LikeTarget) ([]string, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	likes, err := s.likes.ListByUser(ctx, userID, target)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(likes))
	for _, l := range likes {
		_, targetID := l.Target()
		ids = append(ids, targetID)
	}
	return ids, nil
}
