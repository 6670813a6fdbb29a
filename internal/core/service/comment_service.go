package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/sellhub/market-system/internal/core/domain"
	"github.com/sellhub/market-system/internal/core/ports"
)

// CommentService implements comments under articles and products.
type CommentService struct {
	comments ports.CommentRepository
	articles ports.ArticleRepository
	products ports.ProductRepository
	logger   zerolog.Logger
}

func NewCommentService(comments ports.CommentRepository, articles ports.ArticleRepository, products ports.ProductRepository, logger zerolog.Logger) *CommentService {
	return &CommentService{comments: comments, articles: articles, products: products, logger: logger}
}

// Create attaches a comment to an existing article or product.
func (s *CommentService) Create(ctx context.Context, actorID string, target domain.LikeTarget, targetID, content string) (*domain.Comment, error) {
	if actorID == "" {
		return nil, domain.ErrAuthRequired
	}
	if !target.Valid() || targetID == "" || content == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := s.targetExists(ctx, target, targetID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	comment := &domain.Comment{
		Content:   content,
		OwnerID:   actorID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if target == domain.LikeTargetArticle {
		comment.ArticleID = targetID
	} else {
		comment.ProductID = targetID
	}

	return s.comments.Create(ctx, comment)
}

func (s *CommentService) List(ctx context.Context, target domain.LikeTarget, targetID string, offset, limit int) ([]*domain.Comment, error) {
	if !target.Valid() || targetID == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := s.targetExists(ctx, target, targetID); err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.comments.ListByTarget(ctx, target, targetID, offset, limit)
}

func (s *CommentService) Update(ctx context.Context, id, actorID, content string) (*domain.Comment, error) {
	if actorID == "" {
		return nil, domain.ErrAuthRequired
	}
	if content == "" {
		return nil, domain.ErrInvalidInput
	}

	comment, err := s.comments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.CanMutate(comment.OwnerID, actorID) {
		return nil, domain.ErrForbidden
	}

	comment.Content = content
	comment.UpdatedAt = time.Now().UTC()
	return s.comments.Update(ctx, comment)
}

func (s *CommentService) Delete(ctx context.Context, id, actorID string) error {
	if actorID == "" {
		return domain.ErrAuthRequired
	}

	comment, err := s.comments.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !domain.CanMutate(comment.OwnerID, actorID) {
		return domain.ErrForbidden
	}

	if err := s.comments.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("comment_id", id).Str("actor_id", actorID).Msg("comment deleted")
	return nil
}

func (s *CommentService) targetExists(ctx context.Context, target domain.LikeTarget, targetID string) error {
	if target == domain.LikeTargetArticle {
		_, err := s.articles.FindByID(ctx, targetID)
		return err
	}
	_, err := s.products.FindByID(ctx, targetID)
	return err
}
