package ports

import (
	"context"

	"github.com/sellhub/market-system/internal/core/domain"
)

// CommentRepository defines persistence operations for comments.
type CommentRepository interface {
	Create(ctx context.Context, c *domain.Comment) (*domain.Comment, error)
	FindByID(ctx context.Context, id string) (*domain.Comment, error)
	// ListByTarget lists comments under one parent, newest first.
	ListByTarget(ctx context.Context, target domain.LikeTarget, targetID string, offset, limit int) ([]*domain.Comment, error)
	Update(ctx context.Context, c *domain.Comment) (*domain.Comment, error)
	Delete(ctx context.Context, id string) error
}

type CommentService interface {
	// Create attaches a comment to an article or product; the parent must
	// exist.
	Create(ctx context.Context, actorID string, target domain.LikeTarget, targetID, content string) (*domain.Comment, error)
	List(ctx context.Context, target domain.LikeTarget, targetID string, offset, limit int) ([]*domain.Comment, error)
	Update(ctx context.Context, id, actorID, content string) (*domain.Comment, error)
	Delete(ctx context.Context, id, actorID string) error
}
