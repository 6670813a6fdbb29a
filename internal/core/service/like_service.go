package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/sellhub/market-system/internal/api/metrics"
	"github.com/sellhub/market-system/internal/core/domain"
	"github.com/sellhub/market-system/internal/core/ports"
)

// LikeService is the toggle engine over the (user, target) like relation.
// Each call is a one-shot state transition: NotLiked -> Liked inserts a
// row, Liked -> NotLiked deletes it. The repository's uniqueness guard is
// the authoritative protection against concurrent toggles; the
// read-then-act sequence here is best-effort.
type LikeService struct {
	likes  ports.LikeRepository
	counts ports.LikeCountCache
	logger zerolog.Logger
}

func NewLikeService(likes ports.LikeRepository, counts ports.LikeCountCache, logger zerolog.Logger) *LikeService {
	return &LikeService{likes: likes, counts: counts, logger: logger}
}

// Toggle flips the like state for (userID, target, targetID) and reports
// which direction the transition went.
func (s *LikeService) Toggle(ctx context.Context, userID string, target domain.LikeTarget, targetID string) (*ports.ToggleResult, error) {
	if userID == "" {
		return nil, domain.ErrAuthRequired
	}
	if !target.Valid() || targetID == "" {
		return nil, domain.ErrInvalidInput
	}

	existing, err := s.likes.Find(ctx, userID, target, targetID)
	switch {
	case err == nil:
		return s.remove(ctx, existing)
	case errors.Is(err, domain.ErrLikeNotFound):
		return s.add(ctx, userID, target, targetID)
	default:
		return nil, err
	}
}

func (s *LikeService) add(ctx context.Context, userID string, target domain.LikeTarget, targetID string) (*ports.ToggleResult, error) {
	like := &domain.Like{
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}
	if target == domain.LikeTargetArticle {
		like.ArticleID = targetID
	} else {
		like.ProductID = targetID
	}

	created, err := s.likes.Create(ctx, like)
	if errors.Is(err, domain.ErrLikeExists) {
		// Lost the race against a concurrent toggle: the row exists, so the
		// caller's intent resolves to a removal.
		won, findErr := s.likes.Find(ctx, userID, target, targetID)
		if findErr != nil {
			return nil, findErr
		}
		return s.remove(ctx, won)
	}
	if err != nil {
		return nil, err
	}

	s.invalidateCount(ctx, target, targetID)
	metrics.LikesToggledTotal.WithLabelValues(string(target), "liked").Inc()
	return &ports.ToggleResult{Liked: true, Like: created}, nil
}

func (s *LikeService) remove(ctx context.Context, like *domain.Like) (*ports.ToggleResult, error) {
	if err := s.likes.Delete(ctx, like.ID); err != nil {
		return nil, err
	}

	target, targetID := like.Target()
	s.invalidateCount(ctx, target, targetID)
	metrics.LikesToggledTotal.WithLabelValues(string(target), "unliked").Inc()
	return &ports.ToggleResult{Liked: false, Like: like}, nil
}

// Count returns the like count for a resource, cache-aside.
func (s *LikeService) Count(ctx context.Context, target domain.LikeTarget, targetID string) (int64, error) {
	if n, ok, err := s.counts.Get(ctx, target, targetID); err == nil && ok {
		return n, nil
	}

	n, err := s.likes.CountByTarget(ctx, target, targetID)
	if err != nil {
		return 0, err
	}
	if err := s.counts.Set(ctx, target, targetID, n); err != nil {
		s.logger.Warn().Err(err).Msg("like count cache set failed")
	}
	return n, nil
}

// IsLiked reports the viewer's like state; anonymous viewers are never
// "liked".
func (s *LikeService) IsLiked(ctx context.Context, userID string, target domain.LikeTarget, targetID string) (bool, error) {
	if userID == "" {
		return false, nil
	}
	_, err := s.likes.Find(ctx, userID, target, targetID)
	if errors.Is(err, domain.ErrLikeNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// The cache is an optimization: a failed invalidation is logged, never
// surfaced, and the entry expires on its own TTL anyway.
func (s *LikeService) invalidateCount(ctx context.Context, target domain.LikeTarget, targetID string) {
	if err := s.counts.Invalidate(ctx, target, targetID); err != nil {
		s.logger.Warn().Err(err).
			Str("target", string(target)).
			Str("target_id", targetID).
			Msg("like count cache invalidation failed")
	}
}
