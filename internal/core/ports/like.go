package ports

import (
	"context"

	"github.com/sellhub/market-system/internal/core/domain"
)

// LikeRepository defines persistence operations for likes. Implementations
// must enforce uniqueness per (user, target) pair and return
// domain.ErrLikeExists when an insert violates it — that guard, not the
// service's read-then-act logic, is authoritative under concurrency.
type LikeRepository interface {
	// Find looks up the like scoped to exactly this target kind; a like on
	// an article never matches a product with the same id.
	Find(ctx context.Context, userID string, target domain.LikeTarget, targetID string) (*domain.Like, error)
	Create(ctx context.Context, like *domain.Like) (*domain.Like, error)
	Delete(ctx context.Context, id string) error
	// CountByTarget counts likes on one resource.
	CountByTarget(ctx context.Context, target domain.LikeTarget, targetID string) (int64, error)
	// ListByUserAndTargets returns the user's likes among the given target
	// ids (used to annotate list responses).
	ListByUserAndTargets(ctx context.Context, userID string, target domain.LikeTarget, targetIDs []string) ([]*domain.Like, error)
	// ListByUser returns all of the user's likes of one target kind.
	ListByUser(ctx context.Context, userID string, target domain.LikeTarget) ([]*domain.Like, error)
}

// LikeCountCache fronts CountByTarget with a short-lived cache; Invalidate
// is called on every toggle transition.
type LikeCountCache interface {
	Get(ctx context.Context, target domain.LikeTarget, targetID string) (int64, bool, error)
	Set(ctx context.Context, target domain.LikeTarget, targetID string, count int64) error
	Invalidate(ctx context.Context, target domain.LikeTarget, targetID string) error
}

// ToggleResult reports which direction a toggle went. Like is the created
// row when Liked is true, or the removed row's last-known state otherwise.
type ToggleResult struct {
	Liked bool         `json:"liked"`
	Like  *domain.Like `json:"like"`
}

type LikeService interface {
	Toggle(ctx context.Context, userID string, target domain.LikeTarget, targetID string) (*ToggleResult, error)
	// Count returns the like count for one resource, via the cache when
	// warm.
	Count(ctx context.Context, target domain.LikeTarget, targetID string) (int64, error)
	// IsLiked reports whether the user has liked the resource; false for
	// an empty user id.
	IsLiked(ctx context.Context, userID string, target domain.LikeTarget, targetID string) (bool, error)
}
