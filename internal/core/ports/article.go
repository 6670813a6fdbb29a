package ports

import (
	"context"
	"time"

	"github.com/sellhub/market-system/internal/core/domain"
)

// List ordering accepted by the list endpoints.
const (
	OrderRecent   = "recent"
	OrderFavorite = "favorite"
)

// ListFilter carries the query parameters shared by article and product
// listing. Search semantics are per-resource (title/content for articles,
// name/description for products).
type ListFilter struct {
	Offset int
	Limit  int    // capped at 100 by the services
	Order  string // "recent" (default) or "favorite"
	Search string
}

// ArticleListItem is an article joined with its like count, as produced by
// the repository's list aggregation.
type ArticleListItem struct {
	Article   domain.Article
	LikeCount int64
}

// ArticleRepository defines persistence operations for articles.
type ArticleRepository interface {
	Create(ctx context.Context, a *domain.Article) (*domain.Article, error)
	FindByID(ctx context.Context, id string) (*domain.Article, error)
	FindByIDs(ctx context.Context, ids []string) ([]*domain.Article, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Article, error)
	List(ctx context.Context, filter ListFilter) ([]ArticleListItem, error)
	Update(ctx context.Context, a *domain.Article) (*domain.Article, error)
	Delete(ctx context.Context, id string) error
}

// CreateArticleInput carries the data for a new article.
type CreateArticleInput struct {
	Title   string
	Content string
}

// UpdateArticleInput carries the mutable article fields; nil leaves a field
// unchanged.
type UpdateArticleInput struct {
	Title   *string
	Content *string
}

// ArticleView is the read model returned to clients: the article annotated
// with author nickname, like count, and the viewer's own like state.
type ArticleView struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Nickname  string    `json:"nickname"`
	LikeCount int64     `json:"like_count"`
	IsLiked   bool      `json:"is_liked"`
	CreatedAt time.Time `json:"created_at"`
}

// ArticleService defines the article use-cases. viewerID is empty for
// anonymous readers; mutating operations require a non-empty actor id.
type ArticleService interface {
	Create(ctx context.Context, actorID string, input CreateArticleInput) (*domain.Article, error)
	Get(ctx context.Context, id, viewerID string) (*ArticleView, error)
	List(ctx context.Context, filter ListFilter, viewerID string) ([]ArticleView, error)
	Update(ctx context.Context, id, actorID string, input UpdateArticleInput) (*domain.Article, error)
	Delete(ctx context.Context, id, actorID string) error
}
