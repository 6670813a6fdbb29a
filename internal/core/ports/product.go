package ports

import (
	"context"
	"time"

	"github.com/sellhub/market-system/internal/core/domain"
)

// ProductListItem is a product joined with its like count.
type ProductListItem struct {
	Product   domain.Product
	LikeCount int64
}

// ProductRepository defines persistence operations for products.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	FindByIDs(ctx context.Context, ids []string) ([]*domain.Product, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Product, error)
	List(ctx context.Context, filter ListFilter) ([]ProductListItem, error)
	Update(ctx context.Context, p *domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}

type CreateProductInput struct {
	Name        string
	Description string
	Price       int64
	Tags        []string
	ImageURL    string
}

type UpdateProductInput struct {
	Name        *string
	Description *string
	Price       *int64
	Tags        *[]string
	ImageURL    *string
}

// ProductView mirrors ArticleView for marketplace listings.
type ProductView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Price     int64     `json:"price"`
	ImageURL  string    `json:"image_url,omitempty"`
	Nickname  string    `json:"nickname"`
	LikeCount int64     `json:"like_count"`
	IsLiked   bool      `json:"is_liked"`
	CreatedAt time.Time `json:"created_at"`
}

type ProductService interface {
	Create(ctx context.Context, actorID string, input CreateProductInput) (*domain.Product, error)
	Get(ctx context.Context, id, viewerID string) (*ProductView, error)
	List(ctx context.Context, filter ListFilter, viewerID string) ([]ProductView, error)
	Update(ctx context.Context, id, actorID string, input UpdateProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id, actorID string) error
}
