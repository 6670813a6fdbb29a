package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/sellhub/market-system/internal/core/domain"
	"github.com/sellhub/market-system/internal/core/ports"
)

// ProductService mirrors ArticleService for marketplace listings.
type ProductService struct {
	products ports.ProductRepository
	likes    ports.LikeRepository
	counts   ports.LikeService
	users    ports.UserRepository
	logger   zerolog.Logger
}

func NewProductService(products ports.ProductRepository, likes ports.LikeRepository, counts ports.LikeService, users ports.UserRepository, logger zerolog.Logger) *ProductService {
	return &ProductService{products: products, likes: likes, counts: counts, users: users, logger: logger}
}

func (s *ProductService) Create(ctx context.Context, actorID string, input ports.CreateProductInput) (*domain.Product, error) {
	if actorID == "" {
		return nil, domain.ErrAuthRequired
	}
	if input.Name == "" || input.Price < 0 {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now().UTC()
	product := &domain.Product{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Tags:        input.Tags,
		ImageURL:    input.ImageURL,
		OwnerID:     actorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.products.Create(ctx, product)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("product_id", created.ID).Str("owner_id", actorID).Msg("product created")
	return created, nil
}

func (s *ProductService) Get(ctx context.Context, id, viewerID string) (*ports.ProductView, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	count, err := s.counts.Count(ctx, domain.LikeTargetProduct, id)
	if err != nil {
		return nil, err
	}
	liked, err := s.counts.IsLiked(ctx, viewerID, domain.LikeTargetProduct, id)
	if err != nil {
		return nil, err
	}

	view := productView(product, count, liked)
	view.Nickname = s.nickname(ctx, product.OwnerID)
	return &view, nil
}

func (s *ProductService) List(ctx context.Context, filter ports.ListFilter, viewerID string) ([]ports.ProductView, error) {
	normalizeFilter(&filter)

	items, err := s.products.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(items))
	ownerIDs := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.Product.ID
		ownerIDs[i] = it.Product.OwnerID
	}

	likedSet, err := s.viewerLikes(ctx, viewerID, ids)
	if err != nil {
		return nil, err
	}
	nicknames := s.nicknames(ctx, ownerIDs)

	views := make([]ports.ProductView, 0, len(items))
	for _, it := range items {
		p := it.Product
		view := productView(&p, it.LikeCount, likedSet[p.ID])
		view.Nickname = nicknames[p.OwnerID]
		views = append(views, view)
	}
	return views, nil
}

func (s *ProductService) Update(ctx context.Context, id, actorID string, input ports.UpdateProductInput) (*domain.Product, error) {
	if actorID == "" {
		return nil, domain.ErrAuthRequired
	}

	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.CanMutate(product.OwnerID, actorID) {
		return nil, domain.ErrForbidden
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, domain.ErrInvalidInput
		}
		product.Price = *input.Price
	}
	if input.Tags != nil {
		product.Tags = *input.Tags
	}
	if input.ImageURL != nil {
		product.ImageURL = *input.ImageURL
	}
	product.UpdatedAt = time.Now().UTC()

	return s.products.Update(ctx, product)
}

func (s *ProductService) Delete(ctx context.Context, id, actorID string) error {
	if actorID == "" {
		return domain.ErrAuthRequired
	}

	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !domain.CanMutate(product.OwnerID, actorID) {
		return domain.ErrForbidden
	}

	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("product_id", id).Str("actor_id", actorID).Msg("product deleted")
	return nil
}

func (s *ProductService) viewerLikes(ctx context.Context, viewerID string, ids []string) (map[string]bool, error) {
	set := make(map[string]bool)
	if viewerID == "" || len(ids) == 0 {
		return set, nil
	}
	likes, err := s.likes.ListByUserAndTargets(ctx, viewerID, domain.LikeTargetProduct, ids)
	if err != nil {
		return nil, err
	}
	for _, l := range likes {
		_, targetID := l.Target()
		set[targetID] = true
	}
	return set, nil
}

func (s *ProductService) nickname(ctx context.Context, ownerID string) string {
	return s.nicknames(ctx, []string{ownerID})[ownerID]
}

func (s *ProductService) nicknames(ctx context.Context, ownerIDs []string) map[string]string {
	out := make(map[string]string, len(ownerIDs))
	users, err := s.users.FindByIDs(ctx, ownerIDs)
	if err != nil {
		s.logger.Warn().Err(err).Msg("nickname lookup failed")
		return out
	}
	for _, u := range users {
		out[u.ID] = u.Nickname
	}
	return out
}

func productView(p *domain.Product, likeCount int64, isLiked bool) ports.ProductView {
	return ports.ProductView{
		ID:        p.ID,
		Name:      p.Name,
		Price:     p.Price,
		ImageURL:  p.ImageURL,
		LikeCount: likeCount,
		IsLiked:   isLiked,
		CreatedAt: p.CreatedAt,
	}
}
