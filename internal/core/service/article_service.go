package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/sellhub/market-system/internal/core/domain"
	"github.com/sellhub/market-system/internal/core/ports"
)

const (
	defaultListLimit = 10
	maxListLimit     = 100
)

// ArticleService implements the article use-cases. Mutations follow the
// canonical check order: authenticate, then resource existence, then
// ownership.
type ArticleService struct {
	articles ports.ArticleRepository
	likes    ports.LikeRepository
	counts   ports.LikeService
	users    ports.UserRepository
	logger   zerolog.Logger
}

func NewArticleService(articles ports.ArticleRepository, likes ports.LikeRepository, counts ports.LikeService, users ports.UserRepository, logger zerolog.Logger) *ArticleService {
	return &ArticleService{articles: articles, likes: likes, counts: counts, users: users, logger: logger}
}

func (s *ArticleService) Create(ctx context.Context, actorID string, input ports.CreateArticleInput) (*domain.Article, error) {
	if actorID == "" {
		return nil, domain.ErrAuthRequired
	}
	if input.Title == "" || input.Content == "" {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now().UTC()
	article := &domain.Article{
		Title:     input.Title,
		Content:   input.Content,
		OwnerID:   actorID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.articles.Create(ctx, article)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("article_id", created.ID).Str("owner_id", actorID).Msg("article created")
	return created, nil
}

// Get returns one article annotated with like count and the viewer's like
// state. viewerID may be empty for anonymous readers.
func (s *ArticleService) Get(ctx context.Context, id, viewerID string) (*ports.ArticleView, error) {
	article, err := s.articles.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	count, err := s.counts.Count(ctx, domain.LikeTargetArticle, id)
	if err != nil {
		return nil, err
	}
	liked, err := s.counts.IsLiked(ctx, viewerID, domain.LikeTargetArticle, id)
	if err != nil {
		return nil, err
	}

	view := articleView(article, count, liked)
	view.Nickname = s.nickname(ctx, article.OwnerID)
	return &view, nil
}

func (s *ArticleService) List(ctx context.Context, filter ports.ListFilter, viewerID string) ([]ports.ArticleView, error) {
	normalizeFilter(&filter)

	items, err := s.articles.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(items))
	ownerIDs := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.Article.ID
		ownerIDs[i] = it.Article.OwnerID
	}

	likedSet, err := s.viewerLikes(ctx, viewerID, domain.LikeTargetArticle, ids)
	if err != nil {
		return nil, err
	}
	nicknames := s.nicknames(ctx, ownerIDs)

	views := make([]ports.ArticleView, 0, len(items))
	for _, it := range items {
		a := it.Article
		view := articleView(&a, it.LikeCount, likedSet[a.ID])
		view.Nickname = nicknames[a.OwnerID]
		views = append(views, view)
	}
	return views, nil
}

func (s *ArticleService) Update(ctx context.Context, id, actorID string, input ports.UpdateArticleInput) (*domain.Article, error) {
	if actorID == "" {
		return nil, domain.ErrAuthRequired
	}

	article, err := s.articles.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.CanMutate(article.OwnerID, actorID) {
		return nil, domain.ErrForbidden
	}

	if input.Title != nil {
		article.Title = *input.Title
	}
	if input.Content != nil {
		article.Content = *input.Content
	}
	article.UpdatedAt = time.Now().UTC()

	return s.articles.Update(ctx, article)
}

func (s *ArticleService) Delete(ctx context.Context, id, actorID string) error {
	if actorID == "" {
		return domain.ErrAuthRequired
	}

	article, err := s.articles.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !domain.CanMutate(article.OwnerID, actorID) {
		return domain.ErrForbidden
	}

	if err := s.articles.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("article_id", id).Str("actor_id", actorID).Msg("article deleted")
	return nil
}

// viewerLikes returns the set of target ids the viewer has liked; empty for
// anonymous viewers.
func (s *ArticleService) viewerLikes(ctx context.Context, viewerID string, target domain.LikeTarget, ids []string) (map[string]bool, error) {
	set := make(map[string]bool)
	if viewerID == "" || len(ids) == 0 {
		return set, nil
	}
	likes, err := s.likes.ListByUserAndTargets(ctx, viewerID, target, ids)
	if err != nil {
		return nil, err
	}
	for _, l := range likes {
		_, targetID := l.Target()
		set[targetID] = true
	}
	return set, nil
}

func (s *ArticleService) nickname(ctx context.Context, ownerID string) string {
	return s.nicknames(ctx, []string{ownerID})[ownerID]
}

// nicknames resolves owner ids to nicknames; unresolvable owners map to "".
func (s *ArticleService) nicknames(ctx context.Context, ownerIDs []string) map[string]string {
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

func articleView(a *domain.Article, likeCount int64, isLiked bool) ports.ArticleView {
	return ports.ArticleView{
		ID:        a.ID,
		Title:     a.Title,
		Content:   a.Content,
		LikeCount: likeCount,
		IsLiked:   isLiked,
		CreatedAt: a.CreatedAt,
	}
}

func normalizeFilter(f *ports.ListFilter) {
	if f.Limit <= 0 {
		f.Limit = defaultListLimit
	}
	if f.Limit > maxListLimit {
		f.Limit = maxListLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	if f.Order != ports.OrderFavorite {
		f.Order = ports.OrderRecent
	}
}
