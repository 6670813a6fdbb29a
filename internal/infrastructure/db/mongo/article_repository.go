package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sellhub/market-system/internal/core/domain"
	"github.com/sellhub/market-system/internal/core/ports"
)

const articlesCollection = "articles"

type ArticleRepository struct {
	coll *mongo.Collection
}

func NewArticleRepository(db *mongo.Database) *ArticleRepository {
	return &ArticleRepository{coll: db.Collection(articlesCollection)}
}

type mongoArticle struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Title     string             `bson:"title"`
	Content   string             `bson:"content"`
	OwnerID   string             `bson:"owner_id"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
	LikeCount int64              `bson:"like_count,omitempty"` // set by the list aggregation only
}

func (a mongoArticle) toDomain() *domain.Article {
	return &domain.Article{
		ID:        a.ID.Hex(),
		Title:     a.Title,
		Content:   a.Content,
		OwnerID:   a.OwnerID,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func (r *ArticleRepository) Create(ctx context.Context, a *domain.Article) (*domain.Article, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoArticle{
		ID:        primitive.NewObjectID(),
		Title:     a.Title,
		Content:   a.Content,
		OwnerID:   a.OwnerID,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert article: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ArticleRepository) FindByID(ctx context.Context, id string) (*domain.Article, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrArticleNotFound
	}

	var ma mongoArticle
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&ma); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrArticleNotFound
		}
		return nil, fmt.Errorf("find article: %w", err)
	}
	return ma.toDomain(), nil
}

func (r *ArticleRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.Article, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}
	if len(oids) == 0 {
		return nil, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": oids}}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
}

func (r *ArticleRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Article, error) {
	return r.find(ctx, bson.M{"owner_id": ownerID}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
}

// List runs the listing aggregation: optional search on title/content, a
// lookup joining each article with its likes to produce like_count, then
// ordering, offset and limit.
func (r *ArticleRepository) List(ctx context.Context, filter ports.ListFilter) ([]ports.ArticleListItem, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := listPipeline(filter, "article_id", bson.A{"title", "content"})

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	defer cur.Close(ctx)

	var items []ports.ArticleListItem
	for cur.Next(ctx) {
		var ma mongoArticle
		if err := cur.Decode(&ma); err != nil {
			return nil, fmt.Errorf("decode article: %w", err)
		}
		items = append(items, ports.ArticleListItem{Article: *ma.toDomain(), LikeCount: ma.LikeCount})
	}
	return items, cur.Err()
}

func (r *ArticleRepository) Update(ctx context.Context, a *domain.Article) (*domain.Article, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(a.ID)
	if err != nil {
		return nil, domain.ErrArticleNotFound
	}

	update := bson.M{"$set": bson.M{
		"title":      a.Title,
		"content":    a.Content,
		"updated_at": a.UpdatedAt,
	}}

	res, err := r.coll.UpdateByID(ctx, oid, update)
	if err != nil {
		return nil, fmt.Errorf("update article: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrArticleNotFound
	}
	return a, nil
}

func (r *ArticleRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrArticleNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrArticleNotFound
	}
	return nil
}

func (r *ArticleRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*domain.Article, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find articles: %w", err)
	}
	defer cur.Close(ctx)

	var articles []*domain.Article
	for cur.Next(ctx) {
		var ma mongoArticle
		if err := cur.Decode(&ma); err != nil {
			return nil, fmt.Errorf("decode article: %w", err)
		}
		articles = append(articles, ma.toDomain())
	}
	return articles, cur.Err()
}

// listPipeline builds the shared listing aggregation for articles and
// products. likeField is the likes-collection field referencing this
// resource; searchFields are matched case-insensitively against
// filter.Search.
func listPipeline(filter ports.ListFilter, likeField string, searchFields bson.A) mongo.Pipeline {
	pipeline := mongo.Pipeline{}

	if filter.Search != "" {
		or := bson.A{}
		for _, f := range searchFields {
			or = append(or, bson.M{f.(string): bson.M{"$regex": filter.Search, "$options": "i"}})
		}
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: bson.M{"$or": or}}})
	}

	pipeline = append(pipeline,
		bson.D{{Key: "$lookup", Value: bson.M{
			"from": likesCollection,
			"let":  bson.M{"id": bson.M{"$toString": "$_id"}},
			"pipeline": bson.A{
				bson.M{"$match": bson.M{"$expr": bson.M{"$eq": bson.A{"$" + likeField, "$$id"}}}},
			},
			"as": "likes",
		}}},
		bson.D{{Key: "$addFields", Value: bson.M{"like_count": bson.M{"$size": "$likes"}}}},
		bson.D{{Key: "$project", Value: bson.M{"likes": 0}}},
	)

	sort := bson.D{{Key: "created_at", Value: -1}}
	if filter.Order == ports.OrderFavorite {
		sort = bson.D{{Key: "like_count", Value: -1}, {Key: "created_at", Value: -1}}
	}
	pipeline = append(pipeline,
		bson.D{{Key: "$sort", Value: sort}},
		bson.D{{Key: "$skip", Value: filter.Offset}},
		bson.D{{Key: "$limit", Value: filter.Limit}},
	)
	return pipeline
}
