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
)

const likesCollection = "likes"

// LikeRepository persists the (user, target) like relation. Each document
// carries exactly one of article_id / product_id; two partial unique
// indexes make the pair-uniqueness invariant authoritative under
// concurrent toggles.
type LikeRepository struct {
	coll *mongo.Collection
}

func NewLikeRepository(db *mongo.Database) *LikeRepository {
	return &LikeRepository{coll: db.Collection(likesCollection)}
}

type mongoLike struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"user_id"`
	ArticleID string             `bson:"article_id,omitempty"`
	ProductID string             `bson:"product_id,omitempty"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (l mongoLike) toDomain() *domain.Like {
	return &domain.Like{
		ID:        l.ID.Hex(),
		UserID:    l.UserID,
		ArticleID: l.ArticleID,
		ProductID: l.ProductID,
		CreatedAt: l.CreatedAt,
	}
}

// targetField maps a target kind to its document field. The queries below
// always filter on the specific field, so an article like can never match
// a product like with the same id.
func targetField(target domain.LikeTarget) string {
	if target == domain.LikeTargetArticle {
		return "article_id"
	}
	return "product_id"
}

func (r *LikeRepository) Find(ctx context.Context, userID string, target domain.LikeTarget, targetID string) (*domain.Like, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var ml mongoLike
	filter := bson.M{"user_id": userID, targetField(target): targetID}
	if err := r.coll.FindOne(ctx, filter).Decode(&ml); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrLikeNotFound
		}
		return nil, fmt.Errorf("find like: %w", err)
	}
	return ml.toDomain(), nil
}

func (r *LikeRepository) Create(ctx context.Context, like *domain.Like) (*domain.Like, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoLike{
		ID:        primitive.NewObjectID(),
		UserID:    like.UserID,
		ArticleID: like.ArticleID,
		ProductID: like.ProductID,
		CreatedAt: like.CreatedAt,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrLikeExists
		}
		return nil, fmt.Errorf("insert like: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *LikeRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrLikeNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete like: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrLikeNotFound
	}
	return nil
}

func (r *LikeRepository) CountByTarget(ctx context.Context, target domain.LikeTarget, targetID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{targetField(target): targetID})
	if err != nil {
		return 0, fmt.Errorf("count likes: %w", err)
	}
	return n, nil
}

func (r *LikeRepository) ListByUserAndTargets(ctx context.Context, userID string, target domain.LikeTarget, targetIDs []string) ([]*domain.Like, error) {
	if len(targetIDs) == 0 {
		return nil, nil
	}
	filter := bson.M{
		"user_id":           userID,
		targetField(target): bson.M{"$in": targetIDs},
	}
	return r.list(ctx, filter)
}

func (r *LikeRepository) ListByUser(ctx context.Context, userID string, target domain.LikeTarget) ([]*domain.Like, error) {
	filter := bson.M{
		"user_id":           userID,
		targetField(target): bson.M{"$exists": true},
	}
	return r.list(ctx, filter)
}

func (r *LikeRepository) list(ctx context.Context, filter bson.M) ([]*domain.Like, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find likes: %w", err)
	}
	defer cur.Close(ctx)

	var likes []*domain.Like
	for cur.Next(ctx) {
		var ml mongoLike
		if err := cur.Decode(&ml); err != nil {
			return nil, fmt.Errorf("decode like: %w", err)
		}
		likes = append(likes, ml.toDomain())
	}
	return likes, cur.Err()
}

// EnsureIndexes creates the partial unique indexes guarding the
// one-like-per-(user, target) invariant. Partial filters keep article and
// product likes from colliding on the absent field.
func (r *LikeRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "article_id", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"article_id": bson.M{"$exists": true}}),
		},
		{
			Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "product_id", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"product_id": bson.M{"$exists": true}}),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
