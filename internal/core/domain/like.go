package domain

import "time"

// LikeTarget identifies what kind of resource a like points at. A like on
// an article must never match a like on a product, even when both carry the
// same id.
type LikeTarget string

const (
	LikeTargetArticle LikeTarget = "article"
	LikeTargetProduct LikeTarget = "product"
)

// Valid reports whether t is a known target kind.
func (t LikeTarget) Valid() bool {
	return t == LikeTargetArticle || t == LikeTargetProduct
}

// Like is the at-most-one relation between a user and a target. Exactly one
// of ArticleID / ProductID is set; the persistence layer enforces uniqueness
// per (user, target) pair.
type Like struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ArticleID string    `json:"article_id,omitempty"`
	ProductID string    `json:"product_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Target returns the kind and id of the liked resource.
func (l *Like) Target() (LikeTarget, string) {
	if l.ArticleID != "" {
		return LikeTargetArticle, l.ArticleID
	}
	return LikeTargetProduct, l.ProductID
}
