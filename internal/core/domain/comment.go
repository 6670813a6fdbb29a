package domain

import "time"

// Comment belongs to exactly one parent: an article or a product. Exactly
// one of ArticleID / ProductID is set, the other stays empty.
type Comment struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	OwnerID   string    `json:"owner_id"`
	ArticleID string    `json:"article_id,omitempty"`
	ProductID string    `json:"product_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
