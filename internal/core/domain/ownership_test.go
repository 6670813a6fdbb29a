package domain

import "testing"

func TestCanMutate(t *testing.T) {
	cases := []struct {
		name    string
		ownerID string
		actorID string
		want    bool
	}{
		{"owner matches", "user_1", "user_1", true},
		{"different user", "user_1", "user_2", false},
		{"empty actor", "user_1", "", false},
		{"empty owner never matches", "", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanMutate(tc.ownerID, tc.actorID); got != tc.want {
				t.Fatalf("CanMutate(%q, %q) = %v, want %v", tc.ownerID, tc.actorID, got, tc.want)
			}
		})
	}
}

func TestLikeTarget(t *testing.T) {
	if !LikeTargetArticle.Valid() || !LikeTargetProduct.Valid() {
		t.Fatalf("known targets should be valid")
	}
	if LikeTarget("shipment").Valid() {
		t.Fatalf("unknown target should be invalid")
	}

	article := &Like{UserID: "u1", ArticleID: "a1"}
	if target, id := article.Target(); target != LikeTargetArticle || id != "a1" {
		t.Fatalf("unexpected target: %s %s", target, id)
	}

	product := &Like{UserID: "u1", ProductID: "p1"}
	if target, id := product.Target(); target != LikeTargetProduct || id != "p1" {
		t.Fatalf("unexpected target: %s %s", target, id)
	}
}
