package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/sellhub/market-system/internal/core/domain"
	"github.com/sellhub/market-system/internal/core/ports"
)

func newTestUserService(users *stubUserRepo, articles *stubArticleRepo, products *stubProductRepo, likes *stubLikeRepo) *UserService {
	return NewUserService(users, articles, products, likes, zerolog.Nop())
}

func TestUserService_UpdateProfile(t *testing.T) {
	users := newStubUserRepo()
	svc := newTestUserService(users, newStubArticleRepo(), newStubProductRepo(), newStubLikeRepo())

	user, _ := users.Create(context.Background(), &domain.User{Email: "a@example.com", Nickname: "a"})

	nickname := "renamed"
	updated, err := svc.UpdateProfile(context.Background(), user.ID, ports.UpdateProfileInput{Nickname: &nickname})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Nickname != "renamed" {
		t.Fatalf("nickname not updated: %q", updated.Nickname)
	}
	if updated.Email != "a@example.com" {
		t.Fatalf("nil field must leave email unchanged: %q", updated.Email)
	}
}

func TestUserService_UpdateProfile_EmailTaken(t *testing.T) {
	users := newStubUserRepo()
	svc := newTestUserService(users, newStubArticleRepo(), newStubProductRepo(), newStubLikeRepo())

	first, _ := users.Create(context.Background(), &domain.User{Email: "first@example.com", Nickname: "first"})
	_, _ = users.Create(context.Background(), &domain.User{Email: "second@example.com", Nickname: "second"})

	taken := "second@example.com"
	if _, err := svc.UpdateProfile(context.Background(), first.ID, ports.UpdateProfileInput{Email: &taken}); err != domain.ErrEmailTaken {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}

	// Re-submitting your own email is not a conflict.
	own := "first@example.com"
	if _, err := svc.UpdateProfile(context.Background(), first.ID, ports.UpdateProfileInput{Email: &own}); err != nil {
		t.Fatalf("own email should be accepted: %v", err)
	}
}

func TestUserService_UpdatePassword(t *testing.T) {
	users := newStubUserRepo()
	svc := newTestUserService(users, newStubArticleRepo(), newStubProductRepo(), newStubLikeRepo())

	user, _ := users.Create(context.Background(), &domain.User{Email: "a@example.com", Nickname: "a"})

	if err := svc.UpdatePassword(context.Background(), user.ID, ""); err != domain.ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	if err := svc.UpdatePassword(context.Background(), user.ID, "newpass99"); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	stored, _ := users.FindByID(context.Background(), user.ID)
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("newpass99")); err != nil {
		t.Fatalf("stored hash does not match new password: %v", err)
	}
}

func TestUserService_OwnArticles(t *testing.T) {
	users := newStubUserRepo()
	articles := newStubArticleRepo()
	svc := newTestUserService(users, articles, newStubProductRepo(), newStubLikeRepo())

	user, _ := users.Create(context.Background(), &domain.User{Email: "a@example.com", Nickname: "a"})
	_, _ = articles.Create(context.Background(), &domain.Article{Title: "mine", Content: "c", OwnerID: user.ID})
	_, _ = articles.Create(context.Background(), &domain.Article{Title: "theirs", Content: "c", OwnerID: "someone-else"})

	got, err := svc.OwnArticles(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(got) != 1 || got[0].Title != "mine" {
		t.Fatalf("unexpected articles: %+v", got)
	}

	if _, err := svc.OwnArticles(context.Background(), "ghost"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_LikedProducts(t *testing.T) {
	users := newStubUserRepo()
	products := newStubProductRepo()
	likes := newStubLikeRepo()
	svc := newTestUserService(users, newStubArticleRepo(), products, likes)

	user, _ := users.Create(context.Background(), &domain.User{Email: "a@example.com", Nickname: "a"})
	liked, _ := products.Create(context.Background(), &domain.Product{Name: "liked", OwnerID: "o"})
	_, _ = products.Create(context.Background(), &domain.Product{Name: "ignored", OwnerID: "o"})

	if _, err := likes.Create(context.Background(), &domain.Like{UserID: user.ID, ProductID: liked.ID}); err != nil {
		t.Fatalf("seed like failed: %v", err)
	}
	// A like on an article with the same id must not leak into the product
	// listing.
	if _, err := likes.Create(context.Background(), &domain.Like{UserID: user.ID, ArticleID: liked.ID}); err != nil {
		t.Fatalf("seed like failed: %v", err)
	}

	got, err := svc.LikedProducts(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(got) != 1 || got[0].Name != "liked" {
		t.Fatalf("unexpected products: %+v", got)
	}
}
