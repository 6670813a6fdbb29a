package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	appmiddleware "github.com/sellhub/market-system/internal/api/middleware"
	"github.com/sellhub/market-system/internal/core/domain"
	"github.com/sellhub/market-system/internal/core/ports"
)

// stubLikes flips state per (user, target, id) in memory.
type stubLikes struct {
	liked map[string]bool

	lastTarget   domain.LikeTarget
	lastTargetID string
}

func newStubLikes() *stubLikes {
	return &stubLikes{liked: make(map[string]bool)}
}

func (s *stubLikes) key(userID string, target domain.LikeTarget, targetID string) string {
	return userID + "/" + string(target) + "/" + targetID
}

func (s *stubLikes) Toggle(_ context.Context, userID string, target domain.LikeTarget, targetID string) (*ports.ToggleResult, error) {
	if userID == "" {
		return nil, domain.ErrAuthRequired
	}
	s.lastTarget = target
	s.lastTargetID = targetID

	k := s.key(userID, target, targetID)
	s.liked[k] = !s.liked[k]
	return &ports.ToggleResult{Liked: s.liked[k], Like: &domain.Like{UserID: userID}}, nil
}

func (s *stubLikes) Count(_ context.Context, _ domain.LikeTarget, _ string) (int64, error) {
	return 0, nil
}

func (s *stubLikes) IsLiked(_ context.Context, userID string, target domain.LikeTarget, targetID string) (bool, error) {
	return s.liked[s.key(userID, target, targetID)], nil
}

func newLikeTestContext(user *domain.User, id string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id)
	if user != nil {
		c.Set(appmiddleware.UserContextKey, user)
	}
	return c, rec
}

func TestLikeHandler_ToggleArticle(t *testing.T) {
	likes := newStubLikes()
	h := NewLikeHandler(likes)
	user := &domain.User{ID: "u1"}

	c, rec := newLikeTestContext(user, "a1")
	if err := h.ToggleArticle(c); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if likes.lastTarget != domain.LikeTargetArticle || likes.lastTargetID != "a1" {
		t.Fatalf("wrong target: %s %s", likes.lastTarget, likes.lastTargetID)
	}
	if !strings.Contains(rec.Body.String(), "like added") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}

	// Toggling again reports the removal.
	c, rec = newLikeTestContext(user, "a1")
	if err := h.ToggleArticle(c); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if !strings.Contains(rec.Body.String(), "like removed") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestLikeHandler_ToggleProduct(t *testing.T) {
	likes := newStubLikes()
	h := NewLikeHandler(likes)

	c, _ := newLikeTestContext(&domain.User{ID: "u1"}, "p1")
	if err := h.ToggleProduct(c); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if likes.lastTarget != domain.LikeTargetProduct {
		t.Fatalf("wrong target: %s", likes.lastTarget)
	}
}

func TestLikeHandler_Unauthenticated(t *testing.T) {
	h := NewLikeHandler(newStubLikes())

	c, _ := newLikeTestContext(nil, "a1")
	err := h.ToggleArticle(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}
