package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sellhub/market-system/internal/api/handler"
	"github.com/sellhub/market-system/internal/api/middleware"
	"github.com/sellhub/market-system/internal/core/service"
	"github.com/sellhub/market-system/internal/infrastructure/config"
	mongodb "github.com/sellhub/market-system/internal/infrastructure/db/mongo"
	redisdb "github.com/sellhub/market-system/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes
// registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("market"))

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	articleRepo := mongodb.NewArticleRepository(db)
	productRepo := mongodb.NewProductRepository(db)
	commentRepo := mongodb.NewCommentRepository(db)
	likeRepo := mongodb.NewLikeRepository(db)
	likeCounts := redisdb.NewLikeCountCache(rdb)

	// --- Services ---
	tokenService := service.NewTokenService(cfg.JWT.AccessSecret, cfg.JWT.RefreshSecret)
	authService := service.NewAuthService(userRepo, tokenService, log)
	likeService := service.NewLikeService(likeRepo, likeCounts, log)
	articleService := service.NewArticleService(articleRepo, likeRepo, likeService, userRepo, log)
	productService := service.NewProductService(productRepo, likeRepo, likeService, userRepo, log)
	commentService := service.NewCommentService(commentRepo, articleRepo, productRepo, log)
	userService := service.NewUserService(userRepo, articleRepo, productRepo, likeRepo, log)

	// --- Handlers ---
	cookies := handler.CookieWriter{
		AccessName:  cfg.Cookie.AccessName,
		RefreshName: cfg.Cookie.RefreshName,
		Secure:      cfg.Production(),
	}
	authHandler := handler.NewAuthHandler(authService, cookies)
	userHandler := handler.NewUserHandler(userService)
	articleHandler := handler.NewArticleHandler(articleService)
	productHandler := handler.NewProductHandler(productService)
	commentHandler := handler.NewCommentHandler(commentService)
	likeHandler := handler.NewLikeHandler(likeService)
	healthHandler := handler.NewHealthHandler(db, rdb)

	names := middleware.CookieNames{Access: cfg.Cookie.AccessName, Refresh: cfg.Cookie.RefreshName}
	authed := middleware.Authenticate(tokenService, userRepo, names)
	identified := middleware.Identify(tokenService, userRepo, names)

	// --- Auth ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/refresh", authHandler.Refresh)
	e.POST("/auth/logout", authHandler.Logout)

	// --- Users (always authenticated) ---
	me := e.Group("/users/me", authed)
	me.GET("", userHandler.Me)
	me.PATCH("", userHandler.UpdateMe)
	me.PATCH("/password", userHandler.UpdatePassword)
	me.GET("/articles", userHandler.OwnArticles)
	me.GET("/products", userHandler.OwnProducts)
	me.GET("/likes/articles", userHandler.LikedArticles)
	me.GET("/likes/products", userHandler.LikedProducts)

	// --- Articles ---
	e.GET("/articles", articleHandler.List, identified)
	e.GET("/articles/:id", articleHandler.Get, identified)
	e.POST("/articles", articleHandler.Create, authed)
	e.PATCH("/articles/:id", articleHandler.Update, authed)
	e.DELETE("/articles/:id", articleHandler.Delete, authed)
	e.POST("/articles/:id/like", likeHandler.ToggleArticle, authed)
	e.GET("/articles/:id/comments", commentHandler.ListForArticle)
	e.POST("/articles/:id/comments", commentHandler.CreateForArticle, authed)

	// --- Products ---
	e.GET("/products", productHandler.List, identified)
	e.GET("/products/:id", productHandler.Get, identified)
	e.POST("/products", productHandler.Create, authed)
	e.PATCH("/products/:id", productHandler.Update, authed)
	e.DELETE("/products/:id", productHandler.Delete, authed)
	e.POST("/products/:id/like", likeHandler.ToggleProduct, authed)
	e.GET("/products/:id/comments", commentHandler.ListForProduct)
	e.POST("/products/:id/comments", commentHandler.CreateForProduct, authed)

	// --- Comments ---
	e.PATCH("/comments/:id", commentHandler.Update, authed)
	e.DELETE("/comments/:id", commentHandler.Delete, authed)

	// --- Probes & metrics (no auth required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
