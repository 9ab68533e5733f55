package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/artcove/artcove-backend/internal/http/handlers"
	httpMW "github.com/artcove/artcove-backend/internal/http/middleware"
	"github.com/artcove/artcove-backend/internal/pkg/logger"
)

type RouterConfig struct {
	Log              *logger.Logger
	ServiceName      string
	CORSAllowOrigins []string

	AuthMiddleware *httpMW.AuthMiddleware

	HealthHandler   *httpH.HealthHandler
	AuthHandler     *httpH.AuthHandler
	UserHandler     *httpH.UserHandler
	CategoryHandler *httpH.CategoryHandler
	AssetHandler    *httpH.AssetHandler
	CartHandler     *httpH.CartHandler
	PurchaseHandler *httpH.PurchaseHandler
	RatingHandler   *httpH.RatingHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "artcove-backend"
	}
	r.Use(otelgin.Middleware(serviceName))
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS(cfg.CORSAllowOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		// Auth (public)
		if cfg.AuthHandler != nil {
			api.POST("/register", cfg.AuthHandler.Register)
			api.POST("/login", cfg.AuthHandler.Login)
			api.POST("/refresh", cfg.AuthHandler.Refresh)
		}

		// Catalog (public)
		if cfg.CategoryHandler != nil {
			api.GET("/categories", cfg.CategoryHandler.ListCategories)
			api.GET("/categories/:id", cfg.CategoryHandler.GetCategory)
		}
		if cfg.AssetHandler != nil {
			api.GET("/assets", cfg.AssetHandler.ListAssets)
			api.GET("/assets/featured", cfg.AssetHandler.ListFeatured)
			api.GET("/assets/:id", cfg.AssetHandler.GetAsset)
		}
		if cfg.RatingHandler != nil {
			api.GET("/assets/:id/ratings", cfg.RatingHandler.ListAssetRatings)
		}
	}

	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		// Auth (protected)
		if cfg.AuthHandler != nil {
			protected.POST("/logout", cfg.AuthHandler.Logout)
		}

		// User (Me)
		if cfg.UserHandler != nil {
			protected.GET("/me", cfg.UserHandler.GetMe)
			protected.PATCH("/me", cfg.UserHandler.UpdateProfile)
			protected.POST("/me/avatar", cfg.UserHandler.UploadAvatar)
		}

		// Catalog (protected writes)
		if cfg.CategoryHandler != nil {
			protected.POST("/categories", cfg.CategoryHandler.CreateCategory)
		}
		if cfg.AssetHandler != nil {
			protected.POST("/assets", cfg.AssetHandler.CreateAsset)
			protected.POST("/assets/:id/file", cfg.AssetHandler.UploadAssetFile)
		}
		if cfg.RatingHandler != nil {
			protected.POST("/assets/:id/ratings", cfg.RatingHandler.RateAsset)
		}

		// Cart
		if cfg.CartHandler != nil {
			protected.GET("/cart", cfg.CartHandler.ListItems)
			protected.POST("/cart", cfg.CartHandler.AddItem)
			protected.DELETE("/cart", cfg.CartHandler.Clear)
			protected.DELETE("/cart/:id", cfg.CartHandler.RemoveItem)
		}

		// Checkout and library
		if cfg.PurchaseHandler != nil {
			protected.POST("/checkout", cfg.PurchaseHandler.Checkout)
			protected.GET("/purchases", cfg.PurchaseHandler.ListPurchases)
			protected.POST("/purchases/:id/download", cfg.PurchaseHandler.Download)
		}
	}

	return r
}
