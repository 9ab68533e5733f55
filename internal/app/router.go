package app

import (
	"github.com/gin-gonic/gin"

	"github.com/artcove/artcove-backend/internal/http"
	"github.com/artcove/artcove-backend/internal/pkg/logger"
)

func wireRouter(log *logger.Logger, cfg Config, handlers Handlers, middleware Middleware) *gin.Engine {
	return http.NewRouter(http.RouterConfig{
		Log:              log,
		ServiceName:      cfg.ServiceName,
		CORSAllowOrigins: cfg.CORSAllowOrigins,

		AuthMiddleware: middleware.Auth,

		HealthHandler:   handlers.Health,
		AuthHandler:     handlers.Auth,
		UserHandler:     handlers.User,
		CategoryHandler: handlers.Category,
		AssetHandler:    handlers.Asset,
		CartHandler:     handlers.Cart,
		PurchaseHandler: handlers.Purchase,
		RatingHandler:   handlers.Rating,
	})
}
