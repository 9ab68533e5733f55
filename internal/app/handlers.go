package app

import (
	"gorm.io/gorm"

	httpH "github.com/artcove/artcove-backend/internal/http/handlers"
	"github.com/artcove/artcove-backend/internal/pkg/logger"
)

type Handlers struct {
	Health   *httpH.HealthHandler
	Auth     *httpH.AuthHandler
	User     *httpH.UserHandler
	Category *httpH.CategoryHandler
	Asset    *httpH.AssetHandler
	Cart     *httpH.CartHandler
	Purchase *httpH.PurchaseHandler
	Rating   *httpH.RatingHandler
}

func wireHandlers(db *gorm.DB, log *logger.Logger, services Services, clients Clients) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:   httpH.NewHealthHandler(db),
		Auth:     httpH.NewAuthHandler(services.Auth, clients.GcpBucket),
		User:     httpH.NewUserHandler(services.User, clients.GcpBucket),
		Category: httpH.NewCategoryHandler(services.Catalog),
		Asset:    httpH.NewAssetHandler(services.Catalog, clients.GcpBucket),
		Cart:     httpH.NewCartHandler(services.Cart),
		Purchase: httpH.NewPurchaseHandler(services.Checkout),
		Rating:   httpH.NewRatingHandler(services.Rating),
	}
}
