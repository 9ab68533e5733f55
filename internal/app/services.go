package app

import (
	"gorm.io/gorm"

	"github.com/artcove/artcove-backend/internal/pkg/logger"
	"github.com/artcove/artcove-backend/internal/services"
)

type Services struct {
	Avatar   services.AvatarService
	Auth     services.AuthService
	User     services.UserService
	Catalog  services.CatalogService
	Cart     services.CartService
	Checkout services.CheckoutService
	Rating   services.RatingService

	Reconciler *services.Reconciler
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, repos Repos, clients Clients) Services {
	log.Info("Wiring services...")

	var avatarService services.AvatarService
	if clients.GcpBucket != nil {
		svc, err := services.NewAvatarService(log, clients.GcpBucket)
		if err != nil {
			log.Warn("Avatar service unavailable, registrations proceed without generated avatars", "error", err)
		} else {
			avatarService = svc
		}
	}

	authService := services.NewAuthService(
		db, log,
		repos.User,
		repos.UserToken,
		avatarService,
		cfg.JWTSecretKey,
		cfg.AccessTokenTTL,
		cfg.RefreshTokenTTL,
	)

	userService := services.NewUserService(db, log, repos.User, avatarService)

	catalogService := services.NewCatalogService(
		db, log,
		repos.Category,
		repos.Asset,
		repos.User,
		clients.GcpBucket,
		clients.Cache,
		cfg.CacheTTL,
	)

	cartService := services.NewCartService(db, log, repos.CartItem, repos.Asset)

	checkoutService := services.NewCheckoutService(
		db, log,
		repos.CartItem,
		repos.Purchase,
		repos.Asset,
		clients.GcpBucket,
		clients.Cache,
	)

	ratingService := services.NewRatingService(db, log, repos.Rating, repos.Asset, clients.Cache)

	reconciler := services.NewReconciler(
		db, log,
		repos.Category,
		repos.Asset,
		repos.UserToken,
		cfg.ReconcileEvery,
	)

	return Services{
		Avatar:     avatarService,
		Auth:       authService,
		User:       userService,
		Catalog:    catalogService,
		Cart:       cartService,
		Checkout:   checkoutService,
		Rating:     ratingService,
		Reconciler: reconciler,
	}
}
