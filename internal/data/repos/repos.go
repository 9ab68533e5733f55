package repos

import (
	"gorm.io/gorm"

	"github.com/artcove/artcove-backend/internal/data/repos/auth"
	"github.com/artcove/artcove-backend/internal/data/repos/catalog"
	"github.com/artcove/artcove-backend/internal/data/repos/commerce"
	"github.com/artcove/artcove-backend/internal/data/repos/user"
	"github.com/artcove/artcove-backend/internal/pkg/logger"
)

type UserRepo = user.UserRepo
type UserTokenRepo = auth.UserTokenRepo

type CategoryRepo = catalog.CategoryRepo
type AssetRepo = catalog.AssetRepo
type AssetFilter = catalog.AssetFilter

type CartItemRepo = commerce.CartItemRepo
type PurchaseRepo = commerce.PurchaseRepo
type RatingRepo = commerce.RatingRepo
type RatingSummary = commerce.RatingSummary

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo { return user.NewUserRepo(db, baseLog) }
func NewUserTokenRepo(db *gorm.DB, baseLog *logger.Logger) UserTokenRepo {
	return auth.NewUserTokenRepo(db, baseLog)
}

func NewCategoryRepo(db *gorm.DB, baseLog *logger.Logger) CategoryRepo {
	return catalog.NewCategoryRepo(db, baseLog)
}
func NewAssetRepo(db *gorm.DB, baseLog *logger.Logger) AssetRepo {
	return catalog.NewAssetRepo(db, baseLog)
}

func NewCartItemRepo(db *gorm.DB, baseLog *logger.Logger) CartItemRepo {
	return commerce.NewCartItemRepo(db, baseLog)
}
func NewPurchaseRepo(db *gorm.DB, baseLog *logger.Logger) PurchaseRepo {
	return commerce.NewPurchaseRepo(db, baseLog)
}
func NewRatingRepo(db *gorm.DB, baseLog *logger.Logger) RatingRepo {
	return commerce.NewRatingRepo(db, baseLog)
}
