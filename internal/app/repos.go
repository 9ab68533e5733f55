package app

import (
	"gorm.io/gorm"

	"github.com/artcove/artcove-backend/internal/data/repos"
	"github.com/artcove/artcove-backend/internal/pkg/logger"
)

type Repos struct {
	User      repos.UserRepo
	UserToken repos.UserTokenRepo
	Category  repos.CategoryRepo
	Asset     repos.AssetRepo
	CartItem  repos.CartItemRepo
	Purchase  repos.PurchaseRepo
	Rating    repos.RatingRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:      repos.NewUserRepo(db, log),
		UserToken: repos.NewUserTokenRepo(db, log),
		Category:  repos.NewCategoryRepo(db, log),
		Asset:     repos.NewAssetRepo(db, log),
		CartItem:  repos.NewCartItemRepo(db, log),
		Purchase:  repos.NewPurchaseRepo(db, log),
		Rating:    repos.NewRatingRepo(db, log),
	}
}
