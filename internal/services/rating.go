package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/artcove/artcove-backend/internal/clients/redis"
	"github.com/artcove/artcove-backend/internal/data/repos"
	"github.com/artcove/artcove-backend/internal/data/repos/commerce"
	types "github.com/artcove/artcove-backend/internal/domain"
	"github.com/artcove/artcove-backend/internal/domain/schema"
	"github.com/artcove/artcove-backend/internal/pkg/dbctx"
	"github.com/artcove/artcove-backend/internal/pkg/logger"
	"github.com/artcove/artcove-backend/internal/platform/apierr"
	"github.com/artcove/artcove-backend/internal/requestdata"
)

type RatingService interface {
	RateAsset(ctx context.Context, in *schema.InsertRating) (*types.Rating, error)
	ListAssetRatings(ctx context.Context, assetID uuid.UUID) ([]*types.Rating, error)
}

type ratingService struct {
	db         *gorm.DB
	log        *logger.Logger
	ratingRepo repos.RatingRepo
	assetRepo  repos.AssetRepo
	cache      redis.Cache
}

func NewRatingService(
	db *gorm.DB,
	log *logger.Logger,
	ratingRepo repos.RatingRepo,
	assetRepo repos.AssetRepo,
	cache redis.Cache,
) RatingService {
	serviceLog := log.With("service", "RatingService")
	return &ratingService{
		db:         db,
		log:        serviceLog,
		ratingRepo: ratingRepo,
		assetRepo:  assetRepo,
		cache:      cache,
	}
}

// RateAsset records the caller's rating for an asset, replacing any earlier
// one, and refreshes the asset's stored average in the same transaction.
func (rs *ratingService) RateAsset(ctx context.Context, in *schema.InsertRating) (*types.Rating, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apierr.New(http.StatusUnauthorized, "unauthorized", nil)
	}
	if in == nil {
		return nil, apierr.New(http.StatusBadRequest, "invalid_request", fmt.Errorf("missing rating payload"))
	}
	if in.UserID != rd.UserID {
		return nil, apierr.New(http.StatusForbidden, "rating_owner_mismatch", fmt.Errorf("ratings can only be filed by the authenticated user"))
	}

	var out *types.Rating
	var summary commerce.RatingSummary
	if err := rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}

		asset, err := rs.assetRepo.GetByID(dbc, in.AssetID)
		if err != nil {
			return err
		}
		if asset == nil {
			return apierr.New(http.StatusUnprocessableEntity, "asset_not_found", fmt.Errorf("asset does not exist"))
		}

		rating := in.Model()
		rating.ID = uuid.New()
		if err := rs.ratingRepo.Upsert(dbc, &rating); err != nil {
			return err
		}

		summary, err = rs.ratingRepo.SummaryForAsset(dbc, in.AssetID)
		if err != nil {
			return err
		}
		if err := rs.assetRepo.UpdateRatingAggregate(dbc, in.AssetID, summary.Average); err != nil {
			return err
		}

		stored, err := rs.ratingRepo.GetByUserAndAsset(dbc, in.UserID, in.AssetID)
		if err != nil {
			return err
		}
		if stored == nil {
			return fmt.Errorf("rating vanished after upsert")
		}
		out = stored
		return nil
	}); err != nil {
		return nil, err
	}

	rs.log.Info("Asset rating recorded",
		"assetID", in.AssetID,
		"average", summary.Average,
		"count", summary.Count)
	invalidateCatalogCache(ctx, rs.cache, rs.log, in.AssetID)
	return out, nil
}

func (rs *ratingService) ListAssetRatings(ctx context.Context, assetID uuid.UUID) ([]*types.Rating, error) {
	dbc := dbctx.Context{Ctx: ctx}

	asset, err := rs.assetRepo.GetByID(dbc, assetID)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, apierr.New(http.StatusNotFound, "asset_not_found", fmt.Errorf("asset does not exist"))
	}
	return rs.ratingRepo.ListByAsset(dbc, assetID)
}
