package commerce

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/artcove/artcove-backend/internal/data/dberr"
	types "github.com/artcove/artcove-backend/internal/domain"
	"github.com/artcove/artcove-backend/internal/pkg/dbctx"
	"github.com/artcove/artcove-backend/internal/pkg/logger"
)

// RatingSummary is the aggregate the asset rating column is derived from.
type RatingSummary struct {
	Average float64
	Count   int64
}

type RatingRepo interface {
	Upsert(dbc dbctx.Context, rating *types.Rating) error
	GetByUserAndAsset(dbc dbctx.Context, userID, assetID uuid.UUID) (*types.Rating, error)
	ListByAsset(dbc dbctx.Context, assetID uuid.UUID) ([]*types.Rating, error)
	SummaryForAsset(dbc dbctx.Context, assetID uuid.UUID) (RatingSummary, error)
}

type ratingRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRatingRepo(db *gorm.DB, baseLog *logger.Logger) RatingRepo {
	repoLog := baseLog.With("repo", "RatingRepo")
	return &ratingRepo{db: db, log: repoLog}
}

// Upsert inserts the rating or, when the user already rated the asset,
// replaces the value and comment in place.
func (rr *ratingRepo) Upsert(dbc dbctx.Context, rating *types.Rating) error {
	t := dbc.Tx
	if t == nil {
		t = rr.db
	}

	if rating == nil || rating.UserID == uuid.Nil || rating.AssetID == uuid.Nil {
		return nil
	}
	if rating.ID == uuid.Nil {
		rating.ID = uuid.New()
	}
	rating.UpdatedAt = time.Now().UTC()

	if err := t.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "asset_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"rating",
				"comment",
				"updated_at",
			}),
		}).
		Create(rating).Error; err != nil {
		return dberr.Map("rating.upsert", err)
	}
	return nil
}

// GetByUserAndAsset returns (nil, nil) when the user has not rated the
// asset.
func (rr *ratingRepo) GetByUserAndAsset(dbc dbctx.Context, userID, assetID uuid.UUID) (*types.Rating, error) {
	t := dbc.Tx
	if t == nil {
		t = rr.db
	}

	var row types.Rating
	if err := t.WithContext(dbc.Ctx).
		Where("user_id = ? AND asset_id = ?", userID, assetID).
		Limit(1).
		Find(&row).Error; err != nil {
		return nil, dberr.Map("rating.get_by_user_and_asset", err)
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

// ListByAsset returns ratings newest first with the rating users
// preloaded for display.
func (rr *ratingRepo) ListByAsset(dbc dbctx.Context, assetID uuid.UUID) ([]*types.Rating, error) {
	t := dbc.Tx
	if t == nil {
		t = rr.db
	}

	var results []*types.Rating
	if err := t.WithContext(dbc.Ctx).
		Preload("User").
		Where("asset_id = ?", assetID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, dberr.Map("rating.list_by_asset", err)
	}
	return results, nil
}

func (rr *ratingRepo) SummaryForAsset(dbc dbctx.Context, assetID uuid.UUID) (RatingSummary, error) {
	t := dbc.Tx
	if t == nil {
		t = rr.db
	}

	var summary RatingSummary
	row := t.WithContext(dbc.Ctx).
		Model(&types.Rating{}).
		Select("COALESCE(ROUND(AVG(rating), 2), 0) AS average, COUNT(*) AS count").
		Where("asset_id = ?", assetID).
		Row()
	if err := row.Scan(&summary.Average, &summary.Count); err != nil {
		return RatingSummary{}, dberr.Map("rating.summary_for_asset", err)
	}
	return summary, nil
}
