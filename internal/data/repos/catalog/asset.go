package catalog

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/artcove/artcove-backend/internal/data/dberr"
	types "github.com/artcove/artcove-backend/internal/domain"
	"github.com/artcove/artcove-backend/internal/pkg/dbctx"
	"github.com/artcove/artcove-backend/internal/pkg/logger"
)

// Sort keys accepted by AssetFilter.
const (
	SortLatest    = "latest"
	SortPopular   = "popular"
	SortRating    = "rating"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
)

// AssetFilter narrows and orders asset listings. Zero values mean "no
// restriction"; Sort falls back to newest first.
type AssetFilter struct {
	CategoryID *uuid.UUID
	CreatorID  *uuid.UUID
	Featured   *bool
	Search     string
	Sort       string
	Limit      int
	Offset     int
}

type AssetRepo interface {
	Create(dbc dbctx.Context, assets []*types.Asset) ([]*types.Asset, error)
	GetByID(dbc dbctx.Context, assetID uuid.UUID) (*types.Asset, error)
	GetByIDs(dbc dbctx.Context, assetIDs []uuid.UUID) ([]*types.Asset, error)
	List(dbc dbctx.Context, filter AssetFilter) ([]*types.Asset, error)
	Count(dbc dbctx.Context, filter AssetFilter) (int64, error)
	IncrementDownloadCount(dbc dbctx.Context, assetID uuid.UUID) error
	UpdateRatingAggregate(dbc dbctx.Context, assetID uuid.UUID, rating float64) error
	UpdateFileFields(dbc dbctx.Context, assetID uuid.UUID, fileURL, fileType string, fileSize int, objectKey string) error
	RecomputeRatingAggregates(dbc dbctx.Context) error
}

type assetRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAssetRepo(db *gorm.DB, baseLog *logger.Logger) AssetRepo {
	repoLog := baseLog.With("repo", "AssetRepo")
	return &assetRepo{db: db, log: repoLog}
}

func (ar *assetRepo) Create(dbc dbctx.Context, assets []*types.Asset) ([]*types.Asset, error) {
	t := dbc.Tx
	if t == nil {
		t = ar.db
	}

	if len(assets) == 0 {
		return []*types.Asset{}, nil
	}

	if err := t.WithContext(dbc.Ctx).Create(&assets).Error; err != nil {
		return nil, dberr.Map("asset.create", err)
	}

	return assets, nil
}

// GetByID returns (nil, nil) when no row matches. Category and creator
// rows come preloaded.
func (ar *assetRepo) GetByID(dbc dbctx.Context, assetID uuid.UUID) (*types.Asset, error) {
	t := dbc.Tx
	if t == nil {
		t = ar.db
	}

	var row types.Asset
	if err := t.WithContext(dbc.Ctx).
		Preload("Category").
		Preload("Creator").
		Where("id = ?", assetID).
		Limit(1).
		Find(&row).Error; err != nil {
		return nil, dberr.Map("asset.get_by_id", err)
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (ar *assetRepo) GetByIDs(dbc dbctx.Context, assetIDs []uuid.UUID) ([]*types.Asset, error) {
	t := dbc.Tx
	if t == nil {
		t = ar.db
	}

	var results []*types.Asset

	if len(assetIDs) == 0 {
		return results, nil
	}

	if err := t.WithContext(dbc.Ctx).
		Where("id IN ?", assetIDs).
		Find(&results).Error; err != nil {
		return nil, dberr.Map("asset.get_by_ids", err)
	}
	return results, nil
}

func (ar *assetRepo) List(dbc dbctx.Context, filter AssetFilter) ([]*types.Asset, error) {
	t := dbc.Tx
	if t == nil {
		t = ar.db
	}

	q := applyAssetFilter(t.WithContext(dbc.Ctx), filter).
		Preload("Category").
		Preload("Creator").
		Order(orderClause(filter.Sort))
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}

	var results []*types.Asset
	if err := q.Find(&results).Error; err != nil {
		return nil, dberr.Map("asset.list", err)
	}
	return results, nil
}

func (ar *assetRepo) Count(dbc dbctx.Context, filter AssetFilter) (int64, error) {
	t := dbc.Tx
	if t == nil {
		t = ar.db
	}

	var count int64
	if err := applyAssetFilter(t.WithContext(dbc.Ctx).Model(&types.Asset{}), filter).
		Count(&count).Error; err != nil {
		return 0, dberr.Map("asset.count", err)
	}
	return count, nil
}

func (ar *assetRepo) IncrementDownloadCount(dbc dbctx.Context, assetID uuid.UUID) error {
	t := dbc.Tx
	if t == nil {
		t = ar.db
	}

	if err := t.WithContext(dbc.Ctx).
		Model(&types.Asset{}).
		Where("id = ?", assetID).
		Update("download_count", gorm.Expr("download_count + 1")).Error; err != nil {
		return dberr.Map("asset.increment_download_count", err)
	}
	return nil
}

func (ar *assetRepo) UpdateRatingAggregate(dbc dbctx.Context, assetID uuid.UUID, rating float64) error {
	t := dbc.Tx
	if t == nil {
		t = ar.db
	}

	if err := t.WithContext(dbc.Ctx).
		Model(&types.Asset{}).
		Where("id = ?", assetID).
		Update("rating", rating).Error; err != nil {
		return dberr.Map("asset.update_rating_aggregate", err)
	}
	return nil
}

func (ar *assetRepo) UpdateFileFields(dbc dbctx.Context, assetID uuid.UUID, fileURL, fileType string, fileSize int, objectKey string) error {
	t := dbc.Tx
	if t == nil {
		t = ar.db
	}

	if err := t.WithContext(dbc.Ctx).
		Model(&types.Asset{}).
		Where("id = ?", assetID).
		Updates(map[string]any{
			"file_url":   fileURL,
			"file_type":  fileType,
			"file_size":  fileSize,
			"object_key": objectKey,
		}).Error; err != nil {
		return dberr.Map("asset.update_file_fields", err)
	}
	return nil
}

// RecomputeRatingAggregates rebuilds every asset rating from the rating
// table. The reconcile worker runs this to heal drift.
func (ar *assetRepo) RecomputeRatingAggregates(dbc dbctx.Context) error {
	t := dbc.Tx
	if t == nil {
		t = ar.db
	}

	if err := t.WithContext(dbc.Ctx).Exec(`
		UPDATE asset
		SET rating = COALESCE((
			SELECT ROUND(AVG(r.rating), 2) FROM rating r WHERE r.asset_id = asset.id
		), 0);
	`).Error; err != nil {
		return dberr.Map("asset.recompute_rating_aggregates", err)
	}
	return nil
}

func applyAssetFilter(q *gorm.DB, filter AssetFilter) *gorm.DB {
	if filter.CategoryID != nil {
		q = q.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.CreatorID != nil {
		q = q.Where("creator_id = ?", *filter.CreatorID)
	}
	if filter.Featured != nil {
		q = q.Where("featured = ?", *filter.Featured)
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		pattern := "%" + strings.ToLower(s) + "%"
		q = q.Where("(LOWER(title) LIKE ? OR LOWER(COALESCE(description, '')) LIKE ?)", pattern, pattern)
	}
	return q
}

func orderClause(sort string) string {
	switch sort {
	case SortPopular:
		return "download_count DESC, created_at DESC"
	case SortRating:
		return "rating DESC, created_at DESC"
	case SortPriceAsc:
		return "price ASC, created_at DESC"
	case SortPriceDesc:
		return "price DESC, created_at DESC"
	default:
		return "created_at DESC"
	}
}
