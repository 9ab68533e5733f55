package commerce

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/artcove/artcove-backend/internal/data/dberr"
	types "github.com/artcove/artcove-backend/internal/domain"
	"github.com/artcove/artcove-backend/internal/pkg/dbctx"
	"github.com/artcove/artcove-backend/internal/pkg/logger"
)

type PurchaseRepo interface {
	Create(dbc dbctx.Context, purchases []*types.Purchase) ([]*types.Purchase, error)
	GetByID(dbc dbctx.Context, purchaseID uuid.UUID) (*types.Purchase, error)
	GetByUserAndAsset(dbc dbctx.Context, userID, assetID uuid.UUID) (*types.Purchase, error)
	ListByUser(dbc dbctx.Context, userID uuid.UUID) ([]*types.Purchase, error)
	ListAssetIDsByUser(dbc dbctx.Context, userID uuid.UUID) ([]uuid.UUID, error)
	RecordDownload(dbc dbctx.Context, purchaseID uuid.UUID, at time.Time) error
}

type purchaseRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPurchaseRepo(db *gorm.DB, baseLog *logger.Logger) PurchaseRepo {
	repoLog := baseLog.With("repo", "PurchaseRepo")
	return &purchaseRepo{db: db, log: repoLog}
}

func (pr *purchaseRepo) Create(dbc dbctx.Context, purchases []*types.Purchase) ([]*types.Purchase, error) {
	t := dbc.Tx
	if t == nil {
		t = pr.db
	}

	if len(purchases) == 0 {
		return []*types.Purchase{}, nil
	}

	if err := t.WithContext(dbc.Ctx).Create(&purchases).Error; err != nil {
		return nil, dberr.Map("purchase.create", err)
	}

	return purchases, nil
}

// GetByID returns (nil, nil) when no row matches.
func (pr *purchaseRepo) GetByID(dbc dbctx.Context, purchaseID uuid.UUID) (*types.Purchase, error) {
	t := dbc.Tx
	if t == nil {
		t = pr.db
	}

	var row types.Purchase
	if err := t.WithContext(dbc.Ctx).
		Where("id = ?", purchaseID).
		Limit(1).
		Find(&row).Error; err != nil {
		return nil, dberr.Map("purchase.get_by_id", err)
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

// GetByUserAndAsset returns (nil, nil) when the user never bought the
// asset. When the pair was purchased more than once the newest row wins.
func (pr *purchaseRepo) GetByUserAndAsset(dbc dbctx.Context, userID, assetID uuid.UUID) (*types.Purchase, error) {
	t := dbc.Tx
	if t == nil {
		t = pr.db
	}

	var row types.Purchase
	if err := t.WithContext(dbc.Ctx).
		Where("user_id = ? AND asset_id = ?", userID, assetID).
		Order("purchased_at DESC").
		Limit(1).
		Find(&row).Error; err != nil {
		return nil, dberr.Map("purchase.get_by_user_and_asset", err)
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

// ListByUser returns purchases newest first with the asset rows and their
// category and creator preloaded.
func (pr *purchaseRepo) ListByUser(dbc dbctx.Context, userID uuid.UUID) ([]*types.Purchase, error) {
	t := dbc.Tx
	if t == nil {
		t = pr.db
	}

	var results []*types.Purchase
	if err := t.WithContext(dbc.Ctx).
		Preload("Asset").
		Preload("Asset.Category").
		Preload("Asset.Creator").
		Where("user_id = ?", userID).
		Order("purchased_at DESC").
		Find(&results).Error; err != nil {
		return nil, dberr.Map("purchase.list_by_user", err)
	}
	return results, nil
}

func (pr *purchaseRepo) ListAssetIDsByUser(dbc dbctx.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	t := dbc.Tx
	if t == nil {
		t = pr.db
	}

	var ids []uuid.UUID
	if err := t.WithContext(dbc.Ctx).
		Model(&types.Purchase{}).
		Where("user_id = ?", userID).
		Distinct().
		Pluck("asset_id", &ids).Error; err != nil {
		return nil, dberr.Map("purchase.list_asset_ids_by_user", err)
	}
	return ids, nil
}

func (pr *purchaseRepo) RecordDownload(dbc dbctx.Context, purchaseID uuid.UUID, at time.Time) error {
	t := dbc.Tx
	if t == nil {
		t = pr.db
	}

	if err := t.WithContext(dbc.Ctx).
		Model(&types.Purchase{}).
		Where("id = ?", purchaseID).
		Updates(map[string]any{
			"download_count":     gorm.Expr("download_count + 1"),
			"last_downloaded_at": at,
		}).Error; err != nil {
		return dberr.Map("purchase.record_download", err)
	}
	return nil
}
