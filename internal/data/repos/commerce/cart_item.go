package commerce

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/artcove/artcove-backend/internal/data/dberr"
	types "github.com/artcove/artcove-backend/internal/domain"
	"github.com/artcove/artcove-backend/internal/pkg/dbctx"
	"github.com/artcove/artcove-backend/internal/pkg/logger"
)

type CartItemRepo interface {
	Create(dbc dbctx.Context, items []*types.CartItem) ([]*types.CartItem, error)
	GetByUserAndAsset(dbc dbctx.Context, userID, assetID uuid.UUID) (*types.CartItem, error)
	ListByUser(dbc dbctx.Context, userID uuid.UUID) ([]*types.CartItem, error)
	IncrementQuantity(dbc dbctx.Context, itemID uuid.UUID, delta int) error
	DeleteByIDAndUser(dbc dbctx.Context, itemID, userID uuid.UUID) (int64, error)
	DeleteByUserAndAsset(dbc dbctx.Context, userID, assetID uuid.UUID) (int64, error)
	ClearByUser(dbc dbctx.Context, userID uuid.UUID) error
}

type cartItemRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCartItemRepo(db *gorm.DB, baseLog *logger.Logger) CartItemRepo {
	repoLog := baseLog.With("repo", "CartItemRepo")
	return &cartItemRepo{db: db, log: repoLog}
}

func (cir *cartItemRepo) Create(dbc dbctx.Context, items []*types.CartItem) ([]*types.CartItem, error) {
	t := dbc.Tx
	if t == nil {
		t = cir.db
	}

	if len(items) == 0 {
		return []*types.CartItem{}, nil
	}

	if err := t.WithContext(dbc.Ctx).Create(&items).Error; err != nil {
		return nil, dberr.Map("cart_item.create", err)
	}

	return items, nil
}

// GetByUserAndAsset returns (nil, nil) when the user has no cart row for
// the asset.
func (cir *cartItemRepo) GetByUserAndAsset(dbc dbctx.Context, userID, assetID uuid.UUID) (*types.CartItem, error) {
	t := dbc.Tx
	if t == nil {
		t = cir.db
	}

	var row types.CartItem
	if err := t.WithContext(dbc.Ctx).
		Where("user_id = ? AND asset_id = ?", userID, assetID).
		Limit(1).
		Find(&row).Error; err != nil {
		return nil, dberr.Map("cart_item.get_by_user_and_asset", err)
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

// ListByUser returns the cart newest first with the asset rows and their
// category and creator preloaded.
func (cir *cartItemRepo) ListByUser(dbc dbctx.Context, userID uuid.UUID) ([]*types.CartItem, error) {
	t := dbc.Tx
	if t == nil {
		t = cir.db
	}

	var results []*types.CartItem
	if err := t.WithContext(dbc.Ctx).
		Preload("Asset").
		Preload("Asset.Category").
		Preload("Asset.Creator").
		Where("user_id = ?", userID).
		Order("added_at DESC").
		Find(&results).Error; err != nil {
		return nil, dberr.Map("cart_item.list_by_user", err)
	}
	return results, nil
}

func (cir *cartItemRepo) IncrementQuantity(dbc dbctx.Context, itemID uuid.UUID, delta int) error {
	t := dbc.Tx
	if t == nil {
		t = cir.db
	}

	if err := t.WithContext(dbc.Ctx).
		Model(&types.CartItem{}).
		Where("id = ?", itemID).
		Update("quantity", gorm.Expr("quantity + ?", delta)).Error; err != nil {
		return dberr.Map("cart_item.increment_quantity", err)
	}
	return nil
}

// DeleteByIDAndUser removes the row only when it belongs to userID and
// reports whether anything was removed.
func (cir *cartItemRepo) DeleteByIDAndUser(dbc dbctx.Context, itemID, userID uuid.UUID) (int64, error) {
	t := dbc.Tx
	if t == nil {
		t = cir.db
	}

	res := t.WithContext(dbc.Ctx).
		Where("id = ? AND user_id = ?", itemID, userID).
		Delete(&types.CartItem{})
	if res.Error != nil {
		return 0, dberr.Map("cart_item.delete_by_id_and_user", res.Error)
	}
	return res.RowsAffected, nil
}

func (cir *cartItemRepo) DeleteByUserAndAsset(dbc dbctx.Context, userID, assetID uuid.UUID) (int64, error) {
	t := dbc.Tx
	if t == nil {
		t = cir.db
	}

	res := t.WithContext(dbc.Ctx).
		Where("user_id = ? AND asset_id = ?", userID, assetID).
		Delete(&types.CartItem{})
	if res.Error != nil {
		return 0, dberr.Map("cart_item.delete_by_user_and_asset", res.Error)
	}
	return res.RowsAffected, nil
}

func (cir *cartItemRepo) ClearByUser(dbc dbctx.Context, userID uuid.UUID) error {
	t := dbc.Tx
	if t == nil {
		t = cir.db
	}

	if err := t.WithContext(dbc.Ctx).
		Where("user_id = ?", userID).
		Delete(&types.CartItem{}).Error; err != nil {
		return dberr.Map("cart_item.clear_by_user", err)
	}
	return nil
}
