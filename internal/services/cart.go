package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/artcove/artcove-backend/internal/data/repos"
	types "github.com/artcove/artcove-backend/internal/domain"
	"github.com/artcove/artcove-backend/internal/domain/schema"
	"github.com/artcove/artcove-backend/internal/pkg/dbctx"
	"github.com/artcove/artcove-backend/internal/pkg/logger"
	"github.com/artcove/artcove-backend/internal/platform/apierr"
	"github.com/artcove/artcove-backend/internal/requestdata"
)

type CartService interface {
	AddItem(ctx context.Context, in *schema.InsertCartItem) (*types.CartItemWithDetails, error)
	ListItems(ctx context.Context) ([]types.CartItemWithDetails, error)
	RemoveItem(ctx context.Context, itemID uuid.UUID) error
	Clear(ctx context.Context) error
}

type cartService struct {
	db           *gorm.DB
	log          *logger.Logger
	cartItemRepo repos.CartItemRepo
	assetRepo    repos.AssetRepo
}

func NewCartService(db *gorm.DB, log *logger.Logger, cartItemRepo repos.CartItemRepo, assetRepo repos.AssetRepo) CartService {
	serviceLog := log.With("service", "CartService")
	return &cartService{
		db:           db,
		log:          serviceLog,
		cartItemRepo: cartItemRepo,
		assetRepo:    assetRepo,
	}
}

// AddItem puts an asset in the caller's cart. Adding an asset that is
// already carted bumps the quantity instead of inserting a second row.
func (cr *cartService) AddItem(ctx context.Context, in *schema.InsertCartItem) (*types.CartItemWithDetails, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apierr.New(http.StatusUnauthorized, "unauthorized", nil)
	}
	if in == nil {
		return nil, apierr.New(http.StatusBadRequest, "invalid_request", fmt.Errorf("missing payload"))
	}
	if in.UserID != rd.UserID {
		return nil, apierr.New(http.StatusForbidden, "cart_owner_mismatch", fmt.Errorf("items can only be added to the authenticated user's cart"))
	}

	quantity := 1
	if in.Quantity != nil {
		quantity = *in.Quantity
	}
	if quantity < 1 {
		return nil, apierr.New(http.StatusBadRequest, "invalid_quantity", fmt.Errorf("quantity must be at least 1"))
	}

	var out *types.CartItemWithDetails
	if err := cr.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}

		asset, err := cr.assetRepo.GetByID(dbc, in.AssetID)
		if err != nil {
			return err
		}
		if asset == nil {
			return apierr.New(http.StatusUnprocessableEntity, "asset_not_found", fmt.Errorf("asset does not exist"))
		}

		existing, err := cr.cartItemRepo.GetByUserAndAsset(dbc, rd.UserID, in.AssetID)
		if err != nil {
			return err
		}
		if existing != nil {
			if err := cr.cartItemRepo.IncrementQuantity(dbc, existing.ID, quantity); err != nil {
				return err
			}
		} else {
			item := in.Model()
			item.ID = uuid.New()
			item.Quantity = quantity
			if _, err := cr.cartItemRepo.Create(dbc, []*types.CartItem{&item}); err != nil {
				return err
			}
		}

		row, err := cr.cartItemRepo.GetByUserAndAsset(dbc, rd.UserID, in.AssetID)
		if err != nil {
			return err
		}
		row.Asset = asset
		view := types.NewCartItemWithDetails(*row)
		out = &view
		return nil
	}); err != nil {
		return nil, err
	}
	return out, nil
}

func (cr *cartService) ListItems(ctx context.Context) ([]types.CartItemWithDetails, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apierr.New(http.StatusUnauthorized, "unauthorized", nil)
	}

	items, err := cr.cartItemRepo.ListByUser(dbctx.Context{Ctx: ctx}, rd.UserID)
	if err != nil {
		return nil, err
	}

	views := make([]types.CartItemWithDetails, 0, len(items))
	for _, it := range items {
		views = append(views, types.NewCartItemWithDetails(*it))
	}
	return views, nil
}

func (cr *cartService) RemoveItem(ctx context.Context, itemID uuid.UUID) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return apierr.New(http.StatusUnauthorized, "unauthorized", nil)
	}
	if itemID == uuid.Nil {
		return apierr.New(http.StatusBadRequest, "invalid_cart_item_id", fmt.Errorf("missing cart item id"))
	}

	affected, err := cr.cartItemRepo.DeleteByIDAndUser(dbctx.Context{Ctx: ctx}, itemID, rd.UserID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return apierr.New(http.StatusNotFound, "cart_item_not_found", fmt.Errorf("cart item does not exist"))
	}
	return nil
}

func (cr *cartService) Clear(ctx context.Context) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return apierr.New(http.StatusUnauthorized, "unauthorized", nil)
	}
	return cr.cartItemRepo.ClearByUser(dbctx.Context{Ctx: ctx}, rd.UserID)
}
