package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/artcove/artcove-backend/internal/data/repos"
	"github.com/artcove/artcove-backend/internal/data/repos/testutil"
	"github.com/artcove/artcove-backend/internal/domain/schema"
	"github.com/artcove/artcove-backend/internal/pkg/pointers"
)

func TestCartServiceFlow(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	ctx := context.Background()

	cartRepo := repos.NewCartItemRepo(tx, log)
	assetRepo := repos.NewAssetRepo(tx, log)
	svc := NewCartService(tx, log, cartRepo, assetRepo)

	creator := testutil.SeedCreator(t, ctx, tx, "cartflowcreator")
	shopper := testutil.SeedUser(t, ctx, tx, "cartflowshopper")
	other := testutil.SeedUser(t, ctx, tx, "cartflowother")
	cat := testutil.SeedCategory(t, ctx, tx, "Cart Flow Cat")
	asset := testutil.SeedAsset(t, ctx, tx, cat.ID, creator.ID, "cart-flow-asset")

	sctx := buyerContext(shopper.ID)

	_, err := svc.AddItem(context.Background(), &schema.InsertCartItem{UserID: shopper.ID, AssetID: asset.ID})
	wantAPIErr(t, err, 401, "unauthorized")

	_, err = svc.AddItem(sctx, &schema.InsertCartItem{UserID: other.ID, AssetID: asset.ID})
	wantAPIErr(t, err, 403, "cart_owner_mismatch")

	_, err = svc.AddItem(sctx, &schema.InsertCartItem{UserID: shopper.ID, AssetID: uuid.New()})
	wantAPIErr(t, err, 422, "asset_not_found")

	_, err = svc.AddItem(sctx, &schema.InsertCartItem{
		UserID:   shopper.ID,
		AssetID:  asset.ID,
		Quantity: pointers.Int(0),
	})
	wantAPIErr(t, err, 400, "invalid_quantity")

	item, err := svc.AddItem(sctx, &schema.InsertCartItem{
		UserID:   shopper.ID,
		AssetID:  asset.ID,
		Quantity: pointers.Int(3),
	})
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if item.Quantity != 3 {
		t.Fatalf("quantity: want=3 got=%d", item.Quantity)
	}
	if item.Asset.ID != asset.ID {
		t.Fatalf("asset on view: got=%+v", item.Asset)
	}

	items, err := svc.ListItems(sctx)
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("items: want=1 got=%d", len(items))
	}

	// Strangers cannot remove someone else's cart row.
	err = svc.RemoveItem(buyerContext(other.ID), item.ID)
	wantAPIErr(t, err, 404, "cart_item_not_found")

	if err := svc.RemoveItem(sctx, item.ID); err != nil {
		t.Fatalf("RemoveItem: %v", err)
	}
	err = svc.RemoveItem(sctx, item.ID)
	wantAPIErr(t, err, 404, "cart_item_not_found")

	if _, err := svc.AddItem(sctx, &schema.InsertCartItem{UserID: shopper.ID, AssetID: asset.ID}); err != nil {
		t.Fatalf("AddItem (refill): %v", err)
	}
	if err := svc.Clear(sctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	items, err = svc.ListItems(sctx)
	if err != nil {
		t.Fatalf("ListItems (after clear): %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("items after clear: want=0 got=%d", len(items))
	}
}
