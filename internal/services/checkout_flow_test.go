package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/artcove/artcove-backend/internal/data/repos"
	"github.com/artcove/artcove-backend/internal/data/repos/testutil"
	types "github.com/artcove/artcove-backend/internal/domain"
	"github.com/artcove/artcove-backend/internal/domain/schema"
	"github.com/artcove/artcove-backend/internal/pkg/dbctx"
	"github.com/artcove/artcove-backend/internal/pkg/pointers"
	"github.com/artcove/artcove-backend/internal/requestdata"
)

func buyerContext(userID uuid.UUID) context.Context {
	return requestdata.WithRequestData(context.Background(), &requestdata.RequestData{UserID: userID})
}

func TestCheckoutFlow(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	ctx := context.Background()

	cartRepo := repos.NewCartItemRepo(tx, log)
	purchaseRepo := repos.NewPurchaseRepo(tx, log)
	assetRepo := repos.NewAssetRepo(tx, log)

	cartSvc := NewCartService(tx, log, cartRepo, assetRepo)
	checkoutSvc := NewCheckoutService(tx, log, cartRepo, purchaseRepo, assetRepo, nil, nil)

	creator := testutil.SeedCreator(t, ctx, tx, "checkoutcreator")
	buyer := testutil.SeedUser(t, ctx, tx, "checkoutbuyer")
	cat := testutil.SeedCategory(t, ctx, tx, "Checkout Cat")
	owned := testutil.SeedAsset(t, ctx, tx, cat.ID, creator.ID, "already-owned")
	fresh := testutil.SeedAsset(t, ctx, tx, cat.ID, creator.ID, "fresh-pick")
	testutil.SeedPurchase(t, ctx, tx, buyer.ID, owned.ID)

	bctx := buyerContext(buyer.ID)

	// An empty cart cannot be checked out.
	_, err := checkoutSvc.Checkout(bctx, nil)
	wantAPIErr(t, err, 400, "cart_empty")

	if _, err := cartSvc.AddItem(bctx, &schema.InsertCartItem{
		UserID:  buyer.ID,
		AssetID: fresh.ID,
	}); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	// Adding the same asset again bumps the quantity on the existing row.
	item, err := cartSvc.AddItem(bctx, &schema.InsertCartItem{
		UserID:  buyer.ID,
		AssetID: fresh.ID,
	})
	if err != nil {
		t.Fatalf("AddItem (again): %v", err)
	}
	if item.Quantity != 2 {
		t.Fatalf("quantity after second add: want=2 got=%d", item.Quantity)
	}
	if _, err := cartSvc.AddItem(bctx, &schema.InsertCartItem{
		UserID:  buyer.ID,
		AssetID: owned.ID,
	}); err != nil {
		t.Fatalf("AddItem (owned): %v", err)
	}

	purchases, err := checkoutSvc.Checkout(bctx, pointers.String("pi_test_123"))
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	// The already-owned asset is skipped, not bought twice.
	if len(purchases) != 1 {
		t.Fatalf("purchases: want=1 got=%d", len(purchases))
	}
	p := purchases[0]
	if p.AssetID != fresh.ID {
		t.Fatalf("purchased asset: want=%s got=%s", fresh.ID, p.AssetID)
	}
	if p.Amount != 19.98 {
		t.Fatalf("amount: want=19.98 got=%v", p.Amount)
	}
	if p.PaymentIntentID == nil || *p.PaymentIntentID != "pi_test_123" {
		t.Fatalf("payment intent: got=%v", p.PaymentIntentID)
	}
	if p.Status != types.PurchaseStatusCompleted {
		t.Fatalf("status: want=%q got=%q", types.PurchaseStatusCompleted, p.Status)
	}

	leftover, err := cartSvc.ListItems(bctx)
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(leftover) != 0 {
		t.Fatalf("cart after checkout: want empty got=%d items", len(leftover))
	}

	history, err := checkoutSvc.ListPurchases(bctx)
	if err != nil {
		t.Fatalf("ListPurchases: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("purchase history: want=2 got=%d", len(history))
	}
	for _, h := range history {
		if h.Asset.ID == uuid.Nil {
			t.Fatalf("purchase history row missing asset: %+v", h)
		}
	}
}

func TestRecordDownload(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	ctx := context.Background()

	cartRepo := repos.NewCartItemRepo(tx, log)
	purchaseRepo := repos.NewPurchaseRepo(tx, log)
	assetRepo := repos.NewAssetRepo(tx, log)
	svc := NewCheckoutService(tx, log, cartRepo, purchaseRepo, assetRepo, nil, nil)

	creator := testutil.SeedCreator(t, ctx, tx, "downloadcreator")
	buyer := testutil.SeedUser(t, ctx, tx, "downloadbuyer")
	stranger := testutil.SeedUser(t, ctx, tx, "downloadstranger")
	cat := testutil.SeedCategory(t, ctx, tx, "Download Cat")
	asset := testutil.SeedAsset(t, ctx, tx, cat.ID, creator.ID, "download-asset")
	purchase := testutil.SeedPurchase(t, ctx, tx, buyer.ID, asset.ID)

	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	bctx := buyerContext(buyer.ID)

	// No file attached yet.
	_, err := svc.RecordDownload(bctx, purchase.ID)
	wantAPIErr(t, err, 422, "file_not_attached")

	if err := assetRepo.UpdateFileFields(dbc, asset.ID,
		"https://cdn.example.com/files/download-asset.zip", "application/zip", 2048, "asset/download-asset.zip"); err != nil {
		t.Fatalf("UpdateFileFields: %v", err)
	}

	_, err = svc.RecordDownload(buyerContext(stranger.ID), purchase.ID)
	wantAPIErr(t, err, 403, "not_purchase_owner")

	_, err = svc.RecordDownload(bctx, uuid.New())
	wantAPIErr(t, err, 404, "purchase_not_found")

	handle, err := svc.RecordDownload(bctx, purchase.ID)
	if err != nil {
		t.Fatalf("RecordDownload: %v", err)
	}
	if handle.FileURL != "https://cdn.example.com/files/download-asset.zip" {
		t.Fatalf("file url: got=%q", handle.FileURL)
	}
	if handle.ContentType != "application/zip" {
		t.Fatalf("content type: want=%q got=%q", "application/zip", handle.ContentType)
	}
	if handle.FileSize == nil || *handle.FileSize != 2048 {
		t.Fatalf("file size: got=%v", handle.FileSize)
	}

	stamped, err := purchaseRepo.GetByID(dbc, purchase.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stamped.DownloadCount != 1 {
		t.Fatalf("purchase download count: want=1 got=%d", stamped.DownloadCount)
	}
	if stamped.LastDownloadedAt == nil {
		t.Fatalf("purchase last downloaded at: want stamped")
	}
	reloaded, err := assetRepo.GetByID(dbc, asset.ID)
	if err != nil {
		t.Fatalf("GetByID (asset): %v", err)
	}
	if reloaded.DownloadCount != 1 {
		t.Fatalf("asset download count: want=1 got=%d", reloaded.DownloadCount)
	}
}
