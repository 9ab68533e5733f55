package services

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/artcove/artcove-backend/internal/clients/gcp"
	"github.com/artcove/artcove-backend/internal/clients/redis"
	"github.com/artcove/artcove-backend/internal/data/repos"
	types "github.com/artcove/artcove-backend/internal/domain"
	"github.com/artcove/artcove-backend/internal/pkg/dbctx"
	"github.com/artcove/artcove-backend/internal/pkg/logger"
	"github.com/artcove/artcove-backend/internal/platform/apierr"
	"github.com/artcove/artcove-backend/internal/requestdata"
)

// AssetDownload is what RecordDownload hands back for delivery. The object
// key stays server side; clients get the URL and type.
type AssetDownload struct {
	AssetID     uuid.UUID `json:"asset_id"`
	Title       string    `json:"title"`
	FileURL     string    `json:"file_url"`
	ContentType string    `json:"content_type"`
	FileSize    *int      `json:"file_size,omitempty"`
}

type CheckoutService interface {
	Checkout(ctx context.Context, paymentIntentID *string) ([]*types.Purchase, error)
	ListPurchases(ctx context.Context) ([]types.PurchaseWithAsset, error)
	RecordDownload(ctx context.Context, purchaseID uuid.UUID) (*AssetDownload, error)
}

type checkoutService struct {
	db            *gorm.DB
	log           *logger.Logger
	cartItemRepo  repos.CartItemRepo
	purchaseRepo  repos.PurchaseRepo
	assetRepo     repos.AssetRepo
	bucketService gcp.BucketService
	cache         redis.Cache
}

func NewCheckoutService(
	db *gorm.DB,
	log *logger.Logger,
	cartItemRepo repos.CartItemRepo,
	purchaseRepo repos.PurchaseRepo,
	assetRepo repos.AssetRepo,
	bucketService gcp.BucketService,
	cache redis.Cache,
) CheckoutService {
	serviceLog := log.With("service", "CheckoutService")
	return &checkoutService{
		db:            db,
		log:           serviceLog,
		cartItemRepo:  cartItemRepo,
		purchaseRepo:  purchaseRepo,
		assetRepo:     assetRepo,
		bucketService: bucketService,
		cache:         cache,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Checkout turns the caller's cart into purchase rows and empties the cart,
// all in one transaction. Assets the caller already owns are dropped from
// the order instead of being bought twice.
func (cs *checkoutService) Checkout(ctx context.Context, paymentIntentID *string) ([]*types.Purchase, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apierr.New(http.StatusUnauthorized, "unauthorized", nil)
	}

	var created []*types.Purchase
	if err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}

		items, err := cs.cartItemRepo.ListByUser(dbc, rd.UserID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return apierr.New(http.StatusBadRequest, "cart_empty", fmt.Errorf("nothing to check out"))
		}

		ownedIDs, err := cs.purchaseRepo.ListAssetIDsByUser(dbc, rd.UserID)
		if err != nil {
			return err
		}
		owned := make(map[uuid.UUID]struct{}, len(ownedIDs))
		for _, id := range ownedIDs {
			owned[id] = struct{}{}
		}

		purchases := make([]*types.Purchase, 0, len(items))
		for _, it := range items {
			if _, ok := owned[it.AssetID]; ok {
				continue
			}
			if it.Asset == nil {
				return fmt.Errorf("cart item %s lost its asset", it.ID)
			}
			purchases = append(purchases, &types.Purchase{
				ID:              uuid.New(),
				UserID:          rd.UserID,
				AssetID:         it.AssetID,
				Amount:          round2(it.Asset.Price * float64(it.Quantity)),
				PaymentIntentID: paymentIntentID,
				Status:          types.PurchaseStatusCompleted,
			})
		}

		if len(purchases) > 0 {
			if _, err := cs.purchaseRepo.Create(dbc, purchases); err != nil {
				return err
			}
		}
		if err := cs.cartItemRepo.ClearByUser(dbc, rd.UserID); err != nil {
			return err
		}

		created = purchases
		return nil
	}); err != nil {
		return nil, err
	}
	return created, nil
}

func (cs *checkoutService) ListPurchases(ctx context.Context) ([]types.PurchaseWithAsset, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apierr.New(http.StatusUnauthorized, "unauthorized", nil)
	}

	purchases, err := cs.purchaseRepo.ListByUser(dbctx.Context{Ctx: ctx}, rd.UserID)
	if err != nil {
		return nil, err
	}

	views := make([]types.PurchaseWithAsset, 0, len(purchases))
	for _, p := range purchases {
		views = append(views, types.NewPurchaseWithAsset(*p))
	}
	return views, nil
}

// RecordDownload stamps a download on the purchase, bumps both download
// counters and resolves the file handle for delivery. Only the buyer can
// download.
func (cs *checkoutService) RecordDownload(ctx context.Context, purchaseID uuid.UUID) (*AssetDownload, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apierr.New(http.StatusUnauthorized, "unauthorized", nil)
	}

	var out *AssetDownload
	var assetID uuid.UUID
	if err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}

		purchase, err := cs.purchaseRepo.GetByID(dbc, purchaseID)
		if err != nil {
			return err
		}
		if purchase == nil {
			return apierr.New(http.StatusNotFound, "purchase_not_found", fmt.Errorf("purchase does not exist"))
		}
		if purchase.UserID != rd.UserID {
			return apierr.New(http.StatusForbidden, "not_purchase_owner", fmt.Errorf("only the buyer can download"))
		}

		asset, err := cs.assetRepo.GetByID(dbc, purchase.AssetID)
		if err != nil {
			return err
		}
		if asset == nil {
			return apierr.New(http.StatusNotFound, "asset_not_found", fmt.Errorf("purchased asset no longer exists"))
		}

		handle, err := cs.resolveFileHandle(ctx, asset)
		if err != nil {
			return err
		}

		if err := cs.purchaseRepo.RecordDownload(dbc, purchase.ID, time.Now().UTC()); err != nil {
			return err
		}
		if err := cs.assetRepo.IncrementDownloadCount(dbc, asset.ID); err != nil {
			return err
		}

		assetID = asset.ID
		out = handle
		return nil
	}); err != nil {
		return nil, err
	}

	invalidateCatalogCache(ctx, cs.cache, cs.log, assetID)
	return out, nil
}

// resolveFileHandle prefers the recorded file columns and falls back to the
// object store for anything missing.
func (cs *checkoutService) resolveFileHandle(ctx context.Context, asset *types.Asset) (*AssetDownload, error) {
	handle := &AssetDownload{
		AssetID:  asset.ID,
		Title:    asset.Title,
		FileSize: asset.FileSize,
	}

	switch {
	case asset.FileURL != nil && *asset.FileURL != "":
		handle.FileURL = *asset.FileURL
	case asset.ObjectKey != nil && *asset.ObjectKey != "" && cs.bucketService != nil:
		handle.FileURL = cs.bucketService.GetPublicURL(gcp.BucketCategoryAsset, *asset.ObjectKey)
	default:
		return nil, apierr.New(http.StatusUnprocessableEntity, "file_not_attached", fmt.Errorf("asset has no deliverable file"))
	}

	if asset.FileType != nil && *asset.FileType != "" {
		handle.ContentType = *asset.FileType
	} else if asset.ObjectKey != nil && cs.bucketService != nil {
		attrs, err := cs.bucketService.Attrs(ctx, gcp.BucketCategoryAsset, *asset.ObjectKey)
		if err != nil {
			cs.log.Warn("Failed to read object attrs for download", "assetID", asset.ID, "error", err)
		} else {
			handle.ContentType = attrs.ContentType
		}
	}
	if handle.ContentType == "" {
		handle.ContentType = "application/octet-stream"
	}
	return handle, nil
}
