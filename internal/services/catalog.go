package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/artcove/artcove-backend/internal/clients/gcp"
	"github.com/artcove/artcove-backend/internal/clients/redis"
	"github.com/artcove/artcove-backend/internal/data/repos"
	types "github.com/artcove/artcove-backend/internal/domain"
	"github.com/artcove/artcove-backend/internal/domain/schema"
	"github.com/artcove/artcove-backend/internal/pkg/dbctx"
	"github.com/artcove/artcove-backend/internal/pkg/logger"
	"github.com/artcove/artcove-backend/internal/pkg/pointers"
	"github.com/artcove/artcove-backend/internal/platform/apierr"
	"github.com/artcove/artcove-backend/internal/requestdata"
)

const (
	defaultPageSize   = 20
	maxPageSize       = 100
	featuredShelfSize = 12

	featuredCacheKey = "catalog:featured"
)

func assetCacheKey(assetID uuid.UUID) string {
	return "catalog:asset:" + assetID.String()
}

// invalidateCatalogCache drops the featured shelf plus the given per-asset
// projections. Cache misses after a write are cheaper than stale reads, so
// failures only warn.
func invalidateCatalogCache(ctx context.Context, cache redis.Cache, log *logger.Logger, assetIDs ...uuid.UUID) {
	if cache == nil {
		return
	}
	keys := []string{featuredCacheKey}
	for _, id := range assetIDs {
		keys = append(keys, assetCacheKey(id))
	}
	if err := cache.Delete(ctx, keys...); err != nil {
		log.Warn("Failed to invalidate catalog cache", "keys", keys, "error", err)
	}
}

type CatalogService interface {
	ListCategories(ctx context.Context) ([]*types.Category, error)
	GetCategory(ctx context.Context, categoryID uuid.UUID) (*types.Category, error)
	CreateCategory(ctx context.Context, in *schema.InsertCategory) (*types.Category, error)

	ListAssets(ctx context.Context, filter repos.AssetFilter) ([]types.AssetWithDetails, int64, error)
	ListFeatured(ctx context.Context) ([]types.AssetWithDetails, error)
	GetAsset(ctx context.Context, assetID uuid.UUID) (*types.AssetWithDetails, error)
	CreateAsset(ctx context.Context, in *schema.InsertAsset) (*types.AssetWithDetails, error)
	UploadAssetFile(ctx context.Context, assetID uuid.UUID, filename string, src io.Reader, size int64) (*types.AssetWithDetails, error)
}

type catalogService struct {
	db            *gorm.DB
	log           *logger.Logger
	categoryRepo  repos.CategoryRepo
	assetRepo     repos.AssetRepo
	userRepo      repos.UserRepo
	bucketService gcp.BucketService
	cache         redis.Cache
	cacheTTL      time.Duration
}

func NewCatalogService(
	db *gorm.DB,
	log *logger.Logger,
	categoryRepo repos.CategoryRepo,
	assetRepo repos.AssetRepo,
	userRepo repos.UserRepo,
	bucketService gcp.BucketService,
	cache redis.Cache,
	cacheTTL time.Duration,
) CatalogService {
	serviceLog := log.With("service", "CatalogService")
	return &catalogService{
		db:            db,
		log:           serviceLog,
		categoryRepo:  categoryRepo,
		assetRepo:     assetRepo,
		userRepo:      userRepo,
		bucketService: bucketService,
		cache:         cache,
		cacheTTL:      cacheTTL,
	}
}

func (cs *catalogService) ListCategories(ctx context.Context) ([]*types.Category, error) {
	return cs.categoryRepo.GetAll(dbctx.Context{Ctx: ctx})
}

func (cs *catalogService) GetCategory(ctx context.Context, categoryID uuid.UUID) (*types.Category, error) {
	found, err := cs.categoryRepo.GetByIDs(dbctx.Context{Ctx: ctx}, []uuid.UUID{categoryID})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 || found[0] == nil {
		return nil, apierr.New(http.StatusNotFound, "category_not_found", fmt.Errorf("category does not exist"))
	}
	return found[0], nil
}

func (cs *catalogService) CreateCategory(ctx context.Context, in *schema.InsertCategory) (*types.Category, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apierr.New(http.StatusUnauthorized, "unauthorized", nil)
	}
	if in == nil {
		return nil, apierr.New(http.StatusBadRequest, "invalid_request", fmt.Errorf("missing payload"))
	}

	category := in.Model()
	category.ID = uuid.New()

	var out *types.Category
	if err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		created, err := cs.categoryRepo.Create(dbc, []*types.Category{&category})
		if err != nil {
			return err
		}
		out = created[0]
		return nil
	}); err != nil {
		return nil, err
	}
	return out, nil
}

func (cs *catalogService) ListAssets(ctx context.Context, filter repos.AssetFilter) ([]types.AssetWithDetails, int64, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultPageSize
	}
	if filter.Limit > maxPageSize {
		filter.Limit = maxPageSize
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	dbc := dbctx.Context{Ctx: ctx}
	assets, err := cs.assetRepo.List(dbc, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := cs.assetRepo.Count(dbc, filter)
	if err != nil {
		return nil, 0, err
	}

	views := make([]types.AssetWithDetails, 0, len(assets))
	for _, a := range assets {
		views = append(views, types.NewAssetWithDetails(*a))
	}
	return views, total, nil
}

func (cs *catalogService) ListFeatured(ctx context.Context) ([]types.AssetWithDetails, error) {
	if cs.cache != nil {
		var cached []types.AssetWithDetails
		hit, err := cs.cache.GetJSON(ctx, featuredCacheKey, &cached)
		if err != nil {
			cs.log.Warn("Featured cache read failed", "error", err)
		} else if hit {
			return cached, nil
		}
	}

	assets, err := cs.assetRepo.List(dbctx.Context{Ctx: ctx}, repos.AssetFilter{
		Featured: pointers.Ptr(true),
		Sort:     "popular",
		Limit:    featuredShelfSize,
	})
	if err != nil {
		return nil, err
	}

	views := make([]types.AssetWithDetails, 0, len(assets))
	for _, a := range assets {
		views = append(views, types.NewAssetWithDetails(*a))
	}

	if cs.cache != nil {
		if err := cs.cache.SetJSON(ctx, featuredCacheKey, views, cs.cacheTTL); err != nil {
			cs.log.Warn("Featured cache write failed", "error", err)
		}
	}
	return views, nil
}

func (cs *catalogService) GetAsset(ctx context.Context, assetID uuid.UUID) (*types.AssetWithDetails, error) {
	key := assetCacheKey(assetID)
	if cs.cache != nil {
		var cached types.AssetWithDetails
		hit, err := cs.cache.GetJSON(ctx, key, &cached)
		if err != nil {
			cs.log.Warn("Asset cache read failed", "assetID", assetID, "error", err)
		} else if hit {
			return &cached, nil
		}
	}

	asset, err := cs.assetRepo.GetByID(dbctx.Context{Ctx: ctx}, assetID)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, apierr.New(http.StatusNotFound, "asset_not_found", fmt.Errorf("asset does not exist"))
	}

	view := types.NewAssetWithDetails(*asset)
	if cs.cache != nil {
		if err := cs.cache.SetJSON(ctx, key, view, cs.cacheTTL); err != nil {
			cs.log.Warn("Asset cache write failed", "assetID", assetID, "error", err)
		}
	}
	return &view, nil
}

func (cs *catalogService) CreateAsset(ctx context.Context, in *schema.InsertAsset) (*types.AssetWithDetails, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apierr.New(http.StatusUnauthorized, "unauthorized", nil)
	}
	if in == nil {
		return nil, apierr.New(http.StatusBadRequest, "invalid_request", fmt.Errorf("missing payload"))
	}
	if in.CreatorID != rd.UserID {
		return nil, apierr.New(http.StatusForbidden, "creator_mismatch", fmt.Errorf("assets can only be listed under the authenticated user"))
	}

	asset := in.Model()
	asset.ID = uuid.New()

	var out *types.AssetWithDetails
	if err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}

		creators, err := cs.userRepo.GetByIDs(dbc, []uuid.UUID{asset.CreatorID})
		if err != nil {
			return err
		}
		if len(creators) == 0 || creators[0] == nil {
			return apierr.New(http.StatusUnprocessableEntity, "creator_not_found", fmt.Errorf("creator does not exist"))
		}
		if !creators[0].IsCreator {
			return apierr.New(http.StatusForbidden, "not_a_creator", fmt.Errorf("user is not registered as a creator"))
		}

		categories, err := cs.categoryRepo.GetByIDs(dbc, []uuid.UUID{asset.CategoryID})
		if err != nil {
			return err
		}
		if len(categories) == 0 || categories[0] == nil {
			return apierr.New(http.StatusUnprocessableEntity, "category_not_found", fmt.Errorf("category does not exist"))
		}

		if _, err := cs.assetRepo.Create(dbc, []*types.Asset{&asset}); err != nil {
			return err
		}
		if err := cs.categoryRepo.IncrementAssetCount(dbc, asset.CategoryID, 1); err != nil {
			return err
		}

		got, err := cs.assetRepo.GetByID(dbc, asset.ID)
		if err != nil {
			return err
		}
		view := types.NewAssetWithDetails(*got)
		out = &view
		return nil
	}); err != nil {
		return nil, err
	}

	invalidateCatalogCache(ctx, cs.cache, cs.log, asset.ID)
	return out, nil
}

func (cs *catalogService) UploadAssetFile(ctx context.Context, assetID uuid.UUID, filename string, src io.Reader, size int64) (*types.AssetWithDetails, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apierr.New(http.StatusUnauthorized, "unauthorized", nil)
	}
	if cs.bucketService == nil {
		return nil, apierr.New(http.StatusServiceUnavailable, "storage_not_configured", fmt.Errorf("asset file uploads are disabled"))
	}

	var out *types.AssetWithDetails
	if err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}

		asset, err := cs.assetRepo.GetByID(dbc, assetID)
		if err != nil {
			return err
		}
		if asset == nil {
			return apierr.New(http.StatusNotFound, "asset_not_found", fmt.Errorf("asset does not exist"))
		}
		if asset.CreatorID != rd.UserID {
			return apierr.New(http.StatusForbidden, "not_asset_owner", fmt.Errorf("only the creator can attach the deliverable"))
		}

		key := fmt.Sprintf("asset_file/%s/%s", asset.ID.String(), sanitizeFilename(filename))
		if err := cs.bucketService.UploadFile(ctx, gcp.BucketCategoryAsset, key, src); err != nil {
			return fmt.Errorf("failed to upload asset file: %w", err)
		}

		fileURL := cs.bucketService.GetPublicURL(gcp.BucketCategoryAsset, key)
		fileType := gcp.ContentTypeForKey(key)
		if fileType == "" {
			fileType = "application/octet-stream"
		}
		if err := cs.assetRepo.UpdateFileFields(dbc, asset.ID, fileURL, fileType, int(size), key); err != nil {
			return err
		}

		got, err := cs.assetRepo.GetByID(dbc, asset.ID)
		if err != nil {
			return err
		}
		view := types.NewAssetWithDetails(*got)
		out = &view
		return nil
	}); err != nil {
		return nil, err
	}

	invalidateCatalogCache(ctx, cs.cache, cs.log, assetID)
	return out, nil
}

func sanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(strings.TrimSpace(name))
	if name == "" || name == "." || name == "/" {
		return "file"
	}
	return name
}
