package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/artcove/artcove-backend/internal/clients/gcp"
	"github.com/artcove/artcove-backend/internal/data/repos"
	"github.com/artcove/artcove-backend/internal/domain/schema"
	"github.com/artcove/artcove-backend/internal/http/response"
	"github.com/artcove/artcove-backend/internal/platform/apierr"
	"github.com/artcove/artcove-backend/internal/services"
)

type AssetHandler struct {
	catalogService services.CatalogService
	bucket         gcp.BucketService
}

func NewAssetHandler(catalogService services.CatalogService, bucket gcp.BucketService) *AssetHandler {
	return &AssetHandler{catalogService: catalogService, bucket: bucket}
}

// GET /api/assets
// query: category_id, creator_id, featured, search, sort, limit, offset
func (ah *AssetHandler) ListAssets(c *gin.Context) {
	filter, err := parseAssetFilter(c)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_filter", err)
		return
	}
	assets, total, err := ah.catalogService.ListAssets(c.Request.Context(), filter)
	if err != nil {
		ae := apierr.From(err, "list_assets_failed")
		response.RespondError(c, ae.Status, ae.Code, ae.Err)
		return
	}
	normalizeAssetFileURLs(ah.bucket, assets)
	response.RespondOK(c, gin.H{
		"assets": assets,
		"total":  total,
		"limit":  filter.Limit,
		"offset": filter.Offset,
	})
}

// GET /api/assets/featured
func (ah *AssetHandler) ListFeatured(c *gin.Context) {
	assets, err := ah.catalogService.ListFeatured(c.Request.Context())
	if err != nil {
		ae := apierr.From(err, "list_featured_failed")
		response.RespondError(c, ae.Status, ae.Code, ae.Err)
		return
	}
	normalizeAssetFileURLs(ah.bucket, assets)
	response.RespondOK(c, gin.H{"assets": assets})
}

// GET /api/assets/:id
func (ah *AssetHandler) GetAsset(c *gin.Context) {
	assetID, err := uuid.Parse(c.Param("id"))
	if err != nil || assetID == uuid.Nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_asset_id", err)
		return
	}
	asset, err := ah.catalogService.GetAsset(c.Request.Context(), assetID)
	if err != nil {
		ae := apierr.From(err, "get_asset_failed")
		response.RespondError(c, ae.Status, ae.Code, ae.Err)
		return
	}
	normalizeAssetFileURL(ah.bucket, asset)
	response.RespondOK(c, gin.H{"asset": asset})
}

// POST /api/assets
func (ah *AssetHandler) CreateAsset(c *gin.Context) {
	in, err := schema.DecodeInsertAsset(c.Request.Body)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	asset, err := ah.catalogService.CreateAsset(c.Request.Context(), in)
	if err != nil {
		ae := apierr.From(err, "create_asset_failed")
		response.RespondError(c, ae.Status, ae.Code, ae.Err)
		return
	}
	response.RespondOK(c, gin.H{"asset": asset})
}

// POST /api/assets/:id/file (multipart/form-data)
// field: "file"
func (ah *AssetHandler) UploadAssetFile(c *gin.Context) {
	assetID, err := uuid.Parse(c.Param("id"))
	if err != nil || assetID == uuid.Nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_asset_id", err)
		return
	}
	fh, err := c.FormFile("file")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "missing_file", err)
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "open_file_failed", err)
		return
	}
	defer f.Close()

	asset, err := ah.catalogService.UploadAssetFile(c.Request.Context(), assetID, fh.Filename, f, fh.Size)
	if err != nil {
		ae := apierr.From(err, "upload_asset_file_failed")
		response.RespondError(c, ae.Status, ae.Code, ae.Err)
		return
	}
	response.RespondOK(c, gin.H{"asset": asset})
}

func parseAssetFilter(c *gin.Context) (repos.AssetFilter, error) {
	var filter repos.AssetFilter

	if raw := strings.TrimSpace(c.Query("category_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return filter, err
		}
		filter.CategoryID = &id
	}
	if raw := strings.TrimSpace(c.Query("creator_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return filter, err
		}
		filter.CreatorID = &id
	}
	if raw := strings.TrimSpace(c.Query("featured")); raw != "" {
		featured, err := strconv.ParseBool(raw)
		if err != nil {
			return filter, err
		}
		filter.Featured = &featured
	}
	filter.Search = strings.TrimSpace(c.Query("search"))
	filter.Sort = strings.TrimSpace(c.Query("sort"))

	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return filter, err
		}
		filter.Limit = limit
	}
	if raw := strings.TrimSpace(c.Query("offset")); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil {
			return filter, err
		}
		filter.Offset = offset
	}
	return filter, nil
}
