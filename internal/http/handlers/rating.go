package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/artcove/artcove-backend/internal/domain/schema"
	"github.com/artcove/artcove-backend/internal/http/response"
	"github.com/artcove/artcove-backend/internal/platform/apierr"
	"github.com/artcove/artcove-backend/internal/services"
)

type RatingHandler struct {
	ratingService services.RatingService
}

func NewRatingHandler(ratingService services.RatingService) *RatingHandler {
	return &RatingHandler{ratingService: ratingService}
}

// GET /api/assets/:id/ratings
func (rh *RatingHandler) ListAssetRatings(c *gin.Context) {
	assetID, err := uuid.Parse(c.Param("id"))
	if err != nil || assetID == uuid.Nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_asset_id", err)
		return
	}
	ratings, err := rh.ratingService.ListAssetRatings(c.Request.Context(), assetID)
	if err != nil {
		ae := apierr.From(err, "list_ratings_failed")
		response.RespondError(c, ae.Status, ae.Code, ae.Err)
		return
	}
	response.RespondOK(c, gin.H{"ratings": ratings})
}

// POST /api/assets/:id/ratings
func (rh *RatingHandler) RateAsset(c *gin.Context) {
	assetID, err := uuid.Parse(c.Param("id"))
	if err != nil || assetID == uuid.Nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_asset_id", err)
		return
	}
	in, err := schema.DecodeInsertRating(c.Request.Body)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if in.AssetID != assetID {
		response.RespondError(c, http.StatusBadRequest, "asset_id_mismatch",
			fmt.Errorf("payload asset_id does not match the route"))
		return
	}
	rating, err := rh.ratingService.RateAsset(c.Request.Context(), in)
	if err != nil {
		ae := apierr.From(err, "rate_asset_failed")
		response.RespondError(c, ae.Status, ae.Code, ae.Err)
		return
	}
	response.RespondOK(c, gin.H{"rating": rating})
}
