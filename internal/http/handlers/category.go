package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/artcove/artcove-backend/internal/domain/schema"
	"github.com/artcove/artcove-backend/internal/http/response"
	"github.com/artcove/artcove-backend/internal/platform/apierr"
	"github.com/artcove/artcove-backend/internal/services"
)

type CategoryHandler struct {
	catalogService services.CatalogService
}

func NewCategoryHandler(catalogService services.CatalogService) *CategoryHandler {
	return &CategoryHandler{catalogService: catalogService}
}

// GET /api/categories
func (ch *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := ch.catalogService.ListCategories(c.Request.Context())
	if err != nil {
		ae := apierr.From(err, "list_categories_failed")
		response.RespondError(c, ae.Status, ae.Code, ae.Err)
		return
	}
	response.RespondOK(c, gin.H{"categories": categories})
}

// GET /api/categories/:id
func (ch *CategoryHandler) GetCategory(c *gin.Context) {
	categoryID, err := uuid.Parse(c.Param("id"))
	if err != nil || categoryID == uuid.Nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_category_id", err)
		return
	}
	category, err := ch.catalogService.GetCategory(c.Request.Context(), categoryID)
	if err != nil {
		ae := apierr.From(err, "get_category_failed")
		response.RespondError(c, ae.Status, ae.Code, ae.Err)
		return
	}
	response.RespondOK(c, gin.H{"category": category})
}

// POST /api/categories
func (ch *CategoryHandler) CreateCategory(c *gin.Context) {
	in, err := schema.DecodeInsertCategory(c.Request.Body)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	category, err := ch.catalogService.CreateCategory(c.Request.Context(), in)
	if err != nil {
		ae := apierr.From(err, "create_category_failed")
		response.RespondError(c, ae.Status, ae.Code, ae.Err)
		return
	}
	response.RespondOK(c, gin.H{"category": category})
}
