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

type CartHandler struct {
	cartService services.CartService
}

func NewCartHandler(cartService services.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// GET /api/cart
func (ch *CartHandler) ListItems(c *gin.Context) {
	items, err := ch.cartService.ListItems(c.Request.Context())
	if err != nil {
		ae := apierr.From(err, "list_cart_failed")
		response.RespondError(c, ae.Status, ae.Code, ae.Err)
		return
	}
	response.RespondOK(c, gin.H{"items": items})
}

// POST /api/cart
func (ch *CartHandler) AddItem(c *gin.Context) {
	in, err := schema.DecodeInsertCartItem(c.Request.Body)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	item, err := ch.cartService.AddItem(c.Request.Context(), in)
	if err != nil {
		ae := apierr.From(err, "add_cart_item_failed")
		response.RespondError(c, ae.Status, ae.Code, ae.Err)
		return
	}
	response.RespondOK(c, gin.H{"item": item})
}

// DELETE /api/cart/:id
func (ch *CartHandler) RemoveItem(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil || itemID == uuid.Nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_cart_item_id", err)
		return
	}
	if err := ch.cartService.RemoveItem(c.Request.Context(), itemID); err != nil {
		ae := apierr.From(err, "remove_cart_item_failed")
		response.RespondError(c, ae.Status, ae.Code, ae.Err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

// DELETE /api/cart
func (ch *CartHandler) Clear(c *gin.Context) {
	if err := ch.cartService.Clear(c.Request.Context()); err != nil {
		ae := apierr.From(err, "clear_cart_failed")
		response.RespondError(c, ae.Status, ae.Code, ae.Err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
