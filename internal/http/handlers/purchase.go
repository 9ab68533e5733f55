package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/artcove/artcove-backend/internal/http/response"
	"github.com/artcove/artcove-backend/internal/platform/apierr"
	"github.com/artcove/artcove-backend/internal/services"
)

type PurchaseHandler struct {
	checkoutService services.CheckoutService
}

func NewPurchaseHandler(checkoutService services.CheckoutService) *PurchaseHandler {
	return &PurchaseHandler{checkoutService: checkoutService}
}

// POST /api/checkout
// body: { "payment_intent_id": "..." }, optional
func (ph *PurchaseHandler) Checkout(c *gin.Context) {
	var req struct {
		PaymentIntentID *string `json:"payment_intent_id"`
	}
	// The body is optional; a bare POST checks out with no payment ref.
	_ = c.ShouldBindJSON(&req)
	if req.PaymentIntentID != nil && strings.TrimSpace(*req.PaymentIntentID) == "" {
		req.PaymentIntentID = nil
	}

	purchases, err := ph.checkoutService.Checkout(c.Request.Context(), req.PaymentIntentID)
	if err != nil {
		ae := apierr.From(err, "checkout_failed")
		response.RespondError(c, ae.Status, ae.Code, ae.Err)
		return
	}
	response.RespondOK(c, gin.H{"purchases": purchases})
}

// GET /api/purchases
func (ph *PurchaseHandler) ListPurchases(c *gin.Context) {
	purchases, err := ph.checkoutService.ListPurchases(c.Request.Context())
	if err != nil {
		ae := apierr.From(err, "list_purchases_failed")
		response.RespondError(c, ae.Status, ae.Code, ae.Err)
		return
	}
	response.RespondOK(c, gin.H{"purchases": purchases})
}

// POST /api/purchases/:id/download
func (ph *PurchaseHandler) Download(c *gin.Context) {
	purchaseID, err := uuid.Parse(c.Param("id"))
	if err != nil || purchaseID == uuid.Nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_purchase_id", err)
		return
	}
	download, err := ph.checkoutService.RecordDownload(c.Request.Context(), purchaseID)
	if err != nil {
		ae := apierr.From(err, "download_failed")
		response.RespondError(c, ae.Status, ae.Code, ae.Err)
		return
	}
	response.RespondOK(c, gin.H{"download": download})
}
