package schema

import (
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/artcove/artcove-backend/internal/domain/commerce"
)

// InsertPurchase is the accepted payload for recording a purchase. The id,
// purchase stamp and download bookkeeping are server generated; status
// falls back to "completed".
type InsertPurchase struct {
	UserID          uuid.UUID `json:"user_id"`
	AssetID         uuid.UUID `json:"asset_id"`
	Amount          *float64  `json:"amount"`
	PaymentIntentID *string   `json:"payment_intent_id,omitempty"`
	Status          *string   `json:"status,omitempty"`
}

func DecodeInsertPurchase(r io.Reader) (*InsertPurchase, error) {
	var in InsertPurchase
	if err := decodeStrict(r, &in); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return &in, nil
}

func (in *InsertPurchase) Validate() error {
	if in.UserID == uuid.Nil {
		return required("user_id")
	}
	if in.AssetID == uuid.Nil {
		return required("asset_id")
	}
	if in.Amount == nil {
		return required("amount")
	}
	return nil
}

func (in *InsertPurchase) Model() commerce.Purchase {
	p := commerce.Purchase{
		UserID:          in.UserID,
		AssetID:         in.AssetID,
		PaymentIntentID: in.PaymentIntentID,
		Status:          commerce.PurchaseStatusCompleted,
	}
	if in.Amount != nil {
		p.Amount = *in.Amount
	}
	if in.Status != nil && strings.TrimSpace(*in.Status) != "" {
		p.Status = strings.TrimSpace(*in.Status)
	}
	return p
}
