package schema

import (
	"io"

	"github.com/google/uuid"

	"github.com/artcove/artcove-backend/internal/domain/commerce"
)

// InsertCartItem is the accepted payload for adding an asset to a cart.
// The id and added stamp are server generated; quantity falls back to 1.
type InsertCartItem struct {
	UserID   uuid.UUID `json:"user_id"`
	AssetID  uuid.UUID `json:"asset_id"`
	Quantity *int      `json:"quantity,omitempty"`
}

func DecodeInsertCartItem(r io.Reader) (*InsertCartItem, error) {
	var in InsertCartItem
	if err := decodeStrict(r, &in); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return &in, nil
}

func (in *InsertCartItem) Validate() error {
	if in.UserID == uuid.Nil {
		return required("user_id")
	}
	if in.AssetID == uuid.Nil {
		return required("asset_id")
	}
	return nil
}

func (in *InsertCartItem) Model() commerce.CartItem {
	ci := commerce.CartItem{
		UserID:   in.UserID,
		AssetID:  in.AssetID,
		Quantity: 1,
	}
	if in.Quantity != nil {
		ci.Quantity = *in.Quantity
	}
	return ci
}
