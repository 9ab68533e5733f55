package commerce

import (
	"github.com/artcove/artcove-backend/internal/domain/catalog"
)

// CartItemWithDetails is a read-only projection of a cart row together with
// the detailed asset it points at. Assembled from queries, never persisted.
type CartItemWithDetails struct {
	CartItem
	Asset catalog.AssetWithDetails `json:"asset"`
}

func NewCartItemWithDetails(ci CartItem) CartItemWithDetails {
	view := CartItemWithDetails{CartItem: ci}
	if ci.Asset != nil {
		view.Asset = catalog.NewAssetWithDetails(*ci.Asset)
	}
	view.CartItem.Asset = nil
	view.CartItem.User = nil
	return view
}

// PurchaseWithAsset is a purchase row lifted into the buyer's library view,
// carrying the purchased asset in detail form.
type PurchaseWithAsset struct {
	Purchase
	Asset catalog.AssetWithDetails `json:"asset"`
}

func NewPurchaseWithAsset(p Purchase) PurchaseWithAsset {
	view := PurchaseWithAsset{Purchase: p}
	if p.Asset != nil {
		view.Asset = catalog.NewAssetWithDetails(*p.Asset)
	}
	view.Purchase.Asset = nil
	view.Purchase.User = nil
	return view
}
