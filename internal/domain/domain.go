// Package domain re-exports the persisted model types so callers can
// reference them through a single import.
package domain

import (
	"github.com/artcove/artcove-backend/internal/domain/auth"
	"github.com/artcove/artcove-backend/internal/domain/catalog"
	"github.com/artcove/artcove-backend/internal/domain/commerce"
	"github.com/artcove/artcove-backend/internal/domain/user"
)

type User = user.User
type UserToken = auth.UserToken

type Category = catalog.Category
type Asset = catalog.Asset
type CreatorSummary = catalog.CreatorSummary
type AssetWithDetails = catalog.AssetWithDetails

type CartItem = commerce.CartItem
type Purchase = commerce.Purchase
type Rating = commerce.Rating
type CartItemWithDetails = commerce.CartItemWithDetails
type PurchaseWithAsset = commerce.PurchaseWithAsset

const PurchaseStatusCompleted = commerce.PurchaseStatusCompleted

func NewAssetWithDetails(a catalog.Asset) catalog.AssetWithDetails {
	return catalog.NewAssetWithDetails(a)
}

func NewCartItemWithDetails(ci commerce.CartItem) commerce.CartItemWithDetails {
	return commerce.NewCartItemWithDetails(ci)
}

func NewPurchaseWithAsset(p commerce.Purchase) commerce.PurchaseWithAsset {
	return commerce.NewPurchaseWithAsset(p)
}
