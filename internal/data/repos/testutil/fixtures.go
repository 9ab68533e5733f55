package testutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	types "github.com/artcove/artcove-backend/internal/domain"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, username string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:          uuid.New(),
		Username:    username,
		Password:    "pw",
		DisplayName: "Test User",
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedCreator(tb testing.TB, ctx context.Context, tx *gorm.DB, username string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:          uuid.New(),
		Username:    username,
		Password:    "pw",
		DisplayName: "Test Creator",
		IsCreator:   true,
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed creator: %v", err)
	}
	return u
}

func SeedCategory(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *types.Category {
	tb.Helper()
	c := &types.Category{
		ID:   uuid.New(),
		Name: name,
		Icon: "palette",
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed category: %v", err)
	}
	return c
}

func SeedAsset(tb testing.TB, ctx context.Context, tx *gorm.DB, categoryID, creatorID uuid.UUID, title string) *types.Asset {
	tb.Helper()
	a := &types.Asset{
		ID:         uuid.New(),
		Title:      title,
		PreviewURL: "https://cdn.example.com/previews/" + title + ".png",
		Price:      9.99,
		CategoryID: categoryID,
		CreatorID:  creatorID,
		Tags:       datatypes.JSONSlice[string]{},
		Thumbnails: datatypes.JSONSlice[string]{},
	}
	if err := tx.WithContext(ctx).Create(a).Error; err != nil {
		tb.Fatalf("seed asset: %v", err)
	}
	return a
}

func SeedPurchase(tb testing.TB, ctx context.Context, tx *gorm.DB, userID, assetID uuid.UUID) *types.Purchase {
	tb.Helper()
	p := &types.Purchase{
		ID:      uuid.New(),
		UserID:  userID,
		AssetID: assetID,
		Amount:  9.99,
		Status:  types.PurchaseStatusCompleted,
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed purchase: %v", err)
	}
	return p
}
