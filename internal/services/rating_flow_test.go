package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/artcove/artcove-backend/internal/data/repos"
	"github.com/artcove/artcove-backend/internal/data/repos/testutil"
	"github.com/artcove/artcove-backend/internal/domain/schema"
	"github.com/artcove/artcove-backend/internal/pkg/dbctx"
	"github.com/artcove/artcove-backend/internal/pkg/pointers"
)

func TestRatingServiceFlow(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	ctx := context.Background()

	ratingRepo := repos.NewRatingRepo(tx, log)
	assetRepo := repos.NewAssetRepo(tx, log)
	svc := NewRatingService(tx, log, ratingRepo, assetRepo, nil)

	creator := testutil.SeedCreator(t, ctx, tx, "ratingflowcreator")
	alice := testutil.SeedUser(t, ctx, tx, "ratingflowalice")
	bob := testutil.SeedUser(t, ctx, tx, "ratingflowbob")
	cat := testutil.SeedCategory(t, ctx, tx, "Rating Flow Cat")
	asset := testutil.SeedAsset(t, ctx, tx, cat.ID, creator.ID, "rating-flow-asset")

	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	// Identity on the payload has to match the caller.
	_, err := svc.RateAsset(buyerContext(alice.ID), &schema.InsertRating{
		UserID:  bob.ID,
		AssetID: asset.ID,
		Rating:  pointers.Int(5),
	})
	wantAPIErr(t, err, 403, "rating_owner_mismatch")

	_, err = svc.RateAsset(buyerContext(alice.ID), &schema.InsertRating{
		UserID:  alice.ID,
		AssetID: uuid.New(),
		Rating:  pointers.Int(5),
	})
	wantAPIErr(t, err, 422, "asset_not_found")

	first, err := svc.RateAsset(buyerContext(alice.ID), &schema.InsertRating{
		UserID:  alice.ID,
		AssetID: asset.ID,
		Rating:  pointers.Int(5),
		Comment: pointers.String("Gorgeous linework"),
	})
	if err != nil {
		t.Fatalf("RateAsset: %v", err)
	}
	if first.Rating != 5 {
		t.Fatalf("rating: want=5 got=%d", first.Rating)
	}
	if first.Comment == nil || *first.Comment != "Gorgeous linework" {
		t.Fatalf("comment: got=%v", first.Comment)
	}

	if _, err := svc.RateAsset(buyerContext(bob.ID), &schema.InsertRating{
		UserID:  bob.ID,
		AssetID: asset.ID,
		Rating:  pointers.Int(2),
	}); err != nil {
		t.Fatalf("RateAsset (bob): %v", err)
	}

	reloaded, err := assetRepo.GetByID(dbc, asset.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if reloaded.Rating != 3.5 {
		t.Fatalf("stored average: want=3.5 got=%v", reloaded.Rating)
	}

	// Re-rating replaces the earlier row and moves the average.
	if _, err := svc.RateAsset(buyerContext(alice.ID), &schema.InsertRating{
		UserID:  alice.ID,
		AssetID: asset.ID,
		Rating:  pointers.Int(4),
	}); err != nil {
		t.Fatalf("RateAsset (replace): %v", err)
	}
	reloaded, err = assetRepo.GetByID(dbc, asset.ID)
	if err != nil {
		t.Fatalf("GetByID (after replace): %v", err)
	}
	if reloaded.Rating != 3 {
		t.Fatalf("stored average after replace: want=3 got=%v", reloaded.Rating)
	}

	ratings, err := svc.ListAssetRatings(ctx, asset.ID)
	if err != nil {
		t.Fatalf("ListAssetRatings: %v", err)
	}
	if len(ratings) != 2 {
		t.Fatalf("ratings: want=2 got=%d", len(ratings))
	}
	for _, r := range ratings {
		if r.User == nil {
			t.Fatalf("rating row missing user: %+v", r)
		}
	}

	_, err = svc.ListAssetRatings(ctx, uuid.New())
	wantAPIErr(t, err, 404, "asset_not_found")
}
