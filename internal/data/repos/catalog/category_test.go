package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/artcove/artcove-backend/internal/data/repos/testutil"
	types "github.com/artcove/artcove-backend/internal/domain"
	"github.com/artcove/artcove-backend/internal/pkg/dbctx"
	errs "github.com/artcove/artcove-backend/internal/pkg/errors"
)

func TestCategoryRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewCategoryRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	created, err := repo.Create(dbc, []*types.Category{
		{ID: uuid.New(), Name: "Brushes", Icon: "brush"},
		{ID: uuid.New(), Name: "Audio", Icon: "music"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(created) != 2 {
		t.Fatalf("Create: expected 2 categories, got %d", len(created))
	}

	all, err := repo.GetAll(dbc)
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	audioIdx, brushesIdx := -1, -1
	for i, c := range all {
		switch c.Name {
		case "Audio":
			audioIdx = i
		case "Brushes":
			brushesIdx = i
		}
	}
	if audioIdx == -1 || brushesIdx == -1 {
		t.Fatalf("GetAll: seeded categories missing: %+v", all)
	}
	if audioIdx > brushesIdx {
		t.Fatalf("GetAll: expected name ascending order, got Audio at %d, Brushes at %d", audioIdx, brushesIdx)
	}

	byName, err := repo.GetByName(dbc, "Brushes")
	if err != nil {
		t.Fatalf("GetByName: %v", err)
	}
	if byName == nil || byName.Icon != "brush" {
		t.Fatalf("GetByName: unexpected result: %+v", byName)
	}

	missing, err := repo.GetByName(dbc, "Not A Category")
	if err != nil {
		t.Fatalf("GetByName (missing): %v", err)
	}
	if missing != nil {
		t.Fatalf("GetByName (missing): expected nil, got %+v", missing)
	}

	byIDs, err := repo.GetByIDs(dbc, []uuid.UUID{created[0].ID})
	if err != nil {
		t.Fatalf("GetByIDs: %v", err)
	}
	if len(byIDs) != 1 || byIDs[0].ID != created[0].ID {
		t.Fatalf("GetByIDs: unexpected result: %+v", byIDs)
	}

	if err := repo.IncrementAssetCount(dbc, created[0].ID, 2); err != nil {
		t.Fatalf("IncrementAssetCount: %v", err)
	}
	if err := repo.IncrementAssetCount(dbc, created[0].ID, -1); err != nil {
		t.Fatalf("IncrementAssetCount (negative): %v", err)
	}
	counted, err := repo.GetByIDs(dbc, []uuid.UUID{created[0].ID})
	if err != nil {
		t.Fatalf("GetByIDs (after increment): %v", err)
	}
	if len(counted) != 1 || counted[0].AssetCount != 1 {
		t.Fatalf("IncrementAssetCount: expected asset_count 1, got %+v", counted)
	}
}

func TestCategoryRepoRecomputeAssetCounts(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewCategoryRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	creator := testutil.SeedCreator(t, ctx, tx, "countcreator")
	busy := testutil.SeedCategory(t, ctx, tx, "Busy Category")
	idle := testutil.SeedCategory(t, ctx, tx, "Idle Category")

	testutil.SeedAsset(t, ctx, tx, busy.ID, creator.ID, "count-a")
	testutil.SeedAsset(t, ctx, tx, busy.ID, creator.ID, "count-b")

	// Drift both counters on purpose so the rebuilds have work to do.
	if err := repo.IncrementAssetCount(dbc, busy.ID, 7); err != nil {
		t.Fatalf("IncrementAssetCount: %v", err)
	}
	if err := repo.IncrementAssetCount(dbc, idle.ID, 3); err != nil {
		t.Fatalf("IncrementAssetCount (idle): %v", err)
	}

	if err := repo.RecomputeAssetCount(dbc, busy.ID); err != nil {
		t.Fatalf("RecomputeAssetCount: %v", err)
	}
	counts := fetchCounts(t, repo, dbc, busy.ID, idle.ID)
	if counts[busy.ID] != 2 {
		t.Fatalf("RecomputeAssetCount: expected 2 for busy category, got %d", counts[busy.ID])
	}
	if counts[idle.ID] != 3 {
		t.Fatalf("RecomputeAssetCount: expected idle category untouched at 3, got %d", counts[idle.ID])
	}

	if err := repo.RecomputeAssetCounts(dbc); err != nil {
		t.Fatalf("RecomputeAssetCounts: %v", err)
	}
	counts = fetchCounts(t, repo, dbc, busy.ID, idle.ID)
	if counts[busy.ID] != 2 {
		t.Fatalf("RecomputeAssetCounts: expected 2 for busy category, got %d", counts[busy.ID])
	}
	if counts[idle.ID] != 0 {
		t.Fatalf("RecomputeAssetCounts: expected 0 for idle category, got %d", counts[idle.ID])
	}
}

func fetchCounts(t *testing.T, repo CategoryRepo, dbc dbctx.Context, ids ...uuid.UUID) map[uuid.UUID]int {
	t.Helper()
	rows, err := repo.GetByIDs(dbc, ids)
	if err != nil {
		t.Fatalf("GetByIDs: %v", err)
	}
	counts := map[uuid.UUID]int{}
	for _, c := range rows {
		counts[c.ID] = c.AssetCount
	}
	return counts
}

func TestCategoryRepoCreateIfAbsent(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewCategoryRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}

	inserted, err := repo.CreateIfAbsent(dbc, []*types.Category{
		{ID: uuid.New(), Name: "Seed Alpha", Icon: "star"},
		{ID: uuid.New(), Name: "Seed Beta", Icon: "moon"},
	})
	if err != nil {
		t.Fatalf("CreateIfAbsent: %v", err)
	}
	if inserted != 2 {
		t.Fatalf("CreateIfAbsent: expected 2 inserted, got %d", inserted)
	}

	inserted, err = repo.CreateIfAbsent(dbc, []*types.Category{
		{ID: uuid.New(), Name: "Seed Alpha", Icon: "star"},
		{ID: uuid.New(), Name: "Seed Gamma", Icon: "sun"},
	})
	if err != nil {
		t.Fatalf("CreateIfAbsent (rerun): %v", err)
	}
	if inserted != 1 {
		t.Fatalf("CreateIfAbsent (rerun): expected 1 inserted, got %d", inserted)
	}

	alpha, err := repo.GetByName(dbc, "Seed Alpha")
	if err != nil {
		t.Fatalf("GetByName: %v", err)
	}
	if alpha == nil || alpha.Icon != "star" {
		t.Fatalf("GetByName: unexpected result: %+v", alpha)
	}
}

func TestCategoryRepoDuplicateName(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewCategoryRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}

	if _, err := repo.Create(dbc, []*types.Category{
		{ID: uuid.New(), Name: "Textures", Icon: "grid"},
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err := repo.Create(dbc, []*types.Category{
		{ID: uuid.New(), Name: "Textures", Icon: "grid"},
	})
	if !errors.Is(err, errs.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}
