package user

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

func TestUserRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewUserRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}

	created, err := repo.Create(dbc, []*types.User{
		{
			ID:          uuid.New(),
			Username:    "userrepo",
			Password:    "pw",
			DisplayName: "User Repo",
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(created) != 1 {
		t.Fatalf("Create: expected 1 user, got %d", len(created))
	}

	gotByIDs, err := repo.GetByIDs(dbc, []uuid.UUID{created[0].ID})
	if err != nil {
		t.Fatalf("GetByIDs: %v", err)
	}
	if len(gotByIDs) != 1 || gotByIDs[0].ID != created[0].ID {
		t.Fatalf("GetByIDs: unexpected result: %+v", gotByIDs)
	}

	gotByUsername, err := repo.GetByUsername(dbc, "userrepo")
	if err != nil {
		t.Fatalf("GetByUsername: %v", err)
	}
	if gotByUsername == nil || gotByUsername.ID != created[0].ID {
		t.Fatalf("GetByUsername: unexpected result: %+v", gotByUsername)
	}

	missing, err := repo.GetByUsername(dbc, "nobody")
	if err != nil {
		t.Fatalf("GetByUsername (missing): %v", err)
	}
	if missing != nil {
		t.Fatalf("GetByUsername (missing): expected nil, got %+v", missing)
	}

	exists, err := repo.UsernameExists(dbc, "userrepo")
	if err != nil {
		t.Fatalf("UsernameExists: %v", err)
	}
	if !exists {
		t.Fatalf("UsernameExists: expected true")
	}

	exists, err = repo.UsernameExists(dbc, "nobody")
	if err != nil {
		t.Fatalf("UsernameExists (missing): %v", err)
	}
	if exists {
		t.Fatalf("UsernameExists (missing): expected false")
	}

	newName := "Renamed Repo"
	newBio := "Paints with light."
	if err := repo.UpdateProfile(dbc, created[0].ID, &newName, &newBio); err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if err := repo.UpdateProfile(dbc, created[0].ID, nil, nil); err != nil {
		t.Fatalf("UpdateProfile (no fields): %v", err)
	}
	renamed, err := repo.GetByUsername(dbc, "userrepo")
	if err != nil {
		t.Fatalf("GetByUsername (after profile update): %v", err)
	}
	if renamed.DisplayName != "Renamed Repo" {
		t.Fatalf("UpdateProfile: display name not persisted: %+v", renamed)
	}
	if renamed.Bio == nil || *renamed.Bio != "Paints with light." {
		t.Fatalf("UpdateProfile: bio not persisted: %+v", renamed)
	}

	if err := repo.UpdateAvatarFields(dbc, created[0].ID, "avatar/userrepo/avatar.png", "https://cdn.example.com/avatar/userrepo/avatar.png"); err != nil {
		t.Fatalf("UpdateAvatarFields: %v", err)
	}
	refreshed, err := repo.GetByUsername(dbc, "userrepo")
	if err != nil {
		t.Fatalf("GetByUsername (after avatar): %v", err)
	}
	if refreshed.AvatarURL == nil || *refreshed.AvatarURL != "https://cdn.example.com/avatar/userrepo/avatar.png" {
		t.Fatalf("UpdateAvatarFields: avatar url not persisted: %+v", refreshed)
	}
	if refreshed.AvatarObjectKey == nil || *refreshed.AvatarObjectKey != "avatar/userrepo/avatar.png" {
		t.Fatalf("UpdateAvatarFields: object key not persisted: %+v", refreshed)
	}
}

func TestUserRepoDuplicateUsername(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewUserRepo(db, testutil.Logger(t))
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	testutil.SeedUser(t, ctx, tx, "takenname")

	_, err := repo.Create(dbc, []*types.User{
		{
			ID:          uuid.New(),
			Username:    "takenname",
			Password:    "pw",
			DisplayName: "Second",
		},
	})
	if !errors.Is(err, errs.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}
