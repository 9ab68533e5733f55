package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/artcove/artcove-backend/internal/data/repos"
	"github.com/artcove/artcove-backend/internal/data/repos/testutil"
	"github.com/artcove/artcove-backend/internal/domain/schema"
	"github.com/artcove/artcove-backend/internal/platform/apierr"
	"github.com/artcove/artcove-backend/internal/requestdata"
)

func wantAPIErr(t *testing.T, err error, status int, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("want api error %d/%s, got nil", status, code)
	}
	var ae *apierr.Error
	if !errors.As(err, &ae) {
		t.Fatalf("want api error %d/%s, got %v", status, code, err)
	}
	if ae.Status != status || ae.Code != code {
		t.Fatalf("api error: want=%d/%s got=%d/%s", status, code, ae.Status, ae.Code)
	}
}

func TestAuthServiceFlow(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	ctx := context.Background()

	userRepo := repos.NewUserRepo(tx, log)
	tokenRepo := repos.NewUserTokenRepo(tx, log)
	svc := NewAuthService(tx, log, userRepo, tokenRepo, nil, "flow-test-secret", time.Hour, 24*time.Hour)

	u, err := svc.Register(ctx, &schema.InsertUser{
		Username:    "  NewArtist ",
		Password:    "correct horse battery",
		DisplayName: "New Artist",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if u.Username != "newartist" {
		t.Fatalf("username: want normalized %q got=%q", "newartist", u.Username)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("correct horse battery")); err != nil {
		t.Fatalf("stored password is not the bcrypt hash: %v", err)
	}

	_, err = svc.Register(ctx, &schema.InsertUser{
		Username:    "newartist",
		Password:    "other",
		DisplayName: "Imposter",
	})
	wantAPIErr(t, err, 409, "username_taken")

	_, _, err = svc.Login(ctx, "newartist", "wrong password")
	wantAPIErr(t, err, 401, "invalid_credentials")

	access, refresh, err := svc.Login(ctx, "NewArtist", "correct horse battery")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if access == "" || refresh == "" {
		t.Fatalf("Login: empty token pair")
	}

	authed, err := svc.SetContextFromToken(ctx, access)
	if err != nil {
		t.Fatalf("SetContextFromToken: %v", err)
	}
	rd := requestdata.GetRequestData(authed)
	if rd == nil || rd.UserID != u.ID {
		t.Fatalf("request data after token resolve: got=%+v", rd)
	}
	if rd.RefreshToken != refresh {
		t.Fatalf("refresh token on request data: want=%q got=%q", refresh, rd.RefreshToken)
	}

	refreshCtx := requestdata.WithRequestData(ctx, &requestdata.RequestData{RefreshToken: refresh})
	newAccess, newRefresh, err := svc.Refresh(refreshCtx)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if newAccess == access || newRefresh == refresh {
		t.Fatalf("Refresh: token pair was not rotated")
	}

	// The pair rotates in place, so the spent refresh token is dead.
	_, _, err = svc.Refresh(refreshCtx)
	wantAPIErr(t, err, 401, "invalid_refresh_token")

	// The original access token was replaced by the rotation.
	if _, err := svc.SetContextFromToken(ctx, access); err == nil {
		t.Fatalf("SetContextFromToken: stale access token still resolves")
	}
	if _, err := svc.SetContextFromToken(ctx, newAccess); err != nil {
		t.Fatalf("SetContextFromToken (rotated): %v", err)
	}

	logoutCtx := requestdata.WithRequestData(ctx, &requestdata.RequestData{
		TokenString: newAccess,
		UserID:      u.ID,
	})
	if err := svc.Logout(logoutCtx); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, err := svc.SetContextFromToken(ctx, newAccess); err == nil {
		t.Fatalf("SetContextFromToken: token still resolves after logout")
	}
}

func TestAuthServiceRefreshExpired(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	ctx := context.Background()

	userRepo := repos.NewUserRepo(tx, log)
	tokenRepo := repos.NewUserTokenRepo(tx, log)
	// Refresh tokens born expired force the expiry path immediately.
	svc := NewAuthService(tx, log, userRepo, tokenRepo, nil, "flow-test-secret", time.Hour, -time.Minute)

	_, err := svc.Register(ctx, &schema.InsertUser{
		Username:    "expiredrefresher",
		Password:    "correct horse battery",
		DisplayName: "Expired Refresher",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	_, refresh, err := svc.Login(ctx, "expiredrefresher", "correct horse battery")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	refreshCtx := requestdata.WithRequestData(ctx, &requestdata.RequestData{RefreshToken: refresh})
	_, _, err = svc.Refresh(refreshCtx)
	wantAPIErr(t, err, 401, "refresh_token_expired")

	// The expired row is swept on touch, so a retry no longer finds it.
	_, _, err = svc.Refresh(refreshCtx)
	wantAPIErr(t, err, 401, "invalid_refresh_token")
}

func TestAuthServiceRefreshRequiresToken(t *testing.T) {
	log := testutil.Logger(t)
	svc := NewAuthService(nil, log, nil, nil, nil, "flow-test-secret", time.Hour, 24*time.Hour)

	_, _, err := svc.Refresh(context.Background())
	wantAPIErr(t, err, 401, "missing_refresh_token")
}
