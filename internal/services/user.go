package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/artcove/artcove-backend/internal/data/repos"
	types "github.com/artcove/artcove-backend/internal/domain"
	"github.com/artcove/artcove-backend/internal/pkg/dbctx"
	"github.com/artcove/artcove-backend/internal/pkg/logger"
	"github.com/artcove/artcove-backend/internal/platform/apierr"
	"github.com/artcove/artcove-backend/internal/requestdata"
)

type UserService interface {
	GetMe(dbc dbctx.Context) (*types.User, error)
	UpdateProfile(ctx context.Context, displayName, bio *string) (*types.User, error)
	UploadAvatarImage(ctx context.Context, raw []byte) (*types.User, error)
}

type userService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      repos.UserRepo
	avatarService AvatarService
}

func NewUserService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo, avatarService AvatarService) UserService {
	serviceLog := log.With("service", "UserService")
	return &userService{
		db:            db,
		log:           serviceLog,
		userRepo:      userRepo,
		avatarService: avatarService,
	}
}

func (us *userService) GetMe(dbc dbctx.Context) (*types.User, error) {
	rd := requestdata.GetRequestData(dbc.Ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apierr.New(http.StatusUnauthorized, "unauthorized", fmt.Errorf("request data not set in context"))
	}

	getUser := func(dbc dbctx.Context, userID uuid.UUID) (*types.User, error) {
		found, err := us.userRepo.GetByIDs(dbc, []uuid.UUID{userID})
		if err != nil {
			return nil, fmt.Errorf("error fetching user: %w", err)
		}
		if len(found) == 0 || found[0] == nil {
			return nil, apierr.New(http.StatusNotFound, "user_not_found", fmt.Errorf("user does not exist"))
		}
		return found[0], nil
	}

	if dbc.Tx != nil {
		return getUser(dbc, rd.UserID)
	}

	var theUser *types.User
	if err := us.db.WithContext(dbc.Ctx).Transaction(func(tx *gorm.DB) error {
		inner := dbctx.Context{Ctx: dbc.Ctx, Tx: tx}
		u, err := getUser(inner, rd.UserID)
		if err != nil {
			return err
		}
		theUser = u
		return nil
	}); err != nil {
		us.log.Warn("GetMe transaction error", "error", err)
		return nil, err
	}
	return theUser, nil
}

func (us *userService) UpdateProfile(ctx context.Context, displayName, bio *string) (*types.User, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apierr.New(http.StatusUnauthorized, "unauthorized", nil)
	}

	if displayName == nil && bio == nil {
		return nil, apierr.New(http.StatusBadRequest, "no_profile_updates", fmt.Errorf("no profile updates provided"))
	}

	if displayName != nil {
		trimmed := strings.TrimSpace(*displayName)
		if trimmed == "" {
			return nil, apierr.New(http.StatusBadRequest, "invalid_display_name", fmt.Errorf("display_name must not be blank"))
		}
		displayName = &trimmed
	}
	if bio != nil {
		trimmed := strings.TrimSpace(*bio)
		bio = &trimmed
	}

	var out *types.User
	if err := us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		if err := us.userRepo.UpdateProfile(dbc, rd.UserID, displayName, bio); err != nil {
			return err
		}
		u, err := us.userRepo.GetByIDs(dbc, []uuid.UUID{rd.UserID})
		if err != nil || len(u) == 0 {
			return fmt.Errorf("failed to reload user")
		}
		out = u[0]
		return nil
	}); err != nil {
		return nil, err
	}
	return out, nil
}

func (us *userService) UploadAvatarImage(ctx context.Context, raw []byte) (*types.User, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apierr.New(http.StatusUnauthorized, "unauthorized", nil)
	}
	if len(raw) == 0 {
		return nil, apierr.New(http.StatusBadRequest, "empty_upload", fmt.Errorf("empty upload"))
	}
	if us.avatarService == nil {
		return nil, apierr.New(http.StatusServiceUnavailable, "storage_not_configured", fmt.Errorf("avatar uploads are disabled"))
	}

	var out *types.User
	if err := us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		found, err := us.userRepo.GetByIDs(dbc, []uuid.UUID{rd.UserID})
		if err != nil || len(found) == 0 || found[0] == nil {
			return apierr.New(http.StatusNotFound, "user_not_found", fmt.Errorf("user not found"))
		}
		u := found[0]

		if err := us.avatarService.CreateAndUploadUserAvatarFromImage(ctx, u, raw); err != nil {
			return err
		}

		if u.AvatarObjectKey == nil || u.AvatarURL == nil {
			return fmt.Errorf("avatar upload left no object key")
		}
		if err := us.userRepo.UpdateAvatarFields(dbc, rd.UserID, *u.AvatarObjectKey, *u.AvatarURL); err != nil {
			return err
		}

		out = u
		return nil
	}); err != nil {
		return nil, err
	}
	return out, nil
}
