package user

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/artcove/artcove-backend/internal/data/dberr"
	types "github.com/artcove/artcove-backend/internal/domain"
	"github.com/artcove/artcove-backend/internal/pkg/dbctx"
	"github.com/artcove/artcove-backend/internal/pkg/logger"
)

type UserRepo interface {
	Create(dbc dbctx.Context, users []*types.User) ([]*types.User, error)
	GetByIDs(dbc dbctx.Context, userIDs []uuid.UUID) ([]*types.User, error)
	GetByUsername(dbc dbctx.Context, username string) (*types.User, error)
	UsernameExists(dbc dbctx.Context, username string) (bool, error)
	UpdateProfile(dbc dbctx.Context, userID uuid.UUID, displayName, bio *string) error
	UpdateAvatarFields(dbc dbctx.Context, userID uuid.UUID, objectKey, avatarURL string) error
}

type userRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	repoLog := baseLog.With("repo", "UserRepo")
	return &userRepo{db: db, log: repoLog}
}

func (ur *userRepo) Create(dbc dbctx.Context, users []*types.User) ([]*types.User, error) {
	t := dbc.Tx
	if t == nil {
		t = ur.db
	}

	if len(users) == 0 {
		return []*types.User{}, nil
	}

	if err := t.WithContext(dbc.Ctx).Create(&users).Error; err != nil {
		return nil, dberr.Map("user.create", err)
	}

	return users, nil
}

func (ur *userRepo) GetByIDs(dbc dbctx.Context, userIDs []uuid.UUID) ([]*types.User, error) {
	t := dbc.Tx
	if t == nil {
		t = ur.db
	}

	var results []*types.User

	if len(userIDs) == 0 {
		return results, nil
	}

	if err := t.WithContext(dbc.Ctx).
		Where("id IN ?", userIDs).
		Find(&results).Error; err != nil {
		return nil, dberr.Map("user.get_by_ids", err)
	}
	return results, nil
}

// GetByUsername returns (nil, nil) when no row matches.
func (ur *userRepo) GetByUsername(dbc dbctx.Context, username string) (*types.User, error) {
	t := dbc.Tx
	if t == nil {
		t = ur.db
	}

	var row types.User
	if err := t.WithContext(dbc.Ctx).
		Where("username = ?", username).
		Limit(1).
		Find(&row).Error; err != nil {
		return nil, dberr.Map("user.get_by_username", err)
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (ur *userRepo) UsernameExists(dbc dbctx.Context, username string) (bool, error) {
	t := dbc.Tx
	if t == nil {
		t = ur.db
	}

	var count int64
	if err := t.WithContext(dbc.Ctx).
		Model(&types.User{}).
		Where("username = ?", username).
		Count(&count).Error; err != nil {
		return false, dberr.Map("user.username_exists", err)
	}
	return count > 0, nil
}

// UpdateProfile writes only the fields that were provided. A nil field is
// left as is; an empty bio clears the column.
func (ur *userRepo) UpdateProfile(dbc dbctx.Context, userID uuid.UUID, displayName, bio *string) error {
	t := dbc.Tx
	if t == nil {
		t = ur.db
	}

	updates := map[string]any{}
	if displayName != nil {
		updates["display_name"] = *displayName
	}
	if bio != nil {
		updates["bio"] = *bio
	}
	if len(updates) == 0 {
		return nil
	}

	if err := t.WithContext(dbc.Ctx).
		Model(&types.User{}).
		Where("id = ?", userID).
		Updates(updates).Error; err != nil {
		return dberr.Map("user.update_profile", err)
	}
	return nil
}

func (ur *userRepo) UpdateAvatarFields(dbc dbctx.Context, userID uuid.UUID, objectKey, avatarURL string) error {
	t := dbc.Tx
	if t == nil {
		t = ur.db
	}

	if err := t.WithContext(dbc.Ctx).
		Model(&types.User{}).
		Where("id = ?", userID).
		Updates(map[string]any{
			"avatar_object_key": objectKey,
			"avatar_url":        avatarURL,
		}).Error; err != nil {
		return dberr.Map("user.update_avatar_fields", err)
	}
	return nil
}
