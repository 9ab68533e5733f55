package auth

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/artcove/artcove-backend/internal/data/dberr"
	types "github.com/artcove/artcove-backend/internal/domain"
	"github.com/artcove/artcove-backend/internal/pkg/dbctx"
	"github.com/artcove/artcove-backend/internal/pkg/logger"
)

type UserTokenRepo interface {
	Create(dbc dbctx.Context, userTokens []*types.UserToken) ([]*types.UserToken, error)
	GetByAccessToken(dbc dbctx.Context, accessToken string) (*types.UserToken, error)
	GetByRefreshToken(dbc dbctx.Context, refreshToken string) (*types.UserToken, error)
	Update(dbc dbctx.Context, token *types.UserToken) error
	DeleteByIDs(dbc dbctx.Context, tokenIDs []uuid.UUID) error
	DeleteByUserIDs(dbc dbctx.Context, userIDs []uuid.UUID) error
	DeleteExpiredBefore(dbc dbctx.Context, cutoff time.Time) (int64, error)
}

type userTokenRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserTokenRepo(db *gorm.DB, baseLog *logger.Logger) UserTokenRepo {
	repoLog := baseLog.With("repo", "UserTokenRepo")
	return &userTokenRepo{db: db, log: repoLog}
}

func (utr *userTokenRepo) Create(dbc dbctx.Context, userTokens []*types.UserToken) ([]*types.UserToken, error) {
	t := dbc.Tx
	if t == nil {
		t = utr.db
	}

	if len(userTokens) == 0 {
		return []*types.UserToken{}, nil
	}

	if err := t.WithContext(dbc.Ctx).Create(&userTokens).Error; err != nil {
		return nil, dberr.Map("user_token.create", err)
	}

	return userTokens, nil
}

// GetByAccessToken returns (nil, nil) when no row matches.
func (utr *userTokenRepo) GetByAccessToken(dbc dbctx.Context, accessToken string) (*types.UserToken, error) {
	t := dbc.Tx
	if t == nil {
		t = utr.db
	}

	var row types.UserToken
	if err := t.WithContext(dbc.Ctx).
		Where("access_token = ?", accessToken).
		Limit(1).
		Find(&row).Error; err != nil {
		return nil, dberr.Map("user_token.get_by_access_token", err)
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

// GetByRefreshToken returns (nil, nil) when no row matches.
func (utr *userTokenRepo) GetByRefreshToken(dbc dbctx.Context, refreshToken string) (*types.UserToken, error) {
	t := dbc.Tx
	if t == nil {
		t = utr.db
	}

	var row types.UserToken
	if err := t.WithContext(dbc.Ctx).
		Where("refresh_token = ?", refreshToken).
		Limit(1).
		Find(&row).Error; err != nil {
		return nil, dberr.Map("user_token.get_by_refresh_token", err)
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (utr *userTokenRepo) Update(dbc dbctx.Context, token *types.UserToken) error {
	t := dbc.Tx
	if t == nil {
		t = utr.db
	}

	if token == nil || token.ID == uuid.Nil {
		return nil
	}

	if err := t.WithContext(dbc.Ctx).
		Model(&types.UserToken{}).
		Where("id = ?", token.ID).
		Updates(map[string]any{
			"access_token":  token.AccessToken,
			"refresh_token": token.RefreshToken,
			"expires_at":    token.ExpiresAt,
		}).Error; err != nil {
		return dberr.Map("user_token.update", err)
	}
	return nil
}

func (utr *userTokenRepo) DeleteByIDs(dbc dbctx.Context, tokenIDs []uuid.UUID) error {
	t := dbc.Tx
	if t == nil {
		t = utr.db
	}

	if len(tokenIDs) == 0 {
		return nil
	}

	if err := t.WithContext(dbc.Ctx).
		Where("id IN ?", tokenIDs).
		Delete(&types.UserToken{}).Error; err != nil {
		return dberr.Map("user_token.delete_by_ids", err)
	}
	return nil
}

func (utr *userTokenRepo) DeleteByUserIDs(dbc dbctx.Context, userIDs []uuid.UUID) error {
	t := dbc.Tx
	if t == nil {
		t = utr.db
	}

	if len(userIDs) == 0 {
		return nil
	}

	if err := t.WithContext(dbc.Ctx).
		Where("user_id IN ?", userIDs).
		Delete(&types.UserToken{}).Error; err != nil {
		return dberr.Map("user_token.delete_by_user_ids", err)
	}
	return nil
}

// DeleteExpiredBefore removes tokens whose expiry is older than cutoff and
// reports how many rows went away.
func (utr *userTokenRepo) DeleteExpiredBefore(dbc dbctx.Context, cutoff time.Time) (int64, error) {
	t := dbc.Tx
	if t == nil {
		t = utr.db
	}

	res := t.WithContext(dbc.Ctx).
		Where("expires_at < ?", cutoff).
		Delete(&types.UserToken{})
	if res.Error != nil {
		return 0, dberr.Map("user_token.delete_expired", res.Error)
	}
	return res.RowsAffected, nil
}
