package catalog

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/artcove/artcove-backend/internal/data/dberr"
	types "github.com/artcove/artcove-backend/internal/domain"
	"github.com/artcove/artcove-backend/internal/pkg/dbctx"
	"github.com/artcove/artcove-backend/internal/pkg/logger"
)

type CategoryRepo interface {
	Create(dbc dbctx.Context, categories []*types.Category) ([]*types.Category, error)
	CreateIfAbsent(dbc dbctx.Context, categories []*types.Category) (int64, error)
	GetAll(dbc dbctx.Context) ([]*types.Category, error)
	GetByIDs(dbc dbctx.Context, categoryIDs []uuid.UUID) ([]*types.Category, error)
	GetByName(dbc dbctx.Context, name string) (*types.Category, error)
	IncrementAssetCount(dbc dbctx.Context, categoryID uuid.UUID, delta int) error
	RecomputeAssetCount(dbc dbctx.Context, categoryID uuid.UUID) error
	RecomputeAssetCounts(dbc dbctx.Context) error
}

type categoryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCategoryRepo(db *gorm.DB, baseLog *logger.Logger) CategoryRepo {
	repoLog := baseLog.With("repo", "CategoryRepo")
	return &categoryRepo{db: db, log: repoLog}
}

func (cr *categoryRepo) Create(dbc dbctx.Context, categories []*types.Category) ([]*types.Category, error) {
	t := dbc.Tx
	if t == nil {
		t = cr.db
	}

	if len(categories) == 0 {
		return []*types.Category{}, nil
	}

	if err := t.WithContext(dbc.Ctx).Create(&categories).Error; err != nil {
		return nil, dberr.Map("category.create", err)
	}

	return categories, nil
}

// CreateIfAbsent inserts the categories that do not exist yet, keyed by name,
// and reports how many rows were actually inserted. Existing names are left
// untouched, which keeps seeding idempotent.
func (cr *categoryRepo) CreateIfAbsent(dbc dbctx.Context, categories []*types.Category) (int64, error) {
	t := dbc.Tx
	if t == nil {
		t = cr.db
	}

	if len(categories) == 0 {
		return 0, nil
	}

	res := t.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).
		Create(&categories)
	if res.Error != nil {
		return 0, dberr.Map("category.create_if_absent", res.Error)
	}

	return res.RowsAffected, nil
}

func (cr *categoryRepo) GetAll(dbc dbctx.Context) ([]*types.Category, error) {
	t := dbc.Tx
	if t == nil {
		t = cr.db
	}

	var results []*types.Category
	if err := t.WithContext(dbc.Ctx).
		Order("name ASC").
		Find(&results).Error; err != nil {
		return nil, dberr.Map("category.get_all", err)
	}
	return results, nil
}

func (cr *categoryRepo) GetByIDs(dbc dbctx.Context, categoryIDs []uuid.UUID) ([]*types.Category, error) {
	t := dbc.Tx
	if t == nil {
		t = cr.db
	}

	var results []*types.Category

	if len(categoryIDs) == 0 {
		return results, nil
	}

	if err := t.WithContext(dbc.Ctx).
		Where("id IN ?", categoryIDs).
		Find(&results).Error; err != nil {
		return nil, dberr.Map("category.get_by_ids", err)
	}
	return results, nil
}

// GetByName returns (nil, nil) when no row matches.
func (cr *categoryRepo) GetByName(dbc dbctx.Context, name string) (*types.Category, error) {
	t := dbc.Tx
	if t == nil {
		t = cr.db
	}

	var row types.Category
	if err := t.WithContext(dbc.Ctx).
		Where("name = ?", name).
		Limit(1).
		Find(&row).Error; err != nil {
		return nil, dberr.Map("category.get_by_name", err)
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (cr *categoryRepo) IncrementAssetCount(dbc dbctx.Context, categoryID uuid.UUID, delta int) error {
	t := dbc.Tx
	if t == nil {
		t = cr.db
	}

	if err := t.WithContext(dbc.Ctx).
		Model(&types.Category{}).
		Where("id = ?", categoryID).
		Update("asset_count", gorm.Expr("asset_count + ?", delta)).Error; err != nil {
		return dberr.Map("category.increment_asset_count", err)
	}
	return nil
}

// RecomputeAssetCount rebuilds one category's counter from the asset table.
func (cr *categoryRepo) RecomputeAssetCount(dbc dbctx.Context, categoryID uuid.UUID) error {
	t := dbc.Tx
	if t == nil {
		t = cr.db
	}

	if err := t.WithContext(dbc.Ctx).Exec(`
		UPDATE category
		SET asset_count = (
			SELECT COUNT(*) FROM asset WHERE asset.category_id = category.id
		)
		WHERE id = ?;
	`, categoryID).Error; err != nil {
		return dberr.Map("category.recompute_asset_count", err)
	}
	return nil
}

// RecomputeAssetCounts rebuilds every counter from the asset table. The
// reconcile worker runs this to heal drift from partial failures.
func (cr *categoryRepo) RecomputeAssetCounts(dbc dbctx.Context) error {
	t := dbc.Tx
	if t == nil {
		t = cr.db
	}

	if err := t.WithContext(dbc.Ctx).Exec(`
		UPDATE category
		SET asset_count = (
			SELECT COUNT(*) FROM asset WHERE asset.category_id = category.id
		);
	`).Error; err != nil {
		return dberr.Map("category.recompute_asset_counts", err)
	}
	return nil
}
