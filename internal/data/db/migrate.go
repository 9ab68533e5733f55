package db

import (
	"fmt"

	"gorm.io/gorm"

	types "github.com/artcove/artcove-backend/internal/domain"
)

// AutoMigrateAll creates or updates every persisted table. Parents come
// before the rows that reference them so the FK constraints can be built
// in one pass.
func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		// Identity + auth
		&types.User{},
		&types.UserToken{},

		// Catalog
		&types.Category{},
		&types.Asset{},

		// Commerce
		&types.CartItem{},
		&types.Purchase{},
		&types.Rating{},
	)
}

// EnsureMarketplaceIndexes adds the composite listing indexes AutoMigrate
// does not derive from tags. Statements are restricted to syntax both
// supported drivers accept.
func EnsureMarketplaceIndexes(db *gorm.DB) error {
	stmts := []struct {
		name string
		sql  string
	}{
		{
			name: "idx_asset_category_created",
			sql:  `CREATE INDEX IF NOT EXISTS idx_asset_category_created ON asset(category_id, created_at DESC);`,
		},
		{
			name: "idx_asset_creator_created",
			sql:  `CREATE INDEX IF NOT EXISTS idx_asset_creator_created ON asset(creator_id, created_at DESC);`,
		},
		{
			name: "idx_asset_featured_created",
			sql:  `CREATE INDEX IF NOT EXISTS idx_asset_featured_created ON asset(featured, created_at DESC);`,
		},
		{
			name: "idx_cart_item_user_added",
			sql:  `CREATE INDEX IF NOT EXISTS idx_cart_item_user_added ON cart_item(user_id, added_at DESC);`,
		},
		{
			name: "idx_purchase_user_purchased",
			sql:  `CREATE INDEX IF NOT EXISTS idx_purchase_user_purchased ON purchase(user_id, purchased_at DESC);`,
		},
		{
			name: "idx_user_token_expires_at",
			sql:  `CREATE INDEX IF NOT EXISTS idx_user_token_expires_at ON user_token(expires_at);`,
		},
	}
	for _, stmt := range stmts {
		if err := db.Exec(stmt.sql).Error; err != nil {
			return fmt.Errorf("create %s: %w", stmt.name, err)
		}
	}
	return nil
}

func (s *Service) AutoMigrateAll() error {
	s.log.Info("Auto migrating tables...")
	if err := AutoMigrateAll(s.db); err != nil {
		s.log.Error("Auto migration failed", "error", err)
		return err
	}
	if err := EnsureMarketplaceIndexes(s.db); err != nil {
		s.log.Error("Index migration failed", "error", err)
		return err
	}
	return nil
}
