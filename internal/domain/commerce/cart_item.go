package commerce

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/artcove/artcove-backend/internal/domain/catalog"
	"github.com/artcove/artcove-backend/internal/domain/user"
)

type CartItem struct {
	ID      uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	User    *user.User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	AssetID uuid.UUID      `gorm:"type:uuid;not null;index" json:"asset_id"`
	Asset   *catalog.Asset `gorm:"constraint:OnDelete:CASCADE;foreignKey:AssetID;references:ID" json:"asset,omitempty"`

	Quantity int       `gorm:"not null;default:1;column:quantity" json:"quantity"`
	AddedAt  time.Time `gorm:"not null;autoCreateTime;column:added_at" json:"added_at"`
}

func (CartItem) TableName() string { return "cart_item" }

func (ci *CartItem) BeforeCreate(tx *gorm.DB) error {
	if ci.ID == uuid.Nil {
		ci.ID = uuid.New()
	}
	return nil
}
