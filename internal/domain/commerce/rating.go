package commerce

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/artcove/artcove-backend/internal/domain/catalog"
	"github.com/artcove/artcove-backend/internal/domain/user"
)

type Rating struct {
	ID      uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID  uuid.UUID      `gorm:"type:uuid;not null;index;uniqueIndex:idx_rating_user_asset" json:"user_id"`
	User    *user.User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	AssetID uuid.UUID      `gorm:"type:uuid;not null;index;uniqueIndex:idx_rating_user_asset" json:"asset_id"`
	Asset   *catalog.Asset `gorm:"constraint:OnDelete:CASCADE;foreignKey:AssetID;references:ID" json:"asset,omitempty"`

	// Clients are expected to send 1 through 5. The column does not
	// enforce the range.
	Rating  int     `gorm:"not null;column:rating" json:"rating"`
	Comment *string `gorm:"column:comment" json:"comment,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Rating) TableName() string { return "rating" }

func (r *Rating) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
