package commerce

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/artcove/artcove-backend/internal/domain/catalog"
	"github.com/artcove/artcove-backend/internal/domain/user"
)

// PurchaseStatusCompleted is the default state marker for new purchases.
// Status is free text, nothing constrains it to a closed set.
const PurchaseStatusCompleted = "completed"

type Purchase struct {
	ID      uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	User    *user.User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	AssetID uuid.UUID      `gorm:"type:uuid;not null;index" json:"asset_id"`
	Asset   *catalog.Asset `gorm:"constraint:OnDelete:CASCADE;foreignKey:AssetID;references:ID" json:"asset,omitempty"`

	Amount          float64 `gorm:"type:decimal(10,2);not null;column:amount" json:"amount"`
	PaymentIntentID *string `gorm:"column:payment_intent_id" json:"payment_intent_id,omitempty"`
	Status          string  `gorm:"not null;default:'completed';column:status" json:"status"`

	DownloadCount    int        `gorm:"not null;default:0;column:download_count" json:"download_count"`
	LastDownloadedAt *time.Time `gorm:"column:last_downloaded_at" json:"last_downloaded_at,omitempty"`

	PurchasedAt time.Time `gorm:"not null;autoCreateTime;column:purchased_at" json:"purchased_at"`
}

func (Purchase) TableName() string { return "purchase" }

func (p *Purchase) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
