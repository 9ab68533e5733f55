package catalog

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Category struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null;column:name" json:"name"`
	Description *string   `gorm:"column:description" json:"description,omitempty"`
	Icon        string    `gorm:"not null;column:icon" json:"icon"`
	AssetCount  int       `gorm:"not null;default:0;column:asset_count" json:"asset_count"`
}

func (Category) TableName() string { return "category" }

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
