package catalog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/artcove/artcove-backend/internal/domain/user"
)

type Asset struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string     `gorm:"not null;column:title" json:"title"`
	Description *string    `gorm:"column:description" json:"description,omitempty"`
	PreviewURL  string     `gorm:"not null;column:preview_url" json:"preview_url"`
	Price       float64    `gorm:"type:decimal(10,2);not null;column:price" json:"price"`
	CategoryID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"category_id"`
	Category    *Category  `gorm:"constraint:OnDelete:CASCADE;foreignKey:CategoryID;references:ID" json:"category,omitempty"`
	CreatorID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"creator_id"`
	Creator     *user.User `gorm:"constraint:OnDelete:CASCADE;foreignKey:CreatorID;references:ID" json:"creator,omitempty"`

	Tags       datatypes.JSONSlice[string] `gorm:"not null;default:'[]';column:tags" json:"tags"`
	Featured   bool                        `gorm:"not null;default:false;column:featured" json:"featured"`
	Thumbnails datatypes.JSONSlice[string] `gorm:"not null;default:'[]';column:thumbnails" json:"thumbnails"`

	DownloadCount int     `gorm:"not null;default:0;column:download_count" json:"download_count"`
	Rating        float64 `gorm:"type:decimal(3,2);not null;default:0;column:rating" json:"rating"`

	FileURL   *string `gorm:"column:file_url" json:"file_url,omitempty"`
	FileType  *string `gorm:"column:file_type" json:"file_type,omitempty"`
	FileSize  *int    `gorm:"column:file_size" json:"file_size,omitempty"`
	ObjectKey *string `gorm:"column:object_key" json:"object_key,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (Asset) TableName() string { return "asset" }

func (a *Asset) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
