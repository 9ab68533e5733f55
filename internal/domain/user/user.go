package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username        string    `gorm:"uniqueIndex;not null;column:username" json:"username"`
	Password        string    `gorm:"not null;column:password" json:"-"`
	DisplayName     string    `gorm:"not null;column:display_name" json:"display_name"`
	Bio             *string   `gorm:"column:bio" json:"bio,omitempty"`
	AvatarURL       *string   `gorm:"column:avatar_url" json:"avatar_url,omitempty"`
	AvatarObjectKey *string   `gorm:"column:avatar_object_key" json:"avatar_object_key,omitempty"`
	IsCreator       bool      `gorm:"not null;default:false;column:is_creator" json:"is_creator"`

	JoinedAt time.Time `gorm:"not null;autoCreateTime;column:joined_at" json:"joined_at"`
}

func (User) TableName() string { return "user" }

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
