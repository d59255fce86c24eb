package models

import (
	"time"
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Name      string `gorm:"size:120;uniqueIndex" json:"name"`
	AvatarURL string `gorm:"size:512" json:"avatarUrl,omitempty"`
}
