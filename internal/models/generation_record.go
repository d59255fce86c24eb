package models

import "time"

// GenerationRecord is one finished image request kept in the history.
type GenerationRecord struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    uint      `gorm:"index" json:"userId"`
	Prompt    string    `gorm:"type:text;not null" json:"prompt"`
	Provider  string    `gorm:"size:50" json:"provider"`
	Model     string    `gorm:"size:120" json:"model"`
	Size      string    `gorm:"size:20" json:"size"`
	Quality   string    `gorm:"size:20" json:"quality"`
	Status    string    `gorm:"size:20;not null;index" json:"status"`
	Error     string    `gorm:"type:text" json:"error,omitempty"`
	ImageB64  string    `gorm:"type:text" json:"imageB64,omitempty"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
