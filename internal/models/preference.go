package models

import "time"

// Preference is one persisted UI setting, e.g. Key="theme", Value="dark".
type Preference struct {
	Key       string `gorm:"primaryKey;size:64"`
	Value     string `gorm:"size:255;not null"`
	UpdatedAt time.Time
}
