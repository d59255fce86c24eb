package services

import (
	"memerender/internal/repositories"

	"gorm.io/gorm"
)

// DbServices aggregates the repositories and database-backed services.
// Fields use plural names (e.g., Users) to align with Go conventions
// seen in service/store containers.
type DbServices struct {
	Users       UserService
	Preferences repositories.PreferenceRepository
	Records     repositories.GenerationRecordRepository
}

// NewDbServices constructs the service container using repositories backed by db.
func NewDbServices(db *gorm.DB) *DbServices {
	userRepo := repositories.NewUserRepository(db)

	return &DbServices{
		Users:       NewUserService(userRepo),
		Preferences: repositories.NewPreferenceRepository(db),
		Records:     repositories.NewGenerationRecordRepository(db),
	}
}
