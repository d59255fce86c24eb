package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"memerender/internal/models"
)

type PreferenceRepository interface {
	// Get returns "" when the key has never been written.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

type preferenceRepository struct {
	db *gorm.DB
}

func NewPreferenceRepository(db *gorm.DB) PreferenceRepository {
	return &preferenceRepository{db: db}
}

func (r *preferenceRepository) Get(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", nil
	}
	var pref models.Preference
	if err := r.db.WithContext(ctx).Where(&models.Preference{Key: key}).Take(&pref).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return pref.Value, nil
}

func (r *preferenceRepository) Set(ctx context.Context, key, value string) error {
	pref := models.Preference{Key: key, Value: value}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&pref).Error
}
