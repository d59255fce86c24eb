package repositories

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"memerender/internal/models"
)

type GenerationRecordRepository interface {
	Create(ctx context.Context, rec *models.GenerationRecord) error
	List(ctx context.Context, userID uint, limit, offset int) ([]models.GenerationRecord, error)
	GetByID(ctx context.Context, id string) (*models.GenerationRecord, error)
	DeleteByID(ctx context.Context, id string) error
	DeleteByUser(ctx context.Context, userID uint) error
}

type generationRecordRepository struct {
	db *gorm.DB
}

func NewGenerationRecordRepository(db *gorm.DB) GenerationRecordRepository {
	return &generationRecordRepository{db: db}
}

func (r *generationRecordRepository) Create(ctx context.Context, rec *models.GenerationRecord) error {
	if rec == nil {
		return fmt.Errorf("record is required")
	}
	if strings.TrimSpace(rec.ID) == "" {
		return fmt.Errorf("record ID is required")
	}
	return r.db.WithContext(ctx).Create(rec).Error
}

// List returns the user's records newest first. A zero userID lists all.
func (r *generationRecordRepository) List(ctx context.Context, userID uint, limit, offset int) ([]models.GenerationRecord, error) {
	var recs []models.GenerationRecord
	q := r.db.WithContext(ctx).Order("created_at desc").Order("id")
	if userID != 0 {
		q = q.Where("user_id = ?", userID)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}
	if err := q.Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

func (r *generationRecordRepository) GetByID(ctx context.Context, id string) (*models.GenerationRecord, error) {
	var rec models.GenerationRecord
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&rec).Error; err != nil {
		return nil, notFound(err)
	}
	return &rec, nil
}

func (r *generationRecordRepository) DeleteByID(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.GenerationRecord{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByUser removes the user's records. A zero userID clears the table.
func (r *generationRecordRepository) DeleteByUser(ctx context.Context, userID uint) error {
	q := r.db.WithContext(ctx)
	if userID != 0 {
		return q.Where("user_id = ?", userID).Delete(&models.GenerationRecord{}).Error
	}
	return q.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.GenerationRecord{}).Error
}
