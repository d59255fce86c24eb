package mocks

import (
	"context"

	"memerender/internal/models"
	"memerender/internal/repositories"
)

type GenerationRecordRepositoryMock struct {
	CreateFunc       func(ctx context.Context, rec *models.GenerationRecord) error
	ListFunc         func(ctx context.Context, userID uint, limit, offset int) ([]models.GenerationRecord, error)
	GetByIDFunc      func(ctx context.Context, id string) (*models.GenerationRecord, error)
	DeleteByIDFunc   func(ctx context.Context, id string) error
	DeleteByUserFunc func(ctx context.Context, userID uint) error
}

func (m *GenerationRecordRepositoryMock) Create(ctx context.Context, rec *models.GenerationRecord) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, rec)
	}
	return nil
}

func (m *GenerationRecordRepositoryMock) List(ctx context.Context, userID uint, limit, offset int) ([]models.GenerationRecord, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, userID, limit, offset)
	}
	return []models.GenerationRecord{}, nil
}

func (m *GenerationRecordRepositoryMock) GetByID(ctx context.Context, id string) (*models.GenerationRecord, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, repositories.ErrNotFound
}

func (m *GenerationRecordRepositoryMock) DeleteByID(ctx context.Context, id string) error {
	if m.DeleteByIDFunc != nil {
		return m.DeleteByIDFunc(ctx, id)
	}
	return nil
}

func (m *GenerationRecordRepositoryMock) DeleteByUser(ctx context.Context, userID uint) error {
	if m.DeleteByUserFunc != nil {
		return m.DeleteByUserFunc(ctx, userID)
	}
	return nil
}
