package mocks

import (
	"context"
	"sync"
)

// PreferenceRepositoryMock keeps values in memory unless a func override is set.
type PreferenceRepositoryMock struct {
	GetFunc func(ctx context.Context, key string) (string, error)
	SetFunc func(ctx context.Context, key, value string) error

	mu     sync.Mutex
	values map[string]string
}

func (m *PreferenceRepositoryMock) Get(ctx context.Context, key string) (string, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.values[key], nil
}

func (m *PreferenceRepositoryMock) Set(ctx context.Context, key, value string) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.values == nil {
		m.values = make(map[string]string)
	}
	m.values[key] = value
	return nil
}
