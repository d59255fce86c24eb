package services

import (
	"context"

	"memerender/internal/imagegen"
)

// ModelCatalogService shows the front end which image providers exist and
// which model the configured provider will use.
type ModelCatalogService interface {
	Startup(ctx context.Context)
	ListProviders() []imagegen.ProviderInfo
	ActiveModel() (imagegen.ModelInfo, error)
}

type modelCatalogService struct {
	catalog  *imagegen.Catalog
	provider string
	ctx      context.Context
}

func NewModelCatalogService(catalog *imagegen.Catalog, provider string) ModelCatalogService {
	return &modelCatalogService{catalog: catalog, provider: provider}
}

func (s *modelCatalogService) Startup(ctx context.Context) {
	s.ctx = ctx
}

func (s *modelCatalogService) ListProviders() []imagegen.ProviderInfo {
	if s.catalog == nil {
		return []imagegen.ProviderInfo{}
	}
	out := make([]imagegen.ProviderInfo, len(s.catalog.Providers))
	copy(out, s.catalog.Providers)
	return out
}

func (s *modelCatalogService) ActiveModel() (imagegen.ModelInfo, error) {
	if s.catalog == nil {
		return imagegen.ModelInfo{}, imagegen.ErrUnknownProvider
	}
	return s.catalog.DefaultModel(s.provider)
}
