package imagegen

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// KeySource supplies provider API keys by key name.
type KeySource interface {
	APIKey(name string) (string, error)
}

// ResolverConfig selects the provider and where the OpenAI-compatible
// router lives.
type ResolverConfig struct {
	Provider  string
	RouterURL string
}

// Resolver turns the configured provider into a Model handle. Handles are
// cached per provider, model and key so clients are reused.
type Resolver struct {
	catalog *Catalog
	keys    KeySource
	cfg     ResolverConfig

	mu    sync.Mutex
	cache map[string]Model
}

func NewResolver(catalog *Catalog, keys KeySource, cfg ResolverConfig) *Resolver {
	return &Resolver{
		catalog: catalog,
		keys:    keys,
		cfg:     cfg,
		cache:   make(map[string]Model),
	}
}

// Catalog exposes the catalog the resolver was built with.
func (r *Resolver) Catalog() *Catalog {
	return r.catalog
}

// ImageModel returns the handle for the configured provider's default model.
func (r *Resolver) ImageModel(ctx context.Context) (Model, error) {
	providerID := strings.TrimSpace(r.cfg.Provider)
	provider, ok := r.catalog.Provider(providerID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, providerID)
	}
	info, err := r.catalog.DefaultModel(providerID)
	if err != nil {
		return nil, err
	}

	key, err := r.keys.APIKey(provider.KeyName)
	if err != nil {
		return nil, fmt.Errorf("get API key for %s: %w", providerID, err)
	}
	if strings.TrimSpace(key) == "" {
		return nil, fmt.Errorf("%w for %s", ErrMissingAPIKey, providerID)
	}

	cacheKey := providerID + "|" + info.APIName + "|" + key
	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.cache[cacheKey]; ok {
		return m, nil
	}

	var m Model
	switch providerID {
	case "openai":
		m = newOpenAIModel(key, r.cfg.RouterURL, info.APIName)
	case "gemini":
		m, err = newGeminiModel(ctx, key, info.APIName)
		if err != nil {
			return nil, fmt.Errorf("create gemini client: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, providerID)
	}
	r.cache[cacheKey] = m
	return m, nil
}

// Forget drops cached handles, e.g. after the user signs out.
func (r *Resolver) Forget() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache = make(map[string]Model)
}
