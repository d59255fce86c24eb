package imagegen

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"memerender/internal/assets"
)

// ModelInfo describes one catalog model for presentation.
type ModelInfo struct {
	ProviderID   string `json:"providerId"`
	ProviderName string `json:"providerName"`
	DisplayName  string `json:"displayName"`
	APIName      string `json:"apiName"`
	Default      bool   `json:"default"`
}

// ProviderInfo groups a provider's models.
type ProviderInfo struct {
	ID          string      `json:"id"`
	DisplayName string      `json:"displayName"`
	KeyName     string      `json:"keyName"`
	Models      []ModelInfo `json:"models"`
}

// Catalog is the parsed provider/model list, in file order.
type Catalog struct {
	Providers []ProviderInfo
}

type rawCatalog struct {
	Providers []rawProvider `json:"providers"`
}

type rawProvider struct {
	ID          string     `json:"id"`
	DisplayName string     `json:"displayName"`
	KeyName     string     `json:"keyName"`
	Models      []rawModel `json:"models"`
}

type rawModel struct {
	DisplayName string `json:"displayName"`
	APIName     string `json:"apiName"`
	Default     bool   `json:"default"`
}

// LoadCatalog parses the embedded catalog.
func LoadCatalog() (*Catalog, error) {
	return ParseCatalog(assets.ImageModelsData)
}

// ParseCatalog parses a catalog document. Providers without an id and
// models without an API name are skipped.
func ParseCatalog(data []byte) (*Catalog, error) {
	var raw rawCatalog
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse image model catalog: %w", err)
	}

	cat := &Catalog{}
	for _, p := range raw.Providers {
		id := strings.TrimSpace(p.ID)
		if id == "" {
			continue
		}
		name := strings.TrimSpace(p.DisplayName)
		if name == "" {
			name = id
		}
		keyName := strings.TrimSpace(p.KeyName)
		if keyName == "" {
			keyName = id
		}
		info := ProviderInfo{ID: id, DisplayName: name, KeyName: keyName}
		for _, m := range p.Models {
			api := strings.TrimSpace(m.APIName)
			if api == "" {
				continue
			}
			display := strings.TrimSpace(m.DisplayName)
			if display == "" {
				display = api
			}
			info.Models = append(info.Models, ModelInfo{
				ProviderID:   id,
				ProviderName: name,
				DisplayName:  display,
				APIName:      api,
				Default:      m.Default,
			})
		}
		cat.Providers = append(cat.Providers, info)
	}
	return cat, nil
}

// Provider looks a provider up by id.
func (c *Catalog) Provider(id string) (ProviderInfo, bool) {
	return lo.Find(c.Providers, func(p ProviderInfo) bool { return p.ID == id })
}

// DefaultModel returns the provider's model flagged as default, or its
// first model.
func (c *Catalog) DefaultModel(providerID string) (ModelInfo, error) {
	p, ok := c.Provider(providerID)
	if !ok {
		return ModelInfo{}, fmt.Errorf("%w: %s", ErrUnknownProvider, providerID)
	}
	if len(p.Models) == 0 {
		return ModelInfo{}, fmt.Errorf("provider %s has no models", providerID)
	}
	if m, ok := lo.Find(p.Models, func(m ModelInfo) bool { return m.Default }); ok {
		return m, nil
	}
	return p.Models[0], nil
}
