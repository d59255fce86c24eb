package services

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/99designs/keyring"
)

const serviceName = "memerender"

// KeyNameEcho is the router API key the image and refine providers share.
const KeyNameEcho = "echo"

type KeyringService struct {
	ring  keyring.Keyring
	appID string
}

// OpenKeyring opens the platform keyring. Keys are scoped to appID so two
// Echo apps on one machine do not share credentials.
func OpenKeyring(appID string) (*KeyringService, error) {
	cfg := keyring.Config{
		ServiceName:              serviceName,
		KeychainName:             serviceName,
		KeychainTrustApplication: true,
		FilePasswordFunc:         keyring.TerminalPrompt,
	}
	if home, err := os.UserHomeDir(); err == nil {
		cfg.FileDir = filepath.Join(home, "."+serviceName, "keys")
	}
	ring, err := keyring.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open keyring: %w", err)
	}
	return NewKeyringService(ring, appID), nil
}

func NewKeyringService(ring keyring.Keyring, appID string) *KeyringService {
	return &KeyringService{ring: ring, appID: appID}
}

func (s *KeyringService) account(provider string) string {
	if s.appID == "" {
		return provider
	}
	return provider + ":" + s.appID
}

func (s *KeyringService) StoreApiKey(provider string, apiKey []byte) error {
	if len(apiKey) == 0 {
		return errors.New("API key is empty")
	}
	if provider == "" {
		return errors.New("provider is required")
	}
	return s.ring.Set(keyring.Item{
		Key:         s.account(provider),
		Data:        apiKey,
		Label:       provider + " API key",
		Description: "API key for " + provider + " used by Meme Render",
	})
}

// SaveApiKey stores the key for a provider that does not go through the
// router, e.g. "gemini" or "anthropic".
func (s *KeyringService) SaveApiKey(provider, apiKey string) error {
	return s.StoreApiKey(strings.TrimSpace(provider), []byte(strings.TrimSpace(apiKey)))
}

func (s *KeyringService) GetApiKey(provider string) (string, error) {
	if provider == "" {
		return "", errors.New("provider is required")
	}
	item, err := s.ring.Get(s.account(provider))
	if err != nil {
		return "", err
	}
	return string(item.Data), nil
}

// APIKey satisfies imagegen.KeySource.
func (s *KeyringService) APIKey(name string) (string, error) {
	return s.GetApiKey(name)
}

// HasApiKey reports whether a key is stored; lookup errors count as absent.
func (s *KeyringService) HasApiKey(provider string) bool {
	key, err := s.GetApiKey(provider)
	return err == nil && key != ""
}

func (s *KeyringService) DeleteApiKey(provider string) error {
	if provider == "" {
		return errors.New("provider is required")
	}
	err := s.ring.Remove(s.account(provider))
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return nil
	}
	return err
}

func (s *KeyringService) ListApiKeys() ([]map[string]string, error) {
	keys, err := s.ring.Keys()
	if err != nil {
		return nil, err
	}

	suffix := ""
	if s.appID != "" {
		suffix = ":" + s.appID
	}
	var results []map[string]string
	for _, k := range keys {
		if suffix != "" && !strings.HasSuffix(k, suffix) {
			continue
		}
		provider := strings.TrimSuffix(k, suffix)
		results = append(results, map[string]string{
			"provider":    provider,
			"label":       provider + " API key",
			"description": "API key for " + provider + " used by Meme Render",
		})
	}
	return results, nil
}
