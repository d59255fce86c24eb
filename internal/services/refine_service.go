package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/cloudwego/eino/components/model"

	"memerender/internal/llm/client"
)

// RefineConfig selects the chat model used to improve prompts.
type RefineConfig struct {
	Provider string
	Model    string
	// RouterURL is used as the OpenAI base URL when the router key is used.
	RouterURL string
}

// ChatModelFactory builds a chat model; client.NewChatModel in production.
type ChatModelFactory func(ctx context.Context, cfg client.ModelConfig) (model.BaseChatModel, error)

// RefineService rewrites a prompt. It never submits a generation.
type RefineService interface {
	Startup(ctx context.Context)
	Refine(prompt string) (string, error)
}

type refineService struct {
	keys    *KeyringService
	cfg     RefineConfig
	factory ChatModelFactory
	context context.Context

	mu      sync.Mutex
	refiner *client.Refiner
	usedKey string
}

func NewRefineService(keys *KeyringService, cfg RefineConfig, factory ChatModelFactory) RefineService {
	if factory == nil {
		factory = client.NewChatModel
	}
	return &refineService{keys: keys, cfg: cfg, factory: factory}
}

func (s *refineService) Startup(ctx context.Context) {
	s.context = ctx
}

func (s *refineService) ctx() context.Context {
	if s.context != nil {
		return s.context
	}
	return context.Background()
}

func (s *refineService) Refine(prompt string) (string, error) {
	r, err := s.get()
	if err != nil {
		return "", err
	}
	return r.Refine(s.ctx(), prompt)
}

// get returns a refiner for the current key, rebuilding it when the key
// changed since the last call.
func (s *refineService) get() (*client.Refiner, error) {
	keyName, baseURL := s.cfg.Provider, ""
	if s.cfg.Provider == client.ProviderOpenAI {
		keyName, baseURL = KeyNameEcho, s.cfg.RouterURL
	}
	if s.keys == nil {
		return nil, ErrNotSignedIn
	}
	key, err := s.keys.GetApiKey(keyName)
	if err != nil || key == "" {
		return nil, fmt.Errorf("no %s API key: %w", keyName, ErrNotSignedIn)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.refiner != nil && s.usedKey == key {
		return s.refiner, nil
	}
	chat, err := s.factory(s.ctx(), client.ModelConfig{
		Provider: s.cfg.Provider,
		Model:    s.cfg.Model,
		APIKey:   key,
		BaseURL:  baseURL,
	})
	if err != nil {
		return nil, err
	}
	r, err := client.NewRefiner(chat)
	if err != nil {
		return nil, err
	}
	s.refiner, s.usedKey = r, key
	return r, nil
}
