// Package client builds eino chat models for the supported providers and
// uses them to refine image prompts.
package client

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/cloudwego/eino-ext/components/model/claude"
	"github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"

	"memerender/internal/logging"
)

const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"

	defaultClaudeMaxTokens = 1024
)

var (
	ErrEmptyPrompt     = errors.New("prompt is empty")
	ErrUnknownProvider = errors.New("unknown chat provider")
	ErrEmptyAnswer     = errors.New("model returned no content")
)

// ModelConfig selects a chat model.
type ModelConfig struct {
	Provider string
	Model    string
	APIKey   string
	// BaseURL overrides the provider endpoint, e.g. the OpenAI-compatible router.
	BaseURL string
}

// NewChatModel constructs the eino chat model for cfg.Provider.
func NewChatModel(ctx context.Context, cfg ModelConfig) (model.BaseChatModel, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("%s: API key is required", cfg.Provider)
	}
	switch cfg.Provider {
	case ProviderOpenAI:
		m, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
			APIKey:  cfg.APIKey,
			Model:   cfg.Model,
			BaseURL: strings.TrimRight(cfg.BaseURL, "/"),
		})
		if err != nil {
			return nil, fmt.Errorf("create openai chat model: %w", err)
		}
		return m, nil
	case ProviderAnthropic:
		conf := &claude.Config{
			APIKey:    cfg.APIKey,
			Model:     cfg.Model,
			MaxTokens: defaultClaudeMaxTokens,
		}
		if cfg.BaseURL != "" {
			conf.BaseURL = &cfg.BaseURL
		}
		m, err := claude.NewChatModel(ctx, conf)
		if err != nil {
			return nil, fmt.Errorf("create claude chat model: %w", err)
		}
		return m, nil
	case ProviderGemini:
		gc, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cfg.APIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("create genai client: %w", err)
		}
		m, err := gemini.NewChatModel(ctx, &gemini.Config{
			Client: gc,
			Model:  cfg.Model,
		})
		if err != nil {
			return nil, fmt.Errorf("create gemini chat model: %w", err)
		}
		return m, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, cfg.Provider)
}

// Refiner rewrites prompts with a chat model.
type Refiner struct {
	chat   model.BaseChatModel
	system string
	log    *log.Logger
}

func NewRefiner(chat model.BaseChatModel) (*Refiner, error) {
	system, err := loadPrompt("refine_system.txt")
	if err != nil {
		return nil, fmt.Errorf("load refine prompt: %w", err)
	}
	return &Refiner{chat: chat, system: strings.TrimSpace(system), log: logging.Named("refine")}, nil
}

// Refine returns an improved version of prompt.
func (r *Refiner) Refine(ctx context.Context, prompt string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", ErrEmptyPrompt
	}
	msg, err := r.chat.Generate(ctx, []*schema.Message{
		schema.SystemMessage(r.system),
		schema.UserMessage(prompt),
	})
	if err != nil {
		r.log.Warn("refine failed", "err", err)
		return "", err
	}
	out := cleanAnswer(msg)
	if out == "" {
		return "", ErrEmptyAnswer
	}
	return out, nil
}

// cleanAnswer strips whitespace and wrapping quotes models like to add.
func cleanAnswer(msg *schema.Message) string {
	if msg == nil {
		return ""
	}
	s := strings.TrimSpace(msg.Content)
	for _, q := range []string{`"`, "'", "`", "“"} {
		end := q
		if q == "“" {
			end = "”"
		}
		if len(s) >= len(q)+len(end) && strings.HasPrefix(s, q) && strings.HasSuffix(s, end) {
			s = strings.TrimSpace(s[len(q) : len(s)-len(end)])
			break
		}
	}
	return s
}
