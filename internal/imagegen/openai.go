package imagegen

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/meguminnnnnnnnn/go-openai"
)

// gpt-image-* models always answer with base64 and reject response_format.
func returnsBase64(model string) bool {
	return strings.HasPrefix(model, "gpt-image-")
}

type openAIModel struct {
	client *openai.Client
	name   string
}

func newOpenAIModel(key, baseURL, name string) *openAIModel {
	cfg := openai.DefaultConfig(key)
	if u := strings.TrimRight(strings.TrimSpace(baseURL), "/"); u != "" {
		cfg.BaseURL = u
	}
	return &openAIModel{client: openai.NewClientWithConfig(cfg), name: name}
}

func (m *openAIModel) Provider() string { return "openai" }
func (m *openAIModel) Name() string     { return m.name }

func (m *openAIModel) generate(ctx context.Context, req Request) (*Result, error) {
	imgReq := openai.ImageRequest{
		Prompt:  req.Prompt,
		Model:   m.name,
		N:       1,
		Size:    req.Size,
		Quality: req.Quality,
	}
	if !returnsBase64(m.name) {
		imgReq.ResponseFormat = openai.CreateImageResponseFormatB64JSON
		if req.Quality == DefaultQuality {
			imgReq.Quality = "standard"
		}
	}

	resp, err := m.client.CreateImage(ctx, imgReq)
	if err != nil {
		return nil, fmt.Errorf("openai create image: %w", err)
	}
	if len(resp.Data) == 0 || resp.Data[0].B64JSON == "" {
		return &Result{}, nil
	}
	return &Result{Image: &Image{Base64: resp.Data[0].B64JSON, MIMEType: "image/png"}}, nil
}
