package imagegen

import (
	"context"
	"encoding/base64"
	"fmt"

	"google.golang.org/genai"
)

type geminiModel struct {
	client *genai.Client
	name   string
}

func newGeminiModel(ctx context.Context, key, name string) (*geminiModel, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  key,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &geminiModel{client: client, name: name}, nil
}

func (m *geminiModel) Provider() string { return "gemini" }
func (m *geminiModel) Name() string     { return m.name }

func (m *geminiModel) generate(ctx context.Context, req Request) (*Result, error) {
	resp, err := m.client.Models.GenerateImages(ctx, m.name, req.Prompt, &genai.GenerateImagesConfig{
		NumberOfImages: 1,
		AspectRatio:    aspectRatio(req.Size),
	})
	if err != nil {
		return nil, fmt.Errorf("gemini generate images: %w", err)
	}
	if resp == nil || len(resp.GeneratedImages) == 0 {
		return &Result{}, nil
	}
	img := resp.GeneratedImages[0].Image
	if img == nil || len(img.ImageBytes) == 0 {
		return &Result{}, nil
	}
	mime := img.MIMEType
	if mime == "" {
		mime = "image/png"
	}
	return &Result{Image: &Image{
		Base64:   base64.StdEncoding.EncodeToString(img.ImageBytes),
		MIMEType: mime,
	}}, nil
}

// aspectRatio maps an OpenAI-style WxH size onto Imagen's ratio strings.
func aspectRatio(size string) string {
	switch size {
	case "1792x1024":
		return "16:9"
	case "1024x1792":
		return "9:16"
	case "1536x1024":
		return "4:3"
	case "1024x1536":
		return "3:4"
	}
	return "1:1"
}
