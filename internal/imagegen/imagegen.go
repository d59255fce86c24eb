// Package imagegen talks to the hosted image-generation providers.
//
// Callers obtain an opaque Model from a Resolver and hand it back inside a
// Request; they never look inside it.
package imagegen

import (
	"context"
	"errors"
	"fmt"
)

const (
	DefaultSize    = "1024x1024"
	DefaultQuality = "low"
)

var (
	ErrUnknownProvider = errors.New("unknown image provider")
	ErrMissingAPIKey   = errors.New("no API key configured")
	ErrUnsupported     = errors.New("model handle does not support generation")
)

// Model identifies a provider model together with the client able to call it.
type Model interface {
	Provider() string
	Name() string
}

// Request is a single generation call.
type Request struct {
	Model   Model
	Prompt  string
	Size    string
	Quality string
}

// Image is a generated picture as base64 text.
type Image struct {
	Base64   string
	MIMEType string
}

// Result carries the image, which may be absent.
type Result struct {
	Image *Image
}

// Generator performs one generation.
type Generator interface {
	Generate(ctx context.Context, req Request) (*Result, error)
}

type generating interface {
	generate(ctx context.Context, req Request) (*Result, error)
}

// Client dispatches a Request to the provider behind its Model.
type Client struct{}

func NewClient() *Client {
	return &Client{}
}

func (c *Client) Generate(ctx context.Context, req Request) (*Result, error) {
	if req.Model == nil {
		return nil, fmt.Errorf("generate image: %w", ErrUnsupported)
	}
	g, ok := req.Model.(generating)
	if !ok {
		return nil, fmt.Errorf("generate image with %s/%s: %w", req.Model.Provider(), req.Model.Name(), ErrUnsupported)
	}
	if req.Size == "" {
		req.Size = DefaultSize
	}
	if req.Quality == "" {
		req.Quality = DefaultQuality
	}
	return g.generate(ctx, req)
}
