package providers

import (
	"context"

	"github.com/eccentric-easel/easel/internal/images"
)

// Request is a single vision prompt: one instruction plus one image
type Request struct {
	Model       string
	Prompt      string
	Image       images.Encoded
	MaxTokens   int
	Temperature float64
}

// Provider defines the interface for a vision-capable LLM provider
type Provider interface {
	Describe(ctx context.Context, req Request) (string, error)
}
