package cataloging

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/eccentric-easel/easel/internal/config"
	"github.com/eccentric-easel/easel/internal/gemini"
	"github.com/eccentric-easel/easel/internal/images"
	"github.com/eccentric-easel/easel/internal/models"
	"github.com/eccentric-easel/easel/internal/ollama"
	"github.com/eccentric-easel/easel/internal/openai"
	"github.com/eccentric-easel/easel/internal/providers"
)

// DefaultTemperature keeps names and descriptions close to what is in the photo
const DefaultTemperature = 0.2

// Service generates item metadata from a photo with a vision model
type Service struct {
	provider    providers.Provider
	model       string
	timeout     time.Duration
	temperature float64
}

// NewService returns a Service backed by provider. A zero timeout disables
// the per-call deadline.
func NewService(provider providers.Provider, model string, timeout time.Duration) *Service {
	return &Service{
		provider:    provider,
		model:       model,
		timeout:     timeout,
		temperature: DefaultTemperature,
	}
}

// NewProvider builds the provider selected by CATALOGING_PROVIDER
func NewProvider(env *config.Env) (providers.Provider, error) {
	httpClient := &http.Client{Timeout: env.HTTPTimeout}

	switch env.Provider {
	case "openai":
		return openai.New(env.OpenAIKey, env.OpenAIBaseURL, httpClient), nil
	case "ollama":
		return ollama.New(env.OllamaURL, httpClient), nil
	case "gemini":
		return gemini.New(env.GeminiKey), nil
	default:
		return nil, models.Errorf(models.ConfigError, "select provider", "unsupported provider: %s", env.Provider)
	}
}

// Generate sends one prompt with the image and returns the trimmed answer.
// An empty answer is an error.
func (s *Service) Generate(ctx context.Context, image images.Encoded, prompt string, maxTokens int) (string, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	raw, err := s.provider.Describe(ctx, providers.Request{
		Model:       s.model,
		Prompt:      prompt,
		Image:       image,
		MaxTokens:   maxTokens,
		Temperature: s.temperature,
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", models.NewError(models.GenerationError, "generate", fmt.Errorf("model call timed out after %s: %w", s.timeout, err))
		}
		return "", models.NewError(models.GenerationError, "generate", err)
	}

	text := strings.TrimSpace(raw)
	if text == "" {
		return "", models.Errorf(models.GenerationError, "generate", "model returned an empty response")
	}

	slog.Debug("Generated text", "model", s.model, "max_tokens", maxTokens, "length", len(text), "elapsed", time.Since(start))
	return text, nil
}

// GenerateName asks for a short item name
func (s *Service) GenerateName(ctx context.Context, image images.Encoded, prompt string, maxTokens int) (string, error) {
	name, err := s.Generate(ctx, image, prompt, maxTokens)
	if err != nil {
		return "", fmt.Errorf("failed to generate name: %w", err)
	}
	return name, nil
}

// GenerateDescription asks for a longer item description
func (s *Service) GenerateDescription(ctx context.Context, image images.Encoded, prompt string, maxTokens int) (string, error) {
	description, err := s.Generate(ctx, image, prompt, maxTokens)
	if err != nil {
		return "", fmt.Errorf("failed to generate description: %w", err)
	}
	return description, nil
}
