package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/eccentric-easel/easel/internal/models"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPath                 = "config/configs.yml"
	DefaultNameMaxTokens        = 50
	DefaultDescriptionMaxTokens = 100
	// DefaultMaxImageDimension is the largest side the commerce platform accepts
	DefaultMaxImageDimension = 2000
)

// Prompts holds the instruction templates sent to the vision model
type Prompts struct {
	Name        string `yaml:"name_prompt"`
	Description string `yaml:"description_prompt"`
}

// Config is the configuration file snapshot. It is loaded once per process
// and passed explicitly to the components that need it.
type Config struct {
	Prompts `yaml:",inline"`

	LocationIDs      []string `yaml:"LOCATION_IDS"`
	TargetLocationID string   `yaml:"target_location_id"`

	NameMaxTokens        int  `yaml:"name_max_tokens"`
	DescriptionMaxTokens int  `yaml:"description_max_tokens"`
	MaxImageDimension    int  `yaml:"max_image_dimension"`
	ResizeUpload         bool `yaml:"resize_upload"`
}

// Load reads and validates the configuration file at path
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, models.Errorf(models.ConfigError, "load config", "configuration file '%s' not found", path)
		}
		return nil, models.NewError(models.ConfigError, "load config", fmt.Errorf("failed to read %s: %w", path, err))
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes YAML configuration, applies defaults and validates it
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, models.NewError(models.ConfigError, "parse config", fmt.Errorf("error parsing configuration file: %w", err))
	}

	if cfg.NameMaxTokens <= 0 {
		cfg.NameMaxTokens = DefaultNameMaxTokens
	}
	if cfg.DescriptionMaxTokens <= 0 {
		cfg.DescriptionMaxTokens = DefaultDescriptionMaxTokens
	}
	if cfg.MaxImageDimension <= 0 {
		cfg.MaxImageDimension = DefaultMaxImageDimension
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the fields every pipeline run depends on
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Prompts.Name) == "" {
		return models.Errorf(models.ConfigError, "validate config", "name_prompt is required")
	}
	if strings.TrimSpace(c.Prompts.Description) == "" {
		return models.Errorf(models.ConfigError, "validate config", "description_prompt is required")
	}
	return nil
}

// ResolveLocation returns the location inventory is tracked against. An
// explicit override wins over target_location_id. When LOCATION_IDS is non-empty
// the result must be one of its entries.
func (c *Config) ResolveLocation(override string) (string, error) {
	location := strings.TrimSpace(override)
	if location == "" {
		location = strings.TrimSpace(c.TargetLocationID)
	}
	if location == "" {
		return "", models.Errorf(models.ConfigError, "resolve location", "target_location_id is not set")
	}
	if len(c.LocationIDs) > 0 && !slices.Contains(c.LocationIDs, location) {
		return "", models.Errorf(models.ConfigError, "resolve location", "location %q is not listed in LOCATION_IDS", location)
	}
	return location, nil
}

// Env holds credentials and service settings read from the process environment
type Env struct {
	Provider string `env:"CATALOGING_PROVIDER" envDefault:"openai"`

	OpenAIKey     string `env:"OPENAI_API_KEY"`
	OpenAIModel   string `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com/v1"`

	OllamaURL   string `env:"OLLAMA_URL" envDefault:"http://localhost:11434"`
	OllamaModel string `env:"OLLAMA_MODEL" envDefault:"llava:34b"`

	GeminiKey   string `env:"GEMINI_API_KEY"`
	GeminiModel string `env:"GEMINI_MODEL" envDefault:"gemini-1.5-flash"`

	SquareToken       string `env:"SQUARE_APPLICATION_TOKEN"`
	SquareEnvironment string `env:"SQUARE_ENVIRONMENT" envDefault:"production"`

	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT" envDefault:"60s"`
}

// LoadEnv parses the environment into Env
func LoadEnv() (*Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return nil, models.NewError(models.ConfigError, "load env", fmt.Errorf("can't parse env variables: %w", err))
	}
	e.Provider = strings.ToLower(strings.TrimSpace(e.Provider))
	return &e, nil
}

// Model returns the model name configured for the selected provider
func (e *Env) Model() string {
	switch e.Provider {
	case "ollama":
		return e.OllamaModel
	case "gemini":
		return e.GeminiModel
	default:
		return e.OpenAIModel
	}
}

// RequireModelCredentials checks the secret the selected provider needs
func (e *Env) RequireModelCredentials() error {
	switch e.Provider {
	case "openai":
		if e.OpenAIKey == "" {
			return models.Errorf(models.CredentialError, "model credentials", "environment variable 'OPENAI_API_KEY' not set")
		}
	case "gemini":
		if e.GeminiKey == "" {
			return models.Errorf(models.CredentialError, "model credentials", "environment variable 'GEMINI_API_KEY' not set")
		}
	case "ollama":
	default:
		return models.Errorf(models.ConfigError, "model credentials", "unsupported provider: %s", e.Provider)
	}
	return nil
}

// RequireCommerceCredentials checks the commerce platform token
func (e *Env) RequireCommerceCredentials() error {
	if e.SquareToken == "" {
		return models.Errorf(models.CredentialError, "commerce credentials", "environment variable 'SQUARE_APPLICATION_TOKEN' not set")
	}
	return nil
}
