// Package config loads process settings from the environment and an optional .env file.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"style-outfits/internal/domain/valueobjects"
)

const (
	ProviderGemini = "gemini"
	ProviderVertex = "vertex"
	ProviderOpenAI = "openai"
)

const redacted = "[redacted]"

type Config struct {
	// HTTP listen address, e.g. ":8080"
	Address   string `env:"ADDRESS" envDefault:":8080"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"console"`

	Provider        string        `env:"GENERATION_PROVIDER" envDefault:"gemini"`
	Timeout         time.Duration `env:"GENERATION_TIMEOUT" envDefault:"30s"`
	TextModel       string        `env:"TEXT_MODEL" envDefault:"gemini-2.0-flash"`
	ImageModel      string        `env:"IMAGE_MODEL" envDefault:"gemini-2.0-flash-preview-image-generation"`
	SafetyThreshold string        `env:"SAFETY_THRESHOLD" envDefault:"block_medium_and_above"`

	MannequinEnabled     bool   `env:"MANNEQUIN_ENABLED" envDefault:"true"`
	MannequinPlaceholder string `env:"MANNEQUIN_PLACEHOLDER" envDefault:"https://placehold.co/512x768?text=Mannequin"`

	MaxUploadBytes       int64 `env:"MAX_UPLOAD_BYTES" envDefault:"10485760"`
	AnalysisMaxDimension int   `env:"ANALYSIS_MAX_DIMENSION" envDefault:"1024"`

	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	ProjectID    string `env:"PROJECT_ID"`
	Location     string `env:"LOCATION" envDefault:"us-central1"`

	OpenAIAPIKey  string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL"`
	OpenAIModel   string `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
}

// Load loads .env (if present), parses environment variables into Config and validates it.
func Load() (Config, error) {
	// a missing .env is fine
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if cfg.ProjectID == "" {
		cfg.ProjectID = os.Getenv("GOOGLE_CLOUD_PROJECT")
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("LOG_LEVEL: %w", err)
	}

	if c.LogFormat != "console" && c.LogFormat != "json" {
		return fmt.Errorf("LOG_FORMAT must be console or json, got %q", c.LogFormat)
	}

	if _, err := valueobjects.ParseSafetyThreshold(c.SafetyThreshold); err != nil {
		return fmt.Errorf("SAFETY_THRESHOLD: %w", err)
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("GENERATION_TIMEOUT must be positive, got %s", c.Timeout)
	}

	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive, got %d", c.MaxUploadBytes)
	}

	switch c.Provider {
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required for provider %s", c.Provider)
		}
	case ProviderVertex:
		if c.ProjectID == "" {
			return fmt.Errorf("PROJECT_ID is required for provider %s", c.Provider)
		}
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required for provider %s", c.Provider)
		}
	default:
		return fmt.Errorf("GENERATION_PROVIDER must be one of gemini, vertex, openai, got %q", c.Provider)
	}

	return nil
}

// EffectiveTextModel is the model used for outfit and analysis prompts.
func (c Config) EffectiveTextModel() string {
	if c.Provider == ProviderOpenAI {
		return c.OpenAIModel
	}
	return c.TextModel
}

// MannequinAvailable reports whether an image-capable provider can be built. Only the
// Gemini API returns images, so other providers need a Gemini key for the mannequin.
func (c Config) MannequinAvailable() bool {
	return c.MannequinEnabled && c.GeminiAPIKey != ""
}

// Redacted returns a copy safe to print, with credentials masked.
func (c Config) Redacted() Config {
	out := c
	for _, secret := range []*string{&out.GeminiAPIKey, &out.OpenAIAPIKey} {
		if *secret != "" {
			*secret = redacted
		}
	}
	return out
}
