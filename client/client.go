package client

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	ai "github.com/im-vedant/llm4s"
	"github.com/im-vedant/llm4s/provider/anthropic"
	"github.com/im-vedant/llm4s/provider/google"
	"github.com/im-vedant/llm4s/provider/openai"
	"github.com/im-vedant/llm4s/retry"
)

// Environment variables read by FromEnv.
const (
	EnvProvider = "LLM4S_PROVIDER"
	EnvModel    = "LLM4S_MODEL"

	EnvAnthropicAPIKey = "ANTHROPIC_API_KEY"
	EnvOpenAIAPIKey    = "OPENAI_API_KEY"
	EnvGoogleAPIKey    = "GOOGLE_API_KEY"
)

// Config selects and configures a model provider.
type Config struct {
	// Provider names the backend to use.
	Provider ai.Provider

	// APIKey authenticates against the provider.
	APIKey string

	// Model overrides the provider's default model. Per-request
	// llm4s.WithModel options take precedence over this.
	Model string

	// RetryConfig configures retry behavior for transient errors.
	// If nil, the default configuration is used (10 attempts with
	// exponential backoff). Use retry.Disabled() to turn retries off.
	RetryConfig *retry.Config
}

// ErrMissingAPIKey is returned when no API key is configured for the
// selected provider.
type ErrMissingAPIKey struct {
	Provider ai.Provider
}

func (e *ErrMissingAPIKey) Error() string {
	return fmt.Sprintf("no API key configured for %s", e.Provider)
}

// ErrUnknownProvider is returned when the configured provider name is not
// one of the supported backends.
type ErrUnknownProvider struct {
	Provider ai.Provider
}

func (e *ErrUnknownProvider) Error() string {
	return fmt.Sprintf("unknown provider %q (supported: anthropic, openai, google)", e.Provider)
}

// FromEnv builds a Config from the environment, loading a .env file first
// if one is present. LLM4S_PROVIDER selects the backend (default anthropic),
// LLM4S_MODEL optionally overrides the provider's default model, and the
// API key comes from the provider's conventional variable.
func FromEnv() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Provider: ai.Provider(getEnvOrDefault(EnvProvider, string(ai.ProviderAnthropic))),
		Model:    os.Getenv(EnvModel),
	}

	switch cfg.Provider {
	case ai.ProviderAnthropic:
		cfg.APIKey = os.Getenv(EnvAnthropicAPIKey)
	case ai.ProviderOpenAI:
		cfg.APIKey = os.Getenv(EnvOpenAIAPIKey)
	case ai.ProviderGoogle:
		cfg.APIKey = os.Getenv(EnvGoogleAPIKey)
	default:
		return Config{}, &ErrUnknownProvider{Provider: cfg.Provider}
	}

	if cfg.APIKey == "" {
		return Config{}, &ErrMissingAPIKey{Provider: cfg.Provider}
	}
	return cfg, nil
}

// New creates a ModelClient for the configured provider, wrapped with
// automatic retries on transient errors. The context is used only for
// provider initialization, not for later requests.
func New(ctx context.Context, cfg Config) (ai.ModelClient, error) {
	if cfg.APIKey == "" {
		return nil, &ErrMissingAPIKey{Provider: cfg.Provider}
	}

	var (
		inner ai.ModelClient
		err   error
	)
	switch cfg.Provider {
	case ai.ProviderAnthropic:
		inner = anthropic.New(cfg.APIKey)
	case ai.ProviderOpenAI:
		inner = openai.New(cfg.APIKey)
	case ai.ProviderGoogle:
		inner, err = google.New(ctx, cfg.APIKey)
		if err != nil {
			return nil, fmt.Errorf("initializing google client: %w", err)
		}
	default:
		return nil, &ErrUnknownProvider{Provider: cfg.Provider}
	}

	retryConfig := retry.DefaultConfig()
	if cfg.RetryConfig != nil {
		retryConfig = *cfg.RetryConfig
	}

	return &retryClient{
		inner:        inner,
		retryConfig:  retryConfig,
		defaultModel: cfg.Model,
	}, nil
}

// retryClient wraps a provider client with transient-error retries and an
// optional default model.
type retryClient struct {
	inner        ai.ModelClient
	retryConfig  retry.Config
	defaultModel string
}

func (c *retryClient) Complete(ctx context.Context, conv *ai.Conversation, opts ...ai.Option) (*ai.Completion, error) {
	if c.defaultModel != "" {
		// Prepend so per-request options override the configured default.
		opts = append([]ai.Option{ai.WithModel(c.defaultModel)}, opts...)
	}
	return retry.Do(ctx, c.retryConfig, func() (*ai.Completion, error) {
		return c.inner.Complete(ctx, conv, opts...)
	})
}

func getEnvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
