package client

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ai "github.com/im-vedant/llm4s"
	"github.com/im-vedant/llm4s/retry"
)

func TestNew(t *testing.T) {
	ctx := context.Background()

	t.Run("requires an API key", func(t *testing.T) {
		_, err := New(ctx, Config{Provider: ai.ProviderAnthropic})
		var missingErr *ErrMissingAPIKey
		require.ErrorAs(t, err, &missingErr)
		assert.Equal(t, ai.ProviderAnthropic, missingErr.Provider)
	})

	t.Run("rejects unknown providers", func(t *testing.T) {
		_, err := New(ctx, Config{Provider: "mistral", APIKey: "key"})
		var unknownErr *ErrUnknownProvider
		require.ErrorAs(t, err, &unknownErr)
		assert.Equal(t, ai.Provider("mistral"), unknownErr.Provider)
	})

	t.Run("builds anthropic client", func(t *testing.T) {
		mc, err := New(ctx, Config{Provider: ai.ProviderAnthropic, APIKey: "test-key"})
		require.NoError(t, err)
		assert.NotNil(t, mc)
	})

	t.Run("builds openai client", func(t *testing.T) {
		mc, err := New(ctx, Config{Provider: ai.ProviderOpenAI, APIKey: "test-key"})
		require.NoError(t, err)
		assert.NotNil(t, mc)
	})
}

func TestFromEnv(t *testing.T) {
	t.Run("defaults to anthropic", func(t *testing.T) {
		t.Setenv(EnvProvider, "")
		t.Setenv(EnvAnthropicAPIKey, "test-key")

		cfg, err := FromEnv()
		require.NoError(t, err)
		assert.Equal(t, ai.ProviderAnthropic, cfg.Provider)
		assert.Equal(t, "test-key", cfg.APIKey)
	})

	t.Run("selects provider and model", func(t *testing.T) {
		t.Setenv(EnvProvider, "openai")
		t.Setenv(EnvModel, "gpt-5")
		t.Setenv(EnvOpenAIAPIKey, "openai-key")

		cfg, err := FromEnv()
		require.NoError(t, err)
		assert.Equal(t, ai.ProviderOpenAI, cfg.Provider)
		assert.Equal(t, "gpt-5", cfg.Model)
		assert.Equal(t, "openai-key", cfg.APIKey)
	})

	t.Run("missing key is an error", func(t *testing.T) {
		t.Setenv(EnvProvider, "google")
		t.Setenv(EnvGoogleAPIKey, "")

		_, err := FromEnv()
		var missingErr *ErrMissingAPIKey
		assert.ErrorAs(t, err, &missingErr)
	})

	t.Run("unknown provider is an error", func(t *testing.T) {
		t.Setenv(EnvProvider, "mistral")

		_, err := FromEnv()
		var unknownErr *ErrUnknownProvider
		assert.ErrorAs(t, err, &unknownErr)
	})
}

// countingClient fails with a transient error until the configured number of
// attempts is reached.
type countingClient struct {
	failures int
	calls    int
}

func (c *countingClient) Complete(ctx context.Context, conv *ai.Conversation, opts ...ai.Option) (*ai.Completion, error) {
	c.calls++
	if c.calls <= c.failures {
		return nil, ai.NewTransientError("overloaded", 529, nil)
	}
	return &ai.Completion{Content: "recovered"}, nil
}

func TestRetryClient(t *testing.T) {
	t.Run("retries transient failures", func(t *testing.T) {
		inner := &countingClient{failures: 2}
		cfg := retry.Config{MaxAttempts: 5, Multiplier: 2.0}
		mc := &retryClient{inner: inner, retryConfig: cfg}

		completion, err := mc.Complete(context.Background(), ai.NewConversation(ai.NewUserMessage("hi")))
		require.NoError(t, err)
		assert.Equal(t, "recovered", completion.Content)
		assert.Equal(t, 3, inner.calls)
	})

	t.Run("disabled config does not retry", func(t *testing.T) {
		inner := &countingClient{failures: 1}
		mc := &retryClient{inner: inner, retryConfig: retry.Disabled()}

		_, err := mc.Complete(context.Background(), ai.NewConversation(ai.NewUserMessage("hi")))
		require.Error(t, err)
		assert.Equal(t, 1, inner.calls)
	})

	t.Run("applies the configured default model", func(t *testing.T) {
		var sawModel string
		inner := modelCaptureClient{model: &sawModel}
		mc := &retryClient{inner: inner, retryConfig: retry.Disabled(), defaultModel: "claude-sonnet-4-5"}

		_, err := mc.Complete(context.Background(), ai.NewConversation(ai.NewUserMessage("hi")))
		require.NoError(t, err)
		assert.Equal(t, "claude-sonnet-4-5", sawModel)
	})

	t.Run("per-request model overrides the default", func(t *testing.T) {
		var sawModel string
		inner := modelCaptureClient{model: &sawModel}
		mc := &retryClient{inner: inner, retryConfig: retry.Disabled(), defaultModel: "claude-sonnet-4-5"}

		_, err := mc.Complete(context.Background(),
			ai.NewConversation(ai.NewUserMessage("hi")),
			ai.WithModel("claude-opus-4-1"))
		require.NoError(t, err)
		assert.Equal(t, "claude-opus-4-1", sawModel)
	})
}

type modelCaptureClient struct {
	model *string
}

func (c modelCaptureClient) Complete(ctx context.Context, conv *ai.Conversation, opts ...ai.Option) (*ai.Completion, error) {
	options := ai.ApplyOptions(opts...)
	*c.model = options.Model
	return &ai.Completion{}, nil
}
