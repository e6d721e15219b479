package translate

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ai "github.com/im-vedant/llm4s"
)

type stubClient struct {
	lastConv *ai.Conversation
	lastOpts []ai.Option
	reply    string
	err      error
}

func (s *stubClient) Complete(ctx context.Context, conv *ai.Conversation, opts ...ai.Option) (*ai.Completion, error) {
	s.lastConv = conv
	s.lastOpts = opts
	if s.err != nil {
		return nil, s.err
	}
	return &ai.Completion{Content: s.reply, StopReason: "end_turn"}, nil
}

func TestTranslate(t *testing.T) {
	t.Run("returns the model's translation", func(t *testing.T) {
		client := &stubClient{reply: "Bonjour le monde"}
		fn, err := New(client)
		require.NoError(t, err)

		result := fn.Invoke(context.Background(), ai.ToolCall{
			ID:        "call_1",
			Name:      "translate",
			Arguments: `{"text": "Hello world", "to": "French"}`,
		})
		require.False(t, result.IsError, result.Content)
		assert.Equal(t, "Bonjour le monde", result.Content)

		require.NotNil(t, client.lastConv)
		assert.Equal(t, 2, client.lastConv.Len())
		assert.Contains(t, client.lastConv.Messages()[1].Content, "to French")
		assert.Contains(t, client.lastConv.Messages()[1].Content, "Hello world")
	})

	t.Run("includes the source language when given", func(t *testing.T) {
		client := &stubClient{reply: "Hola"}
		fn := MustNew(client)

		result := fn.Invoke(context.Background(), ai.ToolCall{
			Arguments: `{"text": "Hello", "to": "Spanish", "from": "English"}`,
		})
		require.False(t, result.IsError, result.Content)
		assert.Contains(t, client.lastConv.Messages()[1].Content, "from English to Spanish")
	})

	t.Run("missing target language folds into the result", func(t *testing.T) {
		fn := MustNew(&stubClient{reply: "x"})

		result := fn.Invoke(context.Background(), ai.ToolCall{
			Arguments: `{"text": "Hello"}`,
		})
		assert.True(t, result.IsError)
	})

	t.Run("client failure folds into the result", func(t *testing.T) {
		fn := MustNew(&stubClient{err: errors.New("model unavailable")})

		result := fn.Invoke(context.Background(), ai.ToolCall{
			Arguments: `{"text": "Hello", "to": "French"}`,
		})
		assert.True(t, result.IsError)
		assert.Contains(t, result.Content, "model unavailable")
	})

	t.Run("completion options are forwarded", func(t *testing.T) {
		client := &stubClient{reply: "x"}
		fn := MustNew(client, WithCompletionOptions(ai.WithModel("small-model")))

		fn.Invoke(context.Background(), ai.ToolCall{
			Arguments: `{"text": "Hello", "to": "French"}`,
		})
		require.Len(t, client.lastOpts, 1)
		opts := ai.ApplyOptions(client.lastOpts...)
		assert.Equal(t, "small-model", opts.Model)
	})
}
