// Package translate provides a translation tool backed by a language
// model. It demonstrates a tool that composes a ModelClient: the agent's
// model delegates translation to a (possibly different, cheaper) model.
package translate

import (
	"context"
	"fmt"

	ai "github.com/im-vedant/llm4s"
	"github.com/im-vedant/llm4s/schema"
	"github.com/im-vedant/llm4s/tool"
)

const systemPrompt = "You are a professional translator. Translate the " +
	"user's text exactly, preserving tone and formatting. Reply with the " +
	"translation only, no commentary."

// Option configures the translate tool.
type Option func(*config)

type config struct {
	completionOpts []ai.Option
}

// WithCompletionOptions sets options passed to every translation request,
// such as a specific model.
func WithCompletionOptions(opts ...ai.Option) Option {
	return func(c *config) {
		c.completionOpts = opts
	}
}

// New creates the translation tool.
func New(client ai.ModelClient, opts ...Option) (*tool.Function, error) {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	params, err := schema.Object("Translation parameters").
		Property("text", schema.String("Text to translate")).
		Property("to", schema.String("Target language, e.g. French or ja")).
		OptionalProperty("from", schema.String("Source language; detected automatically when omitted")).
		Build()
	if err != nil {
		return nil, err
	}

	return tool.NewBuilder().
		Name("translate").
		Description("Translate text between languages.").
		Schema(params).
		Handler(func(ctx context.Context, args *tool.Extractor) (string, error) {
			text, err := args.String("text")
			if err != nil {
				return "", err
			}
			to, err := args.String("to")
			if err != nil {
				return "", err
			}
			from, err := args.StringOr("from", "")
			if err != nil {
				return "", err
			}

			prompt := fmt.Sprintf("Translate the following text to %s:\n\n%s", to, text)
			if from != "" {
				prompt = fmt.Sprintf("Translate the following text from %s to %s:\n\n%s", from, to, text)
			}

			conv := ai.NewConversation(
				ai.NewSystemMessage(systemPrompt),
				ai.NewUserMessage(prompt),
			)
			completion, err := client.Complete(ctx, conv, cfg.completionOpts...)
			if err != nil {
				return "", err
			}
			return completion.Content, nil
		}).
		Build()
}

// MustNew is like New but panics on error.
func MustNew(client ai.ModelClient, opts ...Option) *tool.Function {
	fn, err := New(client, opts...)
	if err != nil {
		panic(err)
	}
	return fn
}
