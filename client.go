package llm4s

import "context"

// ModelClient is the boundary between the framework and a language model
// provider. Implementations convert the conversation to the provider's wire
// format, issue one completion request, and convert the reply back.
//
// Complete must honor ctx cancellation and return either a completion or an
// error, never both. Implementations should wrap provider failures in a
// CategorizedError so callers can distinguish transient faults from
// permanent ones.
type ModelClient interface {
	Complete(ctx context.Context, conv *Conversation, opts ...Option) (*Completion, error)
}
