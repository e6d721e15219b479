package agent

import (
	"time"

	ai "github.com/im-vedant/llm4s"
	"github.com/im-vedant/llm4s/event"
)

// Options contains configuration for a run.
type Options struct {
	// SystemPrompt is appended to the base system prompt.
	SystemPrompt string

	// MaxTurns limits the number of model calls in one run. When the budget
	// runs out the run stops with StatusTurnLimitExceeded instead of calling
	// the model again. Default is 10.
	MaxTurns int

	// ToolConcurrency caps how many tool calls from one turn execute at
	// once. Zero means unbounded; one forces sequential execution.
	ToolConcurrency int

	// HandlerTimeout bounds each individual tool handler invocation.
	// Zero means no per-handler timeout. Default is 30 seconds.
	HandlerTimeout time.Duration

	// CompletionOptions are passed through to every model call.
	CompletionOptions []ai.Option

	// Events receives lifecycle events for the run. Nil disables emission.
	Events chan<- event.Event
}

// Option is a functional option for configuring a run.
type Option func(*Options)

// WithSystemPrompt appends an addition to the base system prompt.
func WithSystemPrompt(prompt string) Option {
	return func(o *Options) {
		o.SystemPrompt = prompt
	}
}

// WithMaxTurns sets the turn budget for the run. Default is 10.
func WithMaxTurns(n int) Option {
	return func(o *Options) {
		o.MaxTurns = n
	}
}

// WithToolConcurrency caps concurrent tool execution within a turn.
// Zero (the default) means unbounded.
func WithToolConcurrency(n int) Option {
	return func(o *Options) {
		o.ToolConcurrency = n
	}
}

// WithHandlerTimeout bounds each tool handler invocation.
// Default is 30 seconds. Set to 0 for no per-handler timeout.
func WithHandlerTimeout(d time.Duration) Option {
	return func(o *Options) {
		o.HandlerTimeout = d
	}
}

// WithCompletionOptions passes model options through to every call the run
// makes, such as llm4s.WithModel or llm4s.WithTemperature.
func WithCompletionOptions(opts ...ai.Option) Option {
	return func(o *Options) {
		o.CompletionOptions = append(o.CompletionOptions, opts...)
	}
}

// WithEvents subscribes a channel to the run's lifecycle events. Emission
// never blocks; events are dropped when the channel is full.
func WithEvents(ch chan<- event.Event) Option {
	return func(o *Options) {
		o.Events = ch
	}
}

// ApplyOptions applies functional options to an Options struct with defaults.
func ApplyOptions(opts ...Option) *Options {
	o := &Options{
		MaxTurns:       10,
		HandlerTimeout: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
