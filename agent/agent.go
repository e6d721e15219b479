package agent

import (
	"context"
	"strings"
	"sync"

	ai "github.com/im-vedant/llm4s"
	"github.com/im-vedant/llm4s/event"
	"github.com/im-vedant/llm4s/tool"
)

// baseSystemPrompt is the default instruction seeded into every run.
// WithSystemPrompt appends to it rather than replacing it, so callers can
// specialize the agent without losing the tool-use guidance.
const baseSystemPrompt = "You are a helpful assistant. Use the provided tools when they help you answer, and reply in plain text once you have what you need."

// Agent orchestrates autonomous tool-calling conversations: it calls the
// model, executes every tool call the model requests, folds the results back
// into the conversation, and repeats until the model answers in plain text
// or the turn budget runs out.
//
// An Agent is stateless between runs and safe for concurrent use; each Run
// owns its own State.
type Agent struct {
	client   ai.ModelClient
	registry *tool.Registry
}

// New creates an Agent backed by the given model client and tool registry.
func New(client ai.ModelClient, registry *tool.Registry) *Agent {
	return &Agent{
		client:   client,
		registry: registry,
	}
}

// Run executes the loop for a single user query and blocks until the run
// reaches a terminal status. The returned State always carries the
// accumulated conversation; the returned error is non-nil only when the run
// failed. A turn-limit stop is a status, not an error.
func (a *Agent) Run(ctx context.Context, query string, opts ...Option) (*State, error) {
	options := ApplyOptions(opts...)

	state := &State{
		Conversation: ai.NewConversation(
			ai.NewSystemMessage(systemPrompt(options.SystemPrompt)),
			ai.NewUserMessage(query),
		),
		Status: StatusPlanning,
	}

	completionOpts := append(
		[]ai.Option{ai.WithTools(a.registry.Tools())},
		options.CompletionOptions...,
	)

	event.Emit(options.Events, event.Event{Type: event.RunStart})

	for {
		// Cancellation and the turn budget are observed before every model
		// call; a run that is out of budget must not call the model again.
		if err := ctx.Err(); err != nil {
			return a.fail(state, options, err)
		}
		if options.MaxTurns > 0 && state.Turns >= options.MaxTurns {
			state.Status = StatusTurnLimitExceeded
			event.Emit(options.Events, event.Event{Type: event.RunEnd, Turn: state.Turns})
			return state, nil
		}

		turn := state.Turns + 1
		event.Emit(options.Events, event.Event{Type: event.TurnStart, Turn: turn})

		completion, err := a.client.Complete(ctx, state.Conversation, completionOpts...)
		if err != nil {
			// Client failures are run-fatal and leave no partial assistant
			// message behind.
			return a.fail(state, options, err)
		}

		state.Turns = turn
		state.Usage.Add(completion.Usage)

		if len(completion.ToolCalls) == 0 {
			state.Conversation.Append(ai.NewAssistantMessage(completion.Content))
			state.Status = StatusCompleted
			event.Emit(options.Events, event.Event{Type: event.TurnEnd, Turn: turn, Completion: completion})
			event.Emit(options.Events, event.Event{Type: event.RunEnd, Turn: turn, Completion: completion})
			return state, nil
		}

		state.Conversation.Append(ai.NewAssistantMessage(completion.Content, completion.ToolCalls...))
		state.Status = StatusAwaitingToolResults

		results := a.executeToolCalls(ctx, completion.ToolCalls, options)
		for _, result := range results {
			state.Conversation.Append(ai.NewToolResultMessage(result))
		}

		state.Status = StatusPlanning
		event.Emit(options.Events, event.Event{Type: event.TurnEnd, Turn: turn, Completion: completion})
	}
}

// executeToolCalls dispatches every call from one turn, optionally
// concurrently, and returns the results in the model's original call order
// so transcripts stay reproducible.
func (a *Agent) executeToolCalls(ctx context.Context, calls []ai.ToolCall, options *Options) []ai.ToolResult {
	results := make([]ai.ToolResult, len(calls))

	var sem chan struct{}
	if options.ToolConcurrency > 0 {
		sem = make(chan struct{}, options.ToolConcurrency)
	}

	var wg sync.WaitGroup
	for i, call := range calls {
		wg.Add(1)
		go func(idx int, tc ai.ToolCall) {
			defer wg.Done()
			if sem != nil {
				sem <- struct{}{}
				defer func() { <-sem }()
			}
			results[idx] = a.executeToolCall(ctx, tc, options)
		}(i, call)
	}
	wg.Wait()

	return results
}

// executeToolCall runs one call through the registry. Unknown tools, bad
// arguments, and handler failures are all folded into an error-flagged
// result so the model can see the failure and adapt; they never abort the
// run.
func (a *Agent) executeToolCall(ctx context.Context, tc ai.ToolCall, options *Options) ai.ToolResult {
	event.Emit(options.Events, event.Event{Type: event.ToolCallStart, ToolCall: &tc})

	execCtx := ctx
	if options.HandlerTimeout > 0 {
		var cancel context.CancelFunc
		execCtx, cancel = context.WithTimeout(ctx, options.HandlerTimeout)
		defer cancel()
	}

	result, err := a.registry.Dispatch(execCtx, tc)
	if err != nil {
		result = ai.ToolResult{
			ToolCallID: tc.ID,
			Content:    err.Error(),
			IsError:    true,
		}
	}

	event.Emit(options.Events, event.Event{Type: event.ToolCallResult, ToolCall: &tc, ToolResult: &result})
	return result
}

func (a *Agent) fail(state *State, options *Options, err error) (*State, error) {
	state.Status = StatusFailed
	state.Err = err
	event.Emit(options.Events, event.Event{Type: event.RunError, Turn: state.Turns, Err: err})
	event.Emit(options.Events, event.Event{Type: event.RunEnd, Turn: state.Turns})
	return state, err
}

func systemPrompt(addition string) string {
	if strings.TrimSpace(addition) == "" {
		return baseSystemPrompt
	}
	return baseSystemPrompt + "\n\n" + addition
}
