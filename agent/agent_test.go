package agent

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ai "github.com/im-vedant/llm4s"
	"github.com/im-vedant/llm4s/event"
	"github.com/im-vedant/llm4s/schema"
	"github.com/im-vedant/llm4s/tool"
)

// stubClient replays a scripted sequence of completions. Calls past the end
// of the script repeat the final entry, which lets a two-entry script
// simulate a model that loops forever on its last behavior.
type stubClient struct {
	mu     sync.Mutex
	script []func(conv *ai.Conversation) (*ai.Completion, error)
	calls  int
}

func (s *stubClient) Complete(ctx context.Context, conv *ai.Conversation, opts ...ai.Option) (*ai.Completion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.calls
	if idx >= len(s.script) {
		idx = len(s.script) - 1
	}
	s.calls++
	return s.script[idx](conv)
}

func (s *stubClient) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func textCompletion(content string) func(*ai.Conversation) (*ai.Completion, error) {
	return func(*ai.Conversation) (*ai.Completion, error) {
		return &ai.Completion{
			Content:    content,
			StopReason: "end_turn",
			Usage:      ai.Usage{InputTokens: 10, OutputTokens: 5},
		}, nil
	}
}

func toolCompletion(calls ...ai.ToolCall) func(*ai.Conversation) (*ai.Completion, error) {
	return func(*ai.Conversation) (*ai.Completion, error) {
		return &ai.Completion{
			StopReason: "tool_use",
			ToolCalls:  calls,
			Usage:      ai.Usage{InputTokens: 10, OutputTokens: 5},
		}, nil
	}
}

func echoRegistry(t *testing.T) *tool.Registry {
	t.Helper()
	echo := tool.NewBuilder().
		Name("echo").
		Description("Echoes the input text").
		Schema(schema.Object("Echo parameters").
			Property("text", schema.String("Text to echo")).
			MustBuild()).
		Handler(func(ctx context.Context, args *tool.Extractor) (string, error) {
			return args.String("text")
		}).
		MustBuild()
	return tool.MustNewRegistry(echo)
}

func TestRunCompletesWithoutTools(t *testing.T) {
	client := &stubClient{script: []func(*ai.Conversation) (*ai.Completion, error){
		textCompletion("The capital of France is Paris."),
	}}
	a := New(client, echoRegistry(t))

	state, err := a.Run(context.Background(), "What is the capital of France?")
	require.NoError(t, err)

	assert.Equal(t, StatusCompleted, state.Status)
	assert.Equal(t, 1, state.Turns)
	assert.Equal(t, 1, client.callCount())
	assert.Equal(t, "The capital of France is Paris.", state.FinalAnswer())

	msgs := state.Conversation.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, ai.RoleSystem, msgs[0].Role)
	assert.Equal(t, ai.RoleUser, msgs[1].Role)
	assert.Equal(t, ai.RoleAssistant, msgs[2].Role)
}

func TestRunExecutesToolThenCompletes(t *testing.T) {
	client := &stubClient{script: []func(*ai.Conversation) (*ai.Completion, error){
		toolCompletion(ai.ToolCall{ID: "call-1", Name: "echo", Arguments: `{"text": "hello"}`}),
		textCompletion("The tool said hello."),
	}}
	a := New(client, echoRegistry(t))

	state, err := a.Run(context.Background(), "Use the echo tool.")
	require.NoError(t, err)

	assert.Equal(t, StatusCompleted, state.Status)
	assert.Equal(t, 2, state.Turns)
	assert.Equal(t, "The tool said hello.", state.FinalAnswer())

	msgs := state.Conversation.Messages()
	require.Len(t, msgs, 5)
	assert.Equal(t, ai.RoleSystem, msgs[0].Role)
	assert.Equal(t, ai.RoleUser, msgs[1].Role)

	assert.Equal(t, ai.RoleAssistant, msgs[2].Role)
	require.Len(t, msgs[2].ToolCalls, 1)
	assert.Equal(t, "call-1", msgs[2].ToolCalls[0].ID)

	assert.Equal(t, ai.RoleTool, msgs[3].Role)
	require.Len(t, msgs[3].ToolResults, 1)
	assert.Equal(t, "call-1", msgs[3].ToolResults[0].ToolCallID)
	assert.Equal(t, "hello", msgs[3].ToolResults[0].Content)
	assert.False(t, msgs[3].ToolResults[0].IsError)

	assert.Equal(t, ai.RoleAssistant, msgs[4].Role)
	assert.Equal(t, "The tool said hello.", msgs[4].Content)
}

func TestRunStopsAtTurnLimit(t *testing.T) {
	// The script's only entry always requests a tool call, simulating a
	// model stuck in a tool-calling cycle.
	client := &stubClient{script: []func(*ai.Conversation) (*ai.Completion, error){
		toolCompletion(ai.ToolCall{ID: "call-1", Name: "echo", Arguments: `{"text": "again"}`}),
	}}
	a := New(client, echoRegistry(t))

	state, err := a.Run(context.Background(), "Loop forever.", WithMaxTurns(3))
	require.NoError(t, err)

	assert.Equal(t, StatusTurnLimitExceeded, state.Status)
	assert.Equal(t, 3, state.Turns)
	assert.Equal(t, 3, client.callCount())
}

func TestRunFailsOnClientError(t *testing.T) {
	clientErr := errors.New("provider unavailable")
	client := &stubClient{script: []func(*ai.Conversation) (*ai.Completion, error){
		func(*ai.Conversation) (*ai.Completion, error) { return nil, clientErr },
	}}
	a := New(client, echoRegistry(t))

	state, err := a.Run(context.Background(), "Hello.")
	require.ErrorIs(t, err, clientErr)

	assert.Equal(t, StatusFailed, state.Status)
	assert.ErrorIs(t, state.Err, clientErr)
	assert.Equal(t, 0, state.Turns)

	// No partial assistant turn: only the seed messages survive.
	msgs := state.Conversation.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, ai.RoleSystem, msgs[0].Role)
	assert.Equal(t, ai.RoleUser, msgs[1].Role)
}

func TestRunObservesCancellation(t *testing.T) {
	client := &stubClient{script: []func(*ai.Conversation) (*ai.Completion, error){
		textCompletion("never reached"),
	}}
	a := New(client, echoRegistry(t))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	state, err := a.Run(ctx, "Hello.")
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, StatusFailed, state.Status)
	assert.Equal(t, 0, client.callCount())
}

func TestRunFoldsUnknownToolIntoResult(t *testing.T) {
	client := &stubClient{script: []func(*ai.Conversation) (*ai.Completion, error){
		toolCompletion(ai.ToolCall{ID: "call-1", Name: "does_not_exist", Arguments: `{}`}),
		textCompletion("I could not use that tool."),
	}}
	a := New(client, echoRegistry(t))

	state, err := a.Run(context.Background(), "Use a tool I don't have.")
	require.NoError(t, err)

	assert.Equal(t, StatusCompleted, state.Status)

	msgs := state.Conversation.Messages()
	require.Len(t, msgs, 5)
	require.Len(t, msgs[3].ToolResults, 1)
	assert.True(t, msgs[3].ToolResults[0].IsError)
	assert.Contains(t, msgs[3].ToolResults[0].Content, "unknown tool")
}

func TestRunFoldsHandlerErrorIntoResult(t *testing.T) {
	failing := tool.NewBuilder().
		Name("flaky").
		Description("Always fails").
		Schema(schema.Object("No parameters").MustBuild()).
		Handler(func(ctx context.Context, args *tool.Extractor) (string, error) {
			return "", errors.New("downstream timeout")
		}).
		MustBuild()

	client := &stubClient{script: []func(*ai.Conversation) (*ai.Completion, error){
		toolCompletion(ai.ToolCall{ID: "call-1", Name: "flaky"}),
		textCompletion("The tool failed, sorry."),
	}}
	a := New(client, tool.MustNewRegistry(failing))

	state, err := a.Run(context.Background(), "Try the flaky tool.")
	require.NoError(t, err)

	assert.Equal(t, StatusCompleted, state.Status)
	msgs := state.Conversation.Messages()
	require.Len(t, msgs[3].ToolResults, 1)
	assert.True(t, msgs[3].ToolResults[0].IsError)
	assert.Equal(t, "downstream timeout", msgs[3].ToolResults[0].Content)
}

func TestRunPreservesToolCallOrder(t *testing.T) {
	// Handlers finish in reverse call order; results must still be appended
	// in the order the model emitted the calls.
	slow := tool.NewBuilder().
		Name("lookup").
		Description("Looks up a value with variable latency").
		Schema(schema.Object("Lookup parameters").
			Property("key", schema.String("Key to look up")).
			Property("delayMs", schema.Number("Artificial latency")).
			MustBuild()).
		Handler(func(ctx context.Context, args *tool.Extractor) (string, error) {
			delay, err := args.Number("delayMs")
			if err != nil {
				return "", err
			}
			time.Sleep(time.Duration(delay) * time.Millisecond)
			return args.String("key")
		}).
		MustBuild()

	calls := []ai.ToolCall{
		{ID: "call-1", Name: "lookup", Arguments: `{"key": "first", "delayMs": 40}`},
		{ID: "call-2", Name: "lookup", Arguments: `{"key": "second", "delayMs": 20}`},
		{ID: "call-3", Name: "lookup", Arguments: `{"key": "third", "delayMs": 1}`},
	}
	client := &stubClient{script: []func(*ai.Conversation) (*ai.Completion, error){
		toolCompletion(calls...),
		textCompletion("done"),
	}}
	a := New(client, tool.MustNewRegistry(slow))

	state, err := a.Run(context.Background(), "Look up three keys.")
	require.NoError(t, err)

	msgs := state.Conversation.Messages()
	require.Len(t, msgs, 7)
	for i, want := range []string{"first", "second", "third"} {
		m := msgs[3+i]
		assert.Equal(t, ai.RoleTool, m.Role)
		require.Len(t, m.ToolResults, 1)
		assert.Equal(t, fmt.Sprintf("call-%d", i+1), m.ToolResults[0].ToolCallID)
		assert.Equal(t, want, m.ToolResults[0].Content)
	}
}

func TestRunBoundsToolConcurrency(t *testing.T) {
	var mu sync.Mutex
	inFlight, maxInFlight := 0, 0

	tracked := tool.NewBuilder().
		Name("tracked").
		Description("Tracks concurrent executions").
		Schema(schema.Object("No parameters").MustBuild()).
		Handler(func(ctx context.Context, args *tool.Extractor) (string, error) {
			mu.Lock()
			inFlight++
			if inFlight > maxInFlight {
				maxInFlight = inFlight
			}
			mu.Unlock()

			time.Sleep(10 * time.Millisecond)

			mu.Lock()
			inFlight--
			mu.Unlock()
			return "ok", nil
		}).
		MustBuild()

	client := &stubClient{script: []func(*ai.Conversation) (*ai.Completion, error){
		toolCompletion(
			ai.ToolCall{ID: "call-1", Name: "tracked"},
			ai.ToolCall{ID: "call-2", Name: "tracked"},
			ai.ToolCall{ID: "call-3", Name: "tracked"},
			ai.ToolCall{ID: "call-4", Name: "tracked"},
		),
		textCompletion("done"),
	}}
	a := New(client, tool.MustNewRegistry(tracked))

	_, err := a.Run(context.Background(), "Run them all.", WithToolConcurrency(1))
	require.NoError(t, err)
	assert.Equal(t, 1, maxInFlight)
}

func TestRunAccumulatesUsage(t *testing.T) {
	client := &stubClient{script: []func(*ai.Conversation) (*ai.Completion, error){
		toolCompletion(ai.ToolCall{ID: "call-1", Name: "echo", Arguments: `{"text": "hi"}`}),
		textCompletion("done"),
	}}
	a := New(client, echoRegistry(t))

	state, err := a.Run(context.Background(), "Echo hi.")
	require.NoError(t, err)

	assert.Equal(t, 20, state.Usage.InputTokens)
	assert.Equal(t, 10, state.Usage.OutputTokens)
}

func TestRunAppendsSystemPromptAddition(t *testing.T) {
	client := &stubClient{script: []func(*ai.Conversation) (*ai.Completion, error){
		textCompletion("oui"),
	}}
	a := New(client, echoRegistry(t))

	state, err := a.Run(context.Background(), "Bonjour.",
		WithSystemPrompt("Always answer in French."))
	require.NoError(t, err)

	msgs := state.Conversation.Messages()
	require.Equal(t, ai.RoleSystem, msgs[0].Role)
	assert.Contains(t, msgs[0].Content, "Always answer in French.")
	assert.Contains(t, msgs[0].Content, "helpful assistant")
}

func TestRunEmitsEvents(t *testing.T) {
	client := &stubClient{script: []func(*ai.Conversation) (*ai.Completion, error){
		toolCompletion(ai.ToolCall{ID: "call-1", Name: "echo", Arguments: `{"text": "hi"}`}),
		textCompletion("done"),
	}}
	a := New(client, echoRegistry(t))

	events := event.NewChannel()
	_, err := a.Run(context.Background(), "Echo hi.", WithEvents(events))
	require.NoError(t, err)
	close(events)

	var types []event.Type
	for ev := range events {
		types = append(types, ev.Type)
	}
	assert.Equal(t, []event.Type{
		event.RunStart,
		event.TurnStart,
		event.ToolCallStart,
		event.ToolCallResult,
		event.TurnEnd,
		event.TurnStart,
		event.TurnEnd,
		event.RunEnd,
	}, types)
}
