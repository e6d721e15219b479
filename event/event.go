// Package event provides an observable event stream for agent runs. Callers
// subscribe by passing a channel to the agent; each lifecycle transition and
// tool execution emits one event.
package event

import (
	"time"

	ai "github.com/im-vedant/llm4s"
)

// Type identifies the kind of event.
type Type string

// Run lifecycle events
const (
	// RunStart fires once when an agent run begins.
	RunStart Type = "run_start"

	// RunEnd fires when a run reaches a terminal status, whatever that
	// status is. It is always the last event of a run.
	RunEnd Type = "run_end"

	// RunError fires when a run fails with an unrecoverable error, before
	// the closing RunEnd.
	RunError Type = "run_error"
)

// Turn lifecycle events
const (
	// TurnStart fires before each model call.
	TurnStart Type = "turn_start"

	// TurnEnd fires after the model call and any requested tool executions
	// for the turn have completed.
	TurnEnd Type = "turn_end"
)

// Tool call events
const (
	// ToolCallStart fires before a requested tool call is dispatched.
	ToolCallStart Type = "tool_call_start"

	// ToolCallResult fires with the outcome of a tool call, including
	// error-flagged results.
	ToolCallResult Type = "tool_call_result"
)

// Event represents an observable occurrence during an agent run.
type Event struct {
	// Type identifies the kind of event.
	Type Type

	// Turn is the turn number (1-indexed) the event belongs to. Zero for
	// run-level events that precede the first turn.
	Turn int

	// Completion contains the model's response for TurnEnd and RunEnd events.
	Completion *ai.Completion

	// ToolCall contains the call for tool-related events.
	ToolCall *ai.ToolCall

	// ToolResult contains the outcome for ToolCallResult events.
	ToolResult *ai.ToolResult

	// Err contains the error for RunError events.
	Err error

	// Timestamp is when the event occurred.
	Timestamp time.Time
}

// Emit sends an event with a timestamp to the channel without blocking.
// A full or nil channel drops the event; observation must never stall a run.
func Emit(ch chan<- Event, e Event) {
	if ch == nil {
		return
	}
	e.Timestamp = time.Now()
	select {
	case ch <- e:
	default:
	}
}

// NewChannel creates a buffered event channel with standard capacity.
func NewChannel() chan Event {
	return make(chan Event, 100)
}
