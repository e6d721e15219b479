package agent

import (
	ai "github.com/im-vedant/llm4s"
)

// State is the accumulated outcome of one run: the conversation built so
// far, the number of completed turns, the run's status, token usage summed
// across every model call, and the error for failed runs.
//
// A State is owned exclusively by the run that produced it. It advances
// strictly forward through turns and never reverts to an earlier status.
type State struct {
	// Conversation holds every message the run has appended, including the
	// initial system and user seed.
	Conversation *ai.Conversation

	// Turns is the number of model calls completed so far.
	Turns int

	// Status is the run's current lifecycle state.
	Status Status

	// Usage is the token usage accumulated across all model calls.
	Usage ai.Usage

	// Err holds the unrecoverable error for failed runs, nil otherwise.
	Err error
}

// FinalAnswer returns the text of the last assistant message, or "" when the
// run produced none.
func (s *State) FinalAnswer() string {
	return s.Conversation.LastAssistantText()
}
