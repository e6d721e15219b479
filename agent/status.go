package agent

// Status is the lifecycle state of a run.
type Status string

const (
	// StatusPlanning means the run is about to send the conversation to the
	// model.
	StatusPlanning Status = "planning"

	// StatusAwaitingToolResults means the model requested one or more tool
	// calls whose results are still pending.
	StatusAwaitingToolResults Status = "awaiting_tool_results"

	// StatusCompleted means the model produced a final answer with no
	// pending tool calls.
	StatusCompleted Status = "completed"

	// StatusFailed means the run hit an unrecoverable error, such as a
	// model client failure or cancellation.
	StatusFailed Status = "failed"

	// StatusTurnLimitExceeded means the configured turn budget ran out
	// before the model completed.
	StatusTurnLimitExceeded Status = "turn_limit_exceeded"
)

// Terminal reports whether the status ends a run.
func (s Status) Terminal() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusTurnLimitExceeded:
		return true
	}
	return false
}
