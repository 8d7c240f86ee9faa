package model

// AttemptOutcome is the recorded result of one cascade strategy attempt.
type AttemptOutcome string

const (
	OutcomeOK    AttemptOutcome = "ok"
	OutcomeEmpty AttemptOutcome = "empty"
	OutcomeError AttemptOutcome = "error"
)

// TrailEntry records a single strategy attempt for observability. One
// entry is appended per attempted strategy regardless of outcome.
type TrailEntry struct {
	Signal    string         `json:"signal"`
	Strategy  string         `json:"strategy"`
	ElapsedMS int64          `json:"elapsed_ms"`
	Outcome   AttemptOutcome `json:"outcome"`
	Error     string         `json:"error,omitempty"`
}
