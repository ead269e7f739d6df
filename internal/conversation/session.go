package conversation

import (
	"encoding/json"
	"time"
)

// Step is a session's position in the create-message flow.
type Step string

const (
	StepAwaitingName Step = "awaiting_name"
	StepAwaitingMood Step = "awaiting_mood"
	StepComplete     Step = "complete"
)

// Session is one user's in-memory progress through the flow. Sessions are
// never persisted; a restart discards them.
type Session struct {
	UserID    int64
	Step      Step
	Recipient string
	Mood      string
	StartedAt time.Time
}

// snapshot is the versioned wire form stored opaquely with interaction
// records.
type snapshot struct {
	Version   int    `json:"version"`
	Step      Step   `json:"step"`
	Recipient string `json:"recipient,omitempty"`
	Mood      string `json:"mood,omitempty"`
	StartedAt string `json:"started_at"`
}

// Snapshot serializes the session for the recorder. Returns nil on a nil
// session.
func (s *Session) Snapshot() []byte {
	if s == nil {
		return nil
	}
	b, err := json.Marshal(snapshot{
		Version:   1,
		Step:      s.Step,
		Recipient: s.Recipient,
		Mood:      s.Mood,
		StartedAt: s.StartedAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return nil
	}
	return b
}
