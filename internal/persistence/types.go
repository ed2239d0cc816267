package persistence

import "time"

// Run is one recorded pipeline invocation over a directory.
type Run struct {
	ID            string
	Directory     string
	StartedAt     time.Time
	FinishedAt    time.Time
	ForcedRemoved int
	ExactRemoved  int
	NearRemoved   int
}

// Removal reasons, matching the outcome's three sequences.
const (
	ReasonForced = "forced"
	ReasonExact  = "exact"
	ReasonNear   = "near"
)

// Removal is one file a run deleted.
type Removal struct {
	RunID  string
	Path   string
	Reason string
}
