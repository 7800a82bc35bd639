package domain

import "time"

// SyncRecord is one event returned by a provider. It is consumed by the
// reconciliation step and never persisted as-is.
type SyncRecord struct {
	RemoteID string `yaml:"remote_id" json:"remote_id" validate:"required"`
	Title    string `yaml:"title" json:"title" validate:"required"`
	Content  string `yaml:"content,omitempty" json:"content,omitempty"`
}

// SyncOutcome is the reconciliation decision taken for one record
type SyncOutcome int

const (
	OutcomeSkipped SyncOutcome = iota
	OutcomeCreated
	OutcomeUpdated
	OutcomeFailed
)

func (o SyncOutcome) String() string {
	switch o {
	case OutcomeCreated:
		return "created"
	case OutcomeUpdated:
		return "updated"
	case OutcomeFailed:
		return "failed"
	default:
		return "skipped"
	}
}

// SyncStats holds statistics from a sync run
type SyncStats struct {
	Fetched  int
	Created  int
	Updated  int
	Skipped  int
	Failed   int
	Duration time.Duration
}

// Record tallies one outcome
func (s *SyncStats) Record(o SyncOutcome) {
	switch o {
	case OutcomeCreated:
		s.Created++
	case OutcomeUpdated:
		s.Updated++
	case OutcomeFailed:
		s.Failed++
	default:
		s.Skipped++
	}
}
