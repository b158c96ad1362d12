package models

import "time"

// Generation run statuses
const (
	RunStatusSucceeded = "succeeded"
	RunStatusFailed    = "failed"
)

// GenerationRun records one invocation of the report pipeline.
type GenerationRun struct {
	ID          int64
	InputPath   string
	OutputPath  string
	RecordCount int
	TypeCount   int
	GrandTotal  int
	Status      string
	Error       string
	DurationMS  int64
	CreatedAt   time.Time
}
