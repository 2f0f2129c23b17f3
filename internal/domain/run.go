package domain

import "time"

// RunArtifact is the persisted record of one simulation run, kept for
// traceability alongside the exported data files.
type RunArtifact struct {
	ID string

	Params Params

	StartedAt  time.Time
	FinishedAt time.Time

	SampleCount int
	MaxB        float64 // T
	LoopArea    float64 // J/m³ per cycle
	Closed      bool

	Outputs []string // paths of files written by the exporters
}
