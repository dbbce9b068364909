package loadout

import (
	"time"

	"github.com/wildforge/gearsolver/internal/engine"
)

// OptimizeInput defines the input for running one optimization
type OptimizeInput struct {
	// SnapshotID selects the catalog snapshot; empty means the repository default
	SnapshotID string

	// Request is the optimization request to solve
	Request *engine.Request

	// TimeLimit bounds the solve. Zero means no limit; the solve runs until
	// optimality is proven.
	TimeLimit time.Duration
}

// OptimizeOutput defines the output of one optimization
type OptimizeOutput struct {
	// SolveID uniquely identifies this run in logs and exports
	SolveID string

	// SnapshotID is the catalog snapshot the solution was computed against
	SnapshotID string

	Solution *engine.Solution
	Status   engine.SolveStatus

	// Elapsed is the wall-clock solve duration
	Elapsed time.Duration
}
