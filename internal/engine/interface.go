// Package engine defines the optimization engine contract: one stateless
// solve over a catalog snapshot and an optimization request.
package engine

//go:generate mockgen -destination=mock/mock_engine.go -package=enginemock github.com/wildforge/gearsolver/internal/engine Engine

import (
	"context"
)

// Engine builds and solves one constraint model per request.
//
// Solve returns a feasible, objective-optimal Solution, or a solution flagged
// StatusFeasible when the context deadline expired before optimality was
// proven. It returns errors.CodeFailedPrecondition when the catalog cannot
// yield any loadout (an empty body-slot category, or a weapon filter matching
// nothing), errors.CodeInvalidArgument when the request references unknown
// skills, errors.CodeCanceled when the context is cancelled mid-solve,
// errors.CodeDeadlineExceeded when the deadline expires before even one
// feasible solution was found, and errors.CodeInternal when the underlying
// solver misbehaves.
type Engine interface {
	Solve(ctx context.Context, input *SolveInput) (*SolveOutput, error)
}
