// Package loadout implements the orchestrator that ties catalog storage and
// the optimization engine into one Optimize operation.
package loadout

//go:generate mockgen -destination=mock/mock_service.go -package=loadoutmock github.com/wildforge/gearsolver/internal/orchestrators/loadout Service

import (
	"context"
	"log/slog"
	"time"

	"github.com/wildforge/gearsolver/internal/engine"
	"github.com/wildforge/gearsolver/internal/errors"
	"github.com/wildforge/gearsolver/internal/pkg/idgen"
	"github.com/wildforge/gearsolver/internal/repositories/catalog"
)

// Service defines the interface for loadout optimization operations
type Service interface {
	// Optimize loads the catalog snapshot, runs the solve and returns the
	// best loadout found
	Optimize(ctx context.Context, input *OptimizeInput) (*OptimizeOutput, error)
}

// Config holds the dependencies for the loadout orchestrator
type Config struct {
	Repository  catalog.Repository
	Engine      engine.Engine
	IDGenerator idgen.Generator
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Repository == nil {
		vb.RequiredField("Repository")
	}
	if c.Engine == nil {
		vb.RequiredField("Engine")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}

	return vb.Build()
}

type orchestrator struct {
	repo   catalog.Repository
	engine engine.Engine
	idGen  idgen.Generator
}

// NewOrchestrator creates a loadout orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		repo:   cfg.Repository,
		engine: cfg.Engine,
		idGen:  cfg.IDGenerator,
	}, nil
}

func (o *orchestrator) Optimize(ctx context.Context, input *OptimizeInput) (*OptimizeOutput, error) {
	if input == nil || input.Request == nil {
		return nil, errors.InvalidArgument("request is required")
	}
	if input.TimeLimit < 0 {
		return nil, errors.InvalidArgument("time limit must be >= 0")
	}

	solveID := o.idGen.Generate()

	snapshot, err := o.repo.GetSnapshot(ctx, catalog.GetSnapshotInput{
		SnapshotID: input.SnapshotID,
	})
	if err != nil {
		return nil, err
	}

	slog.Info("optimization requested",
		"solve_id", solveID,
		"snapshot_id", snapshot.SnapshotID,
		"requested_skills", len(input.Request.Skills),
		"time_limit", input.TimeLimit,
	)

	solveCtx := ctx
	if input.TimeLimit > 0 {
		var cancel context.CancelFunc
		solveCtx, cancel = context.WithTimeout(ctx, input.TimeLimit)
		defer cancel()
	}

	start := time.Now()
	result, err := o.engine.Solve(solveCtx, &engine.SolveInput{
		Catalog: snapshot.Catalog,
		Request: input.Request,
	})
	elapsed := time.Since(start)
	if err != nil {
		slog.Error("optimization failed",
			"solve_id", solveID,
			"elapsed", elapsed,
			"error", err,
		)
		return nil, err
	}

	slog.Info("optimization finished",
		"solve_id", solveID,
		"status", result.Status,
		"elapsed", elapsed,
	)

	return &OptimizeOutput{
		SolveID:    solveID,
		SnapshotID: snapshot.SnapshotID,
		Solution:   result.Solution,
		Status:     result.Status,
		Elapsed:    elapsed,
	}, nil
}
