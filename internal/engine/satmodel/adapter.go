package satmodel

import (
	"context"
	"slices"

	"github.com/crillab/gophersat/solver"

	"github.com/wildforge/gearsolver/internal/engine"
	"github.com/wildforge/gearsolver/internal/entities/gear"
	"github.com/wildforge/gearsolver/internal/errors"
)

// Engine is the gophersat-backed implementation of engine.Engine. It holds
// no state across requests; every Solve builds and discards its own model.
type Engine struct{}

var _ engine.Engine = (*Engine)(nil)

// New creates the solver-backed engine
func New() *Engine {
	return &Engine{}
}

// Solve builds the constraint model for the request and minimizes it to a
// provably optimal loadout. The context deadline is the solve time limit:
// when it expires the best solution found so far is returned with
// StatusFeasible. Cancellation aborts without a partial result.
func (e *Engine) Solve(ctx context.Context, input *SolveInput) (*SolveOutput, error) {
	if input == nil || input.Catalog == nil || input.Request == nil {
		return nil, errors.InvalidArgument("catalog and request are required")
	}
	if err := input.Request.Validate(input.Catalog); err != nil {
		return nil, err
	}

	b, err := newBuild(input.Catalog, input.Request)
	if err != nil {
		return nil, err
	}

	obj := b.objective()
	model, status, err := b.maximize(ctx, obj)
	if err != nil {
		return nil, err
	}

	return &SolveOutput{
		Solution: b.decode(model),
		Status:   status,
	}, nil
}

// SolveInput aliases the engine contract input
type SolveInput = engine.SolveInput

// SolveOutput aliases the engine contract output
type SolveOutput = engine.SolveOutput

// maximize runs a linear SAT-UNSAT descent: solve, evaluate the objective on
// the model, require a strictly better value, repeat. UNSAT after at least
// one model proves optimality; UNSAT on the very first iteration means the
// model itself is broken, since leaving every socket empty is always
// feasible.
func (b *build) maximize(ctx context.Context, obj linExpr) ([]bool, engine.SolveStatus, error) {
	constrs := slices.Clone(b.m.constrs)
	objUB := obj.upperBound()

	var best []bool
	for {
		status, s := solveStep(ctx, constrs)
		switch status {
		case solver.Sat:
			model := slices.Clone(s.Model())
			best = model
			value := obj.eval(model)
			if value >= objUB {
				return best, engine.StatusOptimal, nil
			}
			if c, ok := normalizeAtLeast(obj, value+1); ok {
				constrs = append(constrs, c)
				continue
			}
			// a strictly better value is unrepresentable
			return best, engine.StatusOptimal, nil

		case solver.Unsat:
			if best == nil {
				return nil, "", errors.Internal("constraint model admits no assignment; model construction is defective")
			}
			return best, engine.StatusOptimal, nil

		default:
			switch ctx.Err() {
			case context.DeadlineExceeded:
				if best == nil {
					return nil, "", errors.DeadlineExceeded("time limit expired before any feasible solution was found")
				}
				return best, engine.StatusFeasible, nil
			case context.Canceled:
				return nil, "", errors.Canceled("solve cancelled")
			default:
				return nil, "", errors.Internal("solver returned an indeterminate status")
			}
		}
	}
}

// solveStep runs one SAT call, honoring context expiry. gophersat has no
// interruption hook, so on expiry the worker goroutine is abandoned; it
// exits on its own once its solve returns. The constraints are deep-copied
// first: ParsePBConstrs mutates the slices it receives, and the descent loop
// re-parses the same constraints every iteration.
func solveStep(ctx context.Context, constrs []solver.PBConstr) (solver.Status, *solver.Solver) {
	s := solver.New(solver.ParsePBConstrs(clonePBConstrs(constrs)))

	done := make(chan solver.Status, 1)
	go func() {
		done <- s.Solve()
	}()

	select {
	case status := <-done:
		return status, s
	case <-ctx.Done():
		return solver.Indet, nil
	}
}

// decode translates a solver model back into a domain solution
func (b *build) decode(model []bool) *engine.Solution {
	sol := &engine.Solution{
		Pieces:      make(map[gear.SlotCategory]gear.PieceID, len(gear.SlotCategories())),
		SkillLevels: make(map[gear.SkillID]int),
		FreeSlots:   make(map[gear.SlotTier]int, len(gear.SlotTiers())),
	}

	for _, category := range gear.SlotCategories() {
		for _, pv := range b.pieces[category] {
			if litValue(pv.lit, model) {
				sol.Pieces[category] = pv.piece.ID
				break
			}
		}
	}
	for _, cv := range b.charms {
		if litValue(cv.lit, model) {
			sol.Charm = cv.charm.ID
			break
		}
	}
	for _, wv := range b.weapons {
		if litValue(wv.lit, model) {
			sol.Weapon = wv.weapon.ID
			break
		}
	}

	for _, pv := range b.jewels {
		count := 0
		for _, lit := range pv.lits {
			if litValue(lit, model) {
				count++
			}
		}
		if count > 0 {
			sol.Jewels = append(sol.Jewels, engine.JewelPlacement{
				Jewel: pv.jewel.ID,
				Tier:  pv.tier,
				Count: count,
			})
		}
	}

	for _, tier := range gear.SlotTiers() {
		sol.FreeSlots[tier] = b.avail[tier].eval(model) - b.placed[tier].eval(model)
	}

	for i := range b.catalog.Skills {
		id := b.catalog.Skills[i].ID
		if level := b.levels[id].eval(model); level > 0 {
			sol.SkillLevels[id] = level
		}
	}
	// requested skills always appear, achieved or not
	for _, sr := range b.request.Skills {
		if _, ok := sol.SkillLevels[sr.Skill]; !ok {
			sol.SkillLevels[sr.Skill] = 0
		}
	}

	return sol
}
