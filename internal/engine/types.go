package engine

import (
	"github.com/wildforge/gearsolver/internal/entities/gear"
	"github.com/wildforge/gearsolver/internal/errors"
)

// SolveInput carries the catalog snapshot and the optimization request
type SolveInput struct {
	Catalog *gear.Catalog
	Request *Request
}

// SolveOutput carries the decoded solution and the solver status
type SolveOutput struct {
	Solution *Solution
	Status   SolveStatus
}

// SolveStatus reports how trustworthy the returned solution is
type SolveStatus string

// Solve statuses
const (
	// StatusOptimal means optimality was proven
	StatusOptimal SolveStatus = "optimal"
	// StatusFeasible means the time limit expired; the solution is the best
	// one found so far but a better one may exist
	StatusFeasible SolveStatus = "feasible"
)

// Request is one optimization request: which skills matter, how much, and
// which weapons are admissible.
type Request struct {
	Weapon WeaponFilter
	Skills []SkillRequest
}

// WeaponFilter restricts the weapon candidates. ID pins one weapon, Class
// admits every weapon of that class; both empty admits the whole catalog.
type WeaponFilter struct {
	ID    gear.WeaponID
	Class string
}

// Matches reports whether the weapon passes the filter
func (f WeaponFilter) Matches(w *gear.Weapon) bool {
	if f.ID != "" && w.ID != f.ID {
		return false
	}
	if f.Class != "" && w.Class != f.Class {
		return false
	}
	return true
}

// SkillRequest is one desired skill. Weight 0 means "no preference, but still
// eligible for bonus accounting". LevelCap 0 means no override; a positive
// cap bounds the effective level after activation rules are applied.
type SkillRequest struct {
	Skill    gear.SkillID
	Weight   int
	LevelCap int
}

// Validate checks the request against the catalog's skills
func (r *Request) Validate(catalog *gear.Catalog) error {
	vb := errors.NewValidationBuilder()

	seen := make(map[gear.SkillID]bool, len(r.Skills))
	for i, sr := range r.Skills {
		if sr.Skill == "" {
			vb.Fieldf("Skills", "entry %d: skill ID is required", i)
			continue
		}
		if catalog.Skill(sr.Skill) == nil {
			vb.Fieldf("Skills", "entry %d: unknown skill %q", i, sr.Skill)
		}
		if seen[sr.Skill] {
			vb.Fieldf("Skills", "entry %d: duplicate skill %q", i, sr.Skill)
		}
		seen[sr.Skill] = true
		if sr.Weight < 0 {
			vb.Fieldf("Skills", "entry %d: weight must be >= 0", i)
		}
		if sr.LevelCap < 0 {
			vb.Fieldf("Skills", "entry %d: level cap must be >= 0", i)
		}
	}

	return vb.Build()
}

// JewelPlacement records how many copies of one jewel sit in sockets of one tier
type JewelPlacement struct {
	Jewel gear.JewelID
	Tier  gear.SlotTier
	Count int
}

// Solution is one feasible loadout: exactly one piece per body slot, at most
// one charm, exactly one weapon from the filtered set, and a jewel placement
// that respects socket capacity and size compatibility.
type Solution struct {
	Pieces map[gear.SlotCategory]gear.PieceID
	Charm  gear.CharmID
	Weapon gear.WeaponID
	Jewels []JewelPlacement

	// SkillLevels holds the achieved effective level for every requested
	// skill (even at 0) and for any other skill that ended up active.
	SkillLevels map[gear.SkillID]int

	// FreeSlots counts unoccupied sockets per tier across the whole loadout
	FreeSlots map[gear.SlotTier]int
}
