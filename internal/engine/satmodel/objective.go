package satmodel

import (
	"github.com/wildforge/gearsolver/internal/entities/gear"
)

// objective composes the single maximization target from the three
// prioritized goals: requested skill levels, then free sockets (largest tier
// first), then incidental bonus skill levels. Scale separation is derived
// from the catalog's actual bounds, so no amount of a lower-priority term
// can ever outweigh one unit of a higher-priority term, regardless of how
// the catalog grows.
func (b *build) objective() linExpr {
	// the bonus term counts one point per effective level across the
	// whole catalog, so its ceiling separates it from the socket bands
	bonusMax := 0
	for i := range b.catalog.Skills {
		bonusMax += b.levels[b.catalog.Skills[i].ID].upperBound()
	}

	unit := bonusMax + 1
	tierWeight := make(map[gear.SlotTier]int, len(gear.SlotTiers()))
	for _, tier := range gear.SlotTiers() {
		tierWeight[tier] = unit
		unit *= b.maxAvail[tier] + 1
	}
	primaryUnit := unit

	var obj linExpr

	// primary: weighted effective levels of the requested skills
	for _, sr := range b.request.Skills {
		if sr.Weight == 0 {
			continue
		}
		for _, t := range b.levels[sr.Skill] {
			obj = obj.add(t.coeff*sr.Weight*primaryUnit, t.lit)
		}
	}

	// secondary: free sockets per tier, largest tier dominating
	for _, tier := range gear.SlotTiers() {
		w := tierWeight[tier]
		for _, t := range b.avail[tier] {
			obj = obj.add(t.coeff*w, t.lit)
		}
		for _, t := range b.placed[tier] {
			obj = obj.add(-t.coeff*w, t.lit)
		}
	}

	// tertiary: every effective level counts, requested or not
	for i := range b.catalog.Skills {
		for _, t := range b.levels[b.catalog.Skills[i].ID] {
			obj = obj.add(t.coeff, t.lit)
		}
	}

	return obj
}
