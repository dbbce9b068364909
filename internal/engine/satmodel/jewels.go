package satmodel

import (
	"github.com/wildforge/gearsolver/internal/entities/gear"
)

// addJewels creates the placement literals and capacity constraints. A jewel
// of size s may occupy any socket of tier >= s; each socket holds one jewel.
// Supply is unlimited, so the only bound on a jewel's usage is the socket
// capacity of the chosen loadout.
func (b *build) addJewels() {
	b.maxAvail = make(map[gear.SlotTier]int, len(gear.SlotTiers()))
	for _, tier := range gear.SlotTiers() {
		b.maxAvail[tier] = b.maxAvailable(tier)
	}

	for i := range b.catalog.Jewels {
		jewel := &b.catalog.Jewels[i]
		for tier := jewel.Size; tier <= gear.TierLarge; tier++ {
			n := b.maxAvail[tier]
			if n == 0 {
				continue
			}

			lits := make([]int, n)
			for k := range lits {
				lits[k] = b.m.newVar()
			}
			// copies are interchangeable; forcing copy k before copy k+1
			// removes the symmetric assignments
			for k := 0; k+1 < n; k++ {
				b.m.clause(lits[k], -lits[k+1])
			}

			b.jewels = append(b.jewels, placementVar{jewel: jewel, tier: tier, lits: lits})
			for _, lit := range lits {
				b.placed[tier] = b.placed[tier].add(1, lit)
				for _, id := range sortedSkillIDs(jewel.Skills) {
					b.raw[id] = b.raw[id].add(jewel.Skills[id], lit)
				}
			}
		}
	}

	// capacity per tier: every placement in tier t consumes one tier-t
	// socket of the selected loadout, smaller jewels included
	for _, tier := range gear.SlotTiers() {
		free := append(linExpr{}, b.avail[tier]...)
		b.m.atLeast(free.minus(b.placed[tier]), 0)
	}
}

// maxAvailable bounds the tier-t socket count over all admissible loadouts:
// the best piece of every category plus the best weapon candidate.
func (b *build) maxAvailable(tier gear.SlotTier) int {
	total := 0
	byCategory := b.catalog.PiecesByCategory()
	for _, category := range gear.SlotCategories() {
		most := 0
		for _, piece := range byCategory[category] {
			if n := piece.SlotCount(tier); n > most {
				most = n
			}
		}
		total += most
	}

	most := 0
	for i := range b.catalog.Weapons {
		weapon := &b.catalog.Weapons[i]
		if !b.request.Weapon.Matches(weapon) {
			continue
		}
		if n := weapon.SlotCount(tier); n > most {
			most = n
		}
	}
	return total + most
}
