package satmodel

import (
	"sort"

	"github.com/wildforge/gearsolver/internal/engine"
	"github.com/wildforge/gearsolver/internal/entities/gear"
	"github.com/wildforge/gearsolver/internal/errors"
)

// pieceVar ties an armor piece to its selection literal
type pieceVar struct {
	lit   int
	piece *gear.EquipmentPiece
}

// charmVar ties a charm to its selection literal
type charmVar struct {
	lit   int
	charm *gear.Charm
}

// weaponVar ties a weapon candidate to its selection literal
type weaponVar struct {
	lit    int
	weapon *gear.Weapon
}

// placementVar holds the usage literals for one jewel in one socket tier:
// the number of copies placed there is the number of true literals.
type placementVar struct {
	jewel *gear.Jewel
	tier  gear.SlotTier
	lits  []int
}

// build is one constraint model instance: selection and placement literals,
// per-skill raw contribution and effective-level expressions, and per-tier
// socket availability. One build per request; nothing is shared or reused.
type build struct {
	m       *pbModel
	catalog *gear.Catalog
	request *engine.Request

	pieces  map[gear.SlotCategory][]pieceVar
	charms  []charmVar
	weapons []weaponVar
	jewels  []placementVar

	raw      map[gear.SkillID]linExpr
	levels   map[gear.SkillID]linExpr
	avail    map[gear.SlotTier]linExpr
	placed   map[gear.SlotTier]linExpr
	maxAvail map[gear.SlotTier]int
}

// newBuild assembles the complete model for one request. It fails only on
// catalog inconsistencies: a body slot with no candidates or a weapon filter
// matching nothing. Skill requests can never make the model infeasible; the
// bare loadout with empty sockets is always admissible.
func newBuild(catalog *gear.Catalog, request *engine.Request) (*build, error) {
	b := &build{
		m:       &pbModel{},
		catalog: catalog,
		request: request,
		pieces:  make(map[gear.SlotCategory][]pieceVar),
		raw:     make(map[gear.SkillID]linExpr),
		levels:  make(map[gear.SkillID]linExpr),
		avail:   make(map[gear.SlotTier]linExpr),
		placed:  make(map[gear.SlotTier]linExpr),
	}

	if err := b.addSelections(); err != nil {
		return nil, err
	}
	b.addJewels()
	b.addSkillLevels()
	return b, nil
}

// addSelections creates the selection literals and exclusivity constraints,
// and accumulates every entity's skill points and socket counts into the
// shared linear expressions.
func (b *build) addSelections() error {
	byCategory := b.catalog.PiecesByCategory()
	for _, category := range gear.SlotCategories() {
		candidates := byCategory[category]
		if len(candidates) == 0 {
			return errors.FailedPreconditionf("catalog has no equipment pieces for body slot %q", category)
		}

		lits := make([]int, 0, len(candidates))
		for _, piece := range candidates {
			lit := b.m.newVar()
			lits = append(lits, lit)
			b.pieces[category] = append(b.pieces[category], pieceVar{lit: lit, piece: piece})
			b.addContribution(lit, piece.Skills, piece.Slots)
		}
		b.m.exactlyOne(lits)
	}

	charmLits := make([]int, 0, len(b.catalog.Charms))
	for i := range b.catalog.Charms {
		charm := &b.catalog.Charms[i]
		lit := b.m.newVar()
		charmLits = append(charmLits, lit)
		b.charms = append(b.charms, charmVar{lit: lit, charm: charm})
		b.addContribution(lit, charm.Skills, nil)
	}
	b.m.atMostOne(charmLits)

	weaponLits := make([]int, 0, len(b.catalog.Weapons))
	for i := range b.catalog.Weapons {
		weapon := &b.catalog.Weapons[i]
		if !b.request.Weapon.Matches(weapon) {
			continue
		}
		lit := b.m.newVar()
		weaponLits = append(weaponLits, lit)
		b.weapons = append(b.weapons, weaponVar{lit: lit, weapon: weapon})
		b.addContribution(lit, weapon.Skills, weapon.Slots)
	}
	if len(weaponLits) == 0 {
		return errors.FailedPrecondition("weapon filter matches no weapon in the catalog")
	}
	b.m.exactlyOne(weaponLits)

	return nil
}

// addContribution wires one selection literal into the skill point and
// socket availability sums. An unselected entity contributes zero by
// construction; no separate implication is needed.
func (b *build) addContribution(lit int, skills map[gear.SkillID]int, slots []gear.SlotTier) {
	for _, id := range sortedSkillIDs(skills) {
		b.raw[id] = b.raw[id].add(skills[id], lit)
	}
	for _, tier := range gear.SlotTiers() {
		if n := countSlots(slots, tier); n > 0 {
			b.avail[tier] = b.avail[tier].add(n, lit)
		}
	}
}

func countSlots(slots []gear.SlotTier, tier gear.SlotTier) int {
	n := 0
	for _, s := range slots {
		if s == tier {
			n++
		}
	}
	return n
}

// sortedSkillIDs keeps constraint emission deterministic so identical
// requests produce bit-identical models.
func sortedSkillIDs(skills map[gear.SkillID]int) []gear.SkillID {
	ids := make([]gear.SkillID, 0, len(skills))
	for id := range skills {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
