package gear

import (
	"github.com/wildforge/gearsolver/internal/errors"
)

// Catalog is the read-only reference data one optimization runs against.
// It is assembled by a loader (file or repository) and never mutated after
// construction; concurrent solves may share one Catalog freely.
type Catalog struct {
	Skills  []Skill          `json:"skills"`
	Pieces  []EquipmentPiece `json:"pieces"`
	Charms  []Charm          `json:"charms,omitempty"`
	Weapons []Weapon         `json:"weapons"`
	Jewels  []Jewel          `json:"jewels,omitempty"`
}

// Skill returns the skill with the given ID, or nil if unknown
func (c *Catalog) Skill(id SkillID) *Skill {
	for i := range c.Skills {
		if c.Skills[i].ID == id {
			return &c.Skills[i]
		}
	}
	return nil
}

// PiecesByCategory groups the armor pieces by body slot, preserving catalog order
func (c *Catalog) PiecesByCategory() map[SlotCategory][]*EquipmentPiece {
	byCategory := make(map[SlotCategory][]*EquipmentPiece, len(SlotCategories()))
	for i := range c.Pieces {
		p := &c.Pieces[i]
		byCategory[p.Category] = append(byCategory[p.Category], p)
	}
	return byCategory
}

// Validate checks every skill's variant invariants and that entity skill
// grants reference known skills. Deeper consistency is the loader's problem.
func (c *Catalog) Validate() error {
	known := make(map[SkillID]bool, len(c.Skills))
	for i := range c.Skills {
		if err := c.Skills[i].Validate(); err != nil {
			return errors.Wrapf(err, "skill %q", c.Skills[i].ID)
		}
		if known[c.Skills[i].ID] {
			return errors.InvalidArgumentf("duplicate skill %q", c.Skills[i].ID)
		}
		known[c.Skills[i].ID] = true
	}

	check := func(owner string, grants map[SkillID]int) error {
		for id, points := range grants {
			if !known[id] {
				return errors.InvalidArgumentf("%s references unknown skill %q", owner, id)
			}
			if points < 1 {
				return errors.InvalidArgumentf("%s grants non-positive points for skill %q", owner, id)
			}
		}
		return nil
	}

	for i := range c.Pieces {
		if err := check("piece "+string(c.Pieces[i].ID), c.Pieces[i].Skills); err != nil {
			return err
		}
	}
	for i := range c.Charms {
		if err := check("charm "+string(c.Charms[i].ID), c.Charms[i].Skills); err != nil {
			return err
		}
	}
	for i := range c.Weapons {
		if err := check("weapon "+string(c.Weapons[i].ID), c.Weapons[i].Skills); err != nil {
			return err
		}
	}
	for i := range c.Jewels {
		if err := check("jewel "+string(c.Jewels[i].ID), c.Jewels[i].Skills); err != nil {
			return err
		}
	}
	return nil
}
