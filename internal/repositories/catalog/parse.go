package catalog

import (
	"github.com/tidwall/gjson"

	"github.com/wildforge/gearsolver/internal/entities/gear"
	"github.com/wildforge/gearsolver/internal/errors"
)

// ParseCatalog reads a catalog document from raw JSON and validates it.
// The document layout matches what PutSnapshot stores, so exported snapshots
// round-trip through this parser.
func ParseCatalog(data []byte) (*gear.Catalog, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.InvalidArgument("catalog document is not valid JSON")
	}
	doc := gjson.ParseBytes(data)

	c := &gear.Catalog{}

	doc.Get("skills").ForEach(func(_, v gjson.Result) bool {
		s := gear.Skill{
			ID:        gear.SkillID(v.Get("id").String()),
			Name:      v.Get("name").String(),
			MaxLevel:  int(v.Get("max_level").Int()),
			Kind:      gear.SkillKind(v.Get("kind").String()),
			Threshold: int(v.Get("threshold").Int()),
		}
		v.Get("steps").ForEach(func(_, step gjson.Result) bool {
			s.Steps = append(s.Steps, gear.SkillStep{
				Threshold: int(step.Get("threshold").Int()),
				Level:     int(step.Get("level").Int()),
			})
			return true
		})
		c.Skills = append(c.Skills, s)
		return true
	})

	doc.Get("pieces").ForEach(func(_, v gjson.Result) bool {
		c.Pieces = append(c.Pieces, gear.EquipmentPiece{
			ID:       gear.PieceID(v.Get("id").String()),
			Name:     v.Get("name").String(),
			Category: gear.SlotCategory(v.Get("category").String()),
			Skills:   parseGrants(v.Get("skills")),
			Slots:    parseSlots(v.Get("slots")),
		})
		return true
	})

	doc.Get("charms").ForEach(func(_, v gjson.Result) bool {
		c.Charms = append(c.Charms, gear.Charm{
			ID:     gear.CharmID(v.Get("id").String()),
			Name:   v.Get("name").String(),
			Skills: parseGrants(v.Get("skills")),
		})
		return true
	})

	doc.Get("weapons").ForEach(func(_, v gjson.Result) bool {
		c.Weapons = append(c.Weapons, gear.Weapon{
			ID:     gear.WeaponID(v.Get("id").String()),
			Name:   v.Get("name").String(),
			Class:  v.Get("class").String(),
			Skills: parseGrants(v.Get("skills")),
			Slots:  parseSlots(v.Get("slots")),
		})
		return true
	})

	doc.Get("jewels").ForEach(func(_, v gjson.Result) bool {
		c.Jewels = append(c.Jewels, gear.Jewel{
			ID:     gear.JewelID(v.Get("id").String()),
			Name:   v.Get("name").String(),
			Size:   gear.SlotTier(v.Get("size").Int()),
			Skills: parseGrants(v.Get("skills")),
		})
		return true
	})

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func parseGrants(v gjson.Result) map[gear.SkillID]int {
	if !v.Exists() {
		return nil
	}
	grants := make(map[gear.SkillID]int)
	v.ForEach(func(key, points gjson.Result) bool {
		grants[gear.SkillID(key.String())] = int(points.Int())
		return true
	})
	if len(grants) == 0 {
		return nil
	}
	return grants
}

func parseSlots(v gjson.Result) []gear.SlotTier {
	var slots []gear.SlotTier
	v.ForEach(func(_, tier gjson.Result) bool {
		slots = append(slots, gear.SlotTier(tier.Int()))
		return true
	})
	return slots
}
