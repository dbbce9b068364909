package testutils

import (
	"github.com/wildforge/gearsolver/internal/entities/gear"
)

// SampleCatalog builds a small but fully populated catalog: every body slot
// covered, all three skill kinds, charms, two weapon classes and jewels of
// every size. Solves against it are fast and deterministic.
func SampleCatalog() *gear.Catalog {
	return &gear.Catalog{
		Skills: []gear.Skill{
			{ID: "attack", Name: "Attack Boost", MaxLevel: 7, Kind: gear.SkillStandard},
			{ID: "defense", Name: "Defense Boost", MaxLevel: 3, Kind: gear.SkillStandard},
			{ID: "guardian", Name: "Guardian's Protection", MaxLevel: 4, Kind: gear.SkillGroup, Threshold: 3},
			{ID: "symbiosis", Name: "Symbiosis", MaxLevel: 2, Kind: gear.SkillSeries,
				Steps: []gear.SkillStep{{Threshold: 2, Level: 1}, {Threshold: 4, Level: 2}}},
		},
		Pieces: []gear.EquipmentPiece{
			{ID: "helm-iron", Name: "Iron Helm", Category: gear.SlotHead,
				Skills: map[gear.SkillID]int{"attack": 2}, Slots: []gear.SlotTier{gear.TierSmall}},
			{ID: "helm-guard", Name: "Guardian Helm", Category: gear.SlotHead,
				Skills: map[gear.SkillID]int{"guardian": 1, "defense": 1}},
			{ID: "mail-iron", Name: "Iron Mail", Category: gear.SlotChest,
				Skills: map[gear.SkillID]int{"attack": 1, "defense": 1}, Slots: []gear.SlotTier{gear.TierMedium}},
			{ID: "mail-guard", Name: "Guardian Mail", Category: gear.SlotChest,
				Skills: map[gear.SkillID]int{"guardian": 2}},
			{ID: "braces-iron", Name: "Iron Braces", Category: gear.SlotArms,
				Skills: map[gear.SkillID]int{"symbiosis": 2}},
			{ID: "belt-iron", Name: "Iron Belt", Category: gear.SlotWaist,
				Slots: []gear.SlotTier{gear.TierSmall, gear.TierSmall}},
			{ID: "greaves-iron", Name: "Iron Greaves", Category: gear.SlotLegs,
				Skills: map[gear.SkillID]int{"attack": 1}, Slots: []gear.SlotTier{gear.TierLarge}},
		},
		Charms: []gear.Charm{
			{ID: "charm-attack", Name: "Attack Charm", Skills: map[gear.SkillID]int{"attack": 2}},
			{ID: "charm-guard", Name: "Guardian Charm", Skills: map[gear.SkillID]int{"guardian": 1}},
		},
		Weapons: []gear.Weapon{
			{ID: "blade-iron", Name: "Iron Blade", Class: "long-sword",
				Skills: map[gear.SkillID]int{"attack": 1}, Slots: []gear.SlotTier{gear.TierMedium}},
			{ID: "hammer-iron", Name: "Iron Hammer", Class: "hammer",
				Skills: map[gear.SkillID]int{"defense": 1}},
		},
		Jewels: []gear.Jewel{
			{ID: "gem-attack", Name: "Attack Gem", Size: gear.TierSmall, Skills: map[gear.SkillID]int{"attack": 1}},
			{ID: "gem-defense", Name: "Defense Gem", Size: gear.TierMedium, Skills: map[gear.SkillID]int{"defense": 1}},
			{ID: "gem-symbiosis", Name: "Symbiosis Gem", Size: gear.TierLarge, Skills: map[gear.SkillID]int{"symbiosis": 1}},
		},
	}
}
