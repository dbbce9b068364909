package gear

// PieceID identifies an equipment piece
type PieceID string

// CharmID identifies a charm
type CharmID string

// WeaponID identifies a weapon
type WeaponID string

// JewelID identifies a jewel
type JewelID string

// SlotCategory is the body slot an equipment piece occupies
type SlotCategory string

// Body slot categories
const (
	SlotHead  SlotCategory = "head"
	SlotChest SlotCategory = "chest"
	SlotArms  SlotCategory = "arms"
	SlotWaist SlotCategory = "waist"
	SlotLegs  SlotCategory = "legs"
)

// SlotCategories returns all body slot categories in canonical order
func SlotCategories() []SlotCategory {
	return []SlotCategory{SlotHead, SlotChest, SlotArms, SlotWaist, SlotLegs}
}

// SlotTier is the size category of a jewel socket. Larger tiers accept
// smaller jewels, never the other way around.
type SlotTier int

// Jewel socket tiers
const (
	TierSmall  SlotTier = 1
	TierMedium SlotTier = 2
	TierLarge  SlotTier = 3
)

// SlotTiers returns all socket tiers in ascending size order
func SlotTiers() []SlotTier {
	return []SlotTier{TierSmall, TierMedium, TierLarge}
}

// EquipmentPiece is one armor piece: its body slot, skill point grants and
// jewel socket inventory.
type EquipmentPiece struct {
	ID       PieceID         `json:"id"`
	Name     string          `json:"name"`
	Category SlotCategory    `json:"category"`
	Skills   map[SkillID]int `json:"skills,omitempty"`
	Slots    []SlotTier      `json:"slots,omitempty"`
}

// SlotCount returns the number of sockets of exactly the given tier
func (p *EquipmentPiece) SlotCount(tier SlotTier) int {
	return countTier(p.Slots, tier)
}

// Charm is a single accessory; at most one charm is equipped at a time.
type Charm struct {
	ID     CharmID         `json:"id"`
	Name   string          `json:"name"`
	Skills map[SkillID]int `json:"skills,omitempty"`
}

// Weapon carries weapon-type skills and sockets. Selection is constrained by
// the request's weapon filter.
type Weapon struct {
	ID     WeaponID        `json:"id"`
	Name   string          `json:"name"`
	Class  string          `json:"class"`
	Skills map[SkillID]int `json:"skills,omitempty"`
	Slots  []SlotTier      `json:"slots,omitempty"`
}

// SlotCount returns the number of sockets of exactly the given tier
func (w *Weapon) SlotCount(tier SlotTier) int {
	return countTier(w.Slots, tier)
}

// Jewel is socketed into a slot of at least its size and grants skill points.
// Supply is unlimited; usage is bounded only by socket capacity.
type Jewel struct {
	ID     JewelID         `json:"id"`
	Name   string          `json:"name"`
	Size   SlotTier        `json:"size"`
	Skills map[SkillID]int `json:"skills,omitempty"`
}

func countTier(slots []SlotTier, tier SlotTier) int {
	n := 0
	for _, s := range slots {
		if s == tier {
			n++
		}
	}
	return n
}
