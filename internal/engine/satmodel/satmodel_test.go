package satmodel_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wildforge/gearsolver/internal/engine"
	"github.com/wildforge/gearsolver/internal/engine/satmodel"
	"github.com/wildforge/gearsolver/internal/entities/gear"
	"github.com/wildforge/gearsolver/internal/errors"
)

// newCatalog returns a minimal consistent catalog: one plain piece per body
// slot and one plain weapon. Tests append to or replace its entries.
func newCatalog() *gear.Catalog {
	c := &gear.Catalog{}
	for _, category := range gear.SlotCategories() {
		c.Pieces = append(c.Pieces, gear.EquipmentPiece{
			ID:       gear.PieceID(string(category) + "-plain"),
			Name:     string(category) + " plain",
			Category: category,
		})
	}
	c.Weapons = append(c.Weapons, gear.Weapon{
		ID:    "blade-plain",
		Name:  "Plain Blade",
		Class: "long-sword",
	})
	return c
}

func standardSkill(id gear.SkillID, maxLevel int) gear.Skill {
	return gear.Skill{ID: id, Name: string(id), MaxLevel: maxLevel, Kind: gear.SkillStandard}
}

// setPieceSkills replaces the skill grants of the piece in the given category
func setPieceSkills(c *gear.Catalog, category gear.SlotCategory, skills map[gear.SkillID]int) {
	for i := range c.Pieces {
		if c.Pieces[i].Category == category {
			c.Pieces[i].Skills = skills
			return
		}
	}
}

func solve(t *testing.T, c *gear.Catalog, req *engine.Request) *engine.Solution {
	t.Helper()
	out, err := satmodel.New().Solve(context.Background(), &engine.SolveInput{Catalog: c, Request: req})
	require.NoError(t, err)
	require.Equal(t, engine.StatusOptimal, out.Status)
	require.NotNil(t, out.Solution)
	return out.Solution
}

func TestStandardSkillCapsAtMaxLevel(t *testing.T) {
	testCases := []struct {
		name      string
		points    []int // per body slot, in canonical order
		wantLevel int
	}{
		{name: "no points at all", points: []int{0, 0, 0, 0, 0}, wantLevel: 0},
		{name: "below max", points: []int{1, 1, 0, 0, 0}, wantLevel: 2},
		{name: "exactly max", points: []int{2, 1, 0, 0, 0}, wantLevel: 3},
		{name: "excess points are inert", points: []int{2, 2, 2, 2, 2}, wantLevel: 3},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := newCatalog()
			c.Skills = []gear.Skill{standardSkill("attack", 3)}
			for i, category := range gear.SlotCategories() {
				if tc.points[i] > 0 {
					setPieceSkills(c, category, map[gear.SkillID]int{"attack": tc.points[i]})
				}
			}

			sol := solve(t, c, &engine.Request{Skills: []engine.SkillRequest{{Skill: "attack", Weight: 1}}})
			require.Equal(t, tc.wantLevel, sol.SkillLevels["attack"])
		})
	}
}

func TestGroupSkillThreshold(t *testing.T) {
	const threshold = 3

	testCases := []struct {
		name      string
		points    int
		wantLevel int
	}{
		{name: "one below threshold grants nothing", points: threshold - 1, wantLevel: 0},
		{name: "exactly threshold activates", points: threshold, wantLevel: threshold},
		{name: "above threshold keeps counting", points: threshold + 1, wantLevel: threshold + 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := newCatalog()
			c.Skills = []gear.Skill{{ID: "guardian", Name: "guardian", MaxLevel: 5, Kind: gear.SkillGroup, Threshold: threshold}}
			setPieceSkills(c, gear.SlotHead, map[gear.SkillID]int{"guardian": tc.points})

			sol := solve(t, c, &engine.Request{Skills: []engine.SkillRequest{{Skill: "guardian", Weight: 1}}})
			require.Equal(t, tc.wantLevel, sol.SkillLevels["guardian"])
		})
	}
}

func TestSeriesSkillLadder(t *testing.T) {
	// thresholds: 2 points -> level 1, 4 points -> level 2
	steps := []gear.SkillStep{{Threshold: 2, Level: 1}, {Threshold: 4, Level: 2}}
	wantByRaw := []int{0, 0, 1, 1, 2, 2}

	for raw, want := range wantByRaw {
		c := newCatalog()
		c.Skills = []gear.Skill{{ID: "symbiosis", Name: "symbiosis", MaxLevel: 2, Kind: gear.SkillSeries, Steps: steps}}
		if raw > 0 {
			setPieceSkills(c, gear.SlotHead, map[gear.SkillID]int{"symbiosis": raw})
		}

		sol := solve(t, c, &engine.Request{Skills: []engine.SkillRequest{{Skill: "symbiosis", Weight: 1}}})
		require.Equalf(t, want, sol.SkillLevels["symbiosis"], "raw=%d", raw)
	}
}

func TestJewelCapacityOneLargeSlot(t *testing.T) {
	c := newCatalog()
	c.Skills = []gear.Skill{standardSkill("attack", 3), standardSkill("defense", 3)}
	// one size-3 socket in the whole loadout
	for i := range c.Pieces {
		if c.Pieces[i].Category == gear.SlotHead {
			c.Pieces[i].Slots = []gear.SlotTier{gear.TierLarge}
		}
	}
	c.Jewels = []gear.Jewel{
		{ID: "gem-large", Size: gear.TierLarge, Skills: map[gear.SkillID]int{"attack": 1}},
		{ID: "gem-small", Size: gear.TierSmall, Skills: map[gear.SkillID]int{"defense": 1}},
	}

	sol := solve(t, c, &engine.Request{Skills: []engine.SkillRequest{
		{Skill: "attack", Weight: 1},
		{Skill: "defense", Weight: 1},
	}})

	// both jewels compete for the single socket; only one fits
	placed := 0
	for _, jp := range sol.Jewels {
		placed += jp.Count
	}
	require.Equal(t, 1, placed)
	require.Equal(t, 1, sol.SkillLevels["attack"]+sol.SkillLevels["defense"])
	require.Equal(t, 0, sol.FreeSlots[gear.TierLarge])
}

func TestJewelSizeCompatibility(t *testing.T) {
	c := newCatalog()
	c.Skills = []gear.Skill{standardSkill("attack", 5)}
	// sockets: one small and one medium; the medium jewel fits only the medium socket
	for i := range c.Pieces {
		if c.Pieces[i].Category == gear.SlotChest {
			c.Pieces[i].Slots = []gear.SlotTier{gear.TierSmall, gear.TierMedium}
		}
	}
	c.Jewels = []gear.Jewel{
		{ID: "gem-medium", Size: gear.TierMedium, Skills: map[gear.SkillID]int{"attack": 1}},
	}

	sol := solve(t, c, &engine.Request{Skills: []engine.SkillRequest{{Skill: "attack", Weight: 1}}})

	require.Equal(t, 1, sol.SkillLevels["attack"])
	require.Len(t, sol.Jewels, 1)
	require.Equal(t, gear.TierMedium, sol.Jewels[0].Tier)
	require.Equal(t, 1, sol.Jewels[0].Count)
	require.Equal(t, 1, sol.FreeSlots[gear.TierSmall])
}

func TestFreeSlotPreferenceLargestTierFirst(t *testing.T) {
	c := newCatalog()
	c.Pieces = append(c.Pieces, gear.EquipmentPiece{
		ID:       "head-large-socket",
		Name:     "head with large socket",
		Category: gear.SlotHead,
		Slots:    []gear.SlotTier{gear.TierLarge},
	})
	// the plain head has no sockets; with nothing requested the solver must
	// still prefer the roomier piece for its free large socket
	sol := solve(t, c, &engine.Request{})

	require.Equal(t, gear.PieceID("head-large-socket"), sol.Pieces[gear.SlotHead])
	require.Equal(t, 1, sol.FreeSlots[gear.TierLarge])
}

func TestFreeSlotTieBreakBySmallerTiers(t *testing.T) {
	c := newCatalog()
	c.Pieces = append(c.Pieces,
		gear.EquipmentPiece{
			ID:       "chest-medium",
			Name:     "chest medium",
			Category: gear.SlotChest,
			Slots:    []gear.SlotTier{gear.TierMedium},
		},
		gear.EquipmentPiece{
			ID:       "chest-medium-small",
			Name:     "chest medium and small",
			Category: gear.SlotChest,
			Slots:    []gear.SlotTier{gear.TierMedium, gear.TierSmall},
		},
	)

	sol := solve(t, c, &engine.Request{})

	require.Equal(t, gear.PieceID("chest-medium-small"), sol.Pieces[gear.SlotChest])
	require.Equal(t, 1, sol.FreeSlots[gear.TierMedium])
	require.Equal(t, 1, sol.FreeSlots[gear.TierSmall])
}

func TestLevelCapOverride(t *testing.T) {
	t.Run("standard skill", func(t *testing.T) {
		c := newCatalog()
		c.Skills = []gear.Skill{standardSkill("attack", 5)}
		setPieceSkills(c, gear.SlotHead, map[gear.SkillID]int{"attack": 4})

		sol := solve(t, c, &engine.Request{Skills: []engine.SkillRequest{{Skill: "attack", Weight: 1, LevelCap: 2}}})
		require.Equal(t, 2, sol.SkillLevels["attack"])
	})

	t.Run("group skill capped below threshold", func(t *testing.T) {
		// activation still needs 3 points; the cap only bounds the level
		c := newCatalog()
		c.Skills = []gear.Skill{{ID: "guardian", Name: "guardian", MaxLevel: 3, Kind: gear.SkillGroup, Threshold: 3}}
		setPieceSkills(c, gear.SlotHead, map[gear.SkillID]int{"guardian": 3})

		sol := solve(t, c, &engine.Request{Skills: []engine.SkillRequest{{Skill: "guardian", Weight: 1, LevelCap: 1}}})
		require.Equal(t, 1, sol.SkillLevels["guardian"])
	})
}

func TestUnrequestedSkillsAccumulate(t *testing.T) {
	c := newCatalog()
	c.Skills = []gear.Skill{standardSkill("attack", 3), standardSkill("sneak", 2)}
	setPieceSkills(c, gear.SlotHead, map[gear.SkillID]int{"attack": 1, "sneak": 2})

	sol := solve(t, c, &engine.Request{Skills: []engine.SkillRequest{{Skill: "attack", Weight: 1}}})

	require.Equal(t, 1, sol.SkillLevels["attack"])
	// sneak was never requested but rides along on the forced head piece
	require.Equal(t, 2, sol.SkillLevels["sneak"])
}

func TestBonusSkillsBreakTies(t *testing.T) {
	c := newCatalog()
	c.Skills = []gear.Skill{standardSkill("attack", 3), standardSkill("sneak", 2)}
	c.Pieces = append(c.Pieces, gear.EquipmentPiece{
		ID:       "waist-sneak",
		Name:     "waist with sneak",
		Category: gear.SlotWaist,
		Skills:   map[gear.SkillID]int{"sneak": 1},
	})

	// primary and secondary are identical for both waist candidates; the
	// bonus term must pick the one granting an incidental skill
	sol := solve(t, c, &engine.Request{Skills: []engine.SkillRequest{{Skill: "attack", Weight: 1}}})

	require.Equal(t, gear.PieceID("waist-sneak"), sol.Pieces[gear.SlotWaist])
	require.Equal(t, 1, sol.SkillLevels["sneak"])
}

func TestSolutionInvariants(t *testing.T) {
	c := newCatalog()
	c.Skills = []gear.Skill{
		standardSkill("attack", 7),
		standardSkill("defense", 5),
		{ID: "guardian", Name: "guardian", MaxLevel: 4, Kind: gear.SkillGroup, Threshold: 2},
	}
	c.Pieces = append(c.Pieces,
		gear.EquipmentPiece{ID: "head-attack", Category: gear.SlotHead, Skills: map[gear.SkillID]int{"attack": 2}, Slots: []gear.SlotTier{gear.TierSmall}},
		gear.EquipmentPiece{ID: "chest-guard", Category: gear.SlotChest, Skills: map[gear.SkillID]int{"guardian": 1}, Slots: []gear.SlotTier{gear.TierMedium}},
		gear.EquipmentPiece{ID: "arms-mixed", Category: gear.SlotArms, Skills: map[gear.SkillID]int{"attack": 1, "defense": 1}},
	)
	c.Charms = []gear.Charm{
		{ID: "charm-attack", Skills: map[gear.SkillID]int{"attack": 2}},
		{ID: "charm-guard", Skills: map[gear.SkillID]int{"guardian": 2}},
	}
	c.Weapons = append(c.Weapons, gear.Weapon{
		ID: "blade-socketed", Class: "long-sword", Slots: []gear.SlotTier{gear.TierLarge},
		Skills: map[gear.SkillID]int{"attack": 1},
	})
	c.Jewels = []gear.Jewel{
		{ID: "gem-attack", Size: gear.TierSmall, Skills: map[gear.SkillID]int{"attack": 1}},
		{ID: "gem-defense", Size: gear.TierMedium, Skills: map[gear.SkillID]int{"defense": 1}},
	}

	sol := solve(t, c, &engine.Request{
		Weapon: engine.WeaponFilter{Class: "long-sword"},
		Skills: []engine.SkillRequest{
			{Skill: "attack", Weight: 3},
			{Skill: "guardian", Weight: 2},
			{Skill: "defense", Weight: 1},
		},
	})

	// exactly one piece per body slot
	require.Len(t, sol.Pieces, len(gear.SlotCategories()))
	pieceByID := make(map[gear.PieceID]*gear.EquipmentPiece)
	for i := range c.Pieces {
		pieceByID[c.Pieces[i].ID] = &c.Pieces[i]
	}
	for category, id := range sol.Pieces {
		piece, ok := pieceByID[id]
		require.Truef(t, ok, "unknown piece %q", id)
		require.Equal(t, category, piece.Category)
	}

	// the weapon comes from the filtered set
	require.Contains(t, []gear.WeaponID{"blade-plain", "blade-socketed"}, sol.Weapon)

	// every placement respects size compatibility and tier capacity
	avail := map[gear.SlotTier]int{}
	for _, id := range sol.Pieces {
		for _, tier := range pieceByID[id].Slots {
			avail[tier]++
		}
	}
	for i := range c.Weapons {
		if c.Weapons[i].ID == sol.Weapon {
			for _, tier := range c.Weapons[i].Slots {
				avail[tier]++
			}
		}
	}
	jewelByID := make(map[gear.JewelID]*gear.Jewel)
	for i := range c.Jewels {
		jewelByID[c.Jewels[i].ID] = &c.Jewels[i]
	}
	placed := map[gear.SlotTier]int{}
	for _, jp := range sol.Jewels {
		require.GreaterOrEqual(t, jp.Tier, jewelByID[jp.Jewel].Size)
		placed[jp.Tier] += jp.Count
	}
	for _, tier := range gear.SlotTiers() {
		require.LessOrEqualf(t, placed[tier], avail[tier], "tier %d overfilled", tier)
		require.Equal(t, avail[tier]-placed[tier], sol.FreeSlots[tier])
	}
}

func TestDescentReachesTrueOptimum(t *testing.T) {
	// two candidates per body slot pull in different directions, so the
	// first model found is rarely optimal and the descent must re-solve the
	// same constraints with a tightening objective several times before it
	// can prove the optimum
	c := newCatalog()
	c.Skills = []gear.Skill{
		{ID: "guardian", Name: "guardian", MaxLevel: 5, Kind: gear.SkillGroup, Threshold: 3},
		standardSkill("attack", 5),
	}
	for _, category := range gear.SlotCategories() {
		setPieceSkills(c, category, map[gear.SkillID]int{"attack": 1})
		c.Pieces = append(c.Pieces, gear.EquipmentPiece{
			ID:       gear.PieceID(string(category) + "-guard"),
			Name:     string(category) + " guard",
			Category: category,
			Skills:   map[gear.SkillID]int{"guardian": 1},
		})
	}

	// picking k guard pieces scores 2k + (5-k) for k >= 3 and 5-k below the
	// threshold, so the unique optimum is all five guard pieces
	sol := solve(t, c, &engine.Request{Skills: []engine.SkillRequest{
		{Skill: "guardian", Weight: 2},
		{Skill: "attack", Weight: 1},
	}})

	require.Equal(t, 5, sol.SkillLevels["guardian"])
	require.Equal(t, 0, sol.SkillLevels["attack"])
	for _, category := range gear.SlotCategories() {
		require.Equal(t, gear.PieceID(string(category)+"-guard"), sol.Pieces[category])
	}
}

func TestIdempotentSkillLevels(t *testing.T) {
	c := newCatalog()
	c.Skills = []gear.Skill{standardSkill("attack", 5), standardSkill("defense", 3)}
	c.Pieces = append(c.Pieces,
		gear.EquipmentPiece{ID: "head-a", Category: gear.SlotHead, Skills: map[gear.SkillID]int{"attack": 2}},
		gear.EquipmentPiece{ID: "head-d", Category: gear.SlotHead, Skills: map[gear.SkillID]int{"defense": 2}},
		gear.EquipmentPiece{ID: "legs-a", Category: gear.SlotLegs, Skills: map[gear.SkillID]int{"attack": 1, "defense": 1}},
	)
	req := &engine.Request{Skills: []engine.SkillRequest{
		{Skill: "attack", Weight: 2},
		{Skill: "defense", Weight: 1},
	}}

	first := solve(t, c, req)
	second := solve(t, c, req)
	require.Equal(t, first.SkillLevels, second.SkillLevels)
}

func TestWeaponFilterMatchesNothing(t *testing.T) {
	c := newCatalog()
	_, err := satmodel.New().Solve(context.Background(), &engine.SolveInput{
		Catalog: c,
		Request: &engine.Request{Weapon: engine.WeaponFilter{Class: "hammer"}},
	})
	require.Error(t, err)
	require.True(t, errors.IsFailedPrecondition(err), "want FAILED_PRECONDITION, got %v", err)
}

func TestEmptyBodySlotCategory(t *testing.T) {
	c := newCatalog()
	// drop the legs candidate entirely
	pieces := c.Pieces[:0]
	for _, p := range c.Pieces {
		if p.Category != gear.SlotLegs {
			pieces = append(pieces, p)
		}
	}
	c.Pieces = pieces

	_, err := satmodel.New().Solve(context.Background(), &engine.SolveInput{Catalog: c, Request: &engine.Request{}})
	require.Error(t, err)
	require.True(t, errors.IsFailedPrecondition(err), "want FAILED_PRECONDITION, got %v", err)
}

func TestUnknownRequestedSkill(t *testing.T) {
	c := newCatalog()
	_, err := satmodel.New().Solve(context.Background(), &engine.SolveInput{
		Catalog: c,
		Request: &engine.Request{Skills: []engine.SkillRequest{{Skill: "ghost", Weight: 1}}},
	})
	require.Error(t, err)
	require.True(t, errors.IsInvalidArgument(err), "want INVALID_ARGUMENT, got %v", err)
}

func TestWeightsSteerTies(t *testing.T) {
	// one medium socket, two jewels, only one fits: the heavier skill wins
	c := newCatalog()
	c.Skills = []gear.Skill{standardSkill("attack", 3), standardSkill("defense", 3)}
	for i := range c.Pieces {
		if c.Pieces[i].Category == gear.SlotHead {
			c.Pieces[i].Slots = []gear.SlotTier{gear.TierMedium}
		}
	}
	c.Jewels = []gear.Jewel{
		{ID: "gem-attack", Size: gear.TierMedium, Skills: map[gear.SkillID]int{"attack": 1}},
		{ID: "gem-defense", Size: gear.TierMedium, Skills: map[gear.SkillID]int{"defense": 1}},
	}

	sol := solve(t, c, &engine.Request{Skills: []engine.SkillRequest{
		{Skill: "attack", Weight: 1},
		{Skill: "defense", Weight: 5},
	}})

	require.Equal(t, 1, sol.SkillLevels["defense"])
	require.Equal(t, 0, sol.SkillLevels["attack"])
}
