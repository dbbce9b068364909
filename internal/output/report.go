// Package output renders optimization results for humans: a plain text
// report for the terminal and an xlsx export for spreadsheets.
package output

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/wildforge/gearsolver/internal/engine"
	"github.com/wildforge/gearsolver/internal/entities/gear"
	"github.com/wildforge/gearsolver/internal/errors"
	"github.com/wildforge/gearsolver/internal/orchestrators/loadout"
)

// timePrecision keeps reported durations readable
const timePrecision = time.Millisecond

// ReportInput bundles a solve result with the catalog it ran against, which
// supplies display names for the IDs in the solution.
type ReportInput struct {
	Catalog *gear.Catalog
	Result  *loadout.OptimizeOutput

	// Request is optional; when present the export annotates requested skills
	Request *engine.Request
}

// Validate checks that everything needed for rendering is present
func (in *ReportInput) Validate() error {
	if in == nil || in.Catalog == nil || in.Result == nil || in.Result.Solution == nil {
		return errors.InvalidArgument("catalog and solve result are required")
	}
	return nil
}

// WriteReport renders the solution as a plain text report
func WriteReport(w io.Writer, in *ReportInput) error {
	if err := in.Validate(); err != nil {
		return err
	}
	sol := in.Result.Solution
	names := newNameIndex(in.Catalog)

	fmt.Fprintf(w, "solve %s  status=%s  elapsed=%s\n", in.Result.SolveID, in.Result.Status, in.Result.Elapsed.Round(timePrecision))
	fmt.Fprintf(w, "snapshot %s\n\n", in.Result.SnapshotID)

	fmt.Fprintln(w, "Equipment")
	for _, category := range gear.SlotCategories() {
		id := sol.Pieces[category]
		fmt.Fprintf(w, "  %-6s %s\n", category, names.piece(id))
	}
	if sol.Charm != "" {
		fmt.Fprintf(w, "  %-6s %s\n", "charm", names.charm(sol.Charm))
	}
	fmt.Fprintf(w, "  %-6s %s\n", "weapon", names.weapon(sol.Weapon))

	if len(sol.Jewels) > 0 {
		fmt.Fprintln(w, "\nJewels")
		placements := append([]engine.JewelPlacement(nil), sol.Jewels...)
		sort.Slice(placements, func(i, j int) bool {
			if placements[i].Tier != placements[j].Tier {
				return placements[i].Tier > placements[j].Tier
			}
			return placements[i].Jewel < placements[j].Jewel
		})
		for _, p := range placements {
			fmt.Fprintf(w, "  %dx %s (size %d socket)\n", p.Count, names.jewel(p.Jewel), p.Tier)
		}
	}

	fmt.Fprintln(w, "\nSkills")
	for _, id := range sortedSkillIDs(sol.SkillLevels) {
		fmt.Fprintf(w, "  %-24s %d\n", names.skill(id), sol.SkillLevels[id])
	}

	fmt.Fprintln(w, "\nFree sockets")
	for i := len(gear.SlotTiers()) - 1; i >= 0; i-- {
		tier := gear.SlotTiers()[i]
		fmt.Fprintf(w, "  size %d: %d\n", tier, sol.FreeSlots[tier])
	}

	return nil
}

func sortedSkillIDs(levels map[gear.SkillID]int) []gear.SkillID {
	ids := make([]gear.SkillID, 0, len(levels))
	for id := range levels {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// nameIndex maps catalog IDs to display names, falling back to the raw ID
// when the catalog has no name for it
type nameIndex struct {
	catalog *gear.Catalog
}

func newNameIndex(c *gear.Catalog) *nameIndex {
	return &nameIndex{catalog: c}
}

func (n *nameIndex) skill(id gear.SkillID) string {
	if s := n.catalog.Skill(id); s != nil && s.Name != "" {
		return s.Name
	}
	return string(id)
}

func (n *nameIndex) piece(id gear.PieceID) string {
	for i := range n.catalog.Pieces {
		if n.catalog.Pieces[i].ID == id && n.catalog.Pieces[i].Name != "" {
			return n.catalog.Pieces[i].Name
		}
	}
	return string(id)
}

func (n *nameIndex) charm(id gear.CharmID) string {
	for i := range n.catalog.Charms {
		if n.catalog.Charms[i].ID == id && n.catalog.Charms[i].Name != "" {
			return n.catalog.Charms[i].Name
		}
	}
	return string(id)
}

func (n *nameIndex) weapon(id gear.WeaponID) string {
	for i := range n.catalog.Weapons {
		if n.catalog.Weapons[i].ID == id && n.catalog.Weapons[i].Name != "" {
			return n.catalog.Weapons[i].Name
		}
	}
	return string(id)
}

func (n *nameIndex) jewel(id gear.JewelID) string {
	for i := range n.catalog.Jewels {
		if n.catalog.Jewels[i].ID == id && n.catalog.Jewels[i].Name != "" {
			return n.catalog.Jewels[i].Name
		}
	}
	return string(id)
}
