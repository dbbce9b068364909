package output

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/wildforge/gearsolver/internal/engine"
	"github.com/wildforge/gearsolver/internal/entities/gear"
	"github.com/wildforge/gearsolver/internal/errors"
)

// ExportXLSX writes the solve result to an xlsx workbook with a Loadout
// sheet and a Skills sheet.
func ExportXLSX(path string, in *ReportInput) error {
	if err := in.Validate(); err != nil {
		return err
	}
	sol := in.Result.Solution
	names := newNameIndex(in.Catalog)

	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	loadoutSheet := "Loadout"
	_ = f.SetSheetName("Sheet1", loadoutSheet)
	skillSheet := "Skills"
	_, _ = f.NewSheet(skillSheet)

	f.SetCellValue(loadoutSheet, "A1", "Slot")
	f.SetCellValue(loadoutSheet, "B1", "Equipment")
	f.SetCellValue(loadoutSheet, "C1", "ID")

	row := 2
	for _, category := range gear.SlotCategories() {
		id := sol.Pieces[category]
		f.SetCellValue(loadoutSheet, cell("A", row), string(category))
		f.SetCellValue(loadoutSheet, cell("B", row), names.piece(id))
		f.SetCellValue(loadoutSheet, cell("C", row), string(id))
		row++
	}
	if sol.Charm != "" {
		f.SetCellValue(loadoutSheet, cell("A", row), "charm")
		f.SetCellValue(loadoutSheet, cell("B", row), names.charm(sol.Charm))
		f.SetCellValue(loadoutSheet, cell("C", row), string(sol.Charm))
		row++
	}
	f.SetCellValue(loadoutSheet, cell("A", row), "weapon")
	f.SetCellValue(loadoutSheet, cell("B", row), names.weapon(sol.Weapon))
	f.SetCellValue(loadoutSheet, cell("C", row), string(sol.Weapon))
	row++

	for _, p := range sol.Jewels {
		f.SetCellValue(loadoutSheet, cell("A", row), fmt.Sprintf("jewel (size %d socket)", p.Tier))
		f.SetCellValue(loadoutSheet, cell("B", row), fmt.Sprintf("%dx %s", p.Count, names.jewel(p.Jewel)))
		f.SetCellValue(loadoutSheet, cell("C", row), string(p.Jewel))
		row++
	}

	row++
	f.SetCellValue(loadoutSheet, cell("A", row), "status")
	f.SetCellValue(loadoutSheet, cell("B", row), string(in.Result.Status))
	row++
	f.SetCellValue(loadoutSheet, cell("A", row), "elapsed")
	f.SetCellValue(loadoutSheet, cell("B", row), in.Result.Elapsed.Round(timePrecision).String())
	row++
	for i := len(gear.SlotTiers()) - 1; i >= 0; i-- {
		tier := gear.SlotTiers()[i]
		f.SetCellValue(loadoutSheet, cell("A", row), fmt.Sprintf("free size %d sockets", tier))
		f.SetCellValue(loadoutSheet, cell("B", row), sol.FreeSlots[tier])
		row++
	}

	f.SetCellValue(skillSheet, "A1", "Skill")
	f.SetCellValue(skillSheet, "B1", "Level")
	f.SetCellValue(skillSheet, "C1", "Requested")
	requested := make(map[gear.SkillID]engine.SkillRequest)
	if in.Request != nil {
		for _, sr := range in.Request.Skills {
			requested[sr.Skill] = sr
		}
	}
	for i, id := range sortedSkillIDs(sol.SkillLevels) {
		r := i + 2
		f.SetCellValue(skillSheet, cell("A", r), names.skill(id))
		f.SetCellValue(skillSheet, cell("B", r), sol.SkillLevels[id])
		if sr, ok := requested[id]; ok {
			f.SetCellValue(skillSheet, cell("C", r), fmt.Sprintf("weight %d", sr.Weight))
		}
	}

	if err := f.SaveAs(path); err != nil {
		return errors.Wrapf(err, "failed to write workbook %s", path)
	}
	return nil
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
