// Package gear implements the equipment catalog entities: skills, armor
// pieces, charms, weapons and jewels. These are data-only structs; all model
// building and solving is done by the engine, not here.
package gear

import (
	"github.com/wildforge/gearsolver/internal/errors"
)

// SkillID identifies a skill in the catalog
type SkillID string

// SkillKind selects the activation rule for a skill
type SkillKind string

// Skill activation kinds
const (
	// SkillStandard activates level by level as points accumulate
	SkillStandard SkillKind = "standard"
	// SkillGroup grants nothing below its threshold, then behaves like standard
	SkillGroup SkillKind = "group"
	// SkillSeries unlocks fixed levels at increasing point thresholds
	SkillSeries SkillKind = "series"
)

// SkillStep is one threshold of a series skill: accumulating at least
// Threshold points grants effective level Level.
type SkillStep struct {
	Threshold int `json:"threshold"`
	Level     int `json:"level"`
}

// Skill describes a gameplay effect unlocked by accumulating points from
// equipment, charm, weapon and jewels. Kind-specific data is only populated
// for the relevant kind: Threshold for group skills, Steps for series skills.
type Skill struct {
	ID        SkillID     `json:"id"`
	Name      string      `json:"name"`
	MaxLevel  int         `json:"max_level"`
	Kind      SkillKind   `json:"kind"`
	Threshold int         `json:"threshold,omitempty"`
	Steps     []SkillStep `json:"steps,omitempty"`
}

// Validate checks the variant invariants: thresholds strictly increasing,
// series levels non-decreasing and never above MaxLevel.
func (s *Skill) Validate() error {
	vb := errors.NewValidationBuilder()

	if s.ID == "" {
		vb.RequiredField("ID")
	}
	if s.MaxLevel < 1 {
		vb.InvalidField("MaxLevel", "must be at least 1")
	}

	switch s.Kind {
	case SkillStandard:
		if s.Threshold != 0 {
			vb.InvalidField("Threshold", "only group skills carry a threshold")
		}
		if len(s.Steps) != 0 {
			vb.InvalidField("Steps", "only series skills carry steps")
		}
	case SkillGroup:
		if s.Threshold < 1 {
			vb.InvalidField("Threshold", "group skills need a positive threshold")
		}
		if len(s.Steps) != 0 {
			vb.InvalidField("Steps", "only series skills carry steps")
		}
	case SkillSeries:
		if s.Threshold != 0 {
			vb.InvalidField("Threshold", "only group skills carry a threshold")
		}
		if len(s.Steps) == 0 {
			vb.RequiredField("Steps")
		}
		prevThreshold, prevLevel := 0, 0
		for i, step := range s.Steps {
			if step.Threshold <= prevThreshold {
				vb.Fieldf("Steps", "step %d: thresholds must be strictly increasing", i)
			}
			if step.Level < prevLevel {
				vb.Fieldf("Steps", "step %d: levels must be non-decreasing", i)
			}
			if step.Level > s.MaxLevel {
				vb.Fieldf("Steps", "step %d: level %d exceeds max level %d", i, step.Level, s.MaxLevel)
			}
			prevThreshold, prevLevel = step.Threshold, step.Level
		}
	default:
		vb.InvalidField("Kind", "unknown skill kind")
	}

	return vb.Build()
}
