package satmodel

import (
	"github.com/wildforge/gearsolver/internal/entities/gear"
)

// addSkillLevels derives, for every skill in the catalog, a linear
// expression whose value equals the skill's effective level under its
// activation rule. Unrequested skills get an expression too; they feed the
// bonus-skill objective term.
func (b *build) addSkillLevels() {
	caps := make(map[gear.SkillID]int, len(b.request.Skills))
	for _, sr := range b.request.Skills {
		if sr.LevelCap > 0 {
			caps[sr.Skill] = sr.LevelCap
		}
	}

	for i := range b.catalog.Skills {
		skill := &b.catalog.Skills[i]
		levelCap := skill.MaxLevel
		// a requested cap is an additional upper bound on the effective
		// level; activation thresholds are untouched
		if c, ok := caps[skill.ID]; ok && c < levelCap {
			levelCap = c
		}
		b.levels[skill.ID] = b.levelExpr(skill, levelCap)
	}
}

func (b *build) levelExpr(skill *gear.Skill, levelCap int) linExpr {
	raw := b.raw[skill.ID]
	ub := raw.upperBound()
	if ub == 0 {
		// no entity grants this skill; effective level is identically zero
		return nil
	}

	switch skill.Kind {
	case gear.SkillGroup:
		return b.groupLevels(raw, ub, skill.Threshold, levelCap)
	case gear.SkillSeries:
		return b.seriesLevels(raw, ub, skill.Steps, levelCap)
	default:
		return b.standardLevels(raw, ub, levelCap)
	}
}

// standardLevels encodes effective = min(raw, cap) as unary at-least
// literals: level literal l is true iff raw >= l, so the sum of the literals
// is exactly the capped raw value. Excess points past the cap are inert.
func (b *build) standardLevels(raw linExpr, ub, levelCap int) linExpr {
	var e linExpr
	for l := 1; l <= min(levelCap, ub); l++ {
		e = e.add(1, b.m.reifyAtLeast(raw, l))
	}
	return e
}

// groupLevels encodes the threshold rule: zero below the threshold, then
// min(raw, cap). Activation implies raw >= threshold, so the first
// min(threshold, cap) levels ride on the activation literal and only levels
// past the threshold need their own at-least literal.
func (b *build) groupLevels(raw linExpr, ub, threshold, levelCap int) linExpr {
	if threshold > ub {
		// unreachable activation; the skill can never grant anything
		return nil
	}

	activated := b.m.reifyAtLeast(raw, threshold)
	base := min(threshold, levelCap)
	e := linExpr{{coeff: base, lit: activated}}
	for l := base + 1; l <= min(levelCap, ub); l++ {
		e = e.add(1, b.m.reifyAtLeast(raw, l))
	}
	return e
}

// seriesLevels encodes the step ladder in telescoped form: each step
// contributes its level increment over the previous step whenever raw
// reaches its threshold. For raw inside [T_i, T_i+1) exactly the first i
// step literals are true and the increments sum to level_i, which is the
// interval semantics without explicit interval booleans.
func (b *build) seriesLevels(raw linExpr, ub int, steps []gear.SkillStep, levelCap int) linExpr {
	var e linExpr
	prev := 0
	for _, step := range steps {
		level := min(step.Level, levelCap)
		if level <= prev {
			continue
		}
		if step.Threshold > ub {
			break
		}
		e = e.add(level-prev, b.m.reifyAtLeast(raw, step.Threshold))
		prev = level
	}
	return e
}
