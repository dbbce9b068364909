// Package satmodel implements the optimization engine on top of the
// gophersat pseudo-boolean solver. Equipment selection, jewel placement and
// effective skill levels are all encoded as boolean literals tied together by
// linear (pseudo-boolean) constraints; integer quantities are unary-encoded
// with catalog-derived bounds, which stay small for this domain.
package satmodel

import (
	"github.com/crillab/gophersat/solver"
)

// term is one weighted literal of a linear expression. A negative literal
// (DIMACS convention) denotes the negation of the variable.
type term struct {
	coeff int
	lit   int
}

// linExpr is a linear expression over boolean literals. It is the one
// aggregation primitive the whole model is built from: skill points, socket
// counts and objective terms are all sums of selection literals weighted by
// their contribution.
type linExpr []term

// add appends one weighted literal
func (e linExpr) add(coeff, lit int) linExpr {
	return append(e, term{coeff: coeff, lit: lit})
}

// minus appends the negation of another expression
func (e linExpr) minus(o linExpr) linExpr {
	for _, t := range o {
		e = append(e, term{coeff: -t.coeff, lit: t.lit})
	}
	return e
}

// upperBound returns the largest value the expression can take
func (e linExpr) upperBound() int {
	ub := 0
	for _, t := range e {
		if t.coeff > 0 {
			ub += t.coeff
		}
	}
	return ub
}

// eval computes the expression's value under a solver model
func (e linExpr) eval(model []bool) int {
	v := 0
	for _, t := range e {
		if litValue(t.lit, model) {
			v += t.coeff
		}
	}
	return v
}

func litValue(lit int, model []bool) bool {
	if lit < 0 {
		return !model[-lit-1]
	}
	return model[lit-1]
}

// pbModel accumulates variables and pseudo-boolean constraints
type pbModel struct {
	nbVars  int
	constrs []solver.PBConstr
}

// newVar allocates a fresh boolean variable and returns its positive literal
func (m *pbModel) newVar() int {
	m.nbVars++
	return m.nbVars
}

// clause adds a plain propositional clause
func (m *pbModel) clause(lits ...int) {
	m.constrs = append(m.constrs, solver.PropClause(lits...))
}

// exactlyOne constrains exactly one of the literals to be true
func (m *pbModel) exactlyOne(lits []int) {
	m.constrs = append(m.constrs, solver.AtLeast(lits, 1))
	if len(lits) > 1 {
		m.constrs = append(m.constrs, solver.AtMost(lits, 1))
	}
}

// atMostOne constrains at most one of the literals to be true
func (m *pbModel) atMostOne(lits []int) {
	if len(lits) > 1 {
		m.constrs = append(m.constrs, solver.AtMost(lits, 1))
	}
}

// atLeast adds the constraint sum(e) >= k. Negative coefficients are
// normalized away (c*x == c - c*!x), so the emitted constraint only carries
// positive weights, which is the form gophersat expects.
func (m *pbModel) atLeast(e linExpr, k int) {
	if c, ok := normalizeAtLeast(e, k); ok {
		m.constrs = append(m.constrs, c)
	}
}

// reifyAtLeast returns a literal b with b <=> sum(e) >= k. The expression
// must have non-negative coefficients only (raw point and socket sums always
// do). Both implication directions are encoded, so the equivalence is tight.
func (m *pbModel) reifyAtLeast(e linExpr, k int) int {
	b := m.newVar()
	ub := e.upperBound()

	switch {
	case k <= 0:
		m.clause(b)
	case k > ub:
		m.clause(-b)
	default:
		// b -> sum >= k, as sum - k*b >= 0
		m.atLeast(linExpr(append(e[:len(e):len(e)], term{coeff: -k, lit: b})), 0)
		// !b -> sum <= k-1, as -sum + ub*b >= 1-k
		m.atLeast(linExpr{}.minus(e).add(ub, b), 1-k)
	}
	return b
}

// clonePBConstrs deep-copies a constraint slice. gophersat's ParsePBConstrs
// sorts each constraint's Weights in place while leaving Lits untouched in
// the original, so feeding the same backing slices to a second solver call
// hands it a corrupted model. Every solver call gets its own copy.
func clonePBConstrs(constrs []solver.PBConstr) []solver.PBConstr {
	out := make([]solver.PBConstr, len(constrs))
	for i, c := range constrs {
		out[i] = solver.PBConstr{
			Lits:    append([]int(nil), c.Lits...),
			Weights: append([]int(nil), c.Weights...),
			AtLeast: c.AtLeast,
		}
	}
	return out
}

// normalizeAtLeast rewrites sum(e) >= k into positive-weight form. It
// returns ok=false when the constraint is trivially satisfied.
func normalizeAtLeast(e linExpr, k int) (solver.PBConstr, bool) {
	lits := make([]int, 0, len(e))
	weights := make([]int, 0, len(e))
	for _, t := range e {
		switch {
		case t.coeff == 0:
			continue
		case t.coeff < 0:
			lits = append(lits, -t.lit)
			weights = append(weights, -t.coeff)
			k -= t.coeff
		default:
			lits = append(lits, t.lit)
			weights = append(weights, t.coeff)
		}
	}
	if k <= 0 {
		return solver.PBConstr{}, false
	}
	return solver.GtEq(lits, weights, k), true
}
