package solver

import "github.com/ericr/saturday/lit"

// reasonKind tags what kind of antecedent produced a propagation, so the
// solver can dispatch without a virtual call: a binary clause's antecedent
// lives inline in PropBy, a longer clause's antecedent is a pointer.
type reasonKind uint8

const (
	reasonNone   reasonKind = iota
	reasonBinary            // forced by a two-literal clause, never heap-allocated.
	reasonLong              // forced by a *Clause of three or more literals.
)

// PropBy is the antecedent of a propagated or conflicting assignment. It
// replaces the teacher's bare *Clause reason slot: binary antecedents are
// represented inline instead of requiring a heap clause, and a zero PropBy
// (reasonNone) distinguishes a decision from a propagation.
type PropBy struct {
	kind   reasonKind
	binA   lit.Lit // clause-form (possibly false) literal of a binary antecedent.
	binB   lit.Lit // the other clause-form literal of a binary antecedent.
	clause *Clause
}

// IsNone reports whether this PropBy represents no antecedent at all, i.e.
// the corresponding variable was set by decision rather than propagation.
func (p PropBy) IsNone() bool {
	return p.kind == reasonNone
}

// calcReason returns the antecedent literals for pivot, or for the whole
// clause when pivot is lit.Undef.
func (p PropBy) calcReason(pivot lit.Lit) []lit.Lit {
	switch p.kind {
	case reasonBinary:
		if pivot == lit.Undef {
			return []lit.Lit{p.binA.Not(), p.binB.Not()}
		}
		other := p.binA
		if pivot == p.binA {
			other = p.binB
		}
		return []lit.Lit{other.Not()}
	case reasonLong:
		return p.clause.calcReason(pivot)
	default:
		return nil
	}
}
