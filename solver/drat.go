package solver

import "github.com/ericr/saturday/lit"

// DRATOp is the operation tag of a single DRAT proof line.
type DRATOp uint8

const (
	DRATAdd        DRATOp = iota // a clause was learnt.
	DRATDelete                   // a clause was removed from the database.
	DRATDelayedDel               // a clause is scheduled for deletion once no longer locked.
	DRATFinalizeDel               // flush any delayed deletions.
)

// DRATSink receives the proof trace a verifier needs to check this
// solver's unsatisfiability claims. Clauses are passed as DIMACS-style
// signed integers, matching the external interface the rest of the
// module uses.
type DRATSink interface {
	Write(op DRATOp, lits []int)
	Close() error
}

// noopDRATSink discards every proof line. It is the default sink so a
// caller who never asked for a proof pays nothing for the bookkeeping.
type noopDRATSink struct{}

func (noopDRATSink) Write(DRATOp, []int) {}
func (noopDRATSink) Close() error        { return nil }

// SetDRATSink installs where this solver's proof trace is written.
// Passing nil restores the no-op default.
func (s *Solver) SetDRATSink(sink DRATSink) {
	if sink == nil {
		sink = noopDRATSink{}
	}
	s.drat = sink
}

func (s *Solver) dratAdd(lits []lit.Lit) {
	s.drat.Write(DRATAdd, s.externalInts(lits))
}

func (s *Solver) dratDelete(lits []lit.Lit) {
	s.drat.Write(DRATDelete, s.externalInts(lits))
}

func (s *Solver) externalInts(lits []lit.Lit) []int {
	out := make([]int, 0, len(lits))
	for _, l := range lits {
		out = append(out, s.externalInt(l))
	}
	return out
}

// externalInt converts an internal literal back to the caller's original
// DIMACS variable numbering.
func (s *Solver) externalInt(l lit.Lit) int {
	v := s.internalVars[l.Index()]
	if l.Sign() {
		return -v
	}
	return v
}
