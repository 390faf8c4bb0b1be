package solver

import "github.com/ericr/saturday/lit"

// DataSync is the collaborator port: a hook for sharing root-level unit
// literals and binary clauses with other solver instances working the
// same problem in parallel, the way CryptoMiniSat4's DataSync class
// exchanges facts between threads between restarts. This solver runs a
// single search thread, so the default implementation is a no-op; the
// interface exists so a caller embedding this package into a
// multi-instance portfolio can plug in a real transport.
type DataSync interface {
	// SyncIn returns any unit literals and binary clauses other solvers
	// have discovered since the last call.
	SyncIn() (units []lit.Lit, bins [][2]lit.Lit)
	// SyncOut shares this solver's root-level units and learnt binary
	// clauses with its collaborators.
	SyncOut(units []lit.Lit, bins [][2]lit.Lit)
}

// noopDataSync is the default DataSync: it has nothing to share and
// nothing to receive.
type noopDataSync struct{}

func (noopDataSync) SyncIn() ([]lit.Lit, [][2]lit.Lit)  { return nil, nil }
func (noopDataSync) SyncOut([]lit.Lit, [][2]lit.Lit) {}

// SetDataSync installs a collaborator port. Passing nil restores the
// no-op default.
func (s *Solver) SetDataSync(d DataSync) {
	if d == nil {
		d = noopDataSync{}
	}
	s.dataSync = d
}

// syncAtRootLevel pulls in facts from collaborators and pushes out every
// root-level unit on the trail and every learnt binary clause this solver
// holds (the whole set on each call, not only what is new since the last
// sync), run between search phases while the solver sits at decision
// level 0.
func (s *Solver) syncAtRootLevel() bool {
	units, bins := s.dataSync.SyncIn()

	for _, u := range units {
		if !s.enqueue(u, PropBy{}) {
			return false
		}
	}
	for _, b := range bins {
		s.addBinary(b[0], b[1], false)
	}
	if !s.propagate().IsNone() {
		return false
	}

	ownUnits := make([]lit.Lit, 0)
	for i := len(s.trail) - 1; i >= 0 && s.level[s.trail[i].Index()] == 0; i-- {
		ownUnits = append(ownUnits, s.trail[i])
	}
	s.dataSync.SyncOut(ownUnits, s.binaryPairs(true))

	return true
}
