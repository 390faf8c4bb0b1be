package solver

import "github.com/ericr/saturday/lit"

// binWatch is a binary clause's other literal, stored inline in the watch
// list so a two-literal clause never needs a *Clause allocation.
type binWatch struct {
	other     lit.Lit
	redundant bool
}

// longWatch is a watch-list entry for a clause of three or more literals.
// blocker caches the clause's first literal so the propagator can often
// skip dereferencing the clause entirely, as gophersat's wlist does.
type longWatch struct {
	blocker lit.Lit
	clause  *Clause
}

// growWatches extends the binary and long watch-list tables to cover a
// freshly registered variable.
func (s *Solver) growWatches() {
	s.binWatches = append(s.binWatches, nil, nil)
	s.longWatches = append(s.longWatches, nil, nil)
}

// addBinary registers a two-literal clause directly into the binary watch
// lists, under both literals' negations, never allocating a *Clause.
func (s *Solver) addBinary(a, b lit.Lit, redundant bool) {
	s.binWatches[a.Not()] = append(s.binWatches[a.Not()], binWatch{other: b, redundant: redundant})
	s.binWatches[b.Not()] = append(s.binWatches[b.Not()], binWatch{other: a, redundant: redundant})

	if redundant {
		s.stats.RedundantBinaries++
	} else {
		s.stats.IrredundantBinaries++
	}
}

// removeBinaryDirection drops one direction of a binary watch pair. Callers remove
// both directions (a under b.Not(), b under a.Not()).
func removeBinaryDirection(ws []binWatch, other lit.Lit) []binWatch {
	for i, w := range ws {
		if w.other == other {
			n := len(ws)
			ws[i] = ws[n-1]
			return ws[:n-1]
		}
	}
	return ws
}

// removeBinary detaches a binary clause from both of its watch lists.
func (s *Solver) removeBinary(a, b lit.Lit) {
	s.binWatches[a.Not()] = removeBinaryDirection(s.binWatches[a.Not()], b)
	s.binWatches[b.Not()] = removeBinaryDirection(s.binWatches[b.Not()], a)
}

// binaryPairs returns every binary clause with the requested redundancy,
// each reported once (lower literal first), by scanning the watch lists.
// Used by SaveState, syncAtRootLevel and SolveMany, which need a canonical
// list rather than the doubled watch-list representation.
func (s *Solver) binaryPairs(redundant bool) [][2]lit.Lit {
	var out [][2]lit.Lit
	for l := 0; l < len(s.binWatches); l++ {
		a := lit.Lit(l).Not()
		for _, w := range s.binWatches[l] {
			if w.redundant != redundant {
				continue
			}
			if a > w.other {
				continue
			}
			out = append(out, [2]lit.Lit{a, w.other})
		}
	}
	return out
}
