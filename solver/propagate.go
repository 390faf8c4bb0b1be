package solver

import "github.com/ericr/saturday/lit"

// propagate drains the trail from the propagation head forward, visiting
// binary watches before long watches for each newly-true literal (binary
// clauses are far more numerous and far cheaper to check). It returns a
// zero PropBy (IsNone) when the trail empties with no conflict, or the
// conflicting antecedent otherwise.
func (s *Solver) propagate() PropBy {
	for s.qhead < len(s.trail) {
		p := s.trail[s.qhead]
		s.qhead++
		s.stats.Propagations++

		bws := s.binWatches[p]
		for _, w := range bws {
			reason := PropBy{kind: reasonBinary, binA: p.Not(), binB: w.other}
			if !s.enqueue(w.other, reason) {
				s.logger.Debugf("binary propagation conflict on %s via %s", w.other, p)
				return reason
			}
		}

		tmp := s.longWatches[p]
		s.longWatches[p] = nil

		for i := 0; i < len(tmp); i++ {
			if s.litValue(tmp[i].blocker).True() {
				s.longWatches[p] = append(s.longWatches[p], tmp[i])
				continue
			}
			if !tmp[i].clause.propagate(p) {
				s.logger.Debugf("long clause propagation conflict on %s: %s", p, tmp[i].clause)
				for j := i + 1; j < len(tmp); j++ {
					s.longWatches[p] = append(s.longWatches[p], tmp[j])
				}
				return PropBy{kind: reasonLong, clause: tmp[i].clause}
			}
		}
	}
	return PropBy{}
}

// propagateProbe is propagate's variant used by the probing engine. Beyond
// ordinary unit propagation it records, for every literal a binary clause
// forces, the literal whose binary watch forced it (its immediate
// predecessor in the binary implication chain); literals forced by long
// clauses get no entry. Hyper-binary resolution and transitive reduction
// read these entries to find literals the probe reached only indirectly.
func (s *Solver) propagateProbe(dominators map[lit.Lit]lit.Lit) PropBy {
	for s.qhead < len(s.trail) {
		p := s.trail[s.qhead]
		s.qhead++
		s.stats.Propagations++

		bws := s.binWatches[p]
		for _, w := range bws {
			reason := PropBy{kind: reasonBinary, binA: p.Not(), binB: w.other}
			wasUndef := s.litValue(w.other).Undef()
			if !s.enqueue(w.other, reason) {
				return reason
			}
			if wasUndef {
				if _, ok := dominators[w.other]; !ok {
					dominators[w.other] = p
				}
			}
		}

		tmp := s.longWatches[p]
		s.longWatches[p] = nil

		for i := 0; i < len(tmp); i++ {
			if s.litValue(tmp[i].blocker).True() {
				s.longWatches[p] = append(s.longWatches[p], tmp[i])
				continue
			}
			// Dominators are only tracked through the binary watch chain
			// above; a literal forced by a long clause breaks the chain of
			// direct implications hyper-binary resolution shortcuts, so it
			// is deliberately left out of the map.
			if !tmp[i].clause.propagate(p) {
				for j := i + 1; j < len(tmp); j++ {
					s.longWatches[p] = append(s.longWatches[p], tmp[j])
				}
				return PropBy{kind: reasonLong, clause: tmp[i].clause}
			}
		}
	}
	return PropBy{}
}
