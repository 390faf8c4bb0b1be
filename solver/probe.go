package solver

import "github.com/ericr/saturday/lit"

// ProbeStats mirrors the counters CryptoMiniSat4's Prober::Stats keeps, so
// a caller tuning ProbeBudgetBase can see exactly what a round bought.
type ProbeStats struct {
	Rounds           int
	NumFailed        int
	BothSameAdded    int
	AddedBin         int
	RemovedIrredBin  int
	RemovedRedBin    int
	ZeroDepthAssigns int
}

// probe runs one round of failed-literal probing over every unassigned
// variable, at the root decision level: for each candidate v, both v and
// ¬v are tried as temporary assumptions. A candidate whose assumption
// leads to a conflict is "failed" and its negation is learnt as a
// root-level unit. A candidate where neither sign conflicts instead
// contributes whatever both branches agree on (bothSameAdded), and, when
// enabled, hyper-binary resolution and transitive reduction over the
// binary clause graph.
func (s *Solver) probe() bool {
	if !s.config.ProbeEnabled || !s.ok {
		return s.ok
	}
	if s.decisionLevel() != 0 {
		return true
	}

	budget := uint64(float64(s.config.ProbeBudgetBase) * s.numPropsMultiplier)
	startProps := s.stats.Propagations
	startAssigns := s.NAssigns()

	for v := 0; v < s.NVars(); v++ {
		if uint64(s.stats.Propagations-startProps) >= budget {
			break
		}
		if s.removed[v] != removedNone || !s.assigns[v].Undef() {
			continue
		}
		if !s.probeVar(v) {
			s.ok = false
			return false
		}
	}

	if s.NAssigns() > startAssigns && s.numPropsMultiplier < s.config.ProbeBudgetMultCap {
		s.numPropsMultiplier *= 1.5
		if s.numPropsMultiplier > s.config.ProbeBudgetMultCap {
			s.numPropsMultiplier = s.config.ProbeBudgetMultCap
		}
	}
	s.probeStats.Rounds++
	s.probeStats.ZeroDepthAssigns = s.NAssigns()
	s.logger.Debugf("probe round %d complete: %d failed, %d added binaries",
		s.probeStats.Rounds, s.probeStats.NumFailed, s.probeStats.AddedBin)

	return true
}

// probeVar tries both signs of v. It returns false only on a genuine
// top-level conflict (the formula is unsatisfiable).
func (s *Solver) probeVar(v int) bool {
	l := lit.New(v, false)

	domsPos := map[lit.Lit]lit.Lit{}
	trailPos, conflPos := s.probeBranch(l, domsPos)
	if !conflPos.IsNone() {
		s.logger.Tracef("probe: %s failed, learning %s", l, l.Not())
		s.probeStats.NumFailed++
		return s.learnFailedLiteral(l.Not())
	}

	for _, p := range trailPos {
		if p != l {
			s.recordImplication(l, p)
		}
	}

	domsNeg := map[lit.Lit]lit.Lit{}
	trailNeg, conflNeg := s.probeBranch(l.Not(), domsNeg)
	if !conflNeg.IsNone() {
		s.logger.Tracef("probe: %s failed, learning %s", l.Not(), l)
		s.probeStats.NumFailed++
		return s.learnFailedLiteral(l)
	}

	for _, p := range trailNeg {
		if p != l.Not() {
			s.recordImplication(l.Not(), p)
		}
	}

	negSet := make(map[lit.Lit]bool, len(trailNeg))
	for _, q := range trailNeg {
		negSet[q] = true
	}
	for _, p := range trailPos {
		if p == l {
			continue
		}
		if !negSet[p] {
			continue
		}
		if !s.enqueue(p, PropBy{}) {
			return false
		}
		if !s.propagate().IsNone() {
			return false
		}
		s.probeStats.BothSameAdded++
	}

	if s.config.HyperBinResolution {
		s.hyperBinaryResolve(l, trailPos, domsPos)
		s.hyperBinaryResolve(l.Not(), trailNeg, domsNeg)
	}
	if s.config.TransitiveReduction {
		s.transitiveReduce(l, trailPos, domsPos)
		s.transitiveReduce(l.Not(), trailNeg, domsNeg)
	}

	return true
}

// probeBranch assumes p at a fresh decision level, propagates, and reports
// the literals that branch forced (excluding p itself is not done here;
// callers that need p excluded filter it) along with the conflict (if
// any), then unwinds back to level 0 regardless of outcome.
func (s *Solver) probeBranch(p lit.Lit, dominators map[lit.Lit]lit.Lit) ([]lit.Lit, PropBy) {
	s.newDecisionLevel()
	base := len(s.trail)

	if !s.enqueue(p, PropBy{}) {
		s.cancelUntil(0)
		return nil, PropBy{}
	}
	confl := s.propagateProbe(dominators)

	forced := make([]lit.Lit, len(s.trail)-base)
	copy(forced, s.trail[base:])

	s.cancelUntil(0)

	return forced, confl
}

// learnFailedLiteral records ¬p as a root-level unit after p was found to
// conflict when assumed, then re-propagates to pick up its consequences.
func (s *Solver) learnFailedLiteral(p lit.Lit) bool {
	if !s.enqueue(p, PropBy{}) {
		return false
	}
	return s.propagate().IsNone()
}

// hyperBinaryResolve adds a direct binary clause (probeLit.Not() ∨ q) for
// every q that probeLit's propagation forced through an intermediate
// literal rather than directly, shortcutting the longer implication chain
// the way CryptoMiniSat4's hyper-binary resolution pass does.
func (s *Solver) hyperBinaryResolve(probeLit lit.Lit, trail []lit.Lit, dominators map[lit.Lit]lit.Lit) {
	for _, q := range trail {
		if q == probeLit {
			continue
		}
		if parent, ok := dominators[q]; ok && parent == probeLit {
			continue
		}
		if s.hasBinary(probeLit.Not(), q) {
			continue
		}
		s.logger.Tracef("hyper-binary resolution adding (%s %s)", probeLit.Not(), q)
		s.addBinary(probeLit.Not(), q, true)
		s.probeStats.AddedBin++
	}
}

// transitiveReduce drops a direct binary edge (probeLit, q) when this
// round's propagation shows some other literal r, itself directly reached
// from probeLit, already implies q — meaning the direct edge is redundant
// against the longer path through r.
func (s *Solver) transitiveReduce(probeLit lit.Lit, trail []lit.Lit, dominators map[lit.Lit]lit.Lit) {
	for _, q := range trail {
		if q == probeLit {
			continue
		}
		parent, ok := dominators[q]
		if !ok || parent != probeLit {
			continue
		}
		for _, r := range trail {
			if r == probeLit || r == q {
				continue
			}
			rParent, ok := dominators[r]
			if !ok || rParent != probeLit {
				continue
			}
			if !s.hasBinary(r.Not(), q) {
				continue
			}
			redundant := s.binaryIsRedundant(probeLit.Not(), q)
			s.logger.Tracef("transitive reduction dropping binary (%s %s)", probeLit.Not(), q)
			s.removeBinary(probeLit.Not(), q)
			if redundant {
				s.probeStats.RemovedRedBin++
			} else {
				s.probeStats.RemovedIrredBin++
			}
			break
		}
	}
}

// hasBinary reports whether the binary clause (a, b) is currently
// registered in the watch lists.
func (s *Solver) hasBinary(a, b lit.Lit) bool {
	for _, w := range s.binWatches[a.Not()] {
		if w.other == b {
			return true
		}
	}
	return false
}

// binaryIsRedundant reports whether the (a, b) binary clause currently
// registered is marked redundant (learnt) rather than an original
// irredundant problem clause.
func (s *Solver) binaryIsRedundant(a, b lit.Lit) bool {
	for _, w := range s.binWatches[a.Not()] {
		if w.other == b {
			return w.redundant
		}
	}
	return false
}

// ProbeStats returns a snapshot of the probing engine's lifetime counters.
func (s *Solver) ProbeStats() ProbeStats {
	return s.probeStats
}
