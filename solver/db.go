package solver

import "sort"

// simplifyDB may be called whenever the solver is at decision level 0. It
// propagates any pending facts, then drops any clause (problem or learnt)
// that trail-level simplification has already satisfied. A top-level
// conflict reports false.
func (s *Solver) simplifyDB() bool {
	if !s.propagate().IsNone() {
		return false
	}
	s.simplifyClauses()
	return true
}

// simplifyClauses drops any clause (problem or learnt) that trail-level
// simplification has already satisfied, without itself propagating. The
// caller is responsible for having already propagated to a fixed point.
func (s *Solver) simplifyClauses() {
	s.constrs = simplifyTier(s.constrs)
	s.tier0 = simplifyTier(s.tier0)
	s.tier1 = simplifyTier(s.tier1)
	s.tier2 = simplifyTier(s.tier2)
	s.tier3 = simplifyTier(s.tier3)
}

func simplifyTier(tier []*Clause) []*Clause {
	j := 0
	for i := 0; i < len(tier); i++ {
		if tier[i].gaussTemp || tier[i].xorTemp {
			tier[j] = tier[i]
			j++
			continue
		}
		if tier[i].simplify() {
			tier[i].solver.logger.Tracef("clause satisfied at root level, removing: %s", tier[i])
			tier[i].remove()
		} else {
			tier[j] = tier[i]
			j++
		}
	}
	return tier[:j]
}

// reduceDB is the learnt-clause database's housekeeping pass. Tier 0
// (glue <= Tier0Glue) is never reduced — the spec's invariant that a
// clause's tier only ever improves means a tier-0 clause has already
// proven itself too valuable to discard. Tiers 1 and 2 are reduced on
// their own conflict-count cadence, sorted worst-first by glue then by
// activity, and halved minus locked clauses, following the teacher's
// reduceDB shape generalized across tiers. Tier 2 also reduces early
// whenever it grows past a soft cap that itself grows by
// Tier2CapGrowth each time that happens, so a run with an unusually
// high conflict rate doesn't let tier 2 balloon between its regular
// cadence checkpoints. Tier 3 (high-glue learnts, filled only when
// Predictor is on) is reduced the same way on its own cadence.
func (s *Solver) reduceDB() {
	if s.stats.Conflicts-s.lastReduceTier1 >= s.config.ReduceTier1Every {
		s.tier1 = s.reduceTier(s.tier1)
		s.lastReduceTier1 = s.stats.Conflicts
	}
	overCap := float64(len(s.tier2)) >= s.tier2Cap
	if s.stats.Conflicts-s.lastReduceTier2 >= s.config.ReduceTier2Every || overCap {
		s.tier2 = s.reduceTier(s.tier2)
		s.lastReduceTier2 = s.stats.Conflicts
		if overCap {
			s.tier2Cap *= s.config.Tier2CapGrowth
		}
	}
	if s.stats.Conflicts-s.lastReduceTier3 >= s.config.ReduceTier3Every {
		s.tier3 = s.reduceTier(s.tier3)
		s.lastReduceTier3 = s.stats.Conflicts
	}
	s.consolidate()
}

// reduceTier sorts tier worst-first (higher glue first, lower activity as
// the tie-break, mirroring gophersat's watcherList.Less) and drops the
// bottom half, skipping anything locked or still marked gaussTemp/xorTemp.
func (s *Solver) reduceTier(tier []*Clause) []*Clause {
	sort.Slice(tier, func(i, j int) bool {
		if tier[i].glue != tier[j].glue {
			return tier[i].glue > tier[j].glue
		}
		return tier[i].activity < tier[j].activity
	})

	keep := make([]*Clause, 0, len(tier))
	removeBudget := len(tier) / 2
	removed := 0

	for i, c := range tier {
		if c.gaussTemp || c.xorTemp || c.locked() || i >= removeBudget {
			keep = append(keep, c)
			continue
		}
		c.solver.logger.Tracef("reduceDB dropping clause with glue %d: %s", c.glue, c)
		c.remove()
		removed++
	}
	if removed > 0 {
		s.logger.Debugf("reduceDB removed %d clauses, %d kept", removed, len(keep))
	}
	return keep
}

// consolidate physically compacts every clause slice, dropping detached
// clauses for the garbage collector. Go's allocator makes this cooperative
// step unnecessary for memory safety, but it keeps iteration over the
// tiers proportional to the live clause count rather than the
// highest-ever count, the same accounting the teacher's arena-style
// cleanup aimed for.
func (s *Solver) consolidate() {
	s.constrs = compactLive(s.constrs)
	s.tier0 = compactLive(s.tier0)
	s.tier1 = compactLive(s.tier1)
	s.tier2 = compactLive(s.tier2)
	s.tier3 = compactLive(s.tier3)
}

func compactLive(tier []*Clause) []*Clause {
	j := 0
	for _, c := range tier {
		if c.dead {
			continue
		}
		tier[j] = c
		j++
	}
	return tier[:j]
}

// NLearnts returns the total number of redundant clauses of three or more
// literals currently held across every tier (tier 3 included, binary
// learnts excluded since they carry no *Clause).
func (s *Solver) NLearnts() int {
	return len(s.tier0) + len(s.tier1) + len(s.tier2) + len(s.tier3)
}

// NConstrs returns the number of irredundant clauses of three or more
// literals.
func (s *Solver) NConstrs() int {
	return len(s.constrs)
}
