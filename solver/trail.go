package solver

import (
	"github.com/ericr/saturday/lit"
	"github.com/ericr/saturday/tribool"
)

// enqueue records a new fact, p, on the trail with the given antecedent. It
// reports false on a conflicting assignment, true otherwise (including when
// p was already consistently assigned).
func (s *Solver) enqueue(p lit.Lit, from PropBy) bool {
	if s.litValue(p) != tribool.Undef {
		return s.litValue(p).True()
	}

	s.assigns[p.Index()] = tribool.NewFromBool(!p.Sign())
	s.level[p.Index()] = s.decisionLevel()
	s.reason[p.Index()] = from
	s.varTimestamp[p.Index()] = s.stats.Conflicts
	s.trail = append(s.trail, p)

	s.logger.Tracef("enqueued %s at level %d", p, s.level[p.Index()])

	return true
}

// newDecisionLevel opens a fresh decision level, marking the trail position
// a later cancelUntil should roll back to.
func (s *Solver) newDecisionLevel() {
	s.trailLim = append(s.trailLim, len(s.trail))
}

// decisionLevel returns the solver's current decision level.
func (s *Solver) decisionLevel() int {
	return len(s.trailLim)
}

// undoOne unassigns the most recently enqueued variable, restoring it to
// its branching heuristic's heap and giving the heuristic a chance to
// record a reward for the unassignment (MAPLE's conflict-count-based
// bookkeeping happens here).
func (s *Solver) undoOne() {
	p := s.trail[len(s.trail)-1]
	v := p.Index()

	s.logger.Tracef("unassigning %s", p)

	s.heuristicOnUnassign(v)

	if s.config.PolarityMode == "cache" {
		s.polarity[v] = p.Sign()
	}

	s.assigns[v] = tribool.Undef
	s.reason[v] = PropBy{}
	s.level[v] = -1
	s.trail = s.trail[:len(s.trail)-1]

	s.heap().Push(v)
}

// cancel reverts every assignment made since the last decision level.
func (s *Solver) cancel() {
	target := s.trailLim[len(s.trailLim)-1]
	for len(s.trail) > target {
		s.undoOne()
	}
	s.trailLim = s.trailLim[:len(s.trailLim)-1]
}

// cancelUntil reverts assignments until the solver is at level, and resets
// the propagation head so propagate restarts from the shortened trail.
func (s *Solver) cancelUntil(level int) {
	for s.decisionLevel() > level {
		s.cancel()
	}
	if s.qhead > len(s.trail) {
		s.qhead = len(s.trail)
	}
}

// NAssigns returns the number of assignments currently on the trail.
func (s *Solver) NAssigns() int {
	return len(s.trail)
}
