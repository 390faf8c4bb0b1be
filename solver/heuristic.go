package solver

import (
	"math/rand"

	"github.com/ericr/saturday/config"
	"github.com/ericr/saturday/lit"
	"github.com/ericr/saturday/order"
)

// heap returns whichever branching heap the configured heuristic uses.
// Both heaps are always kept populated so changing config.BranchHeuristic
// never has to rebuild one from scratch.
func (s *Solver) heap() *order.Heap {
	if s.config.BranchHeuristic == config.Maple {
		return s.heapMaple
	}
	return s.heapVSIDS
}

// varBumpActivity rewards p's variable under VSIDS, and is a no-op when
// the solver is running under MAPLE (which rewards on unassignment instead
// of on each bump).
func (s *Solver) varBumpActivity(p lit.Lit) {
	if s.config.BranchHeuristic == config.Maple {
		return
	}
	v := p.Index()
	s.activityVSIDS[v] += s.varInc

	if s.activityVSIDS[v] > 1e100 {
		s.varRescaleActivity()
	}
	s.heapVSIDS.Fix(v)
}

// varDecayActivity grows VSIDS's increment, with a linearly-growing decay
// rate: the decay constant itself starts at VarDecayStart and rises by 0.01
// every 4096 conflicts until it reaches VarDecayCap, instead of staying
// fixed, so early search stays exploratory.
func (s *Solver) varDecayActivity() {
	if s.varDecay < s.config.VarDecayCap && s.stats.Conflicts%4096 == 0 {
		s.varDecay += 0.01
		if s.varDecay > s.config.VarDecayCap {
			s.varDecay = s.config.VarDecayCap
		}
	}
	s.varInc *= 1.0 / s.varDecay
}

func (s *Solver) varRescaleActivity() {
	s.logger.Debug("VSIDS activity rescale triggered")
	for i := range s.activityVSIDS {
		s.activityVSIDS[i] *= 1e-100
	}
	s.varInc *= 1e-100
}

// claBumpActivity rewards a redundant clause's activity.
func (s *Solver) claBumpActivity(c *Clause) {
	if !c.redundant {
		return
	}
	c.activity += s.claInc
	c.stats.lastTouched = s.stats.Conflicts

	if c.activity+s.claInc > 1e20 {
		s.claRescaleActivity()
	}
}

func (s *Solver) claDecayActivity() {
	s.claInc *= 1.0 / s.config.ClaDecay
}

func (s *Solver) claRescaleActivity() {
	s.logger.Debug("clause activity rescale triggered")
	for _, tier := range [][]*Clause{s.tier0, s.tier1, s.tier2, s.tier3} {
		for _, c := range tier {
			c.activity *= 1e-20
		}
	}
	s.claInc *= 1e-20
}

// decayActivities is called once per conflict.
func (s *Solver) decayActivities() {
	s.varDecayActivity()
	s.claDecayActivity()
}

// heuristicOnConflict records MAPLE's per-variable reward the moment a
// variable becomes involved in a conflict, before undoOne walks the trail
// back past it.
func (s *Solver) heuristicOnConflict(v int) {
	if s.config.BranchHeuristic != config.Maple {
		return
	}
	s.conflicted[v]++
}

// heuristicOnUnassign applies MAPLE's exponential-moving-average reward to
// v's activity as it leaves the trail: the reward is how often v
// participated in a conflict per conflict elapsed since it was assigned,
// aged by 0.95^age the way searcher.cpp's step-size update does, and it is
// a no-op under VSIDS.
func (s *Solver) heuristicOnUnassign(v int) {
	if s.config.BranchHeuristic != config.Maple {
		return
	}
	age := s.stats.Conflicts - s.varTimestamp[v]
	if age > 0 {
		reward := float64(s.conflicted[v]) / float64(age)
		adjusted := reward * pow95(age)
		s.activityMaple[v] = (1-s.stepSize)*s.activityMaple[v] + s.stepSize*adjusted
	}
	s.conflicted[v] = 0
	s.heapMaple.Fix(v)
}

// pow95 returns 0.95^n without importing math.Pow for a single call site.
func pow95(n int) float64 {
	r := 1.0
	base := 0.95
	for n > 0 {
		if n&1 == 1 {
			r *= base
		}
		base *= base
		n >>= 1
	}
	return r
}

// decayStepSize anneals MAPLE's step size down toward its floor, called
// once per conflict alongside decayActivities.
func (s *Solver) decayStepSize() {
	if s.stepSize > s.config.StepSizeFloor {
		s.stepSize -= s.config.StepSizeDecrement
		if s.stepSize < s.config.StepSizeFloor {
			s.stepSize = s.config.StepSizeFloor
		}
	}
}

// pickBranchVar chooses the next variable to decide on, consulting the
// active heuristic's heap, and occasionally overriding it with a uniformly
// random unassigned variable when RandomVarFreq calls for it.
func (s *Solver) pickBranchVar(rng *rand.Rand) int {
	if s.config.RandomVarFreq > 0 && rng.Float64() < s.config.RandomVarFreq && s.NVars() > 0 {
		v := rng.Intn(s.NVars())
		if s.removed[v] == removedNone && s.assigns[v].Undef() {
			return v + 1
		}
	}
	v := s.heap().Choose()
	s.logger.Tracef("branching decision: variable %d", v)
	return v
}

// pickPolarity decides the sign of a freshly-chosen decision variable.
func (s *Solver) pickPolarity(v int, rng *rand.Rand) bool {
	switch s.config.PolarityMode {
	case config.PolarityAlwaysTrue:
		return false
	case config.PolarityAlwaysFalse:
		return true
	case config.PolarityRandom:
		return rng.Float64() < 0.5
	default:
		return s.polarity[v]
	}
}
