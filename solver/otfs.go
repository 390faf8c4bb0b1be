package solver

import (
	"github.com/pkg/errors"

	"github.com/ericr/saturday/lit"
)

// otfsCandidate checks whether the clause that produced confl's antecedent
// can be strengthened on the spot during conflict analysis: pivot is the
// literal currently being resolved away (analyze's p), and learntSoFar is
// the set of literals already placed in the in-progress learnt clause. If
// every literal of the antecedent except pivot and at most one other
// already appears negated in learntSoFar, the antecedent is subsumed and
// can be shrunk immediately to just {pivot, that one other} instead of
// waiting for a later simplification pass.
//
// otfs and the tier-3 predictor hook are mutually exclusive (enforced by
// config.Config.Validate), since both want to mutate the same learnt
// clause mid-analysis and neither is safe to run against the other's
// half-finished state.
func (s *Solver) otfsCandidate(confl PropBy, pivot lit.Lit, learntSoFar map[lit.Lit]bool) {
	if !s.config.OTFS || confl.kind != reasonLong || pivot == lit.Undef {
		return
	}
	c := confl.clause
	if c.gaussTemp || c.xorTemp {
		return
	}

	extra := lit.Undef
	extraCount := 0
	for _, p := range c.Lits() {
		if p == pivot {
			continue
		}
		if !learntSoFar[p.Not()] {
			extraCount++
			if extraCount > 1 {
				return
			}
			extra = p
		}
	}
	if extraCount != 1 {
		return
	}

	kept := []lit.Lit{pivot, extra}
	if len(kept) >= c.Len() {
		return
	}

	c.detach()
	c.shrinkInPlace(kept)
	c.attach()
	s.stats.OTFShrinks++
	s.logger.Tracef("on-the-fly subsumption shrank clause to %s", c)
}

// validateOTFSConfig is a defensive check called once at Solve entry,
// mirroring config.Config.Validate but scoped to the one invariant the
// search loop itself depends on.
func (s *Solver) validateOTFSConfig() error {
	if s.config.OTFS && s.config.Predictor {
		return errors.New("solver: OTFS and Predictor cannot both be enabled")
	}
	return nil
}
