package solver

import (
	"sort"
	"strings"

	"github.com/ericr/saturday/lit"
)

// removedTag marks why a variable is no longer live. Removed variables must
// never appear in a branching heap or be visited by the propagator.
type removedTag uint8

const (
	removedNone removedTag = iota
	removedEliminated
	removedReplaced
	removedDecomposed
)

// clauseStats is the per-clause bookkeeping block the clause model carries
// alongside its literals.
type clauseStats struct {
	introduced  int // conflict count at birth.
	lastTouched int // conflict count at last bump or reduce.
	usedForUIP  int // times this clause was resolved against during analysis.
	tier        uint8
}

// Clause is a CNF clause built with three or more literals. newClause never
// builds a *Clause for two literals — those live only as watch-list entries —
// but simplify and on-the-fly subsumption can later shrink a *Clause to two
// literals, and it then stays a *Clause.
type Clause struct {
	solver    *Solver
	lits      []lit.Lit
	redundant bool
	activity  float64
	glue      int
	stats     clauseStats

	strengthened bool // true since the last on-the-fly shrink.
	gaussTemp    bool // produced by the Gauss-Jordan extension; never reduced.
	xorTemp      bool // produced by XOR reasoning; never reduced.
	dead         bool // detached and pending physical removal from its tier.
}

// newClause builds a clause from ps, simplifying it against the current
// trail the way the teacher's newClause did, then dispatches on the
// simplified length: empty is a top-level conflict, one literal is a unit
// enqueue, two literals register directly into the binary watch lists, and
// three or more allocate a *Clause with two watched literals.
func newClause(s *Solver, ps []lit.Lit, redundant bool) (ok bool, c *Clause) {
	lits := make([]lit.Lit, len(ps))
	copy(lits, ps)
	sort.Slice(lits, func(i, j int) bool { return lits[i] < lits[j] })

	if !redundant {
		idx := 0
		last := lit.Undef

		for _, p := range lits {
			switch {
			case s.litValue(p).True():
				s.logger.Debugf("clause literal %s already true, dropping clause", p)
				return true, nil
			case p == last.Not():
				s.logger.Debugf("tautology detected at %s, dropping clause", p)
				return true, nil
			case p == last:
				s.logger.Tracef("skipping duplicate literal %s", p)
				continue
			case s.litValue(p).False():
				s.logger.Tracef("skipping false literal %s", p)
				continue
			}
			lits[idx] = p
			last = p
			idx++
		}
		lits = lits[:idx]
	}

	switch len(lits) {
	case 0:
		s.logger.Debug("empty clause after simplification, top-level conflict")
		return false, nil
	case 1:
		s.logger.Tracef("unit clause detected, enqueuing %s", lits[0])
		return s.enqueue(lits[0], PropBy{}), nil
	case 2:
		s.logger.Tracef("registering binary clause (%s %s)", lits[0], lits[1])
		s.addBinary(lits[0], lits[1], redundant)
		return true, nil
	}

	c = &Clause{
		solver:    s,
		lits:      lits,
		redundant: redundant,
		stats:     clauseStats{introduced: s.stats.Conflicts},
	}

	if redundant {
		assertIdx := 0
		for i, p := range c.lits {
			if p == ps[0] {
				assertIdx = i
				break
			}
		}
		c.lits[0], c.lits[assertIdx] = c.lits[assertIdx], c.lits[0]

		idx := c.highestDecisionLevelIdx()
		c.lits[1], c.lits[idx] = c.lits[idx], c.lits[1]
		c.glue = s.computeGlue(c.lits)
		c.stats.tier = s.tierForGlue(c.glue)

		s.claBumpActivity(c)
		for i := 0; i < c.Len(); i++ {
			s.varBumpActivity(c.lits[i])
		}
	}

	c.attach()

	return true, c
}

// attach watches c's first two literals, the invariant every clause of
// three or more literals must hold.
func (c *Clause) attach() {
	c.addToWatcher(c.lits[0].Not())
	c.addToWatcher(c.lits[1].Not())
}

// detach removes c from both of its current watch lists without discarding
// it, so the caller can reorder and re-attach.
func (c *Clause) detach() {
	c.removeFromWatcher(c.lits[0].Not())
	c.removeFromWatcher(c.lits[1].Not())
}

// locked returns true if c is the reason some assigned variable carries,
// and so cannot be removed without corrupting the trail.
func (c *Clause) locked() bool {
	p := c.lits[0]
	r := c.solver.reason[p.Index()]
	return r.kind == reasonLong && r.clause == c
}

// remove detaches c and marks it dead. The caller owns dropping it from
// whatever slice (constrs or a learnt tier) holds the pointer; physical
// compaction of those slices happens in Solver.consolidate.
func (c *Clause) remove() {
	c.solver.dratDelete(c.lits)
	c.detach()
	c.dead = true
}

// shrinkInPlace drops literals from the clause in favor of keep, used by
// on-the-fly subsumption. The caller must detach before calling and
// re-attach after.
func (c *Clause) shrinkInPlace(keep []lit.Lit) {
	c.lits = keep
	c.strengthened = true
}

// simplify drops any literal already false under the trail and reports
// whether the clause is already satisfied, in which case it can be
// discarded outright.
func (c *Clause) simplify() bool {
	j := 0
	for i := 0; i < c.Len(); i++ {
		if c.solver.litValue(c.lits[i]).True() {
			return true
		}
		if c.solver.litValue(c.lits[i]).Undef() {
			c.lits[j] = c.lits[i]
			j++
		}
	}
	c.lits = c.lits[:j]

	return false
}

// propagate is called when p, a trail literal whose watch list holds c, has
// just become true, so that p.Not(), one of c's watched literals, is now
// false. It restores the two-watched-literal invariant, or reports
// that c is now unit or conflicting.
func (c *Clause) propagate(p lit.Lit) bool {
	if c.lits[0] == p.Not() {
		c.lits[0], c.lits[1] = c.lits[1], p.Not()
	}
	if c.solver.litValue(c.lits[0]).True() {
		c.solver.logger.Tracef("clause already satisfied by %s: %s", c.lits[0], c)
		c.addToWatcher(p)
		return true
	}
	for i := 2; i < c.Len(); i++ {
		if !c.solver.litValue(c.lits[i]).False() {
			c.lits[1], c.lits[i] = c.lits[i], p.Not()
			c.addToWatcher(c.lits[1].Not())
			return true
		}
	}
	c.solver.logger.Tracef("clause is unit, enqueuing %s: %s", c.lits[0], c)
	c.addToWatcher(p)
	return c.solver.enqueue(c.lits[0], PropBy{kind: reasonLong, clause: c})
}

// calcReason returns the literals that forced p, used by conflict analysis.
// When p is lit.Undef the whole clause is the conflicting set.
func (c *Clause) calcReason(p lit.Lit) []lit.Lit {
	outReason := make([]lit.Lit, 0, c.Len())
	offset := 1
	if p == lit.Undef {
		offset = 0
	}
	for i := offset; i < c.Len(); i++ {
		outReason = append(outReason, c.lits[i].Not())
	}
	if c.redundant {
		c.solver.claBumpActivity(c)
	}
	c.stats.usedForUIP++
	return outReason
}

func (c *Clause) addToWatcher(p lit.Lit) {
	c.solver.longWatches[p] = append(c.solver.longWatches[p], longWatch{blocker: c.lits[0], clause: c})
}

func (c *Clause) removeFromWatcher(p lit.Lit) {
	ws := c.solver.longWatches[p]
	for i, w := range ws {
		if w.clause == c {
			n := len(ws)
			ws[i] = ws[n-1]
			c.solver.longWatches[p] = ws[:n-1]
			return
		}
	}
}

// highestDecisionLevelIdx returns the index of the literal at the highest
// decision level, used to pick a freshly-learnt clause's second watch so it
// is ready to propagate the instant backtracking uncovers it.
func (c *Clause) highestDecisionLevelIdx() int {
	max := -1
	maxIdx := 0

	for idx, p := range c.lits {
		dl := c.solver.level[p.Index()]
		if dl > max {
			maxIdx = idx
			max = dl
		}
	}
	return maxIdx
}

func (c *Clause) asInts() []int {
	ints := make([]int, 0, c.Len())
	for _, l := range c.lits {
		ints = append(ints, c.solver.externalInt(l))
	}
	return ints
}

func (c *Clause) asStrings() []string {
	litStrs := make([]string, 0, c.Len())
	for _, l := range c.lits {
		litStrs = append(litStrs, l.String())
	}
	return litStrs
}

// String implements the Stringer interface.
func (c *Clause) String() string {
	return strings.Join(c.asStrings(), ",")
}

// Len returns the number of literals currently in the clause.
func (c *Clause) Len() int {
	return len(c.lits)
}

// Get returns the literal at index i.
func (c *Clause) Get(i int) lit.Lit {
	return c.lits[i]
}

// Lits returns the clause's literals. Callers must not mutate the slice.
func (c *Clause) Lits() []lit.Lit {
	return c.lits
}

// Swap swaps two literals within the clause (sort.Interface).
func (c *Clause) Swap(i, j int) {
	c.lits[i], c.lits[j] = c.lits[j], c.lits[i]
}

// Less compares two literals within the clause (sort.Interface).
func (c *Clause) Less(i, j int) bool {
	return c.lits[i] < c.lits[j]
}
