package solver

import "github.com/ericr/saturday/lit"

// abstractLevel returns the bit of a 32-bit rolling bitmap used by the
// minimizer to cheaply reject a literal whose decision level cannot
// possibly be redundant against the learnt clause, without walking the
// full level set.
func abstractLevel(level int) uint32 {
	return 1 << uint(level&31)
}

// analyze walks the implication graph from confl back to the first unique
// implication point, producing a learnt clause (asserting literal first)
// and the level to backtrack to. It generalizes the teacher's analyze to
// accept a PropBy conflict (so binary-clause conflicts need no *Clause)
// and to run the configured minimization passes before returning.
func (s *Solver) analyze(confl PropBy) ([]lit.Lit, int) {
	seen := make([]bool, s.NVars())
	p := lit.Undef
	learnt := []lit.Lit{lit.Undef}
	counter := 0
	btLevel := 0
	abstractLevels := uint32(0)

	for {
		if confl.kind == reasonLong && p != lit.Undef {
			learntSoFar := make(map[lit.Lit]bool, len(learnt))
			for _, q := range learnt {
				learntSoFar[q] = true
			}
			s.otfsCandidate(confl, p, learntSoFar)
		}

		reason := confl.calcReason(p)

		for _, q := range reason {
			idx := q.Index()
			if seen[idx] {
				continue
			}
			seen[idx] = true
			s.heuristicOnConflict(idx)
			level := s.level[idx]

			switch {
			case level == s.decisionLevel():
				counter++
			case level > 0:
				learnt = append(learnt, q.Not())
				abstractLevels |= abstractLevel(level)
				if level > btLevel {
					btLevel = level
				}
			}
		}

		for {
			p = s.trail[len(s.trail)-1]
			confl = s.reason[p.Index()]
			s.undoOne()

			if seen[p.Index()] {
				break
			}
		}
		counter--
		if counter == 0 {
			break
		}
	}
	learnt[0] = p.Not()

	learnt = s.minimize(learnt, seen, abstractLevels)

	return learnt, btLevel
}

// minimize drops literals from tail of learnt (the asserting literal at
// index 0 is never touched) that are already implied by the rest of the
// clause, using whichever of the three passes the config enables. seen
// still marks every variable visited during analyze, which the recursive
// pass relies on to avoid rewalking shared structure; the binary and cache
// passes do not read it.
func (s *Solver) minimize(learnt []lit.Lit, seen []bool, abstractLevels uint32) []lit.Lit {
	if s.config.RecursiveMinimization {
		learnt = s.minimizeRecursive(learnt, seen, abstractLevels)
	}
	if s.config.BinaryMinimization {
		learnt = s.minimizeBinary(learnt, seen)
	}
	if s.config.CacheMinimization {
		learnt = s.minimizeCache(learnt, seen)
	}
	return learnt
}

// minimizeRecursive drops a literal when every antecedent needed to derive
// it is already seen or at a level the abstract bitmap says is reachable,
// following the chain of reasons back to a decision if necessary.
func (s *Solver) minimizeRecursive(learnt []lit.Lit, seen []bool, abstractLevels uint32) []lit.Lit {
	out := learnt[:1]

	for _, p := range learnt[1:] {
		if s.litRedundant(p, seen, abstractLevels) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// litRedundant reports whether p's assignment is already implied by other
// literals seen during analysis, walking p's antecedent chain with an
// explicit stack rather than recursion.
func (s *Solver) litRedundant(p lit.Lit, seen []bool, abstractLevels uint32) bool {
	reason := s.reason[p.Index()]
	if reason.IsNone() {
		return false
	}

	stack := []lit.Lit{p}
	top := 0

	for len(stack) > top {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		curReason := s.reason[cur.Index()]
		for _, q := range curReason.calcReason(cur) {
			idx := q.Index()
			if seen[idx] || s.level[idx] == 0 {
				continue
			}
			qReason := s.reason[idx]
			if qReason.IsNone() || abstractLevel(s.level[idx])&abstractLevels == 0 {
				return false
			}
			seen[idx] = true
			stack = append(stack, q)
		}
	}
	return true
}

// minimizeBinary drops a literal ¬x from learnt when a binary clause
// (learnt[0] ∨ x) exists: resolving learnt against that clause on x yields
// (learnt\{¬x}) ∪ {learnt[0]}, which is learnt\{¬x} since learnt[0] is
// already a disjunct of learnt. The binary clauses come from the watch list
// of the clause's own negated asserting literal, the watch-based
// minimization CryptoMiniSat4's watch_based_learnt_minim() performs.
func (s *Solver) minimizeBinary(learnt []lit.Lit, seen []bool) []lit.Lit {
	if len(learnt) < 2 {
		return learnt
	}

	removable := make(map[lit.Lit]bool)
	for _, w := range s.binWatches[learnt[0].Not()] {
		removable[w.other.Not()] = true
	}

	out := learnt[:1]
	for _, p := range learnt[1:] {
		if !removable[p] {
			out = append(out, p)
		}
	}
	return out
}

// minimizeCache drops a literal when an earlier probing pass recorded a
// cached implication from another learnt literal to its negation. With no
// cache populated yet this is a no-op, which is always correct.
func (s *Solver) minimizeCache(learnt []lit.Lit, seen []bool) []lit.Lit {
	if s.implCache == nil {
		return learnt
	}

	out := learnt[:1]
	for _, p := range learnt[1:] {
		redundant := false
		for _, q := range learnt {
			if q == p {
				continue
			}
			if s.cacheImplies(q, p.Not()) {
				redundant = true
				break
			}
		}
		if !redundant {
			out = append(out, p)
		}
	}
	return out
}

// computeGlue returns the number of distinct decision levels spanned by
// lits, the LBD score used to tier and to prioritize learnt clauses.
func (s *Solver) computeGlue(lits []lit.Lit) int {
	seenLevel := make(map[int]bool, len(lits))
	for _, p := range lits {
		seenLevel[s.level[p.Index()]] = true
	}
	return len(seenLevel)
}

// tierForGlue maps a glue score onto one of the four learnt-clause tiers.
// Anything that would land in tier 2 instead goes to tier 3, the
// predictor-managed tier, whenever a predictor is configured.
func (s *Solver) tierForGlue(glue int) uint8 {
	switch {
	case glue <= s.config.Tier0Glue:
		return 0
	case glue <= s.config.Tier1Glue:
		return 1
	case s.config.Predictor:
		return 3
	default:
		return 2
	}
}

// record builds and attaches a freshly analyzed learnt clause, enqueues its
// asserting literal, and files it into the appropriate tier.
func (s *Solver) record(lits []lit.Lit) {
	s.dratAdd(lits)

	_, c := newClause(s, lits, true)

	if c == nil {
		if len(lits) == 2 {
			// newClause registered this as a binary watch rather than
			// allocating a *Clause; its antecedent is the other literal,
			// already false, not a bare decision.
			s.enqueue(lits[0], PropBy{kind: reasonBinary, binA: lits[1], binB: lits[0]})
			return
		}
		s.enqueue(lits[0], PropBy{})
		return
	}
	s.enqueue(lits[0], PropBy{kind: reasonLong, clause: c})

	switch c.stats.tier {
	case 0:
		s.tier0 = append(s.tier0, c)
	case 1:
		s.tier1 = append(s.tier1, c)
	case 3:
		s.tier3 = append(s.tier3, c)
	default:
		s.tier2 = append(s.tier2, c)
	}
}
