package solver

import (
	"github.com/ericr/saturday/lit"
	"github.com/ericr/saturday/tribool"
)

// Result is the tri-state outcome of a bounded search phase: a full
// search returns ResultSat or ResultUnsat, while a phase cut short by a
// restart reports ResultUndef so the caller knows to try again.
type Result tribool.Tribool

const (
	ResultUndef = Result(tribool.Undef)
	ResultSat   = Result(tribool.True)
	ResultUnsat = Result(tribool.False)
)

// String implements the Stringer interface.
func (r Result) String() string {
	return tribool.Tribool(r).String()
}

// Solve is the source-compatible entry point: it assumes ps (signed
// DIMACS-style variable numbers), searches to completion, and reports
// whether the formula is satisfiable under those assumptions.
func (s *Solver) Solve(ps []int) bool {
	status, _ := s.SolveAssuming(ps)
	return status == ResultSat
}

// SolveAssuming runs the full search loop: assumption propagation,
// repeated bounded search phases separated by restarts and probing rounds,
// until a model is found or the formula (under ps) is proven unsatisfiable.
// On an unsatisfiable result it also returns the subset of ps that a
// minimal final-conflict analysis blames.
func (s *Solver) SolveAssuming(ps []int) (Result, []int) {
	if !s.ok {
		return ResultUnsat, nil
	}
	if err := s.config.Validate(); err != nil {
		s.logger.WithError(err).Error("invalid solver configuration")
		return ResultUndef, nil
	}
	if err := s.validateOTFSConfig(); err != nil {
		s.logger.WithError(err).Error("invalid solver configuration")
		return ResultUndef, nil
	}

	if !s.simplifyDB() {
		return ResultUnsat, nil
	}
	s.heapVSIDS.Init()
	s.heapMaple.Init()

	assumps := make([]lit.Lit, 0, len(ps))
	for _, p := range ps {
		a := lit.NewFromInt(p)
		if _, ok := s.userVars[a.Var()]; !ok {
			return ResultUnsat, nil
		}
		assumps = append(assumps, s.newVar(a))
	}

	for _, a := range assumps {
		s.newDecisionLevel()
		if !s.enqueue(a, PropBy{}) {
			s.cancelUntil(0)
			return ResultUnsat, s.externalInts(assumps)
		}
		if confl := s.propagate(); !confl.IsNone() {
			final := s.analyzeFinal(confl)
			s.cancelUntil(0)
			return ResultUnsat, final
		}
	}
	s.rootLevel = s.decisionLevel()

	status := ResultUndef
	var rootConfl PropBy

	for status == ResultUndef {
		status, rootConfl = s.search()

		if status == ResultUndef {
			s.doRestart()

			if s.config.ProbeEnabled && s.config.ProbeEvery > 0 && s.stats.Restarts%s.config.ProbeEvery == 0 {
				if !s.probe() {
					status = ResultUnsat
					break
				}
			}
			if !s.syncAtRootLevel() {
				status = ResultUnsat
				break
			}
		}
	}

	var final []int
	if status == ResultUnsat {
		if !rootConfl.IsNone() {
			final = s.analyzeFinal(rootConfl)
		} else {
			final = s.externalInts(assumps)
		}
	}
	s.cancelUntil(0)

	return status, final
}

// search runs propagate/analyze/decide until a model is found, the root
// level conflicts (proving unsatisfiability under the current
// assumptions), or the restart controller calls for a restart. It returns
// the conflicting antecedent alongside a ResultUnsat so the caller can run
// final-conflict analysis against it.
func (s *Solver) search() (Result, PropBy) {
	s.model = map[int]bool{}

	for {
		confl := s.propagate()

		if !confl.IsNone() {
			s.stats.Conflicts++

			if s.decisionLevel() == s.rootLevel {
				if s.rootLevel == 0 {
					s.ok = false
				}
				return ResultUnsat, confl
			}

			learnt, btLevel := s.analyze(confl)
			glue := s.computeGlue(learnt)

			if btLevel > s.rootLevel {
				s.cancelUntil(btLevel)
			} else {
				s.cancelUntil(s.rootLevel)
			}

			s.record(learnt)

			s.decayActivities()
			s.decayStepSize()
			s.restartOnConflict(glue, s.NAssigns())
			s.reduceDB()

			continue
		}

		if s.NAssigns() == s.NVars() {
			for i := 0; i < s.NVars(); i++ {
				s.model[s.internalVars[i]] = s.assigns[i] == tribool.True
			}
			return ResultSat, PropBy{}
		}

		if s.decisionLevel() == 0 {
			s.simplifyClauses()
		}

		if s.shouldRestart() {
			return ResultUndef, PropBy{}
		}

		v := s.pickBranchVar(s.rng)
		if v == int(lit.Undef) {
			return ResultUndef, PropBy{}
		}

		s.newDecisionLevel()
		s.enqueue(lit.New(v-1, s.pickPolarity(v-1, s.rng)), PropBy{})
		s.stats.Decisions++
	}
}

// analyzeFinal walks backward from confl the way MiniSat's analyzeFinal
// does, collecting whichever assumption-level literals the conflict is
// ultimately blamed on, for reporting through SolveAssuming.
func (s *Solver) analyzeFinal(confl PropBy) []int {
	seen := make([]bool, s.NVars())
	var out []lit.Lit

	for _, q := range confl.calcReason(lit.Undef) {
		if s.level[q.Index()] > 0 {
			seen[q.Index()] = true
		}
	}

	for i := len(s.trail) - 1; i >= 0; i-- {
		p := s.trail[i]
		if !seen[p.Index()] {
			continue
		}
		r := s.reason[p.Index()]
		if r.IsNone() {
			out = append(out, p)
		} else {
			for _, q := range r.calcReason(p) {
				if s.level[q.Index()] > 0 {
					seen[q.Index()] = true
				}
			}
		}
		seen[p.Index()] = false
	}

	return s.externalInts(out)
}

// SolveMany returns up to mCount distinct models, blocking each model
// found with a fresh clause the way the teacher's bounded all-SAT loop
// did, rebuilding the solver each time from its remaining problem clauses,
// its irredundant binary clauses and its root-level units so the
// heuristics and learnt database don't accumulate bias toward excluded
// models.
func (s *Solver) SolveMany(ps []int, mCount uint) [][]int {
	models := make([][]int, 0, mCount)

	for i := 0; i < int(mCount); i++ {
		if !s.Solve(ps) {
			s.logger.Infof("no more models exist after %d", len(models))
			break
		}
		models = append(models, s.Answer())
		s.logger.Infof("found %d/%d models", len(models), mCount)

		constrs := s.constrs
		next := New(s.config)

		for _, c := range constrs {
			next.AddClause(c.asInts())
		}
		for _, pair := range s.binaryPairs(false) {
			next.AddClause(s.externalInts(pair[:]))
		}
		for _, p := range s.trail {
			next.AddClause([]int{s.externalInt(p)})
		}
		for _, model := range models {
			blocking := make([]int, 0, len(model))
			for _, l := range model {
				blocking = append(blocking, -l)
			}
			next.AddClause(blocking)
		}
		s = next
	}
	return models
}
