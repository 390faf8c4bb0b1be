package solver

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/ericr/saturday/config"
	"github.com/ericr/saturday/lit"
	"github.com/ericr/saturday/order"
	"github.com/ericr/saturday/tribool"
)

const (
	VersionMajor = 2
	VersionMinor = 0
)

// Solver is a CDCL SAT solver: watched-literal unit propagation, 1-UIP
// conflict analysis with clause minimization, a tiered learnt-clause
// database, a pair of interchangeable branching heuristics, a
// glue-and-geometric restart controller, and a failed-literal probing
// engine that runs between restarts.
type Solver struct {
	config *config.Config
	logger *logrus.Logger
	rng    *rand.Rand

	// Model database.
	userVars     map[int]int
	internalVars map[int]int
	model        map[int]bool

	// Constraint database (module A, module F).
	constrs                                          []*Clause
	tier0, tier1, tier2, tier3                        []*Clause
	lastReduceTier1, lastReduceTier2, lastReduceTier3 int
	tier2Cap                                          float64
	claInc                                            float64

	// Branching heuristics (module G).
	activityVSIDS []float64
	activityMaple []float64
	conflicted    []int
	varTimestamp  []int
	heapVSIDS     *order.Heap
	heapMaple     *order.Heap
	varInc        float64
	varDecay      float64
	stepSize      float64
	polarity      []bool
	removed       []removedTag

	// Watch lists (module C).
	binWatches  [][]binWatch
	longWatches [][]longWatch

	// Trail and assignment store (module B).
	assigns   []tribool.Tribool
	trail     []lit.Lit
	trailLim  []int
	qhead     int
	reason    []PropBy
	level     []int
	rootLevel int

	// Restart controller (module H).
	restartCtl    *restartController
	restartBudget int

	// Probing engine (module J).
	numPropsMultiplier float64
	probeStats         ProbeStats
	implCache          map[lit.Lit]map[lit.Lit]bool

	dataSync DataSync
	drat     DRATSink

	ok bool

	stats Stats
}

// New returns a new, empty solver configured by c. Passing nil uses
// config.New's defaults.
func New(c *config.Config) *Solver {
	if c == nil {
		c = config.New()
	}

	s := &Solver{
		config:             c,
		logger:             c.Logger,
		rng:                rand.New(rand.NewSource(c.Seed)),
		userVars:           map[int]int{},
		internalVars:       map[int]int{},
		model:              map[int]bool{},
		varInc:             1.0,
		claInc:             1.0,
		varDecay:           c.VarDecayStart,
		stepSize:           c.StepSizeStart,
		numPropsMultiplier: 1.0,
		restartBudget:      c.RestartFirst,
		tier2Cap:           float64(c.Tier2SoftCap),
		dataSync:           noopDataSync{},
		drat:               noopDRATSink{},
		ok:                 true,
	}
	s.restartCtl = newRestartController(c)
	s.heapVSIDS = order.New(s, &s.activityVSIDS)
	s.heapMaple = order.New(s, &s.activityMaple)

	return s
}

// Version returns the version of the solver.
func Version() string {
	return fmt.Sprintf("%d.%d", VersionMajor, VersionMinor)
}

// Unassigned implements order.Assignments, letting both branching heaps
// share the solver's own assignment table instead of a copy.
func (s *Solver) Unassigned(v int) bool {
	return s.assigns[v].Undef()
}

// newVar registers p's variable if it hasn't been seen before, growing
// every per-variable table in lockstep, and returns p translated into the
// solver's own dense internal numbering.
func (s *Solver) newVar(p lit.Lit) lit.Lit {
	if _, ok := s.userVars[p.Var()]; !ok {
		idx := s.NVars()
		s.userVars[p.Var()] = idx
		s.internalVars[idx] = p.Var()

		s.assigns = append(s.assigns, tribool.Undef)
		s.level = append(s.level, -1)
		s.reason = append(s.reason, PropBy{})
		s.varTimestamp = append(s.varTimestamp, 0)
		s.polarity = append(s.polarity, false)
		s.removed = append(s.removed, removedNone)
		s.activityVSIDS = append(s.activityVSIDS, 0)
		s.activityMaple = append(s.activityMaple, 0)
		s.conflicted = append(s.conflicted, 0)

		s.growWatches()

		s.heapVSIDS.NewVar()
		s.heapMaple.NewVar()
	}
	return lit.New(s.userVars[p.Var()], p.Sign())
}

// AddClause adds a new problem clause to the solver, translating ps
// (signed DIMACS-style variable numbers) into internal literals. It
// returns false, and leaves the solver permanently unsatisfiable, if the
// clause is empty after simplification.
func (s *Solver) AddClause(ps []int) bool {
	if !s.ok {
		return false
	}

	lits := make([]lit.Lit, 0, len(ps))
	for _, p := range ps {
		lits = append(lits, s.newVar(lit.NewFromInt(p)))
	}

	ok, c := newClause(s, lits, false)
	if !ok {
		s.ok = false
		return false
	}
	if c != nil {
		s.constrs = append(s.constrs, c)
	}
	return true
}

// litValue returns p's current truth value, threading through the sign
// bit so the caller never has to special-case negative literals.
func (s *Solver) litValue(p lit.Lit) tribool.Tribool {
	if p == lit.Undef {
		return tribool.Undef
	}
	if p.Sign() {
		return s.assigns[p.Index()].Not()
	}
	return s.assigns[p.Index()]
}

// cacheImplies reports whether a prior probing round recorded that from
// implies to. With no cache populated this always reports false.
func (s *Solver) cacheImplies(from, to lit.Lit) bool {
	m, ok := s.implCache[from]
	if !ok {
		return false
	}
	return m[to]
}

// recordImplication populates the probing implication cache used by
// minimizeCache, recording that from implies to.
func (s *Solver) recordImplication(from, to lit.Lit) {
	if s.implCache == nil {
		s.implCache = map[lit.Lit]map[lit.Lit]bool{}
	}
	m, ok := s.implCache[from]
	if !ok {
		m = map[lit.Lit]bool{}
		s.implCache[from] = m
	}
	m[to] = true
}

// Answer returns the most recently discovered model as signed DIMACS-style
// variable numbers, sorted by variable.
func (s *Solver) Answer() []int {
	ps := make([]int, 0, len(s.model))

	for p, val := range s.model {
		if val {
			ps = append(ps, p)
		} else {
			ps = append(ps, -p)
		}
	}
	sort.Slice(ps, func(i, j int) bool {
		a, b := ps[i], ps[j]
		if a < 0 {
			a = -a
		}
		if b < 0 {
			b = -b
		}
		return a < b
	})
	return ps
}

// NVars returns the number of variables registered with the solver.
func (s *Solver) NVars() int {
	return len(s.assigns)
}
