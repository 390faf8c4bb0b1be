package solver

import "github.com/ericr/saturday/config"

// lbdStats is a small rolling window over recent learnt-clause glue scores
// or trail sizes, ported from the "queueData"/"lbdStats" pairing in
// gophersat's lbd.go. The restart controller keeps a short and a long glue
// window, whose averages decide whether a glue restart fires, and a
// trail-size window that decides whether one is blocked.
type lbdStats struct {
	data   []float64
	cap    int
	sum    float64
	pos    int
	filled bool
}

func newLBDStats(capacity int) *lbdStats {
	return &lbdStats{data: make([]float64, capacity), cap: capacity}
}

func (q *lbdStats) add(v float64) {
	if q.filled {
		q.sum -= q.data[q.pos]
	}
	q.data[q.pos] = v
	q.sum += v
	q.pos++
	if q.pos == q.cap {
		q.pos = 0
		q.filled = true
	}
}

func (q *lbdStats) ready() bool {
	return q.filled || q.pos == q.cap
}

func (q *lbdStats) average() float64 {
	n := q.pos
	if q.filled {
		n = q.cap
	}
	if n == 0 {
		return 0
	}
	return q.sum / float64(n)
}

// restartController owns the restart policies' rolling state: the
// conflicts since the last restart, the Luby index, and the three lbdStats
// windows the glue-based policies read. The geometric policy's budget is
// kept in Solver.restartBudget.
type restartController struct {
	conflictsSinceRestart int
	luby                  lubyState
	shortGlue             *lbdStats
	longGlue              *lbdStats
	trailSizes            *lbdStats
}

type lubyState struct {
	index int
}

func newRestartController(c *config.Config) *restartController {
	return &restartController{
		shortGlue:  newLBDStats(50),
		longGlue:   newLBDStats(c.GlueHistoryLen),
		trailSizes: newLBDStats(c.TrailHistoryLen),
	}
}

// luby returns the x-th term (counting from 0) of the Luby sequence with
// base y, ported from searcher.cpp's luby(): for y = 2 the terms run
// 1, 1, 2, 1, 1, 2, 4, ... The first loop finds the smallest complete
// subsequence covering x, the second walks down to the subsequence x falls
// in, and the term is y raised to that subsequence's depth.
func luby(y float64, x int) float64 {
	size, seq := 1, 0
	for size < x+1 {
		seq++
		size = 2*size + 1
	}
	for size-1 != x {
		size = (size - 1) / 2
		seq--
		x = x % size
	}
	result := 1.0
	for i := 0; i < seq; i++ {
		result *= y
	}
	return result
}

// restartOnConflict feeds one conflict's glue score and trail size into the
// restart controller's rolling windows. It must be called exactly once per
// conflict, before shouldRestart is consulted.
func (s *Solver) restartOnConflict(glue int, trailSize int) {
	rc := s.restartCtl
	rc.conflictsSinceRestart++
	rc.shortGlue.add(float64(glue))
	rc.longGlue.add(float64(glue))
	rc.trailSizes.add(float64(trailSize))
}

// shouldRestart reports whether search should unwind to the root level
// now, consulting whichever policy the config selects. Glue-based policies
// additionally block a restart when the trail is unusually long, on the
// theory that the search is making unusually good progress and a restart
// would throw that progress away.
func (s *Solver) shouldRestart() bool {
	rc := s.restartCtl
	c := s.config

	switch c.RestartType {
	case config.RestartLuby:
		budget := c.RestartFirst * int(luby(2, rc.luby.index))
		if rc.conflictsSinceRestart >= budget {
			return true
		}
		return false

	case config.RestartGeom:
		return rc.conflictsSinceRestart >= s.restartBudget

	case config.RestartGlue, config.RestartGlueGeom:
		if !rc.longGlue.ready() {
			return false
		}
		if s.blockedByTrail() {
			return false
		}
		return rc.shortGlue.average() > rc.longGlue.average()*c.GlueRestartMultiplier

	default:
		return rc.conflictsSinceRestart >= s.restartBudget
	}
}

// blockedByTrail implements the blocking-restart rule: a restart is
// suppressed while the current trail is long relative to its own recent
// history, since unwinding now would discard work the search is unlikely
// to redo as efficiently.
func (s *Solver) blockedByTrail() bool {
	rc := s.restartCtl
	if !rc.trailSizes.ready() {
		return false
	}
	return float64(s.NAssigns()) > rc.trailSizes.average()*1.4
}

// doRestart unwinds to the root level and advances whichever policy's
// counters the config selects.
func (s *Solver) doRestart() {
	rc := s.restartCtl
	rc.conflictsSinceRestart = 0

	switch s.config.RestartType {
	case config.RestartLuby:
		rc.luby.index++
	case config.RestartGeom:
		s.restartBudget = int(float64(s.restartBudget) * s.config.RestartInc)
	}

	s.logger.Debugf("restart #%d at %d conflicts", s.stats.Restarts+1, s.stats.Conflicts)

	s.cancelUntil(s.rootLevel)
	s.stats.Restarts++
}
