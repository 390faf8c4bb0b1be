package solver

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ericr/saturday/config"
	"github.com/ericr/saturday/lit"
)

func TestHeapSelectsConfiguredHeuristic(t *testing.T) {
	conf := testConfig()
	conf.BranchHeuristic = config.VSIDS
	s := New(conf)
	assert.Same(t, s.heapVSIDS, s.heap())

	conf.BranchHeuristic = config.Maple
	assert.Same(t, s.heapMaple, s.heap())
}

func TestVarBumpActivityNoopUnderMaple(t *testing.T) {
	conf := testConfig()
	conf.BranchHeuristic = config.Maple
	s := New(conf)
	p := lit.New(0, false)
	addLits(s, []lit.Lit{p})

	s.varBumpActivity(p)

	assert.Equal(t, 0.0, s.activityVSIDS[p.Index()])
}

func TestVarBumpActivityRaisesVSIDSActivity(t *testing.T) {
	s := New(testConfig())
	p := lit.New(0, false)
	addLits(s, []lit.Lit{p})

	s.varBumpActivity(p)

	assert.Greater(t, s.activityVSIDS[p.Index()], 0.0)
}

func TestVarDecayActivityGrowsTowardCap(t *testing.T) {
	conf := testConfig()
	s := New(conf)
	initial := s.varDecay

	s.varDecayActivity()

	assert.Greater(t, s.varDecay, initial)
	assert.LessOrEqual(t, s.varDecay, conf.VarDecayCap)
}

func TestHeuristicOnConflictNoopUnderVSIDS(t *testing.T) {
	s := New(testConfig())
	addLits(s, []lit.Lit{lit.New(0, false)})

	s.heuristicOnConflict(0)

	assert.Equal(t, 0, s.conflicted[0])
}

func TestHeuristicOnConflictIncrementsUnderMaple(t *testing.T) {
	conf := testConfig()
	conf.BranchHeuristic = config.Maple
	s := New(conf)
	addLits(s, []lit.Lit{lit.New(0, false)})

	s.heuristicOnConflict(0)

	assert.Equal(t, 1, s.conflicted[0])
}

func TestPow95DecaysTowardZero(t *testing.T) {
	assert.Equal(t, 1.0, pow95(0))
	assert.Less(t, pow95(10), pow95(1))
}

func TestDecayStepSizeAnnealsTowardFloor(t *testing.T) {
	conf := testConfig()
	conf.StepSizeStart = 0.4
	conf.StepSizeFloor = 0.39
	conf.StepSizeDecrement = 0.1
	s := New(conf)

	s.decayStepSize()

	assert.Equal(t, conf.StepSizeFloor, s.stepSize)
}

func TestPickPolarityModes(t *testing.T) {
	conf := testConfig()
	s := New(conf)
	addLits(s, []lit.Lit{lit.New(0, false)})
	rng := rand.New(rand.NewSource(1))

	conf.PolarityMode = config.PolarityAlwaysTrue
	assert.False(t, s.pickPolarity(0, rng))

	conf.PolarityMode = config.PolarityAlwaysFalse
	assert.True(t, s.pickPolarity(0, rng))

	conf.PolarityMode = config.PolarityCache
	s.polarity[0] = true
	assert.True(t, s.pickPolarity(0, rng))
}

func TestPickBranchVarReturnsUndefWhenHeapEmpty(t *testing.T) {
	s := New(testConfig())
	s.heapVSIDS.Init()

	v := s.pickBranchVar(s.rng)

	assert.Equal(t, int(lit.Undef), v)
}
