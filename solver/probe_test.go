package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ericr/saturday/lit"
)

func TestProbeVarLearnsFailedLiteral(t *testing.T) {
	s := New(testConfig())
	// (¬1 ∨ 2), (¬1 ∨ ¬2): assuming var 1 true forces both 2 and ¬2, a
	// conflict, so ¬1 must be learnt.
	s.AddClause([]int{-1, 2})
	s.AddClause([]int{-1, -2})

	ok := s.probeVar(0)

	assert.True(t, ok)
	assert.True(t, s.litValue(lit.New(0, false)).False())
	assert.Equal(t, 1, s.probeStats.NumFailed)
}

func TestProbeVarBothSameAdded(t *testing.T) {
	s := New(testConfig())
	// Both signs of var 1 force var 3 true: (¬1 ∨ 3), (1 ∨ 3).
	s.AddClause([]int{-1, 3})
	s.AddClause([]int{1, 3})

	ok := s.probeVar(0)

	assert.True(t, ok)
	// Variables are numbered by first appearance, so var 3 is looked up
	// through newVar rather than assumed to sit at index 2.
	assert.True(t, s.litValue(s.newVar(lit.NewFromInt(3))).True())
	assert.Equal(t, 1, s.probeStats.BothSameAdded)
}

func TestProbeBranchUnwindsToRootLevel(t *testing.T) {
	s := New(testConfig())
	a := lit.New(0, false)
	addLits(s, []lit.Lit{a})

	forced, confl := s.probeBranch(a, map[lit.Lit]lit.Lit{})

	assert.True(t, confl.IsNone())
	assert.Equal(t, []lit.Lit{a}, forced)
	assert.Equal(t, 0, s.decisionLevel())
	assert.True(t, s.litValue(a).Undef())
}

func TestHyperBinaryResolveAddsShortcut(t *testing.T) {
	s := New(testConfig())
	a, b, c := lit.New(0, false), lit.New(1, false), lit.New(2, false)
	addLits(s, []lit.Lit{a, b, c})

	doms := map[lit.Lit]lit.Lit{b: a, c: b}
	trail := []lit.Lit{a, b, c}

	s.hyperBinaryResolve(a, trail, doms)

	assert.True(t, s.hasBinary(a.Not(), c))
	assert.Equal(t, 1, s.probeStats.AddedBin)
}

func TestTransitiveReduceDropsRedundantDirectEdge(t *testing.T) {
	s := New(testConfig())
	a, b, c := lit.New(0, false), lit.New(1, false), lit.New(2, false)
	addLits(s, []lit.Lit{a, b, c})
	s.addBinary(a.Not(), b, false) // ¬a ∨ b, i.e. a -> b directly
	s.addBinary(b.Not(), c, false) // ¬b ∨ c, i.e. b -> c directly
	s.addBinary(a.Not(), c, true)  // ¬a ∨ c, i.e. a -> c directly (redundant)

	doms := map[lit.Lit]lit.Lit{b: a, c: a}
	trail := []lit.Lit{a, b, c}

	s.transitiveReduce(a, trail, doms)

	assert.False(t, s.hasBinary(a.Not(), c))
	assert.Equal(t, 1, s.probeStats.RemovedRedBin)
}

func TestHasBinaryAndBinaryIsRedundant(t *testing.T) {
	s := New(testConfig())
	a, b := lit.New(0, false), lit.New(1, false)
	addLits(s, []lit.Lit{a, b})

	assert.False(t, s.hasBinary(a, b))

	s.addBinary(a, b, true)
	assert.True(t, s.hasBinary(a, b))
	assert.True(t, s.binaryIsRedundant(a, b))
}

func TestProbeStatsAccessor(t *testing.T) {
	s := New(testConfig())
	s.probeStats.Rounds = 3
	assert.Equal(t, 3, s.ProbeStats().Rounds)
}
