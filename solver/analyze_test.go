package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ericr/saturday/lit"
)

func TestAbstractLevelWrapsAtThirtyTwo(t *testing.T) {
	assert.Equal(t, abstractLevel(0), abstractLevel(32))
	assert.NotEqual(t, abstractLevel(1), abstractLevel(2))
}

func TestComputeGlueCountsDistinctLevels(t *testing.T) {
	s := New(testConfig())
	a, b, c := lit.New(0, false), lit.New(1, false), lit.New(2, false)
	addLits(s, []lit.Lit{a, b, c})

	s.level[a.Index()] = 1
	s.level[b.Index()] = 1
	s.level[c.Index()] = 2

	assert.Equal(t, 2, s.computeGlue([]lit.Lit{a, b, c}))
}

func TestTierForGlue(t *testing.T) {
	conf := testConfig()
	s := New(conf)

	assert.Equal(t, uint8(0), s.tierForGlue(conf.Tier0Glue))
	assert.Equal(t, uint8(1), s.tierForGlue(conf.Tier0Glue+1))
	assert.Equal(t, uint8(2), s.tierForGlue(conf.Tier1Glue+1))
}

func TestTierForGlueRoutesToTier3WhenPredictorEnabled(t *testing.T) {
	conf := testConfig()
	conf.Predictor = true
	s := New(conf)

	assert.Equal(t, uint8(3), s.tierForGlue(conf.Tier1Glue+1))
}

func TestRecordUnitLearntEnqueuesWithNoClause(t *testing.T) {
	s := New(testConfig())
	a := lit.New(0, false)
	addLits(s, []lit.Lit{a})

	s.record([]lit.Lit{a})

	assert.True(t, s.litValue(a).True())
	assert.True(t, s.reason[a.Index()].IsNone())
}

func TestRecordBinaryLearntEnqueuesWithBinaryReason(t *testing.T) {
	s := New(testConfig())
	a, b := lit.New(0, false), lit.New(1, false)
	addLits(s, []lit.Lit{a, b})

	s.record([]lit.Lit{a, b})

	assert.True(t, s.litValue(a).True())
	reason := s.reason[a.Index()]
	assert.Equal(t, reasonBinary, reason.kind)
	assert.Equal(t, b, reason.binA)
	assert.Equal(t, a, reason.binB)
}

func TestRecordLongLearntFilesIntoATier(t *testing.T) {
	s := New(testConfig())
	a, b, c := lit.New(0, false), lit.New(1, false), lit.New(2, false)
	addLits(s, []lit.Lit{a, b, c})
	s.level[b.Index()] = 1
	s.level[c.Index()] = 1

	s.record([]lit.Lit{a, b.Not(), c.Not()})

	assert.True(t, s.litValue(a).True())
	assert.Equal(t, 1, s.NLearnts())
}

func TestRecordHighGlueLearntFilesIntoTier3WhenPredictorEnabled(t *testing.T) {
	conf := testConfig()
	conf.Predictor = true
	s := New(conf)

	lits := make([]lit.Lit, 0, conf.Tier1Glue+2)
	for i := 0; i <= conf.Tier1Glue+1; i++ {
		p := lit.New(i, false)
		addLits(s, []lit.Lit{p})
		s.level[p.Index()] = i
		lits = append(lits, p)
	}

	s.record(lits)

	assert.Len(t, s.tier3, 1)
	assert.Empty(t, s.tier2)
}

func TestRecordKeepsAssertingLiteralAtPositionZeroWhenNotRawMinimal(t *testing.T) {
	s := New(testConfig())
	a, b, c := lit.New(0, false), lit.New(1, false), lit.New(2, false)
	addLits(s, []lit.Lit{a, b, c})
	s.level[a.Index()] = 1
	s.level[b.Index()] = 2

	// a < b < c in raw encoding, but c is the asserting literal: it must
	// land at lits[0] regardless of where the sort would otherwise put it.
	s.record([]lit.Lit{c, a, b})

	reason := s.reason[c.Index()]
	assert.Equal(t, reasonLong, reason.kind)
	assert.Equal(t, c, reason.clause.lits[0])
}

func TestMinimizeBinaryDropsSubsumedLiteral(t *testing.T) {
	s := New(testConfig())
	a, p := lit.New(0, false), lit.New(1, false)
	addLits(s, []lit.Lit{a, p})
	s.addBinary(p.Not(), a, true) // (¬p ∨ a): resolving learnt on p collapses to {a}

	learnt := s.minimizeBinary([]lit.Lit{a, p}, nil)

	assert.Equal(t, []lit.Lit{a}, learnt)
}

func TestMinimizeCacheNoopWithoutCache(t *testing.T) {
	s := New(testConfig())
	a, b := lit.New(0, false), lit.New(1, false)
	addLits(s, []lit.Lit{a, b})

	learnt := []lit.Lit{a, b}
	assert.Equal(t, learnt, s.minimizeCache(learnt, nil))
}

func TestMinimizeCacheDropsCachedImplication(t *testing.T) {
	s := New(testConfig())
	a, b := lit.New(0, false), lit.New(1, false)
	addLits(s, []lit.Lit{a, b})
	s.recordImplication(a, b.Not())

	learnt := s.minimizeCache([]lit.Lit{a, b}, nil)

	assert.Equal(t, []lit.Lit{a}, learnt)
}
