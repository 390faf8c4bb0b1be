package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ericr/saturday/lit"
)

func TestOtfsCandidateShrinksSubsumedAntecedent(t *testing.T) {
	s := New(testConfig())
	s.config.OTFS = true

	a, b, c, d := lit.New(0, false), lit.New(1, false), lit.New(2, false), lit.New(3, false)
	lits := []lit.Lit{a, b, c, d}
	addLits(s, lits)
	_, cl := newClause(s, lits, false)

	// a is the pivot being resolved; b and d's negations are already in the
	// in-progress learnt clause, leaving c as the one surviving literal.
	learntSoFar := map[lit.Lit]bool{b.Not(): true, d.Not(): true}

	s.otfsCandidate(PropBy{kind: reasonLong, clause: cl}, a, learntSoFar)

	assert.Equal(t, 2, cl.Len())
	assert.ElementsMatch(t, []lit.Lit{a, c}, cl.Lits())
	assert.Equal(t, 1, s.stats.OTFShrinks)
}

func TestOtfsCandidateNoopWhenDisabled(t *testing.T) {
	s := New(testConfig())
	s.config.OTFS = false

	a, b, c, d := lit.New(0, false), lit.New(1, false), lit.New(2, false), lit.New(3, false)
	lits := []lit.Lit{a, b, c, d}
	addLits(s, lits)
	_, cl := newClause(s, lits, false)

	learntSoFar := map[lit.Lit]bool{b.Not(): true}
	s.otfsCandidate(PropBy{kind: reasonLong, clause: cl}, a, learntSoFar)

	assert.Equal(t, 4, cl.Len())
}

func TestOtfsCandidateNoopWhenMultipleLiteralsUncovered(t *testing.T) {
	s := New(testConfig())
	s.config.OTFS = true

	a, b, c, d := lit.New(0, false), lit.New(1, false), lit.New(2, false), lit.New(3, false)
	lits := []lit.Lit{a, b, c, d}
	addLits(s, lits)
	_, cl := newClause(s, lits, false)

	s.otfsCandidate(PropBy{kind: reasonLong, clause: cl}, a, map[lit.Lit]bool{})

	assert.Equal(t, 4, cl.Len())
	assert.Equal(t, 0, s.stats.OTFShrinks)
}

func TestOtfsCandidateNoopForBinaryReason(t *testing.T) {
	s := New(testConfig())
	s.config.OTFS = true

	s.otfsCandidate(PropBy{kind: reasonBinary}, lit.New(0, false), map[lit.Lit]bool{})
}

func TestOtfsCandidateNoopForUndefPivot(t *testing.T) {
	s := New(testConfig())
	s.config.OTFS = true

	a, b, c, d := lit.New(0, false), lit.New(1, false), lit.New(2, false), lit.New(3, false)
	lits := []lit.Lit{a, b, c, d}
	addLits(s, lits)
	_, cl := newClause(s, lits, false)

	s.otfsCandidate(PropBy{kind: reasonLong, clause: cl}, lit.Undef, map[lit.Lit]bool{b.Not(): true})

	assert.Equal(t, 4, cl.Len())
}

func TestOtfsCandidateNoopForGaussTemp(t *testing.T) {
	s := New(testConfig())
	s.config.OTFS = true

	a, b, c, d := lit.New(0, false), lit.New(1, false), lit.New(2, false), lit.New(3, false)
	lits := []lit.Lit{a, b, c, d}
	addLits(s, lits)
	_, cl := newClause(s, lits, false)
	cl.gaussTemp = true

	learntSoFar := map[lit.Lit]bool{b.Not(): true}
	s.otfsCandidate(PropBy{kind: reasonLong, clause: cl}, a, learntSoFar)

	assert.Equal(t, 4, cl.Len())
}

func TestValidateOTFSConfigRejectsMutualExclusion(t *testing.T) {
	s := New(testConfig())
	s.config.OTFS = true
	s.config.Predictor = true

	assert.Error(t, s.validateOTFSConfig())
}

func TestValidateOTFSConfigAllowsOTFSAlone(t *testing.T) {
	s := New(testConfig())
	s.config.OTFS = true
	s.config.Predictor = false

	assert.NoError(t, s.validateOTFSConfig())
}
