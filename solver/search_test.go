package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResultString(t *testing.T) {
	assert.Equal(t, "true", ResultSat.String())
	assert.Equal(t, "false", ResultUnsat.String())
	assert.Equal(t, "undef", ResultUndef.String())
}

func TestSolveAssumingSatisfiable(t *testing.T) {
	s := New(testConfig())
	s.AddClause([]int{1, 2})
	s.AddClause([]int{-1, 2})

	status, final := s.SolveAssuming(nil)

	assert.Equal(t, ResultSat, status)
	assert.Nil(t, final)
}

func TestSolveAssumingUnsatisfiable(t *testing.T) {
	s := New(testConfig())
	s.AddClause([]int{1})
	s.AddClause([]int{-1})

	status, _ := s.SolveAssuming(nil)

	assert.Equal(t, ResultUnsat, status)
}

func TestSolveAssumingConflictsWithAssumption(t *testing.T) {
	s := New(testConfig())
	s.AddClause([]int{1})

	status, final := s.SolveAssuming([]int{-1})

	assert.Equal(t, ResultUnsat, status)
	assert.Equal(t, []int{-1}, final)
}

func TestSolveAssumingRejectsUnknownAssumptionVariable(t *testing.T) {
	s := New(testConfig())
	s.AddClause([]int{1, 2})

	status, _ := s.SolveAssuming([]int{99})

	assert.Equal(t, ResultUnsat, status)
}

func TestSolveWrapsSolveAssuming(t *testing.T) {
	s := New(testConfig())
	s.AddClause([]int{1, 2})
	s.AddClause([]int{-1, 2})

	assert.True(t, s.Solve(nil))
}

func TestSolveAssumingRejectsMutuallyExclusiveConfig(t *testing.T) {
	conf := testConfig()
	conf.OTFS = true
	conf.Predictor = true
	s := New(conf)
	s.AddClause([]int{1})

	status, _ := s.SolveAssuming(nil)

	assert.Equal(t, ResultUndef, status)
}

func TestSolveAssumingEmptyClauseUnsat(t *testing.T) {
	s := New(testConfig())
	s.AddClause([]int{})

	status, _ := s.SolveAssuming(nil)

	assert.Equal(t, ResultUnsat, status)
}

func TestAnalyzeFinalBlamesAssumptionLevelLiterals(t *testing.T) {
	s := New(testConfig())
	s.AddClause([]int{1, 2})
	s.AddClause([]int{-1, -2})

	status, final := s.SolveAssuming([]int{1, 2})

	assert.Equal(t, ResultUnsat, status)
	assert.NotEmpty(t, final)
}

func TestSolveManyStopsWhenExhausted(t *testing.T) {
	s := New(testConfig())
	s.AddClause([]int{1})
	s.AddClause([]int{-2, 2})

	models := s.SolveMany(nil, 10)

	assert.Len(t, models, 2)
	for _, m := range models {
		assert.Contains(t, m, 1)
	}
}

func TestSolveManyRespectsRequestedCount(t *testing.T) {
	s := New(testConfig())
	s.AddClause([]int{1, 2})

	models := s.SolveMany(nil, 1)

	assert.Len(t, models, 1)
}

func TestSolveManyUnsatReturnsNoModels(t *testing.T) {
	s := New(testConfig())
	s.AddClause([]int{1})
	s.AddClause([]int{-1})

	models := s.SolveMany(nil, 3)

	assert.Empty(t, models)
}
