package encoding

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDimacsSkipsHeaderAndComments(t *testing.T) {
	in := strings.NewReader("c a comment\np cnf 3 2\n1 2 3 0\n-1 -2 0\n")

	clauses, err := ParseDimacs(in)

	require.NoError(t, err)
	assert.Equal(t, [][]int{{1, 2, 3}, {-1, -2}}, clauses)
}

func TestParseDimacsDropsTrailingZero(t *testing.T) {
	in := strings.NewReader("1 0\n")

	clauses, err := ParseDimacs(in)

	require.NoError(t, err)
	assert.Equal(t, [][]int{{1}}, clauses)
}

func TestParseDimacsSkipsBlankLines(t *testing.T) {
	in := strings.NewReader("1 2 0\n\n-1 0\n")

	clauses, err := ParseDimacs(in)

	require.NoError(t, err)
	assert.Equal(t, [][]int{{1, 2}, {-1}}, clauses)
}

func TestParseDimacsWrapsMalformedLine(t *testing.T) {
	in := strings.NewReader("1 x 0\n")

	_, err := ParseDimacs(in)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "line 1")
}

func TestParseDimacsEmptyInputYieldsNoClauses(t *testing.T) {
	clauses, err := ParseDimacs(strings.NewReader(""))

	require.NoError(t, err)
	assert.Empty(t, clauses)
}
