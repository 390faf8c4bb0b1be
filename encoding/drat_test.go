package encoding

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericr/saturday/solver"
)

func TestDRATWriterWritesAdditionLine(t *testing.T) {
	var buf bytes.Buffer
	w := NewDRATWriter(&buf)

	w.Write(solver.DRATAdd, []int{1, -2, 3})
	require.NoError(t, w.Close())

	assert.Equal(t, "a 1 -2 3 0\n", buf.String())
}

func TestDRATWriterWritesDeletionLine(t *testing.T) {
	var buf bytes.Buffer
	w := NewDRATWriter(&buf)

	w.Write(solver.DRATDelete, []int{1, 2})
	require.NoError(t, w.Close())

	assert.Equal(t, "d 1 2 0\n", buf.String())
}

func TestDRATWriterTreatsDelayedAndFinalizeDeleteAsDeletion(t *testing.T) {
	var buf bytes.Buffer
	w := NewDRATWriter(&buf)

	w.Write(solver.DRATDelayedDel, []int{1})
	w.Write(solver.DRATFinalizeDel, []int{2})
	require.NoError(t, w.Close())

	assert.Equal(t, "d 1 0\nd 2 0\n", buf.String())
}

func TestDRATWriterAccumulatesMultipleLines(t *testing.T) {
	var buf bytes.Buffer
	w := NewDRATWriter(&buf)

	w.Write(solver.DRATAdd, []int{1, 2})
	w.Write(solver.DRATDelete, []int{1, 2})
	require.NoError(t, w.Close())

	assert.Equal(t, "a 1 2 0\nd 1 2 0\n", buf.String())
}

type erroringWriter struct{}

func (erroringWriter) Write([]byte) (int, error) {
	return 0, assert.AnError
}

func TestDRATWriterSurfacesWriteErrorOnClose(t *testing.T) {
	w := NewDRATWriter(erroringWriter{})

	w.Write(solver.DRATAdd, []int{1})
	err := w.Close()

	assert.Error(t, err)
}
