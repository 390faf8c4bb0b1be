package encoding

import (
	"bufio"
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/ericr/saturday/solver"
)

// DRATWriter is a solver.DRATSink that emits the textual DRAT proof
// format: one line per clause, "a" for an addition and "d" for a
// deletion, literals space-separated and terminated by a trailing 0.
// DelayedDel and FinalizeDel both flush as ordinary deletions, since the
// text format has no notion of a deferred delete.
type DRATWriter struct {
	w   *bufio.Writer
	err error
}

// NewDRATWriter wraps w as a DRAT proof sink.
func NewDRATWriter(w io.Writer) *DRATWriter {
	return &DRATWriter{w: bufio.NewWriter(w)}
}

// Write implements solver.DRATSink.
func (d *DRATWriter) Write(op solver.DRATOp, lits []int) {
	if d.err != nil {
		return
	}

	tag := "a"
	if op == solver.DRATDelete || op == solver.DRATDelayedDel || op == solver.DRATFinalizeDel {
		tag = "d"
	}

	if _, err := d.w.WriteString(tag); err != nil {
		d.err = errors.Wrap(err, "encoding: write drat line")
		return
	}
	for _, l := range lits {
		if _, err := fmt.Fprintf(d.w, " %d", l); err != nil {
			d.err = errors.Wrap(err, "encoding: write drat literal")
			return
		}
	}
	if _, err := d.w.WriteString(" 0\n"); err != nil {
		d.err = errors.Wrap(err, "encoding: write drat terminator")
	}
}

// Close implements solver.DRATSink, flushing any buffered output.
func (d *DRATWriter) Close() error {
	if d.err != nil {
		return d.err
	}
	return errors.Wrap(d.w.Flush(), "encoding: flush drat writer")
}
