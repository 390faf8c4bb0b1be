package solver

import (
	"bufio"
	"encoding/binary"
	"io"

	"github.com/pkg/errors"

	"github.com/ericr/saturday/lit"
)

// stateMagic tags a saved-state stream so LoadState can refuse a file that
// isn't one of its own.
const stateMagic uint32 = 0x53415421 // "SAT!"

// SaveState writes the solver's root-level knowledge — its irredundant and
// redundant binary clauses, its irredundant clauses of three or more
// literals, and the polarity cache — to w, in a small length-prefixed
// little-endian layout. It does not persist the learnt-clause database
// above the binary tier, the trail, or any in-progress search state;
// SaveState is meant to checkpoint a problem between runs, not to
// serialize a paused search.
func (s *Solver) SaveState(w io.Writer) error {
	bw := bufio.NewWriter(w)

	if err := binary.Write(bw, binary.LittleEndian, stateMagic); err != nil {
		return errors.Wrap(err, "solver: write state magic")
	}
	if err := binary.Write(bw, binary.LittleEndian, uint32(s.NVars())); err != nil {
		return errors.Wrap(err, "solver: write variable count")
	}

	irredBin := s.binaryPairs(false)
	redBin := s.binaryPairs(true)

	if err := writeBinPairs(bw, irredBin); err != nil {
		return errors.Wrap(err, "solver: write irredundant binaries")
	}
	if err := writeBinPairs(bw, redBin); err != nil {
		return errors.Wrap(err, "solver: write redundant binaries")
	}
	if err := writeClauses(bw, s.constrs); err != nil {
		return errors.Wrap(err, "solver: write irredundant clauses")
	}
	if err := writePolarity(bw, s.polarity); err != nil {
		return errors.Wrap(err, "solver: write polarity cache")
	}

	return bw.Flush()
}

// LoadState rebuilds a solver from a stream SaveState wrote, into the fresh
// Solver that newSolver returns.
func LoadState(r io.Reader, newSolver func() *Solver) (*Solver, error) {
	br := bufio.NewReader(r)

	var magic uint32
	if err := binary.Read(br, binary.LittleEndian, &magic); err != nil {
		return nil, errors.Wrap(err, "solver: read state magic")
	}
	if magic != stateMagic {
		return nil, errors.New("solver: not a saved solver state")
	}

	var nVars uint32
	if err := binary.Read(br, binary.LittleEndian, &nVars); err != nil {
		return nil, errors.Wrap(err, "solver: read variable count")
	}

	s := newSolver()
	for v := 1; v <= int(nVars); v++ {
		s.newVar(lit.NewFromInt(v))
	}

	irredBin, err := readBinPairs(br)
	if err != nil {
		return nil, errors.Wrap(err, "solver: read irredundant binaries")
	}
	redBin, err := readBinPairs(br)
	if err != nil {
		return nil, errors.Wrap(err, "solver: read redundant binaries")
	}
	for _, pair := range irredBin {
		s.addBinary(pair[0], pair[1], false)
	}
	for _, pair := range redBin {
		s.addBinary(pair[0], pair[1], true)
	}

	clauses, err := readClauses(br)
	if err != nil {
		return nil, errors.Wrap(err, "solver: read irredundant clauses")
	}
	for _, lits := range clauses {
		ok, c := newClause(s, lits, false)
		if !ok {
			s.ok = false
			continue
		}
		if c != nil {
			s.constrs = append(s.constrs, c)
		}
	}

	polarity, err := readPolarity(br)
	if err != nil {
		return nil, errors.Wrap(err, "solver: read polarity cache")
	}
	copy(s.polarity, polarity)

	return s, nil
}

func writeBinPairs(w io.Writer, pairs [][2]lit.Lit) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(len(pairs))); err != nil {
		return err
	}
	for _, p := range pairs {
		if err := binary.Write(w, binary.LittleEndian, int32(p[0])); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, int32(p[1])); err != nil {
			return err
		}
	}
	return nil
}

func readBinPairs(r io.Reader) ([][2]lit.Lit, error) {
	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, err
	}
	out := make([][2]lit.Lit, 0, count)
	for i := uint32(0); i < count; i++ {
		var a, b int32
		if err := binary.Read(r, binary.LittleEndian, &a); err != nil {
			return nil, err
		}
		if err := binary.Read(r, binary.LittleEndian, &b); err != nil {
			return nil, err
		}
		out = append(out, [2]lit.Lit{lit.Lit(a), lit.Lit(b)})
	}
	return out, nil
}

func writeClauses(w io.Writer, clauses []*Clause) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(len(clauses))); err != nil {
		return err
	}
	for _, c := range clauses {
		if err := binary.Write(w, binary.LittleEndian, uint32(c.Len())); err != nil {
			return err
		}
		for _, l := range c.Lits() {
			if err := binary.Write(w, binary.LittleEndian, int32(l)); err != nil {
				return err
			}
		}
	}
	return nil
}

func readClauses(r io.Reader) ([][]lit.Lit, error) {
	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, err
	}
	out := make([][]lit.Lit, 0, count)
	for i := uint32(0); i < count; i++ {
		var n uint32
		if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
			return nil, err
		}
		lits := make([]lit.Lit, n)
		for j := uint32(0); j < n; j++ {
			var v int32
			if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
				return nil, err
			}
			lits[j] = lit.Lit(v)
		}
		out = append(out, lits)
	}
	return out, nil
}

func writePolarity(w io.Writer, polarity []bool) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(len(polarity))); err != nil {
		return err
	}
	packed := make([]byte, (len(polarity)+7)/8)
	for i, p := range polarity {
		if p {
			packed[i/8] |= 1 << uint(i%8)
		}
	}
	_, err := w.Write(packed)
	return err
}

func readPolarity(r io.Reader) ([]bool, error) {
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, err
	}
	packed := make([]byte, (n+7)/8)
	if _, err := io.ReadFull(r, packed); err != nil {
		return nil, err
	}
	out := make([]bool, n)
	for i := range out {
		out[i] = packed[i/8]&(1<<uint(i%8)) != 0
	}
	return out, nil
}
