// Package encoding reads and writes the DIMACS CNF and DRAT formats the
// solver's command-line interface accepts and emits.
package encoding

import (
	"bufio"
	"bytes"
	"io"
	"strconv"

	"github.com/pkg/errors"
)

// ParseDimacs reads a DIMACS CNF file, returning one clause (a slice of
// signed variable numbers) per non-comment, non-header line.
func ParseDimacs(in io.Reader) ([][]int, error) {
	scanner := bufio.NewScanner(in)
	var clauses [][]int
	line := 0

	for scanner.Scan() {
		line++
		fields := bytes.Fields(scanner.Bytes())

		if len(fields) < 2 {
			continue
		}
		prefix := string(fields[0])

		if prefix == "c" || prefix == "p" {
			continue
		}

		clause := make([]int, 0, len(fields))
		for _, field := range fields {
			p, err := strconv.Atoi(string(field))
			if err != nil {
				return nil, errors.Wrapf(err, "encoding: parse dimacs line %d", line)
			}
			if p != 0 {
				clause = append(clause, p)
			}
		}
		clauses = append(clauses, clause)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "encoding: read dimacs")
	}
	return clauses, nil
}
