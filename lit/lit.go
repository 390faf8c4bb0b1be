// Package lit implements the literal and variable encoding shared by every
// layer of the solver: a variable index plus a sign bit, packed so that a
// literal and its negation differ by exactly one bit.
package lit

import "fmt"

// Undef denotes the absence of a literal (e.g. an unassigned reason slot).
const Undef = Lit(-1)

// Var is a 0-indexed variable identifier.
type Var int

// Lit is a literal represented by an integer. The sign of the literal is
// the least significant bit; the variable index is the remaining bits. This
// encoding makes l and ~l adjacent when sorted and lets Not be a single xor.
type Lit int

// New returns a new literal given a 0-index variable, v, and whether the
// literal is negative.
func New(v int, neg bool) Lit {
	if neg {
		return Lit(v + v + 1)
	}
	return Lit(v + v)
}

// NewFromInt returns a new literal with a variable equal to i.
func NewFromInt(i int) Lit {
	if i < 0 {
		return New(-i-1, true)
	}
	return New(i-1, false)
}

// Not negates a literal.
func (l Lit) Not() Lit {
	return Lit(l ^ 1)
}

// Sign returns true if the literal is negative.
func (l Lit) Sign() bool {
	return l&1 == 1
}

// Index returns the literal's 0-indexed variable index.
func (l Lit) Index() int {
	return int(l >> 1)
}

// Var returns the literal's 1-indexed variable.
func (l Lit) Var() int {
	return int(l>>1) + 1
}

// Int returns the literal as a signed DIMACS integer.
func (l Lit) Int() int {
	if l.Sign() {
		return -l.Var()
	}
	return l.Var()
}

// String implements the Stringer interface.
func (l Lit) String() string {
	if l == Undef {
		return "undef"
	}
	if l.Sign() {
		return fmt.Sprintf("~%d", l.Var())
	}
	return fmt.Sprintf("%d", l.Var())
}
