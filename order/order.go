// Package order implements the max-heap variable-ordering abstraction shared
// by the solver's two branching heuristics. Each heuristic owns its own Heap
// instance bound to its own activity slice; the heap implementation itself —
// percolate up/down, decrease/increase key, bulk rebuild — is shared.
package order

import "github.com/ericr/saturday/lit"

// Heap is a binary max-heap over variable indices, ordered by an externally
// owned activity slice. It never copies the activity slice: callers mutate
// it directly (bump, decay, rescale) and call Fix/Build to restore heap
// order.
type Heap struct {
	vars     []int
	indices  []int // indices[v] is v's position in vars, or -1 if absent.
	assigns  Assignments
	activity *[]float64
}

// Assignments reports whether a variable is currently unassigned. It is
// satisfied by the solver's tribool assignment slice.
type Assignments interface {
	Unassigned(v int) bool
}

// New returns a new, empty Heap keyed by activity.
func New(assigns Assignments, activity *[]float64) *Heap {
	return &Heap{
		assigns:  assigns,
		activity: activity,
	}
}

// Init builds heap order over whatever variables have already been added
// via NewVar, without reinserting them.
func (h *Heap) Init() {
	n := h.len()
	for i := n/2 - 1; i >= 0; i-- {
		h.down(i, n)
	}
}

// NewVar registers a new variable with the heap, in heap order. Variables
// are assumed dense and 0-indexed, matching the solver's variable table.
func (h *Heap) NewVar() {
	v := len(h.indices)
	h.indices = append(h.indices, len(h.vars))
	h.vars = append(h.vars, v)
	h.up(h.len() - 1)
}

// Len returns the number of variables currently in the heap.
func (h *Heap) Len() int {
	return len(h.vars)
}

// InHeap reports whether v currently has a slot in the heap.
func (h *Heap) InHeap(v int) bool {
	return v < len(h.indices) && h.indices[v] != -1
}

// Choose pops variables off the heap until it finds one that is still
// unassigned, and returns its 1-indexed variable number. It returns the
// integer value of lit.Undef if the heap is exhausted.
func (h *Heap) Choose() int {
	for h.len() > 0 {
		if v := h.pop(); h.assigns.Unassigned(v) {
			return v + 1
		}
	}
	return int(lit.Undef)
}

// Push reinserts a variable into the heap (e.g. after backtracking unbinds
// it). It is a no-op if v is already present.
func (h *Heap) Push(v int) {
	if h.InHeap(v) {
		return
	}
	for len(h.indices) <= v {
		h.indices = append(h.indices, -1)
	}
	h.indices[v] = len(h.vars)
	h.vars = append(h.vars, v)
	h.up(h.len() - 1)
}

// Fix restores heap order around v after its activity has changed.
func (h *Heap) Fix(v int) {
	if !h.InHeap(v) {
		return
	}
	i := h.indices[v]
	h.down(i, h.len())
	h.up(i)
}

// Remove drops v from the heap permanently (e.g. the variable was
// eliminated or replaced and must never be branched on again).
func (h *Heap) Remove(v int) {
	if !h.InHeap(v) {
		return
	}
	i := h.indices[v]
	n := h.len() - 1
	h.swap(i, n)
	h.vars = h.vars[:n]
	h.indices[v] = -1
	if i < n {
		h.down(i, n)
		h.up(i)
	}
}

// Build discards the current heap contents and rebuilds from ns, in heap
// order. The solver package does not call it.
func (h *Heap) Build(ns []int) {
	for _, v := range h.vars {
		h.indices[v] = -1
	}
	h.vars = h.vars[:0]
	for i, v := range ns {
		for len(h.indices) <= v {
			h.indices = append(h.indices, -1)
		}
		h.indices[v] = i
		h.vars = append(h.vars, v)
	}
	n := h.len()
	for i := n/2 - 1; i >= 0; i-- {
		h.down(i, n)
	}
}

// At returns the variable stored at heap position i, mainly for tests and
// for peeking at the current max without popping it.
func (h *Heap) At(i int) int {
	return h.vars[i]
}

func (h *Heap) less(i, j int) bool {
	return (*h.activity)[h.vars[i]] > (*h.activity)[h.vars[j]]
}

func (h *Heap) swap(i, j int) {
	vi, vj := h.vars[i], h.vars[j]
	h.vars[i], h.vars[j] = vj, vi
	h.indices[vi], h.indices[vj] = j, i
}

func (h *Heap) len() int {
	return len(h.vars)
}

func (h *Heap) pop() int {
	n := h.len() - 1
	h.swap(0, n)
	v := h.vars[n]
	h.vars = h.vars[:n]
	h.indices[v] = -1
	if n > 0 {
		h.down(0, n)
	}
	return v
}

// up percolates the element at index j toward the root, as adopted from
// Go's container/heap package.
func (h *Heap) up(j int) {
	for {
		i := (j - 1) / 2
		if i == j || !h.less(j, i) {
			break
		}
		h.swap(i, j)
		j = i
	}
}

// down percolates the element at index i0 toward the leaves, as adopted
// from Go's container/heap package.
func (h *Heap) down(i0, n int) bool {
	i := i0
	for {
		j1 := 2*i + 1
		if j1 >= n || j1 < 0 {
			break
		}
		j := j1
		if j2 := j1 + 1; j2 < n && h.less(j2, j1) {
			j = j2
		}
		if !h.less(j, i) {
			break
		}
		h.swap(i, j)
		i = j
	}
	return i > i0
}
