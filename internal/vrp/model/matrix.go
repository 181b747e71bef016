package model

import "fmt"

// Matrix is a square, non-negative integer travel cost/duration table,
// indexed by matrix index. It may be asymmetric: Cost(i, j) need not equal
// Cost(j, i). Once built it is treated as immutable for the lifetime of a
// descent.
type Matrix struct {
	n       int
	entries []int
}

// NewMatrix builds a Matrix from a dense row-major n*n slice of non-negative
// costs.
func NewMatrix(n int, entries []int) (Matrix, error) {
	if n < 0 {
		return Matrix{}, fmt.Errorf("new matrix: negative size %d", n)
	}
	if len(entries) != n*n {
		return Matrix{}, fmt.Errorf("new matrix: expected %d entries, got %d", n*n, len(entries))
	}
	for i, v := range entries {
		if v < 0 {
			return Matrix{}, fmt.Errorf("new matrix: negative cost %d at offset %d", v, i)
		}
	}
	return Matrix{n: n, entries: entries}, nil
}

// Size returns the matrix dimension.
func (m Matrix) Size() int { return m.n }

// Cost returns the travel cost/duration from index i to index j.
func (m Matrix) Cost(i, j int) int {
	return m.entries[i*m.n+j]
}
