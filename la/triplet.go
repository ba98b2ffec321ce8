// Copyright 2016 The Gosl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package la

// Triplet is a sparse matrix in coordinate (COO) format: a list of
// (row, col, value) entries. Repeated (row, col) pairs accumulate by
// addition, matching the teacher's `la.Triplet` semantics exactly
// (`A.Put(0, 0, +1.0)` twice means the (0,0) entry is 2.0).
type Triplet struct {
	nrow, ncol int
	rows, cols []int
	vals       []float64
}

// Init (re)initializes the triplet for an m x n matrix with an expected
// number of (possibly repeated) entries, maxNnz, used only as a capacity
// hint.
func (t *Triplet) Init(m, n, maxNnz int) {
	t.nrow, t.ncol = m, n
	t.rows = make([]int, 0, maxNnz)
	t.cols = make([]int, 0, maxNnz)
	t.vals = make([]float64, 0, maxNnz)
}

// Start clears the entry list but keeps the matrix dimensions and
// underlying capacity, for reuse on the next Jacobian refresh.
func (t *Triplet) Start() {
	t.rows = t.rows[:0]
	t.cols = t.cols[:0]
	t.vals = t.vals[:0]
}

// Put appends one (row, col, value) entry.
func (t *Triplet) Put(i, j int, v float64) {
	t.rows = append(t.rows, i)
	t.cols = append(t.cols, j)
	t.vals = append(t.vals, v)
}

// Size returns the number of entries currently stored (including
// duplicates).
func (t *Triplet) Size() int { return len(t.vals) }

// Dims returns (nrow, ncol).
func (t *Triplet) Dims() (int, int) { return t.nrow, t.ncol }

// Entries returns the raw (rows, cols, vals) slices, for building a
// SymbolicSparseColMat.
func (t *Triplet) Entries() (rows, cols []int, vals []float64) {
	return t.rows, t.cols, t.vals
}

// ToDense materializes the triplet (summing duplicates) into a dense
// matrix.
func (t *Triplet) ToDense() *Matrix {
	m := NewMatrix(t.nrow, t.ncol)
	for k := range t.vals {
		m.Add(t.rows[k], t.cols[k], t.vals[k])
	}
	return m
}
