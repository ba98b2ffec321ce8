// Copyright 2016 The Gosl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package la

import (
	"hash/fnv"
	"sort"

	"github.com/dicksontsai/sketchsolve/chk"
)

// SymbolicSparseColMat is the immutable structural (column-major, a.k.a.
// CSC) sparse pattern built once per model (spec §3, §4.2). ColPtr has
// length NCol+1; RowIdx[ColPtr[j]:ColPtr[j+1]] holds the sorted row indices
// of column j's nonzero entries.
type SymbolicSparseColMat struct {
	NRow, NCol int
	ColPtr     []int
	RowIdx     []int
}

// BuildSymbolicPattern deduplicates and sorts the given (row, col) cells
// into a SymbolicSparseColMat, exactly matching spec §4.2 step 5 ("Build
// the symbolic sparse matrix (column-major), which deduplicates and sorts
// internally").
func BuildSymbolicPattern(nrow, ncol int, rows, cols []int) *SymbolicSparseColMat {
	type cell struct{ r, c int }
	seen := make(map[cell]bool, len(rows))
	byCol := make([][]int, ncol)
	for k := range rows {
		ce := cell{rows[k], cols[k]}
		if seen[ce] {
			continue
		}
		seen[ce] = true
		byCol[cols[k]] = append(byCol[cols[k]], rows[k])
	}
	colPtr := make([]int, ncol+1)
	nnz := 0
	for j := 0; j < ncol; j++ {
		sort.Ints(byCol[j])
		nnz += len(byCol[j])
	}
	rowIdx := make([]int, 0, nnz)
	for j := 0; j < ncol; j++ {
		colPtr[j] = len(rowIdx)
		rowIdx = append(rowIdx, byCol[j]...)
	}
	colPtr[ncol] = len(rowIdx)
	return &SymbolicSparseColMat{NRow: nrow, NCol: ncol, ColPtr: colPtr, RowIdx: rowIdx}
}

// Nnz returns the number of structural nonzeros.
func (s *SymbolicSparseColMat) Nnz() int { return len(s.RowIdx) }

// IndexOf returns the position in RowIdx/Vals of entry (row, col), or -1 if
// that cell isn't part of the structural pattern. This is the "scan the
// column's row-index range for the target row" lookup spec §4.2 describes.
func (s *SymbolicSparseColMat) IndexOf(row, col int) int {
	lo, hi := s.ColPtr[col], s.ColPtr[col+1]
	// columns are short in practice (a handful of nonzeros per geometric
	// constraint), so linear scan beats binary search's overhead; the
	// structural order is preserved ascending, so we could binary search
	// if this ever shows up in profiles.
	for k := lo; k < hi; k++ {
		if s.RowIdx[k] == row {
			return k
		}
	}
	return -1
}

// Signature computes a stable fingerprint of (nrow, ncol, nnz, hash(colPtr),
// hash(rowIdx)), used to decide whether a cached symbolic LU/QR
// factorization may be reused (spec §9, "Pattern signature for cache
// reuse").
func (s *SymbolicSparseColMat) Signature() uint64 {
	h := fnv.New64a()
	var buf [8]byte
	putInt := func(v int) {
		x := uint64(v)
		for i := 0; i < 8; i++ {
			buf[i] = byte(x >> (8 * i))
		}
		h.Write(buf[:])
	}
	putInt(s.NRow)
	putInt(s.NCol)
	putInt(s.Nnz())
	for _, v := range s.ColPtr {
		putInt(v)
	}
	for _, v := range s.RowIdx {
		putInt(v)
	}
	return h.Sum64()
}

// SparseColMat pairs an immutable SymbolicSparseColMat with a mutable
// values slice: this is the Jacobian cache of spec §3/§4.2 (component F).
// The symbolic structure never changes after construction; Vals is
// overwritten on every Newton iteration by Clear + Add.
type SparseColMat struct {
	Sym  *SymbolicSparseColMat
	Vals []float64
}

// NewSparseColMat allocates the values vector for a given symbolic pattern.
func NewSparseColMat(sym *SymbolicSparseColMat) *SparseColMat {
	return &SparseColMat{Sym: sym, Vals: make([]float64, sym.Nnz())}
}

// Clear zeroes all numeric values, keeping the structural pattern.
func (m *SparseColMat) Clear() {
	for i := range m.Vals {
		m.Vals[i] = 0
	}
}

// Add accumulates v into cell (row, col). row/col must be part of the
// structural pattern (i.e. were included when the pattern was built);
// violating this is an assembly bug, not user error, so it panics via chk
// rather than returning an error (spec §4.2's refresh_jacobian step
// "accumulates (+=) into values[idx]").
func (m *SparseColMat) Add(row, col int, v float64) {
	idx := m.Sym.IndexOf(row, col)
	if idx < 0 {
		chk.Panic("la: (%d, %d) not part of symbolic sparsity pattern", row, col)
	}
	m.Vals[idx] += v
}

// ToDense materializes the sparse matrix into a dense one.
func (m *SparseColMat) ToDense() *Matrix {
	out := NewMatrix(m.Sym.NRow, m.Sym.NCol)
	for j := 0; j < m.Sym.NCol; j++ {
		for k := m.Sym.ColPtr[j]; k < m.Sym.ColPtr[j+1]; k++ {
			out.Set(m.Sym.RowIdx[k], j, m.Vals[k])
		}
	}
	return out
}

// TransposeVecMul computes dst = transpose(m) * x, i.e. dst[j] = sum_i
// m[i,j] * x[i], without materializing the transpose. Used by the Newton
// driver's gradient convergence check (‖Jᵀ F‖∞, spec §4.3 check 3).
func (m *SparseColMat) TransposeVecMul(dst, x []float64) {
	for j := 0; j < m.Sym.NCol; j++ {
		var sum float64
		for k := m.Sym.ColPtr[j]; k < m.Sym.ColPtr[j+1]; k++ {
			sum += m.Vals[k] * x[m.Sym.RowIdx[k]]
		}
		dst[j] = sum
	}
}
