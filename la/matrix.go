// Copyright 2016 The Gosl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package la

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Matrix is a dense m x n matrix, a thin wrapper around gonum's mat.Dense
// that keeps the teacher's Get/Set-based call sites intact.
type Matrix struct {
	data       *mat.Dense
	nrow, ncol int
}

// NewMatrix allocates a zeroed dense m x n matrix.
func NewMatrix(m, n int) *Matrix {
	return &Matrix{data: mat.NewDense(m, n, nil), nrow: m, ncol: n}
}

// Dims returns (nrow, ncol).
func (o *Matrix) Dims() (int, int) { return o.nrow, o.ncol }

// Get returns the value at (i, j).
func (o *Matrix) Get(i, j int) float64 { return o.data.At(i, j) }

// Set assigns the value at (i, j).
func (o *Matrix) Set(i, j int, v float64) { o.data.Set(i, j, v) }

// Add accumulates v into the existing value at (i, j).
func (o *Matrix) Add(i, j int, v float64) { o.data.Set(i, j, o.data.At(i, j)+v) }

// Dense returns the underlying gonum dense matrix for use with gonum's
// decomposition routines.
func (o *Matrix) Dense() *mat.Dense { return o.data }

// MaxDiff returns the largest absolute element-wise difference between o
// and other, used by CheckJ-style analytic-vs-numeric Jacobian comparisons.
func (o *Matrix) MaxDiff(other *Matrix) float64 {
	var max float64
	for i := 0; i < o.nrow; i++ {
		for j := 0; j < o.ncol; j++ {
			d := o.Get(i, j) - other.Get(i, j)
			if d < 0 {
				d = -d
			}
			if d > max {
				max = d
			}
		}
	}
	return max
}

// MatCondNum returns the condition number of a dense matrix using the
// Frobenius norm of A and its inverse, matching the teacher's
// `la.MatCondNum(Jmat, "F")` helper.
func MatCondNum(m *Matrix) float64 {
	var lu mat.LU
	lu.Factorize(m.data)
	var inv mat.Dense
	if err := lu.Inverse(&inv); err != nil {
		return math.Inf(1)
	}
	return mat.Norm(m.data, 2) * mat.Norm(&inv, 2)
}
