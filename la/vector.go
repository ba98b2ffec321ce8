// Copyright 2016 The Gosl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package la implements the linear-algebra layer: dense and sparse
// matrices, the symbolic sparse pattern used by the Jacobian cache, and the
// linear solver Solve (dense LU and QR via gonum; a sparse matrix is
// densified before it is factored).
package la

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// NormInf returns max(|v_i|).
func NormInf(v []float64) float64 {
	var m float64
	for _, x := range v {
		a := math.Abs(x)
		if a > m {
			m = a
		}
	}
	return m
}

// Norm2Of returns the Euclidean norm of a plain []float64.
func Norm2Of(v []float64) float64 {
	return floats.Norm(v, 2)
}
