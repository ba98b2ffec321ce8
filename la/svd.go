// Copyright 2016 The Gosl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package la

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

// ErrSVDFailed is returned when gonum's SVD fails to converge.
var ErrSVDFailed = errors.New("la: SVD failed to converge")

// SVDResult holds the singular values and the right-singular vectors V,
// which is all the freedom analysis (spec §4.6) needs: rank from the
// singular values, null-space participation from the trailing columns of
// V.
type SVDResult struct {
	S []float64 // singular values, descending
	V *Matrix   // N x N right-singular vectors (columns)
}

// SVD computes the singular value decomposition of a (full U and V,
// mat.SVDFull), used by freedom analysis to find the rank and null-space
// participation of the final Jacobian.
func SVD(a *Matrix) (*SVDResult, error) {
	var svd mat.SVD
	ok := svd.Factorize(a.Dense(), mat.SVDFull)
	if !ok {
		return nil, ErrSVDFailed
	}
	s := svd.Values(nil)
	var v mat.Dense
	svd.VTo(&v)
	r, c := v.Dims()
	vm := NewMatrix(r, c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			vm.Set(i, j, v.At(i, j))
		}
	}
	return &SVDResult{S: s, V: vm}, nil
}
