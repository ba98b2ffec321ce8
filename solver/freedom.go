// Copyright 2016 The Gosl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"math"

	"github.com/dicksontsai/sketchsolve/gm"
	"github.com/dicksontsai/sketchsolve/la"
)

// FreedomAnalysis reports which variables remain underdetermined by the
// constraint system at its current solution (spec §4.6).
type FreedomAnalysis struct {
	IsUnderconstrained   bool
	UnderconstrainedVars []gm.VarID
}

// AnalyzeFreedom materializes the Jacobian at x, computes its SVD, and
// derives rank and per-variable null-space participation exactly per spec
// §4.6 steps 2-5.
func (m *Model) AnalyzeFreedom(x []float64) (*FreedomAnalysis, error) {
	m.refreshJacobian(x)
	dense := m.cache.ToDense()
	result, err := la.SVD(dense)
	if err != nil {
		return nil, &SvdFailed{}
	}
	if len(result.S) == 0 {
		return &FreedomAnalysis{}, nil
	}

	tol := 1e-8 * result.S[0]
	rank := 0
	for _, s := range result.S {
		if s > tol {
			rank++
		}
	}

	n := m.lay.NumVars()
	_, vCols := result.V.Dims()
	participation := make([]float64, n)
	maxP := 0.0
	for j := 0; j < n; j++ {
		var sum float64
		for k := rank; k < vCols; k++ {
			v := result.V.Get(j, k)
			sum += v * v
		}
		p := math.Sqrt(sum)
		participation[j] = p
		if p > maxP {
			maxP = p
		}
	}

	var under []gm.VarID
	for j, id := range m.lay.IDs() {
		if participation[j] > 1e-3*maxP {
			under = append(under, id)
		}
	}
	return &FreedomAnalysis{IsUnderconstrained: len(under) > 0, UnderconstrainedVars: under}, nil
}
