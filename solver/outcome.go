// Copyright 2016 The Gosl Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"github.com/dicksontsai/sketchsolve/chk"
	"github.com/dicksontsai/sketchsolve/gm"
)

// SolveOutcome is returned on success (spec §3 "SolveOutcome", §7).
type SolveOutcome struct {
	layout *layoutValues
	model  *Model

	Iterations     int
	Unsatisfied    []int
	Warnings       []Warning
	PrioritySolved uint32
}

// AnalyzeFreedom runs SVD-based freedom analysis (spec §4.6) against the
// accepted priority level's constraint set, evaluated at the final solved
// values.
func (o *SolveOutcome) AnalyzeFreedom() (*FreedomAnalysis, error) {
	return o.model.AnalyzeFreedom(o.layout.values)
}

// layoutValues pairs a final values slice with the column mapping needed to
// look a variable's solved value up by ID.
type layoutValues struct {
	ids    []gm.VarID
	values []float64
}

// Value returns the solved value of variable id. It panics if id was not
// part of the solved system, matching layout.Layout.IndexOf's contract.
func (o *SolveOutcome) Value(id gm.VarID) float64 {
	for i, v := range o.layout.ids {
		if v == id {
			return o.layout.values[i]
		}
	}
	chk.Panic("solver: variable %d not part of solved system", id)
	return 0
}

// FinalValues returns the full solved vector in layout column order,
// together with the variable IDs that order corresponds to.
func (o *SolveOutcome) FinalValues() (ids []gm.VarID, values []float64) {
	return o.layout.ids, o.layout.values
}

// FailureOutcome is returned on any error (spec §7 "FailureOutcome").
type FailureOutcome struct {
	Err      error
	Warnings []Warning
	NumVars  int
	NumEqs   int
}

func (f *FailureOutcome) Error() string { return f.Err.Error() }

// Unwrap lets errors.Is / errors.As see through to the underlying cause.
func (f *FailureOutcome) Unwrap() error { return f.Err }
